package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	dirName    = ".dsexplore"
	envPrefix  = "DSEXPLORE"
	configName = "config"
)

// Global configuration structure.
type Global struct {
	// Output format for reports: markdown|json|yaml
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`

	// Loading
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"` // empty = by file extension (.tsv tab, else comma)
	MaxRows   int    `mapstructure:"max_rows" yaml:"max_rows"`

	// Numeric coercion; empty decimal separator means strict "1.5" decimals
	DecimalSeparator   string `mapstructure:"decimal_separator" yaml:"decimal_separator"`
	ThousandsSeparator string `mapstructure:"thousands_separator" yaml:"thousands_separator"`

	// Chart defaults
	Aggregate string `mapstructure:"aggregate" yaml:"aggregate"`
	ChartKind string `mapstructure:"chart_kind" yaml:"chart_kind"`

	OutlierThreshold float64 `mapstructure:"outlier_threshold" yaml:"outlier_threshold"`
}

// Dir returns ~/.dsexplore.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.dsexplore/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, configName+".yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env (including ./.env) > config file > defaults. Command flags are applied on
// top by the caller.
func Load(cfgFile string) (*Global, error) {
	// a .env in the working directory may carry DSEXPLORE_* overrides;
	// variables already set in the environment win
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("output_format", "markdown")
	v.SetDefault("delimiter", "")
	v.SetDefault("max_rows", 0)
	v.SetDefault("decimal_separator", "")
	v.SetDefault("thousands_separator", "")
	v.SetDefault("aggregate", "sum")
	v.SetDefault("chart_kind", "bar")
	v.SetDefault("outlier_threshold", 3.5)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		// a config file is optional; a malformed one is not
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
