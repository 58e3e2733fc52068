package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dsexplore/internal/analysis"
	cfgpkg "github.com/KaramelBytes/dsexplore/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set dsexplore configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "output_format: %s\n", cfg.OutputFormat)
		fmt.Fprintf(out, "delimiter: %s\n", orAuto(cfg.Delimiter))
		fmt.Fprintf(out, "max_rows: %d\n", cfg.MaxRows)
		fmt.Fprintf(out, "decimal_separator: %s\n", orAuto(cfg.DecimalSeparator))
		if cfg.ThousandsSeparator != "" {
			fmt.Fprintf(out, "thousands_separator: %q\n", cfg.ThousandsSeparator)
		}
		fmt.Fprintf(out, "aggregate: %s\n", cfg.Aggregate)
		fmt.Fprintf(out, "chart_kind: %s\n", cfg.ChartKind)
		fmt.Fprintf(out, "outlier_threshold: %.2f\n", cfg.OutlierThreshold)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "output_format":
			switch v := strings.ToLower(val); v {
			case "markdown", "json", "yaml", "html":
				cfg.OutputFormat = v
			default:
				return fmt.Errorf("invalid output_format: %s (use markdown|json|yaml|html)", val)
			}
		case "delimiter":
			if _, err := parseDelimiter(val); err != nil {
				return err
			}
			cfg.Delimiter = val
		case "max_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for max_rows: %v", val)
			}
			cfg.MaxRows = i
		case "decimal_separator":
			if _, err := parseDecimalSep(val); err != nil {
				return err
			}
			cfg.DecimalSeparator = val
		case "thousands_separator":
			if _, err := parseThousandsSep(val); err != nil {
				return err
			}
			cfg.ThousandsSeparator = val
		case "aggregate":
			agg, err := analysis.ParseAggFunc(val)
			if err != nil {
				return err
			}
			cfg.Aggregate = string(agg)
		case "chart_kind":
			k, err := analysis.ParseChartKind(val)
			if err != nil {
				return err
			}
			cfg.ChartKind = string(k)
		case "outlier_threshold":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f < 0 {
				return fmt.Errorf("invalid float for outlier_threshold: %v", val)
			}
			cfg.OutlierThreshold = f
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func orAuto(s string) string {
	if s == "" {
		return "(auto)"
	}
	return s
}
