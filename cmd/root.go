package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dsexplore/internal/analysis"
	cfgpkg "github.com/KaramelBytes/dsexplore/internal/config"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
)

var rootCmd = &cobra.Command{
	Use:   "dsexplore",
	Short: "dsexplore: descriptive statistics, column comparison and chart data for tabular datasets",
	Long: `dsexplore explores a tabular resource (CSV, TSV, GeoJSON, a JSON array of rows or an XLSX sheet):
it profiles columns, describes a numeric column, compares several columns side by side
and aggregates an X/Y axis pair into chart-ready data.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var verr *analysis.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(os.Stderr, "⚠ Notice: %v\n", verr)
		} else {
			fmt.Fprintln(os.Stderr, "✗ Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.dsexplore/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = nil
		return
	}
	cfg = c
	logger.Debug("config loaded", "output_format", cfg.OutputFormat, "aggregate", cfg.Aggregate, "chart_kind", cfg.ChartKind)
}
