package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dsexplore/internal/analysis"
)

var (
	chartFlags dataFlags
	chartX     string
	chartY     string
	chartKind  string
	chartAgg   string
)

type chartReport struct {
	File      string              `json:"file" yaml:"file"`
	Session   string              `json:"session" yaml:"session"`
	Selection analysis.Selection  `json:"selection" yaml:"selection"`
	Aggregate analysis.AggFunc    `json:"aggregate" yaml:"aggregate"`
	Chart     *analysis.ChartSpec `json:"chart" yaml:"chart"`
	Points    []analysis.Point    `json:"points" yaml:"points"`
}

var chartCmd = &cobra.Command{
	Use:   "chart <file>",
	Short: "Aggregate an X/Y axis pair into chart-ready labels and values",
	Long: `Groups rows by the X column in order of first appearance and computes either the
row count (--y count, the default) or an aggregate of the Y column per group.
A scatter chart requires every X value to be numeric.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := chartFlags.analysisOptions()
		if err != nil {
			return err
		}
		if chartAgg != "" {
			agg, err := analysis.ParseAggFunc(chartAgg)
			if err != nil {
				return err
			}
			opt.Aggregate = agg
		}
		kind := chartKind
		if kind == "" && cfg != nil {
			kind = cfg.ChartKind
		}
		ds, err := chartFlags.loadDataset(cmd, args[0])
		if err != nil {
			return err
		}

		ex := analysis.NewExplorer(ds, opt)
		if chartX != "" {
			if err := ex.SetXAxis(chartX); err != nil {
				return fmt.Errorf("--x: %w", err)
			}
		}
		if chartY != "" {
			if err := ex.SetYAxis(chartY); err != nil {
				return fmt.Errorf("--y: %w", err)
			}
		}
		if kind != "" {
			if err := ex.SetChartKind(analysis.ChartKind(kind)); err != nil {
				return fmt.Errorf("--kind: %w", err)
			}
		}
		sel := ex.Selection()
		logger.Debug("chart selection", "session", ex.ID, "x", sel.XAxis, "y", sel.YAxis, "kind", sel.Kind, "aggregate", opt.Aggregate)

		spec, err := ex.Chart()
		if err != nil {
			return err
		}
		rep := chartReport{
			File:      ds.Name,
			Session:   ex.ID,
			Selection: sel,
			Aggregate: opt.Aggregate,
			Chart:     spec,
			Points:    ex.Points(),
		}
		return chartFlags.writeReport(cmd, ds.Name, spec.Markdown(sel.XAxis, sel.YAxis), rep)
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	addDataFlags(chartCmd, &chartFlags)
	chartCmd.Flags().StringVar(&chartX, "x", "", "X axis column (default: first column)")
	chartCmd.Flags().StringVar(&chartY, "y", "", "Y axis: 'count' or a numeric column (default: count)")
	chartCmd.Flags().StringVar(&chartKind, "kind", "", "chart kind: bar|line|scatter|pie|doughnut (default from config)")
	chartCmd.Flags().StringVar(&chartAgg, "agg", "", "aggregate for a Y column: sum|mean|min|max (default from config)")
}
