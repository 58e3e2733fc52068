package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dsexplore/internal/analysis"
)

var (
	statFlags  dataFlags
	statColumn string
)

type statsReport struct {
	File      string          `json:"file" yaml:"file"`
	Column    string          `json:"column" yaml:"column"`
	Available bool            `json:"available" yaml:"available"`
	Stats     *analysis.Stats `json:"stats" yaml:"stats"`
}

var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Describe one column: mean, median, mode, variance, skewness, kurtosis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if statColumn == "" {
			return fmt.Errorf("--column is required")
		}
		opt, err := statFlags.analysisOptions()
		if err != nil {
			return err
		}
		ds, err := statFlags.loadDataset(cmd, args[0])
		if err != nil {
			return err
		}
		if !ds.HasColumn(statColumn) {
			return fmt.Errorf("%w: %q", analysis.ErrUnknownColumn, statColumn)
		}
		ex := analysis.NewExplorer(ds, opt)
		st, ok := ex.Statistics(statColumn)
		rep := statsReport{File: ds.Name, Column: statColumn, Available: ok}
		if ok {
			rep.Stats = &st
		} else {
			logger.Debug("no numeric values", "column", statColumn)
		}
		return statFlags.writeReport(cmd, ds.Name, analysis.StatsMarkdown(statColumn, st, ok), rep)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	addDataFlags(statsCmd, &statFlags)
	statsCmd.Flags().StringVarP(&statColumn, "column", "c", "", "column to describe")
}
