package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dsexplore/internal/analysis"
)

var (
	cmpFlags   dataFlags
	cmpColumns string
)

type compareReport struct {
	File    string                     `json:"file" yaml:"file"`
	Entries []analysis.ComparisonEntry `json:"entries" yaml:"entries"`
}

var compareCmd = &cobra.Command{
	Use:   "compare <file>",
	Short: "Compare descriptive statistics of two or more columns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := cmpFlags.analysisOptions()
		if err != nil {
			return err
		}
		ds, err := cmpFlags.loadDataset(cmd, args[0])
		if err != nil {
			return err
		}
		ex := analysis.NewExplorer(ds, opt)
		if err := ex.SetComparison(splitColumns(cmpColumns)...); err != nil {
			return err
		}
		cmp, err := ex.Compare()
		if err != nil {
			return err
		}
		return cmpFlags.writeReport(cmd, ds.Name, cmp.Markdown(), compareReport{File: ds.Name, Entries: cmp.Entries})
	},
}

func splitColumns(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(compareCmd)
	addDataFlags(compareCmd, &cmpFlags)
	compareCmd.Flags().StringVar(&cmpColumns, "columns", "", "comma-separated columns to compare (at least two)")
}
