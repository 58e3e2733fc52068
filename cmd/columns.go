package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dsexplore/internal/analysis"
)

var colFlags dataFlags

type columnsReport struct {
	File    string                   `json:"file" yaml:"file"`
	Rows    int                      `json:"rows" yaml:"rows"`
	Columns []analysis.ColumnProfile `json:"columns" yaml:"columns"`
}

var columnsCmd = &cobra.Command{
	Use:   "columns <file>",
	Short: "List the columns of a dataset with kind, coverage and scatter eligibility",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := colFlags.analysisOptions()
		if err != nil {
			return err
		}
		ds, err := colFlags.loadDataset(cmd, args[0])
		if err != nil {
			return err
		}
		ex := analysis.NewExplorer(ds, opt)
		profiles := ex.Profile()
		rep := columnsReport{File: ds.Name, Rows: ds.Len(), Columns: profiles}
		return colFlags.writeReport(cmd, ds.Name, analysis.ProfileMarkdown(ds.Name, ds.Len(), profiles), rep)
	},
}

func init() {
	rootCmd.AddCommand(columnsCmd)
	addDataFlags(columnsCmd, &colFlags)
}
