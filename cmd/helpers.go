package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/dsexplore/internal/analysis"
	"github.com/KaramelBytes/dsexplore/internal/dataset"
	"github.com/KaramelBytes/dsexplore/internal/utils"
)

// dataFlags are the loading, coercion and output flags shared by the
// dataset commands.
type dataFlags struct {
	delimiter string
	decimal   string
	thousands string
	maxRows   int
	sheet     string
	sheetIdx  int
	format    string
	output    string
}

func addDataFlags(c *cobra.Command, f *dataFlags) {
	c.Flags().StringVar(&f.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | '|' | 'tab' (by extension if omitted)")
	c.Flags().StringVar(&f.decimal, "decimal", "", "decimal separator for numeric text: '.'|'comma' (strict plain decimals if omitted)")
	c.Flags().StringVar(&f.thousands, "thousands", "", "thousands separator for numeric text: ','|'.'|'space'")
	c.Flags().IntVar(&f.maxRows, "max-rows", 0, "maximum rows to load (0 = unlimited)")
	c.Flags().StringVar(&f.sheet, "sheet-name", "", "XLSX: sheet name to load")
	c.Flags().IntVar(&f.sheetIdx, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	c.Flags().StringVar(&f.format, "format", "", "output format: markdown|json|yaml|html (default from config)")
	c.Flags().StringVarP(&f.output, "output", "o", "", "optional path to write the report")
}

// setting resolves a config value, letting a non-empty flag win.
func setting(flagVal, cfgVal string) string {
	if strings.TrimSpace(flagVal) != "" {
		return flagVal
	}
	return cfgVal
}

func (f *dataFlags) loadOptions(cmd *cobra.Command) (dataset.LoadOptions, error) {
	var opt dataset.LoadOptions
	cfgDelim, cfgMax := "", 0
	if cfg != nil {
		cfgDelim, cfgMax = cfg.Delimiter, cfg.MaxRows
	}
	d, err := parseDelimiter(setting(f.delimiter, cfgDelim))
	if err != nil {
		return opt, err
	}
	opt.Delimiter = d
	opt.Sheet = f.sheet
	opt.SheetIndex = f.sheetIdx
	opt.MaxRows = cfgMax
	if cmd.Flags().Changed("max-rows") {
		opt.MaxRows = f.maxRows
	}
	if opt.MaxRows < 0 {
		return opt, fmt.Errorf("--max-rows must be >= 0")
	}
	return opt, nil
}

// analysisOptions builds engine options from config and flag overrides.
func (f *dataFlags) analysisOptions() (analysis.Options, error) {
	opt := analysis.DefaultOptions()
	cfgDec, cfgThou := "", ""
	if cfg != nil {
		cfgDec, cfgThou = cfg.DecimalSeparator, cfg.ThousandsSeparator
		if cfg.OutlierThreshold >= 0 {
			opt.OutlierThreshold = cfg.OutlierThreshold
		}
		agg, err := analysis.ParseAggFunc(cfg.Aggregate)
		if err != nil {
			return opt, fmt.Errorf("config aggregate: %w", err)
		}
		opt.Aggregate = agg
	}
	dec, err := parseDecimalSep(setting(f.decimal, cfgDec))
	if err != nil {
		return opt, err
	}
	thou, err := parseThousandsSep(setting(f.thousands, cfgThou))
	if err != nil {
		return opt, err
	}
	if dec != 0 && dec == thou {
		return opt, fmt.Errorf("decimal and thousands separators must differ")
	}
	if thou != 0 && dec == 0 {
		// thousands grouping only applies with an explicit decimal separator
		dec = '.'
	}
	opt.DecimalSeparator = dec
	opt.ThousandsSeparator = thou
	return opt, nil
}

// loadDataset reads path with the resolved options and surfaces loader
// warnings on stderr.
func (f *dataFlags) loadDataset(cmd *cobra.Command, path string) (*dataset.Dataset, error) {
	lopt, err := f.loadOptions(cmd)
	if err != nil {
		return nil, err
	}
	ds, err := dataset.LoadFile(path, lopt)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	for _, w := range ds.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %s\n", w)
	}
	logger.Debug("dataset loaded", "file", ds.Name, "rows", ds.Len(), "columns", len(ds.Columns))
	return ds, nil
}

func (f *dataFlags) outputFormat() (string, error) {
	format := "markdown"
	if cfg != nil && cfg.OutputFormat != "" {
		format = cfg.OutputFormat
	}
	format = strings.ToLower(strings.TrimSpace(setting(f.format, format)))
	switch format {
	case "markdown", "md":
		return "markdown", nil
	case "json", "yaml", "html":
		return format, nil
	default:
		return "", fmt.Errorf("unsupported --format: %s (use markdown|json|yaml|html)", format)
	}
}

// writeReport renders md or v in the selected format, to --output or stdout.
// title names the HTML page.
func (f *dataFlags) writeReport(cmd *cobra.Command, title, md string, v any) error {
	format, err := f.outputFormat()
	if err != nil {
		return err
	}
	var out []byte
	switch format {
	case "json":
		out, err = utils.PrettyJSON(v)
	case "yaml":
		out, err = yaml.Marshal(v)
		if err != nil {
			err = fmt.Errorf("marshal yaml: %w", err)
		}
	case "html":
		out = utils.MarkdownToHTML([]byte(md), title)
	default:
		out = []byte(md)
	}
	if err != nil {
		return err
	}
	if len(out) > 0 && out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	if f.output != "" {
		if err := utils.SafeWriteFile(f.output, out); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %s report to %s\n", format, f.output)
		return nil
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case ";":
		return ';', nil
	case "|":
		return '|', nil
	case "\t", "tab", "\\t":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %s", s)
	}
}

func parseDecimalSep(s string) (rune, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return 0, nil
	case ",", "comma":
		return ',', nil
	case ".", "dot":
		return '.', nil
	default:
		return 0, fmt.Errorf("unsupported decimal separator: %s (use '.'|'comma')", s)
	}
}

func parseThousandsSep(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case ",", "comma":
		return ',', nil
	case ".", "dot":
		return '.', nil
	case "space", " ":
		return ' ', nil
	case "'", "apostrophe":
		return '\'', nil
	default:
		return 0, fmt.Errorf("unsupported thousands separator: %s (use ','|'.'|'space')", s)
	}
}
