package analysis

import (
	"fmt"
	"strings"
)

const notAvailable = "not available"

// StatsMarkdown renders the statistics view of one column. ok=false renders
// the explicit "not available" state.
func StatsMarkdown(column string, st Stats, ok bool) string {
	var b strings.Builder
	b.WriteString("[COLUMN STATISTICS]\n")
	b.WriteString(fmt.Sprintf("Column: %s\n", safeName(column)))
	if !ok {
		b.WriteString(fmt.Sprintf("Statistics: %s (no numeric values)\n", notAvailable))
		return b.String()
	}
	b.WriteString("\n| Statistic | Value |\n| --- | --- |\n")
	for _, row := range statRows(st) {
		b.WriteString(fmt.Sprintf("| %s | %s |\n", row[0], row[1]))
	}
	return b.String()
}

func statRows(st Stats) [][2]string {
	return [][2]string{
		{"Count", fmt.Sprintf("%d", st.Count)},
		{"Mean", num(st.Mean)},
		{"Median", num(st.Median)},
		{"Mode", num(st.Mode)},
		{"Variance", num(st.Variance)},
		{"Standard deviation", num(st.StdDev)},
		{"Min", num(st.Min)},
		{"Max", num(st.Max)},
		{"Skewness", st.Skewness.String()},
		{"Kurtosis", st.Kurtosis.String()},
		{"Excess kurtosis", st.ExcessKurtosis.String()},
	}
}

// Markdown renders the comparison as a statistic-by-column table, columns
// in selection order.
func (c *Comparison) Markdown() string {
	var b strings.Builder
	b.WriteString("[COLUMN COMPARISON]\n")
	if c == nil || len(c.Entries) == 0 {
		b.WriteString("(no columns)\n")
		return b.String()
	}
	b.WriteString("\n| Statistic |")
	for _, e := range c.Entries {
		b.WriteString(" ")
		b.WriteString(safeVal(safeName(e.Column)))
		b.WriteString(" |")
	}
	b.WriteString("\n| --- |")
	for range c.Entries {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	labels := statRows(Stats{})
	for i := range labels {
		b.WriteString("| ")
		b.WriteString(labels[i][0])
		b.WriteString(" |")
		for _, e := range c.Entries {
			cell := notAvailable
			if e.Stats != nil {
				cell = statRows(*e.Stats)[i][1]
			}
			b.WriteString(" ")
			b.WriteString(cell)
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}
	var missing []string
	for _, e := range c.Entries {
		if !e.HasData() {
			missing = append(missing, safeName(e.Column))
		}
	}
	if len(missing) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, m := range missing {
			b.WriteString(fmt.Sprintf("- %s: no numeric data\n", m))
		}
	}
	return b.String()
}

// Markdown renders the chart data as a label/value table.
func (s *ChartSpec) Markdown(xAxis, yAxis string) string {
	var b strings.Builder
	b.WriteString("[CHART]\n")
	if s == nil {
		b.WriteString("(empty)\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("Kind: %s\n", s.Kind))
	b.WriteString(fmt.Sprintf("X: %s\nY: %s\n\n", safeName(xAxis), safeName(yAxis)))
	if len(s.Labels) == 0 {
		b.WriteString("(no data)\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("| %s | %s |\n| --- | --- |\n", safeVal(safeName(xAxis)), safeVal(safeName(yAxis))))
	for i, l := range s.Labels {
		label := l
		if label == "" {
			label = "(blank)"
		}
		b.WriteString(fmt.Sprintf("| %s | %s |\n", safeVal(label), num(s.Values[i])))
	}
	return b.String()
}

// ProfileMarkdown renders the schema view used to pick axes.
func ProfileMarkdown(name string, rows int, cols []ColumnProfile) string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(cols)))
	b.WriteString("[SCHEMA]\n")
	for _, c := range cols {
		total := c.Present + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (present %d, missing %.1f%%, distinct %d)", safeName(c.Name), c.Kind, c.Present, missPct, c.Distinct))
		if c.Scatter {
			b.WriteString(" [scatter]")
		}
		if c.OutlierThreshold > 0 {
			b.WriteString(fmt.Sprintf("; outliers: %d above |z|>%.1f", c.Outliers, c.OutlierThreshold))
			if c.OutliersMaxAbsZ > 0 {
				b.WriteString(fmt.Sprintf(" (max |z|≈%.2f)", c.OutliersMaxAbsZ))
			}
		}
		if len(c.TopValues) > 0 {
			b.WriteString(" — top: ")
			for i, kv := range c.TopValues {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func num(f float64) string { return fmt.Sprintf("%.6g", f) }

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
