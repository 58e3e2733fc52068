package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/dsexplore/internal/analysis"
)

const salesCSV = "cat,val,note\nA,10,x\nB,20,\nA,30,y\n"

// resetFlags restores every flag to its default so sticky values and
// Changed state do not leak between invocations.
func resetFlags(c *cobra.Command) {
	reset := func(fl *pflag.Flag) {
		_ = fl.Value.Set(fl.DefValue)
		fl.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execCmd runs the root command with args and returns stdout, stderr and the error.
func execCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errb bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errb)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errb.String(), err
}

// runCmd is execCmd for invocations that must succeed.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, _, err := execCmd(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

func writeSales(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "sales.csv")
	if err := os.WriteFile(path, []byte(salesCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func mustContain(t *testing.T, got string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Fatalf("missing %q in output:\n%s", w, got)
		}
	}
}

func TestCLI_Columns(t *testing.T) {
	path := writeSales(t)
	out := runCmd(t, "columns", path)
	mustContain(t, out, "File: sales.csv", "Rows: 3", "- cat: categorical", "- val: numeric", "[scatter]", "- note: categorical")
}

func TestCLI_Stats(t *testing.T) {
	path := writeSales(t)
	out := runCmd(t, "stats", path, "--column", "val")
	mustContain(t, out, "Column: val", "| Mean | 20 |", "| Median | 20 |", "| Min | 10 |", "| Max | 30 |")

	out = runCmd(t, "stats", path, "-c", "note")
	mustContain(t, out, "Statistics: not available")

	if _, _, err := execCmd(t, "stats", path, "-c", "nope"); !errors.Is(err, analysis.ErrUnknownColumn) {
		t.Fatalf("expected unknown column, got %v", err)
	}
}

func TestCLI_CompareNeedsTwoColumns(t *testing.T) {
	path := writeSales(t)
	_, _, err := execCmd(t, "compare", path, "--columns", "val")
	var verr *analysis.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}

	out := runCmd(t, "compare", path, "--columns", "val, note", "--format", "json")
	var rep struct {
		File    string `json:"file"`
		Entries []struct {
			Column string `json:"column"`
			Stats  *struct {
				Count int     `json:"count"`
				Mean  float64 `json:"mean"`
			} `json:"stats"`
		} `json:"entries"`
	}
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if len(rep.Entries) != 2 || rep.Entries[0].Column != "val" || rep.Entries[1].Column != "note" {
		t.Fatalf("entries = %+v", rep.Entries)
	}
	if rep.Entries[0].Stats == nil || rep.Entries[0].Stats.Mean != 20 || rep.Entries[1].Stats != nil {
		t.Fatalf("entries = %+v", rep.Entries)
	}
}

func TestCLI_Chart(t *testing.T) {
	path := writeSales(t)
	out := runCmd(t, "chart", path)
	mustContain(t, out, "Kind: bar", "| cat | count |", "| A | 2 |", "| B | 1 |")

	out = runCmd(t, "chart", path, "--x", "cat", "--y", "val", "--kind", "pie")
	mustContain(t, out, "Kind: pie", "| A | 40 |", "| B | 20 |")

	out = runCmd(t, "chart", path, "--x", "cat", "--y", "val", "--agg", "mean")
	mustContain(t, out, "| A | 20 |")

	_, _, err := execCmd(t, "chart", path, "--x", "cat", "--kind", "scatter")
	if !errors.Is(err, analysis.ErrNonNumericAxis) {
		t.Fatalf("expected non-numeric axis, got %v", err)
	}
	if _, _, err := execCmd(t, "chart", path, "--x", "val", "--y", "val"); !errors.Is(err, analysis.ErrAxisConflict) {
		t.Fatalf("expected axis conflict, got %v", err)
	}

	out = runCmd(t, "chart", path, "--x", "val", "--kind", "scatter", "--format", "json")
	mustContain(t, out, `"kind": "scatter"`, `"x": 10`)
}

func TestCLI_ChartWritesOutputFile(t *testing.T) {
	path := writeSales(t)
	dst := filepath.Join(filepath.Dir(path), "out", "chart.yaml")
	_, stderr, err := execCmd(t, "chart", path, "--format", "yaml", "-o", dst)
	if err != nil {
		t.Fatalf("chart: %v", err)
	}
	mustContain(t, stderr, "✓ Wrote yaml report")
	b, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	mustContain(t, string(b), "kind: bar", "x_axis: cat", "y_axis: count")
}

func TestCLI_ChartHTML(t *testing.T) {
	path := writeSales(t)
	dst := filepath.Join(filepath.Dir(path), "chart.html")
	if _, _, err := execCmd(t, "chart", path, "--format", "html", "-o", dst); err != nil {
		t.Fatalf("chart: %v", err)
	}
	b, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	mustContain(t, string(b), "<title>sales.csv</title>", "<table>", "<td>A</td>")
}

func TestCLI_ConfigDrivesDefaults(t *testing.T) {
	path := writeSales(t)
	out := runCmd(t, "config", "set", "aggregate", "max")
	mustContain(t, out, "Saved config")
	runCmd(t, "config", "set", "chart_kind", "line")

	out = runCmd(t, "config", "show")
	mustContain(t, out, "aggregate: max", "chart_kind: line")

	out = runCmd(t, "chart", path, "--x", "cat", "--y", "val")
	mustContain(t, out, "Kind: line", "| A | 30 |")

	if _, _, err := execCmd(t, "config", "set", "chart_kind", "radar"); err == nil {
		t.Fatalf("expected error for invalid chart kind")
	}
	if _, _, err := execCmd(t, "config", "set", "nope", "1"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestCLI_LocaleNumbers(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "eu.csv")
	data := "region;amount\nnorth;1.000,5\nsouth;2,5\nnorth;0,5\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	out := runCmd(t, "stats", path, "-c", "amount", "--delimiter", ";")
	mustContain(t, out, "Statistics: not available")

	out = runCmd(t, "chart", path, "--delimiter", ";", "--decimal", "comma", "--thousands", ".", "--y", "amount")
	mustContain(t, out, "| north | 1001 |", "| south | 2.5 |")
}

func TestCLI_XLSXSheet(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	f := excelize.NewFile()
	if _, err := f.NewSheet("Scores"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	for i, r := range [][]any{{"team", "score"}, {"red", 3}, {"blue", 5}, {"red", 4}} {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Scores", cell, &r); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	path := filepath.Join(home, "league.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	_ = f.Close()

	out := runCmd(t, "chart", path, "--sheet-name", "scores", "--y", "score")
	mustContain(t, out, "| red | 7 |", "| blue | 5 |")
	if _, _, err := execCmd(t, "columns", path, "--sheet-name", "missing"); err == nil {
		t.Fatalf("expected error for unknown sheet")
	}
}
