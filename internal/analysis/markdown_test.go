package analysis

import (
	"strings"
	"testing"

	"github.com/KaramelBytes/dsexplore/internal/dataset"
)

func TestStatsMarkdown(t *testing.T) {
	st, ok := Describe(Sample{1, 2, 3, 4, 5})
	md := StatsMarkdown("val", st, ok)
	for _, want := range []string{"[COLUMN STATISTICS]", "Column: val", "| Mean | 3 |", "| Variance | 2 |", "| Kurtosis | 1.7 |"} {
		if !strings.Contains(md, want) {
			t.Fatalf("missing %q in:\n%s", want, md)
		}
	}
	md = StatsMarkdown("note", Stats{}, false)
	if !strings.Contains(md, "Statistics: not available") || strings.Contains(md, "| Mean |") {
		t.Fatalf("no-data render:\n%s", md)
	}
}

func TestComparisonMarkdown(t *testing.T) {
	ds := dataset.New([]string{"a", "b"}, []dataset.Row{
		dataset.RowOf("a", "", "b", 1),
		dataset.RowOf("a", "x", "b", 3),
	})
	cmp, err := Compare(ds, []string{"b", "a"}, DefaultOptions())
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	md := cmp.Markdown()
	for _, want := range []string{"| Statistic | b | a |", "| Mean | 2 | not available |", "[NOTES]", "- a: no numeric data"} {
		if !strings.Contains(md, want) {
			t.Fatalf("missing %q in:\n%s", want, md)
		}
	}
}

func TestChartMarkdown(t *testing.T) {
	ds := dataset.New([]string{"cat", "val"}, []dataset.Row{
		dataset.RowOf("cat", "A", "val", 10),
		dataset.RowOf("cat", "", "val", 5),
	})
	spec, err := Project(Aggregate(ds, "cat", "val", DefaultOptions()), ChartBar, DefaultOptions())
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	md := spec.Markdown("cat", "val")
	for _, want := range []string{"Kind: bar", "| cat | val |", "| A | 10 |", "| (blank) | 5 |"} {
		if !strings.Contains(md, want) {
			t.Fatalf("missing %q in:\n%s", want, md)
		}
	}
}

func TestProfileMarkdown(t *testing.T) {
	ds := explorerRows()
	md := ProfileMarkdown("sales.csv", ds.Len(), Profile(ds, DefaultOptions()))
	for _, want := range []string{"File: sales.csv", "Rows: 3", "- cat: categorical", "A(2), B(1)", "- val: numeric", "[scatter]"} {
		if !strings.Contains(md, want) {
			t.Fatalf("missing %q in:\n%s", want, md)
		}
	}
}
