package analysis

import (
	"errors"
	"strings"
	"testing"

	"github.com/KaramelBytes/dsexplore/internal/dataset"
)

func TestCompareNeedsTwoColumns(t *testing.T) {
	ds := explorerRows()
	for _, sel := range [][]string{nil, {"val"}, {"val", "val"}} {
		cmp, err := Compare(ds, sel, DefaultOptions())
		if cmp != nil {
			t.Fatalf("%v: expected no comparison", sel)
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%v: expected *ValidationError, got %v", sel, err)
		}
		if !errors.Is(err, ErrInsufficientSelection) {
			t.Fatalf("%v: expected ErrInsufficientSelection, got %v", sel, err)
		}
		if !strings.Contains(err.Error(), "at least 2") {
			t.Fatalf("message = %q", err.Error())
		}
	}
}

func TestCompareKeepsNoDataColumns(t *testing.T) {
	ds := dataset.New([]string{"a", "b"}, []dataset.Row{
		dataset.RowOf("a", "", "b", 1),
		dataset.RowOf("a", "x", "b", 3),
	})
	cmp, err := Compare(ds, []string{"b", "a", "b"}, DefaultOptions())
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if len(cmp.Entries) != 2 {
		t.Fatalf("entries = %+v", cmp.Entries)
	}
	if cmp.Entries[0].Column != "b" || cmp.Entries[1].Column != "a" {
		t.Fatalf("selection order lost: %+v", cmp.Entries)
	}
	if !cmp.Entries[0].HasData() || cmp.Entries[0].Stats.Mean != 2 || cmp.Entries[0].Stats.Count != 2 {
		t.Fatalf("b stats = %+v", cmp.Entries[0].Stats)
	}
	if cmp.Entries[1].HasData() {
		t.Fatalf("a should have no data")
	}
}

func TestCompareMatchesDescribe(t *testing.T) {
	ds := dataset.New([]string{"p", "q"}, []dataset.Row{
		dataset.RowOf("p", 1, "q", "2.5"),
		dataset.RowOf("p", 4, "q", "oops"),
		dataset.RowOf("p", 9, "q", 7.5),
	})
	cmp, err := Compare(ds, []string{"p", "q", "missing"}, DefaultOptions())
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	for _, e := range cmp.Entries {
		st, ok := DescribeColumn(ds, e.Column, DefaultOptions())
		if ok != e.HasData() {
			t.Fatalf("%s: availability mismatch", e.Column)
		}
		if ok && *e.Stats != st {
			t.Fatalf("%s: %+v != %+v", e.Column, *e.Stats, st)
		}
	}
}
