package analysis

import (
	"github.com/KaramelBytes/dsexplore/internal/dataset"
)

const minCompareColumns = 2

// ComparisonEntry is one selected column. A nil Stats marks a column with
// no numeric data; it stays in the table so rows match the selection.
type ComparisonEntry struct {
	Column string `json:"column" yaml:"column"`
	Stats  *Stats `json:"stats" yaml:"stats"`
}

func (e ComparisonEntry) HasData() bool { return e.Stats != nil }

// Comparison lists statistics for each selected column in selection order.
type Comparison struct {
	Entries []ComparisonEntry `json:"entries" yaml:"entries"`
}

// Compare describes every selected column, in the order given. Repeated
// names after their first occurrence are ignored. Fewer than two distinct
// columns yield a *ValidationError matching ErrInsufficientSelection.
func Compare(ds *dataset.Dataset, selected []string, opt Options) (*Comparison, error) {
	cols := distinct(selected)
	if len(cols) < minCompareColumns {
		return nil, &ValidationError{
			Reason:   ErrInsufficientSelection.Error(),
			Selected: len(cols),
			Err:      ErrInsufficientSelection,
		}
	}
	out := &Comparison{Entries: make([]ComparisonEntry, 0, len(cols))}
	for _, c := range cols {
		e := ComparisonEntry{Column: c}
		if st, ok := DescribeColumn(ds, c, opt); ok {
			e.Stats = &st
		}
		out.Entries = append(out.Entries, e)
	}
	return out, nil
}

func distinct(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
