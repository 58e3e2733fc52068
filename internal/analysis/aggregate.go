package analysis

import (
	"github.com/KaramelBytes/dsexplore/internal/dataset"
)

// CountMeasure is the pseudo Y axis meaning "rows in the group". It always
// takes this meaning, even if the dataset has a column with the same name.
const CountMeasure = "count"

// Point is one chart category: a distinct X label and its aggregated value.
type Point struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
	// Rows in the group; Numeric of them carried a usable Y value. For
	// mean/min/max a zero Numeric means Value is not meaningful.
	Rows    int `json:"rows" yaml:"rows"`
	Numeric int `json:"numeric" yaml:"numeric"`
}

type groupAcc struct {
	rows    int
	numeric int
	sum     float64
	min     float64
	max     float64
}

// Aggregate groups rows by the label form of x, in order of first
// appearance, and computes either the row count (y == CountMeasure) or
// opt.Aggregate over the numeric values of y. Rows whose y fails coercion
// still count as group members.
func Aggregate(ds *dataset.Dataset, x, y string, opt Options) []Point {
	if ds.Len() == 0 {
		return []Point{}
	}
	count := y == CountMeasure
	var order []string
	groups := map[string]*groupAcc{}
	for _, r := range ds.Rows {
		label := r.Get(x).String()
		g := groups[label]
		if g == nil {
			g = &groupAcc{}
			groups[label] = g
			order = append(order, label)
		}
		g.rows++
		if count {
			continue
		}
		v, ok := ParseNumber(r.Get(y), opt)
		if !ok {
			continue
		}
		if g.numeric == 0 || v < g.min {
			g.min = v
		}
		if g.numeric == 0 || v > g.max {
			g.max = v
		}
		g.numeric++
		g.sum += v
	}

	agg := opt.aggregate()
	out := make([]Point, 0, len(order))
	for _, label := range order {
		g := groups[label]
		p := Point{Label: label, Rows: g.rows, Numeric: g.numeric}
		switch {
		case count:
			p.Value = float64(g.rows)
			p.Numeric = g.rows
		case g.numeric == 0:
			// nothing to aggregate; sum of nothing is 0 as well
		case agg == AggMean:
			p.Value = g.sum / float64(g.numeric)
		case agg == AggMin:
			p.Value = g.min
		case agg == AggMax:
			p.Value = g.max
		default:
			p.Value = g.sum
		}
		out = append(out, p)
	}
	return out
}
