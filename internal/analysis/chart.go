package analysis

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/dsexplore/internal/dataset"
)

// ChartKind selects how aggregated points are laid out.
type ChartKind string

const (
	ChartBar      ChartKind = "bar"
	ChartLine     ChartKind = "line"
	ChartScatter  ChartKind = "scatter"
	ChartPie      ChartKind = "pie"
	ChartDoughnut ChartKind = "doughnut"
)

// ChartKinds lists the supported kinds in selector order.
var ChartKinds = []ChartKind{ChartBar, ChartLine, ChartScatter, ChartPie, ChartDoughnut}

// ParseChartKind matches s against the supported kinds, ignoring case.
func ParseChartKind(s string) (ChartKind, error) {
	k := ChartKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ChartKinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChartKind, s)
}

// XY is one scatter coordinate.
type XY struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// ChartSpec is the structural input of a chart surface: labels and one
// series. Scatter charts also carry coordinates. There is no styling.
type ChartSpec struct {
	Kind   ChartKind `json:"kind" yaml:"kind"`
	Labels []string  `json:"labels" yaml:"labels"`
	Values []float64 `json:"values" yaml:"values"`
	Points []XY      `json:"points,omitempty" yaml:"points,omitempty"`
}

// Project lays points out for kind. For scatter every label must be a
// number under opt; a categorical label is an *AxisError, never a silent index.
func Project(points []Point, kind ChartKind, opt Options) (*ChartSpec, error) {
	kind, err := ParseChartKind(string(kind))
	if err != nil {
		return nil, err
	}
	spec := &ChartSpec{
		Kind:   kind,
		Labels: make([]string, 0, len(points)),
		Values: make([]float64, 0, len(points)),
	}
	for _, p := range points {
		spec.Labels = append(spec.Labels, p.Label)
		spec.Values = append(spec.Values, p.Value)
	}
	if kind != ChartScatter {
		return spec, nil
	}
	spec.Points = make([]XY, 0, len(points))
	for _, p := range points {
		x, ok := ParseNumber(dataset.String(p.Label), opt)
		if !ok {
			return nil, &AxisError{Label: p.Label, Err: ErrNonNumericAxis}
		}
		spec.Points = append(spec.Points, XY{X: x, Y: p.Value})
	}
	return spec, nil
}

// CheckScatterAxis verifies that every row's x value coerces to a number.
// Hosts call it before aggregating for a scatter chart.
func CheckScatterAxis(ds *dataset.Dataset, x string, opt Options) error {
	if ds == nil {
		return nil
	}
	for _, r := range ds.Rows {
		v := r.Get(x)
		if _, ok := ParseNumber(v, opt); !ok {
			return &AxisError{Column: x, Label: v.String(), Err: ErrNonNumericAxis}
		}
	}
	return nil
}
