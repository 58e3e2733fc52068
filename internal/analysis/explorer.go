package analysis

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/KaramelBytes/dsexplore/internal/dataset"
)

// Selection is the host-owned state the engine reads on every recompute.
type Selection struct {
	XAxis      string    `json:"x_axis" yaml:"x_axis"`
	YAxis      string    `json:"y_axis" yaml:"y_axis"`
	Kind       ChartKind `json:"kind" yaml:"kind"`
	Comparison []string  `json:"comparison" yaml:"comparison"`
}

// Explorer holds one analysis session over a dataset: the dataset
// reference and the current selection. Every result is recomputed from
// scratch on request. An Explorer is not safe for concurrent mutation; the
// functions it calls are pure.
type Explorer struct {
	ID   string
	data *dataset.Dataset
	opt  Options
	sel  Selection
}

// NewExplorer starts a session with X on the first column, Y on the count
// pseudo-measure and a bar chart.
func NewExplorer(ds *dataset.Dataset, opt Options) *Explorer {
	if ds == nil {
		ds = &dataset.Dataset{}
	}
	e := &Explorer{
		ID:   uuid.NewString(),
		data: ds,
		opt:  opt,
		sel:  Selection{YAxis: CountMeasure, Kind: ChartBar},
	}
	if len(ds.Columns) > 0 {
		e.sel.XAxis = ds.Columns[0]
	}
	return e
}

func (e *Explorer) Dataset() *dataset.Dataset { return e.data }
func (e *Explorer) Options() Options          { return e.opt }

// Selection returns a copy of the current selection.
func (e *Explorer) Selection() Selection {
	s := e.sel
	s.Comparison = append([]string(nil), e.sel.Comparison...)
	return s
}

// SetXAxis selects the category axis. It must be a declared column and
// differ from a Y measure column. A column named "count" may be X while Y
// is the count pseudo-measure.
func (e *Explorer) SetXAxis(col string) error {
	if !e.data.HasColumn(col) {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, col)
	}
	if e.sel.YAxis != CountMeasure && col == e.sel.YAxis {
		return fmt.Errorf("%w: %q", ErrAxisConflict, col)
	}
	e.sel.XAxis = col
	return nil
}

// SetYAxis selects the measure: CountMeasure or a declared column other
// than the X axis.
func (e *Explorer) SetYAxis(col string) error {
	if col != CountMeasure && !e.data.HasColumn(col) {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, col)
	}
	if col != CountMeasure && col == e.sel.XAxis {
		return fmt.Errorf("%w: %q", ErrAxisConflict, col)
	}
	e.sel.YAxis = col
	return nil
}

func (e *Explorer) SetChartKind(kind ChartKind) error {
	k, err := ParseChartKind(string(kind))
	if err != nil {
		return err
	}
	e.sel.Kind = k
	return nil
}

// ToggleComparison adds col to the comparison set, or removes it if it is
// already selected. It reports whether col is selected afterwards.
func (e *Explorer) ToggleComparison(col string) (bool, error) {
	for i, c := range e.sel.Comparison {
		if c == col {
			e.sel.Comparison = append(e.sel.Comparison[:i:i], e.sel.Comparison[i+1:]...)
			return false, nil
		}
	}
	if !e.data.HasColumn(col) {
		return false, fmt.Errorf("%w: %q", ErrUnknownColumn, col)
	}
	e.sel.Comparison = append(e.sel.Comparison, col)
	return true, nil
}

// SetComparison replaces the comparison set, keeping the given order.
func (e *Explorer) SetComparison(cols ...string) error {
	for _, c := range cols {
		if !e.data.HasColumn(c) {
			return fmt.Errorf("%w: %q", ErrUnknownColumn, c)
		}
	}
	e.sel.Comparison = distinct(cols)
	return nil
}

// Chart aggregates the current axes and projects them for the current kind.
// A scatter chart over a non-numeric X axis fails before aggregation.
func (e *Explorer) Chart() (*ChartSpec, error) {
	if e.sel.Kind == ChartScatter {
		if err := CheckScatterAxis(e.data, e.sel.XAxis, e.opt); err != nil {
			return nil, err
		}
	}
	points := Aggregate(e.data, e.sel.XAxis, e.sel.YAxis, e.opt)
	return Project(points, e.sel.Kind, e.opt)
}

// Points returns the aggregated points for the current axes.
func (e *Explorer) Points() []Point {
	return Aggregate(e.data, e.sel.XAxis, e.sel.YAxis, e.opt)
}

// Statistics describes one column; false means "not available".
func (e *Explorer) Statistics(col string) (Stats, bool) {
	return DescribeColumn(e.data, col, e.opt)
}

// Compare runs the comparison over the current comparison set.
func (e *Explorer) Compare() (*Comparison, error) {
	return Compare(e.data, e.sel.Comparison, e.opt)
}

// Profile summarises every column of the session's dataset.
func (e *Explorer) Profile() []ColumnProfile {
	return Profile(e.data, e.opt)
}
