package analysis

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData reports a column or sample without usable numeric values.
	ErrNoData = errors.New("no numeric data")

	// ErrInsufficientSelection is matched by a ValidationError raised when
	// fewer than two columns are selected for comparison.
	ErrInsufficientSelection = errors.New("insufficient selection")

	// ErrNonNumericAxis reports a scatter chart requested over a categorical X axis.
	ErrNonNumericAxis = errors.New("axis is not numeric")

	ErrUnknownColumn    = errors.New("unknown column")
	ErrAxisConflict     = errors.New("x and y axis must differ")
	ErrUnknownChartKind = errors.New("unknown chart kind")
)

// ValidationError is a user-input problem with the current selection. It is
// meant to be shown as a notice; the selection itself stays intact.
type ValidationError struct {
	Reason   string
	Selected int
	Err      error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "validation failed"
	}
	if errors.Is(e.Err, ErrInsufficientSelection) {
		return fmt.Sprintf("%s: select at least %d columns to compare (got %d)", e.Reason, minCompareColumns, e.Selected)
	}
	return e.Reason
}

func (e *ValidationError) Unwrap() error { return e.Err }

// AxisError names the column that made a chart request invalid.
type AxisError struct {
	Column string
	Label  string // offending value, if any
	Err    error
}

func (e *AxisError) Error() string {
	if e == nil {
		return "invalid axis"
	}
	msg := e.Err.Error()
	if e.Column != "" {
		msg = fmt.Sprintf("column %q: %s", e.Column, msg)
	}
	if e.Label != "" {
		msg = fmt.Sprintf("%s (value %q)", msg, e.Label)
	}
	return msg
}

func (e *AxisError) Unwrap() error { return e.Err }
