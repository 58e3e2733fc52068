package analysis

import (
	"fmt"
	"strings"
)

// AggFunc is the single aggregate applied to a Y column within an X group.
type AggFunc string

const (
	AggSum  AggFunc = "sum"
	AggMean AggFunc = "mean"
	AggMin  AggFunc = "min"
	AggMax  AggFunc = "max"
)

// ParseAggFunc accepts sum|mean|avg|min|max (case-insensitive).
func ParseAggFunc(s string) (AggFunc, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sum":
		return AggSum, nil
	case "mean", "avg", "average":
		return AggMean, nil
	case "min":
		return AggMin, nil
	case "max":
		return AggMax, nil
	default:
		return "", fmt.Errorf("unsupported aggregate: %s (use sum|mean|min|max)", s)
	}
}

// Options controls numeric coercion and aggregation.
type Options struct {
	// DecimalSeparator for numeric strings. If 0, strings must be plain
	// decimals ("1.5"); locale forms like "1,5" do not coerce.
	DecimalSeparator rune
	// ThousandsSeparator is stripped before parsing when DecimalSeparator is set.
	ThousandsSeparator rune
	// Aggregate applied to a measure column per X group. Empty means sum.
	Aggregate AggFunc
	// OutlierThreshold is the robust |z| above which a value counts as an
	// outlier in column profiles. 0 disables outlier counting.
	OutlierThreshold float64
}

// DefaultOptions returns strict decimal parsing and sum aggregation.
func DefaultOptions() Options {
	return Options{
		Aggregate:        AggSum,
		OutlierThreshold: 3.5,
	}
}

func (o Options) aggregate() AggFunc {
	if o.Aggregate == "" {
		return AggSum
	}
	return o.Aggregate
}
