package analysis

import (
	"math"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/dsexplore/internal/dataset"
)

// Stat is a statistic that may be undefined for a sample, e.g. skewness of
// a constant column. Zero is a real value, so absence is carried by Valid.
type Stat struct {
	Value float64
	Valid bool
}

func validStat(v float64) Stat { return Stat{Value: v, Valid: true} }

func (s Stat) String() string {
	if !s.Valid {
		return "n/a"
	}
	return strconv.FormatFloat(s.Value, 'g', 6, 64)
}

func (s Stat) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

func (s Stat) MarshalYAML() (any, error) {
	if !s.Valid {
		return nil, nil
	}
	return s.Value, nil
}

// Stats is the descriptive statistics of one non-empty numeric sample.
// Variance and the standardized moments use population definitions.
type Stats struct {
	Count    int     `json:"count" yaml:"count"`
	Mean     float64 `json:"mean" yaml:"mean"`
	Median   float64 `json:"median" yaml:"median"`
	Mode     float64 `json:"mode" yaml:"mode"`
	Variance float64 `json:"variance" yaml:"variance"`
	StdDev   float64 `json:"standard_deviation" yaml:"standard_deviation"`
	Min      float64 `json:"min" yaml:"min"`
	Max      float64 `json:"max" yaml:"max"`
	// Undefined when Variance is 0.
	Skewness       Stat `json:"skewness" yaml:"skewness"`
	Kurtosis       Stat `json:"kurtosis" yaml:"kurtosis"`
	ExcessKurtosis Stat `json:"excess_kurtosis" yaml:"excess_kurtosis"`
}

// Describe computes the statistics record for s. It reports false when s is
// empty; callers render that as "not available" rather than zeros.
func Describe(s Sample) (Stats, bool) {
	if len(s) == 0 {
		return Stats{}, false
	}
	// mean and M2 via Welford update
	var n int
	var mean, m2 float64
	for _, x := range s {
		n++
		delta := x - mean
		mean += delta / float64(n)
		m2 += delta * (x - mean)
	}
	variance := m2 / float64(n)
	if variance < 0 {
		variance = 0
	}

	data := stats.Float64Data(s)
	median, _ := stats.Median(data)
	lo, _ := stats.Min(data)
	hi, _ := stats.Max(data)
	mode, _ := Mode(s)

	out := Stats{
		Count:    n,
		Mean:     mean,
		Median:   median,
		Mode:     mode,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		Min:      lo,
		Max:      hi,
	}
	if variance > 0 {
		m3 := stat.MomentAbout(3, s, mean, nil)
		m4 := stat.MomentAbout(4, s, mean, nil)
		out.Skewness = validStat(m3 / math.Pow(variance, 1.5))
		k := m4 / (variance * variance)
		out.Kurtosis = validStat(k)
		out.ExcessKurtosis = validStat(k - 3)
	}
	return out, true
}

// DescribeColumn coerces column and describes the result.
func DescribeColumn(ds *dataset.Dataset, column string, opt Options) (Stats, bool) {
	return Describe(Coerce(ds, column, opt))
}
