package analysis

import (
	"math"
	"runtime"
	"sort"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/dsexplore/internal/dataset"
)

// Column kinds reported by Profile.
const (
	KindNumeric     = "numeric"
	KindCategorical = "categorical"
	KindMixed       = "mixed"
	KindEmpty       = "empty"
)

// ColumnProfile summarises one declared column so a host can populate axis
// selectors and decide which columns are eligible for scatter charts.
type ColumnProfile struct {
	Name     string `json:"name" yaml:"name"`
	Kind     string `json:"kind" yaml:"kind"`
	Present  int    `json:"present" yaml:"present"`
	Missing  int    `json:"missing" yaml:"missing"` // absent, null or empty text
	Numeric  int    `json:"numeric" yaml:"numeric"`
	Distinct int    `json:"distinct" yaml:"distinct"`
	// Scatter is true when every row's value coerces to a number.
	Scatter bool `json:"scatter" yaml:"scatter"`
	// Robust outliers (|z| via MAD) among numeric values.
	Outliers         int     `json:"outliers,omitempty" yaml:"outliers,omitempty"`
	OutliersMaxAbsZ  float64 `json:"outliers_max_abs_z,omitempty" yaml:"outliers_max_abs_z,omitempty"`
	OutlierThreshold float64 `json:"outlier_threshold,omitempty" yaml:"outlier_threshold,omitempty"`
	// Most frequent labels for non-numeric columns.
	TopValues []CategoryCount `json:"top_values,omitempty" yaml:"top_values,omitempty"`
}

type CategoryCount struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

const (
	maxTopValues      = 8
	minOutlierSamples = 8
)

// Profile summarises every declared column of ds in column order. Columns
// are profiled concurrently; ds is only read.
func Profile(ds *dataset.Dataset, opt Options) []ColumnProfile {
	if ds == nil {
		return nil
	}
	out := make([]ColumnProfile, len(ds.Columns))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, col := range ds.Columns {
		i, col := i, col
		g.Go(func() error {
			out[i] = profileColumn(ds, col, opt)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func profileColumn(ds *dataset.Dataset, col string, opt Options) ColumnProfile {
	p := ColumnProfile{Name: col}
	cats := map[string]int{}
	var nums Sample
	for _, r := range ds.Rows {
		v := r.Get(col)
		if isBlank(v) {
			p.Missing++
			continue
		}
		p.Present++
		cats[v.String()]++
		if x, ok := ParseNumber(v, opt); ok {
			p.Numeric++
			nums = append(nums, x)
		}
	}
	p.Distinct = len(cats)

	switch {
	case p.Present == 0:
		p.Kind = KindEmpty
	case p.Numeric == p.Present:
		p.Kind = KindNumeric
	case p.Numeric == 0:
		p.Kind = KindCategorical
	default:
		p.Kind = KindMixed
	}
	p.Scatter = p.Kind == KindNumeric && p.Missing == 0

	if p.Kind != KindNumeric {
		p.TopValues = topValues(cats, maxTopValues)
	}
	if thr := opt.OutlierThreshold; thr > 0 && len(nums) >= minOutlierSamples {
		p.Outliers, p.OutliersMaxAbsZ = robustOutliers(nums, thr)
		p.OutlierThreshold = thr
	}
	return p
}

func isBlank(v dataset.Value) bool {
	switch v.Kind() {
	case dataset.KindMissing, dataset.KindNull:
		return true
	case dataset.KindString:
		s, _ := v.Text()
		return s == ""
	default:
		return false
	}
}

func topValues(cats map[string]int, limit int) []CategoryCount {
	tops := make([]CategoryCount, 0, len(cats))
	for k, v := range cats {
		tops = append(tops, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(tops, func(i, j int) bool {
		if tops[i].Count == tops[j].Count {
			return tops[i].Value < tops[j].Value
		}
		return tops[i].Count > tops[j].Count
	})
	if len(tops) > limit {
		tops = tops[:limit]
	}
	return tops
}

// robustOutliers counts values whose robust z-score 0.6745*(x-median)/MAD
// exceeds thr. A zero MAD reports no outliers.
func robustOutliers(s Sample, thr float64) (count int, maxAbsZ float64) {
	data := stats.Float64Data(s)
	median, err := stats.Median(data)
	if err != nil {
		return 0, 0
	}
	mad, err := stats.MedianAbsoluteDeviationPopulation(data)
	if err != nil || mad == 0 {
		return 0, 0
	}
	for _, v := range s {
		az := math.Abs(0.6745 * (v - median) / mad)
		if az > thr {
			count++
		}
		if az > maxAbsZ {
			maxAbsZ = az
		}
	}
	return count, maxAbsZ
}
