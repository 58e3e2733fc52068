package analysis

import (
	"math"
	"strconv"
	"strings"

	"github.com/KaramelBytes/dsexplore/internal/dataset"
)

// Sample is a sequence of finite numbers taken from one column, in row order.
type Sample []float64

// ParseNumber converts a raw cell to a finite number. Numbers pass through;
// strings are parsed as decimals; null, missing, empty text, non-numeric
// text and anything that would be NaN or ±Inf report false.
func ParseNumber(v dataset.Value, opt Options) (float64, bool) {
	switch v.Kind() {
	case dataset.KindNumber:
		f, _ := v.Float()
		return f, isFinite(f)
	case dataset.KindString:
		s, _ := v.Text()
		return parseDecimal(s, opt)
	default:
		return 0, false
	}
}

// Coerce extracts the numeric sample of column. Cells that fail conversion
// are dropped; an empty result is not an error.
func Coerce(ds *dataset.Dataset, column string, opt Options) Sample {
	if ds == nil {
		return Sample{}
	}
	out := make(Sample, 0, len(ds.Rows))
	for _, r := range ds.Rows {
		if x, ok := ParseNumber(r.Get(column), opt); ok {
			out = append(out, x)
		}
	}
	return out
}

func parseDecimal(s string, opt Options) (float64, bool) {
	raw := strings.TrimSpace(strings.ReplaceAll(s, "\u00A0", " "))
	if raw == "" {
		return 0, false
	}
	if dec := opt.DecimalSeparator; dec != 0 {
		if thou := opt.ThousandsSeparator; thou != 0 && thou != dec {
			raw = strings.ReplaceAll(raw, string(thou), "")
		}
		if dec != '.' {
			if strings.Contains(raw, ".") {
				return 0, false
			}
			raw = strings.ReplaceAll(raw, string(dec), ".")
		}
	}
	// ParseFloat also accepts hex floats and "inf"/"nan"; only plain
	// decimal spellings are numbers here.
	if !plainDecimal(raw) {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || !isFinite(f) {
		return 0, false
	}
	return f, true
}

// plainDecimal reports whether s is [+-]digits[.digits][e[+-]digits].
func plainDecimal(s string) bool {
	i, n := 0, len(s)
	if i < n && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < n && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < n && s[i] == '.' {
		i++
		for i < n && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < n && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < n && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < n && s[i] >= '0' && s[i] <= '9' {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}
	return i == n
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
