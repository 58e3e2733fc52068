package analysis

// Mode returns the most frequent value in s. Among values tied for the
// highest frequency, the one that appears first in s wins. It reports false
// for an empty sample.
func Mode(s Sample) (float64, bool) {
	if len(s) == 0 {
		return 0, false
	}
	counts := make(map[float64]int, len(s))
	for _, x := range s {
		counts[x]++
	}
	best, bestCount := s[0], 0
	for _, x := range s {
		if c := counts[x]; c > bestCount {
			best, bestCount = x, c
		}
	}
	return best, true
}
