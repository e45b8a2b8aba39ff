package analysis

import (
	"math"
	"sort"
	"strings"
	"time"
)

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// stddev is the population standard deviation.
func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	m := mean(values)

	var sumSq float64

	for _, v := range values {
		d := v - m
		sumSq += d * d
	}

	return math.Sqrt(sumSq / float64(len(values)))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// monthKey buckets a date into its calendar month, e.g. "2026-08".
func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// sortedKeys returns map keys in ascending order. Month keys are
// zero-padded, so lexicographic order is chronological order.
func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// lastN returns up to n trailing elements of values.
func lastN(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}

	return values[len(values)-n:]
}

// MatchCategory reports whether two free-text category names refer to the
// same thing: case-insensitive equality or containment in either direction.
// Free-text categories are an upstream given; a closed taxonomy would
// replace this helper.
func MatchCategory(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a == "" || b == "" {
		return false
	}

	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}
