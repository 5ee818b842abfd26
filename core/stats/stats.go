// Package stats computes distribution summaries over aggregation tables and
// numeric samples.
//
// Degenerate input never produces NaN or an error. Every summary carries a
// Status, and fields that cannot be computed are left at zero.
package stats

import (
	"fmt"
	"math"
	"sort"
)

// Status annotates whether a statistic could be computed.
type Status int

const (
	OK Status = iota
	// InsufficientData means too few samples: none for a mean, fewer than
	// two for a variance or correlation.
	InsufficientData
	// NoVariance means every sample has the same value.
	NoVariance
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case InsufficientData:
		return "insufficient_data"
	case NoVariance:
		return "no_variance"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Summary describes a sample of numbers.
type Summary struct {
	Status   Status  `json:"status"`
	Count    int     `json:"count"`
	Sum      float64 `json:"sum"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
}

// Describe summarizes xs using the population variance. A single sample gets
// its mean, median and extremes but Status InsufficientData.
func Describe(xs []float64) Summary {
	s := Summary{Count: len(xs)}
	if len(xs) == 0 {
		s.Status = InsufficientData
		return s
	}

	s.Min, s.Max = xs[0], xs[0]
	for _, x := range xs {
		s.Sum += x
		s.Min = math.Min(s.Min, x)
		s.Max = math.Max(s.Max, x)
	}
	s.Mean = s.Sum / float64(len(xs))
	s.Median = Median(xs)

	if len(xs) < 2 {
		s.Status = InsufficientData
		return s
	}
	if s.Min == s.Max {
		s.Mean = s.Min
		return s
	}
	s.Variance = variance(xs, s.Mean)
	s.StdDev = math.Sqrt(s.Variance)
	return s
}

func constant(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}

func variance(xs []float64, mean float64) float64 {
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return ss / float64(len(xs))
}

// Mean returns the arithmetic mean of xs, or InsufficientData when empty.
func Mean(xs []float64) (float64, Status) {
	if len(xs) == 0 {
		return 0, InsufficientData
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs)), OK
}

// Median returns the middle value of xs, averaging the two middle values of
// an even-length sample. It returns 0 for an empty sample.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := sortedCopy(xs)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// Modes returns every most frequent value of xs in ascending order.
func Modes(xs []int) []int {
	if len(xs) == 0 {
		return nil
	}
	counts := make(map[int]int, len(xs))
	best := 0
	for _, x := range xs {
		counts[x]++
		best = max(best, counts[x])
	}
	var out []int
	for x, n := range counts {
		if n == best {
			out = append(out, x)
		}
	}
	sort.Ints(out)
	return out
}

// Bucket is one value of a frequency distribution.
type Bucket struct {
	Value int `json:"value"`
	Count int `json:"count"`
}

// Frequency returns the distinct values of xs with their counts, ascending
// by value.
func Frequency(xs []int) []Bucket {
	counts := make(map[int]int)
	for _, x := range xs {
		counts[x]++
	}
	out := make([]Bucket, 0, len(counts))
	for v, n := range counts {
		out = append(out, Bucket{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// Quantiles returns the n-1 cut points dividing xs into n groups, using the
// exclusive method (linear interpolation over positions 1..len(xs)).
// It needs at least two samples and n >= 2.
func Quantiles(xs []float64, n int) ([]float64, Status) {
	if n < 2 || len(xs) < 2 {
		return nil, InsufficientData
	}
	data := sortedCopy(xs)
	ld := len(data)
	m := ld + 1
	out := make([]float64, 0, n-1)
	for i := 1; i < n; i++ {
		j := i * m / n
		j = min(max(j, 1), ld-1)
		delta := i*m - j*n
		out = append(out, (data[j-1]*float64(n-delta)+data[j]*float64(delta))/float64(n))
	}
	return out, OK
}

// Pearson returns the correlation coefficient of xs and ys. It needs two
// paired samples or more, and non-zero variance in both series.
func Pearson(xs, ys []float64) (float64, Status) {
	if len(xs) != len(ys) || len(xs) < 2 || constant(xs) || constant(ys) {
		return 0, InsufficientData
	}
	mx, _ := Mean(xs)
	my, _ := Mean(ys)
	var sxy, sxx, syy float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0, InsufficientData
	}
	return sxy / math.Sqrt(sxx*syy), OK
}

// Floats converts integer samples.
func Floats(xs []int) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}

func sortedCopy(xs []float64) []float64 {
	out := append([]float64(nil), xs...)
	sort.Float64s(out)
	return out
}
