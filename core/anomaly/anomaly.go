// Package anomaly flags aggregated values that lie far from the mean of
// their peers.
package anomaly

import (
	"math"
	"strconv"

	"github.com/FocuswithJustin/versestats/core/aggregate"
	"github.com/FocuswithJustin/versestats/core/errors"
	"github.com/FocuswithJustin/versestats/core/stats"
)

// DefaultThreshold is the absolute z-score above which a value is flagged.
const DefaultThreshold = 2.0

// Direction tells whether a flagged value is above or below the mean.
type Direction string

const (
	High Direction = "high"
	Low  Direction = "low"
)

// Observation is one value to test, keyed by what produced it.
type Observation[K any] struct {
	Key   K       `json:"key"`
	Value float64 `json:"value"`
}

// Flag is an observation whose z-score exceeded the threshold.
type Flag[K any] struct {
	Key       K         `json:"key"`
	Value     float64   `json:"value"`
	Z         float64   `json:"z"`
	Direction Direction `json:"direction"`
}

// Outcome is the result of one detection run. Status is NoVariance when all
// observations are equal and InsufficientData when there are fewer than two;
// Flags is empty in both cases.
type Outcome[K any] struct {
	Status    stats.Status `json:"status"`
	Count     int          `json:"count"`
	Mean      float64      `json:"mean"`
	StdDev    float64      `json:"std_dev"`
	Threshold float64      `json:"threshold"`
	Flags     []Flag[K]    `json:"flags"`
}

// Detector computes z-scores against the population mean and standard
// deviation of the observations it is given.
type Detector struct {
	threshold float64
}

// New returns a Detector. threshold must be positive.
func New(threshold float64) (*Detector, error) {
	if !(threshold > 0) || math.IsInf(threshold, 0) {
		return nil, errors.NewValidation("anomaly.threshold",
			strconv.FormatFloat(threshold, 'g', -1, 64), "must be a positive number")
	}
	return &Detector{threshold: threshold}, nil
}

// Threshold returns the configured threshold.
func (d *Detector) Threshold() float64 { return d.threshold }

// Detect flags observations with |z| above the threshold, in input order.
func Detect[K any](d *Detector, obs []Observation[K]) Outcome[K] {
	out := Outcome[K]{Count: len(obs), Threshold: d.threshold, Flags: []Flag[K]{}}

	values := make([]float64, len(obs))
	for i, o := range obs {
		values[i] = o.Value
	}
	sum := stats.Describe(values)
	out.Mean, out.StdDev = sum.Mean, sum.StdDev

	switch {
	case len(obs) < 2:
		out.Status = stats.InsufficientData
		return out
	case sum.Min == sum.Max:
		// a rounded mean leaves a tiny nonzero deviation for equal values
		out.Mean, out.StdDev = sum.Min, 0
		out.Status = stats.NoVariance
		return out
	}

	for _, o := range obs {
		z := (o.Value - sum.Mean) / sum.StdDev
		if math.Abs(z) <= d.threshold {
			continue
		}
		dir := High
		if z < 0 {
			dir = Low
		}
		out.Flags = append(out.Flags, Flag[K]{Key: o.Key, Value: o.Value, Z: z, Direction: dir})
	}
	return out
}

// DetectTable tests the counts of every key of t, in ranked order.
func DetectTable[K comparable](d *Detector, t *aggregate.Table[K]) Outcome[K] {
	ranked := t.Ranked()
	obs := make([]Observation[K], len(ranked))
	for i, e := range ranked {
		obs[i] = Observation[K]{Key: e.Key, Value: float64(e.Count)}
	}
	return Detect(d, obs)
}

// DetectGroups tests one scalar per group, computed by value from each
// group's result.
func DetectGroups[K comparable](d *Detector, results []aggregate.Result[K], value func(aggregate.Result[K]) float64) Outcome[aggregate.GroupID] {
	obs := make([]Observation[aggregate.GroupID], len(results))
	for i, r := range results {
		obs[i] = Observation[aggregate.GroupID]{Key: r.Group, Value: value(r)}
	}
	return Detect(d, obs)
}
