package anomaly

import (
	"math"
	"strings"
	"testing"

	"github.com/FocuswithJustin/versestats/core/aggregate"
	"github.com/FocuswithJustin/versestats/core/corpus"
	"github.com/FocuswithJustin/versestats/core/errors"
	"github.com/FocuswithJustin/versestats/core/stats"
)

func obs(values ...float64) []Observation[int] {
	out := make([]Observation[int], len(values))
	for i, v := range values {
		out[i] = Observation[int]{Key: i, Value: v}
	}
	return out
}

func TestNew(t *testing.T) {
	for _, th := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := New(th); !errors.Is(err, errors.ErrInvalidInput) {
			t.Errorf("New(%v) error = %v, want ErrInvalidInput", th, err)
		}
	}
	d, err := New(DefaultThreshold)
	if err != nil || d.Threshold() != 2 {
		t.Errorf("New(2) = %v, %v", d, err)
	}
}

func TestDetectNoVariance(t *testing.T) {
	d, _ := New(DefaultThreshold)
	out := Detect(d, obs(7, 7, 7, 7, 7))
	if out.Status != stats.NoVariance {
		t.Errorf("Status = %v, want no_variance", out.Status)
	}
	if len(out.Flags) != 0 || out.Count != 5 || out.Mean != 7 {
		t.Errorf("Outcome = %+v", out)
	}
}

func TestDetectNoVarianceFractional(t *testing.T) {
	d, _ := New(DefaultThreshold)
	for _, n := range []int{3, 5, 7, 114} {
		for _, v := range []float64{6369.4, 0.1, 1.0 / 3, 2741.857142857143} {
			values := make([]float64, n)
			for i := range values {
				values[i] = v
			}
			out := Detect(d, obs(values...))
			if out.Status != stats.NoVariance {
				t.Errorf("Detect(%d x %v) status = %v, std_dev = %v, want no_variance", n, v, out.Status, out.StdDev)
			}
			if out.StdDev != 0 || out.Mean != v || len(out.Flags) != 0 {
				t.Errorf("Detect(%d x %v) = %+v", n, v, out)
			}
		}
	}
}

func TestDetectInsufficient(t *testing.T) {
	d, _ := New(DefaultThreshold)
	for _, in := range [][]float64{nil, {3}} {
		if out := Detect(d, obs(in...)); out.Status != stats.InsufficientData || out.Flags == nil {
			t.Errorf("Detect(%v) = %+v, want insufficient_data with empty flags", in, out)
		}
	}
}

func TestDetectFlags(t *testing.T) {
	d, _ := New(DefaultThreshold)
	// mean 2, population stdev 3: z(11) = 3, z(1) = -1/3
	values := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 11}
	out := Detect(d, obs(values...))
	if out.Status != stats.OK {
		t.Fatalf("Status = %v", out.Status)
	}
	if math.Abs(out.StdDev-3) > 1e-9 {
		t.Errorf("StdDev = %v, want 3", out.StdDev)
	}
	if len(out.Flags) != 1 {
		t.Fatalf("Flags = %+v, want one", out.Flags)
	}
	f := out.Flags[0]
	if f.Key != 9 || f.Direction != High || math.Abs(f.Z-3) > 1e-9 {
		t.Errorf("Flag = %+v", f)
	}

	low := Detect(d, obs(10, 10, 10, 10, 10, 10, 10, 10, 10, 0))
	if len(low.Flags) != 1 || low.Flags[0].Direction != Low {
		t.Errorf("low flags = %+v", low.Flags)
	}
}

func TestDetectThresholdIsExclusive(t *testing.T) {
	// mean 0, stdev 1, z = ±1 exactly
	d, _ := New(1)
	if out := Detect(d, obs(-1, 1)); len(out.Flags) != 0 {
		t.Errorf("Flags = %+v, want none at |z| == threshold", out.Flags)
	}
}

func TestDetectTableAndGroups(t *testing.T) {
	c, err := corpus.Load(strings.NewReader("1|1|a a a a a a a a a a a a b c d e f g h i j\n1|2|k\n1|3|k\n1|4|k\n1|5|k l m n o p q r s t u v w x y z"), nil)
	if err != nil {
		t.Fatal(err)
	}
	d, _ := New(DefaultThreshold)
	ex := aggregate.Unigram[string, string](aggregate.Identity[string])

	table := aggregate.Aggregate(aggregate.Groups(c, aggregate.ScopeCorpus, aggregate.Words), ex)[0].Table
	out := DetectTable(d, table)
	if len(out.Flags) == 0 || out.Flags[0].Key != "a" {
		t.Errorf("DetectTable() flags = %+v, want a flagged first", out.Flags)
	}

	verses := aggregate.Aggregate(aggregate.Groups(c, aggregate.ScopeVerse, aggregate.Words), ex)
	same := DetectGroups(d, verses, func(r aggregate.Result[string]) float64 { return 1 })
	if same.Status != stats.NoVariance {
		t.Errorf("DetectGroups(constant) status = %v", same.Status)
	}
	byLen := DetectGroups(d, verses, func(r aggregate.Result[string]) float64 { return float64(r.Items) })
	if byLen.Count != 5 || byLen.Status != stats.OK {
		t.Errorf("DetectGroups(items) = %+v", byLen)
	}
}
