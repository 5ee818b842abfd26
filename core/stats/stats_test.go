package stats

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/FocuswithJustin/versestats/core/aggregate"
	"github.com/FocuswithJustin/versestats/core/corpus"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want Summary
	}{
		{"empty", nil, Summary{Status: InsufficientData}},
		{"single", []float64{4}, Summary{Status: InsufficientData, Count: 1, Sum: 4, Mean: 4, Min: 4, Max: 4, Median: 4}},
		{"pair", []float64{2, 4}, Summary{Count: 2, Sum: 6, Mean: 3, Variance: 1, StdDev: 1, Min: 2, Max: 4, Median: 3}},
		{"odd", []float64{9, 1, 2}, Summary{Count: 3, Sum: 12, Mean: 4, Variance: 38.0 / 3, StdDev: math.Sqrt(38.0 / 3), Min: 1, Max: 9, Median: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Describe(tt.in)
			if got.Status != tt.want.Status || got.Count != tt.want.Count ||
				!approx(got.Mean, tt.want.Mean) || !approx(got.Variance, tt.want.Variance) ||
				!approx(got.StdDev, tt.want.StdDev) || got.Min != tt.want.Min ||
				got.Max != tt.want.Max || got.Median != tt.want.Median || got.Sum != tt.want.Sum {
				t.Errorf("Describe(%v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDescribeEqualFractions(t *testing.T) {
	s := Describe([]float64{6369.4, 6369.4, 6369.4})
	if s.StdDev != 0 || s.Variance != 0 || s.Mean != 6369.4 || s.Status != OK {
		t.Errorf("Describe(3 x 6369.4) = %+v, want zero variance around 6369.4", s)
	}
}

func TestMeanMedianModes(t *testing.T) {
	if _, st := Mean(nil); st != InsufficientData {
		t.Errorf("Mean(nil) status = %v", st)
	}
	if m, st := Mean([]float64{1, 2, 6}); st != OK || m != 3 {
		t.Errorf("Mean() = %v, %v", m, st)
	}
	if got := Median([]float64{5, 1, 3, 2}); got != 2.5 {
		t.Errorf("Median() = %v, want 2.5", got)
	}
	if got := Modes([]int{3, 1, 3, 1, 2}); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("Modes() = %v, want [1 3]", got)
	}
	if got := Modes(nil); got != nil {
		t.Errorf("Modes(nil) = %v", got)
	}
}

func TestFrequency(t *testing.T) {
	got := Frequency([]int{4, 2, 4, 7})
	want := []Bucket{{2, 1}, {4, 2}, {7, 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Frequency() = %v, want %v", got, want)
	}
}

func TestQuantiles(t *testing.T) {
	tests := []struct {
		in   []float64
		n    int
		want []float64
	}{
		{[]float64{0, 1, 2}, 3, []float64{1.0 / 3, 5.0 / 3}},
		{[]float64{1, 2, 3, 4, 5, 6, 7, 8}, 4, []float64{2.25, 4.5, 6.75}},
		{[]float64{5, 5}, 3, []float64{5, 5}},
	}
	for _, tt := range tests {
		got, st := Quantiles(tt.in, tt.n)
		if st != OK || len(got) != len(tt.want) {
			t.Fatalf("Quantiles(%v, %d) = %v, %v", tt.in, tt.n, got, st)
		}
		for i := range got {
			if !approx(got[i], tt.want[i]) {
				t.Errorf("Quantiles(%v, %d)[%d] = %v, want %v", tt.in, tt.n, i, got[i], tt.want[i])
			}
		}
	}
	if _, st := Quantiles([]float64{1}, 3); st != InsufficientData {
		t.Errorf("Quantiles(single) status = %v", st)
	}
}

func TestPearson(t *testing.T) {
	if r, st := Pearson([]float64{1, 2, 3}, []float64{2, 4, 6}); st != OK || !approx(r, 1) {
		t.Errorf("Pearson(linear) = %v, %v", r, st)
	}
	if r, st := Pearson([]float64{1, 2, 3}, []float64{3, 2, 1}); st != OK || !approx(r, -1) {
		t.Errorf("Pearson(inverse) = %v, %v", r, st)
	}
	if _, st := Pearson([]float64{1, 2}, []float64{5, 5}); st != InsufficientData {
		t.Errorf("Pearson(constant) status = %v", st)
	}
	if _, st := Pearson([]float64{1, 2, 3}, []float64{6369.4, 6369.4, 6369.4}); st != InsufficientData {
		t.Errorf("Pearson(constant fraction) status = %v", st)
	}
	if _, st := Pearson([]float64{1}, []float64{1}); st != InsufficientData {
		t.Errorf("Pearson(single) status = %v", st)
	}
}

func TestSummarizeTable(t *testing.T) {
	c, err := corpus.Load(strings.NewReader("1|1|a b a\n1|2|c a\n2|1|"), nil)
	if err != nil {
		t.Fatal(err)
	}
	ex := aggregate.Unigram[string, string](aggregate.Identity[string])
	corpusTable := aggregate.Aggregate(aggregate.Groups(c, aggregate.ScopeCorpus, aggregate.Words), ex)[0].Table

	s := SummarizeTable(corpusTable, 2)
	if s.Status != OK || s.Total != 5 || s.Unique != 3 {
		t.Fatalf("SummarizeTable() = %+v", s)
	}
	// counts 3,1,1
	if !approx(s.Mean, 5.0/3) || !approx(s.Variance, 8.0/9) {
		t.Errorf("mean=%v variance=%v", s.Mean, s.Variance)
	}
	if len(s.Top) != 2 || s.Top[0].Key != "a" || s.Top[1].Key != "b" {
		t.Errorf("Top = %v", s.Top)
	}

	groups := SummarizeResults(aggregate.Aggregate(aggregate.Groups(c, aggregate.ScopeVerse, aggregate.Words), ex), 5)
	if len(groups) != 3 {
		t.Fatalf("len(SummarizeResults()) = %d, want 3", len(groups))
	}
	if groups[2].Status != InsufficientData || groups[2].Group.String() != "2:1" || groups[2].Top == nil {
		t.Errorf("empty verse summary = %+v", groups[2])
	}
}

func TestStatusText(t *testing.T) {
	for st, want := range map[Status]string{OK: "ok", InsufficientData: "insufficient_data", NoVariance: "no_variance"} {
		b, _ := st.MarshalText()
		if string(b) != want {
			t.Errorf("MarshalText(%d) = %q, want %q", st, b, want)
		}
	}
}
