package analysis

import (
	"encoding/hex"
	"encoding/json"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/versestats/core/aggregate"
	"github.com/FocuswithJustin/versestats/core/anomaly"
	"github.com/FocuswithJustin/versestats/core/corpus"
	"github.com/FocuswithJustin/versestats/core/readability"
	"github.com/FocuswithJustin/versestats/core/stats"
)

// Report is the full result of one analysis run. It holds only plain values
// so it can be serialized as is.
type Report struct {
	Corpus      CorpusInfo          `json:"corpus"`
	Dimensions  []DimensionResult   `json:"dimensions"`
	Scalars     []ScalarAnomaly     `json:"scalar_anomalies"`
	Readability []ReadabilityResult `json:"readability"`
	Semantic    SemanticComplexity  `json:"semantic_complexity"`
	Sentences   SentenceLengths     `json:"sentence_lengths"`
	Correlation Correlation         `json:"length_gematria_correlation"`
	Comparison  []SubsetResult      `json:"comparison,omitempty"`
}

// CorpusInfo describes the analyzed corpus.
type CorpusInfo struct {
	Verses      int               `json:"verses"`
	Chapters    int               `json:"chapters"`
	Tokens      int               `json:"tokens"`
	Fingerprint string            `json:"fingerprint"`
	Morphology  corpus.MorphStats `json:"morphology"`
}

// DimensionResult holds one dimension at every scope.
type DimensionResult struct {
	Name   string        `json:"name"`
	Family Family        `json:"family"`
	Scopes []ScopeResult `json:"scopes"`
}

// ScopeResult is one dimension at one scope. Anomaly tests the corpus table
// and is set for the corpus scope only.
type ScopeResult struct {
	Scope   aggregate.Scope          `json:"scope"`
	Groups  []GroupTable             `json:"groups"`
	Anomaly *anomaly.Outcome[string] `json:"anomaly,omitempty"`
}

// GroupTable is the summarized table of one group. Anomaly is set at the
// chapter and verse scopes of per-group dimensions.
type GroupTable struct {
	Group   aggregate.GroupID          `json:"group"`
	Items   int                        `json:"items"`
	Summary stats.TableSummary[string] `json:"summary"`
	Anomaly *anomaly.Outcome[string]   `json:"anomaly,omitempty"`
}

// ScalarAnomaly is anomaly detection over one numeric aggregate per group.
type ScalarAnomaly struct {
	Name    string                             `json:"name"`
	Scope   aggregate.Scope                    `json:"scope"`
	Outcome anomaly.Outcome[aggregate.GroupID] `json:"outcome"`
}

// ReadabilityResult is readability at one scope.
type ReadabilityResult struct {
	Scope  aggregate.Scope           `json:"scope"`
	Groups []readability.GroupScores `json:"groups"`
}

// DimensionStat reports the cost of one dimension at one scope.
type DimensionStat struct {
	Name     string
	Scope    aggregate.Scope
	Groups   int
	Keys     int
	Duration float64 // seconds
}

// Fingerprint returns the hex BLAKE3-256 digest of the JSON encoding of r.
// Two runs over the same corpus and options produce the same fingerprint.
func (r *Report) Fingerprint() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Dimension returns the named dimension result.
func (r *Report) Dimension(name string) (*DimensionResult, bool) {
	for i := range r.Dimensions {
		if r.Dimensions[i].Name == name {
			return &r.Dimensions[i], true
		}
	}
	return nil, false
}

// Scope returns the result at scope s.
func (d *DimensionResult) Scope(s aggregate.Scope) (*ScopeResult, bool) {
	for i := range d.Scopes {
		if d.Scopes[i].Scope == s {
			return &d.Scopes[i], true
		}
	}
	return nil, false
}
