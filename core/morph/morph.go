// Package morph defines the morphology capability consumed by the analysis
// core: lemma and root lookup for a normalized token.
//
// Ports are fail-soft. A token that cannot be analyzed yields a Result with
// Resolved set to false; no port ever returns an error from a lookup.
package morph

// Result is the outcome of a single lemma or root lookup.
type Result struct {
	Value    string `json:"value,omitempty"`
	Resolved bool   `json:"resolved"`
}

// Resolved returns a resolved Result carrying v.
func Resolved(v string) Result {
	return Result{Value: v, Resolved: true}
}

// Unresolved returns the explicit unresolved marker.
func Unresolved() Result {
	return Result{}
}

// Port is the morphological analysis capability.
// Implementations must be safe for concurrent use.
type Port interface {
	Lemma(token string) Result
	Root(token string) Result
}

// Nop is a Port that resolves nothing. It is used when no morphology
// capability is configured.
type Nop struct{}

func (Nop) Lemma(string) Result { return Unresolved() }
func (Nop) Root(string) Result  { return Unresolved() }

// Chain tries each port in order and returns the first resolved result.
type Chain []Port

func (c Chain) Lemma(token string) Result {
	for _, p := range c {
		if r := p.Lemma(token); r.Resolved {
			return r
		}
	}
	return Unresolved()
}

func (c Chain) Root(token string) Result {
	for _, p := range c {
		if r := p.Root(token); r.Resolved {
			return r
		}
	}
	return Unresolved()
}

// OrNop returns p, or Nop when p is nil.
func OrNop(p Port) Port {
	if p == nil {
		return Nop{}
	}
	return p
}
