package morph

import (
	"github.com/FocuswithJustin/versestats/core/cache"
)

// Cached memoizes lemma and root lookups of an underlying Port.
// Unresolved results are cached too, so a failing port is asked once per token.
type Cached struct {
	port   Port
	lemmas *cache.LRU[string, Result]
	roots  *cache.LRU[string, Result]
}

// NewCached wraps p with two LRU caches of size entries each.
// A nil p is treated as Nop.
func NewCached(p Port, size int) *Cached {
	return &Cached{
		port:   OrNop(p),
		lemmas: cache.New[string, Result](size),
		roots:  cache.New[string, Result](size),
	}
}

func (c *Cached) Lemma(token string) Result {
	return c.lemmas.Load(token, c.port.Lemma)
}

func (c *Cached) Root(token string) Result {
	return c.roots.Load(token, c.port.Root)
}

// Stats returns the lemma and root cache statistics.
func (c *Cached) Stats() (lemma, root cache.Stats) {
	return c.lemmas.Stats(), c.roots.Stats()
}
