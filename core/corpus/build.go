package corpus

import (
	"io"

	"github.com/FocuswithJustin/versestats/core/arabic"
	"github.com/FocuswithJustin/versestats/core/gematria"
	"github.com/FocuswithJustin/versestats/core/morph"
)

// Build derives verses from loader lines: normalize, tokenize, then encode
// and analyze each token. A nil port degrades to unresolved morphology.
func Build(lines []Line, port morph.Port) *Corpus {
	port = morph.OrNop(port)
	verses := make([]Verse, len(lines))
	for i, ln := range lines {
		normalized := arabic.Normalize(ln.Text)
		surfaces := arabic.Tokenize(normalized)
		tokens := make([]Token, len(surfaces))
		for j, s := range surfaces {
			tokens[j] = Token{
				Surface:  s,
				Lemma:    port.Lemma(s),
				Root:     port.Root(s),
				Gematria: gematria.Value(s),
			}
		}
		verses[i] = Verse{
			Chapter:    ln.Chapter,
			Index:      ln.Verse,
			Raw:        ln.Text,
			Normalized: normalized,
			Tokens:     tokens,
		}
	}
	return New(verses)
}

// Load reads lines from r and builds a corpus.
func Load(r io.Reader, port morph.Port) (*Corpus, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, err
	}
	return Build(lines, port), nil
}
