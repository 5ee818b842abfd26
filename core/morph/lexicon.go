package morph

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/versestats/core/arabic"
	"github.com/FocuswithJustin/versestats/core/errors"
)

// Entry is one lexicon record. Empty Lemma or Root means the lexicon does
// not know that reduction for the form.
type Entry struct {
	Form  string
	Lemma string
	Root  string
}

// Lexicon is a Port backed by a static form table, loaded from XML of the shape:
//
//	<lexicon>
//	  <entry form="الحمد" lemma="حمد" root="حمد"/>
//	</lexicon>
//
// Forms, lemmas and roots are normalized on load so lookups match tokens
// produced by arabic.Tokenize. A Lexicon is read-only after loading.
type Lexicon struct {
	entries map[string]Entry
}

var entryExpr = xpath.MustCompile("//entry")

// LoadLexicon parses an XML lexicon from r.
func LoadLexicon(r io.Reader) (*Lexicon, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, &errors.ParseError{Format: "lexicon", Message: "malformed XML", Err: err}
	}

	lex := &Lexicon{entries: make(map[string]Entry)}
	for i, node := range xmlquery.QuerySelectorAll(doc, entryExpr) {
		form := arabic.Normalize(node.SelectAttr("form"))
		if form == "" {
			return nil, errors.NewParse("lexicon", 0, node.OutputXML(true),
				fmt.Sprintf("entry %d has no form", i+1))
		}
		if _, dup := lex.entries[form]; dup {
			return nil, errors.NewParse("lexicon", 0, node.OutputXML(true),
				fmt.Sprintf("entry %d repeats form %s", i+1, form))
		}
		lex.entries[form] = Entry{
			Form:  form,
			Lemma: arabic.Normalize(node.SelectAttr("lemma")),
			Root:  arabic.Normalize(node.SelectAttr("root")),
		}
	}
	return lex, nil
}

// LoadLexiconFile reads and parses the XML lexicon at path.
func LoadLexiconFile(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	lex, err := LoadLexicon(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "lexicon %s", path)
	}
	return lex, nil
}

// NewLexicon builds a Lexicon from in-memory entries. Later entries replace
// earlier ones with the same normalized form.
func NewLexicon(entries ...Entry) *Lexicon {
	lex := &Lexicon{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		e.Form = arabic.Normalize(e.Form)
		e.Lemma = arabic.Normalize(e.Lemma)
		e.Root = arabic.Normalize(e.Root)
		lex.entries[e.Form] = e
	}
	return lex
}

// Len returns the number of forms in the lexicon.
func (l *Lexicon) Len() int { return len(l.entries) }

func (l *Lexicon) Lemma(token string) Result {
	return lookup(l.entries, token, func(e Entry) string { return e.Lemma })
}

func (l *Lexicon) Root(token string) Result {
	return lookup(l.entries, token, func(e Entry) string { return e.Root })
}

func lookup(entries map[string]Entry, token string, field func(Entry) string) Result {
	e, ok := entries[strings.TrimSpace(token)]
	if !ok {
		return Unresolved()
	}
	if v := field(e); v != "" {
		return Resolved(v)
	}
	return Unresolved()
}
