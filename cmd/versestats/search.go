package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/FocuswithJustin/versestats/core/corpus"
	"github.com/FocuswithJustin/versestats/core/search"
)

// SearchGroup contains verse search operations.
type SearchGroup struct {
	Word     SearchWordCmd     `cmd:"" help:"Verses containing a word"`
	Phrase   SearchPhraseCmd   `cmd:"" help:"Verses containing a contiguous phrase"`
	Count    SearchCountCmd    `cmd:"" help:"Count occurrences of a word or phrase"`
	Length   SearchLengthCmd   `cmd:"" help:"Verses with an exact word count or a multiple of one"`
	Gematria SearchGematriaCmd `cmd:"" help:"Tokens or verses with a gematria value"`
	Match    SearchMatchCmd    `cmd:"" help:"Verses where a phrase's value equals a verse attribute"`
	Position SearchPositionCmd `cmd:"" help:"Verses with a word or phrase at a 1-based position"`
	Range    SearchRangeCmd    `cmd:"" help:"Occurrences of a word or phrase within a verse range"`
}

// HitOutput selects how hits are printed.
type HitOutput struct {
	JSON bool `help:"Print hits as JSON"`
}

func (o HitOutput) print(w io.Writer, c *corpus.Corpus, hits []search.Hit) error {
	if o.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(hits)
	}
	p := &printer{w: w}
	for _, h := range hits {
		if h.Position > 0 {
			p.printf("%-8s @%-3d %s\n", h.Ref, h.Position, text(c, h))
		} else {
			p.printf("%-8s      %s\n", h.Ref, text(c, h))
		}
	}
	p.printf("%d hits\n", len(hits))
	return p.err
}

func text(c *corpus.Corpus, h search.Hit) string {
	if v, ok := c.Verse(h.Ref); ok {
		return v.Raw
	}
	return h.Text
}

// searchCorpus loads the corpus a search runs over. Searches do not use
// morphology.
func searchCorpus(e *env, path string) (*corpus.Corpus, error) {
	return loadCorpus(e.ctx, path, nil)
}

type SearchWordCmd struct {
	Corpus    string `arg:"" help:"Corpus file"`
	Word      string `arg:"" help:"Word to find"`
	Chapter   int    `help:"Restrict to one chapter"`
	HitOutput `embed:""`
}

func (c *SearchWordCmd) Run(e *env) error {
	crp, err := searchCorpus(e, c.Corpus)
	if err != nil {
		return err
	}
	if c.Chapter > 0 {
		return c.print(e.out, crp, search.InChapter(crp, c.Word, c.Chapter))
	}
	return c.print(e.out, crp, search.Word(crp, c.Word))
}

type SearchPhraseCmd struct {
	Corpus    string   `arg:"" help:"Corpus file"`
	Phrase    []string `arg:"" help:"Phrase tokens"`
	HitOutput `embed:""`
}

func (c *SearchPhraseCmd) Run(e *env) error {
	crp, err := searchCorpus(e, c.Corpus)
	if err != nil {
		return err
	}
	return c.print(e.out, crp, search.Phrase(crp, strings.Join(c.Phrase, " ")))
}

type SearchCountCmd struct {
	Corpus string   `arg:"" help:"Corpus file"`
	Phrase []string `arg:"" help:"Word or phrase tokens"`
}

func (c *SearchCountCmd) Run(e *env) error {
	crp, err := searchCorpus(e, c.Corpus)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.out, search.Count(crp, strings.Join(c.Phrase, " ")))
	return err
}

type SearchLengthCmd struct {
	Corpus    string `arg:"" help:"Corpus file"`
	Words     int    `arg:"" help:"Word count"`
	Multiple  bool   `help:"Match word counts that are a multiple of the given count"`
	HitOutput `embed:""`
}

func (c *SearchLengthCmd) Run(e *env) error {
	crp, err := searchCorpus(e, c.Corpus)
	if err != nil {
		return err
	}
	if !c.Multiple {
		return c.print(e.out, crp, search.WordCount(crp, c.Words))
	}
	hits, err := search.WordCountMultiple(crp, c.Words)
	if err != nil {
		return err
	}
	return c.print(e.out, crp, hits)
}

type SearchGematriaCmd struct {
	Corpus    string `arg:"" help:"Corpus file"`
	Value     int    `arg:"" help:"Gematria value"`
	Verses    bool   `help:"Match verse totals instead of single tokens"`
	HitOutput `embed:""`
}

func (c *SearchGematriaCmd) Run(e *env) error {
	crp, err := searchCorpus(e, c.Corpus)
	if err != nil {
		return err
	}
	if c.Verses {
		return c.print(e.out, crp, search.VersesWithValue(crp, c.Value))
	}
	return c.print(e.out, crp, search.TokensWithValue(crp, c.Value))
}

type SearchMatchCmd struct {
	Corpus    string   `arg:"" help:"Corpus file"`
	Phrase    []string `arg:"" help:"Phrase tokens"`
	Attr      string   `default:"word-count" enum:"word-count,verse-index,chapter-index" help:"Verse attribute compared with the phrase value"`
	HitOutput `embed:""`
}

func (c *SearchMatchCmd) Run(e *env) error {
	crp, err := searchCorpus(e, c.Corpus)
	if err != nil {
		return err
	}
	hits, err := search.ValueMatches(crp, strings.Join(c.Phrase, " "), search.Attribute(c.Attr))
	if err != nil {
		return err
	}
	return c.print(e.out, crp, hits)
}

type SearchPositionCmd struct {
	Corpus    string   `arg:"" help:"Corpus file"`
	Position  int      `arg:"" help:"1-based token position"`
	Phrase    []string `arg:"" help:"Word or phrase tokens"`
	HitOutput `embed:""`
}

func (c *SearchPositionCmd) Run(e *env) error {
	crp, err := searchCorpus(e, c.Corpus)
	if err != nil {
		return err
	}
	hits, err := search.AtPosition(crp, strings.Join(c.Phrase, " "), c.Position)
	if err != nil {
		return err
	}
	return c.print(e.out, crp, hits)
}

type SearchRangeCmd struct {
	Corpus    string   `arg:"" help:"Corpus file"`
	Range     string   `arg:"" help:"Verse range such as 2, 2:1-5 or 2:1-3:4"`
	Phrase    []string `arg:"" help:"Word or phrase tokens"`
	HitOutput `embed:""`
}

func (c *SearchRangeCmd) Run(e *env) error {
	r, err := corpus.ParseRange(c.Range)
	if err != nil {
		return err
	}
	crp, err := searchCorpus(e, c.Corpus)
	if err != nil {
		return err
	}
	return c.print(e.out, crp, search.InRange(crp, strings.Join(c.Phrase, " "), r))
}
