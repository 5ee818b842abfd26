package main

import (
	"strings"

	"github.com/FocuswithJustin/versestats/core/arabic"
	"github.com/FocuswithJustin/versestats/core/gematria"
)

// GematriaCmd prints the abjad value of each token and of the whole text.
type GematriaCmd struct {
	Text []string `arg:"" help:"Arabic text"`
}

func (c *GematriaCmd) Run(e *env) error {
	p := &printer{w: e.out}
	tokens := arabic.Tokenize(arabic.Normalize(strings.Join(c.Text, " ")))
	for _, tok := range tokens {
		p.printf("%-20s %6d", tok, gematria.Value(tok))
		if un := gematria.Unmapped(tok); len(un) > 0 {
			p.printf("  (unmapped: %q)", string(un))
		}
		p.printf("\n")
	}
	p.printf("%-20s %6d\n", "total", gematria.PhraseValue(tokens))
	return p.err
}

// NormalizeCmd prints normalized text and its tokens.
type NormalizeCmd struct {
	Text []string `arg:"" help:"Arabic text"`
}

func (c *NormalizeCmd) Run(e *env) error {
	p := &printer{w: e.out}
	norm := arabic.Normalize(strings.Join(c.Text, " "))
	p.printf("%s\n", norm)
	p.printf("%s\n", strings.Join(arabic.Tokenize(norm), " | "))
	return p.err
}
