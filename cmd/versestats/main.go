// Command versestats is the CLI for statistical analysis of Arabic verse
// corpora. It loads a corpus, runs every dimension at corpus, chapter and
// verse scope, and reports rankings, anomalies, readability and
// distributions.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/versestats/internal/logging"
)

const version = "0.4.0"

// Globals are flags shared by every command.
type Globals struct {
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log format (text, json)"`
	Config    string `name:"config" short:"c" help:"YAML run configuration" type:"path"`
}

func (g *Globals) initLogging() error {
	level, err := logging.ParseLevel(g.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(g.LogFormat)
	if err != nil {
		return err
	}
	logging.InitLogger(level, format)
	return nil
}

// env carries what commands need from the process.
type env struct {
	ctx context.Context
	out io.Writer
}

// CLI defines the command-line interface for versestats.
type CLI struct {
	Globals `embed:""`

	// Command groups (noun-first organization)
	Analyze   AnalyzeCmd   `cmd:"" help:"Analyze a corpus across every dimension and scope"`
	Verify    VerifyCmd    `cmd:"" help:"Check that analysis of a corpus is deterministic"`
	Search    SearchGroup  `cmd:"" help:"Search verses by word, phrase, position and value"`
	Gematria  GematriaCmd  `cmd:"" help:"Print the abjad value of text"`
	Normalize NormalizeCmd `cmd:"" help:"Print normalized text and its tokens"`
	Runs      RunsGroup    `cmd:"" help:"Stored analysis runs"`
	Version   VersionCmd   `cmd:"" help:"Print version information"`
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(e *env) error {
	_, err := io.WriteString(e.out, "versestats version "+version+"\n")
	return err
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("versestats"),
		kong.Description("Statistical analysis of Arabic verse corpora"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	kctx.FatalIfErrorf(cli.Globals.initLogging())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err := kctx.Run(&cli.Globals, &env{ctx: ctx, out: os.Stdout})
	kctx.FatalIfErrorf(err)
}
