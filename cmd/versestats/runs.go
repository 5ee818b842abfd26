package main

import (
	"encoding/json"

	"github.com/FocuswithJustin/versestats/internal/store"
)

// RunsGroup contains stored run operations.
type RunsGroup struct {
	List RunsListCmd `cmd:"" help:"List runs stored in a SQLite database"`
	Show RunsShowCmd `cmd:"" help:"Print the stored report of a run"`
}

// RunsListCmd lists stored runs.
type RunsListCmd struct {
	DB   string `arg:"" help:"SQLite database" type:"existingfile"`
	JSON bool   `help:"Print runs as JSON"`
}

func (c *RunsListCmd) Run(e *env) error {
	s, err := store.Open(e.ctx, c.DB)
	if err != nil {
		return err
	}
	defer s.Close()
	runs, err := s.Runs(e.ctx)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(e.out)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}
	p := &printer{w: e.out}
	for _, r := range runs {
		p.printf("%s  %s  %6d verses  %7d tokens  %.12s  %s\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Verses, r.Tokens, r.ReportFingerprint, r.CorpusPath)
	}
	if len(runs) == 0 {
		p.printf("No runs stored\n")
	}
	return p.err
}

// RunsShowCmd prints the stored JSON report of a run.
type RunsShowCmd struct {
	DB string `arg:"" help:"SQLite database" type:"existingfile"`
	ID string `arg:"" help:"Run ID"`
}

func (c *RunsShowCmd) Run(e *env) error {
	s, err := store.Open(e.ctx, c.DB)
	if err != nil {
		return err
	}
	defer s.Close()
	report, err := s.Report(e.ctx, c.ID)
	if err != nil {
		return err
	}
	if _, err := e.out.Write(report); err != nil {
		return err
	}
	_, err = e.out.Write([]byte("\n"))
	return err
}
