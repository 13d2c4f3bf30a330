package commands

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/artifactbuilder/internal/eventstore"
	"git.home.luguber.info/inful/artifactbuilder/internal/foundation/errors"
)

// ErrBuildNotFound reports an unknown --build id.
var ErrBuildNotFound = errors.NotFoundError("build not found in history").Build()

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int    `short:"n" help:"Number of builds to show" default:"10"`
	Build string `help:"Show the step journal of one build" placeholder:"ID"`
}

func (h *HistoryCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g, nil)
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfg.History.Path); stderrors.Is(err, os.ErrNotExist) {
		_, _ = fmt.Fprintln(g.Out, "No builds recorded.")
		return nil
	}

	store, err := eventstore.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	if h.Build != "" {
		return h.showBuild(ctx, g, store)
	}

	projection := eventstore.NewBuildHistoryProjection(store, h.Limit)
	if err := projection.Rebuild(ctx); err != nil {
		return err
	}
	builds := projection.Recent(h.Limit)
	if len(builds) == 0 {
		_, _ = fmt.Fprintln(g.Out, "No builds recorded.")
		return nil
	}

	w := tabwriter.NewWriter(g.Out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "STARTED\tBUILD\tSTATUS\tVERSION\tLEGACY\tFILES\tDURATION")
	for _, b := range builds {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			b.StartedAt.Local().Format(time.DateTime), b.BuildID, b.Status,
			dash(b.Version), dash(b.Legacy), b.FileCount, b.Duration)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if last, ok := projection.LastCompleted(); ok {
		_, _ = fmt.Fprintf(g.Out, "\nLast completed: %s %s %s at %s\n",
			last.BuildID, last.Status, dash(last.Version), last.CompletedAt.Local().Format(time.DateTime))
	}
	return nil
}

func (h *HistoryCmd) showBuild(ctx context.Context, g *Global, store eventstore.Store) error {
	events, err := store.GetByBuildID(ctx, h.Build)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return ErrBuildNotFound.WithContext("build_id", h.Build)
	}

	w := tabwriter.NewWriter(g.Out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TIME\tEVENT\tDETAIL")
	for _, e := range events {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", e.Timestamp.Local().Format(time.DateTime), e.Type, eventDetail(e))
	}
	return w.Flush()
}

func eventDetail(e eventstore.Event) string {
	switch e.Type {
	case eventstore.TypeStepCompleted:
		var p eventstore.StepCompleted
		if e.Decode(&p) != nil {
			return ""
		}
		if p.Error != "" {
			return fmt.Sprintf("%s %s (%dms): %s", p.Step, p.Result, p.DurationMS, p.Error)
		}
		return fmt.Sprintf("%s %s (%dms)", p.Step, p.Result, p.DurationMS)
	case eventstore.TypeBuildCompleted:
		var p eventstore.BuildCompleted
		if e.Decode(&p) != nil {
			return ""
		}
		return fmt.Sprintf("%s %s %s", p.Outcome, dash(p.Version), dash(p.BuildDir))
	case eventstore.TypeBuildStarted:
		var p eventstore.BuildStarted
		if e.Decode(&p) != nil {
			return ""
		}
		return fmt.Sprintf("source=%s commit=%s bump=%s", p.SourceDir, dash(shortCommit(p.SourceCommit)), dash(p.Bump))
	}
	return ""
}

func shortCommit(c string) string {
	if len(c) > 12 {
		return c[:12]
	}
	return c
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
