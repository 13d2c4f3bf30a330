package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/artifactbuilder/internal/artifact"
	"git.home.luguber.info/inful/artifactbuilder/internal/config"
	"git.home.luguber.info/inful/artifactbuilder/internal/eventstore"
	"git.home.luguber.info/inful/artifactbuilder/internal/git"
	"git.home.luguber.info/inful/artifactbuilder/internal/logfields"
	"git.home.luguber.info/inful/artifactbuilder/internal/metrics"
	"git.home.luguber.info/inful/artifactbuilder/internal/pipeline"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	ReleaseFlags `embed:""`

	NoHistory bool `name:"no-history" help:"Do not record this build in the history journal"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g, &b.ReleaseFlags)
	if err != nil {
		return err
	}
	return RunBuild(context.Background(), g, cfg, !b.NoHistory)
}

// RunBuild builds one artifact from cfg and reports it on g.Out.
func RunBuild(ctx context.Context, g *Global, cfg *config.Config, history bool) error {
	var rec metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if cfg.Metrics.Textfile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		rec = prom
	}

	observers := []pipeline.Observer{
		pipeline.LogObserver{Logger: g.Logger},
		pipeline.RecorderObserver{Recorder: rec},
	}
	if history && cfg.History.Enabled {
		store, err := eventstore.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		observers = append(observers, eventstore.NewHistoryObserver(store, eventstore.BuildStarted{
			SourceDir:    cfg.SourceDir,
			ArtifactDir:  cfg.ArtifactDir,
			CoreVersion:  cfg.CoreVersion,
			Bump:         cfg.Bump,
			SourceCommit: sourceCommit(ctx, g, cfg.SourceDir),
		}, g.Logger))
	}

	res, buildErr := artifact.Build(ctx, newDeps(cfg, g.Logger, rec), releaseOptions(cfg), pipeline.WithObserver(observers...))

	if prom != nil {
		if err := prom.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			g.Logger.Warn("Failed to write metrics textfile", logfields.Path(cfg.Metrics.Textfile), logfields.Error(err))
		}
	}
	if buildErr != nil {
		return buildErr
	}

	_, _ = fmt.Fprintf(g.Out, "Built %s (%s) in %s: %d files\n", res.Version, res.Legacy, res.BuildDir, len(res.Files))
	_, _ = fmt.Fprintln(g.Out, res.Report.Summary())
	for _, w := range res.Report.Warnings {
		_, _ = fmt.Fprintf(g.Out, "warning: %v\n", w)
	}
	return nil
}

// sourceCommit resolves HEAD of the package repository. A package outside a
// repository is journaled without a commit.
func sourceCommit(ctx context.Context, g *Global, dir string) string {
	commit, err := git.NewClient(g.Logger).Head(ctx, dir)
	if err != nil {
		g.Logger.Debug("Source commit unavailable", logfields.Dir(dir), logfields.Error(err))
		return ""
	}
	return commit
}
