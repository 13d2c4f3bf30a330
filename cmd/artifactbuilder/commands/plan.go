package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/artifactbuilder/internal/artifact"
	"git.home.luguber.info/inful/artifactbuilder/internal/logfields"
	"git.home.luguber.info/inful/artifactbuilder/internal/metrics"
	"git.home.luguber.info/inful/artifactbuilder/internal/pipeline"
)

// NextVersionCmd implements the 'next-version' command.
type NextVersionCmd struct {
	ReleaseFlags `embed:""`

	Legacy bool `short:"l" help:"Print only the legacy version"`
}

func (n *NextVersionCmd) Run(g *Global, root *CLI) error {
	res, err := plan(g, root, &n.ReleaseFlags)
	if err != nil {
		return err
	}
	if n.Legacy {
		_, _ = fmt.Fprintln(g.Out, res.Legacy)
		return nil
	}
	latest := res.Latest
	if latest == "" {
		latest = "none"
	}
	_, _ = fmt.Fprintf(g.Out, "latest: %s\nnext:   %s\nlegacy: %s\n", latest, res.Version, res.Legacy)
	return nil
}

// FilesCmd implements the 'files' command.
type FilesCmd struct {
	ReleaseFlags `embed:""`
}

func (f *FilesCmd) Run(g *Global, root *CLI) error {
	res, err := plan(g, root, &f.ReleaseFlags)
	if err != nil {
		return err
	}
	for _, p := range res.Files {
		_, _ = fmt.Fprintln(g.Out, p)
	}
	g.Logger.Info("Files selected", logfields.Kind(string(res.Kind)), logfields.Count(len(res.Files)))
	return nil
}

func plan(g *Global, root *CLI, flags *ReleaseFlags) (*artifact.Result, error) {
	cfg, err := root.loadConfig(g, flags)
	if err != nil {
		return nil, err
	}
	return artifact.Plan(context.Background(),
		newDeps(cfg, g.Logger, metrics.NoopRecorder{}),
		releaseOptions(cfg),
		pipeline.WithObserver(pipeline.LogObserver{Logger: g.Logger}))
}
