package commands

import (
	"fmt"
	"text/tabwriter"

	"git.home.luguber.info/inful/artifactbuilder/internal/artifact"
	"git.home.luguber.info/inful/artifactbuilder/internal/metrics"
)

// StepsCmd implements the 'steps' command.
type StepsCmd struct {
	ReleaseFlags `embed:""`
}

func (s *StepsCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g, &s.ReleaseFlags)
	if err != nil {
		return err
	}
	p, err := artifact.NewBuildPipeline(newDeps(cfg, g.Logger, metrics.NoopRecorder{}), releaseOptions(cfg))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(g.Out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "WEIGHT\tSTEP\tDESCRIPTION")
	for _, d := range p.Steps() {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\n", d.Weight, d.Name, d.Description)
	}
	return w.Flush()
}
