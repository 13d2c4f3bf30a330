package commands

import (
	"fmt"

	"git.home.luguber.info/inful/artifactbuilder/internal/versioning"
)

// ConvertCmd implements the 'convert' command. Legacy input such as
// 8.x-1.2 becomes 1.2.0; semantic input becomes legacy under --core-version.
type ConvertCmd struct {
	Version     string `arg:"" help:"Version to convert"`
	CoreVersion string `name:"core-version" help:"Core prefix for legacy output (default from configuration)"`
}

func (c *ConvertCmd) Run(g *Global, root *CLI) error {
	if versioning.IsValidLegacy(c.Version) {
		v, err := versioning.ToSemantic(c.Version)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(g.Out, v)
		return nil
	}

	v, err := versioning.ParseSemantic(c.Version)
	if err != nil {
		return err
	}
	core := c.CoreVersion
	if core == "" {
		cfg, err := root.loadConfig(g, nil)
		if err != nil {
			return err
		}
		core = cfg.CoreVersion
	}
	_, _ = fmt.Fprintln(g.Out, versioning.ToLegacy(core, v))
	return nil
}
