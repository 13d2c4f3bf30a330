package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/artifactbuilder/cmd/artifactbuilder/commands"
	"git.home.luguber.info/inful/artifactbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/artifactbuilder/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := commands.NewGlobal(os.Stdout, os.Stderr)

	parser := kong.Parse(cli,
		kong.Name("artifactbuilder"),
		kong.Description("Build versioned release artifacts of Drupal packages."),
		kong.UsageOnError(),
		commands.Vars(),
		kong.Vars{"version": version.Current().String()},
		kong.Bind(global),
	)

	if err := parser.Run(global, cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
	}
}
