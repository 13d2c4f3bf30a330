// Package commands implements the artifactbuilder subcommands.
package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/artifactbuilder/internal/config"
)

// Global is shared by every subcommand.
type Global struct {
	Logger *slog.Logger
	// Level is adjusted once flags and configuration are known.
	Level *slog.LevelVar
	// Out receives command results; logs go to the handler's writer.
	Out io.Writer
}

// NewGlobal logs text to logOut and writes results to out.
func NewGlobal(out, logOut io.Writer) *Global {
	level := &slog.LevelVar{}
	return &Global{
		Logger: slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level})),
		Level:  level,
		Out:    out,
	}
}

// CLI is the root command line.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (default ${config_file})" placeholder:"PATH"`
	Verbose bool             `short:"v" help:"Enable debug logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build       BuildCmd       `cmd:"" help:"Build a release artifact of the package"`
	NextVersion NextVersionCmd `cmd:"" name:"next-version" help:"Print the version the next build would release"`
	Files       FilesCmd       `cmd:"" help:"List the files the next build would copy"`
	Steps       StepsCmd       `cmd:"" help:"List the build steps in execution order"`
	Convert     ConvertCmd     `cmd:"" help:"Convert between semantic and legacy version numbers"`
	History     HistoryCmd     `cmd:"" help:"Show recent builds from the history journal"`
	Init        InitCmd        `cmd:"" help:"Write an example configuration file"`
}

// Vars are the interpolation values the CLI tags reference.
func Vars() kong.Vars {
	return kong.Vars{"config_file": config.DefaultFileName}
}

// AfterApply sets the log level from --verbose or the environment. The
// configured level applies later, once a command loads the configuration.
func (c *CLI) AfterApply(g *Global) error {
	g.Level.Set(resolveLevel(c.Verbose, "").SlogLevel())
	return nil
}

// resolveLevel picks the level by precedence: --verbose, then the
// environment, then the configuration.
func resolveLevel(verbose bool, configured config.LogLevel) config.LogLevel {
	if verbose {
		return config.LogLevelDebug
	}
	if env, ok := os.LookupEnv(config.LogLevelEnv); ok && env != "" {
		return config.NormalizeLogLevel(env)
	}
	return config.NormalizeLogLevel(string(configured))
}

// loadConfig reads the configuration, applies flag overrides and the
// configured log level.
func (c *CLI) loadConfig(g *Global, flags *ReleaseFlags) (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if flags != nil {
		flags.apply(cfg)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	g.Level.Set(resolveLevel(c.Verbose, cfg.Logging.Level).SlogLevel())
	return cfg, nil
}
