package commands

import (
	"log/slog"

	"git.home.luguber.info/inful/artifactbuilder/internal/artifact"
	"git.home.luguber.info/inful/artifactbuilder/internal/config"
	"git.home.luguber.info/inful/artifactbuilder/internal/fsops"
	"git.home.luguber.info/inful/artifactbuilder/internal/git"
	"git.home.luguber.info/inful/artifactbuilder/internal/metrics"
)

// ReleaseFlags override the release settings of the configuration file.
type ReleaseFlags struct {
	Source       string `short:"s" help:"Package root (overrides source_dir)" placeholder:"DIR"`
	ArtifactDir  string `name:"artifact-dir" help:"Output root relative to the package root"`
	CoreVersion  string `name:"core-version" help:"Core prefix of legacy versions, for example 9.x"`
	Bump         string `short:"b" help:"major, minor, patch, pre-release, meta-data or an explicit version"`
	ArtifactType string `name:"artifact-type" help:"Last segment of the build directory"`
	ComposerFile string `name:"composer-file" help:"Package manifest file name"`
}

func (f *ReleaseFlags) apply(cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.SourceDir, f.Source)
	set(&cfg.ArtifactDir, f.ArtifactDir)
	set(&cfg.CoreVersion, f.CoreVersion)
	set(&cfg.Bump, f.Bump)
	set(&cfg.ArtifactType, f.ArtifactType)
	set(&cfg.ComposerFile, f.ComposerFile)
}

// newDeps wires the real file system and git repository of the package.
func newDeps(cfg *config.Config, logger *slog.Logger, rec metrics.Recorder) artifact.Deps {
	return artifact.Deps{
		FS:       fsops.NewOS(cfg.SourceDir),
		Tags:     git.NewClient(logger),
		Recorder: rec,
		Logger:   logger,
	}
}

func releaseOptions(cfg *config.Config) artifact.Options {
	return artifact.Options{
		RepoDir:      cfg.SourceDir,
		ArtifactDir:  cfg.ArtifactDir,
		CoreVersion:  cfg.CoreVersion,
		Bump:         cfg.Bump,
		ArtifactType: cfg.ArtifactType,
		ComposerFile: cfg.ComposerFile,
	}
}
