package artifact

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/artifactbuilder/internal/cleanup"
	"git.home.luguber.info/inful/artifactbuilder/internal/composer"
	"git.home.luguber.info/inful/artifactbuilder/internal/filerules"
	"git.home.luguber.info/inful/artifactbuilder/internal/fsops"
	"git.home.luguber.info/inful/artifactbuilder/internal/infofile"
	"git.home.luguber.info/inful/artifactbuilder/internal/logfields"
	"git.home.luguber.info/inful/artifactbuilder/internal/pipeline"
	"git.home.luguber.info/inful/artifactbuilder/internal/versioning"
)

// Step names in execution order.
const (
	StepInitState             pipeline.StepName = "init_state"
	StepDetectLatestVersion   pipeline.StepName = "detect_latest_version"
	StepComposeNextVersion    pipeline.StepName = "compose_next_version"
	StepComposeBuildDir       pipeline.StepName = "compose_build_dir"
	StepPrepareDirectory      pipeline.StepName = "prepare_directory"
	StepCollectFiles          pipeline.StepName = "collect_files"
	StepCopyFiles             pipeline.StepName = "copy_files"
	StepBumpVersionRoot       pipeline.StepName = "bump_version_root"
	StepCollectExtensionDirs  pipeline.StepName = "collect_extension_dirs"
	StepBumpVersionExtensions pipeline.StepName = "bump_version_extensions"
	StepCleanupCollect        pipeline.StepName = "cleanup_collect"
	StepCleanupDelete         pipeline.StepName = "cleanup_delete"
)

const (
	firstWeight = -240
	weightStep  = 10

	cleanupCollectOffset = 9990
	cleanupDeleteOffset  = 9999
)

// packageRoot is the source tree root inside the FileSystem.
const packageRoot = "."

// steps holds the capabilities and options every step closes over.
type steps struct {
	deps Deps
	opts Options
	log  *slog.Logger
}

func (s *steps) initState(_ context.Context, st *pipeline.State) error {
	pipeline.Set(st, KeyCoreVersion, s.opts.CoreVersion)
	pipeline.Set(st, KeyVersionPartToBump, s.opts.Bump)

	info, err := composer.Load(s.deps.FS, packageRoot, s.opts.ComposerFile)
	if err != nil {
		return err
	}
	kind, err := info.Kind()
	if err != nil {
		return err
	}
	artifactType := s.opts.ArtifactType
	if artifactType == "" {
		artifactType = info.Type
	}
	pipeline.Set(st, KeyComposerInfo, info)
	pipeline.Set(st, KeyPackageKind, kind)
	pipeline.Set(st, KeyArtifactType, artifactType)
	vendor, name := composer.SplitPackageName(info.Name)
	s.log.Debug("Loaded package manifest",
		logfields.Vendor(vendor), logfields.Package(name), logfields.Kind(string(kind)), logfields.Path(info.File))
	return nil
}

func (s *steps) detectLatestVersion(ctx context.Context, st *pipeline.State) error {
	pipeline.Set(st, KeyLatestVersion, "")
	tags, err := s.deps.Tags.MergedTags(ctx, s.opts.RepoDir)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		return pipeline.Warn(StepDetectLatestVersion, err)
	}
	latest, ok := versioning.SelectLatest(tags)
	if !ok {
		s.log.Info("No release tag found", logfields.Count(len(tags)))
		return nil
	}
	pipeline.Set(st, KeyLatestVersion, latest)
	s.log.Info("Detected latest version", logfields.Tag(latest), logfields.Count(len(tags)))
	return nil
}

func (s *steps) composeNextVersion(latest, policy, core pipeline.Arg[string]) pipeline.Step {
	return func(_ context.Context, st *pipeline.State) error {
		l, err := latest.Resolve(st)
		if err != nil {
			return err
		}
		p, err := policy.Resolve(st)
		if err != nil {
			return err
		}
		c, err := core.Resolve(st)
		if err != nil {
			return err
		}
		next, err := versioning.NextVersion(l, p, versioning.WithTokenSupplier(s.opts.TokenSupplier))
		if err != nil {
			return err
		}
		legacy := versioning.ToLegacy(c, next)
		pipeline.Set(st, KeyNextVersion, next)
		pipeline.Set(st, KeyNextLegacy, legacy)

		s.deps.Recorder.IncVersionBump(bumpLabel(p))
		s.log.Info("Composed next version", logfields.Version(next.String()), slog.String("legacy", legacy))
		return nil
	}
}

// bumpLabel names the policy for metrics without leaking explicit versions
// into label values.
func bumpLabel(policy string) string {
	if policy == "" {
		return string(versioning.DefaultPart)
	}
	if part, ok := versioning.ParsePart(policy); ok {
		return string(part)
	}
	return "explicit"
}

func (s *steps) composeBuildDir(_ context.Context, st *pipeline.State) error {
	next, err := pipeline.Get(st, KeyNextVersion)
	if err != nil {
		return err
	}
	artifactType, err := pipeline.Get(st, KeyArtifactType)
	if err != nil {
		return err
	}
	dir := fsops.Join(s.opts.ArtifactDir, next.String(), artifactType)
	pipeline.Set(st, KeyBuildDir, dir)
	return nil
}

func (s *steps) prepareDirectory(buildDir pipeline.Arg[string]) pipeline.Step {
	return func(_ context.Context, st *pipeline.State) error {
		dir, err := buildDir.Resolve(st)
		if err != nil {
			return err
		}
		return s.deps.FS.EnsureDirectory(dir)
	}
}

func (s *steps) collectFiles(_ context.Context, st *pipeline.State) error {
	info, err := pipeline.Get(st, KeyComposerInfo)
	if err != nil {
		return err
	}
	kind, err := pipeline.Get(st, KeyPackageKind)
	if err != nil {
		return err
	}
	c, err := filerules.Build(kind, filerules.Layout{
		ArtifactDir:  s.opts.ArtifactDir,
		DrupalRoot:   info.DrupalRootDir(),
		ManifestFile: info.File,
		LockFile:     info.LockFileName(),
	})
	if err != nil {
		return err
	}
	files, err := filerules.Apply(c, s.deps.FS, packageRoot)
	if err != nil {
		return err
	}
	pipeline.Set(st, KeyFiles, files)
	s.deps.Recorder.SetCollectedFiles(string(kind), len(files))
	s.log.Info("Collected files", logfields.Kind(string(kind)), logfields.Count(len(files)))
	return nil
}

func (s *steps) copyFiles(files pipeline.Arg[[]string], dir pipeline.Arg[string]) pipeline.Step {
	return func(_ context.Context, st *pipeline.State) error {
		paths, err := files.Resolve(st)
		if err != nil {
			return err
		}
		dst, err := dir.Resolve(st)
		if err != nil {
			return err
		}
		return s.deps.FS.Copy(packageRoot, dst, paths)
	}
}

func (s *steps) bumpVersionRoot(_ context.Context, st *pipeline.State) error {
	info, err := pipeline.Get(st, KeyComposerInfo)
	if err != nil {
		return err
	}
	dir, err := pipeline.Get(st, KeyBuildDir)
	if err != nil {
		return err
	}
	next, err := pipeline.Get(st, KeyNextVersion)
	if err != nil {
		return err
	}
	manifest := fsops.Join(dir, info.File)
	changed, err := infofile.BumpManifest(s.deps.FS.Raw(), manifest, next.String())
	if err != nil {
		return err
	}
	if changed {
		s.log.Debug("Rewrote manifest version", logfields.Path(manifest), logfields.Version(next.String()))
	}
	return nil
}

func (s *steps) collectExtensionDirs(_ context.Context, st *pipeline.State) error {
	info, err := pipeline.Get(st, KeyComposerInfo)
	if err != nil {
		return err
	}
	kind, err := pipeline.Get(st, KeyPackageKind)
	if err != nil {
		return err
	}
	dir, err := pipeline.Get(st, KeyBuildDir)
	if err != nil {
		return err
	}
	dirs, err := ExtensionDirs(s.deps.FS, dir, kind, info.DrupalRootDir())
	if err != nil {
		return err
	}
	pipeline.Set(st, KeyCustomExtensionDirs, dirs)
	s.log.Debug("Discovered extension directories", logfields.Count(len(dirs)))
	return nil
}

func (s *steps) bumpVersionExtensions(dirs pipeline.Arg[[]string], version pipeline.Arg[string]) pipeline.Step {
	return func(ctx context.Context, st *pipeline.State) error {
		list, err := dirs.Resolve(st)
		if err != nil {
			return err
		}
		v, err := version.Resolve(st)
		if err != nil {
			return err
		}
		for _, dir := range list {
			if err := ctx.Err(); err != nil {
				return err
			}
			updated, err := infofile.BumpDir(s.deps.FS.Raw(), dir, v)
			if err != nil {
				return err
			}
			for _, p := range updated {
				s.log.Debug("Rewrote info file version", logfields.Path(p), logfields.Version(v))
			}
		}
		return nil
	}
}

func (s *steps) cleanupCollect(buildDir pipeline.Arg[string]) pipeline.Step {
	return func(_ context.Context, st *pipeline.State) error {
		dir, err := buildDir.Resolve(st)
		if err != nil {
			return err
		}
		paths, err := cleanup.Collect(s.deps.FS, dir)
		if err != nil {
			return err
		}
		pipeline.Set(st, KeyFilesToCleanup, paths)
		return nil
	}
}

func (s *steps) cleanupDelete(paths pipeline.Arg[[]string]) pipeline.Step {
	return func(_ context.Context, st *pipeline.State) error {
		list, err := paths.Resolve(st)
		if err != nil {
			return err
		}
		if err := s.deps.FS.Remove(list); err != nil {
			return err
		}
		s.log.Debug("Removed transient paths", logfields.Count(len(list)))
		return nil
	}
}
