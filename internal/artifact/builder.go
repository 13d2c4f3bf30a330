package artifact

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/artifactbuilder/internal/composer"
	"git.home.luguber.info/inful/artifactbuilder/internal/metrics"
	"git.home.luguber.info/inful/artifactbuilder/internal/pipeline"
	"git.home.luguber.info/inful/artifactbuilder/internal/versioning"
)

// NewBuildPipeline registers the release build steps. Every capability comes
// from deps; nothing is looked up globally.
func NewBuildPipeline(deps Deps, opts Options, popts ...pipeline.Option) (*pipeline.Pipeline, error) {
	s, err := newSteps(deps, opts)
	if err != nil {
		return nil, err
	}
	p := pipeline.NewPipeline(popts...)
	if err := s.register(p, nil); err != nil {
		return nil, err
	}
	if err := p.RegisterPinned(StepCleanupCollect, cleanupCollectOffset,
		"List transient paths in the build directory", s.cleanupCollect(pipeline.Defer(KeyBuildDir))); err != nil {
		return nil, err
	}
	if err := p.RegisterPinned(StepCleanupDelete, cleanupDeleteOffset,
		"Remove the listed transient paths", s.cleanupDelete(pipeline.Defer(KeyFilesToCleanup))); err != nil {
		return nil, err
	}
	return p, nil
}

// planSteps never write to the file system.
var planSteps = map[pipeline.StepName]bool{
	StepInitState:           true,
	StepDetectLatestVersion: true,
	StepComposeNextVersion:  true,
	StepCollectFiles:        true,
}

// NewPlanPipeline registers the read-only subset of the build: it resolves
// the next version and the file selection without creating anything.
func NewPlanPipeline(deps Deps, opts Options, popts ...pipeline.Option) (*pipeline.Pipeline, error) {
	s, err := newSteps(deps, opts)
	if err != nil {
		return nil, err
	}
	p := pipeline.NewPipeline(popts...)
	if err := s.register(p, planSteps); err != nil {
		return nil, err
	}
	return p, nil
}

func newSteps(deps Deps, opts Options) (*steps, error) {
	if deps.FS == nil {
		return nil, ErrMissingDependency.WithContext("dependency", "filesystem")
	}
	if deps.Tags == nil {
		return nil, ErrMissingDependency.WithContext("dependency", "tag lister")
	}
	if deps.Recorder == nil {
		deps.Recorder = metrics.NoopRecorder{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &steps{deps: deps, opts: opts, log: deps.Logger}, nil
}

// register adds the weighted steps, restricted to only when it is non-nil.
// Weights do not depend on the restriction.
func (s *steps) register(p *pipeline.Pipeline, only map[pipeline.StepName]bool) error {
	defs := []struct {
		name pipeline.StepName
		desc string
		fn   pipeline.Step
	}{
		{StepInitState, "Read the package manifest and seed the build state", s.initState},
		{StepDetectLatestVersion, "Select the latest release tag merged into HEAD", s.detectLatestVersion},
		{StepComposeNextVersion, "Bump the latest version and derive its legacy form",
			s.composeNextVersion(pipeline.Defer(KeyLatestVersion), pipeline.Defer(KeyVersionPartToBump), pipeline.Defer(KeyCoreVersion))},
		{StepComposeBuildDir, "Compose {artifact_dir}/{version}/{type}", s.composeBuildDir},
		{StepPrepareDirectory, "Recreate the build directory empty", s.prepareDirectory(pipeline.Defer(KeyBuildDir))},
		{StepCollectFiles, "Select files by the package kind's rules", s.collectFiles},
		{StepCopyFiles, "Copy the selected files into the build directory",
			s.copyFiles(pipeline.Defer(KeyFiles), pipeline.Defer(KeyBuildDir))},
		{StepBumpVersionRoot, "Write the next version into the copied manifest", s.bumpVersionRoot},
		{StepCollectExtensionDirs, "Find the extension directories inside the build", s.collectExtensionDirs},
		{StepBumpVersionExtensions, "Write the legacy version into extension info files",
			s.bumpVersionExtensions(pipeline.Defer(KeyCustomExtensionDirs), pipeline.Defer(KeyNextLegacy))},
	}
	for i, d := range defs {
		if only != nil && !only[d.name] {
			continue
		}
		err := p.Register(pipeline.StepDef{
			Name:        d.name,
			Weight:      firstWeight + i*weightStep,
			Description: d.desc,
			Fn:          d.fn,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Result summarizes a build.
type Result struct {
	Report *pipeline.BuildReport
	// Latest is the selected release tag, empty when there was none.
	Latest   string
	Kind     composer.Kind
	BuildDir string
	Version  versioning.Version
	Legacy   string
	Files    []string
}

// Build runs the release pipeline once on a fresh state. On failure the
// returned Result still carries whatever the steps before the failure
// produced; the build directory is left as is.
func Build(ctx context.Context, deps Deps, opts Options, popts ...pipeline.Option) (*Result, error) {
	p, err := NewBuildPipeline(deps, opts, popts...)
	if err != nil {
		return nil, err
	}
	return run(ctx, p)
}

// Plan resolves what Build would produce without touching the file system.
// Result.BuildDir stays empty.
func Plan(ctx context.Context, deps Deps, opts Options, popts ...pipeline.Option) (*Result, error) {
	p, err := NewPlanPipeline(deps, opts, popts...)
	if err != nil {
		return nil, err
	}
	return run(ctx, p)
}

func run(ctx context.Context, p *pipeline.Pipeline) (*Result, error) {
	report, runErr := p.Run(ctx, pipeline.NewState())
	res := &Result{Report: report}
	if report != nil && report.State != nil {
		st := report.State
		res.Latest, _ = pipeline.Lookup(st, KeyLatestVersion)
		res.BuildDir, _ = pipeline.Lookup(st, KeyBuildDir)
		res.Version, _ = pipeline.Lookup(st, KeyNextVersion)
		res.Legacy, _ = pipeline.Lookup(st, KeyNextLegacy)
		res.Files, _ = pipeline.Lookup(st, KeyFiles)
		res.Kind, _ = pipeline.Lookup(st, KeyPackageKind)
	}
	return res, runErr
}
