package artifact

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-git/go-billy/v5"

	"git.home.luguber.info/inful/artifactbuilder/internal/filerules"
	"git.home.luguber.info/inful/artifactbuilder/internal/fsops"
	"git.home.luguber.info/inful/artifactbuilder/internal/metrics"
	"git.home.luguber.info/inful/artifactbuilder/internal/versioning"
)

// DefaultCoreVersion is the core major prefix of legacy version numbers.
const DefaultCoreVersion = "8.x"

// TagLister lists the tags merged into the checked out branch of dir.
type TagLister interface {
	MergedTags(ctx context.Context, dir string) ([]string, error)
}

// FileSystem is the file capability the build steps need. Paths are relative
// to the package root. *fsops.FS implements it.
type FileSystem interface {
	Find(root string, q fsops.Query) ([]fsops.Entry, error)
	Exists(p string) (bool, error)
	ReadFile(p string) ([]byte, error)
	Copy(srcRoot, dstRoot string, paths []string) error
	EnsureDirectory(dir string) error
	Remove(paths []string) error
	Raw() billy.Filesystem
}

// Deps are the external capabilities of a build.
type Deps struct {
	FS   FileSystem
	Tags TagLister
	// Recorder receives build metrics. Defaults to metrics.NoopRecorder.
	Recorder metrics.Recorder
	Logger   *slog.Logger
}

// Options configure one build.
type Options struct {
	// RepoDir is handed to the tag lister. It is an OS path, unlike every
	// other path here.
	RepoDir string
	// ArtifactDir is the output root relative to the package root.
	ArtifactDir string
	CoreVersion string
	// Bump is a version part name or an explicit next version. Empty means minor.
	Bump string
	// ArtifactType names the last build directory segment. Empty means the
	// manifest's package type.
	ArtifactType string
	// ComposerFile overrides the manifest file name.
	ComposerFile  string
	TokenSupplier versioning.TokenSupplier
}

func (o Options) withDefaults() Options {
	if o.RepoDir == "" {
		o.RepoDir = "."
	}
	if o.ArtifactDir == "" {
		o.ArtifactDir = filerules.DefaultArtifactDir
	}
	if o.CoreVersion == "" {
		o.CoreVersion = DefaultCoreVersion
	}
	if o.TokenSupplier == nil {
		o.TokenSupplier = versioning.DefaultTokenSupplier
	}
	o.ArtifactDir = fsops.Clean(o.ArtifactDir)
	return o
}

func (o Options) validate() error {
	switch {
	case o.ArtifactDir == ".":
		return ErrInvalidOptions.WithContext("artifact_dir", o.ArtifactDir).WithContext("reason", "must not be the package root")
	case o.ArtifactDir == ".." || strings.HasPrefix(o.ArtifactDir, "../"):
		return ErrInvalidOptions.WithContext("artifact_dir", o.ArtifactDir).WithContext("reason", "must stay inside the package root")
	case strings.ContainsAny(o.ArtifactType, `/\`) || o.ArtifactType == "." || o.ArtifactType == "..":
		return ErrInvalidOptions.WithContext("artifact_type", o.ArtifactType)
	}
	return nil
}
