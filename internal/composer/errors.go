package composer

import "git.home.luguber.info/inful/artifactbuilder/internal/foundation/errors"

var (
	// ErrManifestNotFound indicates the package has no manifest file.
	ErrManifestNotFound = errors.NotFoundError("package manifest not found").Build()

	// ErrManifestUnreadable indicates the manifest could not be read or decoded.
	ErrManifestUnreadable = errors.ValidationError("package manifest is not valid JSON").Build()

	// ErrUnsupportedType indicates a package type no artifact can be built for.
	ErrUnsupportedType = errors.ValidationError("unsupported package type").Build()
)
