package artifact

import "git.home.luguber.info/inful/artifactbuilder/internal/foundation/errors"

var (
	// ErrMissingDependency indicates a Builder constructed without a required capability.
	ErrMissingDependency = errors.InternalError("missing build dependency").Build()

	// ErrInvalidOptions indicates options that cannot produce a build directory.
	ErrInvalidOptions = errors.ValidationError("invalid build options").Build()
)
