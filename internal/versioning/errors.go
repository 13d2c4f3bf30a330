package versioning

import "git.home.luguber.info/inful/artifactbuilder/internal/foundation/errors"

var (
	// ErrParse indicates a malformed version string in either scheme.
	ErrParse = errors.VersionError("malformed version").Build()

	// ErrInvalidBumpTarget indicates an unknown bump part or a pre-release
	// that cannot be incremented.
	ErrInvalidBumpTarget = errors.VersionError("invalid bump target").Build()
)
