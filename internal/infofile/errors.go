package infofile

import "git.home.luguber.info/inful/artifactbuilder/internal/foundation/errors"

var (
	// ErrInvalidInfo indicates an info file that is not a YAML mapping.
	ErrInvalidInfo = errors.ValidationError("info file is not a YAML mapping").Build()

	// ErrInvalidManifest indicates a manifest that is not a JSON object.
	ErrInvalidManifest = errors.ValidationError("manifest is not a JSON object").Build()

	// ErrVersionType indicates a declared version that is not a string.
	ErrVersionType = errors.ValidationError("version is not a string").Build()

	// ErrRewrite indicates a metadata file could not be read or written back.
	ErrRewrite = errors.FileSystemError("cannot rewrite version metadata").Build()
)
