package config

import "git.home.luguber.info/inful/artifactbuilder/internal/foundation/errors"

var (
	// ErrConfigNotFound indicates an explicitly named configuration file is missing.
	ErrConfigNotFound = errors.ConfigError("configuration file not found").Build()

	// ErrConfigUnreadable indicates the configuration file could not be read or written.
	ErrConfigUnreadable = errors.ConfigError("configuration file unreadable").Build()

	// ErrConfigInvalid indicates malformed YAML or a value that fails validation.
	ErrConfigInvalid = errors.ConfigError("invalid configuration").Build()

	// ErrConfigExists indicates init would overwrite a configuration file.
	ErrConfigExists = errors.ConfigError("configuration file already exists (use --force to overwrite)").Build()
)
