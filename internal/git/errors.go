package git

import "git.home.luguber.info/inful/artifactbuilder/internal/foundation/errors"

var (
	// ErrNotRepository indicates the directory is not inside a git working copy.
	ErrNotRepository = errors.GitError("not a git repository").Build()

	// ErrNoHead indicates the repository has no commits yet.
	ErrNoHead = errors.GitError("repository has no HEAD commit").Build()

	// ErrTagRead indicates the tag references could not be read or resolved.
	ErrTagRead = errors.GitError("cannot read tags").Build()
)
