package fsops

import "git.home.luguber.info/inful/artifactbuilder/internal/foundation/errors"

var (
	// ErrRootNotFound indicates a tree query started from a missing directory.
	ErrRootNotFound = errors.NotFoundError("directory does not exist").Build()

	// ErrWalkFailed indicates a directory could not be listed.
	ErrWalkFailed = errors.FileSystemError("failed to walk directory").Build()

	// ErrCopyFailed indicates a path could not be copied into the build directory.
	ErrCopyFailed = errors.FileSystemError("failed to copy path").Build()

	// ErrPrepareFailed indicates the build directory could not be recreated.
	ErrPrepareFailed = errors.FileSystemError("failed to prepare directory").Build()

	// ErrRemoveFailed indicates a path could not be removed.
	ErrRemoveFailed = errors.FileSystemError("failed to remove path").Build()
)
