package pipeline

import "git.home.luguber.info/inful/artifactbuilder/internal/foundation/errors"

var (
	// ErrDuplicateStep indicates a step name was registered twice.
	ErrDuplicateStep = errors.InternalError("step already registered").Build()

	// ErrInvalidStep indicates a step without a name or function, or a pinned
	// step without a positive offset.
	ErrInvalidStep = errors.InternalError("invalid step definition").Build()

	// ErrMissingPrerequisite indicates a step read a state key no earlier step set.
	ErrMissingPrerequisite = errors.NotFoundError("missing prerequisite state").Build()

	// ErrStateType indicates a state key holds a value of another type.
	ErrStateType = errors.InternalError("state value has unexpected type").Build()
)
