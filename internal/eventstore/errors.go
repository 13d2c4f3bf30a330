package eventstore

import (
	"git.home.luguber.info/inful/artifactbuilder/internal/foundation/errors"
)

var (
	// ErrDatabaseOpen indicates the SQLite database could not be opened.
	ErrDatabaseOpen = errors.HistoryError("could not open build history database").Build()

	// ErrSchema indicates the journal schema could not be created.
	ErrSchema = errors.HistoryError("failed to initialize build history schema").Build()

	ErrAppend = errors.HistoryError("failed to append build event").Build()
	ErrQuery  = errors.HistoryError("failed to query build events").Build()

	// ErrPayload indicates an event payload could not be encoded or decoded.
	ErrPayload = errors.HistoryError("invalid build event payload").Build()
)
