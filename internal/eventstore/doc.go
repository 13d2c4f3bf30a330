// Package eventstore keeps a journal of build runs in SQLite.
//
// A HistoryObserver appends one event when a run starts, one per executed
// step, and one when the run completes. BuildHistoryProjection folds those
// events back into per-build summaries for the history command.
package eventstore
