package eventstore

import (
	"context"
	"time"
)

// Store persists build events.
type Store interface {
	Append(ctx context.Context, e Event) error
	GetByBuildID(ctx context.Context, buildID string) ([]Event, error)
	// GetRange returns events with start <= timestamp <= end in append order.
	GetRange(ctx context.Context, start, end time.Time) ([]Event, error)
	Close() error
}
