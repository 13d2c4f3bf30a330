package eventstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory journal.
const MemoryPath = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS build_events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	build_id TEXT NOT NULL,
	event_type TEXT NOT NULL,
	timestamp_ms INTEGER NOT NULL,
	payload BLOB NOT NULL,
	metadata TEXT
);
CREATE INDEX IF NOT EXISTS idx_build_events_build_id ON build_events(build_id);
CREATE INDEX IF NOT EXISTS idx_build_events_timestamp ON build_events(timestamp_ms);
`

const selectColumns = "SELECT id, build_id, event_type, timestamp_ms, payload, metadata FROM build_events"

// SQLiteStore implements Store on top of modernc.org/sqlite.
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}

// NewSQLiteStore opens or creates the journal at path, creating parent
// directories as needed. Use MemoryPath for a throwaway store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path != MemoryPath {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, ErrDatabaseOpen.WithContext("path", path).Wrap(err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, ErrDatabaseOpen.WithContext("path", path).Wrap(err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, ErrSchema.WithContext("path", path).Wrap(err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Append stores e. A zero Timestamp is replaced by the current time.
func (s *SQLiteStore) Append(ctx context.Context, e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var metadata []byte
	if len(e.Metadata) > 0 {
		var err error
		if metadata, err = json.Marshal(e.Metadata); err != nil {
			return ErrAppend.WithContext("build_id", e.BuildID).Wrap(err)
		}
	}
	at := e.Timestamp
	if at.IsZero() {
		at = s.now()
	}
	payload := []byte(e.Payload)
	if payload == nil {
		payload = []byte("null")
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO build_events (build_id, event_type, timestamp_ms, payload, metadata) VALUES (?, ?, ?, ?, ?)",
		e.BuildID, string(e.Type), at.UnixMilli(), payload, metadata,
	)
	if err != nil {
		return ErrAppend.WithContext("build_id", e.BuildID).WithContext("type", string(e.Type)).Wrap(err)
	}
	return nil
}

// GetByBuildID returns every event of one build in append order.
func (s *SQLiteStore) GetByBuildID(ctx context.Context, buildID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, selectColumns+" WHERE build_id = ? ORDER BY id", buildID)
	if err != nil {
		return nil, ErrQuery.WithContext("build_id", buildID).Wrap(err)
	}
	defer func() { _ = rows.Close() }()
	return scanEvents(rows)
}

func (s *SQLiteStore) GetRange(ctx context.Context, start, end time.Time) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		selectColumns+" WHERE timestamp_ms >= ? AND timestamp_ms <= ? ORDER BY id",
		start.UnixMilli(), end.UnixMilli(),
	)
	if err != nil {
		return nil, ErrQuery.Wrap(err)
	}
	defer func() { _ = rows.Close() }()
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]Event, error) {
	var events []Event
	for rows.Next() {
		var (
			e        Event
			typ      string
			ms       int64
			payload  []byte
			metadata []byte
		)
		if err := rows.Scan(&e.ID, &e.BuildID, &typ, &ms, &payload, &metadata); err != nil {
			return nil, ErrQuery.Wrap(err)
		}
		e.Type = EventType(typ)
		e.Timestamp = time.UnixMilli(ms)
		e.Payload = payload
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
				return nil, ErrPayload.WithContext("build_id", e.BuildID).Wrap(err)
			}
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, ErrQuery.Wrap(err)
	}
	return events, nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
