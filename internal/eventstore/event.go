package eventstore

import (
	"encoding/json"
	"time"
)

// EventType names a journal entry.
type EventType string

const (
	TypeBuildStarted   EventType = "BuildStarted"
	TypeStepCompleted  EventType = "StepCompleted"
	TypeBuildCompleted EventType = "BuildCompleted"
)

// Event is one row of the journal. ID and Timestamp are assigned by the
// store when left zero.
type Event struct {
	ID        int64
	BuildID   string
	Type      EventType
	Timestamp time.Time
	Payload   json.RawMessage
	Metadata  map[string]string
}

// Decode unmarshals the payload into v.
func (e Event) Decode(v any) error {
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return ErrPayload.WithContext("build_id", e.BuildID).WithContext("type", string(e.Type)).Wrap(err)
	}
	return nil
}

func newEvent(buildID string, typ EventType, at time.Time, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, ErrPayload.WithContext("build_id", buildID).WithContext("type", string(typ)).Wrap(err)
	}
	return Event{BuildID: buildID, Type: typ, Timestamp: at, Payload: raw}, nil
}
