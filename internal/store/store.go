package store

import (
	"context"
	"time"
)

// EventType tags a persisted chat record.
type EventType string

const (
	// EventTypeSystem marks join/leave notices.
	EventTypeSystem EventType = "system"
	// EventTypeMessage marks a user-authored chat message.
	EventTypeMessage EventType = "message"
)

// Event is one record of chat activity. Events are immutable once created;
// Timestamp serializes as an RFC 3339 string.
type Event struct {
	Type             EventType `json:"type"`
	Message          string    `json:"message"`
	Timestamp        time.Time `json:"timestamp"`
	ParticipantID    string    `json:"participantId"`
	ParticipantColor string    `json:"participantColor"`
}

// EventLog is the append-only durable record of chat activity.
type EventLog interface {
	// Append durably writes one event. Appends issued by this process are
	// never reordered relative to each other.
	Append(ctx context.Context, ev Event) error

	// ReadAll returns every previously appended event in append order.
	// Records that cannot be parsed are dropped, not surfaced as errors.
	// A fresh or empty log yields an empty sequence.
	ReadAll(ctx context.Context) ([]Event, error)

	// Close releases the backing resources.
	Close() error
}
