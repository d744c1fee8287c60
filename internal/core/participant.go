package core

import "time"

// Participant is a connected chat identity. Presence is ephemeral: a
// participant exists only while its connection is registered, and the display
// name is caller-supplied with no uniqueness guarantee.
type Participant struct {
	ID       string    `json:"id"`
	Color    string    `json:"color"`
	JoinedAt time.Time `json:"joinedAt"`
}
