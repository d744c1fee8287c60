package core

import "github.com/chatrelay/chatrelay-server/internal/store"

// NotificationKind is what the core tells connections about.
type NotificationKind int

const (
	// NotifyEvent carries one chat or system event.
	NotifyEvent NotificationKind = iota
	// NotifyHistory delivers the full persisted event log to one connection.
	NotifyHistory
	// NotifyPresence carries a snapshot of the active participant list.
	NotifyPresence
	// NotifyTyping carries a transient typing indicator. It is never
	// persisted and never part of history.
	NotifyTyping
)

// Notification is a unit of delivery from the core to connections.
type Notification struct {
	Kind NotificationKind

	Event  store.Event   // NotifyEvent
	Events []store.Event // NotifyHistory

	Participants []Participant // NotifyPresence

	TypingID string // NotifyTyping
	Typing   bool   // NotifyTyping
}
