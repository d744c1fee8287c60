package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

const (
	InboundTypeJoin        = "join"
	InboundTypeMessage     = "message"
	InboundTypeTypingStart = "typing_start"
	InboundTypeTypingStop  = "typing_stop"

	OutboundTypeHistory  = "history"
	OutboundTypeEvent    = "event"
	OutboundTypePresence = "presence"
	OutboundTypeTyping   = "typing"
	OutboundTypeError    = "error"
)

// JoinData announces the client's claimed identity.
type JoinData struct {
	ID    string `json:"id"`
	Color string `json:"color"`
}

// MessageData is a chat message from the client.
type MessageData struct {
	Text string `json:"text"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// EventData mirrors the persisted record format: one chat or system event.
// Timestamp is an RFC 3339 string.
type EventData struct {
	Type             string `json:"type"`
	Message          string `json:"message"`
	Timestamp        string `json:"timestamp"`
	ParticipantID    string `json:"participantId"`
	ParticipantColor string `json:"participantColor"`
}

// HistoryData delivers the full event log to a newly joined client.
type HistoryData struct {
	Events []EventData `json:"events"`
}

// ParticipantData describes one active participant.
type ParticipantData struct {
	ID       string `json:"id"`
	Color    string `json:"color"`
	JoinedAt string `json:"joinedAt"`
}

// PresenceData carries the active participant list.
type PresenceData struct {
	Participants []ParticipantData `json:"participants"`
}

// TypingData is a transient typing indicator.
type TypingData struct {
	ParticipantID string `json:"participantId"`
	Typing        bool   `json:"typing"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
