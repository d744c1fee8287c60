package core

// Error codes surfaced on the wire for malformed client input.
const (
	ErrCodeBadRequest     = "bad_request"
	ErrCodeInvalidMessage = "invalid_message"
)
