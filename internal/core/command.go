package core

// CommandKind describes what a connection wants to do.
type CommandKind int

const (
	// CommandJoin announces the connection's identity and enters the chat.
	CommandJoin CommandKind = iota
	// CommandSendMessage broadcasts a chat message to the room.
	CommandSendMessage
	// CommandTypingStart signals the participant started typing.
	CommandTypingStart
	// CommandTypingStop signals the participant stopped typing.
	CommandTypingStop
)

// Command represents an inbound action requested by a connection.
type Command struct {
	Kind  CommandKind
	ID    string // CommandJoin
	Color string // CommandJoin
	Text  string // CommandSendMessage
}
