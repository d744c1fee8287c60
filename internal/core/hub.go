package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/chatrelay/chatrelay-server/internal/store"
)

// Hub is the session lifecycle controller. It drives each connection through
// join, chat, typing, and disconnect, coordinating the registry, the event
// log, and the broadcaster so that every persisted event is appended and
// broadcast in the same order.
//
// Commands from one connection must be dispatched in the order they arrived;
// the transport guarantees that by calling Dispatch synchronously from its
// read loop. Different connections dispatch concurrently.
type Hub struct {
	registry    *Registry
	broadcaster *Broadcaster
	eventLog    store.EventLog
	logger      *zerolog.Logger
	now         func() time.Time

	// mu serializes append+broadcast pairs so log order matches broadcast
	// order across connections.
	mu sync.Mutex

	dispatch map[CommandKind]func(context.Context, *Client, *Command)
}

// NewHub constructs a hub over the given collaborators.
func NewHub(eventLog store.EventLog, registry *Registry, logger *zerolog.Logger) *Hub {
	h := &Hub{
		registry:    registry,
		broadcaster: NewBroadcaster(registry),
		eventLog:    eventLog,
		logger:      logger,
		now:         time.Now,
	}
	h.dispatch = map[CommandKind]func(context.Context, *Client, *Command){
		CommandJoin:        h.handleJoin,
		CommandSendMessage: h.handleMessage,
		CommandTypingStart: h.typingHandler(true),
		CommandTypingStop:  h.typingHandler(false),
	}
	return h
}

// Dispatch routes an inbound command for the given client.
func (h *Hub) Dispatch(ctx context.Context, c *Client, cmd *Command) {
	handler, ok := h.dispatch[cmd.Kind]
	if !ok {
		h.logger.Warn().Int("kind", int(cmd.Kind)).Str("handle", c.Handle).Msg("unknown command kind")
		return
	}
	handler(ctx, c, cmd)
}

// handleJoin registers the claimed identity, replays history to the joiner,
// then announces the join to the whole room followed by a fresh presence
// snapshot.
func (h *Hub) handleJoin(ctx context.Context, c *Client, cmd *Command) {
	p := Participant{ID: cmd.ID, Color: cmd.Color, JoinedAt: h.now()}

	// Register, history read, and the join announcement form one atomic
	// step: a message emitted concurrently lands either fully before the
	// replayed history or fully after the join, never in both.
	h.mu.Lock()
	if prev := h.registry.Register(c, p); prev != nil {
		// Join on an already registered handle should not happen with
		// well-behaved clients; last join wins.
		h.logger.Warn().
			Str("handle", c.Handle).
			Str("previous_id", prev.ID).
			Str("id", p.ID).
			Msg("duplicate join on live connection, overwriting")
	}

	history, err := h.eventLog.ReadAll(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("read history")
	}
	h.broadcaster.SendTo(c.Handle, &Notification{Kind: NotifyHistory, Events: history})

	ev := store.Event{
		Type:             store.EventTypeSystem,
		Message:          fmt.Sprintf("User %s joined the chat", p.ID),
		Timestamp:        h.now(),
		ParticipantID:    p.ID,
		ParticipantColor: p.Color,
	}
	h.append(ctx, ev)
	h.broadcaster.SendToAll(&Notification{Kind: NotifyEvent, Event: ev})
	h.mu.Unlock()

	h.broadcastPresence()
	h.logger.Info().Str("id", p.ID).Str("handle", c.Handle).Msg("participant joined")
}

// handleMessage persists and broadcasts a chat message with a server-assigned
// timestamp. Messages from connections that never completed a join are
// dropped.
func (h *Hub) handleMessage(ctx context.Context, c *Client, cmd *Command) {
	p, ok := h.registry.Lookup(c.Handle)
	if !ok {
		h.logger.Debug().Str("handle", c.Handle).Msg("message from unknown connection, dropping")
		return
	}

	ev := store.Event{
		Type:             store.EventTypeMessage,
		Message:          cmd.Text,
		Timestamp:        h.now(),
		ParticipantID:    p.ID,
		ParticipantColor: p.Color,
	}

	h.mu.Lock()
	h.append(ctx, ev)
	h.broadcaster.SendToAll(&Notification{Kind: NotifyEvent, Event: ev})
	h.mu.Unlock()
}

// typingHandler forwards a transient typing indicator to everyone but the
// typist. Typing state never touches the event log.
func (h *Hub) typingHandler(typing bool) func(context.Context, *Client, *Command) {
	return func(_ context.Context, c *Client, _ *Command) {
		p, ok := h.registry.Lookup(c.Handle)
		if !ok {
			return
		}
		h.broadcaster.SendToOthers(c.Handle, &Notification{
			Kind:     NotifyTyping,
			TypingID: p.ID,
			Typing:   typing,
		})
	}
}

// Disconnect tears down the connection's presence. Safe to call more than
// once; only the call that actually removes a participant emits a leave
// event. A connection that never joined leaves no trace.
func (h *Hub) Disconnect(ctx context.Context, c *Client) {
	p, ok := h.registry.Unregister(c.Handle)
	if !ok {
		return
	}

	ev := store.Event{
		Type:             store.EventTypeSystem,
		Message:          fmt.Sprintf("User %s left the chat", p.ID),
		Timestamp:        h.now(),
		ParticipantID:    p.ID,
		ParticipantColor: p.Color,
	}

	h.mu.Lock()
	h.append(ctx, ev)
	h.broadcaster.SendToOthers(c.Handle, &Notification{Kind: NotifyEvent, Event: ev})
	h.mu.Unlock()

	h.broadcastPresence()
	h.logger.Info().Str("id", p.ID).Str("handle", c.Handle).Msg("participant left")
}

// append writes the event to the log. Durability is best-effort: on failure
// the error is logged and the live broadcast still goes out.
func (h *Hub) append(ctx context.Context, ev store.Event) {
	if err := h.eventLog.Append(ctx, ev); err != nil {
		h.logger.Error().Err(err).Str("type", string(ev.Type)).Msg("append event")
	}
}

func (h *Hub) broadcastPresence() {
	h.broadcaster.SendToAll(&Notification{
		Kind:         NotifyPresence,
		Participants: h.registry.ListActive(),
	})
}
