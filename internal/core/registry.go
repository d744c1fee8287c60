package core

import "sync"

// Registry is the source of truth for who is currently connected. It binds a
// connection handle to its client and participant. Handles are unique per
// live connection; display names are not, so the handle is the only key.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

type entry struct {
	client      *Client
	participant Participant
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Register binds a participant to the client's handle and makes it visible in
// the active list. Registering a handle that is already live overwrites the
// previous binding (last join wins) and returns it so the caller can log the
// violation.
func (r *Registry) Register(c *Client, p Participant) *Participant {
	r.mu.Lock()
	defer r.mu.Unlock()

	var previous *Participant
	if old, ok := r.entries[c.Handle]; ok {
		prev := old.participant
		previous = &prev
	}
	r.entries[c.Handle] = &entry{client: c, participant: p}
	return previous
}

// Unregister removes the handle's binding and returns the participant that
// was removed. An unknown handle is a no-op, which covers duplicate
// disconnect signals.
func (r *Registry) Unregister(handle string) (Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[handle]
	if !ok {
		return Participant{}, false
	}
	delete(r.entries, handle)
	return e.participant, true
}

// Lookup returns the participant bound to handle.
func (r *Registry) Lookup(handle string) (Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[handle]
	if !ok {
		return Participant{}, false
	}
	return e.participant, true
}

// ListActive returns a snapshot of all currently registered participants.
// Ordering is not stable across calls.
func (r *Registry) ListActive() []Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	participants := make([]Participant, 0, len(r.entries))
	for _, e := range r.entries {
		participants = append(participants, e.participant)
	}
	return participants
}

// client returns the registered client for handle, if any.
func (r *Registry) client(handle string) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[handle]
	if !ok {
		return nil, false
	}
	return e.client, true
}

// clients returns a snapshot of all registered clients for fan-out.
func (r *Registry) clients() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clients := make([]*Client, 0, len(r.entries))
	for _, e := range r.entries {
		clients = append(clients, e.client)
	}
	return clients
}
