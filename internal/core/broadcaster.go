package core

// Broadcaster delivers notifications to registered connections. Delivery is
// best-effort and independent per recipient: each client has a buffered
// channel, and a full channel drops the notification instead of stalling the
// room. A connection gone by delivery time is simply skipped.
type Broadcaster struct {
	registry *Registry
}

// NewBroadcaster constructs a broadcaster resolving scopes over registry.
func NewBroadcaster(registry *Registry) *Broadcaster {
	return &Broadcaster{registry: registry}
}

// SendToAll delivers to every registered connection, originator included.
func (b *Broadcaster) SendToAll(n *Notification) {
	for _, c := range b.registry.clients() {
		deliver(c, n)
	}
}

// SendToOthers delivers to every registered connection except origin.
func (b *Broadcaster) SendToOthers(origin string, n *Notification) {
	for _, c := range b.registry.clients() {
		if c.Handle == origin {
			continue
		}
		deliver(c, n)
	}
}

// SendTo delivers to exactly one connection. Unknown handles are skipped.
func (b *Broadcaster) SendTo(handle string, n *Notification) {
	if c, ok := b.registry.client(handle); ok {
		deliver(c, n)
	}
}

func deliver(c *Client, n *Notification) {
	select {
	case c.Notifications <- n:
	default:
		// Drop if slow consumer.
	}
}
