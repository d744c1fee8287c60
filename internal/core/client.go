package core

// notificationBuffer bounds how far a slow connection may lag before
// notifications to it are dropped.
const notificationBuffer = 16

// Client is a live connection as seen by the core layer. The handle is unique
// per connection for its whole lifetime; the identity bound to it lives in the
// registry.
type Client struct {
	Handle        string
	Notifications chan *Notification
}

// NewClient constructs a client with an initialized notification channel.
func NewClient(handle string) *Client {
	return &Client{
		Handle:        handle,
		Notifications: make(chan *Notification, notificationBuffer),
	}
}
