package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/chatrelay/chatrelay-server/internal/store"
)

// memLog is an in-memory event log for asserting on what the hub persists.
type memLog struct {
	mu        sync.Mutex
	events    []store.Event
	appendErr error
}

func (m *memLog) Append(_ context.Context, ev store.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return m.appendErr
	}
	m.events = append(m.events, ev)
	return nil
}

func (m *memLog) ReadAll(context.Context) ([]store.Event, error) {
	return m.snapshot(), nil
}

func (m *memLog) Close() error { return nil }

func (m *memLog) snapshot() []store.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]store.Event, len(m.events))
	copy(out, m.events)
	return out
}

// gatedLog is a memLog whose next Append, once armed, blocks until released.
// It lets tests hold the hub mid-emit while another connection acts.
type gatedLog struct {
	memLog
	gate    sync.Mutex
	armed   bool
	entered chan struct{}
	release chan struct{}
}

func newGatedLog() *gatedLog {
	return &gatedLog{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (g *gatedLog) arm() {
	g.gate.Lock()
	g.armed = true
	g.gate.Unlock()
}

func (g *gatedLog) Append(ctx context.Context, ev store.Event) error {
	g.gate.Lock()
	armed := g.armed
	g.armed = false
	g.gate.Unlock()

	if armed {
		g.entered <- struct{}{}
		<-g.release
	}
	return g.memLog.Append(ctx, ev)
}

func newTestHub(eventLog store.EventLog) *Hub {
	logger := zerolog.Nop()
	return NewHub(eventLog, NewRegistry(), &logger)
}

func mustNotification(t *testing.T, ch <-chan *Notification, kind NotificationKind) *Notification {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case n := <-ch:
			if n == nil {
				continue
			}
			if n.Kind == kind {
				return n
			}
		case <-deadline:
			t.Fatalf("expected notification kind %v not received", kind)
			return nil
		}
	}
}

func requireNoNotification(t *testing.T, ch <-chan *Notification) {
	t.Helper()

	select {
	case n := <-ch:
		t.Fatalf("unexpected notification: %+v", n)
	default:
	}
}
