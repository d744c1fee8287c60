package jsonl

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chatrelay/chatrelay-server/internal/store"
)

func newTestLog(t *testing.T) (*Log, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "chat-log.txt")
	l, err := New(path)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l, path
}

func testEvent(text string) store.Event {
	return store.Event{
		Type:             store.EventTypeMessage,
		Message:          text,
		Timestamp:        time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		ParticipantID:    "Alice",
		ParticipantColor: "#FF0000",
	}
}

func TestNewCreatesEmptyLog(t *testing.T) {
	l, path := newTestLog(t)

	_, err := os.Stat(path)
	require.NoError(t, err)

	events, err := l.ReadAll(context.Background())
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestAppendThenReadAllPreservesOrder(t *testing.T) {
	l, _ := newTestLog(t)
	ctx := context.Background()

	for _, text := range []string{"one", "two", "three"} {
		require.NoError(t, l.Append(ctx, testEvent(text)))
	}

	events, err := l.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)
	require.Equal(t, "one", events[0].Message)
	require.Equal(t, "two", events[1].Message)
	require.Equal(t, "three", events[2].Message)

	got := events[0]
	require.Equal(t, store.EventTypeMessage, got.Type)
	require.Equal(t, "Alice", got.ParticipantID)
	require.Equal(t, "#FF0000", got.ParticipantColor)
	require.True(t, got.Timestamp.Equal(testEvent("one").Timestamp))
}

func TestReadAllIsIdempotent(t *testing.T) {
	l, _ := newTestLog(t)
	ctx := context.Background()

	require.NoError(t, l.Append(ctx, testEvent("hello")))

	first, err := l.ReadAll(ctx)
	require.NoError(t, err)
	second, err := l.ReadAll(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestReadAllSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat-log.txt")
	content := `{"type":"system","message":"User Alice joined the chat","timestamp":"2024-03-01T12:00:00Z","participantId":"Alice","participantColor":"#FF0000"}
this is not json
{"type":"message","message":"hi","timestamp":"2024-03-01T12:00:01Z","participantId":"Alice","participantColor":"#FF0000"}
{"type":"message","message":"truncated
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	l, err := New(path)
	require.NoError(t, err)
	defer l.Close()

	events, err := l.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "User Alice joined the chat", events[0].Message)
	require.Equal(t, "hi", events[1].Message)
}

func TestReadAllSurvivesOversizeCorruptLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat-log.txt")

	var buf bytes.Buffer
	buf.WriteString(`{"type":"system","message":"User Alice joined the chat","timestamp":"2024-03-01T12:00:00Z","participantId":"Alice","participantColor":"#FF0000"}` + "\n")
	buf.WriteString(strings.Repeat("x", maxLineSize+1) + "\n")
	buf.WriteString(`{"type":"message","message":"after the blob","timestamp":"2024-03-01T12:00:01Z","participantId":"Alice","participantColor":"#FF0000"}` + "\n")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	l, err := New(path)
	require.NoError(t, err)
	defer l.Close()

	// A line too long to be a record must not cost the records after it.
	events, err := l.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "User Alice joined the chat", events[0].Message)
	require.Equal(t, "after the blob", events[1].Message)
}

func TestReadAllOversizeTrailingLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat-log.txt")

	var buf bytes.Buffer
	buf.WriteString(`{"type":"message","message":"kept","timestamp":"2024-03-01T12:00:00Z","participantId":"Alice","participantColor":"#FF0000"}` + "\n")
	// Oversize garbage with no trailing newline, as a torn final write.
	buf.WriteString(strings.Repeat("y", maxLineSize+1))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	l, err := New(path)
	require.NoError(t, err)
	defer l.Close()

	events, err := l.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "kept", events[0].Message)
}

func TestReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat-log.txt")
	ctx := context.Background()

	l, err := New(path)
	require.NoError(t, err)
	require.NoError(t, l.Append(ctx, testEvent("persisted")))
	require.NoError(t, l.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	require.NoError(t, reopened.Append(ctx, testEvent("after reopen")))

	events, err := reopened.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "persisted", events[0].Message)
	require.Equal(t, "after reopen", events[1].Message)
}

func TestConcurrentAppendsNeverInterleave(t *testing.T) {
	l, _ := newTestLog(t)
	ctx := context.Background()

	done := make(chan struct{})
	for range 8 {
		go func() {
			defer func() { done <- struct{}{} }()
			for range 50 {
				_ = l.Append(ctx, testEvent("concurrent"))
			}
		}()
	}
	for range 8 {
		<-done
	}

	events, err := l.ReadAll(ctx)
	require.NoError(t, err)
	// Every record must parse, proving no interleaved partial writes.
	require.Len(t, events, 400)
}
