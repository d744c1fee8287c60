package jsonl

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/chatrelay/chatrelay-server/internal/store"
)

// maxLineSize bounds a single serialized record on read.
const maxLineSize = 1 << 20

// Log implements store.EventLog on a newline-delimited JSON file, one record
// per line.
type Log struct {
	mu   sync.Mutex
	path string
	file *os.File
}

// New opens the log at path, creating an empty file if none exists yet.
func New(path string) (*Log, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open chat log: %w", err)
	}
	return &Log{path: path, file: file}, nil
}

// Append writes one serialized event followed by a newline. The record is
// assembled into a single Write call so concurrent appends never interleave.
func (l *Log) Append(_ context.Context, ev store.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	data = append(data, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.file.Write(data); err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// ReadAll parses every line of the backing file in order. Lines that do not
// parse as an event record are skipped, including lines too long to be a
// valid record; the records after them still load.
func (l *Log) ReadAll(_ context.Context) ([]store.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open chat log: %w", err)
	}
	defer f.Close()

	var events []store.Event
	reader := bufio.NewReaderSize(f, maxLineSize)
	for {
		line, readErr := reader.ReadSlice('\n')
		if errors.Is(readErr, bufio.ErrBufferFull) {
			// No valid record is this long; consume through the next
			// newline and keep reading.
			readErr = skipLine(reader)
			if readErr == nil {
				continue
			}
			line = nil
		}

		if ev, ok := parseEvent(line); ok {
			events = append(events, ev)
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return events, nil
			}
			return events, fmt.Errorf("read chat log: %w", readErr)
		}
	}
}

// skipLine consumes input through the next newline without buffering the
// discarded bytes.
func skipLine(r *bufio.Reader) error {
	for {
		_, err := r.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return err
	}
}

func parseEvent(line []byte) (store.Event, bool) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return store.Event{}, false
	}
	var ev store.Event
	if err := json.Unmarshal(line, &ev); err != nil {
		// Corrupt or partial record, drop it and keep reading.
		return store.Event{}, false
	}
	return ev, true
}

// Close closes the underlying file.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
