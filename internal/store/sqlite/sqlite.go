package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/chatrelay/chatrelay-server/internal/store"
)

// Log implements store.EventLog on a single-table SQLite database. Insert
// order is the append order.
type Log struct {
	db *sql.DB
}

// New opens (and if needed creates) the database at dbPath and applies the
// event log schema.
func New(dbPath string) (*Log, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	return &Log{db: db}, nil
}

func migrate(db *sql.DB) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS events (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			type              TEXT NOT NULL,
			message           TEXT NOT NULL,
			timestamp         TEXT NOT NULL,
			participant_id    TEXT NOT NULL,
			participant_color TEXT NOT NULL
		)
	`
	_, err := db.Exec(schema)
	return err
}

// Append inserts one event row. The single-connection pool makes inserts
// atomic with respect to each other.
func (l *Log) Append(ctx context.Context, ev store.Event) error {
	const query = `
		INSERT INTO events (type, message, timestamp, participant_id, participant_color)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := l.db.ExecContext(ctx, query,
		string(ev.Type),
		ev.Message,
		ev.Timestamp.UTC().Format(time.RFC3339Nano),
		ev.ParticipantID,
		ev.ParticipantColor,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// ReadAll returns all events ordered by insertion. Rows whose timestamp no
// longer parses are dropped rather than failing the read.
func (l *Log) ReadAll(ctx context.Context) ([]store.Event, error) {
	const query = `
		SELECT type, message, timestamp, participant_id, participant_color
		FROM events
		ORDER BY id
	`
	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}
	defer rows.Close()

	var events []store.Event
	for rows.Next() {
		var (
			ev      store.Event
			typ, ts string
		)
		if err := rows.Scan(&typ, &ev.Message, &ts, &ev.ParticipantID, &ev.ParticipantColor); err != nil {
			continue
		}
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			continue
		}
		ev.Type = store.EventType(typ)
		ev.Timestamp = parsed
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return events, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// Close closes the database connection.
func (l *Log) Close() error {
	return l.db.Close()
}
