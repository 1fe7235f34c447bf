package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgLog is a PostgreSQL-backed event log.
type PgLog struct {
	pool *pgxpool.Pool
}

// NewPgLog creates a PgLog.
func NewPgLog(pool *pgxpool.Pool) *PgLog {
	return &PgLog{pool: pool}
}

// EnsureTable creates the events table if it doesn't exist.
func (l *PgLog) EnsureTable(ctx context.Context) error {
	_, err := l.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS events (
			id         TEXT PRIMARY KEY,
			type       TEXT NOT NULL,
			source     TEXT NOT NULL DEFAULT '',
			content    JSONB NOT NULL DEFAULT '{}',
			timestamp  TIMESTAMPTZ DEFAULT NOW()
		)`)
	if err != nil {
		return err
	}
	_, err = l.pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS idx_events_type ON events(type)`)
	return err
}

// Append records an event.
func (l *PgLog) Append(ctx context.Context, eventType, source string, content map[string]any) (*Event, error) {
	e := Event{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Type:      eventType,
		Source:    source,
		Content:   content,
		Timestamp: time.Now().Truncate(time.Microsecond),
	}
	if e.Content == nil {
		e.Content = map[string]any{}
	}

	contentJSON, err := json.Marshal(e.Content)
	if err != nil {
		return nil, fmt.Errorf("marshal content: %w", err)
	}

	_, err = l.pool.Exec(ctx, `
		INSERT INTO events (id, type, source, content, timestamp)
		VALUES ($1, $2, $3, $4::jsonb, $5)`,
		e.ID, e.Type, e.Source, string(contentJSON), e.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("append event: %w", err)
	}
	return &e, nil
}

// Recent returns up to limit events, newest first.
func (l *PgLog) Recent(ctx context.Context, limit int) ([]Event, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT id, type, source, content, timestamp
		FROM events ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent events: %w", err)
	}
	defer rows.Close()
	return scanEventRows(rows)
}

// ByType returns up to limit events of the given type, newest first.
func (l *PgLog) ByType(ctx context.Context, eventType string, limit int) ([]Event, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT id, type, source, content, timestamp
		FROM events WHERE type = $1 ORDER BY id DESC LIMIT $2`, eventType, limit)
	if err != nil {
		return nil, fmt.Errorf("events by type: %w", err)
	}
	defer rows.Close()
	return scanEventRows(rows)
}

// Count returns total event count.
func (l *PgLog) Count(ctx context.Context) (int, error) {
	var n int
	err := l.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&n)
	return n, err
}

func scanEventRows(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]Event, error) {
	var events []Event
	for rows.Next() {
		var e Event
		var contentJSON []byte
		if err := rows.Scan(&e.ID, &e.Type, &e.Source, &contentJSON, &e.Timestamp); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(contentJSON, &e.Content); err != nil {
			e.Content = map[string]any{}
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}
	return events, nil
}
