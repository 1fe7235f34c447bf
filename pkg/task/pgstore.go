package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"focusdash/pkg/event"
)

const taskColumns = `id, title, description, status, priority, energy_level, focus_type,
	estimated_minutes, due_date, hard_deadline, soft_deadline, source,
	dependency_count, created_at, updated_at`

// PgStore is a PostgreSQL-backed task store for deployments where tasks
// should survive process teardown.
type PgStore struct {
	pool   *pgxpool.Pool
	events event.Appender
}

// NewPgStore creates a PgStore. The event appender may be nil.
func NewPgStore(pool *pgxpool.Pool, events event.Appender) *PgStore {
	return &PgStore{pool: pool, events: events}
}

// EnsureTable creates the tasks table if it doesn't exist.
func (s *PgStore) EnsureTable(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS tasks (
			id                TEXT PRIMARY KEY,
			title             TEXT NOT NULL,
			description       TEXT NOT NULL DEFAULT '',
			status            TEXT NOT NULL DEFAULT 'todo',
			priority          INTEGER NOT NULL DEFAULT 3,
			energy_level      TEXT NOT NULL DEFAULT '',
			focus_type        TEXT NOT NULL DEFAULT '',
			estimated_minutes INTEGER NOT NULL DEFAULT 0,
			due_date          TIMESTAMPTZ,
			hard_deadline     TIMESTAMPTZ,
			soft_deadline     TIMESTAMPTZ,
			source            TEXT NOT NULL DEFAULT '',
			dependency_count  INTEGER NOT NULL DEFAULT 0,
			created_at        TIMESTAMPTZ DEFAULT NOW(),
			updated_at        TIMESTAMPTZ DEFAULT NOW()
		)`)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`)
	return err
}

// Create inserts a new task, assigning a fresh id.
func (s *PgStore) Create(ctx context.Context, t *Task) (*Task, error) {
	cp := *t
	cp.ID = uuid.Must(uuid.NewV7()).String()
	now := time.Now().Truncate(time.Microsecond)
	cp.CreatedAt = now
	cp.UpdatedAt = now
	if cp.Status == "" {
		cp.Status = StatusTodo
	}
	if cp.Priority == 0 {
		cp.Priority = DefaultPriority
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO tasks (id, title, description, status, priority, energy_level, focus_type,
			estimated_minutes, due_date, hard_deadline, soft_deadline, source, dependency_count,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		cp.ID, cp.Title, cp.Description, cp.Status, cp.Priority, cp.EnergyLevel, cp.FocusType,
		cp.EstimatedMinutes, cp.DueDate, cp.HardDeadline, cp.SoftDeadline, cp.Source,
		cp.DependencyCount, cp.CreatedAt, cp.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return &cp, nil
}

// Get retrieves a single task by id.
func (s *PgStore) Get(ctx context.Context, id string) (*Task, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}
	return t, nil
}

// Update merges the given fields into the task matching id. Same key set as
// MemStore.Update.
func (s *PgStore) Update(ctx context.Context, id string, updates map[string]any) (*Task, error) {
	prev, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	cp := *prev
	applyUpdates(&cp, updates)
	cp.UpdatedAt = time.Now().Truncate(time.Microsecond)

	_, err = s.pool.Exec(ctx, `
		UPDATE tasks SET title = $1, description = $2, status = $3, priority = $4,
			energy_level = $5, focus_type = $6, estimated_minutes = $7, due_date = $8,
			hard_deadline = $9, soft_deadline = $10, source = $11, dependency_count = $12,
			updated_at = $13
		WHERE id = $14`,
		cp.Title, cp.Description, cp.Status, cp.Priority, cp.EnergyLevel, cp.FocusType,
		cp.EstimatedMinutes, cp.DueDate, cp.HardDeadline, cp.SoftDeadline, cp.Source,
		cp.DependencyCount, cp.UpdatedAt, id)
	if err != nil {
		return nil, fmt.Errorf("update task %s: %w", id, err)
	}

	if prev.Status != StatusDone && cp.Status == StatusDone && s.events != nil {
		s.events.Append(ctx, "task.completed", "task_store", map[string]any{
			"task_id": cp.ID,
			"title":   cp.Title,
		})
	}
	return &cp, nil
}

// Remove deletes the task. Removing an unknown id is a no-op.
func (s *PgStore) Remove(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("remove task %s: %w", id, err)
	}
	return nil
}

// List returns all tasks in insertion order (UUID v7 ids are time-ordered).
func (s *PgStore) List(ctx context.Context) ([]Task, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}
	return tasks, nil
}

// Count returns total task count.
func (s *PgStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n)
	return n, err
}

func scanTask(row pgx.Row) (*Task, error) {
	var t Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.EnergyLevel,
		&t.FocusType, &t.EstimatedMinutes, &t.DueDate, &t.HardDeadline, &t.SoftDeadline,
		&t.Source, &t.DependencyCount, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
