// Package store is the SQLite persistence behind the development backend.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdxmph/tarefas-tui/internal/task"
)

// ErrNotFound is returned when no task has the given id
var ErrNotFound = errors.New("task not found")

// DB wraps the database connection
type DB struct {
	conn *sql.DB
	now  func() time.Time
}

// Option configures a DB
type Option func(*DB)

// WithClock replaces time.Now as the source of timestamps
func WithClock(now func() time.Time) Option {
	return func(db *DB) {
		db.now = now
	}
}

// Open opens or creates the database at dbPath and applies the schema.
// ":memory:" gives a private in-memory database.
func Open(dbPath string, opts ...Option) (*DB, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection: an in-memory database exists per connection, and
	// SQLite serializes writers anyway.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn, now: time.Now}
	for _, opt := range opts {
		opt(db)
	}

	if err := db.RunMigrations(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Create inserts a task with a fresh id. CreatedAt and UpdatedAt are equal.
func (db *DB) Create(ctx context.Context, t task.Task) (task.Record, error) {
	if err := t.Validate(); err != nil {
		return task.Record{}, err
	}

	now := db.now().UTC()
	rec := task.Record{
		ID:          uuid.NewString(),
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   task.NewTimestamp(now),
		UpdatedAt:   task.NewTimestamp(now),
	}

	query := `
		INSERT INTO tasks (id, title, description, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := db.conn.ExecContext(ctx, query,
		rec.ID, rec.Title, rec.Description, string(rec.Status),
		formatTime(now), formatTime(now),
	)
	if err != nil {
		return task.Record{}, fmt.Errorf("inserting task: %w", err)
	}
	return rec, nil
}

// List returns all tasks in insertion order
func (db *DB) List(ctx context.Context) ([]task.Record, error) {
	query := `
		SELECT id, title, description, status, created_at, updated_at
		FROM tasks
		ORDER BY seq
	`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	recs := []task.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Get retrieves a single task by id
func (db *DB) Get(ctx context.Context, id string) (task.Record, error) {
	query := `
		SELECT id, title, description, status, created_at, updated_at
		FROM tasks
		WHERE id = ?
	`
	rec, err := scanRecord(db.conn.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return task.Record{}, ErrNotFound
	}
	return rec, err
}

// Update overwrites title, description and status. UpdatedAt always moves
// strictly forward, even if the clock has not.
func (db *DB) Update(ctx context.Context, id string, t task.Task) (task.Record, error) {
	if err := t.Validate(); err != nil {
		return task.Record{}, err
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return task.Record{}, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	var updatedAt string
	err = tx.QueryRowContext(ctx, `SELECT updated_at FROM tasks WHERE id = ?`, id).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return task.Record{}, ErrNotFound
	}
	if err != nil {
		return task.Record{}, fmt.Errorf("reading task: %w", err)
	}

	prev, err := parseTime(updatedAt)
	if err != nil {
		return task.Record{}, err
	}
	now := db.now().UTC()
	if !now.After(prev) {
		now = prev.Add(time.Microsecond)
	}

	updateQuery := `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, updated_at = ?
		WHERE id = ?
	`
	if _, err := tx.ExecContext(ctx, updateQuery, t.Title, t.Description, string(t.Status), formatTime(now), id); err != nil {
		return task.Record{}, fmt.Errorf("updating task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return task.Record{}, fmt.Errorf("committing update: %w", err)
	}

	return db.Get(ctx, id)
}

// Delete removes a task
func (db *DB) Delete(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (task.Record, error) {
	var (
		rec                  task.Record
		status               string
		createdAt, updatedAt string
	)
	err := row.Scan(&rec.ID, &rec.Title, &rec.Description, &status, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return task.Record{}, err
		}
		return task.Record{}, fmt.Errorf("scanning task: %w", err)
	}
	rec.Status = task.Status(status)

	created, err := parseTime(createdAt)
	if err != nil {
		return task.Record{}, err
	}
	updated, err := parseTime(updatedAt)
	if err != nil {
		return task.Record{}, err
	}
	rec.CreatedAt = task.NewTimestamp(created)
	rec.UpdatedAt = task.NewTimestamp(updated)
	return rec, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing stored timestamp %q: %w", s, err)
	}
	return t, nil
}
