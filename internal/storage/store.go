package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"todolist/internal/apperror"
	"todolist/internal/metrics"
	"todolist/internal/models"
)

// DefaultMaxConns bounds the connection pool of network stores.
const DefaultMaxConns = 5

// ErrEmptyURL is returned by Open when no connection string is configured.
var ErrEmptyURL = errors.New("empty database url")

// Options tunes the connection pool.
type Options struct {
	MaxConns int
}

// Statements use $N placeholders, which lib/pq and go-sqlite3 both bind by position.
const (
	listQuery   = `SELECT id, description, done FROM todos ORDER BY id`
	createQuery = `INSERT INTO todos (description) VALUES ($1)`
	toggleQuery = `UPDATE todos SET done = NOT done WHERE id = $1`
	renameQuery = `UPDATE todos SET description = $1 WHERE id = $2`
	deleteQuery = `DELETE FROM todos WHERE id = $1`
)

// Store is the gateway to the todos table. It is safe for concurrent use.
type Store struct {
	db      *sql.DB
	logger  *slog.Logger
	dialect string
}

// Open connects to the store at url, verifies it is reachable and makes sure
// the todos table exists.
func Open(ctx context.Context, url string, opts Options, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	d, err := dialectFor(url, opts.MaxConns)
	if err != nil {
		return nil, err
	}
	if d.path != "" {
		if err := ensureDir(d.path); err != nil {
			return nil, err
		}
	}

	conn, err := sql.Open(d.driver, d.dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.name, err)
	}
	conn.SetMaxOpenConns(d.maxConns)
	conn.SetConnMaxLifetime(0)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connect %s: %w", d.name, err)
	}

	s := &Store{
		db:      conn,
		logger:  logger,
		dialect: d.name,
	}
	if err := s.migrate(ctx, d.schema); err != nil {
		_ = conn.Close()
		return nil, err
	}

	logger.Info("store ready", slog.String("dialect", d.name), slog.Int("max_conns", d.maxConns))
	return s, nil
}

// Close releases the database resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Dialect names the backing store, "postgres" or "sqlite".
func (s *Store) Dialect() string {
	return s.dialect
}

func (s *Store) migrate(ctx context.Context, stmts []string) error {
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Ping checks that the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	err := s.db.PingContext(ctx)
	metrics.ObserveStore("ping", err)
	return apperror.DataAccess(err)
}

// List returns every todo ordered by id.
func (s *Store) List(ctx context.Context) (todos []models.Todo, err error) {
	defer func() { metrics.ObserveStore("list", err) }()

	rows, err := s.db.QueryContext(ctx, listQuery)
	if err != nil {
		return nil, apperror.DataAccess(fmt.Errorf("list todos: %w", err))
	}
	defer rows.Close()

	todos = []models.Todo{}
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.Description, &t.Done); err != nil {
			return nil, apperror.DataAccess(fmt.Errorf("scan todo: %w", err))
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.DataAccess(fmt.Errorf("list todos: %w", err))
	}
	return todos, nil
}

// Create inserts a todo that is not done yet.
func (s *Store) Create(ctx context.Context, description string) error {
	return s.exec(ctx, "create", createQuery, description)
}

// Toggle flips the done flag. Unknown ids are ignored.
func (s *Store) Toggle(ctx context.Context, id int64) error {
	return s.exec(ctx, "toggle", toggleQuery, id)
}

// Rename replaces the description. Unknown ids are ignored.
func (s *Store) Rename(ctx context.Context, id int64, description string) error {
	return s.exec(ctx, "rename", renameQuery, description, id)
}

// Delete removes the todo permanently. Unknown ids are ignored.
func (s *Store) Delete(ctx context.Context, id int64) error {
	return s.exec(ctx, "delete", deleteQuery, id)
}

func (s *Store) exec(ctx context.Context, op, query string, args ...any) error {
	_, err := s.db.ExecContext(ctx, query, args...)
	metrics.ObserveStore(op, err)
	if err != nil {
		return apperror.DataAccess(fmt.Errorf("%s todo: %w", op, err))
	}
	return nil
}
