// Package sqlitestore persists the full task list in a SQLite database.
// Each save replaces the whole table inside one transaction, so the database
// always holds a complete snapshot.
package sqlitestore

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	_ "modernc.org/sqlite"

	"ltask/internal/task"
)

// DatabaseFile is the database file name inside the data directory.
const DatabaseFile = "tasks.db"

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	position  INTEGER PRIMARY KEY,
	id        TEXT NOT NULL UNIQUE,
	text      TEXT NOT NULL,
	completed INTEGER NOT NULL DEFAULT 0
);`

// Store is a TaskRepository backed by SQLite.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open opens (creating if needed) the database at path.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "create database dir"), "path", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "open database"), "path", path)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, zerr.With(zerr.Wrap(err, "init schema"), "path", path)
	}

	logger.DebugContext(ctx, "database opened", "path", path)
	return &Store{db: db, path: path, logger: logger}, nil
}

// Location returns the database path.
func (s *Store) Location() string { return s.path }

// Load returns the tasks in position order.
func (s *Store) Load(ctx context.Context) ([]task.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, text, completed FROM tasks ORDER BY position`)
	if err != nil {
		return nil, zerr.Wrap(err, "query tasks")
	}
	defer func() { _ = rows.Close() }()

	var tasks []task.Task
	for rows.Next() {
		var t task.Task
		if err := rows.Scan(&t.ID, &t.Text, &t.Completed); err != nil {
			return nil, zerr.Wrap(err, "scan task")
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, zerr.Wrap(err, "iterate tasks")
	}
	return tasks, nil
}

// Save replaces every stored task with tasks.
func (s *Store) Save(ctx context.Context, tasks []task.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return zerr.Wrap(err, "begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return zerr.Wrap(err, "clear tasks")
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO tasks (position, id, text, completed) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return zerr.Wrap(err, "prepare insert")
	}
	defer func() { _ = stmt.Close() }()

	for i, t := range tasks {
		if _, err := stmt.ExecContext(ctx, i, t.ID, t.Text, t.Completed); err != nil {
			return zerr.With(zerr.Wrap(err, "insert task"), "position", i)
		}
	}

	if err := tx.Commit(); err != nil {
		return zerr.Wrap(err, "commit")
	}
	s.logger.DebugContext(ctx, "tasks written", "path", s.path, "count", len(tasks))
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
