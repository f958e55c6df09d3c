package todo

import (
	"context"

	"ltask/internal/task"
)

// TaskRepository persists the full store's sequence as one snapshot.
// Load of a snapshot that does not exist yet returns an empty sequence.
type TaskRepository interface {
	Load(ctx context.Context) ([]task.Task, error)
	Save(ctx context.Context, tasks []task.Task) error
	Location() string
}

// NoteRepository persists the basic store's sequence of plain strings.
type NoteRepository interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, notes []string) error
	Location() string
}
