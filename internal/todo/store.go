// Package todo implements the in-memory task lists. Every mutation is saved
// through a repository before it becomes visible; if the save fails the list
// is left as it was.
package todo

import (
	"context"
	"io"
	"log/slog"
	"slices"

	"go.trai.ch/zerr"

	"ltask/internal/service"
	"ltask/internal/task"
)

// TaskStore is the full task list: records with a completed flag,
// addressable by position or ID.
type TaskStore struct {
	repo   TaskRepository
	logger *slog.Logger
	tasks  []task.Task
}

var _ service.TaskService = (*TaskStore)(nil)

// OpenTaskStore loads the snapshot behind repo. A missing snapshot yields an
// empty store; any other load failure is returned.
func OpenTaskStore(ctx context.Context, repo TaskRepository, logger *slog.Logger) (*TaskStore, error) {
	tasks, err := repo.Load(ctx)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "load tasks"), "location", repo.Location())
	}
	logger.DebugContext(ctx, "tasks loaded", "location", repo.Location(), "count", len(tasks))
	return &TaskStore{
		repo:   repo,
		logger: logger,
		tasks:  slices.Clone(tasks),
	}, nil
}

// Variant implements service.TaskService.
func (s *TaskStore) Variant() service.Variant { return service.VariantFull }

// Len returns the number of tasks.
func (s *TaskStore) Len() int { return len(s.tasks) }

// Add implements service.TaskService.
func (s *TaskStore) Add(ctx context.Context, text string) (bool, error) {
	if task.Blank(text) {
		return false, nil
	}
	if !task.Encodable(text) {
		return false, invalidText("add task")
	}
	next := append(slices.Clone(s.tasks), task.New(text))
	if err := s.commit(ctx, "add task", next); err != nil {
		return false, err
	}
	return true, nil
}

// Edit implements service.TaskService.
func (s *TaskStore) Edit(ctx context.Context, sel task.Selector, text string) (bool, error) {
	i, err := s.resolve("edit task", sel)
	if err != nil {
		return false, err
	}
	if task.Blank(text) {
		return false, nil
	}
	if !task.Encodable(text) {
		return false, invalidText("edit task")
	}
	next := slices.Clone(s.tasks)
	next[i].Text = text
	if err := s.commit(ctx, "edit task", next); err != nil {
		return false, err
	}
	return true, nil
}

// Complete implements service.TaskService.
func (s *TaskStore) Complete(ctx context.Context, sel task.Selector) error {
	i, err := s.resolve("complete task", sel)
	if err != nil {
		return err
	}
	next := slices.Clone(s.tasks)
	next[i].Completed = true
	return s.commit(ctx, "complete task", next)
}

// Delete implements service.TaskService.
func (s *TaskStore) Delete(ctx context.Context, sel task.Selector) error {
	i, err := s.resolve("delete task", sel)
	if err != nil {
		return err
	}
	next := slices.Delete(slices.Clone(s.tasks), i, i+1)
	return s.commit(ctx, "delete task", next)
}

// List implements service.TaskService.
func (s *TaskStore) List(ctx context.Context) ([]task.Entry, error) {
	entries := make([]task.Entry, len(s.tasks))
	for i, t := range s.tasks {
		entries[i] = task.EntryFor(i, t)
	}
	return entries, nil
}

// Close releases the repository if it holds resources.
func (s *TaskStore) Close() error {
	if c, ok := s.repo.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *TaskStore) resolve(op string, sel task.Selector) (int, error) {
	if id, ok := sel.ID(); ok {
		i := slices.IndexFunc(s.tasks, func(t task.Task) bool { return t.ID == id })
		if i < 0 {
			return -1, notFound(op, id)
		}
		return i, nil
	}
	pos := sel.Position()
	if pos < 0 || pos >= len(s.tasks) {
		return -1, outOfRange(op, pos, len(s.tasks))
	}
	return pos, nil
}

func (s *TaskStore) commit(ctx context.Context, op string, next []task.Task) error {
	if err := s.repo.Save(ctx, next); err != nil {
		return zerr.With(zerr.Wrap(err, op), "location", s.repo.Location())
	}
	s.tasks = next
	s.logger.DebugContext(ctx, "tasks saved", "op", op, "count", len(next))
	return nil
}
