package todo

import (
	"context"
	"log/slog"
	"slices"

	"go.trai.ch/zerr"

	"ltask/internal/service"
	"ltask/internal/task"
)

// NoteStore is the basic task list: plain strings that can only be added,
// deleted by position and listed.
type NoteStore struct {
	repo   NoteRepository
	logger *slog.Logger
	notes  []string
}

var _ service.TaskService = (*NoteStore)(nil)

// OpenNoteStore loads the snapshot behind repo.
func OpenNoteStore(ctx context.Context, repo NoteRepository, logger *slog.Logger) (*NoteStore, error) {
	notes, err := repo.Load(ctx)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "load notes"), "location", repo.Location())
	}
	logger.DebugContext(ctx, "notes loaded", "location", repo.Location(), "count", len(notes))
	return &NoteStore{
		repo:   repo,
		logger: logger,
		notes:  slices.Clone(notes),
	}, nil
}

// Variant implements service.TaskService.
func (s *NoteStore) Variant() service.Variant { return service.VariantBasic }

// Len returns the number of notes.
func (s *NoteStore) Len() int { return len(s.notes) }

// Add implements service.TaskService.
func (s *NoteStore) Add(ctx context.Context, text string) (bool, error) {
	if task.Blank(text) {
		return false, nil
	}
	if !task.Encodable(text) {
		return false, invalidText("add note")
	}
	next := append(slices.Clone(s.notes), text)
	if err := s.commit(ctx, "add note", next); err != nil {
		return false, err
	}
	return true, nil
}

// Edit is not supported by the basic store.
func (s *NoteStore) Edit(ctx context.Context, sel task.Selector, text string) (bool, error) {
	return false, unsupported("edit task")
}

// Complete is not supported by the basic store.
func (s *NoteStore) Complete(ctx context.Context, sel task.Selector) error {
	return unsupported("complete task")
}

// Delete implements service.TaskService. Notes have no ID, so only
// positional selectors are accepted.
func (s *NoteStore) Delete(ctx context.Context, sel task.Selector) error {
	if _, ok := sel.ID(); ok {
		return unsupported("delete note by id")
	}
	pos := sel.Position()
	if pos < 0 || pos >= len(s.notes) {
		return outOfRange("delete note", pos, len(s.notes))
	}
	next := slices.Delete(slices.Clone(s.notes), pos, pos+1)
	return s.commit(ctx, "delete note", next)
}

// List implements service.TaskService.
func (s *NoteStore) List(ctx context.Context) ([]task.Entry, error) {
	entries := make([]task.Entry, len(s.notes))
	for i, n := range s.notes {
		entries[i] = task.Entry{Position: i, Text: n, DisplayText: n}
	}
	return entries, nil
}

func (s *NoteStore) commit(ctx context.Context, op string, next []string) error {
	if err := s.repo.Save(ctx, next); err != nil {
		return zerr.With(zerr.Wrap(err, op), "location", s.repo.Location())
	}
	s.notes = next
	s.logger.DebugContext(ctx, "notes saved", "op", op, "count", len(next))
	return nil
}
