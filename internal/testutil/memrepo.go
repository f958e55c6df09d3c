package testutil

import (
	"context"
	"slices"

	"ltask/internal/task"
)

// MemTaskRepo is an in-memory task snapshot. Saves store a copy; SaveErr
// and LoadErr inject failures.
type MemTaskRepo struct {
	Tasks   []task.Task
	Saves   int
	SaveErr error
	LoadErr error
}

func (r *MemTaskRepo) Load(ctx context.Context) ([]task.Task, error) {
	if r.LoadErr != nil {
		return nil, r.LoadErr
	}
	return slices.Clone(r.Tasks), nil
}

func (r *MemTaskRepo) Save(ctx context.Context, tasks []task.Task) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.Tasks = slices.Clone(tasks)
	r.Saves++
	return nil
}

func (r *MemTaskRepo) Location() string { return "memory:tasks" }

// MemNoteRepo is the basic-store counterpart of MemTaskRepo.
type MemNoteRepo struct {
	Notes   []string
	Saves   int
	SaveErr error
	LoadErr error
}

func (r *MemNoteRepo) Load(ctx context.Context) ([]string, error) {
	if r.LoadErr != nil {
		return nil, r.LoadErr
	}
	return slices.Clone(r.Notes), nil
}

func (r *MemNoteRepo) Save(ctx context.Context, notes []string) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.Notes = slices.Clone(notes)
	r.Saves++
	return nil
}

func (r *MemNoteRepo) Location() string { return "memory:notes" }
