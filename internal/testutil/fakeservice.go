// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"slices"

	"ltask/internal/service"
	"ltask/internal/task"
	"ltask/internal/todo"
)

// FakeService is an in-memory implementation of service.TaskService for
// command tests. It mirrors the store semantics closely enough for output
// checks and lets tests inject errors per operation.
type FakeService struct {
	variant service.Variant
	tasks   []task.Task

	// Error injection for testing
	AddErr      error
	EditErr     error
	CompleteErr error
	DeleteErr   error
	ListErr     error

	// Calls records the operations in order, e.g. "complete #0".
	Calls []string
}

// NewFakeService creates an empty FakeService of the given variant.
func NewFakeService(variant service.Variant) *FakeService {
	return &FakeService{variant: variant}
}

// AddTask seeds a task without recording a call.
func (f *FakeService) AddTask(id, text string, completed bool) {
	f.tasks = append(f.tasks, task.Task{ID: id, Text: text, Completed: completed})
}

// Tasks returns a copy of the current tasks.
func (f *FakeService) Tasks() []task.Task {
	return slices.Clone(f.tasks)
}

func (f *FakeService) Variant() service.Variant { return f.variant }

func (f *FakeService) Add(ctx context.Context, text string) (bool, error) {
	f.Calls = append(f.Calls, "add "+text)
	if f.AddErr != nil {
		return false, f.AddErr
	}
	if task.Blank(text) {
		return false, nil
	}
	if !task.Encodable(text) {
		return false, todo.ErrInvalidText
	}
	f.tasks = append(f.tasks, task.Task{ID: fmt.Sprintf("task%d", len(f.tasks)+1), Text: text})
	return true, nil
}

func (f *FakeService) Edit(ctx context.Context, sel task.Selector, text string) (bool, error) {
	f.Calls = append(f.Calls, "edit "+sel.String()+" "+text)
	if f.EditErr != nil {
		return false, f.EditErr
	}
	if f.variant == service.VariantBasic {
		return false, todo.ErrUnsupported
	}
	i, err := f.resolve(sel)
	if err != nil {
		return false, err
	}
	if task.Blank(text) {
		return false, nil
	}
	if !task.Encodable(text) {
		return false, todo.ErrInvalidText
	}
	f.tasks[i].Text = text
	return true, nil
}

func (f *FakeService) Complete(ctx context.Context, sel task.Selector) error {
	f.Calls = append(f.Calls, "complete "+sel.String())
	if f.CompleteErr != nil {
		return f.CompleteErr
	}
	if f.variant == service.VariantBasic {
		return todo.ErrUnsupported
	}
	i, err := f.resolve(sel)
	if err != nil {
		return err
	}
	f.tasks[i].Completed = true
	return nil
}

func (f *FakeService) Delete(ctx context.Context, sel task.Selector) error {
	f.Calls = append(f.Calls, "delete "+sel.String())
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	if _, byID := sel.ID(); byID && f.variant == service.VariantBasic {
		return todo.ErrUnsupported
	}
	i, err := f.resolve(sel)
	if err != nil {
		return err
	}
	f.tasks = slices.Delete(f.tasks, i, i+1)
	return nil
}

func (f *FakeService) List(ctx context.Context) ([]task.Entry, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	entries := make([]task.Entry, len(f.tasks))
	for i, t := range f.tasks {
		entries[i] = task.EntryFor(i, t)
	}
	return entries, nil
}

func (f *FakeService) resolve(sel task.Selector) (int, error) {
	if id, ok := sel.ID(); ok {
		i := slices.IndexFunc(f.tasks, func(t task.Task) bool { return t.ID == id })
		if i < 0 {
			return -1, todo.ErrNotFound
		}
		return i, nil
	}
	if sel.Position() < 0 || sel.Position() >= len(f.tasks) {
		return -1, todo.ErrOutOfRange
	}
	return sel.Position(), nil
}
