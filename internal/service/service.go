// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"

	"ltask/internal/task"
)

// TaskService defines the operations the commands run against a task list.
// Both store variants implement it; commands never import a backend directly.
type TaskService interface {
	// Variant reports which store is behind the service.
	Variant() Variant

	// Add appends a task. Returns false without touching the list when
	// text is blank.
	Add(ctx context.Context, text string) (bool, error)

	// Edit replaces the text of the selected task, keeping its completed
	// flag. Returns false when text is blank.
	Edit(ctx context.Context, sel task.Selector, text string) (bool, error)

	// Complete marks the selected task completed.
	Complete(ctx context.Context, sel task.Selector) error

	// Delete removes the selected task.
	Delete(ctx context.Context, sel task.Selector) error

	// List returns the current entries in order.
	List(ctx context.Context) ([]task.Entry, error)
}
