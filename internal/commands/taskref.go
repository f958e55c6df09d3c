package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"github.com/google/uuid"

	"ltask/internal/task"
)

// TaskRef is a parsed task reference: a 1-based position or a task ID.
type TaskRef struct {
	Num int    // 1-based position, 0 if ID is set
	ID  string // canonical task ID
}

var (
	// ErrTaskRefRequired indicates no task reference was provided.
	ErrTaskRefRequired = errors.New("task reference required")

	// ErrInvalidTaskRef indicates a reference that is neither a number nor an ID.
	ErrInvalidTaskRef = errors.New("invalid task reference")
)

// ParseTaskRef parses the task reference in args[0].
//
//  1. all digits → position (e.g. 3)
//  2. a UUID in any accepted spelling → task ID
//  3. anything else → ErrInvalidTaskRef
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}
	arg := args[0]

	if isAllDigits(arg) {
		num, err := strconv.Atoi(arg)
		if err != nil {
			return TaskRef{}, fmt.Errorf("%w: %s", ErrInvalidTaskRef, arg)
		}
		return TaskRef{Num: num}, nil
	}

	if id, err := uuid.Parse(arg); err == nil {
		return TaskRef{ID: id.String()}, nil
	}

	return TaskRef{}, fmt.Errorf("%w: %s", ErrInvalidTaskRef, arg)
}

// Selector converts the reference to a store selector.
func (r TaskRef) Selector() task.Selector {
	if r.ID != "" {
		return task.ByID(r.ID)
	}
	return task.At(r.Num - 1)
}

func (r TaskRef) String() string {
	if r.ID != "" {
		return r.ID
	}
	return strconv.Itoa(r.Num)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
