// Package task defines the task record and the render model shared by the
// stores, the persistence backends and the CLI.
package task

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// CompletedSuffix is appended to the display text of a completed task.
const CompletedSuffix = " (Completed)"

// Task is one todo record. Tasks are plain values; a store never hands out
// references into its own sequence.
type Task struct {
	ID        string
	Text      string
	Completed bool
}

// New creates an open task with a fresh identifier.
func New(text string) Task {
	return Task{ID: uuid.NewString(), Text: text}
}

// DisplayText returns the text as rendered in a listing.
func (t Task) DisplayText() string {
	if t.Completed {
		return t.Text + CompletedSuffix
	}
	return t.Text
}

// Blank reports whether text is empty after trimming.
func Blank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// Encodable reports whether text survives a save unchanged. Snapshot
// encoders rewrite invalid UTF-8, so such text is refused up front.
func Encodable(text string) bool {
	return utf8.ValidString(text)
}

// Entry is a read-only, render-ready view of one position in a list.
type Entry struct {
	Position    int // 0-based
	ID          string
	Text        string
	DisplayText string
	Completed   bool
}

// EntryFor builds the entry for t at position pos.
func EntryFor(pos int, t Task) Entry {
	return Entry{
		Position:    pos,
		ID:          t.ID,
		Text:        t.Text,
		DisplayText: t.DisplayText(),
		Completed:   t.Completed,
	}
}

// Selector addresses a task either by its current position or by its ID.
type Selector struct {
	pos int
	id  string
}

// At selects the task currently at the 0-based position pos.
func At(pos int) Selector {
	return Selector{pos: pos}
}

// ByID selects the task with the given identifier.
func ByID(id string) Selector {
	return Selector{pos: -1, id: id}
}

// ID returns the selected identifier, if the selector is identity based.
func (s Selector) ID() (string, bool) {
	return s.id, s.id != ""
}

// Position returns the selected 0-based position. Only meaningful when the
// selector is not identity based.
func (s Selector) Position() int {
	return s.pos
}

func (s Selector) String() string {
	if s.id != "" {
		return s.id
	}
	return "#" + strconv.Itoa(s.pos)
}
