// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"ltask/internal/task"
)

// NoTasks is printed by list when the store is empty.
const NoTasks = "no tasks found"

// FormatEntry formats one list line.
// Format: "{N:>4}  {TEXT}\n" (4-wide right-aligned 1-based number, two spaces, display text)
func FormatEntry(w io.Writer, e task.Entry) {
	fmt.Fprintf(w, "%4d  %s\n", e.Position+1, normalizeText(e.DisplayText))
}

// FormatEntries formats every entry in order.
func FormatEntries(w io.Writer, entries []task.Entry) {
	for _, e := range entries {
		FormatEntry(w, e)
	}
}

// FormatEntryVerbose formats one list line followed by the task id, if any.
func FormatEntryVerbose(w io.Writer, e task.Entry) {
	if e.ID == "" {
		FormatEntry(w, e)
		return
	}
	fmt.Fprintf(w, "%4d  %s  [%s]\n", e.Position+1, normalizeText(e.DisplayText), e.ID)
}

// normalizeText normalizes task text for display.
// - Newlines are replaced with spaces
// - Whitespace-only text becomes "(untitled)"
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
