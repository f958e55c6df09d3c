package snapshot

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.trai.ch/zerr"

	"ltask/internal/task"
)

const (
	// TasksFile is the snapshot file name of the full store.
	TasksFile = "tasks.json"

	// NotesFile is the snapshot file name of the basic store.
	NotesFile = "tasks_proto.json"
)

// file reads and atomically replaces one snapshot path on fs.
type file struct {
	fs     afero.Fs
	path   string
	logger *slog.Logger
}

// read returns the raw snapshot; ok is false if it does not exist.
func (f *file) read() (data []byte, ok bool, err error) {
	data, err = afero.ReadFile(f.fs, f.path)
	if errors.Is(err, os.ErrNotExist) {
		f.logger.Debug("snapshot absent", "path", f.path)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, zerr.With(zerr.Wrap(err, "read snapshot"), "path", f.path)
	}
	return data, true, nil
}

// write replaces the snapshot via a temp file in the same directory and a
// rename, so a crash leaves either the old or the new snapshot in place.
func (f *file) write(data []byte) (err error) {
	dir := filepath.Dir(f.path)
	if err := f.fs.MkdirAll(dir, 0o700); err != nil {
		return zerr.With(zerr.Wrap(err, "create snapshot dir"), "dir", dir)
	}

	tmp, err := afero.TempFile(f.fs, dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "create temp snapshot"), "dir", dir)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = f.fs.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return zerr.Wrap(err, "write temp snapshot")
	}
	if err = tmp.Sync(); err != nil {
		return zerr.Wrap(err, "sync temp snapshot")
	}
	if err = tmp.Close(); err != nil {
		return zerr.Wrap(err, "close temp snapshot")
	}
	if err = f.fs.Rename(tmpName, f.path); err != nil {
		return zerr.With(zerr.Wrap(err, "replace snapshot"), "path", f.path)
	}
	f.logger.Debug("snapshot written", "path", f.path, "bytes", len(data))
	return nil
}

// TaskFile is the full store's snapshot file.
type TaskFile struct {
	file
}

// NewTaskFile returns a TaskFile at path on fs.
func NewTaskFile(fs afero.Fs, path string, logger *slog.Logger) *TaskFile {
	return &TaskFile{file{fs: fs, path: path, logger: logger}}
}

// Location returns the snapshot path.
func (f *TaskFile) Location() string { return f.path }

// Load decodes the snapshot. A missing file yields no tasks.
func (f *TaskFile) Load(ctx context.Context) ([]task.Task, error) {
	data, ok, err := f.read()
	if err != nil || !ok {
		return nil, err
	}

	var records []taskRecord
	if err := decode(data, FormatTasks, &records); err != nil {
		return nil, zerr.With(err, "path", f.path)
	}

	tasks := make([]task.Task, len(records))
	for i, r := range records {
		if verr := validate.Struct(r); verr != nil {
			err := zerr.With(zerr.Wrap(ErrCorrupt, verr.Error()), "path", f.path)
			return nil, zerr.With(err, "index", i)
		}
		tasks[i] = task.Task{ID: r.ID, Text: r.Text, Completed: r.Completed}
	}
	return tasks, nil
}

// Save replaces the snapshot with tasks.
func (f *TaskFile) Save(ctx context.Context, tasks []task.Task) error {
	records := make([]taskRecord, len(tasks))
	for i, t := range tasks {
		records[i] = taskRecord{ID: t.ID, Text: t.Text, Completed: t.Completed}
	}
	data, err := encode(FormatTasks, records)
	if err != nil {
		return err
	}
	return f.write(data)
}

// NoteFile is the basic store's snapshot file.
type NoteFile struct {
	file
}

// NewNoteFile returns a NoteFile at path on fs.
func NewNoteFile(fs afero.Fs, path string, logger *slog.Logger) *NoteFile {
	return &NoteFile{file{fs: fs, path: path, logger: logger}}
}

// Location returns the snapshot path.
func (f *NoteFile) Location() string { return f.path }

// Load decodes the snapshot. A missing file yields no notes.
func (f *NoteFile) Load(ctx context.Context) ([]string, error) {
	data, ok, err := f.read()
	if err != nil || !ok {
		return nil, err
	}
	var notes []string
	if err := decode(data, FormatNotes, &notes); err != nil {
		return nil, zerr.With(err, "path", f.path)
	}
	return notes, nil
}

// Save replaces the snapshot with notes.
func (f *NoteFile) Save(ctx context.Context, notes []string) error {
	if notes == nil {
		notes = []string{}
	}
	data, err := encode(FormatNotes, notes)
	if err != nil {
		return err
	}
	return f.write(data)
}
