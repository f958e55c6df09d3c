// Package backend opens the task service selected by the configuration.
package backend

import (
	"context"

	"github.com/spf13/afero"
	"go.trai.ch/zerr"

	"ltask/internal/backend/sqlitestore"
	"ltask/internal/config"
	"ltask/internal/service"
	"ltask/internal/snapshot"
	"ltask/internal/todo"
)

// Open returns the service for cfg on the OS filesystem.
func Open(ctx context.Context, cfg *config.Config) (service.TaskService, error) {
	return OpenFS(ctx, cfg, afero.NewOsFs())
}

// OpenFS returns the service for cfg, reading file snapshots from fs.
// The basic store always uses its snapshot file; the full store uses
// either its snapshot file or the SQLite database.
func OpenFS(ctx context.Context, cfg *config.Config, fs afero.Fs) (service.TaskService, error) {
	logger := cfg.Logger

	switch cfg.Store {
	case service.VariantBasic:
		return todo.OpenNoteStore(ctx, snapshot.NewNoteFile(fs, cfg.NotesPath(), logger), logger)

	case service.VariantFull:
		if cfg.Backend != config.BackendSQLite {
			return todo.OpenTaskStore(ctx, snapshot.NewTaskFile(fs, cfg.TasksPath(), logger), logger)
		}
		db, err := sqlitestore.Open(ctx, cfg.DatabasePath(), logger)
		if err != nil {
			return nil, err
		}
		store, err := todo.OpenTaskStore(ctx, db, logger)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return store, nil
	}

	return nil, zerr.With(zerr.Wrap(todo.ErrUnsupported, "open store"), "store", string(cfg.Store))
}
