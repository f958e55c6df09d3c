package sqlitestore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ltask/internal/backend/sqlitestore"
	"ltask/internal/logging"
	"ltask/internal/task"
	"ltask/internal/todo"
)

func openStore(t *testing.T, path string) *sqlitestore.Store {
	t.Helper()
	s, err := sqlitestore.Open(context.Background(), path, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_NewDatabaseLoadsEmpty(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "nested", sqlitestore.DatabaseFile))

	tasks, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestStore_SaveReplacesAndPreservesOrder(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), sqlitestore.DatabaseFile)
	s := openStore(t, path)

	first := []task.Task{task.New("a"), task.New("b"), task.New("c")}
	require.NoError(t, s.Save(ctx, first))

	second := []task.Task{first[2], {ID: first[0].ID, Text: "a2", Completed: true}}
	require.NoError(t, s.Save(ctx, second))
	require.NoError(t, s.Close())

	reopened := openStore(t, path)
	got, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestStore_BacksTaskStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), sqlitestore.DatabaseFile)

	store, err := todo.OpenTaskStore(ctx, openStore(t, path), logging.Discard())
	require.NoError(t, err)
	_, err = store.Add(ctx, "buy milk")
	require.NoError(t, err)
	_, err = store.Add(ctx, "walk dog")
	require.NoError(t, err)
	require.NoError(t, store.Complete(ctx, task.At(1)))
	require.NoError(t, store.Close())

	reloaded, err := todo.OpenTaskStore(ctx, openStore(t, path), logging.Discard())
	require.NoError(t, err)
	entries, err := reloaded.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "buy milk", entries[0].DisplayText)
	assert.Equal(t, "walk dog (Completed)", entries[1].DisplayText)
}

func TestStore_DuplicateIDRollsBack(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, filepath.Join(t.TempDir(), sqlitestore.DatabaseFile))

	original := []task.Task{task.New("keep")}
	require.NoError(t, s.Save(ctx, original))

	dup := task.New("dup")
	err := s.Save(ctx, []task.Task{dup, dup})
	require.Error(t, err)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, original, got)
}
