package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/sakura/pkg/api"
)

func setupTestDB(t *testing.T) (Store, context.Context) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := Open(ctx, "sqlite://"+dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store, ctx
}

func TestNoteCRUD(t *testing.T) {
	store, ctx := setupTestDB(t)

	note := api.Note{
		ID:          "note-1",
		Title:       "Trip to Japan",
		Body:        "visited Tokyo",
		CreatedTime: 100,
		UpdatedTime: 200,
		ParentID:    "travel",
		Tags:        []string{"trip", "japan"},
	}

	t.Run("upsert then get", func(t *testing.T) {
		require.NoError(t, store.UpsertNote(ctx, note))
		got, err := store.GetNote(ctx, note.ID)
		require.NoError(t, err)
		assert.Equal(t, note, got)
	})

	t.Run("upsert replaces on conflict", func(t *testing.T) {
		note.Title = "Trip to Japan 2024"
		note.UpdatedTime = 300
		require.NoError(t, store.UpsertNote(ctx, note))
		got, err := store.GetNote(ctx, note.ID)
		require.NoError(t, err)
		assert.Equal(t, "Trip to Japan 2024", got.Title)
		assert.Equal(t, int64(300), got.UpdatedTime)
	})

	t.Run("get unknown id", func(t *testing.T) {
		_, err := store.GetNote(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.DeleteNote(ctx, note.ID))
		_, err := store.GetNote(ctx, note.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, store.DeleteNote(ctx, note.ID), ErrNotFound)
	})
}

func TestSnapshot(t *testing.T) {
	store, ctx := setupTestDB(t)

	seed := []api.Note{
		{ID: "1", Title: "a", Body: "x", ParentID: "work", UpdatedTime: 100},
		{ID: "2", Title: "b", Body: "y", ParentID: "home", UpdatedTime: 300},
		{ID: "3", Title: "c", Body: "z", ParentID: "work", UpdatedTime: 200},
	}
	for _, n := range seed {
		require.NoError(t, store.UpsertNote(ctx, n))
	}

	t.Run("full snapshot ordered by updated_time desc", func(t *testing.T) {
		notes, err := store.Snapshot(ctx, "")
		require.NoError(t, err)
		require.Len(t, notes, 3)
		assert.Equal(t, "2", notes[0].ID)
		assert.Equal(t, "3", notes[1].ID)
		assert.Equal(t, "1", notes[2].ID)
	})

	t.Run("scoped to one parent", func(t *testing.T) {
		notes, err := store.Snapshot(ctx, "work")
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, "3", notes[0].ID)
		assert.Equal(t, "1", notes[1].ID)
	})

	t.Run("empty store yields empty snapshot", func(t *testing.T) {
		empty, ctx2 := setupTestDB(t)
		notes, err := empty.Snapshot(ctx2, "")
		require.NoError(t, err)
		assert.Empty(t, notes)
	})
}

func TestMemStoreMatchesSQLite(t *testing.T) {
	mem, err := Open(context.Background(), "mem://")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, mem.UpsertNote(ctx, api.Note{ID: "1", Title: "t", UpdatedTime: 100}))
	require.NoError(t, mem.UpsertNote(ctx, api.Note{ID: "2", Title: "u", UpdatedTime: 200}))

	notes, err := mem.Snapshot(ctx, "")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "2", notes[0].ID)

	require.NoError(t, mem.DeleteNote(ctx, "1"))
	_, err = mem.GetNote(ctx, "1")
	assert.ErrorIs(t, err, ErrNotFound)
}
