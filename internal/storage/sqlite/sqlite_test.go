package sqlite_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/jacobduba/sd18-isu/internal/models"
	"github.com/jacobduba/sd18-isu/internal/storage"
	"github.com/jacobduba/sd18-isu/internal/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestStore_RoundTrip(t *testing.T) {
	st := newStore(t)
	entry := models.EmbeddingEntry{
		ID:      7,
		Snippet: "def add(a, b):\n    return a + b",
		Vector:  []float32{0.25, -0.5, 0.8291562},
	}
	require.NoError(t, st.InsertOne(entry))

	entries, err := st.LoadAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID, entries[0].ID)
	assert.Equal(t, entry.Snippet, entries[0].Snippet)
	assert.Equal(t, entry.Vector, entries[0].Vector)
}

func TestStore_Exists(t *testing.T) {
	st := newStore(t)

	ok, err := st.Exists(1)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.InsertOne(models.EmbeddingEntry{ID: 1, Snippet: "s", Vector: []float32{1}}))

	ok, err = st.Exists(1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStore_DuplicateID(t *testing.T) {
	st := newStore(t)
	entry := models.EmbeddingEntry{ID: 1, Snippet: "s", Vector: []float32{1}}
	require.NoError(t, st.InsertOne(entry))

	err := st.InsertOne(entry)
	assert.True(t, errors.Is(err, storage.ErrDuplicateID), "got %v", err)
}

func TestStore_InsertBulk_AllOrNothing(t *testing.T) {
	st := newStore(t)
	require.NoError(t, st.InsertOne(models.EmbeddingEntry{ID: 2, Snippet: "existing", Vector: []float32{1}}))

	err := st.InsertBulk([]models.EmbeddingEntry{
		{ID: 1, Snippet: "a", Vector: []float32{1}},
		{ID: 2, Snippet: "collides", Vector: []float32{1}},
		{ID: 3, Snippet: "c", Vector: []float32{1}},
	})
	require.Error(t, err)

	// the failed batch must not be partially visible
	entries, err := st.LoadAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ID)
	assert.Equal(t, "existing", entries[0].Snippet)
}

func TestStore_LoadAll_Empty(t *testing.T) {
	st := newStore(t)
	entries, err := st.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, entries)
}
