package search_test

import (
	"math"
	"testing"

	"github.com/jacobduba/sd18-isu/internal/models"
	"github.com/jacobduba/sd18-isu/internal/search"
	"github.com/jacobduba/sd18-isu/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Search(t *testing.T) {
	st := memory.New()
	require.NoError(t, st.InsertBulk([]models.EmbeddingEntry{
		{ID: 1, Snippet: "a", Vector: []float32{1, 0}},
		{ID: 2, Snippet: "b", Vector: []float32{0, 1}},
		{ID: 3, Snippet: "c", Vector: []float32{0.7071, 0.7071}},
	}))

	hits, err := search.NewEngine(st).Search([]float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, int64(1), hits[0].ID)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-6)
	assert.Equal(t, int64(3), hits[1].ID)
	assert.InDelta(t, 0.7071, hits[1].Score, 1e-4)
}

func TestEngine_Search_Monotonic(t *testing.T) {
	st := memory.New()
	entries := make([]models.EmbeddingEntry, 0, 20)
	for i := 0; i < 20; i++ {
		angle := float64(i) * 0.3
		entries = append(entries, models.EmbeddingEntry{
			ID:      int64(i),
			Snippet: "s",
			Vector:  []float32{float32(math.Cos(angle)), float32(math.Sin(angle))},
		})
	}
	require.NoError(t, st.InsertBulk(entries))

	hits, err := search.NewEngine(st).Search([]float32{1, 0}, 20)
	require.NoError(t, err)
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
	}
}

func TestEngine_Search_StableTies(t *testing.T) {
	st := memory.New()
	// identical vectors score identically; scan order (by id) must survive
	require.NoError(t, st.InsertBulk([]models.EmbeddingEntry{
		{ID: 1, Snippet: "first", Vector: []float32{0, 1}},
		{ID: 2, Snippet: "second", Vector: []float32{0, 1}},
		{ID: 3, Snippet: "third", Vector: []float32{0, 1}},
	}))

	hits, err := search.NewEngine(st).Search([]float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{hits[0].ID, hits[1].ID, hits[2].ID})
}

func TestEngine_Search_EmptyStore(t *testing.T) {
	hits, err := search.NewEngine(memory.New()).Search([]float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestEngine_Search_TopKLargerThanStore(t *testing.T) {
	st := memory.New()
	require.NoError(t, st.InsertOne(models.EmbeddingEntry{ID: 1, Snippet: "a", Vector: []float32{1, 0}}))

	hits, err := search.NewEngine(st).Search([]float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}
