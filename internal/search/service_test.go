package search_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jacobduba/sd18-isu/internal/models"
	"github.com/jacobduba/sd18-isu/internal/search"
	"github.com/jacobduba/sd18-isu/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedEmbedder struct {
	vec []float32
	err error
}

func (f *fixedEmbedder) ModelName() string { return "fixed" }

func (f *fixedEmbedder) EmbedQuery(text string) ([]float32, error) {
	return f.vec, f.err
}

func (f *fixedEmbedder) EmbedTexts(texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = f.vec
	}
	return out, f.err
}

type reverseReranker struct{}

func (reverseReranker) Rank(
	ctx context.Context,
	query string,
	snippets []string,
) []models.ScoredSnippet {
	out := make([]models.ScoredSnippet, 0, len(snippets))
	for i := len(snippets) - 1; i >= 0; i-- {
		out = append(out, models.ScoredSnippet{Snippet: snippets[i], Score: float64(i)})
	}
	return out
}

func populatedStore(t *testing.T) *memory.Store {
	t.Helper()
	st := memory.New()
	require.NoError(t, st.InsertBulk([]models.EmbeddingEntry{
		{ID: 1, Snippet: "a", Vector: []float32{1, 0}},
		{ID: 2, Snippet: "b", Vector: []float32{0, 1}},
		{ID: 3, Snippet: "c", Vector: []float32{0.7071, 0.7071}},
	}))
	return st
}

func TestService_SearchAndRank_VectorOnly(t *testing.T) {
	svc := &search.Service{
		Embedder: &fixedEmbedder{vec: []float32{1, 0}},
		Engine:   search.NewEngine(populatedStore(t)),
	}

	resp, err := svc.SearchAndRank(context.Background(), "q", 2)
	require.NoError(t, err)
	assert.False(t, resp.Unavailable)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "a", resp.Results[0].Snippet)
	assert.Equal(t, "c", resp.Results[1].Snippet)
}

func TestService_SearchAndRank_RerankerOrdersFinalResult(t *testing.T) {
	svc := &search.Service{
		Embedder: &fixedEmbedder{vec: []float32{1, 0}},
		Engine:   search.NewEngine(populatedStore(t)),
		Reranker: reverseReranker{},
	}

	resp, err := svc.SearchAndRank(context.Background(), "q", 3)
	require.NoError(t, err)
	require.Len(t, resp.Results, 3)
	// reranker reversed the shortlist; ids must follow their snippets
	assert.Equal(t, "b", resp.Results[0].Snippet)
	assert.Equal(t, int64(2), resp.Results[0].ID)
	assert.Equal(t, "a", resp.Results[2].Snippet)
	assert.Equal(t, int64(1), resp.Results[2].ID)
}

func TestService_SearchAndRank_EmptyStoreIsNotAnError(t *testing.T) {
	svc := &search.Service{
		Embedder: &fixedEmbedder{vec: []float32{1, 0}},
		Engine:   search.NewEngine(memory.New()),
	}

	resp, err := svc.SearchAndRank(context.Background(), "q", 10)
	require.NoError(t, err)
	assert.False(t, resp.Unavailable)
	assert.Empty(t, resp.Results)
}

func TestService_SearchAndRank_EmbedFailureIsUnavailable(t *testing.T) {
	svc := &search.Service{
		Embedder: &fixedEmbedder{err: errors.New("encoder down")},
		Engine:   search.NewEngine(populatedStore(t)),
	}

	resp, err := svc.SearchAndRank(context.Background(), "q", 10)
	require.Error(t, err)
	assert.True(t, resp.Unavailable)
	assert.NotEmpty(t, resp.Reason)
}
