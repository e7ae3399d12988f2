package search

import (
	"sort"

	"github.com/jacobduba/sd18-isu/internal/models"
	"github.com/jacobduba/sd18-isu/internal/storage"
)

// Engine performs exact nearest-neighbor search: every stored vector is scored
// against the query with a dot product (cosine similarity, both sides are unit
// normalized) and the top K are returned. The scan is exhaustive; the corpus is
// thousands of entries, not billions, so no ANN structure is needed.
type Engine struct {
	store storage.EmbeddingStore
}

func NewEngine(store storage.EmbeddingStore) *Engine {
	return &Engine{store: store}
}

// Search returns min(topK, stored entries) snippets ordered by score
// descending. Entries with equal scores keep their scan order. An empty store
// yields an empty result, not an error.
func (e *Engine) Search(queryVector []float32, topK int) ([]models.ScoredSnippet, error) {
	entries, err := e.store.LoadAll()
	if err != nil {
		return nil, err
	}
	scored := make([]models.ScoredSnippet, 0, len(entries))
	for _, entry := range entries {
		scored = append(scored, models.ScoredSnippet{
			ID:      entry.ID,
			Snippet: entry.Snippet,
			Score:   dot(entry.Vector, queryVector),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if topK < 0 {
		topK = 0
	}
	if topK > len(scored) {
		topK = len(scored)
	}
	return scored[:topK], nil
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := 0; i < len(a) && i < len(b); i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
