package search

import (
	"context"
	"fmt"

	"github.com/jacobduba/sd18-isu/internal/embeddings"
	"github.com/jacobduba/sd18-isu/internal/models"
)

// Reranker re-scores a shortlist of snippets for a query. judge.Judge is the
// production implementation.
type Reranker interface {
	Rank(ctx context.Context, query string, snippets []string) []models.ScoredSnippet
}

// Service is the one entry point the presentation layers invoke: embed the
// query, take the top-K similarity candidates, then let the judge re-rank them.
type Service struct {
	Embedder embeddings.Embedder
	Engine   *Engine
	Reranker Reranker // nil disables the second pass
}

// SearchAndRank runs the full query pipeline. A failure that makes the whole
// query meaningless (query cannot be embedded, store unreadable) is returned as
// an error alongside an Unavailable response so the caller can render a visible
// "search unavailable" state instead of a silent empty list.
func (s *Service) SearchAndRank(
	ctx context.Context,
	query string,
	topK int,
) (models.SearchResponse, error) {
	resp := models.SearchResponse{Query: query}

	queryVector, err := s.Embedder.EmbedQuery(query)
	if err != nil {
		resp.Unavailable = true
		resp.Reason = "query could not be embedded"
		return resp, fmt.Errorf("embed query: %w", err)
	}

	candidates, err := s.Engine.Search(queryVector, topK)
	if err != nil {
		resp.Unavailable = true
		resp.Reason = "embedding store unreadable"
		return resp, fmt.Errorf("similarity search: %w", err)
	}
	if len(candidates) == 0 {
		resp.Results = []models.ScoredSnippet{}
		return resp, nil
	}

	if s.Reranker == nil {
		resp.Results = candidates
		return resp, nil
	}

	snippets := make([]string, len(candidates))
	for i, c := range candidates {
		snippets[i] = c.Snippet
	}
	ranked := s.Reranker.Rank(ctx, query, snippets)

	// carry the corpus ids through the second pass; Rank preserves the
	// snippet-to-score pairing but re-orders, so match by original position
	byPos := make(map[string][]int64)
	for _, c := range candidates {
		byPos[c.Snippet] = append(byPos[c.Snippet], c.ID)
	}
	for i := range ranked {
		if ids := byPos[ranked[i].Snippet]; len(ids) > 0 {
			ranked[i].ID = ids[0]
			byPos[ranked[i].Snippet] = ids[1:]
		}
	}
	resp.Results = ranked
	return resp, nil
}
