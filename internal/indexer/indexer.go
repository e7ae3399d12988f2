package indexer

import (
	"context"

	"github.com/jacobduba/sd18-isu/internal/models"
)

type Indexer interface {
	BuildIndex(ctx context.Context, records []models.CorpusRecord) error
	BuildIndexProgress(
		ctx context.Context,
		records []models.CorpusRecord,
	) (<-chan models.IndexProgress, <-chan error)
}
