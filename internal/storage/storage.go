package storage

import (
	"errors"

	"github.com/jacobduba/sd18-isu/internal/models"
)

// ErrDuplicateID is returned by InsertOne when an entry with the same id is
// already persisted. Callers should check Exists first or pre-filter bulk input.
var ErrDuplicateID = errors.New("storage: duplicate entry id")

// EmbeddingStore is durable keyed storage for index entries. Writes are
// append-only keyed by unique id; InsertBulk is all-or-nothing per call.
type EmbeddingStore interface {
	Exists(id int64) (bool, error)
	InsertOne(entry models.EmbeddingEntry) error
	InsertBulk(entries []models.EmbeddingEntry) error
	LoadAll() ([]models.EmbeddingEntry, error)
}
