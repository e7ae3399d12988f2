package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/jacobduba/sd18-isu/internal/models"
	"github.com/jacobduba/sd18-isu/internal/storage"
)

// Store is an in-process EmbeddingStore used by tests and ephemeral runs.
type Store struct {
	mu      sync.RWMutex
	entries map[int64]models.EmbeddingEntry
}

func New() *Store {
	return &Store{entries: make(map[int64]models.EmbeddingEntry)}
}

func (s *Store) Exists(id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[id]
	return ok, nil
}

func (s *Store) InsertOne(entry models.EmbeddingEntry) error {
	return s.InsertBulk([]models.EmbeddingEntry{entry})
}

// InsertBulk validates the whole batch before mutating anything so that a
// duplicate partway through never leaves a partial write behind.
func (s *Store) InsertBulk(entries []models.EmbeddingEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[int64]struct{}, len(entries))
	for _, entry := range entries {
		if _, ok := s.entries[entry.ID]; ok {
			return fmt.Errorf("id %d: %w", entry.ID, storage.ErrDuplicateID)
		}
		if _, ok := seen[entry.ID]; ok {
			return fmt.Errorf("id %d: %w", entry.ID, storage.ErrDuplicateID)
		}
		seen[entry.ID] = struct{}{}
	}
	for _, entry := range entries {
		vec := make([]float32, len(entry.Vector))
		copy(vec, entry.Vector)
		entry.Vector = vec
		s.entries[entry.ID] = entry
	}
	return nil
}

func (s *Store) LoadAll() ([]models.EmbeddingEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.EmbeddingEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
