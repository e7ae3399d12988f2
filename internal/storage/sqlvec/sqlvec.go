package sqlvec

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	"github.com/jacobduba/sd18-isu/internal/models"
	"github.com/jacobduba/sd18-isu/internal/storage"
	_ "github.com/mattn/go-sqlite3"
)

// Store is an alternate EmbeddingStore backed by sqlite-vec. Snippet text lives
// in a plain table keyed by corpus id; vectors live in a vec0 virtual table
// joined through the shared rowid. The contract is identical to the blob store.
type Store struct {
	db        *sql.DB
	dimension int
}

func New(path string, dimension int) (*Store, error) {
	// enable sqlite-vec for all future connections
	sqlite_vec.Auto()
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := migrate(db, dimension); err != nil {
		return nil, err
	}
	return &Store{db: db, dimension: dimension}, nil
}

func migrate(db *sql.DB, dim int) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS snippets (
		id INTEGER PRIMARY KEY,
		snippet_text TEXT NOT NULL
	);`); err != nil {
		return err
	}
	// vec0 dimension is fixed per table. If dim <= 0, defer creation until the
	// first insert when the dimension is known.
	if dim > 0 {
		if _, err := db.Exec(fmt.Sprintf(`CREATE VIRTUAL TABLE IF NOT EXISTS vec_embeddings USING vec0(
            embedding float32[%d]
        );`, dim)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Exists(id int64) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM snippets WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) InsertOne(entry models.EmbeddingEntry) error {
	return s.InsertBulk([]models.EmbeddingEntry{entry})
}

func (s *Store) InsertBulk(entries []models.EmbeddingEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := s.ensureVecTable(tx, entries); err != nil {
		_ = tx.Rollback()
		return err
	}
	snipStmt, err := tx.Prepare(`INSERT INTO snippets(id, snippet_text) VALUES(?,?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer func() { _ = snipStmt.Close() }()
	vecStmt, err := tx.Prepare(`INSERT INTO vec_embeddings(rowid, embedding) VALUES(?,?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer func() { _ = vecStmt.Close() }()

	for _, entry := range entries {
		if _, err := snipStmt.Exec(entry.ID, entry.Snippet); err != nil {
			_ = tx.Rollback()
			if isUniqueViolation(err) {
				return fmt.Errorf("id %d: %w", entry.ID, storage.ErrDuplicateID)
			}
			return err
		}
		v, err := sqlite_vec.SerializeFloat32(entry.Vector)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		if _, err := vecStmt.Exec(entry.ID, v); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) LoadAll() ([]models.EmbeddingEntry, error) {
	rows, err := s.db.Query(`
        SELECT n.id, n.snippet_text, v.embedding
        FROM snippets n
        JOIN vec_embeddings v ON v.rowid = n.id
        ORDER BY n.id
    `)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []models.EmbeddingEntry
	for rows.Next() {
		var entry models.EmbeddingEntry
		var blob []byte
		if err := rows.Scan(&entry.ID, &entry.Snippet, &blob); err != nil {
			return nil, err
		}
		// vec0 stores float32 little-endian, same layout as the blob store
		entry.Vector, err = storage.DecodeVector(blob)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (s *Store) ensureVecTable(tx *sql.Tx, entries []models.EmbeddingEntry) error {
	var name string
	err := tx.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='vec_embeddings'`).
		Scan(&name)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if name == "vec_embeddings" {
		return nil
	}
	if len(entries) == 0 || len(entries[0].Vector) == 0 {
		return fmt.Errorf("cannot create vec_embeddings: unknown embedding dimension")
	}
	dim := len(entries[0].Vector)
	if _, err := tx.Exec(fmt.Sprintf(`CREATE VIRTUAL TABLE IF NOT EXISTS vec_embeddings USING vec0(
        embedding float32[%d]
    );`, dim)); err != nil {
		return err
	}
	s.dimension = dim
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
