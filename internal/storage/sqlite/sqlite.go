package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jacobduba/sd18-isu/internal/models"
	"github.com/jacobduba/sd18-isu/internal/storage"
	_ "modernc.org/sqlite"
)

// Store persists embedding entries as little-endian float32 blobs keyed by id.
type Store struct {
	db *sql.DB
}

func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS embeddings (
		id INTEGER PRIMARY KEY,
		snippet_text TEXT NOT NULL,
		vector BLOB NOT NULL
	);`)
	return err
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Exists(id int64) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM embeddings WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) InsertOne(entry models.EmbeddingEntry) error {
	_, err := s.db.Exec(
		`INSERT INTO embeddings(id, snippet_text, vector) VALUES(?,?,?)`,
		entry.ID, entry.Snippet, storage.EncodeVector(entry.Vector),
	)
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("id %d: %w", entry.ID, storage.ErrDuplicateID)
	}
	return err
}

// InsertBulk writes all entries in one transaction; a failure partway rolls the
// whole batch back so readers never observe a partial commit.
func (s *Store) InsertBulk(entries []models.EmbeddingEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO embeddings(id, snippet_text, vector) VALUES(?,?,?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer func() { _ = stmt.Close() }()
	for _, entry := range entries {
		if _, err := stmt.Exec(entry.ID, entry.Snippet, storage.EncodeVector(entry.Vector)); err != nil {
			_ = tx.Rollback()
			if isUniqueViolation(err) {
				return fmt.Errorf("id %d: %w", entry.ID, storage.ErrDuplicateID)
			}
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) LoadAll() ([]models.EmbeddingEntry, error) {
	rows, err := s.db.Query(`SELECT id, snippet_text, vector FROM embeddings ORDER BY id`)
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
		entry.Vector, err = storage.DecodeVector(blob)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	// modernc.org/sqlite reports constraint failures through the error string;
	// there is no exported sentinel for SQLITE_CONSTRAINT.
	return err != nil && strings.Contains(err.Error(), "constraint failed")
}
