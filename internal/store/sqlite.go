package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	_ "github.com/mattn/go-sqlite3"

	"coderag/internal/element"
	"coderag/internal/embedder"
)

func init() {
	sqlite_vec.Auto()
}

// DefaultDimensions matches nomic-embed-text.
const DefaultDimensions = 768

const schemaTemplate = `
PRAGMA journal_mode=WAL;

CREATE TABLE IF NOT EXISTS elements (
    id       TEXT NOT NULL UNIQUE,
    document TEXT NOT NULL,
    metadata TEXT NOT NULL DEFAULT '{}'
);

CREATE VIRTUAL TABLE IF NOT EXISTS vec_elements USING vec0(
    element_id INTEGER PRIMARY KEY,
    embedding float[%d] distance_metric=cosine
);

CREATE TABLE IF NOT EXISTS meta (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// SQLiteStore implements Store backed by SQLite + sqlite-vec.
type SQLiteStore struct {
	db       *sql.DB
	embedder embedder.Embedder
}

// OpenSQLite creates or opens a SQLite-backed collection at dbPath.
// dimensions must match the embedding model's output size.
func OpenSQLite(dbPath string, dimensions int, emb embedder.Embedder) (*SQLiteStore, error) {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf(schemaTemplate, dimensions)); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLiteStore{db: db, embedder: emb}, nil
}

func (s *SQLiteStore) AddDocuments(elems []element.CodeElement) error {
	if len(elems) == 0 {
		return nil
	}

	texts := make([]string, len(elems))
	for i, e := range elems {
		texts[i] = e.EmbeddingText()
	}
	vectors := make([][]float32, 0, len(texts))
	for i := 0; i < len(texts); i += embedBatchSize {
		end := i + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := s.embedder.Embed(texts[i:end])
		if err != nil {
			return fmt.Errorf("embed batch: %w", err)
		}
		vectors = append(vectors, batch...)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, e := range elems {
		// Re-adding an existing ID replaces the prior record.
		var oldRowid int64
		err := tx.QueryRow("SELECT rowid FROM elements WHERE id = ?", e.ID).Scan(&oldRowid)
		if err == nil {
			if _, err := tx.Exec("DELETE FROM vec_elements WHERE element_id = ?", oldRowid); err != nil {
				return err
			}
			if _, err := tx.Exec("DELETE FROM elements WHERE rowid = ?", oldRowid); err != nil {
				return err
			}
		} else if err != sql.ErrNoRows {
			return err
		}

		md, err := json.Marshal(metadataFor(e))
		if err != nil {
			return fmt.Errorf("encode metadata for %s: %w", e.ID, err)
		}
		res, err := tx.Exec(
			"INSERT INTO elements (id, document, metadata) VALUES (?, ?, ?)",
			e.ID, texts[i], string(md),
		)
		if err != nil {
			return err
		}
		rowid, err := res.LastInsertId()
		if err != nil {
			return err
		}

		blob, err := sqlite_vec.SerializeFloat32(vectors[i])
		if err != nil {
			return fmt.Errorf("serialize embedding for %s: %w", e.ID, err)
		}
		if _, err := tx.Exec(
			"INSERT INTO vec_elements (element_id, embedding) VALUES (?, ?)",
			rowid, blob,
		); err != nil {
			return fmt.Errorf("insert embedding for %s: %w", e.ID, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) ClearCollection() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM vec_elements"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM elements"); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) Search(query string, k int) ([]Hit, error) {
	if k <= 0 {
		return nil, nil
	}
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM elements").Scan(&n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}

	qv, err := s.embedder.EmbedSingle(query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	blob, err := sqlite_vec.SerializeFloat32(qv)
	if err != nil {
		return nil, fmt.Errorf("serialize query embedding: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT e.id, e.document, e.metadata, v.distance
		FROM vec_elements v
		JOIN elements e ON e.rowid = v.element_id
		WHERE v.embedding MATCH ?
		ORDER BY v.distance
		LIMIT ?
	`, blob, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		var md string
		var distance float64
		if err := rows.Scan(&h.ID, &h.Document, &md, &distance); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(md), &h.Metadata); err != nil {
			return nil, fmt.Errorf("decode metadata for %s: %w", h.ID, err)
		}
		// vec0 reports cosine distance; convert to similarity.
		h.Score = 1 - distance
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

func (s *SQLiteStore) GetMeta(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM meta WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (s *SQLiteStore) SetMeta(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
