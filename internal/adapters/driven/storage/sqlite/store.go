package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/quill-labs/aide-cli/internal/core/domain"
	"github.com/quill-labs/aide-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ChunkStore = (*Store)(nil)

// schema is the persisted chunk layout. chunk_id is the 0-based
// sequence position within the parent document.
const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT,
	content TEXT,
	source TEXT,
	chunk_id INTEGER,
	metadata TEXT,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// Store is a SQLite-backed chunk store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a chunk store at the specified data directory.
// If dataDir is empty, defaults to ~/.aide/data/knowledge.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".aide", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "knowledge.db")

	// WAL mode for better concurrency between the writer and readers
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialising schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// InsertChunk stores a chunk and returns its assigned row ID.
// Metadata is serialised to JSON at this boundary only.
func (s *Store) InsertChunk(
	ctx context.Context, title, source string, sequence int, content string, metadata domain.Metadata,
) (int64, error) {
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return 0, fmt.Errorf("marshalling metadata: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (title, content, source, chunk_id, metadata)
		VALUES (?, ?, ?, ?, ?)
	`, title, content, source, sequence, string(metadataJSON))
	if err != nil {
		return 0, fmt.Errorf("inserting chunk: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolving chunk id: %w", err)
	}
	return id, nil
}

// ListAll returns every chunk's (id, content) in ID order.
func (s *Store) ListAll(ctx context.Context) ([]driven.ChunkRow, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, content FROM documents ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var out []driven.ChunkRow //nolint:prealloc // size unknown from query
	for rows.Next() {
		var row driven.ChunkRow
		if err := rows.Scan(&row.ID, &row.Content); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}
	return out, nil
}

// GetChunk retrieves the full persisted chunk for an ID.
func (s *Store) GetChunk(ctx context.Context, id int64) (*domain.Chunk, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, content, source, chunk_id, metadata, created_at, updated_at
		FROM documents WHERE id = ?
	`, id)

	var chunk domain.Chunk
	var metadataJSON sql.NullString
	if err := row.Scan(&chunk.ID, &chunk.Title, &chunk.Content, &chunk.Source,
		&chunk.Sequence, &metadataJSON, &chunk.CreatedAt, &chunk.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}

	if metadataJSON.Valid && metadataJSON.String != "" && metadataJSON.String != "null" {
		if err := json.Unmarshal([]byte(metadataJSON.String), &chunk.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshalling metadata: %w", err)
		}
	}

	return &chunk, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
