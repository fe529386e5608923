package driven

import (
	"context"

	"github.com/quill-labs/aide-cli/internal/core/domain"
)

// ChunkRow is the (id, content) pair returned by a full store scan.
// Row order is the store's stable iteration order and doubles as the
// index build order.
type ChunkRow struct {
	ID      int64
	Content string
}

// ChunkStore persists chunks. The model is append-only: no update or
// delete operations exist. Backed by SQLite.
type ChunkStore interface {
	// InsertChunk stores a chunk and returns its assigned ID.
	InsertChunk(ctx context.Context, title, source string, sequence int, content string, metadata domain.Metadata) (int64, error)

	// ListAll returns every chunk's (id, content) in stable insertion
	// order. This is the scan the index is rebuilt from.
	ListAll(ctx context.Context) ([]ChunkRow, error)

	// GetChunk retrieves the full persisted chunk for an ID.
	// Returns domain.ErrNotFound for unknown IDs.
	GetChunk(ctx context.Context, id int64) (*domain.Chunk, error)

	// Close releases resources.
	Close() error
}
