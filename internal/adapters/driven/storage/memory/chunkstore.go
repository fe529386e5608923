// Package memory provides in-memory driven-port implementations used
// in tests and as lightweight defaults.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/quill-labs/aide-cli/internal/core/domain"
	"github.com/quill-labs/aide-cli/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

type record struct {
	id       int64
	title    string
	source   string
	sequence int
	content  string
	metadata domain.Metadata
	created  time.Time
	updated  time.Time
}

// ChunkStore is an in-memory, append-only chunk store. Insertion order
// is the iteration order, matching the SQLite adapter's contract.
type ChunkStore struct {
	mu      sync.RWMutex
	records []record
	nextID  int64
}

// NewChunkStore creates an empty in-memory chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{nextID: 1}
}

// InsertChunk stores a chunk and returns its assigned ID.
func (s *ChunkStore) InsertChunk(
	_ context.Context, title, source string, sequence int, content string, metadata domain.Metadata,
) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Copy the metadata so later caller mutations don't leak in
	var meta domain.Metadata
	if metadata != nil {
		meta = make(domain.Metadata, len(metadata))
		for k, v := range metadata {
			meta[k] = v
		}
	}

	now := time.Now()
	id := s.nextID
	s.nextID++
	s.records = append(s.records, record{
		id:       id,
		title:    title,
		source:   source,
		sequence: sequence,
		content:  content,
		metadata: meta,
		created:  now,
		updated:  now,
	})
	return id, nil
}

// ListAll returns every chunk's (id, content) in insertion order.
func (s *ChunkStore) ListAll(_ context.Context) ([]driven.ChunkRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]driven.ChunkRow, len(s.records))
	for i, r := range s.records {
		rows[i] = driven.ChunkRow{ID: r.id, Content: r.content}
	}
	return rows, nil
}

// GetChunk retrieves the full persisted chunk for an ID.
func (s *ChunkStore) GetChunk(_ context.Context, id int64) (*domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.records {
		if r.id == id {
			return &domain.Chunk{
				ID:        r.id,
				Title:     r.title,
				Source:    r.source,
				Content:   r.content,
				Sequence:  r.sequence,
				Metadata:  r.metadata,
				CreatedAt: r.created,
				UpdatedAt: r.updated,
			}, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Len reports the number of stored chunks.
func (s *ChunkStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Close releases resources. No-op for the in-memory store.
func (s *ChunkStore) Close() error {
	return nil
}
