package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/quill-labs/aide-cli/internal/chunker"
	"github.com/quill-labs/aide-cli/internal/core/domain"
	"github.com/quill-labs/aide-cli/internal/core/ports/driven"
	"github.com/quill-labs/aide-cli/internal/core/ports/driving"
	"github.com/quill-labs/aide-cli/internal/index/flat"
	"github.com/quill-labs/aide-cli/internal/logger"
)

// Ensure Retrieval implements the interface.
var _ driving.RetrievalService = (*Retrieval)(nil)

// snapshot pairs an immutable index with the (id, content) list it was
// built from. Index positions join back into rows.
type snapshot struct {
	index *flat.Index
	rows  []driven.ChunkRow
}

// Retrieval orchestrates the chunker, chunk store, embedding service,
// and vector index.
//
// Every ingest triggers a full synchronous index rebuild from a
// complete store scan. That is O(total chunks) per write, but it keeps
// the index-consistency invariant trivial: no incremental delete or
// update logic exists, and a published snapshot never references a
// chunk the store did not hold at build time. Rebuild-on-write is a
// deliberate scalability ceiling for a personal-scale knowledge base.
//
// Rebuilds are copy-on-build: a fresh snapshot is constructed and then
// published atomically, so concurrent queries always observe a
// complete prior snapshot. Writes are serialised by a mutex
// (single-writer discipline).
type Retrieval struct {
	store    driven.ChunkStore
	embedder driven.EmbeddingService
	splitter *chunker.Chunker
	session  *Session

	writeMu sync.Mutex
	current atomic.Pointer[snapshot]
}

// NewRetrieval creates a retrieval service. The session is optional;
// when present, successful non-empty queries are recorded on it.
func NewRetrieval(
	store driven.ChunkStore,
	embedder driven.EmbeddingService,
	session *Session,
) *Retrieval {
	return &Retrieval{
		store:    store,
		embedder: embedder,
		splitter: chunker.New(),
		session:  session,
	}
}

// Ingest chunks the content, persists each chunk with its sequence
// number and the shared metadata, then rebuilds the index.
func (r *Retrieval) Ingest(
	ctx context.Context, title, content, source string, metadata domain.Metadata,
) (int, error) {
	logger.Section("Ingest")
	logger.Debug("Title: %q, source: %q, %d bytes", title, source, len(content))

	if strings.TrimSpace(content) == "" {
		return 0, fmt.Errorf("%w: empty document content", domain.ErrUnsupportedInput)
	}
	if err := metadata.Validate(); err != nil {
		return 0, err
	}
	if source == "" {
		source = "manual"
	}

	chunks := r.splitter.Split(content)
	logger.Info("Chunked %q into %d fragments", title, len(chunks))

	// All chunks of one ingest share a document id so results can be
	// grouped back into their source document.
	withID := make(domain.Metadata, len(metadata)+1)
	for k, v := range metadata {
		withID[k] = v
	}
	withID["document_id"] = uuid.NewString()

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	for i, chunk := range chunks {
		if _, err := r.store.InsertChunk(ctx, title, source, i, chunk, withID); err != nil {
			return 0, fmt.Errorf("persist chunk %d: %w", i, err)
		}
	}

	if err := r.rebuildLocked(ctx); err != nil {
		return 0, fmt.Errorf("rebuild index: %w", err)
	}

	return len(chunks), nil
}

// Rebuild reconstructs the index from a full store scan and publishes
// the new snapshot. Called on startup to index pre-existing chunks.
func (r *Retrieval) Rebuild(ctx context.Context) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	return r.rebuildLocked(ctx)
}

func (r *Retrieval) rebuildLocked(ctx context.Context) error {
	if r.embedder == nil {
		return domain.ErrEmbeddingUnavailable
	}

	rows, err := r.store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("scan chunk store: %w", err)
	}

	entries := make([]flat.Entry, 0, len(rows))
	if len(rows) > 0 {
		texts := make([]string, len(rows))
		for i, row := range rows {
			texts[i] = row.Content
		}

		vectors, err := r.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("%w: embed chunks: %v", domain.ErrUpstreamUnavailable, err)
		}
		if len(vectors) != len(rows) {
			return fmt.Errorf("embedding count %d != chunk count %d", len(vectors), len(rows))
		}

		for i, row := range rows {
			entries = append(entries, flat.Entry{ChunkID: row.ID, Vector: vectors[i]})
		}
	}

	idx, err := flat.Build(entries)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	r.current.Store(&snapshot{index: idx, rows: rows})
	logger.Info("Vector index built with %d embeddings", idx.Len())
	return nil
}

// Query embeds the text, searches the current snapshot, and hydrates
// the hits with document metadata from the store.
func (r *Retrieval) Query(
	ctx context.Context, text string, topK int, minScore float64,
) ([]domain.SearchResult, error) {
	logger.Section("Query")
	logger.Debug("Text: %q, topK=%d, minScore=%.2f", text, topK, minScore)

	if topK <= 0 {
		topK = domain.DefaultTopK
	}
	if minScore < -1 || minScore > 1 {
		minScore = domain.DefaultMinScore
	}
	if r.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	snap := r.current.Load()
	if snap == nil || snap.index.Len() == 0 {
		return nil, domain.ErrEmptyIndex
	}

	vector, err := r.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", domain.ErrUpstreamUnavailable, err)
	}

	hits, err := snap.index.Search(vector, topK, minScore)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	logger.Debug("Raw hits: %d", len(hits))

	results := make([]domain.SearchResult, 0, len(hits))
	for _, hit := range hits {
		// Bound check: a hit position must map into the snapshot rows.
		// Under the single-writer rebuild discipline this cannot fail,
		// but a stale position is silently skipped rather than fatal.
		if hit.Position < 0 || hit.Position >= len(snap.rows) {
			logger.Warn("Hit position %d outside snapshot of %d rows, skipping", hit.Position, len(snap.rows))
			continue
		}

		chunk, err := r.store.GetChunk(ctx, hit.ChunkID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				logger.Warn("Chunk %d vanished from store, skipping", hit.ChunkID)
				continue
			}
			return nil, fmt.Errorf("resolve chunk %d: %w", hit.ChunkID, err)
		}

		results = append(results, domain.SearchResult{
			Content:        snap.rows[hit.Position].Content,
			Title:          chunk.Title,
			Source:         chunk.Source,
			Metadata:       chunk.Metadata,
			RelevanceScore: hit.Score,
		})
	}

	logger.Info("Query returned %d results", len(results))

	if len(results) > 0 && r.session != nil {
		r.session.RecordSearch(text, len(results))
	}

	return results, nil
}

// IndexSize reports the number of entries in the published snapshot.
func (r *Retrieval) IndexSize() int {
	snap := r.current.Load()
	if snap == nil {
		return 0
	}
	return snap.index.Len()
}
