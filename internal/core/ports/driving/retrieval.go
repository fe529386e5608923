package driving

import (
	"context"

	"github.com/quill-labs/aide-cli/internal/core/domain"
)

// RetrievalService ingests documents and answers similarity queries.
type RetrievalService interface {
	// Ingest chunks the content, persists the chunks, and rebuilds the
	// vector index. Returns the number of chunks created.
	Ingest(ctx context.Context, title, content, source string, metadata domain.Metadata) (int, error)

	// Query embeds the text, searches the index, and returns hits above
	// the relevance floor in descending score order. topK <= 0 and
	// minScore outside [-1, 1] fall back to the defaults.
	// Returns domain.ErrEmptyIndex when nothing has been ingested.
	Query(ctx context.Context, text string, topK int, minScore float64) ([]domain.SearchResult, error)

	// IndexSize reports the number of entries in the published index.
	IndexSize() int
}
