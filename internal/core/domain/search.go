package domain

// SearchResult represents a single retrieval hit. Results are produced
// transiently per query and never persisted.
type SearchResult struct {
	// Content is the matched chunk text.
	Content string

	// Title is the title of the parent document.
	Title string

	// Source identifies where the document came from.
	Source string

	// Metadata contains the document-level key-value pairs.
	Metadata Metadata

	// RelevanceScore is the normalised inner-product similarity.
	// For unit-normalised vectors it lies within [-1, 1].
	RelevanceScore float64
}

// Retrieval defaults for a query.
const (
	// DefaultTopK is the default number of results per query.
	DefaultTopK = 10

	// DefaultMinScore is the relevance floor; results scoring at or
	// below it are discarded.
	DefaultMinScore = 0.2
)
