package domain

import (
	"fmt"
	"time"
)

// Chunk represents a persisted fragment of an ingested document.
// Chunks are append-only: once written they are never modified or
// deleted, only UpdatedAt may move.
type Chunk struct {
	// ID is assigned by the chunk store on insert and is immutable.
	ID int64

	// Title is the title of the parent document.
	Title string

	// Source identifies where the document came from (e.g. "manual",
	// a file path, or a connector name).
	Source string

	// Content is the chunk text.
	Content string

	// Sequence is the 0-based position of this chunk within its
	// parent document. Contiguous per (Title, Source) group.
	Sequence int

	// Metadata contains document-level key-value pairs shared by all
	// chunks of the same document.
	Metadata Metadata

	// CreatedAt is when the chunk was first persisted.
	CreatedAt time.Time

	// UpdatedAt is when the chunk row was last touched.
	UpdatedAt time.Time
}

// Metadata is a typed key-value map attached to ingested documents.
// Values are restricted to strings, numbers, and booleans; the map is
// serialised (as JSON) at the storage boundary only.
type Metadata map[string]any

// Validate checks that every value is a string, number, or boolean.
func (m Metadata) Validate() error {
	for k, v := range m {
		switch v.(type) {
		case string, bool,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64:
		default:
			return fmt.Errorf("%w: metadata key %q has unsupported value type %T", ErrUnsupportedInput, k, v)
		}
	}
	return nil
}
