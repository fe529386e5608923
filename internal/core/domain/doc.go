// Package domain defines the core business entities for Aide.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Chunk: A persisted fragment of an ingested document
//   - SearchResult: A scored retrieval hit
//   - Intent: The closed set of request categories
//   - Turn / RecentSearch: Conversation session records
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
