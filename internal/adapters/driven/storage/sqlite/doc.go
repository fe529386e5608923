// Package sqlite implements the ChunkStore port on SQLite.
//
// The store is append-only: one row per chunk, inserted once and never
// updated or deleted. Row IDs are autoincrement, so insertion order and
// ID order coincide; ListAll scans in ID order and that scan order is
// the vector index build order.
package sqlite
