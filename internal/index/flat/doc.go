// Package flat provides an exact, immutable, flat inner-product vector
// index.
//
// An Index is built once from an ordered list of (chunk ID, vector)
// entries and never mutated; rebuilds construct a fresh instance that
// the owner publishes atomically. Because every stored vector and every
// query vector is L2-normalised, inner product equals cosine
// similarity, and an exhaustive scan gives exact top-k results with a
// deterministic build-order tie-break.
package flat
