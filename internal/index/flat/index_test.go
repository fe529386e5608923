package flat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEmpty(t *testing.T) {
	idx, err := Build(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())

	hits, err := idx.Search([]float32{1, 0}, 5, 0.2)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestBuildRejectsMixedDimensions(t *testing.T) {
	_, err := Build([]Entry{
		{ChunkID: 1, Vector: []float32{1, 0}},
		{ChunkID: 2, Vector: []float32{1, 0, 0}},
	})
	assert.Error(t, err)
}

func TestSearchOrderingAndThreshold(t *testing.T) {
	idx, err := Build([]Entry{
		{ChunkID: 10, Vector: []float32{1, 0}},        // score 1.0 vs query
		{ChunkID: 11, Vector: []float32{0.7, 0.7}},    // ~0.707
		{ChunkID: 12, Vector: []float32{0, 1}},        // 0.0
		{ChunkID: 13, Vector: []float32{-1, 0}},       // -1.0
		{ChunkID: 14, Vector: []float32{0.95, 0.312}}, // ~0.95
	})
	require.NoError(t, err)
	require.Equal(t, 5, idx.Len())

	hits, err := idx.Search([]float32{2, 0}, 10, 0.2)
	require.NoError(t, err)

	require.Len(t, hits, 3)
	assert.Equal(t, int64(10), hits[0].ChunkID)
	assert.Equal(t, int64(14), hits[1].ChunkID)
	assert.Equal(t, int64(11), hits[2].ChunkID)

	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
	}
	for _, h := range hits {
		assert.Greater(t, h.Score, 0.2)
		assert.LessOrEqual(t, h.Score, 1.0+1e-6)
		assert.GreaterOrEqual(t, h.Score, -1.0-1e-6)
	}
}

func TestSearchExcludesScoresAtFloor(t *testing.T) {
	idx, err := Build([]Entry{
		{ChunkID: 1, Vector: []float32{1, 0}},
		{ChunkID: 2, Vector: []float32{0, 1}},
	})
	require.NoError(t, err)

	// chunk 2 scores exactly 0.0 against the query; at the floor means out
	hits, err := idx.Search([]float32{1, 0}, 10, 0.0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, int64(1), hits[0].ChunkID)
}

func TestSearchTieBreakByBuildOrder(t *testing.T) {
	idx, err := Build([]Entry{
		{ChunkID: 7, Vector: []float32{1, 0}},
		{ChunkID: 8, Vector: []float32{1, 0}},
		{ChunkID: 9, Vector: []float32{1, 0}},
	})
	require.NoError(t, err)

	hits, err := idx.Search([]float32{1, 0}, 2, 0.5)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, int64(7), hits[0].ChunkID)
	assert.Equal(t, int64(8), hits[1].ChunkID)
}

func TestSearchKExceedsSize(t *testing.T) {
	idx, err := Build([]Entry{
		{ChunkID: 1, Vector: []float32{1, 0}},
		{ChunkID: 2, Vector: []float32{0.9, 0.1}},
	})
	require.NoError(t, err)

	hits, err := idx.Search([]float32{1, 0}, 100, 0.2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestSearchDimensionMismatch(t *testing.T) {
	idx, err := Build([]Entry{{ChunkID: 1, Vector: []float32{1, 0, 0}}})
	require.NoError(t, err)

	_, err = idx.Search([]float32{1, 0}, 5, 0.2)
	assert.Error(t, err)
}

func TestRebuildIdenticalInputsIdenticalResults(t *testing.T) {
	entries := []Entry{
		{ChunkID: 1, Vector: []float32{0.3, 0.8, 0.1}},
		{ChunkID: 2, Vector: []float32{0.9, 0.2, 0.4}},
		{ChunkID: 3, Vector: []float32{0.1, 0.1, 0.9}},
	}

	a, err := Build(entries)
	require.NoError(t, err)
	b, err := Build(entries)
	require.NoError(t, err)

	query := []float32{0.5, 0.5, 0.5}
	ha, err := a.Search(query, 3, -1)
	require.NoError(t, err)
	hb, err := b.Search(query, 3, -1)
	require.NoError(t, err)

	assert.Equal(t, ha, hb)
}

func TestNormalizeZeroVector(t *testing.T) {
	idx, err := Build([]Entry{{ChunkID: 1, Vector: []float32{0, 0}}})
	require.NoError(t, err)

	hits, err := idx.Search([]float32{1, 0}, 5, 0.2)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
