package flat

import (
	"fmt"
	"math"
	"sort"
)

// Entry is one (chunk ID, vector) pair supplied to Build.
type Entry struct {
	ChunkID int64
	Vector  []float32
}

// Hit is a similarity search result.
type Hit struct {
	// ChunkID is the matched chunk.
	ChunkID int64

	// Position is the entry's build position; callers use it to join
	// back to the content list retained alongside the index.
	Position int

	// Score is the inner product of unit vectors, within [-1, 1].
	Score float64
}

// Index holds L2-normalised embeddings in build order. It is immutable
// after Build and safe for concurrent readers.
type Index struct {
	ids  []int64
	vecs [][]float32
	dim  int
}

// Build constructs an index from entries in the given order. Vectors
// are copied and L2-normalised; the input slices are not retained.
// An empty entry list yields an empty but searchable index.
func Build(entries []Entry) (*Index, error) {
	idx := &Index{}
	if len(entries) == 0 {
		return idx, nil
	}

	dim := len(entries[0].Vector)
	if dim == 0 {
		return nil, fmt.Errorf("flat: zero-dimension vector at position 0")
	}

	idx.ids = make([]int64, len(entries))
	idx.vecs = make([][]float32, len(entries))
	idx.dim = dim

	for i, e := range entries {
		if len(e.Vector) != dim {
			return nil, fmt.Errorf("flat: inconsistent vector dims %d vs %d at position %d", len(e.Vector), dim, i)
		}
		idx.ids[i] = e.ChunkID
		idx.vecs[i] = normalize(e.Vector)
	}

	return idx, nil
}

// Len reports the number of indexed entries.
func (i *Index) Len() int {
	return len(i.ids)
}

// Dimensions reports the vector dimensionality, 0 for an empty index.
func (i *Index) Dimensions() int {
	return i.dim
}

// Search returns up to k hits scoring strictly above minScore, in
// descending score order. Ties are broken by build position (earlier
// wins). k larger than the index returns everything above the floor.
// Searching an empty index returns no hits and no error.
func (i *Index) Search(query []float32, k int, minScore float64) ([]Hit, error) {
	if i.Len() == 0 {
		return nil, nil
	}
	if len(query) != i.dim {
		return nil, fmt.Errorf("flat: query dim %d != index dim %d", len(query), i.dim)
	}

	q := normalize(query)

	hits := make([]Hit, 0, i.Len())
	for pos := range i.vecs {
		score := dot(q, i.vecs[pos])
		if score > minScore {
			hits = append(hits, Hit{ChunkID: i.ids[pos], Position: pos, Score: score})
		}
	}

	// Stable sort keeps build order for equal scores
	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Score > hits[b].Score
	})

	if k > 0 && k < len(hits) {
		hits = hits[:k]
	}

	return hits, nil
}

// normalize returns a unit-length copy of v. A zero vector is returned
// as an all-zero copy; it scores 0 against everything.
func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}

	out := make([]float32, len(v))
	if sum == 0 {
		return out
	}

	inv := 1 / math.Sqrt(sum)
	for j, x := range v {
		out[j] = float32(float64(x) * inv)
	}
	return out
}

func dot(a, b []float32) float64 {
	var sum float64
	for j := range a {
		sum += float64(a[j]) * float64(b[j])
	}
	return sum
}
