// Package index implements the in-memory parallel-array index of spec §4.5:
// ids, L2-normalized float vectors, and their sign-bit packings, kept in
// lockstep, plus the density histogram recorded at insert.
package index

import (
	"sync"

	"github.com/annvec/annvec/internal/latency"
	"github.com/annvec/annvec/internal/quantize"
	"github.com/annvec/annvec/internal/scan"
)

// Item is the minimal shape the index needs to add an entry: an id and
// an embedding. The embedding is normalized in place by Add — callers
// must not rely on its contents afterward (§3 Ownership).
type Item struct {
	ID        int32
	Embedding []float32
}

// Index holds the parallel ids/fvecs/bvecs sequences for one collection
// of vectors, all under a single exclusive lock (§4.5, §5).
type Index struct {
	mu sync.Mutex

	dims int
	ids  []int32
	fvec [][]float32
	bvec [][]uint64

	density *latency.Histogram
}

// New creates an empty Index for vectors of the given dimensionality.
// Initial capacity follows §5's amortized-doubling growth policy (start
// capacity >= 4).
func New(dims int) *Index {
	const initialCapacity = 4
	return &Index{
		dims:    dims,
		ids:     make([]int32, 0, initialCapacity),
		fvec:    make([][]float32, 0, initialCapacity),
		bvec:    make([][]uint64, 0, initialCapacity),
		density: latency.New(1, int64(dims)+1),
	}
}

// Dims returns the fixed vector dimensionality.
func (idx *Index) Dims() int { return idx.dims }

// Len returns the number of entries currently in the index.
func (idx *Index) Len() int {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return len(idx.ids)
}

// DensitySnapshot reports the density histogram (popcount+1 per entry).
func (idx *Index) DensitySnapshot() latency.Snapshot {
	return idx.density.Snapshot()
}

// Add normalizes item.Embedding in place, then appends id, normalized
// vector, and sign-bit packing as one atomic triple under the index lock.
// The embedding must have length Dims() and must not be the zero vector.
func (idx *Index) Add(item Item) error {
	if len(item.Embedding) != idx.dims {
		return errDimMismatch(idx.dims, len(item.Embedding))
	}
	if quantize.Norm(item.Embedding) == 0 {
		return errZeroVector()
	}

	// Pack before normalizing: sign is invariant under the positive
	// rescale normalization applies, so packing pre- or post-normalize
	// is equivalent (§3, §9), and packing first avoids a second pass.
	packed := quantize.Pack(item.Embedding)
	quantize.NormalizeInPlace(item.Embedding)

	idx.mu.Lock()
	idx.ids = append(idx.ids, item.ID)
	idx.fvec = append(idx.fvec, item.Embedding)
	idx.bvec = append(idx.bvec, packed)
	idx.mu.Unlock()

	idx.density.Record(int64(popcount(packed)) + 1)
	return nil
}

func popcount(words []uint64) int {
	n := 0
	for _, w := range words {
		for w != 0 {
			w &= w - 1
			n++
		}
	}
	return n
}

// FindClosest runs the full-precision cosine scan (§4.4) over the index's
// normalized vectors and maps the resulting positions back to ids.
func (idx *Index) FindClosest(q []float32, k int) ([]int32, error) {
	if k <= 0 {
		return nil, errInvalidK(k)
	}
	query := quantize.Normalized(q)

	idx.mu.Lock()
	snapshot := idx.fvec
	ids := idx.ids
	idx.mu.Unlock()

	if len(snapshot) == 0 {
		return []int32{}, nil
	}
	hits := scan.TopKCosine(query, snapshot, k)

	out := make([]int32, len(hits))
	for i, h := range hits {
		out[i] = ids[h.Index]
	}
	return out, nil
}

// FindClosestBinary runs the Hamming scan (§4.3) over the index's packed
// vectors. q need not be normalized: sign-packing a normalized vector
// equals sign-packing the original (§9).
func (idx *Index) FindClosestBinary(q []float32, k int) ([]int32, error) {
	if k <= 0 {
		return nil, errInvalidK(k)
	}
	query := quantize.Pack(q)

	idx.mu.Lock()
	snapshot := idx.bvec
	ids := idx.ids
	idx.mu.Unlock()

	if len(snapshot) == 0 {
		return []int32{}, nil
	}
	hits := scan.TopKHamming(query, snapshot, k)

	out := make([]int32, len(hits))
	for i, h := range hits {
		out[i] = ids[h.Index]
	}
	return out, nil
}

// Reindex clears all three sequences and re-adds each item in order.
func (idx *Index) Reindex(items []Item) error {
	idx.mu.Lock()
	idx.ids = idx.ids[:0]
	idx.fvec = idx.fvec[:0]
	idx.bvec = idx.bvec[:0]
	idx.density = latency.New(1, int64(idx.dims)+1)
	idx.mu.Unlock()

	for _, item := range items {
		if err := idx.Add(item); err != nil {
			return err
		}
	}
	return nil
}
