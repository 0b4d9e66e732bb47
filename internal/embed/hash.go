package embed

import (
	"context"
	"hash/fnv"
	"math"
)

// Hash is a deterministic, offline Embedder: it derives a pseudo-random
// unit vector from each input string's FNV hash. It calls no network
// service, so it's used in tests and as a fallback when no API key is
// configured.
type Hash struct {
	dim int
}

var _ Embedder = (*Hash)(nil)

// NewHash creates a deterministic embedder producing vectors of the
// given dimensionality.
func NewHash(dim int) *Hash {
	return &Hash{dim: dim}
}

func (h *Hash) Embed(_ context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, ErrEmptyInput
	}
	return h.vectorFor(text), nil
}

func (h *Hash) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyInput
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = h.vectorFor(t)
	}
	return out, nil
}

func (h *Hash) Dimensions() int { return h.dim }

// vectorFor expands text into h.dim components by re-hashing a running
// seed, then normalizes the result to unit length.
func (h *Hash) vectorFor(text string) []float32 {
	v := make([]float32, h.dim)
	seed := fnv.New64a()
	seed.Write([]byte(text))
	state := seed.Sum64()

	for i := range v {
		state = splitmix64(state)
		// Map the top 24 bits of state to a signed value in [-1, 1).
		signed := int32(state>>40) - (1 << 23)
		v[i] = float32(signed) / float32(1<<23)
	}

	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		v[0] = 1
		return v
	}
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return v
}

// splitmix64 is a fast, well-mixed PRNG step used to expand a single
// 64-bit seed into many pseudo-random words.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}
