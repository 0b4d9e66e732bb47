// Package quantize implements the sign-bit quantizer and the L2 vector
// normalizer that sit beneath the index (spec §4.1, §4.2).
package quantize

// WordsFor returns the number of 64-bit words needed to hold dims sign
// bits: B = ceil(dims/64).
func WordsFor(dims int) int {
	return (dims + 63) / 64
}

// Pack sign-bit-quantizes v into B = WordsFor(len(v)) 64-bit words.
// Bit b of word w is set iff v[64*w+b] >= 0.0 (strict zero maps to set).
// Tail bits beyond len(v) in the last word are left zero.
//
// Pack is deterministic and invariant under positive rescale of v: since
// sign(a*x) == sign(x) for a > 0, Pack(v) == Pack(scale*v) for any
// scale > 0. This is what lets the query path pack a vector directly
// without normalizing it first (§4.5, §9).
func Pack(v []float32) []uint64 {
	words := make([]uint64, WordsFor(len(v)))
	for d, x := range v {
		if x >= 0 {
			words[d/64] |= 1 << uint(d%64)
		}
	}
	return words
}

// PackInto packs v into dst, which must have length WordsFor(len(v)).
// It avoids an allocation on hot insert/query paths.
func PackInto(v []float32, dst []uint64) {
	for i := range dst {
		dst[i] = 0
	}
	for d, x := range v {
		if x >= 0 {
			dst[d/64] |= 1 << uint(d%64)
		}
	}
}
