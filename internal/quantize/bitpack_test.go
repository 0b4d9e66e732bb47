package quantize

import (
	"math/bits"
	"testing"
)

// S1 from spec.md §8: pack([+1,-1,0,-3]) == 0b0101.
func TestPackSignBits(t *testing.T) {
	v := []float32{1.0, -1.0, 0.0, -3.0}
	words := Pack(v)

	if len(words) != 1 {
		t.Fatalf("word count = %d, want 1", len(words))
	}
	if words[0] != 0b0101 {
		t.Fatalf("Pack(%v) = %#b, want 0b0101", v, words[0])
	}
}

func TestPackInvariantUnderPositiveScale(t *testing.T) {
	v := []float32{0.3, -0.2, 5.0, -1e-6, 0}
	scaled := make([]float32, len(v))
	for i, x := range v {
		scaled[i] = x * 7.5
	}

	a, b := Pack(v), Pack(scaled)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Pack not scale-invariant at word %d: %#b vs %#b", i, a[i], b[i])
		}
	}
}

func TestPackNonMultipleOf64(t *testing.T) {
	dims := 130 // not a multiple of 64, exercises tail handling
	v := make([]float32, dims)
	for i := range v {
		if i%2 == 0 {
			v[i] = 1
		} else {
			v[i] = -1
		}
	}

	words := Pack(v)
	if got, want := len(words), WordsFor(dims); got != want {
		t.Fatalf("word count = %d, want %d", got, want)
	}

	// Hamming distance between pack(v) and pack(v) must be 0 (S9).
	var dist int
	for i := range words {
		dist += bits.OnesCount64(words[i] ^ words[i])
	}
	if dist != 0 {
		t.Fatalf("self-distance = %d, want 0", dist)
	}

	// Tail bits beyond dims in the last word must be zero.
	lastWord := words[len(words)-1]
	validBitsInLast := dims % 64
	if validBitsInLast != 0 {
		tailMask := ^uint64(0) << uint(validBitsInLast)
		if lastWord&tailMask != 0 {
			t.Fatalf("tail bits set in last word: %#b", lastWord)
		}
	}
}

// S10: pack(v) vs pack(-v) differ in exactly D bits; tail bits never set.
func TestPackNegationFlipsExactlyDBits(t *testing.T) {
	dims := 100
	v := make([]float32, dims)
	neg := make([]float32, dims)
	for i := range v {
		f := float32(i%7) - 3
		if f == 0 {
			f = 1
		}
		v[i] = f
		neg[i] = -f
	}

	a, b := Pack(v), Pack(neg)
	var dist int
	for i := range a {
		dist += bits.OnesCount64(a[i] ^ b[i])
	}
	if dist != dims {
		t.Fatalf("hamming(pack(v), pack(-v)) = %d, want %d", dist, dims)
	}
}

func TestPackIntoMatchesPack(t *testing.T) {
	v := []float32{1, -1, 2, -2, 0, 0.001, -0.001}
	want := Pack(v)

	dst := make([]uint64, WordsFor(len(v)))
	PackInto(v, dst)

	for i := range want {
		if want[i] != dst[i] {
			t.Fatalf("PackInto mismatch at word %d: %#b vs %#b", i, dst[i], want[i])
		}
	}
}
