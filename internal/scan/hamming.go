// Package scan implements the two linear-scan top-K selectors that sit on
// top of the index's parallel arrays: HammingScanner over packed sign
// bits (§4.3) and CosineScanner over normalized float vectors (§4.4).
// Both keep a bounded max-heap keyed on distance and finish with an
// ascending-distance, ascending-position-tie-break sort, per §9's
// "heap tie-breaking" note.
package scan

import (
	"container/heap"
	"math/bits"
	"sort"
)

// HammingHit is one result of TopKHamming: the candidate's position in
// the scanned array and its Hamming distance to the query.
type HammingHit struct {
	Index    int
	Distance int
}

// TopKHamming scans db (N candidates, each B words) against query q (B
// words) and returns the k candidates with the smallest Hamming distance,
// ascending by distance then by ascending position on ties.
//
// k <= 0 is a programming error (panics). N == 0 returns an empty slice.
// k > N returns all N results. Every db[i] must have len(q) words;
// mismatch is a programming error (panics).
func TopKHamming(q []uint64, db [][]uint64, k int) []HammingHit {
	if k <= 0 {
		panic("scan: TopKHamming requires k > 0")
	}
	if len(db) == 0 {
		return []HammingHit{}
	}
	if k > len(db) {
		k = len(db)
	}

	h := make(hammingHeap, 0, k)
	for i, cand := range db {
		if len(cand) != len(q) {
			panic("scan: candidate word count does not match query")
		}
		dist := hammingDistance(q, cand)
		if len(h) < k {
			heap.Push(&h, HammingHit{Index: i, Distance: dist})
			continue
		}
		if dist < h[0].Distance {
			h[0] = HammingHit{Index: i, Distance: dist}
			heap.Fix(&h, 0)
		}
	}

	out := []HammingHit(h)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Index < out[j].Index
	})
	return out
}

// hammingDistance sums popcount(q[w] xor cand[w]) over all words, unrolled
// by 4 per §4.3 — a handful of XOR-popcount instructions per group since B
// is small (e.g. 24 for D=1536).
func hammingDistance(q, cand []uint64) int {
	var dist int
	n := len(q)
	w := 0
	for ; w+4 <= n; w += 4 {
		dist += bits.OnesCount64(q[w] ^ cand[w])
		dist += bits.OnesCount64(q[w+1] ^ cand[w+1])
		dist += bits.OnesCount64(q[w+2] ^ cand[w+2])
		dist += bits.OnesCount64(q[w+3] ^ cand[w+3])
	}
	for ; w < n; w++ {
		dist += bits.OnesCount64(q[w] ^ cand[w])
	}
	return dist
}

// hammingHeap is a max-heap on Distance: container/heap's Less orders by
// "highest priority first", and the element we want to evict when the
// heap is full is the current worst (largest-distance) candidate, so that
// element must sit at the root.
type hammingHeap []HammingHit

func (h hammingHeap) Len() int            { return len(h) }
func (h hammingHeap) Less(i, j int) bool  { return h[i].Distance > h[j].Distance }
func (h hammingHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *hammingHeap) Push(x interface{}) { *h = append(*h, x.(HammingHit)) }
func (h *hammingHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
