package kernel

import (
	"context"
	"math/rand"
	"testing"

	"github.com/annvec/annvec/internal/record"
)

// Invariant #11: recall of the two-stage binary+reorder path against the
// full-precision path should be empirically high over a random corpus.
// This is a soft SLO: the test reports the match rate instead of
// asserting a fixed threshold, matching spec §8's stated expectation.
func TestSearchBinaryRecallAgainstSearchFull(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping recall property test in -short mode")
	}

	ctx := context.Background()
	const dims = 128
	const corpusSize = 2000
	const numQueries = 50
	const k = 10
	const overshoot = 30

	k8 := newTestKernel(dims)
	rng := rand.New(rand.NewSource(42))

	for i := int32(0); i < corpusSize; i++ {
		v := randomUnitVector(rng, dims)
		if err := k8.Save(ctx, record.Item{ID: i, Payload: "x", Embedding: v}); err != nil {
			t.Fatal(err)
		}
	}

	var totalMatches, totalExpected int
	for q := 0; q < numQueries; q++ {
		query := randomUnitVector(rng, dims)

		fullIDs, err := k8.SearchFullIDs(ctx, query, k)
		if err != nil {
			t.Fatal(err)
		}
		binaryIDs, err := k8.SearchBinaryIDs(ctx, query, k, true, overshoot)
		if err != nil {
			t.Fatal(err)
		}

		expected := make(map[int32]bool, len(fullIDs))
		for _, id := range fullIDs {
			expected[id] = true
		}
		matches := 0
		for _, id := range binaryIDs {
			if expected[id] {
				matches++
			}
		}
		totalMatches += matches
		totalExpected += len(fullIDs)
	}

	recall := float64(totalMatches) / float64(totalExpected)
	t.Logf("recall@%d over %d queries, corpus=%d, overshoot=%d: %.3f", k, numQueries, corpusSize, overshoot, recall)
}
