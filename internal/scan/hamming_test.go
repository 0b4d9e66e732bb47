package scan

import "testing"

func TestTopKHammingOrdersByDistance(t *testing.T) {
	q := []uint64{0b0000}
	db := [][]uint64{
		{0b0000}, // distance 0
		{0b0001}, // distance 1
		{0b0011}, // distance 2
	}

	hits := TopKHamming(q, db, 3)
	wantIdx := []int{0, 1, 2}
	wantDist := []int{0, 1, 2}
	for i, hit := range hits {
		if hit.Index != wantIdx[i] || hit.Distance != wantDist[i] {
			t.Fatalf("hits[%d] = %+v, want index %d dist %d", i, hit, wantIdx[i], wantDist[i])
		}
	}
}

func TestTopKHammingEmptyCorpus(t *testing.T) {
	hits := TopKHamming([]uint64{0}, nil, 5)
	if len(hits) != 0 {
		t.Fatalf("len(hits) = %d, want 0", len(hits))
	}
}

func TestTopKHammingKGreaterThanN(t *testing.T) {
	db := [][]uint64{{0}, {1}}
	hits := TopKHamming([]uint64{0}, db, 10)
	if len(hits) != 2 {
		t.Fatalf("len(hits) = %d, want 2", len(hits))
	}
}

func TestTopKHammingPanicsOnWordCountMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on word count mismatch")
		}
	}()
	TopKHamming([]uint64{0, 0}, [][]uint64{{0}}, 1)
}

func TestTopKHammingTieBreakOnPosition(t *testing.T) {
	q := []uint64{0b0000}
	db := [][]uint64{
		{0b0001},
		{0b0001},
		{0b1111},
	}
	hits := TopKHamming(q, db, 2)
	if hits[0].Index != 0 || hits[1].Index != 1 {
		t.Fatalf("hits = %+v, want index order [0 1]", hits)
	}
}
