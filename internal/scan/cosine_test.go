package scan

import "testing"

// S2 from spec.md §8.
func TestTopKCosineTrivialOrdering(t *testing.T) {
	db := [][]float32{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{-1, 0, 0, 0},
	}
	q := []float32{1, 0, 0, 0}

	hits := TopKCosine(q, db, 3)
	if len(hits) != 3 {
		t.Fatalf("len(hits) = %d, want 3", len(hits))
	}
	wantIdx := []int{0, 1, 2}
	wantDist := []float32{0, 1, 2}
	for i, hit := range hits {
		if hit.Index != wantIdx[i] {
			t.Fatalf("hits[%d].Index = %d, want %d", i, hit.Index, wantIdx[i])
		}
		if hit.Distance != wantDist[i] {
			t.Fatalf("hits[%d].Distance = %v, want %v", i, hit.Distance, wantDist[i])
		}
	}
}

// S3 from spec.md §8: ties broken by ascending position.
func TestTopKCosineTieBreak(t *testing.T) {
	db := [][]float32{
		{1, 0},
		{1, 0},
		{0, 1},
	}
	q := []float32{1, 0}

	hits := TopKCosine(q, db, 2)
	if len(hits) != 2 || hits[0].Index != 0 || hits[1].Index != 1 {
		t.Fatalf("hits = %+v, want [{0 *} {1 *}]", hits)
	}
}

func TestTopKCosineEmptyCorpus(t *testing.T) {
	hits := TopKCosine([]float32{1, 0}, nil, 5)
	if len(hits) != 0 {
		t.Fatalf("len(hits) = %d, want 0", len(hits))
	}
}

func TestTopKCosineKGreaterThanN(t *testing.T) {
	db := [][]float32{{1, 0}, {0, 1}}
	hits := TopKCosine([]float32{1, 0}, db, 100)
	if len(hits) != 2 {
		t.Fatalf("len(hits) = %d, want 2", len(hits))
	}
}

func TestTopKCosinePanicsOnNonPositiveK(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for k <= 0")
		}
	}()
	TopKCosine([]float32{1}, [][]float32{{1}}, 0)
}
