package kernel

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/annvec/annvec/internal/embed"
	"github.com/annvec/annvec/internal/record"
	"github.com/annvec/annvec/internal/store"
)

func newTestKernel(dims int) *Kernel {
	return New(dims, store.NewMem(), embed.NewHash(dims), nil, nil)
}

func randomUnitVector(rng *rand.Rand, dims int) []float32 {
	v := make([]float32, dims)
	var sumSq float64
	for i := range v {
		x := rng.Float64()*2 - 1
		v[i] = float32(x)
		sumSq += x * x
	}
	norm := float32(math.Sqrt(sumSq))
	for i := range v {
		v[i] /= norm
	}
	return v
}

func TestSaveAndSearchFullRoundTrip(t *testing.T) {
	ctx := context.Background()
	k := newTestKernel(8)
	rng := rand.New(rand.NewSource(1))

	v := randomUnitVector(rng, 8)
	if err := k.Save(ctx, record.Item{ID: 1, Payload: "hello", Embedding: v}); err != nil {
		t.Fatal(err)
	}

	got, err := k.SearchFull(ctx, v, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "hello" {
		t.Fatalf("got %v, want [hello]", got)
	}
}

// S5 — id round-trip.
func TestSaveTracksMaxID(t *testing.T) {
	ctx := context.Background()
	k := newTestKernel(4)
	rng := rand.New(rand.NewSource(2))

	for _, id := range []int32{3, 1, 2} {
		v := randomUnitVector(rng, 4)
		if err := k.Save(ctx, record.Item{ID: id, Payload: "p", Embedding: v}); err != nil {
			t.Fatal(err)
		}
	}

	if k.MaxID() != 3 {
		t.Fatalf("MaxID() = %d, want 3", k.MaxID())
	}
}

// S6 — empty corpus.
func TestSearchFullEmptyCorpusReturnsEmpty(t *testing.T) {
	ctx := context.Background()
	k := newTestKernel(4)

	got, err := k.SearchFull(ctx, []float32{1, 0, 0, 0}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("got %v, want empty", got)
	}
}

func TestSearchRejectsInvalidK(t *testing.T) {
	ctx := context.Background()
	k := newTestKernel(4)

	if _, err := k.SearchFull(ctx, []float32{1, 0, 0, 0}, 0); err == nil {
		t.Fatal("expected error for k=0")
	}
	if _, err := k.SearchFull(ctx, []float32{1, 0, 0, 0}, MaxK+1); err == nil {
		t.Fatal("expected error for k > MaxK")
	}
}

func TestSaveFillsMissingEmbeddingViaEmbedder(t *testing.T) {
	ctx := context.Background()
	k := newTestKernel(16)

	if err := k.Save(ctx, record.Item{ID: 1, Payload: "needs an embedding"}); err != nil {
		t.Fatal(err)
	}
	if k.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", k.Len())
	}
}

// S4-style: binary path with reorder should recover a planted exact match.
func TestSearchBinaryWithReorderFindsPlantedVector(t *testing.T) {
	ctx := context.Background()
	k := newTestKernel(64)
	rng := rand.New(rand.NewSource(3))

	for i := int32(0); i < 200; i++ {
		v := randomUnitVector(rng, 64)
		if err := k.Save(ctx, record.Item{ID: i, Payload: "bg", Embedding: v}); err != nil {
			t.Fatal(err)
		}
	}

	planted := randomUnitVector(rng, 64)
	if err := k.Save(ctx, record.Item{ID: 999, Payload: "planted", Embedding: planted}); err != nil {
		t.Fatal(err)
	}

	ids, err := k.SearchBinaryIDs(ctx, planted, 1, true, DefaultOvershoot)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != 999 {
		t.Fatalf("SearchBinaryIDs = %v, want [999]", ids)
	}
}

func TestSearchBinaryNoReorderSkipsStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	k := newTestKernel(8)
	rng := rand.New(rand.NewSource(4))

	v := randomUnitVector(rng, 8)
	if err := k.Save(ctx, record.Item{ID: 5, Payload: "x", Embedding: v}); err != nil {
		t.Fatal(err)
	}

	ids, err := k.SearchBinaryIDs(ctx, v, 1, false, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != 5 {
		t.Fatalf("SearchBinaryIDs = %v, want [5]", ids)
	}
	if n := k.readBackLatency.Count(); n != 0 {
		t.Fatalf("read-back samples = %d, want 0 (no store round-trip without reorder)", n)
	}
}

func TestLoadSkipsCorruptRecordWithoutFailingAtomically(t *testing.T) {
	ctx := context.Background()
	st := store.NewMem()
	rng := rand.New(rand.NewSource(5))

	good := record.Item{ID: 1, Payload: "good", Embedding: randomUnitVector(rng, 8)}
	data, err := record.Encode(good)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Upsert(ctx, 1, data); err != nil {
		t.Fatal(err)
	}
	if err := st.Upsert(ctx, 2, []byte{0xff, 0xfe, 0xfd}); err != nil {
		t.Fatal(err)
	}

	k := New(8, st, embed.NewHash(8), nil, nil)
	if err := k.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if k.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (corrupt record should be skipped, not fatal)", k.Len())
	}
}
