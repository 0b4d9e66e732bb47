package record

import (
	"bytes"
	"testing"

	"github.com/annvec/annvec/internal/apperr"
)

// Round-trip law #5 from spec.md §8.
func TestItemEncodeDecodeRoundTrip(t *testing.T) {
	item := Item{
		ID:          42,
		SemanticKey: "docs/intro.md#2",
		Payload:     "Introduction to the system.",
		Embedding:   []float32{0.1, -0.2, 0.3, 0},
	}

	b, err := Encode(item)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(b)
	if err != nil {
		t.Fatal(err)
	}

	if got.ID != item.ID || got.SemanticKey != item.SemanticKey || got.Payload != item.Payload {
		t.Fatalf("scalar fields mismatch: got %+v, want %+v", got, item)
	}
	if len(got.Embedding) != len(item.Embedding) {
		t.Fatalf("embedding length mismatch: got %d, want %d", len(got.Embedding), len(item.Embedding))
	}
	for i := range item.Embedding {
		if got.Embedding[i] != item.Embedding[i] {
			t.Fatalf("embedding[%d] = %v, want %v", i, got.Embedding[i], item.Embedding[i])
		}
	}
}

func TestDecodeCorruptBytesReturnsCorruptRecordKind(t *testing.T) {
	_, err := Decode([]byte{0xff, 0xff, 0xff})
	if err == nil {
		t.Fatal("expected error decoding garbage bytes")
	}
	if got := apperr.KindOf(err); got != apperr.CorruptRecord {
		t.Fatalf("KindOf(err) = %v, want CorruptRecord", got)
	}
}

func TestQueryFileRoundTrip(t *testing.T) {
	queries := []Query{
		{QueryString: "hello world", Embedding: []float32{1, 2, 3}},
		{QueryString: "second query", Embedding: []float32{4, 5, 6, 7}},
	}

	var buf bytes.Buffer
	if err := WriteQueryFile(&buf, queries); err != nil {
		t.Fatal(err)
	}

	got, err := ReadQueryFile(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(queries) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(queries))
	}
	for i := range queries {
		if got[i].QueryString != queries[i].QueryString {
			t.Fatalf("query[%d] string = %q, want %q", i, got[i].QueryString, queries[i].QueryString)
		}
	}
}
