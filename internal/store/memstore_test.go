package store

import (
	"context"
	"testing"
)

func TestMemUpsertAndRead(t *testing.T) {
	ctx := context.Background()
	m := NewMem()

	if err := m.Upsert(ctx, 7, []byte("payload")); err != nil {
		t.Fatal(err)
	}
	data, found, err := m.Read(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("expected key 7 to be found")
	}
	if string(data) != "payload" {
		t.Fatalf("data = %q, want %q", data, "payload")
	}
}

func TestMemReadMissingKey(t *testing.T) {
	ctx := context.Background()
	m := NewMem()

	_, found, err := m.Read(ctx, 99)
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Fatal("expected key 99 to be absent")
	}
}

func TestMemUpsertIsDefensiveCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMem()

	buf := []byte("original")
	if err := m.Upsert(ctx, 1, buf); err != nil {
		t.Fatal(err)
	}
	buf[0] = 'X'

	data, _, err := m.Read(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "original" {
		t.Fatalf("data = %q, want %q (mutation of caller buffer leaked in)", data, "original")
	}
}

func TestMemReadAllKeys(t *testing.T) {
	ctx := context.Background()
	m := NewMem()

	for _, k := range []int32{3, 1, 2} {
		if err := m.Upsert(ctx, k, []byte("x")); err != nil {
			t.Fatal(err)
		}
	}

	keys, err := m.ReadAllKeys(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 3 {
		t.Fatalf("len(keys) = %d, want 3", len(keys))
	}
	seen := map[int32]bool{}
	for _, k := range keys {
		seen[k] = true
	}
	for _, want := range []int32{1, 2, 3} {
		if !seen[want] {
			t.Fatalf("missing key %d in %v", want, keys)
		}
	}
}
