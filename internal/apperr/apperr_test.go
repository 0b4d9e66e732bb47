package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOfDefaultsToInternal(t *testing.T) {
	if got := KindOf(errors.New("boom")); got != Internal {
		t.Fatalf("KindOf(plain error) = %v, want Internal", got)
	}
}

func TestKindOfUnwraps(t *testing.T) {
	inner := New(NotFound, "id %d absent", 7)
	wrapped := fmt.Errorf("lookup failed: %w", inner)

	if got := KindOf(wrapped); got != NotFound {
		t.Fatalf("KindOf(wrapped) = %v, want NotFound", got)
	}
	if !Is(wrapped, NotFound) {
		t.Fatalf("Is(wrapped, NotFound) = false, want true")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(Internal, cause, "write failed")

	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is(err, cause) = false, want true")
	}
}
