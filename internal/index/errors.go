package index

import "github.com/annvec/annvec/internal/apperr"

func errDimMismatch(want, got int) error {
	return apperr.New(apperr.InvalidArgument, "embedding has %d dimensions, index expects %d", got, want)
}

func errZeroVector() error {
	return apperr.New(apperr.InvalidArgument, "embedding is the zero vector")
}

func errInvalidK(k int) error {
	return apperr.New(apperr.InvalidArgument, "k must be > 0, got %d", k)
}
