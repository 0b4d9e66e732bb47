package kernel

import (
	"context"

	"github.com/annvec/annvec/internal/apperr"
)

// Result pairs an item id with its payload, for callers (notably the
// HTTP layer) that need both.
type Result struct {
	ID      int32  `json:"id"`
	Payload string `json:"payload"`
}

func (k *Kernel) resultsFromIDs(ctx context.Context, ids []int32) ([]Result, error) {
	items, err := k.readItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	results := make([]Result, len(items))
	for i, item := range items {
		results[i] = Result{ID: item.ID, Payload: item.Payload}
	}
	return results, nil
}

// SearchFullResults runs the full-precision path and returns id+payload
// pairs in ascending-distance order.
func (k *Kernel) SearchFullResults(ctx context.Context, q []float32, topK int) ([]Result, error) {
	ids, err := k.SearchFullIDs(ctx, q, topK)
	if err != nil {
		return nil, err
	}
	return k.resultsFromIDs(ctx, ids)
}

// SearchFullTextResults embeds text, then runs SearchFullResults.
func (k *Kernel) SearchFullTextResults(ctx context.Context, text string, topK int) ([]Result, error) {
	q, err := k.embedText(ctx, text)
	if err != nil {
		return nil, err
	}
	return k.SearchFullResults(ctx, q, topK)
}

// SearchBinaryResults runs the two-stage binary path and returns
// id+payload pairs.
func (k *Kernel) SearchBinaryResults(ctx context.Context, q []float32, topK int, reorder bool, overshoot int) ([]Result, error) {
	ids, err := k.SearchBinaryIDs(ctx, q, topK, reorder, overshoot)
	if err != nil {
		return nil, err
	}
	return k.resultsFromIDs(ctx, ids)
}

// SearchBinaryTextResults embeds text, then runs SearchBinaryResults.
func (k *Kernel) SearchBinaryTextResults(ctx context.Context, text string, topK int, reorder bool, overshoot int) ([]Result, error) {
	q, err := k.embedText(ctx, text)
	if err != nil {
		return nil, err
	}
	return k.SearchBinaryResults(ctx, q, topK, reorder, overshoot)
}

// GetItem reads a single item by id, mapping a missing key to NotFound.
func (k *Kernel) GetItem(ctx context.Context, id int32) (Result, error) {
	results, err := k.resultsFromIDs(ctx, []int32{id})
	if err != nil {
		return Result{}, err
	}
	return results[0], nil
}

// GetItemsBatch reads multiple items by id. Per §7, more than 100 ids
// is an InvalidArgument.
func (k *Kernel) GetItemsBatch(ctx context.Context, ids []int32) ([]Result, error) {
	if len(ids) > MaxK {
		return nil, apperr.New(apperr.InvalidArgument, "ids array must have <= %d entries, got %d", MaxK, len(ids))
	}
	return k.resultsFromIDs(ctx, ids)
}
