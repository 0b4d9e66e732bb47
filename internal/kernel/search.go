package kernel

import (
	"context"

	"github.com/annvec/annvec/internal/apperr"
	"github.com/annvec/annvec/internal/quantize"
	"github.com/annvec/annvec/internal/record"
	"github.com/annvec/annvec/internal/scan"
)

func validateK(k int) error {
	if k <= 0 {
		return apperr.New(apperr.InvalidArgument, "k must be positive, got %d", k)
	}
	if k > MaxK {
		return apperr.New(apperr.InvalidArgument, "k must be <= %d, got %d", MaxK, k)
	}
	return nil
}

// SearchFullIDs runs the full-precision cosine path (§4.6.3) and returns
// matching ids in ascending-distance order.
func (k *Kernel) SearchFullIDs(_ context.Context, q []float32, topK int) ([]int32, error) {
	if err := validateK(topK); err != nil {
		return nil, err
	}
	start := nowNanos()
	ids, err := k.idx.FindClosest(q, topK)
	k.searchFullLatency.RecordDuration(nowNanos() - start)
	return ids, err
}

// SearchFull runs the full-precision path and reads each hit's payload
// back from the store, in matching order.
func (k *Kernel) SearchFull(ctx context.Context, q []float32, topK int) ([]string, error) {
	ids, err := k.SearchFullIDs(ctx, q, topK)
	if err != nil {
		return nil, err
	}
	return k.readPayloads(ctx, ids)
}

// SearchFullText embeds text, then runs SearchFull.
func (k *Kernel) SearchFullText(ctx context.Context, text string, topK int) ([]string, error) {
	q, err := k.embedText(ctx, text)
	if err != nil {
		return nil, err
	}
	return k.SearchFull(ctx, q, topK)
}

// SearchBinaryIDs runs the two-stage binary path (§4.6.4) and returns
// ids. When reorder is false, overshoot is forced to 0 and no store
// round-trip happens.
func (k *Kernel) SearchBinaryIDs(ctx context.Context, q []float32, topK int, reorder bool, overshoot int) ([]int32, error) {
	if err := validateK(topK); err != nil {
		return nil, err
	}
	if !reorder {
		overshoot = 0
	}

	start := nowNanos()
	candidates, err := k.idx.FindClosestBinary(q, topK+overshoot)
	k.searchBinaryLatency.RecordDuration(nowNanos() - start)
	if err != nil {
		return nil, err
	}

	if !reorder {
		if len(candidates) > topK {
			candidates = candidates[:topK]
		}
		return candidates, nil
	}

	items, err := k.readItems(ctx, candidates)
	if err != nil {
		return nil, err
	}

	reStart := nowNanos()
	reranked := rerank(q, items, topK)
	k.reRankLatency.RecordDuration(nowNanos() - reStart)
	return reranked, nil
}

// SearchBinary runs the two-stage binary path and resolves payloads.
func (k *Kernel) SearchBinary(ctx context.Context, q []float32, topK int, reorder bool, overshoot int) ([]string, error) {
	ids, err := k.SearchBinaryIDs(ctx, q, topK, reorder, overshoot)
	if err != nil {
		return nil, err
	}
	return k.readPayloads(ctx, ids)
}

// SearchBinaryText embeds text, then runs SearchBinary.
func (k *Kernel) SearchBinaryText(ctx context.Context, text string, topK int, reorder bool, overshoot int) ([]string, error) {
	q, err := k.embedText(ctx, text)
	if err != nil {
		return nil, err
	}
	return k.SearchBinary(ctx, q, topK, reorder, overshoot)
}

func (k *Kernel) embedText(ctx context.Context, text string) ([]float32, error) {
	start := nowNanos()
	q, err := k.embedder.Embed(ctx, text)
	k.embedLatency.RecordDuration(nowNanos() - start)
	if k.metrics != nil {
		k.metrics.EmbedderCallsTotal.Inc()
	}
	if err != nil {
		if k.metrics != nil {
			k.metrics.EmbedderErrors.Inc()
		}
		return nil, apperr.Wrap(apperr.EmbedderFailure, err, "embed query text")
	}
	return q, nil
}

// readItems reads and decodes the full record for every id, in order.
// A missing or corrupt record is a hard error: the caller asked for
// these specific candidates by id.
func (k *Kernel) readItems(ctx context.Context, ids []int32) ([]record.Item, error) {
	start := nowNanos()
	defer func() { k.readBackLatency.RecordDuration(nowNanos() - start) }()

	items := make([]record.Item, 0, len(ids))
	for _, id := range ids {
		data, found, err := k.store.Read(ctx, id)
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, err, "read item %d", id)
		}
		if !found {
			return nil, apperr.New(apperr.NotFound, "item %d not found in store", id)
		}
		item, err := record.Decode(data)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (k *Kernel) readPayloads(ctx context.Context, ids []int32) ([]string, error) {
	items, err := k.readItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	payloads := make([]string, len(items))
	for i, item := range items {
		payloads[i] = item.Payload
	}
	return payloads, nil
}

// rerank runs the full-precision cosine scanner over the candidates'
// embeddings against a normalized copy of the query (§4.6.4, §9 open
// question resolved: normalize the query copy before re-rank), and
// returns the top-k ids in re-ranked order.
func rerank(q []float32, items []record.Item, topK int) []int32 {
	normalized := quantize.Normalized(q)

	vecs := make([][]float32, len(items))
	for i, item := range items {
		vecs[i] = item.Embedding
	}

	hits := scan.TopKCosine(normalized, vecs, topK)
	ids := make([]int32, len(hits))
	for i, hit := range hits {
		ids[i] = items[hit.Index].ID
	}
	return ids
}
