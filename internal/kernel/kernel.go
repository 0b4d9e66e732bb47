// Package kernel implements the search pipeline (spec §4.6): it owns an
// Index, a Store, and an Embedder, and stitches them into load, save,
// and two-stage search operations.
package kernel

import (
	"context"
	"sync/atomic"

	"github.com/annvec/annvec/internal/apperr"
	"github.com/annvec/annvec/internal/embed"
	"github.com/annvec/annvec/internal/index"
	"github.com/annvec/annvec/internal/latency"
	"github.com/annvec/annvec/internal/observability"
	"github.com/annvec/annvec/internal/quantize"
	"github.com/annvec/annvec/internal/record"
	"github.com/annvec/annvec/internal/store"
)

// Latency buckets cover microseconds to ~4 seconds, in nanoseconds.
const (
	latencyMinNanos = 1_000
	latencyMaxNanos = 4_000_000_000
)

// DefaultOvershoot is a typical widening of the binary candidate set
// before re-rank (spec §4.6.5). The search methods do not apply it on
// their own: callers pass overshoot explicitly.
const DefaultOvershoot = 30

// MaxK is the largest k accepted at the public boundary (spec §7).
const MaxK = 100

// Kernel is the search pipeline: Index plus its external collaborators.
type Kernel struct {
	idx      *index.Index
	store    store.Store
	embedder embed.Embedder
	maxID    atomic.Int64

	embedLatency        *latency.Histogram
	searchFullLatency   *latency.Histogram
	searchBinaryLatency *latency.Histogram
	readBackLatency     *latency.Histogram
	reRankLatency       *latency.Histogram

	log     *observability.Logger
	metrics *observability.Metrics
}

// New constructs a Kernel over dims-dimensional embeddings.
func New(dims int, st store.Store, emb embed.Embedder, log *observability.Logger, metrics *observability.Metrics) *Kernel {
	if log == nil {
		log = observability.NewDefaultLogger()
	}
	return &Kernel{
		idx:      index.New(dims),
		store:    st,
		embedder: emb,

		embedLatency:        latency.New(latencyMinNanos, latencyMaxNanos),
		searchFullLatency:   latency.New(latencyMinNanos, latencyMaxNanos),
		searchBinaryLatency: latency.New(latencyMinNanos, latencyMaxNanos),
		readBackLatency:     latency.New(latencyMinNanos, latencyMaxNanos),
		reRankLatency:       latency.New(latencyMinNanos, latencyMaxNanos),

		log:     log,
		metrics: metrics,
	}
}

// Dims returns the fixed embedding dimensionality.
func (k *Kernel) Dims() int { return k.idx.Dims() }

// Len returns the number of entries currently indexed.
func (k *Kernel) Len() int { return k.idx.Len() }

// MaxID returns the largest item id observed so far, via Load or Save.
func (k *Kernel) MaxID() int32 { return int32(k.maxID.Load()) }

func (k *Kernel) bumpMaxID(id int32) {
	for {
		cur := k.maxID.Load()
		if int64(id) <= cur {
			return
		}
		if k.maxID.CompareAndSwap(cur, int64(id)) {
			return
		}
	}
}

// LatencySnapshots reports the current percentile snapshots for every
// stage, keyed by stage name, for diagnostics endpoints.
func (k *Kernel) LatencySnapshots() map[string]latency.Snapshot {
	return map[string]latency.Snapshot{
		"embed":         k.embedLatency.Snapshot(),
		"search_full":   k.searchFullLatency.Snapshot(),
		"search_binary": k.searchBinaryLatency.Snapshot(),
		"read_back":     k.readBackLatency.Snapshot(),
		"re_rank":       k.reRankLatency.Snapshot(),
	}
}

// Load iterates every key the store advertises, decodes each record,
// and adds it to the index. A record that fails to decode is logged and
// skipped; load never fails atomically on a single bad record (§7).
func (k *Kernel) Load(ctx context.Context) error {
	keys, err := k.store.ReadAllKeys(ctx)
	if err != nil {
		return apperr.Wrap(apperr.Internal, err, "list store keys")
	}

	loaded := 0
	for _, key := range keys {
		data, found, err := k.store.Read(ctx, key)
		if err != nil {
			k.log.Warnf("load: read key %d failed: %v", key, err)
			continue
		}
		if !found {
			continue
		}
		item, err := record.Decode(data)
		if err != nil {
			k.log.Warnf("load: skipping corrupt record for key %d: %v", key, err)
			continue
		}
		if len(item.Embedding) != k.idx.Dims() {
			k.log.Warnf("load: skipping item %d: has %d dims, index expects %d", item.ID, len(item.Embedding), k.idx.Dims())
			continue
		}
		if err := k.idx.Add(index.Item{ID: item.ID, Embedding: item.Embedding}); err != nil {
			k.log.Warnf("load: skipping item %d: %v", item.ID, err)
			continue
		}
		k.bumpMaxID(item.ID)
		loaded++
		if k.metrics != nil {
			k.metrics.ItemsLoaded.Inc()
		}
	}

	if loaded > 0 {
		snap := k.idx.DensitySnapshot()
		k.log.Infof("load: %d items loaded, density mean=%.1f p10=%.1f p90=%.1f", loaded, snap.Mean, snap.P10, snap.P90)
		if k.metrics != nil {
			k.metrics.IndexSize.Set(float64(k.idx.Len()))
		}
	}
	return nil
}

// Save persists a single item, filling in its embedding via the
// embedder if absent, and adds it to the index.
func (k *Kernel) Save(ctx context.Context, item record.Item) error {
	_, err := k.SaveBatch(ctx, []record.Item{item})
	return err
}

// SaveBatch persists multiple items, filling in missing embeddings in a
// single embedder batch call.
func (k *Kernel) SaveBatch(ctx context.Context, items []record.Item) ([]record.Item, error) {
	var missingIdx []int
	var missingText []string
	for i, item := range items {
		if len(item.Embedding) == 0 {
			missingIdx = append(missingIdx, i)
			missingText = append(missingText, item.Payload)
		}
	}

	if len(missingIdx) > 0 {
		start := nowNanos()
		vecs, err := k.embedder.EmbedBatch(ctx, missingText)
		k.embedLatency.RecordDuration(nowNanos() - start)
		if k.metrics != nil {
			k.metrics.EmbedderCallsTotal.Inc()
		}
		if err != nil {
			if k.metrics != nil {
				k.metrics.EmbedderErrors.Inc()
			}
			return nil, apperr.Wrap(apperr.EmbedderFailure, err, "embed batch of %d items", len(missingText))
		}
		for j, idx := range missingIdx {
			items[idx].Embedding = vecs[j]
		}
	}

	for _, item := range items {
		if len(item.Embedding) != k.idx.Dims() {
			return nil, apperr.New(apperr.InvalidArgument, "item %d has %d dims, expected %d", item.ID, len(item.Embedding), k.idx.Dims())
		}
	}

	for i := range items {
		quantize.NormalizeInPlace(items[i].Embedding)
	}

	for _, item := range items {
		data, err := record.Encode(item)
		if err != nil {
			return nil, err
		}
		if err := k.store.Upsert(ctx, item.ID, data); err != nil {
			return nil, apperr.Wrap(apperr.Internal, err, "upsert item %d", item.ID)
		}
		if err := k.idx.Add(index.Item{ID: item.ID, Embedding: item.Embedding}); err != nil {
			return nil, err
		}
		k.bumpMaxID(item.ID)
		if k.metrics != nil {
			k.metrics.ItemsInserted.Inc()
			k.metrics.IndexSize.Set(float64(k.idx.Len()))
		}
	}
	return items, nil
}
