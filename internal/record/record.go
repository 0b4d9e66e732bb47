// Package record defines the persisted Item shape (spec §3, §6.3) and its
// msgpack wire encoding.
package record

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/annvec/annvec/internal/apperr"
)

// Item is the boundary-only persisted record: a caller-assigned id, a
// semantic key, a free-form payload, and an embedding that may be empty
// on input (the Kernel fills it in via the embedder).
type Item struct {
	ID          int32     `msgpack:"id"`
	SemanticKey string    `msgpack:"semantic_key"`
	Payload     string    `msgpack:"payload"`
	Embedding   []float32 `msgpack:"embedding"`
}

// Encode serializes an Item to its wire bytes (§6.3).
func Encode(item Item) ([]byte, error) {
	b, err := msgpack.Marshal(item)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "encode item %d", item.ID)
	}
	return b, nil
}

// Decode deserializes wire bytes into an Item. A decode failure is a
// CorruptRecord error: fatal to the calling operation, non-fatal to the
// process (§7).
func Decode(b []byte) (Item, error) {
	var item Item
	if err := msgpack.Unmarshal(b, &item); err != nil {
		return Item{}, apperr.Wrap(apperr.CorruptRecord, err, "decode item record")
	}
	return item, nil
}

// Query is the auxiliary query-file record (§6.4): a query string paired
// with its embedding, used by the offline latency harness to replay
// queries without hitting the embedder.
type Query struct {
	QueryString string    `msgpack:"query_string"`
	Embedding   []float32 `msgpack:"embedding"`
}

// EncodeQuery serializes a Query to its wire bytes.
func EncodeQuery(q Query) ([]byte, error) {
	b, err := msgpack.Marshal(q)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "encode query %q", q.QueryString)
	}
	return b, nil
}

// DecodeQuery deserializes wire bytes into a Query.
func DecodeQuery(b []byte) (Query, error) {
	var q Query
	if err := msgpack.Unmarshal(b, &q); err != nil {
		return Query{}, apperr.Wrap(apperr.CorruptRecord, err, "decode query record")
	}
	return q, nil
}
