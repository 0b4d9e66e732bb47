package record

import (
	"encoding/binary"
	"io"

	"github.com/annvec/annvec/internal/apperr"
)

// WriteQueryFile appends each Query to w as a length-prefixed msgpack
// record: a 4-byte big-endian length followed by that many bytes of
// msgpack payload, per §6.4.
func WriteQueryFile(w io.Writer, queries []Query) error {
	for _, q := range queries {
		b, err := EncodeQuery(q)
		if err != nil {
			return err
		}
		var lenPrefix [4]byte
		binary.BigEndian.PutUint32(lenPrefix[:], uint32(len(b)))
		if _, err := w.Write(lenPrefix[:]); err != nil {
			return apperr.Wrap(apperr.Internal, err, "write query length prefix")
		}
		if _, err := w.Write(b); err != nil {
			return apperr.Wrap(apperr.Internal, err, "write query record")
		}
	}
	return nil
}

// ReadQueryFile reads a concatenation of length-prefixed Query records
// from r until EOF.
func ReadQueryFile(r io.Reader) ([]Query, error) {
	var queries []Query
	for {
		var lenPrefix [4]byte
		if _, err := io.ReadFull(r, lenPrefix[:]); err != nil {
			if err == io.EOF {
				return queries, nil
			}
			return nil, apperr.Wrap(apperr.CorruptRecord, err, "read query length prefix")
		}
		n := binary.BigEndian.Uint32(lenPrefix[:])
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, apperr.Wrap(apperr.CorruptRecord, err, "read query record body")
		}
		q, err := DecodeQuery(buf)
		if err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
}
