// Package codec turns cached payloads into bytes and back.
//
// Every Get decodes a fresh value, so callers never alias what the store holds.
package codec

// Codec encodes/decodes payloads V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
