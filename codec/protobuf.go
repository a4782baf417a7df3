package codec

import "google.golang.org/protobuf/proto"

// Protobuf stores generated messages as their wire bytes inside the entry frame.
// Decode builds a new message per Get, so callers never share one with the store.
// A cache of protobuf payloads is declared as TimedCache[*pb.Quote] with
// Codec: codec.NewProtobuf(func() *pb.Quote { return &pb.Quote{} }).
type Protobuf[T proto.Message] struct {
	new func() T
}

// NewProtobuf takes the constructor Decode uses for empty messages.
func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return proto.Marshal(v)
}

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}
