package codec

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type quote struct {
	Symbol string    `json:"symbol" msgpack:"symbol" cbor:"symbol"`
	Price  float64   `json:"price" msgpack:"price" cbor:"price"`
	At     time.Time `json:"at" msgpack:"at" cbor:"at"`
}

func sampleQuote() quote {
	return quote{Symbol: "ACME", Price: 12.5, At: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
}

func checkQuoteCodec(t *testing.T, name string, c Codec[quote]) {
	t.Helper()
	in := sampleQuote()
	b, err := c.Encode(in)
	if err != nil {
		t.Fatalf("%s encode: %v", name, err)
	}
	out, err := c.Decode(b)
	if err != nil {
		t.Fatalf("%s decode: %v", name, err)
	}
	if out.Symbol != in.Symbol || out.Price != in.Price || !out.At.Equal(in.At) {
		t.Fatalf("%s: got %+v want %+v", name, out, in)
	}
}

func TestStructCodecs(t *testing.T) {
	checkQuoteCodec(t, "json", JSON[quote]{})
	checkQuoteCodec(t, "msgpack", Msgpack[quote]{})
	checkQuoteCodec(t, "cbor", MustCBOR[quote](false))
	checkQuoteCodec(t, "cbor-det", MustCBOR[quote](true))
}

func TestCBORDeterministicMapOrder(t *testing.T) {
	c := MustCBOR[map[string]int](true)
	a, err := c.Encode(map[string]int{"b": 2, "a": 1, "c": 3})
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Encode(map[string]int{"c": 3, "a": 1, "b": 2})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("deterministic CBOR produced different bytes: %x vs %x", a, b)
	}
}

func TestProtobufCodec(t *testing.T) {
	c := NewProtobuf(func() *wrapperspb.StringValue { return &wrapperspb.StringValue{} })
	in := wrapperspb.String("snapshot-v2")
	b, err := c.Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := c.Decode(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !proto.Equal(in, out) {
		t.Fatalf("got %v want %v", out, in)
	}
}

func TestRawCodecs(t *testing.T) {
	b, _ := Bytes{}.Encode([]byte("raw"))
	if got, _ := (Bytes{}).Decode(b); string(got) != "raw" {
		t.Fatalf("bytes codec got %q", got)
	}
	s, _ := String{}.Encode("hello")
	if got, _ := (String{}).Decode(s); got != "hello" {
		t.Fatalf("string codec got %q", got)
	}
}

func TestLimitRejectsOversized(t *testing.T) {
	c := Limit[string]{Inner: String{}, MaxDecode: 4}
	if _, err := c.Decode([]byte("12345")); err == nil || !strings.Contains(err.Error(), "too large") {
		t.Fatalf("expected size error, got %v", err)
	}
	if got, err := c.Decode([]byte("1234")); err != nil || got != "1234" {
		t.Fatalf("at limit: got %q err=%v", got, err)
	}

	off := Limit[string]{Inner: String{}}
	if _, err := off.Decode([]byte(strings.Repeat("x", 1<<16))); err != nil {
		t.Fatalf("MaxDecode=0 should disable limiting, got %v", err)
	}
}

func TestBytesDecodeDoesNotAlias(t *testing.T) {
	stored := []byte("frame")
	got, _ := Bytes{}.Decode(stored)
	got[0] = 'X'
	if string(stored) != "frame" {
		t.Fatalf("decode aliased input: %q", stored)
	}
}
