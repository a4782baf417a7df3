package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"time"
)

const (
	version byte = 1
	tsLen        = 8 + 4
	hdrLen       = 4 + 1 + tsLen + tsLen + 4
)

var (
	ErrCorrupt = errors.New("timedcache: corrupt entry")
	magic4     = [...]byte{'T', 'M', 'C', 'E'}
)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Entry: magic(4) | ver(1) | staleAt(ts) | expireAt(ts) | vlen(u32 be) | payload(vlen)
// ts:    unix seconds(i64 be) | nanoseconds(u32 be, < 1e9)
//
// Any time.Time instant round-trips, the zero Time included. Location and
// monotonic readings are dropped.
func EncodeEntry(staleAt, expireAt time.Time, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(hdrLen + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)

	var ts [tsLen]byte
	putTime(ts[:], staleAt)
	buf.Write(ts[:])
	putTime(ts[:], expireAt)
	buf.Write(ts[:])

	var u4 [4]byte
	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

func putTime(b []byte, t time.Time) {
	binary.BigEndian.PutUint64(b[:8], uint64(t.Unix()))
	binary.BigEndian.PutUint32(b[8:tsLen], uint32(t.Nanosecond()))
}

func readTime(b []byte) (time.Time, bool) {
	sec := int64(binary.BigEndian.Uint64(b[:8]))
	nsec := binary.BigEndian.Uint32(b[8:tsLen])
	if nsec >= 1e9 {
		return time.Time{}, false
	}
	return time.Unix(sec, int64(nsec)).UTC(), true
}

// DecodeEntry is strict: trailing bytes, out-of-range nanoseconds and
// staleAt > expireAt are rejected. The returned payload aliases b.
func DecodeEntry(b []byte) (staleAt, expireAt time.Time, payload []byte, err error) {
	if len(b) < hdrLen || !hasMagic(b) || b[4] != version {
		return time.Time{}, time.Time{}, nil, ErrCorrupt
	}

	off := 5
	sa, ok1 := readTime(b[off : off+tsLen])
	off += tsLen
	ea, ok2 := readTime(b[off : off+tsLen])
	off += tsLen
	if !ok1 || !ok2 || sa.After(ea) {
		return time.Time{}, time.Time{}, nil, ErrCorrupt
	}

	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if vlen < 0 || vlen != len(b)-off {
		return time.Time{}, time.Time{}, nil, ErrCorrupt
	}

	return sa, ea, b[off : off+vlen], nil
}

// ExpireAt reads only the hard expiry of an encoded entry.
func ExpireAt(b []byte) (time.Time, error) {
	_, ea, _, err := DecodeEntry(b)
	return ea, err
}
