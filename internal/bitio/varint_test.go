package bitio_test

import (
	"testing"

	"github.com/ENDESGA/pep/internal/bitio"
)

func TestVarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 16384, 1 << 20, 1 << 40}

	for _, v := range values {
		buf := bitio.PutVarint(nil, v)
		r := bitio.NewReader(buf)
		if got := bitio.ReadVarint(r); got != v {
			t.Errorf("round trip %d -> %v -> %d", v, buf, got)
		}
	}
}

func TestVarintTruncatedNeverHangs(t *testing.T) {
	// All continuation bits set, no terminating byte: ReadVarint must
	// still return once the bounded reader starts padding zeros.
	buf := []byte{0x80, 0x80, 0x80}
	r := bitio.NewReader(buf)
	_ = bitio.ReadVarint(r)
}
