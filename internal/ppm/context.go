// Package ppm implements the order-2 PPM model with an order-0 fallback
// and an escape-symbol protocol (spec.md §4.3) that the container's
// compressor and decompressor drive one packed-index byte at a time.
package ppm

// EscapeSymbol is the reserved 257th alphabet entry signalling "the current
// context cannot code this symbol, fall back to the order-0 table".
const EscapeSymbol = 256

// alphabetSize is the number of symbol slots each context carries: 256
// packed-index byte values plus the escape symbol.
const alphabetSize = 257

// Context is a single frequency table: counts for the 256 packed-index
// byte values plus the escape symbol, with a cached running sum. The
// invariant Sum == ΣFreq[i] is maintained by update and by the
// encode/decode paths in model.go. update rescales whenever Sum reaches
// arith.ProbMax; the escape path in model.go adds to Sum without a rescale.
type Context struct {
	Freq [alphabetSize]uint16
	Sum  uint32
}

// newOrder0 returns the order-0 fallback table, initialised to all-ones
// per spec.md §3 (every one of the 257 slots starts at frequency 1).
func newOrder0() Context {
	var c Context
	for i := range c.Freq {
		c.Freq[i] = 1
	}
	c.Sum = alphabetSize
	return c
}
