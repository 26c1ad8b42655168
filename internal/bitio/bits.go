// Package bitio provides the fixed-width integer plumbing the arithmetic
// coder and container framing build on: bit-count helpers, a bounded
// zero-extending byte reader, and the varint codec used by the frame header.
package bitio

import "math/bits"

// BitsForCount returns the number of bits needed to address n distinct
// values (ceil(log2(max(n, 2)))), capped at 8. n <= 0 is treated as 1.
func BitsForCount(n int) int {
	if n < 2 {
		n = 2
	}
	b := 32 - bits.LeadingZeros32(uint32(n-1))
	if b < 1 {
		b = 1
	}
	if b > 8 {
		b = 8
	}
	return b
}
