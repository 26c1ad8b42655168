// Package arith implements the 32-bit byte-oriented range coder pep's PPM
// model rides on top of: a carryless coder with 24-bit renormalisation and
// explicit underflow widening, matching spec.md §4.2 exactly.
package arith

import "github.com/ENDESGA/pep/internal/bitio"

const (
	// CodeBits is the width, in bits, of the byte-at-a-time renormalisation
	// window: the top byte of low/range is what gets shifted out.
	CodeBits = 24
	// ProbBits is the number of bits a context's cumulative frequency sum
	// is allowed to occupy.
	ProbBits = 14
	// ProbMax is the probability ceiling every context's Sum must stay at
	// or under (2^14).
	ProbMax = uint32(1) << ProbBits
	// codeMax bounds the top-byte-match test in renormalisation.
	codeMax = uint32(1)<<CodeBits - 1
)

// Encoder is the encode half of the range coder. Zero value is not usable;
// construct with NewEncoder.
type Encoder struct {
	low uint32
	rng uint32
	out []byte
}

// NewEncoder returns a freshly initialised encoder (low=0, range=2^32-1).
func NewEncoder() *Encoder {
	return &Encoder{low: 0, rng: 0xFFFFFFFF}
}

// Encode narrows the coding interval to the sub-range [lowP, highP) out of
// scale, then renormalises, emitting bytes as precision allows.
func (e *Encoder) Encode(lowP, highP, scale uint32) {
	e.rng /= scale
	e.low += lowP * e.rng
	e.rng *= highP - lowP
	e.renormalise()
}

// renormalise shifts out settled top bytes, widening range across an
// underflow boundary whenever precision has collapsed.
func (e *Encoder) renormalise() {
	for {
		if (e.low ^ (e.low + e.rng)) >= codeMax {
			if e.rng >= ProbMax {
				return
			}
			e.rng = ProbMax - (e.low % ProbMax)
			continue
		}
		e.out = append(e.out, byte(e.low>>CodeBits))
		e.low <<= 8
		e.rng <<= 8
	}
}

// Finish flushes the four remaining bytes of low and returns the complete
// encoded payload. The encoder must not be used again afterwards.
func (e *Encoder) Finish() []byte {
	for i := 0; i < 4; i++ {
		e.out = append(e.out, byte(e.low>>24))
		e.low <<= 8
	}
	return e.out
}

// Decoder is the decode half of the range coder, reading from a bounded
// zero-extending byte source so a truncated payload never faults.
type Decoder struct {
	low  uint32
	rng  uint32
	code uint32
	r    *bitio.Reader
}

// NewDecoder constructs a decoder over data, priming code from the first
// four bytes (zero-padded if data is shorter than four bytes).
func NewDecoder(data []byte) *Decoder {
	r := bitio.NewReader(data)
	var code uint32
	for i := 0; i < 4; i++ {
		code = (code << 8) | uint32(r.NextByte())
	}
	return &Decoder{low: 0, rng: 0xFFFFFFFF, code: code, r: r}
}

// CurrentFreq narrows range by scale and returns the cumulative-frequency
// position the encoded code currently points at. Callers turn this into a
// symbol by scanning a frequency table's running totals.
func (d *Decoder) CurrentFreq(scale uint32) uint32 {
	d.rng /= scale
	return (d.code - d.low) / d.rng
}

// Decode consumes the interval [lowP, highP) identified by the caller's
// symbol search and renormalises.
func (d *Decoder) Decode(lowP, highP uint32) {
	d.low += d.rng * lowP
	d.rng *= highP - lowP
	d.renormalise()
}

func (d *Decoder) renormalise() {
	for {
		if (d.low ^ (d.low + d.rng)) >= codeMax {
			if d.rng >= ProbMax {
				return
			}
			d.rng = ProbMax - (d.low % ProbMax)
			continue
		}
		d.low <<= 8
		d.rng <<= 8
		d.code = (d.code << 8) | uint32(d.r.NextByte())
	}
}
