package ppm

import "github.com/ENDESGA/pep/internal/arith"

// initialFreqMax is FREQ_MAX's starting value before any rescale grows it.
const initialFreqMax = 128

// Model holds every piece of mutable state one compress/decompress call
// needs: the 256 order-2 contexts, the order-0 fallback, the shared
// rescale threshold, and the rolling context-id register. It is allocated
// fresh per call (NewModel) rather than held in a package-level variable,
// so concurrent calls on disjoint images never alias state (spec.md §5, §9).
type Model struct {
	contexts    [256]Context
	order0      Context
	freqMax     uint32
	contextID   uint64
	paletteSize int
}

// NewModel constructs a model for an image whose palette has paletteSize
// entries (used only to scale freqMax's growth rate on rescale).
func NewModel(paletteSize int) *Model {
	return &Model{
		order0:      newOrder0(),
		freqMax:     initialFreqMax,
		paletteSize: paletteSize,
	}
}

// ctx returns the order-2 context the current rolling context id selects.
func (m *Model) ctx() *Context {
	return &m.contexts[byte(m.contextID)]
}

// advance folds a just-coded symbol into the rolling context-id register.
// The register is kept 64 bits wide per spec.md §9 even though only its
// low byte ever indexes the context array.
func (m *Model) advance(sym byte) {
	m.contextID = (m.contextID << 8) | uint64(sym)
}

// EncodeSymbol codes one packed-index byte through the order-2 context,
// falling back to escape + order-0 exactly as spec.md §4.3 describes.
func (m *Model) EncodeSymbol(enc *arith.Encoder, sym byte) {
	c := m.ctx()

	if c.Sum != 0 && c.Freq[sym] != 0 {
		encodeFrom(enc, c, int(sym))
		update(c, int(sym), &m.freqMax, m.paletteSize)
	} else {
		if c.Sum != 0 {
			encodeFrom(enc, c, EscapeSymbol)
			c.Freq[EscapeSymbol]++
			c.Sum++
		}

		encodeFrom(enc, &m.order0, int(sym))

		if c.Sum == 0 {
			c.Freq[EscapeSymbol] = 1
			c.Sum = 1
		}
		c.Freq[sym] = 1
		c.Sum++

		update(&m.order0, int(sym), &m.freqMax, m.paletteSize)
	}

	m.advance(sym)
}

// DecodeSymbol mirrors EncodeSymbol's branch discipline exactly, recovering
// the packed-index byte the encoder coded.
func (m *Model) DecodeSymbol(dec *arith.Decoder) byte {
	c := m.ctx()

	var sym int
	if c.Sum != 0 {
		sym = decodeFrom(dec, c)
		if sym == EscapeSymbol {
			c.Freq[EscapeSymbol]++
			c.Sum++

			sym = decodeFrom(dec, &m.order0)

			c.Freq[sym] = 1
			c.Sum++

			update(&m.order0, sym, &m.freqMax, m.paletteSize)
		} else {
			update(c, sym, &m.freqMax, m.paletteSize)
		}
	} else {
		sym = decodeFrom(dec, &m.order0)

		c.Freq[EscapeSymbol] = 1
		c.Sum = 1
		c.Freq[sym] = 1
		c.Sum++

		update(&m.order0, sym, &m.freqMax, m.paletteSize)
	}

	s := byte(sym)
	m.advance(s)
	return s
}

// encodeFrom codes sym out of ctx by accumulating the cumulative frequency
// range [low, high) that precedes and includes it.
func encodeFrom(enc *arith.Encoder, ctx *Context, sym int) {
	var running uint32
	for i := 0; i < sym; i++ {
		running += uint32(ctx.Freq[i])
	}
	enc.Encode(running, running+uint32(ctx.Freq[sym]), ctx.Sum)
}

// decodeFrom performs the linear cumulative-frequency scan spec.md §4.2
// describes: query the coder for a target frequency position, then walk
// the table accumulating running totals until one exceeds it.
func decodeFrom(dec *arith.Decoder, ctx *Context) int {
	target := dec.CurrentFreq(ctx.Sum)

	var running uint32
	for i := 0; i < alphabetSize; i++ {
		next := running + uint32(ctx.Freq[i])
		if next > target {
			dec.Decode(running, next)
			return i
		}
		running = next
	}

	// Corrupt payload: the accounted frequencies never reached the
	// decoder's target. Report the escape symbol so the caller's fallback
	// path still makes progress instead of faulting (spec.md §7 — bounded
	// reads, no divergence), but decode a non-zero-width interval: a
	// zero-width Decode would zero the coder's range and hang
	// renormalise() forever instead of just returning garbage.
	if running > 0 {
		dec.Decode(running-1, running)
	} else {
		dec.Decode(0, 1)
	}
	return EscapeSymbol
}
