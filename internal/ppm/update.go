package ppm

import "github.com/ENDESGA/pep/internal/arith"

// update applies the adaptive frequency bump spec.md §4.3 calls UPDATE: a
// flat +2 to the coded symbol, followed by a rescale (halving every count,
// +1 rounding) whenever the bumped symbol or the running sum crosses its
// ceiling. freqMax is shared, per-image mutable state (not per-context) —
// every rescale event raises it by (256-paletteSize)/2 (not at all for a
// full 256-entry palette), so images with smaller palettes tolerate more
// accumulation before the next rescale.
func update(ctx *Context, sym int, freqMax *uint32, paletteSize int) {
	ctx.Freq[sym] += 2
	ctx.Sum += 2

	if uint32(ctx.Freq[sym]) >= *freqMax || ctx.Sum >= arith.ProbMax {
		*freqMax += uint32(256-paletteSize) / 2

		var sum uint32
		for i := range ctx.Freq {
			ctx.Freq[i] = (ctx.Freq[i] + 1) / 2
			sum += uint32(ctx.Freq[i])
		}
		ctx.Sum = sum
	}
}
