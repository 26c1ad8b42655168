// Package palette builds the first-seen-order color table and packs pixels
// into fixed-width index bytes, the pipeline spec.md §4.1 describes that
// feeds the PPM coder one packed byte at a time.
package palette

import "golang.org/x/exp/slices"

// MaxSize is the hard ceiling on palette entries; unseen colors past this
// point saturate to index 0 (spec.md §4.1, §9 — defined, not an error).
const MaxSize = 256

// Palette is a fixed-capacity, value-typed color table: Colors beyond Size
// are unused zero entries, never read by a correctly-formed stream.
type Palette struct {
	Colors [MaxSize]uint32
	Size   int
}

// Build performs the single left-to-right sweep spec.md §4.1 describes: a
// pixel equal to its immediate predecessor is skipped outright (a cheap
// run-length heuristic), otherwise it is looked up by linear scan and
// appended if new and room remains. Past 256 entries, unseen colors are
// simply left unrepresented here — IndexOf maps them to 0 later.
func Build(pixels []uint32) *Palette {
	pal := &Palette{}

	havePrev := false
	var prev uint32

	for _, px := range pixels {
		if havePrev && px == prev {
			continue
		}
		prev, havePrev = px, true

		if slices.Index(pal.Colors[:pal.Size], px) >= 0 {
			continue
		}
		if pal.Size < MaxSize {
			pal.Colors[pal.Size] = px
			pal.Size++
		}
	}

	return pal
}

// IndexOf returns px's palette index via the same linear scan Build uses.
// An unrepresented color (palette saturated, or simply never seen at
// Build time) maps to index 0, matching spec.md's documented open
// question about palette saturation.
func (p *Palette) IndexOf(px uint32) int {
	if i := slices.Index(p.Colors[:p.Size], px); i >= 0 {
		return i
	}
	return 0
}
