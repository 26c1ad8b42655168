// Package transform implements the pixel-level helpers spec.md §4.5
// describes as pure byte shuffles invoked at the decode boundary:
// channel-order reformatting, premultiplied-alpha scaling, and the
// first-index-transparent override.
package transform

// ChannelOrder is the on-disk channel-order tag (spec.md §6 — stable
// values). A pixel is a uint32 of four bytes; byte position 0 is the
// least-significant byte, position 3 the most-significant, and each
// ChannelOrder fixes which semantic channel (R, G, B, A) lives at which
// position.
type ChannelOrder byte

const (
	RGBA ChannelOrder = 0
	BGRA ChannelOrder = 1
	ABGR ChannelOrder = 2
	ARGB ChannelOrder = 3
)

// positions returns the byte position of each semantic channel within a
// pixel stored in order o.
func positions(o ChannelOrder) (r, g, b, a int) {
	switch o {
	case BGRA:
		return 2, 1, 0, 3
	case ABGR:
		return 3, 2, 1, 0
	case ARGB:
		return 1, 2, 3, 0
	default: // RGBA
		return 0, 1, 2, 3
	}
}

// Channels unpacks px (stored in order o) into its four component bytes.
func Channels(px uint32, o ChannelOrder) (r, g, b, a byte) {
	rp, gp, bp, ap := positions(o)
	return byte(px >> uint(rp*8)), byte(px >> uint(gp*8)), byte(px >> uint(bp*8)), byte(px >> uint(ap*8))
}

// Assemble packs four component bytes into a pixel stored in order o.
func Assemble(r, g, b, a byte, o ChannelOrder) uint32 {
	rp, gp, bp, ap := positions(o)
	var px uint32
	px |= uint32(r) << uint(rp*8)
	px |= uint32(g) << uint(gp*8)
	px |= uint32(b) << uint(bp*8)
	px |= uint32(a) << uint(ap*8)
	return px
}

// Reformat reshuffles px from one channel order to another. Identity when
// from == to (spec.md §4.5).
func Reformat(px uint32, from, to ChannelOrder) uint32 {
	if from == to {
		return px
	}
	r, g, b, a := Channels(px, from)
	return Assemble(r, g, b, a, to)
}

// Alpha returns just the alpha byte of px under order o.
func Alpha(px uint32, o ChannelOrder) byte {
	_, _, _, a := Channels(px, o)
	return a
}

// WithAlpha returns px with its alpha channel replaced by a, all other
// channels unchanged.
func WithAlpha(px uint32, o ChannelOrder, a byte) uint32 {
	r, g, b, _ := Channels(px, o)
	return Assemble(r, g, b, a, o)
}
