package transform

// Premultiply scales px's color channels by its own alpha using the
// standard round(c*a/255) approximation spec.md §4.5 pins:
// ((c*(a*257)+32896)>>16).
func Premultiply(px uint32, o ChannelOrder) uint32 {
	r, g, b, a := Channels(px, o)
	scale := uint32(a)*257 + 0 // the +32896 rounding term is added per channel below
	mul := func(c byte) byte {
		return byte((uint32(c)*scale + 32896) >> 16)
	}
	return Assemble(mul(r), mul(g), mul(b), a, o)
}

// IsOpaque reports whether px's alpha channel is fully opaque (0xFF).
func IsOpaque(px uint32, o ChannelOrder) bool {
	return Alpha(px, o) == 0xFF
}

// OpaqueBlack and OpaqueWhite build the two colors the bitmap short-circuit
// (spec.md §4.4) recognises and reconstructs, in the given channel order.
func OpaqueBlack(o ChannelOrder) uint32 { return Assemble(0, 0, 0, 0xFF, o) }
func OpaqueWhite(o ChannelOrder) uint32 { return Assemble(0xFF, 0xFF, 0xFF, 0xFF, o) }
