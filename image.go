package pep

import (
	"github.com/ENDESGA/pep/internal/palette"
	"github.com/ENDESGA/pep/internal/transform"
)

// ChannelOrder is the on-disk pixel channel-order tag (spec.md §6): RGBA=0,
// BGRA=1, ABGR=2, ARGB=3.
type ChannelOrder = transform.ChannelOrder

const (
	RGBA ChannelOrder = transform.RGBA
	BGRA ChannelOrder = transform.BGRA
	ABGR ChannelOrder = transform.ABGR
	ARGB ChannelOrder = transform.ARGB
)

// ChannelBits is the on-disk palette bit-depth tag (spec.md §6): the actual
// stored channel bit-count is 1<<tag, so Bits1=0 selects 1-bit channels,
// Bits8=3 selects full 8-bit channels (lossless).
type ChannelBits byte

const (
	Bits1 ChannelBits = 0
	Bits2 ChannelBits = 1
	Bits4 ChannelBits = 2
	Bits8 ChannelBits = 3
)

// Count returns the actual number of bits per palette channel this tag
// selects.
func (c ChannelBits) Count() int {
	return 1 << uint(c)
}

func channelBitsFromCount(n int) ChannelBits {
	switch n {
	case 1:
		return Bits1
	case 2:
		return Bits2
	case 4:
		return Bits4
	default:
		return Bits8
	}
}

// Image is the in-memory image descriptor spec.md §3 calls the "image
// descriptor": dimensions, channel order, palette bit-depth, the palette
// itself, and the arithmetic-coded payload. It is owned by the caller and
// has no finalizer; Free merely clears Payload for parity with the
// explicit-ownership model spec.md §6 describes.
type Image struct {
	Width, Height int
	ChannelOrder  ChannelOrder
	ChannelBits   ChannelBits
	Palette       *palette.Palette
	Payload       []byte
}
