// Package container implements the compact frame format spec.md §4.4 pins:
// a one-byte flags header, a small/large dimension encoding, a varint
// payload size, an optional bit-packed palette, and the raw coded payload.
package container

import "github.com/ENDESGA/pep/internal/transform"

// Flags byte layout (spec.md §4.4):
//
//	bits 0-1  channel order            (transform.ChannelOrder)
//	bits 2-3  channel bit-depth tag     (0=1bit 1=2bit 2=4bit 3=8bit)
//	bit  4    is_small                  (1-byte dimensions vs. packed 3-byte)
//	bit  5    only_rgb                  (palette carries no alpha channel)
//	bit  6    is_bitmap                 (2-color black/white short-circuit)
//	bit  7    reserved, always 0
const (
	flagOrderMask = 0x03
	flagBitsShift = 2
	flagBitsMask  = 0x03 << flagBitsShift
	flagSmall     = 1 << 4
	flagOnlyRGB   = 1 << 5
	flagBitmap    = 1 << 6
)

// bitsTag maps a channel bit-depth to its 2-bit flags encoding and back.
func bitsTag(bits int) byte {
	switch bits {
	case 1:
		return 0
	case 2:
		return 1
	case 4:
		return 2
	default:
		return 3
	}
}

func tagBits(tag byte) int {
	switch tag {
	case 0:
		return 1
	case 1:
		return 2
	case 2:
		return 4
	default:
		return 8
	}
}

func encodeFlags(order transform.ChannelOrder, channelBits int, small, onlyRGB, bitmap bool) byte {
	f := byte(order) & flagOrderMask
	f |= bitsTag(channelBits) << flagBitsShift
	if small {
		f |= flagSmall
	}
	if onlyRGB {
		f |= flagOnlyRGB
	}
	if bitmap {
		f |= flagBitmap
	}
	return f
}

func decodeFlags(f byte) (order transform.ChannelOrder, channelBits int, small, onlyRGB, bitmap bool) {
	order = transform.ChannelOrder(f & flagOrderMask)
	channelBits = tagBits((f & flagBitsMask) >> flagBitsShift)
	small = f&flagSmall != 0
	onlyRGB = f&flagOnlyRGB != 0
	bitmap = f&flagBitmap != 0
	return
}
