package container

import (
	"errors"

	"golang.org/x/exp/slices"

	"github.com/ENDESGA/pep/internal/bitio"
	"github.com/ENDESGA/pep/internal/palette"
	"github.com/ENDESGA/pep/internal/transform"
)

// ErrTruncated is returned when data is too short to even carry a flags
// byte. Once past that point every field is read through bitio.Reader,
// which tolerates truncation by zero-padding rather than erroring.
var ErrTruncated = errors.New("container: truncated frame")

// smallMax is the largest width or height the 1-byte dimension encoding can
// address; above it dimensions pack into the 3-byte large form.
const smallMax = 256

// largeMax is the largest width or height the 12-bit packed large form can
// address.
const largeMax = 4096

// Frame is the fully-decoded shape of one .pep container: everything the
// flags byte, dimensions, and palette section describe, plus the raw
// arithmetic-coded payload untouched.
type Frame struct {
	Width, Height int
	Order         transform.ChannelOrder
	ChannelBits   int // 1, 2, 4, or 8
	Palette       *palette.Palette
	Payload       []byte
}

// onlyRGB reports whether every live palette entry is fully opaque, the
// condition under which the alpha channel is dropped from the palette
// section entirely (spec.md §4.4).
func onlyRGB(pal *palette.Palette, order transform.ChannelOrder) bool {
	for i := 0; i < pal.Size; i++ {
		if !transform.IsOpaque(pal.Colors[i], order) {
			return false
		}
	}
	return true
}

// isBitmap reports whether pal is exactly the two-color {opaque black,
// opaque white} set the bitmap short-circuit recognises, in either entry
// order (spec.md §4.4, §8 — round-trip is modulo entry ordering).
func isBitmap(pal *palette.Palette, order transform.ChannelOrder) bool {
	if pal.Size != 2 {
		return false
	}
	black, white := transform.OpaqueBlack(order), transform.OpaqueWhite(order)
	entries := pal.Colors[:2]
	return slices.Equal(entries, []uint32{black, white}) || slices.Equal(entries, []uint32{white, black})
}

// ErrDimensionOverflow is returned when a frame's dimensions exceed what the
// large packed form can address (4096 on a side).
var ErrDimensionOverflow = errors.New("container: dimension exceeds 4096")

// Serialize encodes f into its wire form.
func Serialize(f *Frame) ([]byte, error) {
	if f.Width < 1 || f.Height < 1 || f.Width > largeMax || f.Height > largeMax {
		return nil, ErrDimensionOverflow
	}
	small := f.Width <= smallMax && f.Height <= smallMax
	rgbOnly := onlyRGB(f.Palette, f.Order)
	bitmap := isBitmap(f.Palette, f.Order)

	out := make([]byte, 0, len(f.Payload)+16)
	out = append(out, encodeFlags(f.Order, f.ChannelBits, small, rgbOnly, bitmap))
	out = appendDims(out, f.Width, f.Height, small)
	out = bitio.PutVarint(out, uint64(len(f.Payload)))

	if !bitmap {
		out = appendPalette(out, f.Palette, f.Order, f.ChannelBits, rgbOnly)
	}

	out = append(out, f.Payload...)
	return out, nil
}

// Deserialize parses a wire-form frame back into a Frame. Every field past
// the flags byte is read through a bounded reader: a truncated or corrupted
// tail yields zero-valued fields instead of an error, per spec.md §7.
func Deserialize(data []byte) (*Frame, error) {
	if len(data) < 1 {
		return nil, ErrTruncated
	}

	r := bitio.NewReader(data)
	order, channelBits, small, rgbOnly, bitmap := decodeFlags(r.NextByte())

	width, height := readDims(r, small)

	payloadSize := int(bitio.ReadVarint(r))

	var pal *palette.Palette
	if bitmap {
		pal = &palette.Palette{Size: 2}
		pal.Colors[0] = transform.OpaqueBlack(order)
		pal.Colors[1] = transform.OpaqueWhite(order)
	} else {
		pal = readPalette(r, order, channelBits, rgbOnly)
	}

	payload := r.ReadUpTo(payloadSize)

	return &Frame{
		Width:       width,
		Height:      height,
		Order:       order,
		ChannelBits: channelBits,
		Palette:     pal,
		Payload:     payload,
	}, nil
}

func appendDims(out []byte, width, height int, small bool) []byte {
	if small {
		return append(out, byte(width-1), byte(height-1))
	}
	val := (uint32(width-1)&0xFFF)<<12 | uint32(height-1)&0xFFF
	return append(out, byte(val>>16), byte(val>>8), byte(val))
}

func readDims(r *bitio.Reader, small bool) (width, height int) {
	if small {
		w, h := r.NextByte(), r.NextByte()
		return int(w) + 1, int(h) + 1
	}
	b0, b1, b2 := r.NextByte(), r.NextByte(), r.NextByte()
	val := uint32(b0)<<16 | uint32(b1)<<8 | uint32(b2)
	return int((val>>12)&0xFFF) + 1, int(val&0xFFF) + 1
}

// channelBytes returns px's bytes in stored positional order, dropping the
// alpha position when rgbOnly is set (spec.md §4.4's "3 bytes per entry if
// only_rgb, else 4, in stored channel order").
func channelBytes(px uint32, order transform.ChannelOrder, rgbOnly bool) []byte {
	all := [4]byte{byte(px), byte(px >> 8), byte(px >> 16), byte(px >> 24)}
	if !rgbOnly {
		return all[:]
	}
	alphaPos := alphaPosition(order)
	out := make([]byte, 0, 3)
	for i, b := range all {
		if i == alphaPos {
			continue
		}
		out = append(out, b)
	}
	return out
}

// alphaPosition returns the byte position the alpha channel occupies within
// a pixel stored in order o, derived from the public Channels/Assemble
// round-trip so container doesn't need an exported positions() from
// transform for this one internal helper.
func alphaPosition(o transform.ChannelOrder) int {
	probe := transform.Assemble(0, 0, 0, 0xFF, o)
	for i := 0; i < 4; i++ {
		if byte(probe>>uint(i*8)) == 0xFF {
			return i
		}
	}
	return 3
}

func appendPalette(out []byte, pal *palette.Palette, order transform.ChannelOrder, channelBits int, rgbOnly bool) []byte {
	size := pal.Size
	if size >= 256 {
		out = append(out, 0)
	} else {
		out = append(out, byte(size))
	}

	if channelBits == 8 {
		for i := 0; i < pal.Size; i++ {
			out = append(out, channelBytes(pal.Colors[i], order, rgbOnly)...)
		}
		return out
	}

	bp := &bitPacker{}
	for i := 0; i < pal.Size; i++ {
		for _, c := range channelBytes(pal.Colors[i], order, rgbOnly) {
			bp.writeBits(uint32(Quantize(c, channelBits)), channelBits)
		}
	}
	return append(out, bp.flush()...)
}

func readPalette(r *bitio.Reader, order transform.ChannelOrder, channelBits int, rgbOnly bool) *palette.Palette {
	pal := &palette.Palette{}
	n := int(r.NextByte())
	if n == 0 {
		n = 256
	}
	pal.Size = n

	channelsPerEntry := 4
	if rgbOnly {
		channelsPerEntry = 3
	}
	alphaPos := alphaPosition(order)

	assemble := func(vals []byte) uint32 {
		var all [4]byte
		if rgbOnly {
			vi := 0
			for i := 0; i < 4; i++ {
				if i == alphaPos {
					all[i] = 0xFF
					continue
				}
				all[i] = vals[vi]
				vi++
			}
		} else {
			copy(all[:], vals)
		}
		return uint32(all[0]) | uint32(all[1])<<8 | uint32(all[2])<<16 | uint32(all[3])<<24
	}

	if channelBits == 8 {
		for i := 0; i < n; i++ {
			pal.Colors[i] = assemble(r.ReadBytes(channelsPerEntry))
		}
		return pal
	}

	totalBits := n * channelsPerEntry * channelBits
	blob := r.ReadBytes((totalBits + 7) / 8)
	bu := &bitUnpacker{data: blob}
	for i := 0; i < n; i++ {
		vals := make([]byte, channelsPerEntry)
		for c := range vals {
			vals[c] = Upsample(byte(bu.readBits(channelBits)), channelBits)
		}
		pal.Colors[i] = assemble(vals)
	}
	return pal
}
