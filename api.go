package pep

import (
	"fmt"

	"github.com/ENDESGA/pep/internal/arith"
	"github.com/ENDESGA/pep/internal/container"
	"github.com/ENDESGA/pep/internal/palette"
	"github.com/ENDESGA/pep/internal/ppm"
	"github.com/ENDESGA/pep/internal/transform"
)

// Compress builds the palette, packs pixels into fixed-width indices, and
// runs them through the PPM-order-2 arithmetic coder (spec.md §2 data flow).
// pixels must have exactly width*height entries in inFormat's channel
// layout. channelBits controls the palette's stored precision; Bits8 is
// lossless, anything narrower quantizes the palette (spec.md's only lossy
// mode).
func Compress(pixels []uint32, width, height int, inFormat ChannelOrder, channelBits ChannelBits) (*Image, error) {
	if len(pixels) == 0 {
		return nil, ErrNilPixels
	}
	if width <= 0 || height <= 0 {
		return nil, ErrZeroDimension
	}
	if len(pixels) != width*height {
		return nil, ErrPixelCountMismatch
	}
	if width > 4096 || height > 4096 {
		return nil, ErrDimensionOverflow
	}
	if channelBits > Bits8 {
		return nil, ErrUnsupportedChannelBits
	}

	pal := palette.Build(pixels)
	// Indices are resolved against the exact colors before the palette is
	// quantized, so each pixel keeps its own entry.
	packed, _, _ := palette.Pack(pixels, pal)
	if bits := channelBits.Count(); bits < 8 {
		quantizePalette(pal, inFormat, bits)
	}

	model := ppm.NewModel(pal.Size)
	enc := arith.NewEncoder()
	for _, b := range packed {
		model.EncodeSymbol(enc, b)
	}
	payload := enc.Finish()

	return &Image{
		Width:        width,
		Height:       height,
		ChannelOrder: inFormat,
		ChannelBits:  channelBits,
		Palette:      pal,
		Payload:      payload,
	}, nil
}

// Decompress runs the PPM+AC decoder, unpacks indices, resolves them
// through the palette, and applies the pixel transforms spec.md §4.5
// describes: reformat to outFormat, optional first-index transparency, and
// optional premultiplied-alpha scaling.
func Decompress(img *Image, outFormat ChannelOrder, firstColorTransparent, preMultiply bool) ([]uint32, error) {
	if img == nil || img.Palette == nil {
		return nil, ErrNilImage
	}

	totalPixels := img.Width * img.Height
	bitsPerIndex := palette.BitsPerIndex(img.Palette.Size)
	indicesPerByte := palette.IndicesPerByte(bitsPerIndex)
	numSymbols := (totalPixels + indicesPerByte - 1) / indicesPerByte

	model := ppm.NewModel(img.Palette.Size)
	dec := arith.NewDecoder(img.Payload)
	packed := make([]byte, numSymbols)
	for i := range packed {
		packed[i] = model.DecodeSymbol(dec)
	}

	indices := palette.Unpack(packed, bitsPerIndex, indicesPerByte, totalPixels)

	colors := img.Palette.Colors
	if firstColorTransparent && img.Palette.Size > 0 {
		colors[0] = transform.WithAlpha(colors[0], img.ChannelOrder, 0)
	}

	out := make([]uint32, totalPixels)
	for i, idx := range indices {
		color := uint32(0)
		if idx >= 0 && idx < img.Palette.Size {
			color = colors[idx]
		}
		color = transform.Reformat(color, img.ChannelOrder, outFormat)
		if preMultiply {
			color = transform.Premultiply(color, outFormat)
		}
		out[i] = color
	}

	return out, nil
}

// Free releases img's payload. Go's garbage collector reclaims the memory
// regardless; Free exists so callers following the original C-shaped
// lifecycle (spec.md §6) have an explicit release point.
func Free(img *Image) {
	if img == nil {
		return
	}
	img.Payload = nil
}

// Serialize encodes img into its wire form (spec.md §4.4).
func Serialize(img *Image) ([]byte, error) {
	if img == nil || img.Palette == nil {
		return nil, ErrNilImage
	}
	frame := &container.Frame{
		Width:       img.Width,
		Height:      img.Height,
		Order:       img.ChannelOrder,
		ChannelBits: img.ChannelBits.Count(),
		Palette:     img.Palette,
		Payload:     img.Payload,
	}
	data, err := container.Serialize(frame)
	if err != nil {
		return nil, fmt.Errorf("pep: serialize: %w", err)
	}
	return data, nil
}

// Deserialize parses a wire-form frame back into an Image. A truncated or
// corrupted buffer never panics (spec.md §7); short of a missing flags
// byte, fields simply decode to their zero-padded values.
func Deserialize(data []byte) (*Image, error) {
	frame, err := container.Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncatedFrame, err)
	}
	return &Image{
		Width:        frame.Width,
		Height:       frame.Height,
		ChannelOrder: frame.Order,
		ChannelBits:  channelBitsFromCount(frame.ChannelBits),
		Palette:      frame.Palette,
		Payload:      frame.Payload,
	}, nil
}

// quantizePalette narrows every live entry's channels to bits-per-channel
// precision and immediately upsamples back to 8 bits, so the in-memory
// palette already holds the lossy colors a serialize/deserialize round
// trip would produce.
func quantizePalette(pal *palette.Palette, order ChannelOrder, bits int) {
	for i := 0; i < pal.Size; i++ {
		r, g, b, a := transform.Channels(pal.Colors[i], order)
		r = container.Upsample(container.Quantize(r, bits), bits)
		g = container.Upsample(container.Quantize(g, bits), bits)
		b = container.Upsample(container.Quantize(b, bits), bits)
		a = container.Upsample(container.Quantize(a, bits), bits)
		pal.Colors[i] = transform.Assemble(r, g, b, a, order)
	}
}
