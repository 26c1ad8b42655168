package pep

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CompressionStats summarizes one compressed image for diagnostics and
// reporting — not part of the core codec, mirroring the teacher's basic
// usage example's hand-rolled ratio printout.
type CompressionStats struct {
	Width, Height  int
	PaletteEntries int
	RawBytes       int
	PayloadBytes   int
	Ratio          float64
}

// Stats computes size and ratio diagnostics for img. RawBytes assumes a
// naive 4-bytes-per-pixel source representation, the usual baseline this
// class of palette codec reports against.
func Stats(img *Image) (CompressionStats, error) {
	if img == nil || img.Palette == nil {
		return CompressionStats{}, ErrNilImage
	}
	raw := img.Width * img.Height * 4
	payload := len(img.Payload)

	ratio := 0.0
	if payload > 0 {
		ratio = float64(raw) / float64(payload)
	}

	return CompressionStats{
		Width:          img.Width,
		Height:         img.Height,
		PaletteEntries: img.Palette.Size,
		RawBytes:       raw,
		PayloadBytes:   payload,
		Ratio:          ratio,
	}, nil
}

// String renders s with locale-aware thousands separators, e.g.
// "1,048,576 -> 312 bytes (3,360.82x)".
func (s CompressionStats) String() string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%d -> %d bytes (%.2fx)", s.RawBytes, s.PayloadBytes, s.Ratio)
}
