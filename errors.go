// Package pep implements the .pep lossless indexed-palette image codec: a
// palette/index-packing pipeline feeding an adaptive arithmetic-coded
// order-2 PPM entropy stage, framed in a compact binary container.
package pep

import "errors"

var (
	// ErrNilPixels is returned when Compress is called with a nil or empty
	// pixel buffer.
	ErrNilPixels = errors.New("pep: nil pixel buffer")

	// ErrZeroDimension is returned when width or height is not positive.
	ErrZeroDimension = errors.New("pep: width and height must be positive")

	// ErrPixelCountMismatch is returned when len(pixels) != width*height.
	ErrPixelCountMismatch = errors.New("pep: pixel count does not match width*height")

	// ErrUnsupportedChannelBits is returned by Compress when a ChannelBits
	// value other than the four supported depths is requested.
	ErrUnsupportedChannelBits = errors.New("pep: unsupported channel bit depth")

	// ErrDimensionOverflow is returned when width or height exceeds what
	// the container format can address (4096 per side).
	ErrDimensionOverflow = errors.New("pep: dimension exceeds 4096")

	// ErrTruncatedFrame is returned when a byte stream is empty, too short
	// to contain even the flags byte. A stream cut off after that point
	// still deserializes, with the missing fields zero-padded.
	ErrTruncatedFrame = errors.New("pep: truncated frame")

	// ErrNilImage is returned when Decompress, Serialize, or Stats is
	// called with a nil *Image or one without a palette.
	ErrNilImage = errors.New("pep: nil image")
)
