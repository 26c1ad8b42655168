package palette

import "github.com/ENDESGA/pep/internal/bitio"

// BitsPerIndex returns the index width spec.md §4.1 pins: ceil(log2(max(size,2))),
// capped at 8.
func BitsPerIndex(size int) int {
	return bitio.BitsForCount(size)
}

// IndicesPerByte returns how many fixed-width indices fit LSB-first into a
// single packed byte.
func IndicesPerByte(bitsPerIndex int) int {
	return 8 / bitsPerIndex
}

// Pack walks pixels once more (no predecessor-skip this time — every pixel
// is looked up) and packs indicesPerByte indices LSB-first into each byte,
// zero-padding the final partial byte above the last real index.
func Pack(pixels []uint32, pal *Palette) (packed []byte, bitsPerIndex, indicesPerByte int) {
	bitsPerIndex = BitsPerIndex(pal.Size)
	indicesPerByte = IndicesPerByte(bitsPerIndex)

	n := len(pixels)
	packed = make([]byte, 0, (n+indicesPerByte-1)/indicesPerByte)

	var cur byte
	var filled int
	for _, px := range pixels {
		idx := pal.IndexOf(px)
		cur |= byte(idx) << uint(filled*bitsPerIndex)
		filled++
		if filled == indicesPerByte {
			packed = append(packed, cur)
			cur, filled = 0, 0
		}
	}
	if filled > 0 {
		packed = append(packed, cur)
	}

	return packed, bitsPerIndex, indicesPerByte
}

// Unpack reverses Pack, stopping at exactly totalPixels entries and
// discarding any unused trailing index slots in the final packed byte
// (spec.md §4.1).
func Unpack(packed []byte, bitsPerIndex, indicesPerByte, totalPixels int) []int {
	out := make([]int, totalPixels)
	mask := byte(1<<uint(bitsPerIndex) - 1)

	pos := 0
	for _, b := range packed {
		for slot := 0; slot < indicesPerByte && pos < totalPixels; slot++ {
			out[pos] = int((b >> uint(slot*bitsPerIndex)) & mask)
			pos++
		}
		if pos >= totalPixels {
			break
		}
	}
	// A truncated packed stream leaves the remainder at index 0 (the
	// zero value of out), matching the bounded-read requirement in
	// spec.md §7.
	return out
}
