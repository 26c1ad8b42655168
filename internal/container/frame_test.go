package container_test

import (
	"testing"

	"github.com/ENDESGA/pep/internal/container"
	"github.com/ENDESGA/pep/internal/palette"
	"github.com/ENDESGA/pep/internal/transform"
)

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	pal := &palette.Palette{Size: 3}
	pal.Colors[0] = transform.Assemble(0x10, 0x20, 0x30, 0xFF, transform.RGBA)
	pal.Colors[1] = transform.Assemble(0x40, 0x50, 0x60, 0x80, transform.RGBA)
	pal.Colors[2] = transform.Assemble(0x70, 0x80, 0x90, 0x00, transform.RGBA)

	frame := &container.Frame{
		Width:       10,
		Height:      20,
		Order:       transform.RGBA,
		ChannelBits: 8,
		Palette:     pal,
		Payload:     []byte{0x01, 0x02, 0x03, 0x04, 0x05},
	}

	data, err := container.Serialize(frame)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	got, err := container.Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}

	if got.Width != frame.Width || got.Height != frame.Height {
		t.Fatalf("dims = %dx%d, want %dx%d", got.Width, got.Height, frame.Width, frame.Height)
	}
	if got.Order != frame.Order || got.ChannelBits != frame.ChannelBits {
		t.Fatalf("order/bits = %v/%d, want %v/%d", got.Order, got.ChannelBits, frame.Order, frame.ChannelBits)
	}
	if got.Palette.Size != pal.Size {
		t.Fatalf("palette size = %d, want %d", got.Palette.Size, pal.Size)
	}
	for i := 0; i < pal.Size; i++ {
		if got.Palette.Colors[i] != pal.Colors[i] {
			t.Errorf("palette[%d] = %#x, want %#x", i, got.Palette.Colors[i], pal.Colors[i])
		}
	}
	if len(got.Payload) != len(frame.Payload) {
		t.Fatalf("payload length = %d, want %d", len(got.Payload), len(frame.Payload))
	}
	for i := range frame.Payload {
		if got.Payload[i] != frame.Payload[i] {
			t.Errorf("payload[%d] = %#x, want %#x", i, got.Payload[i], frame.Payload[i])
		}
	}
}

func TestLargeDimensionRoundTrip(t *testing.T) {
	pal := &palette.Palette{Size: 1}
	pal.Colors[0] = transform.Assemble(1, 2, 3, 0xFF, transform.RGBA)

	frame := &container.Frame{
		Width:       4096,
		Height:      300,
		Order:       transform.RGBA,
		ChannelBits: 8,
		Palette:     pal,
	}

	data, err := container.Serialize(frame)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	got, err := container.Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if got.Width != 4096 || got.Height != 300 {
		t.Fatalf("dims = %dx%d, want 4096x300", got.Width, got.Height)
	}
}

func TestDimensionOverflowRejected(t *testing.T) {
	pal := &palette.Palette{Size: 1}
	frame := &container.Frame{Width: 4097, Height: 1, Palette: pal}
	if _, err := container.Serialize(frame); err == nil {
		t.Error("Serialize with width > 4096 should fail")
	}
}

func TestBitmapShortCircuit(t *testing.T) {
	pal := &palette.Palette{Size: 2}
	pal.Colors[0] = transform.OpaqueBlack(transform.RGBA)
	pal.Colors[1] = transform.OpaqueWhite(transform.RGBA)

	frame := &container.Frame{
		Width: 8, Height: 8, Order: transform.RGBA, ChannelBits: 8,
		Palette: pal, Payload: []byte{0xAB, 0xCD},
	}
	data, err := container.Serialize(frame)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	// No palette section present: the frame is flags(1) + dims(2) +
	// varint(1) + payload(2), with no palette size byte or entries.
	if len(data) != 6 {
		t.Fatalf("bitmap frame length = %d, want 6", len(data))
	}
	got, err := container.Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if got.Palette.Size != 2 {
		t.Fatalf("reconstructed palette size = %d, want 2", got.Palette.Size)
	}
	if got.Palette.Colors[0] != transform.OpaqueBlack(transform.RGBA) ||
		got.Palette.Colors[1] != transform.OpaqueWhite(transform.RGBA) {
		t.Error("bitmap reconstruction did not yield canonical black/white")
	}
}

func TestQuantizedPaletteRoundTripsLossily(t *testing.T) {
	pal := &palette.Palette{Size: 2}
	pal.Colors[0] = transform.Assemble(0x10, 0x10, 0x10, 0xFF, transform.RGBA)
	pal.Colors[1] = transform.Assemble(0xF0, 0xF0, 0xF0, 0xFF, transform.RGBA)

	frame := &container.Frame{
		Width: 4, Height: 4, Order: transform.RGBA, ChannelBits: 4,
		Palette: pal,
	}
	data, err := container.Serialize(frame)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	got, err := container.Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}

	// 0x1 upsamples to 0x11 and 0xF upsamples to 0xFF per the bit
	// replication rule.
	r, _, _, _ := transform.Channels(got.Palette.Colors[0], transform.RGBA)
	if r != 0x11 {
		t.Errorf("quantized channel 0x1 upsampled to %#x, want 0x11", r)
	}
	r, _, _, _ = transform.Channels(got.Palette.Colors[1], transform.RGBA)
	if r != 0xFF {
		t.Errorf("quantized channel 0xf upsampled to %#x, want 0xff", r)
	}
}

func TestTruncatedPaletteSectionNeverPanics(t *testing.T) {
	pal := &palette.Palette{Size: 5}
	for i := 0; i < pal.Size; i++ {
		pal.Colors[i] = transform.Assemble(byte(i*10), byte(i*20), byte(i*30), 0x80, transform.RGBA)
	}
	frame := &container.Frame{
		Width: 16, Height: 16, Order: transform.RGBA, ChannelBits: 4,
		Palette: pal, Payload: []byte{0x01, 0x02, 0x03},
	}
	full, err := container.Serialize(frame)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Deserialize on truncated palette section panicked: %v", r)
		}
	}()
	for n := 1; n < len(full); n++ {
		_, _ = container.Deserialize(full[:n])
	}
}

func TestTruncatedFrameNeverPanics(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Deserialize on truncated input panicked: %v", r)
		}
	}()
	for n := 0; n < 6; n++ {
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = 0xFF
		}
		_, _ = container.Deserialize(buf)
	}
}
