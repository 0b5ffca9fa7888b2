// gpu_regs_test.go - Tests for framebuffer register decoding

package main

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestDecodeFramebufferConfig_RawBlock(t *testing.T) {
	block := make([]byte, GPU_FRAMEBUFFER_SIZE)
	le := binary.LittleEndian
	le.PutUint32(block[0x5C:], 240|400<<16)
	le.PutUint32(block[0x68:], 0x18000000)
	le.PutUint32(block[0x6C:], 0x18046500)
	le.PutUint32(block[0x70:], 0xFFFFFF02) // only bits 0-2 are the format
	le.PutUint32(block[0x78:], 0x00000001)
	le.PutUint32(block[0x90:], 480)
	le.PutUint32(block[0x94:], 0x1808CA00)
	le.PutUint32(block[0x98:], 0x180D2F00)

	cfg, err := decodeFramebufferConfig(block)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := FramebufferConfig{
		Width:         240,
		Height:        400,
		AddressLeft1:  0x18000000,
		AddressLeft2:  0x18046500,
		AddressRight1: 0x1808CA00,
		AddressRight2: 0x180D2F00,
		Format:        PixelFormatRGB565,
		SecondActive:  true,
		Stride:        480,
	}
	if cfg != want {
		t.Fatalf("decoded %+v\nwant    %+v", cfg, want)
	}

	round := make([]byte, GPU_FRAMEBUFFER_SIZE)
	cfg.encode(round)
	again, _ := decodeFramebufferConfig(round)
	if again != cfg {
		t.Fatalf("encode/decode mismatch: %+v", again)
	}
}

func TestDecodeFramebufferConfig_ShortBlock(t *testing.T) {
	_, err := decodeFramebufferConfig(make([]byte, 0x60))
	if !errors.Is(err, ErrRegisterBlockShort) {
		t.Fatalf("err = %v, want ErrRegisterBlockShort", err)
	}
}

func TestFramebufferConfig_ActiveAddress(t *testing.T) {
	cfg := FramebufferConfig{AddressLeft1: 0x1000, AddressLeft2: 0x2000}
	if got := cfg.ActiveAddress(); got != 0x1000 {
		t.Fatalf("first buffer active: got 0x%X", got)
	}
	cfg.SecondActive = true
	if got := cfg.ActiveAddress(); got != 0x2000 {
		t.Fatalf("second buffer active: got 0x%X", got)
	}
}

func TestFramebufferConfig_Validate_Stride(t *testing.T) {
	cfg := FramebufferConfig{Width: 400, Height: 240, Format: PixelFormatRGBA8, Stride: 1600}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("stride 1600: %v", err)
	}
	if got := cfg.PixelStride(); got != 400 {
		t.Fatalf("pixel stride = %d, want 400", got)
	}

	cfg.Stride = 1602
	if err := cfg.Validate(); !errors.Is(err, ErrStrideNotPixelAligned) {
		t.Fatalf("stride 1602: err = %v, want ErrStrideNotPixelAligned", err)
	}
}

func TestFramebufferConfig_Validate_RowLengthAndWidth(t *testing.T) {
	tests := []struct {
		name string
		cfg  FramebufferConfig
		want error
	}{
		{"row length not multiple of 4", FramebufferConfig{Width: 240, Format: PixelFormatRGB565, Stride: 242 * 2}, ErrRowLengthAlignment},
		{"row shorter than width", FramebufferConfig{Width: 240, Format: PixelFormatRGB565, Stride: 236 * 2}, ErrStrideTooShort},
		{"padded rows", FramebufferConfig{Width: 240, Format: PixelFormatRGB565, Stride: 256 * 2}, nil},
		{"RGB8 exact", FramebufferConfig{Width: 240, Format: PixelFormatRGB8, Stride: 240 * 3}, nil},
		{"stride above int32 range", FramebufferConfig{Width: 240, Format: PixelFormatRGBA8, Stride: 0xFFFFFFF0}, nil},
		{"odd stride above int32 range", FramebufferConfig{Width: 240, Format: PixelFormatRGB565, Stride: 0xFFFFFFFF}, ErrStrideNotPixelAligned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !errors.Is(err, tt.want) || (tt.want == nil && err != nil) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFramebufferConfig_ByteLength(t *testing.T) {
	cfg := FramebufferConfig{Width: 240, Height: 400, Format: PixelFormatRGB565, Stride: 512}
	if got, want := cfg.ByteLength(), uint64(399*512+240*2); got != want {
		t.Fatalf("ByteLength = %d, want %d", got, want)
	}
	huge := FramebufferConfig{Width: 240, Height: 0xFFFF, Format: PixelFormatRGBA8, Stride: 1 << 20}
	if got, want := huge.ByteLength(), uint64(0xFFFE)<<20+960; got != want {
		t.Fatalf("ByteLength = %d, want %d", got, want)
	}
	if (FramebufferConfig{}).ByteLength() != 0 {
		t.Fatal("empty config should read nothing")
	}
}

func TestColorFill_Decode(t *testing.T) {
	fill := decodeColorFill(0x01332211)
	want := ColorFill{Enabled: true, R: 0x11, G: 0x22, B: 0x33}
	if fill != want {
		t.Fatalf("decoded %+v, want %+v", fill, want)
	}
	if fill.raw() != 0x01332211 {
		t.Fatalf("raw = 0x%08X", fill.raw())
	}
	if decodeColorFill(0x00FFFFFF).Enabled {
		t.Fatal("enable bit clear but fill enabled")
	}
}
