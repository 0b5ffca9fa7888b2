// gpu_regs.go - Framebuffer and color fill register decoding

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// PixelFormat is the 3-bit color_format field of a framebuffer config.
type PixelFormat uint32

const (
	PixelFormatRGBA8 PixelFormat = iota
	PixelFormatRGB8
	PixelFormatRGB565
	PixelFormatRGB5A1
	PixelFormatRGBA4
)

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRGBA8:
		return "RGBA8"
	case PixelFormatRGB8:
		return "RGB8"
	case PixelFormatRGB565:
		return "RGB565"
	case PixelFormatRGB5A1:
		return "RGB5A1"
	case PixelFormatRGBA4:
		return "RGBA4"
	}
	return fmt.Sprintf("PixelFormat(%d)", uint32(f))
}

// BytesPerPixel returns the storage size of one pixel, or 0 for codes the
// hardware does not define.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case PixelFormatRGBA8:
		return 4
	case PixelFormatRGB8:
		return 3
	case PixelFormatRGB565, PixelFormatRGB5A1, PixelFormatRGBA4:
		return 2
	}
	return 0
}

var (
	ErrStrideNotPixelAligned = errors.New("stride is not a whole number of pixels")
	ErrRowLengthAlignment    = errors.New("pixel row length is not a multiple of 4")
	ErrStrideTooShort        = errors.New("pixel row length is shorter than the framebuffer width")
	ErrRegisterBlockShort    = errors.New("register block not mapped")
)

// FramebufferConfig is one screen's framebuffer register block.
type FramebufferConfig struct {
	Width         uint32
	Height        uint32
	AddressLeft1  uint32
	AddressLeft2  uint32
	AddressRight1 uint32
	AddressRight2 uint32
	Format        PixelFormat
	SecondActive  bool
	Stride        uint32
}

// decodeFramebufferConfig decodes a raw GPU_FRAMEBUFFER_SIZE byte block.
func decodeFramebufferConfig(block []byte) (FramebufferConfig, error) {
	if len(block) < GPU_FRAMEBUFFER_SIZE {
		return FramebufferConfig{}, ErrRegisterBlockShort
	}
	le := binary.LittleEndian
	size := le.Uint32(block[FB_REG_SIZE:])
	return FramebufferConfig{
		Width:         size & 0xFFFF,
		Height:        size >> 16,
		AddressLeft1:  le.Uint32(block[FB_REG_ADDR_LEFT1:]),
		AddressLeft2:  le.Uint32(block[FB_REG_ADDR_LEFT2:]),
		AddressRight1: le.Uint32(block[FB_REG_ADDR_RIGHT1:]),
		AddressRight2: le.Uint32(block[FB_REG_ADDR_RIGHT2:]),
		Format:        PixelFormat(le.Uint32(block[FB_REG_FORMAT:]) & FB_REG_FORMAT_MASK),
		SecondActive:  le.Uint32(block[FB_REG_ACTIVE:])&FB_REG_ACTIVE_SECOND != 0,
		Stride:        le.Uint32(block[FB_REG_STRIDE:]),
	}, nil
}

// encode writes the config back into a register block. Used by the
// emulated GPU side and by tests.
func (c FramebufferConfig) encode(block []byte) {
	le := binary.LittleEndian
	le.PutUint32(block[FB_REG_SIZE:], c.Width&0xFFFF|c.Height<<16)
	le.PutUint32(block[FB_REG_ADDR_LEFT1:], c.AddressLeft1)
	le.PutUint32(block[FB_REG_ADDR_LEFT2:], c.AddressLeft2)
	le.PutUint32(block[FB_REG_ADDR_RIGHT1:], c.AddressRight1)
	le.PutUint32(block[FB_REG_ADDR_RIGHT2:], c.AddressRight2)
	le.PutUint32(block[FB_REG_FORMAT:], uint32(c.Format)&FB_REG_FORMAT_MASK)
	var active uint32
	if c.SecondActive {
		active = FB_REG_ACTIVE_SECOND
	}
	le.PutUint32(block[FB_REG_ACTIVE:], active)
	le.PutUint32(block[FB_REG_STRIDE:], c.Stride)
}

// ActiveAddress returns the physical address of the buffer being scanned out.
func (c FramebufferConfig) ActiveAddress() uint32 {
	if c.SecondActive {
		return c.AddressLeft2
	}
	return c.AddressLeft1
}

// PixelStride returns the row length in pixels.
func (c FramebufferConfig) PixelStride() int {
	bpp := c.Format.BytesPerPixel()
	if bpp == 0 {
		return 0
	}
	return int(uint64(c.Stride) / uint64(bpp))
}

// ByteLength is the number of bytes an upload reads from the source buffer.
// Guest registers can describe far more than fits in an int on 32-bit hosts.
func (c FramebufferConfig) ByteLength() uint64 {
	if c.Width == 0 || c.Height == 0 {
		return 0
	}
	return uint64(c.Height-1)*uint64(c.Stride) + uint64(c.Width)*uint64(c.Format.BytesPerPixel())
}

// Validate checks the stride contract: the stride must be a whole number of
// pixels, that row length must be a multiple of 4 (default unpack alignment)
// and it must cover the framebuffer width.
func (c FramebufferConfig) Validate() error {
	bpp := c.Format.BytesPerPixel()
	if bpp == 0 {
		return fmt.Errorf("framebuffer format %v: %w", c.Format, ErrStrideNotPixelAligned)
	}
	stride := uint64(c.Stride)
	if stride%uint64(bpp) != 0 {
		return fmt.Errorf("stride %d with %d bytes per pixel: %w", c.Stride, bpp, ErrStrideNotPixelAligned)
	}
	pixelStride := stride / uint64(bpp)
	if pixelStride%4 != 0 {
		return fmt.Errorf("pixel stride %d: %w", pixelStride, ErrRowLengthAlignment)
	}
	if pixelStride < uint64(c.Width) {
		return fmt.Errorf("pixel stride %d, width %d: %w", pixelStride, c.Width, ErrStrideTooShort)
	}
	return nil
}

// ColorFill is the LCD solid color override for one screen.
type ColorFill struct {
	Enabled bool
	R, G, B uint8
}

func decodeColorFill(raw uint32) ColorFill {
	return ColorFill{
		Enabled: raw&COLOR_FILL_ENABLE_BIT != 0,
		R:       uint8(raw >> COLOR_FILL_R_SHIFT),
		G:       uint8(raw >> COLOR_FILL_G_SHIFT),
		B:       uint8(raw >> COLOR_FILL_B_SHIFT),
	}
}

func (f ColorFill) raw() uint32 {
	v := uint32(f.R)<<COLOR_FILL_R_SHIFT | uint32(f.G)<<COLOR_FILL_G_SHIFT | uint32(f.B)<<COLOR_FILL_B_SHIFT
	if f.Enabled {
		v |= COLOR_FILL_ENABLE_BIT
	}
	return v
}

// readFramebufferConfig fetches and decodes a screen's register block through
// the memory collaborator.
func readFramebufferConfig(mem MemoryAccessor, screen int) (FramebufferConfig, error) {
	return decodeFramebufferConfig(mem.ReadBytes(framebufferRegAddr(screen), GPU_FRAMEBUFFER_SIZE))
}

func readColorFill(mem MemoryAccessor, screen int) (ColorFill, error) {
	word := mem.ReadBytes(colorFillRegAddr(screen), 4)
	if len(word) < 4 {
		return ColorFill{}, ErrRegisterBlockShort
	}
	return decodeColorFill(binary.LittleEndian.Uint32(word)), nil
}
