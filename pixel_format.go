// pixel_format.go - Source pixel format to texture transfer conversion

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
	"fmt"
)

// TransferLayout is the component order of uploaded pixel data. Values match
// the OpenGL enums so the GL device can pass them straight through.
type TransferLayout uint32

const (
	TransferLayoutRGB  TransferLayout = 0x1907 // GL_RGB
	TransferLayoutRGBA TransferLayout = 0x1908 // GL_RGBA
	TransferLayoutBGR  TransferLayout = 0x80E0 // GL_BGR
)

func (l TransferLayout) String() string {
	switch l {
	case TransferLayoutRGB:
		return "RGB"
	case TransferLayoutRGBA:
		return "RGBA"
	case TransferLayoutBGR:
		return "BGR"
	}
	return fmt.Sprintf("TransferLayout(0x%04X)", uint32(l))
}

// Components returns the number of color channels in the layout.
func (l TransferLayout) Components() int {
	if l == TransferLayoutRGBA {
		return 4
	}
	return 3
}

// TransferType is the component storage type of uploaded pixel data.
type TransferType uint32

const (
	TransferTypeUnsignedByte TransferType = 0x1401 // GL_UNSIGNED_BYTE
	TransferTypeUint8888     TransferType = 0x8035 // GL_UNSIGNED_INT_8_8_8_8
	TransferTypeUshort4444   TransferType = 0x8033 // GL_UNSIGNED_SHORT_4_4_4_4
	TransferTypeUshort5551   TransferType = 0x8034 // GL_UNSIGNED_SHORT_5_5_5_1
	TransferTypeUshort565    TransferType = 0x8363 // GL_UNSIGNED_SHORT_5_6_5
)

func (t TransferType) String() string {
	switch t {
	case TransferTypeUnsignedByte:
		return "UNSIGNED_BYTE"
	case TransferTypeUint8888:
		return "UNSIGNED_INT_8_8_8_8"
	case TransferTypeUshort4444:
		return "UNSIGNED_SHORT_4_4_4_4"
	case TransferTypeUshort5551:
		return "UNSIGNED_SHORT_5_5_5_1"
	case TransferTypeUshort565:
		return "UNSIGNED_SHORT_5_6_5"
	}
	return fmt.Sprintf("TransferType(0x%04X)", uint32(t))
}

// TransferDescriptor tells a device how to interpret uploaded pixel bytes.
type TransferDescriptor struct {
	Internal TransferLayout // storage layout of the texture
	Layout   TransferLayout // component order of the source data
	Type     TransferType
}

// Components is the number of channels carried by the source data.
func (d TransferDescriptor) Components() int {
	return d.Layout.Components()
}

// BitsPerPixel is the size of one source pixel.
func (d TransferDescriptor) BitsPerPixel() int {
	switch d.Type {
	case TransferTypeUint8888:
		return 32
	case TransferTypeUshort565, TransferTypeUshort5551, TransferTypeUshort4444:
		return 16
	case TransferTypeUnsignedByte:
		return 8 * d.Components()
	}
	return 0
}

func (d TransferDescriptor) BytesPerPixel() int {
	return d.BitsPerPixel() / 8
}

// solidColorTransfer is what a color fill uploads: three bytes in R,G,B order.
var solidColorTransfer = TransferDescriptor{
	Internal: TransferLayoutRGB,
	Layout:   TransferLayoutRGB,
	Type:     TransferTypeUnsignedByte,
}

// TransferDescriptorFor maps an emulated pixel format to its transfer
// descriptor. The format set is closed; any other code means the register
// decoder and this table disagree, which is fatal.
func TransferDescriptorFor(format PixelFormat) TransferDescriptor {
	switch format {
	case PixelFormatRGBA8:
		return TransferDescriptor{Internal: TransferLayoutRGBA, Layout: TransferLayoutRGBA, Type: TransferTypeUint8888}
	case PixelFormatRGB8:
		// Stored as B,G,R bytes in memory. UNSIGNED_BYTE is byte order,
		// unlike the packed types below which are little-endian words.
		return TransferDescriptor{Internal: TransferLayoutRGB, Layout: TransferLayoutBGR, Type: TransferTypeUnsignedByte}
	case PixelFormatRGB565:
		return TransferDescriptor{Internal: TransferLayoutRGB, Layout: TransferLayoutRGB, Type: TransferTypeUshort565}
	case PixelFormatRGB5A1:
		return TransferDescriptor{Internal: TransferLayoutRGBA, Layout: TransferLayoutRGBA, Type: TransferTypeUshort5551}
	case PixelFormatRGBA4:
		return TransferDescriptor{Internal: TransferLayoutRGBA, Layout: TransferLayoutRGBA, Type: TransferTypeUshort4444}
	}
	fatalf("unimplemented framebuffer pixel format %d", uint32(format))
	return TransferDescriptor{}
}

// DecodeRow converts count source pixels to 8-bit RGBA in dst. It is used by
// devices that cannot sample the packed formats directly. Packed words are
// little-endian, matching emulated memory rather than the host.
func (d TransferDescriptor) DecodeRow(dst, src []byte, count int) {
	le := binary.LittleEndian
	switch d.Type {
	case TransferTypeUint8888:
		// R lives in the most significant byte of the word.
		for i := range count {
			s := src[i*4 : i*4+4]
			o := dst[i*4 : i*4+4]
			o[0], o[1], o[2], o[3] = s[3], s[2], s[1], s[0]
		}
	case TransferTypeUnsignedByte:
		n := d.Components()
		for i := range count {
			s := src[i*n : i*n+n]
			o := dst[i*4 : i*4+4]
			switch d.Layout {
			case TransferLayoutBGR:
				o[0], o[1], o[2], o[3] = s[2], s[1], s[0], 0xFF
			case TransferLayoutRGBA:
				o[0], o[1], o[2], o[3] = s[0], s[1], s[2], s[3]
			default:
				o[0], o[1], o[2], o[3] = s[0], s[1], s[2], 0xFF
			}
		}
	case TransferTypeUshort565:
		for i := range count {
			p := le.Uint16(src[i*2:])
			o := dst[i*4 : i*4+4]
			o[0] = expand5(p >> 11)
			o[1] = expand6(p >> 5)
			o[2] = expand5(p)
			o[3] = 0xFF
		}
	case TransferTypeUshort5551:
		for i := range count {
			p := le.Uint16(src[i*2:])
			o := dst[i*4 : i*4+4]
			o[0] = expand5(p >> 11)
			o[1] = expand5(p >> 6)
			o[2] = expand5(p >> 1)
			o[3] = 0
			if p&1 != 0 {
				o[3] = 0xFF
			}
		}
	case TransferTypeUshort4444:
		for i := range count {
			p := le.Uint16(src[i*2:])
			o := dst[i*4 : i*4+4]
			o[0] = expand4(p >> 12)
			o[1] = expand4(p >> 8)
			o[2] = expand4(p >> 4)
			o[3] = expand4(p)
		}
	}
}

// Bit replication keeps full-scale values at 0xFF.
func expand4(v uint16) uint8 {
	v &= 0xF
	return uint8(v<<4 | v)
}

func expand5(v uint16) uint8 {
	v &= 0x1F
	return uint8(v<<3 | v>>2)
}

func expand6(v uint16) uint8 {
	v &= 0x3F
	return uint8(v<<2 | v>>4)
}

// encodePixel packs an 8-bit RGBA color into a source pixel of the given
// format. The emulated GPU side uses it to fill framebuffers.
func encodePixel(dst []byte, format PixelFormat, r, g, b, a uint8) {
	le := binary.LittleEndian
	switch format {
	case PixelFormatRGBA8:
		dst[0], dst[1], dst[2], dst[3] = a, b, g, r
	case PixelFormatRGB8:
		dst[0], dst[1], dst[2] = b, g, r
	case PixelFormatRGB565:
		le.PutUint16(dst, uint16(r>>3)<<11|uint16(g>>2)<<5|uint16(b>>3))
	case PixelFormatRGB5A1:
		var alpha uint16
		if a >= 0x80 {
			alpha = 1
		}
		le.PutUint16(dst, uint16(r>>3)<<11|uint16(g>>3)<<6|uint16(b>>3)<<1|alpha)
	case PixelFormatRGBA4:
		le.PutUint16(dst, uint16(r>>4)<<12|uint16(g>>4)<<8|uint16(b>>4)<<4|uint16(a>>4))
	}
}

// unpackAlignment is the GL default row alignment for client pixel data.
const unpackAlignment = 4

// UnpackRows decodes a width x height block laid out by the GL unpack rules
// (rows rowLength pixels apart when non-zero, each row 4 byte aligned) into
// RGBA8 rows dstStride bytes apart. It reports whether src was long enough.
func (d TransferDescriptor) UnpackRows(dst []byte, dstStride int, src []byte, width, height, rowLength int) bool {
	if width == 0 || height == 0 {
		return true
	}
	bpp := d.BytesPerPixel()
	rowPixels := width
	if rowLength > 0 {
		rowPixels = rowLength
	}
	rowBytes := (int64(rowPixels)*int64(bpp) + unpackAlignment - 1) &^ (unpackAlignment - 1)
	need := int64(height-1)*rowBytes + int64(width)*int64(bpp)
	if width < 0 || height < 0 || int64(len(src)) < need {
		return false
	}
	for row := range height {
		d.DecodeRow(dst[row*dstStride:], src[int64(row)*rowBytes:], width)
	}
	return true
}
