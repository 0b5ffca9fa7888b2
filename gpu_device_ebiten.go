//go:build !headless

// gpu_device_ebiten.go - Ebiten graphics device

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
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

func init() {
	registerDevice(VIDEO_BACKEND_EBITEN, "device: ebiten", func() (GraphicsDevice, error) {
		return NewEbitenDevice(), nil
	})
}

// EbitenDevice implements GraphicsDevice on ebiten images. Packed formats are
// decoded to RGBA on upload since ebiten textures are always 8-bit RGBA. All
// calls must come from ebiten's Draw.
type EbitenDevice struct {
	textures   map[TextureHandle]*ebiten.Image
	nextHandle TextureHandle
	bound      TextureHandle
	rowLength  int

	viewport   image.Rectangle
	clearColor color.RGBA
	projection Mat3x2
	target     *ebiten.Image

	staging []byte
	errs    []error
}

func NewEbitenDevice() *EbitenDevice {
	return &EbitenDevice{
		textures:   make(map[TextureHandle]*ebiten.Image),
		projection: Mat3x2{A: 1, E: 1},
	}
}

func (d *EbitenDevice) Init() error { return nil }

func (d *EbitenDevice) Version() string {
	return fmt.Sprintf("ebiten (%s)", ebitenGraphicsLibrary())
}

func ebitenGraphicsLibrary() string {
	var info ebiten.DebugInfo
	ebiten.ReadDebugInfo(&info)
	return info.GraphicsLibrary.String()
}

func (d *EbitenDevice) Release() {
	for h, img := range d.textures {
		if img != nil {
			img.Deallocate()
		}
		delete(d.textures, h)
	}
	d.bound = 0
}

// SetTarget selects the image the next frame is drawn into, normally the
// screen handed to Draw.
func (d *EbitenDevice) SetTarget(img *ebiten.Image) {
	d.target = img
}

func (d *EbitenDevice) fail(class error, format string, args ...any) {
	d.errs = append(d.errs, fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), class))
}

func (d *EbitenDevice) Error() error {
	if len(d.errs) == 0 {
		return nil
	}
	err := d.errs[0]
	d.errs = d.errs[1:]
	return err
}

func (d *EbitenDevice) GenTexture() TextureHandle {
	d.nextHandle++
	d.textures[d.nextHandle] = nil
	return d.nextHandle
}

func (d *EbitenDevice) DeleteTexture(h TextureHandle) {
	if img := d.textures[h]; img != nil {
		img.Deallocate()
	}
	delete(d.textures, h)
	if d.bound == h {
		d.bound = 0
	}
}

func (d *EbitenDevice) BindTexture(h TextureHandle) {
	if h != 0 {
		if _, ok := d.textures[h]; !ok {
			d.fail(ErrInvalidValue, "bind of unknown texture %d", h)
			return
		}
	}
	d.bound = h
}

func (d *EbitenDevice) SetUnpackRowLength(pixels int) {
	if pixels < 0 {
		d.fail(ErrInvalidValue, "unpack row length %d", pixels)
		return
	}
	d.rowLength = pixels
}

// decode converts client pixels to opaque RGBA in the staging buffer.
func (d *EbitenDevice) decode(desc TransferDescriptor, pixels []byte, width, height int) ([]byte, bool) {
	n := width * height * 4
	if cap(d.staging) < n {
		d.staging = make([]byte, n)
	}
	buf := d.staging[:n]
	if !desc.UnpackRows(buf, width*4, pixels, width, height, d.rowLength) {
		d.fail(ErrInvalidOperation, "pixel data of %d bytes too short for %dx%d upload", len(pixels), width, height)
		return nil, false
	}
	for i := 3; i < n; i += 4 {
		buf[i] = 0xFF
	}
	return buf, true
}

func (d *EbitenDevice) TexImage2D(internal TransferLayout, width, height int, layout TransferLayout, typ TransferType, pixels []byte) {
	if d.bound == 0 {
		d.fail(ErrInvalidOperation, "TexImage2D with no texture bound")
		return
	}
	if width < 0 || height < 0 {
		d.fail(ErrInvalidValue, "TexImage2D size %dx%d", width, height)
		return
	}
	desc := TransferDescriptor{Internal: internal, Layout: layout, Type: typ}
	if desc.BytesPerPixel() == 0 {
		d.fail(ErrInvalidEnum, "TexImage2D transfer %v/%v", layout, typ)
		return
	}

	if old := d.textures[d.bound]; old != nil {
		old.Deallocate()
	}
	d.textures[d.bound] = nil
	if width == 0 || height == 0 {
		return
	}

	img := ebiten.NewImage(width, height)
	if pixels != nil {
		buf, ok := d.decode(desc, pixels, width, height)
		if !ok {
			return
		}
		img.WritePixels(buf)
	}
	d.textures[d.bound] = img
}

func (d *EbitenDevice) TexSubImage2D(x, y, width, height int, layout TransferLayout, typ TransferType, pixels []byte) {
	if d.bound == 0 {
		d.fail(ErrInvalidOperation, "TexSubImage2D with no texture bound")
		return
	}
	img := d.textures[d.bound]
	if img == nil {
		d.fail(ErrInvalidOperation, "TexSubImage2D before storage allocation")
		return
	}
	rect := image.Rect(x, y, x+width, y+height)
	if x < 0 || y < 0 || width < 0 || height < 0 || !rect.In(img.Bounds()) {
		d.fail(ErrInvalidValue, "TexSubImage2D region %v outside %v", rect, img.Bounds())
		return
	}
	desc := TransferDescriptor{Layout: layout, Type: typ}
	if desc.BytesPerPixel() == 0 {
		d.fail(ErrInvalidEnum, "TexSubImage2D transfer %v/%v", layout, typ)
		return
	}
	if rect.Empty() {
		return
	}
	buf, ok := d.decode(desc, pixels, width, height)
	if !ok {
		return
	}
	img.SubImage(rect).(*ebiten.Image).WritePixels(buf)
}

func (d *EbitenDevice) Viewport(x, y, width, height int) {
	if width < 0 || height < 0 {
		d.fail(ErrInvalidValue, "viewport %dx%d", width, height)
		return
	}
	d.viewport = image.Rect(x, y, x+width, y+height)
}

func (d *EbitenDevice) SetClearColor(r, g, b, a float32) {
	d.clearColor = color.RGBA{R: unitToByte(r), G: unitToByte(g), B: unitToByte(b), A: unitToByte(a)}
}

func (d *EbitenDevice) Clear() {
	if d.target != nil {
		d.target.Fill(d.clearColor)
	}
}

func (d *EbitenDevice) SetProjection(m Mat3x2) {
	d.projection = m
}

var quadStripIndices = []uint16{0, 1, 2, 2, 1, 3}

func (d *EbitenDevice) DrawQuad(quad ScreenQuad) {
	if d.bound == 0 {
		d.fail(ErrInvalidOperation, "DrawQuad with no texture bound")
		return
	}
	src := d.textures[d.bound]
	if src == nil || d.target == nil {
		return
	}

	sw, sh := float32(src.Bounds().Dx()), float32(src.Bounds().Dy())
	th := d.target.Bounds().Dy()
	vertices := make([]ebiten.Vertex, len(quad))
	for i, v := range quad {
		x, y := surfacePosition(d.projection, d.viewport, th, v.X, v.Y)
		vertices[i] = ebiten.Vertex{
			DstX: x, DstY: y,
			SrcX: v.U * sw, SrcY: v.V * sh,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		}
	}
	d.target.DrawTriangles(vertices, quadStripIndices, src, &ebiten.DrawTrianglesOptions{
		Filter: ebiten.FilterLinear,
		Blend:  ebiten.BlendCopy,
	})
}
