// gpu_device_soft.go - Software graphics device

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

/*
gpu_device_soft.go - CPU Implementation of the Presenter's Graphics Device

Textures are held as 8-bit RGBA images. Uploads run through the transfer
descriptor's row decoder, so every packed framebuffer format ends up in one
representation regardless of how it was stored in emulated memory.

Drawing maps each screen quad through the projection and viewport exactly as
the GL pipeline would, then resamples the texture into the target with an
affine transform solved from three of the quad's corners:

	texel (u*W, v*H) ──affine──▶ surface pixel (x, y)

Errors are queued and drained through Error, one per failing call, matching
the GL error model the presenter's checked calls are written against.

The target image is supplied by the surface host (Linux framebuffer,
offscreen PNG dumps, tests). With no target set, draws are discarded.
*/

package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

type softTexture struct {
	img *image.RGBA
}

// SoftDevice rasterizes on the CPU into an *image.RGBA target.
type SoftDevice struct {
	mutex sync.Mutex // guards target against concurrent snapshots

	initialized bool
	textures    map[TextureHandle]*softTexture
	nextHandle  TextureHandle
	bound       TextureHandle
	rowLength   int

	viewport   image.Rectangle // GL convention, origin bottom-left
	clearColor color.RGBA
	projection Mat3x2
	target     *image.RGBA

	errs        []error
	allocations uint64
}

func NewSoftDevice() *SoftDevice {
	return &SoftDevice{
		textures:   make(map[TextureHandle]*softTexture),
		projection: Mat3x2{A: 1, E: 1},
	}
}

func (d *SoftDevice) Init() error {
	d.initialized = true
	return nil
}

func (d *SoftDevice) Version() string {
	return "software rasterizer (golang.org/x/image/draw, bilinear)"
}

func (d *SoftDevice) Release() {
	d.textures = make(map[TextureHandle]*softTexture)
	d.bound = 0
	d.initialized = false
}

// SetTarget replaces the image draws land in.
func (d *SoftDevice) SetTarget(img *image.RGBA) {
	d.mutex.Lock()
	d.target = img
	d.mutex.Unlock()
}

// Target returns the current target image.
func (d *SoftDevice) Target() *image.RGBA {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.target
}

// Snapshot copies the target so it can be read while the next frame renders.
func (d *SoftDevice) Snapshot() *image.RGBA {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.target == nil {
		return nil
	}
	out := image.NewRGBA(d.target.Bounds())
	copy(out.Pix, d.target.Pix)
	return out
}

// Allocations counts texture storage (re)allocations.
func (d *SoftDevice) Allocations() uint64 {
	return d.allocations
}

func (d *SoftDevice) fail(class error, format string, args ...any) {
	d.errs = append(d.errs, fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), class))
}

func (d *SoftDevice) Error() error {
	if len(d.errs) == 0 {
		return nil
	}
	err := d.errs[0]
	d.errs = d.errs[1:]
	return err
}

func (d *SoftDevice) GenTexture() TextureHandle {
	d.nextHandle++
	d.textures[d.nextHandle] = &softTexture{}
	return d.nextHandle
}

func (d *SoftDevice) DeleteTexture(h TextureHandle) {
	delete(d.textures, h)
	if d.bound == h {
		d.bound = 0
	}
}

func (d *SoftDevice) BindTexture(h TextureHandle) {
	if h != 0 {
		if _, ok := d.textures[h]; !ok {
			d.fail(ErrInvalidValue, "bind of unknown texture %d", h)
			return
		}
	}
	d.bound = h
}

func (d *SoftDevice) SetUnpackRowLength(pixels int) {
	if pixels < 0 {
		d.fail(ErrInvalidValue, "unpack row length %d", pixels)
		return
	}
	d.rowLength = pixels
}

func (d *SoftDevice) boundTexture(op string) *softTexture {
	if d.bound == 0 {
		d.fail(ErrInvalidOperation, "%s with no texture bound", op)
		return nil
	}
	return d.textures[d.bound]
}

func (d *SoftDevice) TexImage2D(internal TransferLayout, width, height int, layout TransferLayout, typ TransferType, pixels []byte) {
	tex := d.boundTexture("TexImage2D")
	if tex == nil {
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

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if pixels != nil && !d.unpack(img, img.Bounds(), desc, pixels) {
		return
	}
	tex.img = img
	d.allocations++
}

func (d *SoftDevice) TexSubImage2D(x, y, width, height int, layout TransferLayout, typ TransferType, pixels []byte) {
	tex := d.boundTexture("TexSubImage2D")
	if tex == nil {
		return
	}
	if tex.img == nil {
		d.fail(ErrInvalidOperation, "TexSubImage2D before storage allocation")
		return
	}
	rect := image.Rect(x, y, x+width, y+height)
	if x < 0 || y < 0 || width < 0 || height < 0 || !rect.In(tex.img.Bounds()) {
		d.fail(ErrInvalidValue, "TexSubImage2D region %v outside %v", rect, tex.img.Bounds())
		return
	}
	desc := TransferDescriptor{Layout: layout, Type: typ}
	if desc.BytesPerPixel() == 0 {
		d.fail(ErrInvalidEnum, "TexSubImage2D transfer %v/%v", layout, typ)
		return
	}
	d.unpack(tex.img, rect, desc, pixels)
}

func (d *SoftDevice) unpack(img *image.RGBA, rect image.Rectangle, desc TransferDescriptor, pixels []byte) bool {
	dst := img.Pix[img.PixOffset(rect.Min.X, rect.Min.Y):]
	if !desc.UnpackRows(dst, img.Stride, pixels, rect.Dx(), rect.Dy(), d.rowLength) {
		d.fail(ErrInvalidOperation, "pixel data of %d bytes too short for %dx%d upload", len(pixels), rect.Dx(), rect.Dy())
		return false
	}
	return true
}

func (d *SoftDevice) Viewport(x, y, width, height int) {
	if width < 0 || height < 0 {
		d.fail(ErrInvalidValue, "viewport %dx%d", width, height)
		return
	}
	d.viewport = image.Rect(x, y, x+width, y+height)
}

func (d *SoftDevice) SetClearColor(r, g, b, a float32) {
	d.clearColor = color.RGBA{R: unitToByte(r), G: unitToByte(g), B: unitToByte(b), A: unitToByte(a)}
}

func unitToByte(v float32) uint8 {
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}

func (d *SoftDevice) Clear() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.target == nil {
		return
	}
	draw.Draw(d.target, d.target.Bounds(), image.NewUniform(d.clearColor), image.Point{}, draw.Src)
}

func (d *SoftDevice) SetProjection(m Mat3x2) {
	d.projection = m
}

func (d *SoftDevice) DrawQuad(quad ScreenQuad) {
	tex := d.boundTexture("DrawQuad")
	if tex == nil {
		return
	}
	if tex.img == nil || tex.img.Bounds().Empty() {
		return
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.target == nil {
		return
	}
	th := d.target.Bounds().Dy()

	var dst [4][2]float64
	var src [4][2]float64
	tw, tt := float64(tex.img.Bounds().Dx()), float64(tex.img.Bounds().Dy())
	for i, v := range quad {
		x, y := surfacePosition(d.projection, d.viewport, th, v.X, v.Y)
		dst[i][0], dst[i][1] = float64(x), float64(y)
		src[i][0], src[i][1] = float64(v.U)*tw, float64(v.V)*tt
	}

	s2d, ok := solveAffine(src[0], src[1], src[2], dst[0], dst[1], dst[2])
	if !ok {
		return
	}

	clip := image.Rect(
		int(min4(dst[0][0], dst[1][0], dst[2][0], dst[3][0])+0.5),
		int(min4(dst[0][1], dst[1][1], dst[2][1], dst[3][1])+0.5),
		int(max4(dst[0][0], dst[1][0], dst[2][0], dst[3][0])+0.5),
		int(max4(dst[0][1], dst[1][1], dst[2][1], dst[3][1])+0.5),
	).Intersect(d.target.Bounds())
	if clip.Empty() {
		return
	}

	region := d.target.SubImage(clip).(*image.RGBA)
	xdraw.ApproxBiLinear.Transform(region, s2d, tex.img, tex.img.Bounds(), xdraw.Src, nil)

	// The presented surface has no alpha channel.
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		row := d.target.Pix[d.target.PixOffset(clip.Min.X, y):]
		for x := 0; x < clip.Dx(); x++ {
			row[x*4+3] = 0xFF
		}
	}
}

// solveAffine finds the transform taking s0,s1,s2 to d0,d1,d2.
func solveAffine(s0, s1, s2, d0, d1, d2 [2]float64) (f64.Aff3, bool) {
	e1x, e1y := s1[0]-s0[0], s1[1]-s0[1]
	e2x, e2y := s2[0]-s0[0], s2[1]-s0[1]
	f1x, f1y := d1[0]-d0[0], d1[1]-d0[1]
	f2x, f2y := d2[0]-d0[0], d2[1]-d0[1]

	det := e1x*e2y - e2x*e1y
	if det == 0 {
		return f64.Aff3{}, false
	}
	a := (f1x*e2y - f2x*e1y) / det
	b := (f2x*e1x - f1x*e2x) / det
	c := (f1y*e2y - f2y*e1y) / det
	e := (f2y*e1x - f1y*e2x) / det
	return f64.Aff3{
		a, b, d0[0] - a*s0[0] - b*s0[1],
		c, e, d0[1] - c*s0[0] - e*s0[1],
	}, true
}

func min4(a, b, c, d float64) float64 { return min(a, b, c, d) }
func max4(a, b, c, d float64) float64 { return max(a, b, c, d) }
