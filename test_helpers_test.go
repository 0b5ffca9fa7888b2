// test_helpers_test.go - Recording fakes shared by the presenter tests

package main

import (
	"fmt"
	"image"
	"testing"
)

// recordingDevice is a SoftDevice that logs every call and can queue
// injected errors after chosen operations.
type recordingDevice struct {
	*SoftDevice
	calls      []string
	initErr    error
	failAfter  map[string]error
	lastPixels []byte
}

func newRecordingDevice() *recordingDevice {
	return &recordingDevice{SoftDevice: NewSoftDevice(), failAfter: make(map[string]error)}
}

func (d *recordingDevice) record(op string, format string, args ...any) {
	d.calls = append(d.calls, op+"("+fmt.Sprintf(format, args...)+")")
	if err, ok := d.failAfter[op]; ok {
		delete(d.failAfter, op)
		d.SoftDevice.errs = append(d.SoftDevice.errs, err)
	}
}

func (d *recordingDevice) reset() {
	d.calls = nil
}

func (d *recordingDevice) countCalls(op string) int {
	n := 0
	for _, c := range d.calls {
		if len(c) > len(op) && c[:len(op)+1] == op+"(" {
			n++
		}
	}
	return n
}

func (d *recordingDevice) Init() error {
	d.record("Init", "")
	if d.initErr != nil {
		return d.initErr
	}
	return d.SoftDevice.Init()
}

func (d *recordingDevice) Release() {
	d.record("Release", "")
	d.SoftDevice.Release()
}

func (d *recordingDevice) GenTexture() TextureHandle {
	h := d.SoftDevice.GenTexture()
	d.record("GenTexture", "%d", h)
	return h
}

func (d *recordingDevice) DeleteTexture(h TextureHandle) {
	d.SoftDevice.DeleteTexture(h)
	d.record("DeleteTexture", "%d", h)
}

func (d *recordingDevice) BindTexture(h TextureHandle) {
	d.SoftDevice.BindTexture(h)
	d.record("BindTexture", "%d", h)
}

func (d *recordingDevice) TexImage2D(internal TransferLayout, width, height int, layout TransferLayout, typ TransferType, pixels []byte) {
	d.SoftDevice.TexImage2D(internal, width, height, layout, typ, pixels)
	d.lastPixels = append([]byte(nil), pixels...)
	d.record("TexImage2D", "%v,%d,%d,%v,%v", internal, width, height, layout, typ)
}

func (d *recordingDevice) TexSubImage2D(x, y, width, height int, layout TransferLayout, typ TransferType, pixels []byte) {
	d.SoftDevice.TexSubImage2D(x, y, width, height, layout, typ, pixels)
	d.record("TexSubImage2D", "%d,%d,%d,%d,%v,%v", x, y, width, height, layout, typ)
}

func (d *recordingDevice) SetUnpackRowLength(pixels int) {
	d.SoftDevice.SetUnpackRowLength(pixels)
	d.record("SetUnpackRowLength", "%d", pixels)
}

func (d *recordingDevice) Viewport(x, y, width, height int) {
	d.SoftDevice.Viewport(x, y, width, height)
	d.record("Viewport", "%d,%d,%d,%d", x, y, width, height)
}

func (d *recordingDevice) Clear() {
	d.SoftDevice.Clear()
	d.record("Clear", "")
}

func (d *recordingDevice) DrawQuad(quad ScreenQuad) {
	d.SoftDevice.DrawQuad(quad)
	d.record("DrawQuad", "%v", quad[0])
}

// recordingHost is a SurfaceHost that logs the calls it receives.
type recordingHost struct {
	calls  []string
	layout DisplayLayout
	target *image.RGBA
}

func newRecordingHost(width, height int, device *SoftDevice) *recordingHost {
	h := &recordingHost{
		layout: StackedScreenLayout(width, height),
		target: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
	if device != nil {
		device.SetTarget(h.target)
	}
	return h
}

func (h *recordingHost) MakeCurrent()                 { h.calls = append(h.calls, "MakeCurrent") }
func (h *recordingHost) PollEvents()                  { h.calls = append(h.calls, "PollEvents") }
func (h *recordingHost) SwapBuffers()                 { h.calls = append(h.calls, "SwapBuffers") }
func (h *recordingHost) SurfaceLayout() DisplayLayout { return h.layout }

// quietLogger silences logging for the duration of a test.
func quietLogger(t *testing.T) {
	t.Helper()
	prev := Logger()
	SetLogger(nil)
	t.Cleanup(func() { SetLogger(prev) })
}

// captureFatal replaces the process exit hook; the returned pointer counts
// fatal exits.
func captureFatal(t *testing.T) *int {
	t.Helper()
	exits := 0
	prev := exitProcess
	exitProcess = func(int) { exits++ }
	t.Cleanup(func() { exitProcess = prev })
	return &exits
}

// expectFatal runs fn and reports whether it ended on the fatal path.
func expectFatal(fn func()) (fatal bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(fatalError); !ok {
				panic(r)
			}
			fatal = true
		}
	}()
	fn()
	return false
}

// fillFramebuffer writes a solid color into a framebuffer at paddr.
func fillFramebuffer(t *testing.T, mem *MemoryMap, cfg FramebufferConfig, paddr uint32, r, g, b uint8) {
	t.Helper()
	vaddr := mem.ResolveAddress(paddr)
	if vaddr == 0 {
		t.Fatalf("framebuffer address 0x%08X not mapped", paddr)
	}
	bpp := cfg.Format.BytesPerPixel()
	row := make([]byte, int(cfg.Width)*bpp)
	for x := 0; x < int(cfg.Width); x++ {
		encodePixel(row[x*bpp:], cfg.Format, r, g, b, 0xFF)
	}
	for y := 0; y < int(cfg.Height); y++ {
		mem.WriteBytes(vaddr+uint32(y)*cfg.Stride, row)
	}
}
