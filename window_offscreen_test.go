// window_offscreen_test.go - Tests for the offscreen host

package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOffscreenSurface_SwapPublishesFrame(t *testing.T) {
	dev := NewSoftDevice()
	s := NewOffscreenSurface(400, 480, dev)

	dev.SetClearColor(1, 0, 0, 1)
	dev.Clear()
	if got := pixelAt(s.Frame(), 0, 0); got[0] != 0 {
		t.Fatal("frame visible before SwapBuffers")
	}
	s.SwapBuffers()
	if got := pixelAt(s.Frame(), 0, 0); got != [4]uint8{0xFF, 0, 0, 0xFF} {
		t.Fatalf("swapped frame pixel = %v", got)
	}
	if s.Swaps() != 1 {
		t.Fatalf("swaps = %d", s.Swaps())
	}
}

func TestOffscreenSurface_WritePNG(t *testing.T) {
	s := NewOffscreenSurface(40, 48, NewSoftDevice())
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := s.WritePNG(path); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 40 || cfg.Height != 48 {
		t.Fatalf("png is %dx%d", cfg.Width, cfg.Height)
	}
}

func TestRunFrameLoop_StopsAtFrameLimit(t *testing.T) {
	quietLogger(t)
	backend := NewNullPresenter(NewMemoryMap())
	backend.Init()
	runFrameLoop(context.Background(), backend, 3)
	if backend.FrameCount() != 3 {
		t.Fatalf("FrameCount = %d, want 3", backend.FrameCount())
	}
}

func TestRunFrameLoop_StopsOnCancel(t *testing.T) {
	backend := NewNullPresenter(NewMemoryMap())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runFrameLoop(ctx, backend, 0)
}

func TestHostOptions_SurfaceSize(t *testing.T) {
	if w, h := (HostOptions{}).surfaceSize(); w != 400 || h != 480 {
		t.Fatalf("default size %dx%d", w, h)
	}
	if w, h := (HostOptions{Scale: 2}).surfaceSize(); w != 800 || h != 960 {
		t.Fatalf("scaled size %dx%d", w, h)
	}
}

func TestRunOffscreenHost_WritesFrame(t *testing.T) {
	quietLogger(t)
	mem := NewMemoryMap()
	gpu := NewPatternGPU(mem, PixelFormatRGB565, PixelFormatRGBA8)
	gpu.RenderFrame()

	dev := NewSoftDevice()
	backend := NewFramebufferPresenter(dev, mem, PresenterConfig{})
	path := filepath.Join(t.TempDir(), "out.png")
	if err := runOffscreenHost(backend, dev, HostOptions{Frames: 2, PNGPath: path}); err != nil {
		t.Fatal(err)
	}
	if backend.FrameCount() != 2 {
		t.Fatalf("FrameCount = %d", backend.FrameCount())
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
}

func TestStartStatusReporter_FollowsStatsFlag(t *testing.T) {
	quietLogger(t)
	backend := NewFramebufferPresenter(NewSoftDevice(), NewMemoryMap(), PresenterConfig{})
	backend.Init()
	defer backend.Shutdown()

	var buf bytes.Buffer
	if r := startStatusReporter(context.Background(), backend, HostOptions{}, &buf); r != nil {
		t.Fatal("reporter started without -stats")
	}
	var off *StatusReporter
	off.Finish()

	r := startStatusReporter(context.Background(), backend, HostOptions{Stats: true}, &buf)
	if r == nil {
		t.Fatal("no reporter with -stats")
	}
	backend.PresentFrame()
	r.Finish()
	r.Report(backend)
	if out := buf.String(); !strings.Contains(out, "frames 1 |") {
		t.Fatalf("output = %q", out)
	}
}
