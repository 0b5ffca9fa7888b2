// window_offscreen.go - Offscreen surface host

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
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

// Host refresh constants
const (
	HOST_REFRESH_RATE     = 60
	HOST_REFRESH_INTERVAL = time.Second / HOST_REFRESH_RATE
)

// HostOptions configures the surface host selected on the command line.
type HostOptions struct {
	Scale   int    // native size multiplier for windowed hosts
	Frames  uint64 // stop after this many frames, 0 runs until interrupted
	PNGPath string // offscreen: write the last presented frame here
	Stats   bool   // terminal frame time reporter
}

func (o HostOptions) surfaceSize() (int, int) {
	scale := max(o.Scale, 1)
	return SCREEN_TOP_WIDTH * scale, (SCREEN_TOP_HEIGHT + SCREEN_BOTTOM_HEIGHT) * scale
}

// hostRunner drives a presentation backend on one kind of surface until the
// frame budget is used up or the user quits.
type hostRunner func(backend PresentationBackend, device GraphicsDevice, opts HostOptions) error

var hostRunners = map[string]hostRunner{
	"offscreen": runOffscreenHost,
	"null":      runOffscreenHost,
}

func registerHost(name string, run hostRunner) {
	hostRunners[name] = run
	compiledFeatures = append(compiledFeatures, "host: "+name)
}

// OffscreenSurface is a SurfaceHost backed by memory images. SwapBuffers
// copies the software device's target into the front image.
type OffscreenSurface struct {
	mutex  sync.Mutex
	layout DisplayLayout
	device *SoftDevice
	back   *image.RGBA
	front  *image.RGBA

	current bool
	polls   atomic.Uint64
	swaps   atomic.Uint64
}

// NewOffscreenSurface creates a width x height surface. device may be nil,
// in which case nothing is ever drawn into it.
func NewOffscreenSurface(width, height int, device *SoftDevice) *OffscreenSurface {
	s := &OffscreenSurface{
		layout: StackedScreenLayout(width, height),
		device: device,
		back:   image.NewRGBA(image.Rect(0, 0, width, height)),
		front:  image.NewRGBA(image.Rect(0, 0, width, height)),
	}
	if device != nil {
		device.SetTarget(s.back)
	}
	return s
}

func (s *OffscreenSurface) MakeCurrent() {
	s.current = true
}

func (s *OffscreenSurface) PollEvents() {
	s.polls.Add(1)
}

func (s *OffscreenSurface) SwapBuffers() {
	s.mutex.Lock()
	copy(s.front.Pix, s.back.Pix)
	s.mutex.Unlock()
	s.swaps.Add(1)
}

func (s *OffscreenSurface) SurfaceLayout() DisplayLayout {
	return s.layout
}

// Swaps is the number of presented frames.
func (s *OffscreenSurface) Swaps() uint64 {
	return s.swaps.Load()
}

// Frame returns a copy of the last presented frame.
func (s *OffscreenSurface) Frame() *image.RGBA {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	out := image.NewRGBA(s.front.Bounds())
	copy(out.Pix, s.front.Pix)
	return out
}

// WritePNG stores the last presented frame.
func (s *OffscreenSurface) WritePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, s.Frame()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// hostContext ends on SIGINT or SIGTERM.
func hostContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// runFrameLoop presents on a fixed tick until ctx ends or the frame budget
// is reached.
func runFrameLoop(ctx context.Context, backend PresentationBackend, frames uint64) {
	ticker := time.NewTicker(HOST_REFRESH_INTERVAL)
	defer ticker.Stop()

	for frames == 0 || backend.FrameCount() < frames {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			backend.PresentFrame()
		}
	}
}

// startStatusReporter starts a terminal reporter when opts.Stats is set.
// The result is nil otherwise; Finish accepts a nil reporter.
func startStatusReporter(ctx context.Context, backend PresentationBackend, opts HostOptions, out io.Writer) *StatusReporter {
	if !opts.Stats {
		return nil
	}
	reporter := NewStatusReporter(out)
	reporter.Start(ctx, backend)
	return reporter
}

func runOffscreenHost(backend PresentationBackend, device GraphicsDevice, opts HostOptions) error {
	soft, _ := device.(*SoftDevice)
	w, h := opts.surfaceSize()
	surface := NewOffscreenSurface(w, h, soft)

	backend.SetSurfaceTarget(surface)
	backend.Init()
	defer backend.Shutdown()

	ctx, stop := hostContext()
	defer stop()

	defer startStatusReporter(ctx, backend, opts, os.Stdout).Finish()

	runFrameLoop(ctx, backend, opts.Frames)
	Logger().Info("offscreen host finished", "frames", backend.FrameCount(), "swaps", surface.Swaps())

	if opts.PNGPath != "" {
		if err := surface.WritePNG(opts.PNGPath); err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%dx%d)\n", opts.PNGPath, w, h)
	}
	return nil
}
