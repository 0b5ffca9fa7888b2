//go:build !headless

// window_ebiten.go - Ebiten window surface host

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
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

func init() {
	registerHost("ebiten", runEbitenHost)
}

// EbitenSurface hosts the presenter in an ebiten window. Ebiten owns the GL
// context and the swap, so MakeCurrent, PollEvents and SwapBuffers have
// nothing to do; a frame is presented from every Draw.
type EbitenSurface struct {
	mutex   sync.RWMutex
	backend PresentationBackend
	device  *EbitenDevice

	width, height        int
	windowedW, windowedH int
	fullscreen           bool
	showOverlay          bool
	copyRequested        bool

	frameLimit  uint64
	initialized bool
	swaps       uint64

	clipboardOnce sync.Once
	clipboardOK   bool
}

func NewEbitenSurface(backend PresentationBackend, device *EbitenDevice, width, height int, frameLimit uint64) *EbitenSurface {
	return &EbitenSurface{
		backend:     backend,
		device:      device,
		width:       width,
		height:      height,
		windowedW:   width,
		windowedH:   height,
		frameLimit:  frameLimit,
		showOverlay: true,
	}
}

func runEbitenHost(backend PresentationBackend, device GraphicsDevice, opts HostOptions) error {
	ed, _ := device.(*EbitenDevice)
	w, h := opts.surfaceSize()
	s := NewEbitenSurface(backend, ed, w, h, opts.Frames)
	backend.SetSurfaceTarget(s)

	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Dual Screen Presenter")
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)

	ctx, stop := hostContext()
	defer stop()
	reporter := startStatusReporter(ctx, backend, opts, os.Stdout)

	err := ebiten.RunGame(s)
	reporter.Finish()
	backend.Shutdown()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("ebiten: %w", err)
	}
	return nil
}

func (s *EbitenSurface) MakeCurrent() {}

func (s *EbitenSurface) PollEvents() {}

func (s *EbitenSurface) SwapBuffers() {
	s.swaps++
}

func (s *EbitenSurface) SurfaceLayout() DisplayLayout {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return StackedScreenLayout(s.width, s.height)
}

func (s *EbitenSurface) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	if s.frameLimit > 0 && s.backend.FrameCount() >= s.frameLimit {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		s.mutex.Lock()
		s.fullscreen = !s.fullscreen
		ebiten.SetFullscreen(s.fullscreen)
		if !s.fullscreen {
			ebiten.SetWindowSize(s.windowedW, s.windowedH)
		}
		s.mutex.Unlock()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		s.mutex.Lock()
		s.showOverlay = !s.showOverlay
		s.mutex.Unlock()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		s.mutex.Lock()
		s.copyRequested = true
		s.mutex.Unlock()
	}
	return nil
}

func (s *EbitenSurface) Draw(screen *ebiten.Image) {
	if !s.initialized {
		s.backend.Init()
		s.initialized = true
	}
	if s.device != nil {
		s.device.SetTarget(screen)
	}
	s.backend.PresentFrame()

	s.mutex.Lock()
	showOverlay := s.showOverlay
	copyRequested := s.copyRequested
	s.copyRequested = false
	s.mutex.Unlock()

	if copyRequested {
		s.copyFrameToClipboard(screen)
	}
	if showOverlay {
		s.drawOverlay(screen)
	}
}

func (s *EbitenSurface) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.width = max(outsideWidth, 1)
	s.height = max(outsideHeight, 1)
	return s.width, s.height
}

// copyFrameToClipboard puts the presented frame on the clipboard as a PNG.
func (s *EbitenSurface) copyFrameToClipboard(screen *ebiten.Image) {
	s.clipboardOnce.Do(func() {
		s.clipboardOK = clipboard.Init() == nil
	})
	if !s.clipboardOK {
		Logger().Warn("clipboard unavailable, frame not copied")
		return
	}

	b := screen.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	screen.ReadPixels(img.Pix)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		Logger().Error("frame encode failed", "err", err)
		return
	}
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	Logger().Info("frame copied to clipboard", "width", b.Dx(), "height", b.Dy())
}

func (s *EbitenSurface) drawOverlay(screen *ebiten.Image) {
	face := basicfont.Face7x13
	stats := FrameStats{}
	if pb, ok := s.backend.(profiledBackend); ok {
		stats = pb.Profiler().Stats()
	}

	status := formatStatusLine(s.backend.FrameCount(), stats, 0)
	text.Draw(screen, status, face, 6, 16, color.RGBA{220, 220, 220, 255})

	legend := "F9 Copy  F11 Fullscreen  F12 Overlay"
	legendW := text.BoundString(face, legend).Dx()
	legendX := max(screen.Bounds().Dx()-legendW-6, 6)
	text.Draw(screen, legend, face, legendX, screen.Bounds().Dy()-6, color.RGBA{160, 160, 160, 255})
}
