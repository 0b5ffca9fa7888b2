//go:build linux && !headless

// window_fbdev.go - Linux framebuffer console surface host

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
	"image/draw"

	fb "github.com/gonutz/framebuffer"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/sys/unix"
)

const FBDEV_PATH = "/dev/fb0"

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

var consoleTTYs = []string{"/dev/tty", "/dev/tty0"}

func init() {
	registerHost("fbdev", runFramebufferHost)
}

// setConsoleMode switches the active virtual terminal between text and
// graphics so the console cursor does not draw over the screens.
func setConsoleMode(mode int) error {
	var lastErr error
	for _, p := range consoleTTYs {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", p, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("KDSETMODE %d on %s: %w", mode, p, err)
			continue
		}
		return nil
	}
	return lastErr
}

// FramebufferSurface renders through the software device into a canvas the
// size of the console framebuffer and blits it on SwapBuffers.
type FramebufferSurface struct {
	dev      *fb.Device
	canvas   *image.RGBA
	layout   DisplayLayout
	backend  PresentationBackend
	showStat bool
	face     font.Face
}

func NewFramebufferSurface(dev *fb.Device, soft *SoftDevice) *FramebufferSurface {
	b := dev.Bounds()
	s := &FramebufferSurface{
		dev:    dev,
		canvas: image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy())),
		layout: StackedScreenLayout(b.Dx(), b.Dy()),
		face:   basicfont.Face7x13,
	}
	if soft != nil {
		soft.SetTarget(s.canvas)
	}
	return s
}

func (s *FramebufferSurface) MakeCurrent() {}

func (s *FramebufferSurface) PollEvents() {}

func (s *FramebufferSurface) SwapBuffers() {
	if s.showStat && s.backend != nil {
		s.drawStatus()
	}
	b := s.dev.Bounds()
	draw.Draw(s.dev, b, s.canvas, image.Point{}, draw.Src)
}

func (s *FramebufferSurface) SurfaceLayout() DisplayLayout {
	return s.layout
}

func (s *FramebufferSurface) drawStatus() {
	var stats FrameStats
	if pb, ok := s.backend.(profiledBackend); ok {
		stats = pb.Profiler().Stats()
	}
	drawer := &font.Drawer{
		Dst:  s.canvas,
		Src:  image.NewUniform(color.RGBA{R: 220, G: 220, B: 220, A: 255}),
		Face: s.face,
		Dot:  fixed.P(6, 16),
	}
	drawer.DrawString(formatStatusLine(s.backend.FrameCount(), stats, 0))
}

func runFramebufferHost(backend PresentationBackend, device GraphicsDevice, opts HostOptions) error {
	soft, ok := device.(*SoftDevice)
	if !ok {
		return &VideoError{Operation: "fbdev host", Details: "requires the software device"}
	}

	dev, err := fb.Open(FBDEV_PATH)
	if err != nil {
		return &VideoError{Operation: "fbdev host", Details: FBDEV_PATH, Err: err}
	}
	defer dev.Close()

	if err := setConsoleMode(kdGraphics); err != nil {
		Logger().Warn("console graphics mode unavailable", "err", err)
	} else {
		defer func() {
			if err := setConsoleMode(kdText); err != nil {
				Logger().Error("console text mode restore failed", "err", err)
			}
		}()
	}

	surface := NewFramebufferSurface(dev, soft)
	surface.backend = backend
	surface.showStat = opts.Stats
	Logger().Info("framebuffer open", "path", FBDEV_PATH,
		"width", surface.layout.Width, "height", surface.layout.Height)

	backend.SetSurfaceTarget(surface)
	backend.Init()
	defer backend.Shutdown()

	ctx, stop := hostContext()
	defer stop()
	runFrameLoop(ctx, backend, opts.Frames)
	return nil
}
