// pattern_gpu.go - Emulated GPU writing animated test patterns

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
	"sync"
	"time"
)

// Physical framebuffer placement in VRAM, double-buffered per screen. Each
// slot holds a full RGBA8 framebuffer.
const (
	PATTERN_TOP_FB1    = PADDR_VRAM + 0x000000
	PATTERN_TOP_FB2    = PADDR_VRAM + 0x060000
	PATTERN_BOTTOM_FB1 = PADDR_VRAM + 0x100000
	PATTERN_BOTTOM_FB2 = PADDR_VRAM + 0x150000
)

// PatternGPU stands in for the emulated GPU: it renders into the inactive
// buffer of each screen and then flips the active-buffer register, from its
// own goroutine, without coordinating with the presenter.
type PatternGPU struct {
	mem     *MemoryMap
	configs [SCREEN_COUNT]FramebufferConfig
	rowBuf  []byte
	frame   uint64

	done chan struct{}
	wg   sync.WaitGroup
}

// NewPatternGPU programs both screens' framebuffer registers. Framebuffers
// are stored rotated: width is the panel height.
func NewPatternGPU(mem *MemoryMap, topFormat, bottomFormat PixelFormat) *PatternGPU {
	g := &PatternGPU{mem: mem, done: make(chan struct{})}
	g.configs[SCREEN_TOP] = FramebufferConfig{
		Width:         SCREEN_TOP_HEIGHT,
		Height:        SCREEN_TOP_WIDTH,
		AddressLeft1:  PATTERN_TOP_FB1,
		AddressLeft2:  PATTERN_TOP_FB2,
		AddressRight1: PATTERN_TOP_FB1,
		AddressRight2: PATTERN_TOP_FB2,
		Format:        topFormat,
		Stride:        uint32(SCREEN_TOP_HEIGHT * topFormat.BytesPerPixel()),
	}
	g.configs[SCREEN_BOTTOM] = FramebufferConfig{
		Width:        SCREEN_BOTTOM_HEIGHT,
		Height:       SCREEN_BOTTOM_WIDTH,
		AddressLeft1: PATTERN_BOTTOM_FB1,
		AddressLeft2: PATTERN_BOTTOM_FB2,
		Format:       bottomFormat,
		Stride:       uint32(SCREEN_BOTTOM_HEIGHT * bottomFormat.BytesPerPixel()),
	}
	for screen := range SCREEN_COUNT {
		mem.WriteFramebufferConfig(screen, g.configs[screen])
	}
	return g
}

// SetColorFill programs the LCD fill register of a screen.
func (g *PatternGPU) SetColorFill(screen int, fill ColorFill) {
	g.mem.WriteColorFill(screen, fill)
}

// Config returns the programmed register state of a screen.
func (g *PatternGPU) Config(screen int) FramebufferConfig {
	return g.configs[screen]
}

// Start renders a frame immediately and then one per host refresh.
func (g *PatternGPU) Start() {
	g.RenderFrame()
	g.wg.Add(1)
	go g.loop()
}

func (g *PatternGPU) Stop() {
	close(g.done)
	g.wg.Wait()
}

func (g *PatternGPU) loop() {
	defer g.wg.Done()
	ticker := time.NewTicker(HOST_REFRESH_INTERVAL)
	defer ticker.Stop()
	for {
		select {
		case <-g.done:
			return
		case <-ticker.C:
			g.RenderFrame()
		}
	}
}

// RenderFrame draws the next pattern frame into each screen's back buffer
// and flips it to the front.
func (g *PatternGPU) RenderFrame() {
	for screen := range SCREEN_COUNT {
		cfg := &g.configs[screen]
		back := cfg.AddressLeft1
		if !cfg.SecondActive {
			back = cfg.AddressLeft2
		}
		g.drawPattern(screen, *cfg, back)
		cfg.SecondActive = !cfg.SecondActive
		g.mem.WriteFramebufferConfig(screen, *cfg)
	}
	g.frame++
}

// drawPattern writes diagonal color bands that scroll one pixel per frame,
// with a white marker where the panel's top-left corner is.
func (g *PatternGPU) drawPattern(screen int, cfg FramebufferConfig, paddr uint32) {
	vaddr := g.mem.ResolveAddress(paddr)
	if vaddr == 0 {
		return
	}
	bpp := cfg.Format.BytesPerPixel()
	w, h := int(cfg.Width), int(cfg.Height)
	if cap(g.rowBuf) < w*bpp {
		g.rowBuf = make([]byte, w*bpp)
	}
	row := g.rowBuf[:w*bpp]
	shift := int(g.frame) + screen*64

	for y := range h {
		for x := range w {
			r, gg, b := patternColor(x+y+shift, screen)
			// Memory column w-1 is the panel's top edge, row 0 its left edge.
			if x >= w-16 && y < 16 {
				r, gg, b = 0xFF, 0xFF, 0xFF
			}
			encodePixel(row[x*bpp:], cfg.Format, r, gg, b, 0xFF)
		}
		g.mem.WriteBytes(vaddr+uint32(y)*cfg.Stride, row)
	}
}

func patternColor(phase, screen int) (uint8, uint8, uint8) {
	band := (phase / 32) % 6
	level := uint8(phase % 32 * 8)
	switch band {
	case 0:
		return 0xFF, level, 0
	case 1:
		return 0xFF - level, 0xFF, 0
	case 2:
		return 0, 0xFF, level
	case 3:
		return 0, 0xFF - level, 0xFF
	case 4:
		if screen == SCREEN_BOTTOM {
			return level, level, 0xFF
		}
		return level, 0, 0xFF
	}
	return 0xFF, 0, 0xFF - level
}
