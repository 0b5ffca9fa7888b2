// pattern_gpu_test.go - Tests for the test pattern GPU

package main

import (
	"testing"
)

func TestPatternGPU_ProgramsValidFramebuffers(t *testing.T) {
	for f := PixelFormatRGBA8; f <= PixelFormatRGBA4; f++ {
		mem := NewMemoryMap()
		NewPatternGPU(mem, f, f)
		for screen := range SCREEN_COUNT {
			cfg, err := readFramebufferConfig(mem, screen)
			if err != nil {
				t.Fatalf("%v screen %d: %v", f, screen, err)
			}
			if err := cfg.Validate(); err != nil {
				t.Fatalf("%v screen %d: %v", f, screen, err)
			}
			if cfg.Format != f || cfg.Width != 240 {
				t.Fatalf("%v screen %d: %+v", f, screen, cfg)
			}
		}
	}
}

func TestPatternGPU_BuffersFitAndDoNotOverlap(t *testing.T) {
	g := NewPatternGPU(NewMemoryMap(), PixelFormatRGBA8, PixelFormatRGBA8)
	top, bottom := g.Config(SCREEN_TOP), g.Config(SCREEN_BOTTOM)
	if top.AddressLeft1+uint32(top.ByteLength()) > top.AddressLeft2 {
		t.Fatal("top framebuffers overlap")
	}
	if top.AddressLeft2+uint32(top.ByteLength()) > bottom.AddressLeft1 {
		t.Fatal("top and bottom framebuffers overlap")
	}
	if bottom.AddressLeft2+uint32(bottom.ByteLength()) > PADDR_VRAM+VRAM_SIZE {
		t.Fatal("bottom framebuffer runs past VRAM")
	}
}

func TestPatternGPU_RenderFrameFlipsBuffers(t *testing.T) {
	mem := NewMemoryMap()
	g := NewPatternGPU(mem, PixelFormatRGB565, PixelFormatRGBA8)

	g.RenderFrame()
	cfg, _ := readFramebufferConfig(mem, SCREEN_TOP)
	if !cfg.SecondActive {
		t.Fatal("first frame not presented from the second buffer")
	}
	g.RenderFrame()
	cfg, _ = readFramebufferConfig(mem, SCREEN_TOP)
	if cfg.SecondActive {
		t.Fatal("second frame did not flip back")
	}
}

func TestPatternGPU_MarkerInLastColumn(t *testing.T) {
	mem := NewMemoryMap()
	g := NewPatternGPU(mem, PixelFormatRGBA8, PixelFormatRGBA8)
	g.RenderFrame()

	cfg, _ := readFramebufferConfig(mem, SCREEN_BOTTOM)
	view := mem.ReadBytes(mem.ResolveAddress(cfg.ActiveAddress()), int(cfg.ByteLength()))
	px := make([]byte, 4)
	desc := TransferDescriptorFor(cfg.Format)

	desc.DecodeRow(px, view[(cfg.Width-1)*4:], 1)
	if px[0] != 0xFF || px[1] != 0xFF || px[2] != 0xFF {
		t.Fatalf("marker pixel = % X, want white", px)
	}
}

func TestPatternGPU_StartStop(t *testing.T) {
	mem := NewMemoryMap()
	g := NewPatternGPU(mem, PixelFormatRGB565, PixelFormatRGB565)
	g.Start()
	g.Stop()
	if g.frame == 0 {
		t.Fatal("Start did not render a frame")
	}
}
