// texture_manager_test.go - Tests for screen texture allocation and upload

package main

import (
	"bytes"
	"slices"
	"testing"
)

func newTestTextureManager(t *testing.T) (*textureManager, *recordingDevice) {
	t.Helper()
	quietLogger(t)
	dev := newRecordingDevice()
	if err := dev.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	tm := newTextureManager(dev, func(op string) {
		if err := dev.Error(); err != nil {
			t.Errorf("%s: %v", op, err)
		}
	})
	tm.create()
	dev.reset()
	return tm, dev
}

func TestTextureManager_CreateGeneratesTwoHandles(t *testing.T) {
	tm, _ := newTestTextureManager(t)
	top, bottom := tm.texture(SCREEN_TOP), tm.texture(SCREEN_BOTTOM)
	if top.Handle == 0 || bottom.Handle == 0 || top.Handle == bottom.Handle {
		t.Fatalf("handles = %d, %d", top.Handle, bottom.Handle)
	}
	if top.Width != 0 || top.Height != 0 {
		t.Fatalf("fresh texture has size %dx%d", top.Width, top.Height)
	}
}

func TestTextureManager_EnsureReadyIsIdempotent(t *testing.T) {
	tm, dev := newTestTextureManager(t)
	cfg := FramebufferConfig{Width: 240, Height: 400, Format: PixelFormatRGB565, Stride: 480}

	tex := tm.ensureReady(SCREEN_TOP, cfg)
	tm.ensureReady(SCREEN_TOP, cfg)

	if tm.Allocations() != 1 {
		t.Fatalf("allocations = %d, want 1", tm.Allocations())
	}
	if dev.countCalls("TexImage2D") != 1 {
		t.Fatalf("TexImage2D called %d times, want 1", dev.countCalls("TexImage2D"))
	}
	if tex.Width != 240 || tex.Height != 400 || tex.Format != PixelFormatRGB565 {
		t.Fatalf("texture = %+v", *tex)
	}
	if tex.Transfer != TransferDescriptorFor(PixelFormatRGB565) {
		t.Fatalf("transfer = %+v", tex.Transfer)
	}
}

func TestTextureManager_EnsureReadyReallocatesOnChange(t *testing.T) {
	tm, _ := newTestTextureManager(t)
	cfg := FramebufferConfig{Width: 240, Height: 400, Format: PixelFormatRGB565, Stride: 480}
	tm.ensureReady(SCREEN_TOP, cfg)

	cfg.Format = PixelFormatRGBA8
	cfg.Stride = 960
	tm.ensureReady(SCREEN_TOP, cfg)
	cfg.Height = 320
	tm.ensureReady(SCREEN_TOP, cfg)

	if tm.Allocations() != 3 {
		t.Fatalf("allocations = %d, want 3", tm.Allocations())
	}
}

func TestTextureManager_SolidColor(t *testing.T) {
	tm, dev := newTestTextureManager(t)
	tex := tm.texture(SCREEN_BOTTOM)

	tm.uploadSolidColor(tex, 0x12, 0x34, 0x56)

	if tex.Width != 1 || tex.Height != 1 {
		t.Fatalf("solid texture is %dx%d, want 1x1", tex.Width, tex.Height)
	}
	if !bytes.Equal(dev.lastPixels, []byte{0x12, 0x34, 0x56}) {
		t.Fatalf("uploaded % X, want 12 34 56", dev.lastPixels)
	}
	want := []string{
		"BindTexture(2)",
		"TexImage2D(RGB,1,1,RGB,UNSIGNED_BYTE)",
		"BindTexture(0)",
	}
	if !slices.Equal(dev.calls, want) {
		t.Fatalf("calls = %v\nwant  %v", dev.calls, want)
	}
}

func TestTextureManager_ReallocatesAfterColorFill(t *testing.T) {
	tm, _ := newTestTextureManager(t)
	cfg := FramebufferConfig{Width: 240, Height: 320, Format: PixelFormatRGBA8, Stride: 960}

	tex := tm.ensureReady(SCREEN_BOTTOM, cfg)
	tm.uploadSolidColor(tex, 1, 2, 3)
	tm.ensureReady(SCREEN_BOTTOM, cfg)

	// framebuffer, solid color, framebuffer again
	if tm.Allocations() != 3 {
		t.Fatalf("allocations = %d, want 3", tm.Allocations())
	}
	if tex.Width != 240 || tex.Height != 320 {
		t.Fatalf("texture not restored to framebuffer size: %dx%d", tex.Width, tex.Height)
	}
}

func TestTextureManager_UploadRestoresRowLength(t *testing.T) {
	tm, dev := newTestTextureManager(t)
	cfg := FramebufferConfig{Width: 240, Height: 2, Format: PixelFormatRGB565, Stride: 512}
	tex := tm.ensureReady(SCREEN_TOP, cfg)
	dev.reset()

	pixels := make([]byte, cfg.ByteLength())
	tm.uploadPixels(tex, pixels, cfg.PixelStride())

	want := []string{
		"BindTexture(1)",
		"SetUnpackRowLength(256)",
		"TexSubImage2D(0,0,240,2,RGB,UNSIGNED_SHORT_5_6_5)",
		"SetUnpackRowLength(0)",
		"BindTexture(0)",
	}
	if !slices.Equal(dev.calls, want) {
		t.Fatalf("calls = %v\nwant  %v", dev.calls, want)
	}
	if dev.rowLength != 0 {
		t.Fatalf("row length left at %d", dev.rowLength)
	}
}

func TestTextureManager_UploadTightRowsSkipsRowLength(t *testing.T) {
	tm, dev := newTestTextureManager(t)
	cfg := FramebufferConfig{Width: 240, Height: 2, Format: PixelFormatRGBA8, Stride: 960}
	tex := tm.ensureReady(SCREEN_TOP, cfg)
	dev.reset()

	tm.uploadPixels(tex, make([]byte, cfg.ByteLength()), cfg.PixelStride())

	if n := dev.countCalls("SetUnpackRowLength"); n != 0 {
		t.Fatalf("SetUnpackRowLength called %d times for tight rows", n)
	}
}

func TestTextureManager_DestroyDeletesHandles(t *testing.T) {
	tm, dev := newTestTextureManager(t)
	tm.destroy()
	if dev.countCalls("DeleteTexture") != 2 {
		t.Fatalf("DeleteTexture called %d times", dev.countCalls("DeleteTexture"))
	}
	if tm.texture(SCREEN_TOP).Handle != 0 {
		t.Fatal("handle kept after destroy")
	}
}
