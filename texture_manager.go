// texture_manager.go - Per-screen texture allocation and upload

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

// TextureInfo is the device texture backing one screen.
type TextureInfo struct {
	Handle   TextureHandle
	Width    int
	Height   int
	Format   PixelFormat
	Transfer TransferDescriptor

	// solid is set while the storage holds a 1x1 color fill rather than a
	// framebuffer of Format.
	solid bool
}

// matches reports whether the texture storage already fits cfg.
func (t *TextureInfo) matches(cfg FramebufferConfig) bool {
	return !t.solid &&
		t.Width == int(cfg.Width) &&
		t.Height == int(cfg.Height) &&
		t.Format == cfg.Format
}

// textureManager owns the two screen textures. It is driven from the
// presentation goroutine only.
type textureManager struct {
	device      GraphicsDevice
	check       func(op string)
	textures    [SCREEN_COUNT]TextureInfo
	allocations uint64
}

func newTextureManager(device GraphicsDevice, check func(op string)) *textureManager {
	return &textureManager{device: device, check: check}
}

// create generates both texture objects. Storage is allocated lazily on the
// first frame, once the framebuffer size is known.
func (tm *textureManager) create() {
	dev := tm.device
	for i := range tm.textures {
		tm.textures[i] = TextureInfo{Handle: dev.GenTexture()}
		tm.check("GenTexture")
	}
}

func (tm *textureManager) destroy() {
	for i := range tm.textures {
		if tm.textures[i].Handle != 0 {
			tm.device.DeleteTexture(tm.textures[i].Handle)
			tm.check("DeleteTexture")
		}
		tm.textures[i] = TextureInfo{}
	}
}

func (tm *textureManager) texture(screen int) *TextureInfo {
	return &tm.textures[screen]
}

// Allocations is the number of storage allocations made so far.
func (tm *textureManager) Allocations() uint64 {
	return tm.allocations
}

// ensureReady reallocates the screen texture when cfg changed its size or
// format, and is a no-op otherwise.
func (tm *textureManager) ensureReady(screen int, cfg FramebufferConfig) *TextureInfo {
	tex := &tm.textures[screen]
	if tex.matches(cfg) {
		return tex
	}

	transfer := TransferDescriptorFor(cfg.Format)
	tex.Width = int(cfg.Width)
	tex.Height = int(cfg.Height)
	tex.Format = cfg.Format
	tex.Transfer = transfer
	tex.solid = false

	dev := tm.device
	dev.BindTexture(tex.Handle)
	tm.check("BindTexture")
	dev.TexImage2D(transfer.Internal, tex.Width, tex.Height, transfer.Layout, transfer.Type, nil)
	tm.check("TexImage2D")
	dev.BindTexture(0)
	tm.check("BindTexture")
	tm.allocations++

	Logger().Debug("framebuffer texture reallocated",
		"screen", screen, "width", tex.Width, "height", tex.Height, "format", tex.Format)
	return tex
}

// uploadPixels writes the full Width x Height image from pixels, whose rows
// are pixelStride pixels apart.
func (tm *textureManager) uploadPixels(tex *TextureInfo, pixels []byte, pixelStride int) {
	dev := tm.device
	dev.BindTexture(tex.Handle)
	tm.check("BindTexture")
	if pixelStride != tex.Width {
		dev.SetUnpackRowLength(pixelStride)
		tm.check("SetUnpackRowLength")
	}

	dev.TexSubImage2D(0, 0, tex.Width, tex.Height, tex.Transfer.Layout, tex.Transfer.Type, pixels)
	tm.check("TexSubImage2D")

	if pixelStride != tex.Width {
		dev.SetUnpackRowLength(0)
		tm.check("SetUnpackRowLength")
	}
	dev.BindTexture(0)
	tm.check("BindTexture")
}

// uploadSolidColor replaces the texture with a single opaque pixel; the
// sampler stretches it over the whole screen rectangle.
func (tm *textureManager) uploadSolidColor(tex *TextureInfo, r, g, b uint8) {
	pixel := [3]byte{r, g, b}

	dev := tm.device
	dev.BindTexture(tex.Handle)
	tm.check("BindTexture")
	dev.TexImage2D(solidColorTransfer.Internal, 1, 1, solidColorTransfer.Layout, solidColorTransfer.Type, pixel[:])
	tm.check("TexImage2D")
	dev.BindTexture(0)
	tm.check("BindTexture")
	tm.allocations++

	tex.Width = 1
	tex.Height = 1
	tex.Transfer = solidColorTransfer
	tex.solid = true
}
