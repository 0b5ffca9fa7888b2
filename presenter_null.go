// presenter_null.go - Presentation backend that draws nothing

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

import "sync/atomic"

// NullPresenter satisfies PresentationBackend without a graphics device. It
// keeps the host surface contract and counts frames; used for headless runs
// and for timing the emulated side alone.
type NullPresenter struct {
	mem        MemoryAccessor
	host       SurfaceHost
	started    bool
	frameCount atomic.Uint64
}

func NewNullPresenter(mem MemoryAccessor) *NullPresenter {
	return &NullPresenter{mem: mem}
}

func (n *NullPresenter) Init() {
	if n.started {
		return
	}
	n.started = true
	for screen := range SCREEN_COUNT {
		if cfg, err := readFramebufferConfig(n.mem, screen); err == nil {
			Logger().Debug("null presenter screen", "screen", screen,
				"width", cfg.Width, "height", cfg.Height, "format", cfg.Format)
		}
	}
}

func (n *NullPresenter) Shutdown() {
	n.started = false
}

func (n *NullPresenter) SetSurfaceTarget(host SurfaceHost) {
	n.host = host
}

func (n *NullPresenter) PresentFrame() {
	if n.host != nil {
		n.host.MakeCurrent()
	}
	n.frameCount.Add(1)
	if n.host != nil {
		n.host.PollEvents()
		n.host.SwapBuffers()
	}
}

func (n *NullPresenter) FrameCount() uint64 {
	return n.frameCount.Load()
}
