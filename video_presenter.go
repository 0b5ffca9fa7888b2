// video_presenter.go - Dual screen framebuffer presenter

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

/*
video_presenter.go - Presentation of the Emulated Dual Screen Framebuffers

Each host frame the presenter snapshots the emulated LCD and GPU framebuffer
registers, brings one texture per screen up to date and draws both screens,
rotated into their physical orientation, onto the host surface.

Frame States:

	Idle → FrameBegin → ScreenUpdate(top) → ScreenUpdate(bottom)
	     → Composite → ProfileRecord → Present → Idle

Per screen update:

	                 ┌── color fill enabled ──▶ 1x1 solid texture
	LCD fill reg ────┤
	                 └── disabled ──▶ GPU FB regs ──▶ validate stride
	                                   ──▶ resolve active buffer
	                                   ──▶ (re)allocate on size/format change
	                                   ──▶ sub-image upload with row length

Every device call is followed by a checked read of the device error queue.
Failures are logged with the calling file and line and kept as the frame's
diagnostics; the frame always completes. Only an unsupported pixel format
and a failed device initialisation terminate the process.

The emulated GPU writes framebuffer memory from its own goroutine without
synchronisation. A frame may show a buffer mid-update.
*/

package main

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrFramebufferUnmapped reports an active framebuffer address that does not
// resolve to enough emulated memory for one full upload.
var ErrFramebufferUnmapped = errors.New("framebuffer not fully mapped")

// maxFramebufferBytes caps a single upload below the int range of 32-bit
// hosts. No emulated region is larger.
const maxFramebufferBytes = math.MaxInt32

// PresenterConfig holds the settings the embedding application controls.
type PresenterConfig struct {
	ClearColor [3]float32 // background behind and between the screens
	Strict     bool       // panic on framebuffer contract violations
}

// PresenterState is the position within one PresentFrame.
type PresenterState int32

const (
	StateIdle PresenterState = iota
	StateFrameBegin
	StateScreenUpdateTop
	StateScreenUpdateBottom
	StateComposite
	StateProfileRecord
	StatePresent
)

var presenterStateNames = [...]string{
	StateIdle:               "Idle",
	StateFrameBegin:         "FrameBegin",
	StateScreenUpdateTop:    "ScreenUpdate(top)",
	StateScreenUpdateBottom: "ScreenUpdate(bottom)",
	StateComposite:          "Composite",
	StateProfileRecord:      "ProfileRecord",
	StatePresent:            "Present",
}

func (s PresenterState) String() string {
	if s >= 0 && int(s) < len(presenterStateNames) {
		return presenterStateNames[s]
	}
	return fmt.Sprintf("PresenterState(%d)", int32(s))
}

// FrameDiagnostic is one failure observed while producing a frame.
type FrameDiagnostic struct {
	File   string
	Line   int
	Op     string
	Screen int // -1 when not tied to a screen
	Err    error
}

func (d FrameDiagnostic) String() string {
	return fmt.Sprintf("%s:%d: %s: %v", d.File, d.Line, d.Op, d.Err)
}

// FramebufferPresenter is the PresentationBackend that draws the emulated
// screens through a GraphicsDevice.
type FramebufferPresenter struct {
	device   GraphicsDevice
	mem      MemoryAccessor
	config   PresenterConfig
	host     SurfaceHost
	textures *textureManager
	profiler *FrameProfiler

	frameCount  atomic.Uint64
	state       atomic.Int32
	initialized bool
	released    bool

	diagMutex   sync.Mutex
	pending     []FrameDiagnostic
	diagnostics []FrameDiagnostic
}

// NewFramebufferPresenter creates a presenter. The device is owned by the
// presenter from here on and released by Shutdown.
func NewFramebufferPresenter(device GraphicsDevice, mem MemoryAccessor, config PresenterConfig) *FramebufferPresenter {
	p := &FramebufferPresenter{
		device:   device,
		mem:      mem,
		config:   config,
		profiler: NewFrameProfiler(FRAME_PROFILE_WINDOW, nil),
	}
	p.textures = newTextureManager(device, func(op string) { p.drainDeviceErrors(op, 2) })
	return p
}

// Init brings up the device and creates the screen textures. A device that
// fails to initialise is fatal.
func (p *FramebufferPresenter) Init() {
	if p.initialized {
		return
	}
	if err := p.device.Init(); err != nil {
		fatalf("graphics device initialisation failed: %v", err)
		return
	}
	Logger().Info("graphics device ready", "version", p.device.Version())
	p.released = false

	p.textures.create()
	p.profiler.BeginFrame()
	p.initialized = true
}

// Shutdown releases the textures and the device. It may be called any number
// of times, with or without a prior Init; the device is released once.
func (p *FramebufferPresenter) Shutdown() {
	if p.initialized {
		p.initialized = false
		p.textures.destroy()
	}
	if p.device != nil && !p.released {
		p.released = true
		p.device.Release()
		Logger().Debug("presenter shut down", "frames", p.frameCount.Load())
	}
}

func (p *FramebufferPresenter) SetSurfaceTarget(host SurfaceHost) {
	p.host = host
}

// FrameCount is the number of completed frames.
func (p *FramebufferPresenter) FrameCount() uint64 {
	return p.frameCount.Load()
}

func (p *FramebufferPresenter) Profiler() *FrameProfiler {
	return p.profiler
}

// State reports where the presenter is within PresentFrame.
func (p *FramebufferPresenter) State() PresenterState {
	return PresenterState(p.state.Load())
}

// Allocations is the number of texture storage allocations so far.
func (p *FramebufferPresenter) Allocations() uint64 {
	return p.textures.Allocations()
}

// Texture returns the state of one screen texture.
func (p *FramebufferPresenter) Texture(screen int) TextureInfo {
	return *p.textures.texture(screen)
}

// FrameDiagnostics returns the failures recorded during the last completed
// frame.
func (p *FramebufferPresenter) FrameDiagnostics() []FrameDiagnostic {
	p.diagMutex.Lock()
	defer p.diagMutex.Unlock()
	out := make([]FrameDiagnostic, len(p.diagnostics))
	copy(out, p.diagnostics)
	return out
}

func (p *FramebufferPresenter) setState(s PresenterState) {
	p.state.Store(int32(s))
}

// PresentFrame produces and presents one frame.
func (p *FramebufferPresenter) PresentFrame() {
	if !p.initialized {
		Logger().Warn("PresentFrame before Init ignored")
		return
	}

	p.setState(StateFrameBegin)
	if p.host != nil {
		p.host.MakeCurrent()
	}

	p.setState(StateScreenUpdateTop)
	p.updateScreen(SCREEN_TOP)
	p.setState(StateScreenUpdateBottom)
	p.updateScreen(SCREEN_BOTTOM)

	p.setState(StateComposite)
	p.composite()

	p.setState(StateProfileRecord)
	p.profiler.FinishFrame()
	p.profiler.BeginFrame()
	p.frameCount.Add(1)

	p.setState(StatePresent)
	if p.host != nil {
		p.host.PollEvents()
		p.host.SwapBuffers()
	}

	p.publishDiagnostics()
	p.setState(StateIdle)
}

// updateScreen brings one screen texture up to date with emulated state.
func (p *FramebufferPresenter) updateScreen(screen int) {
	fill, err := readColorFill(p.mem, screen)
	if err != nil {
		p.diagnose(screen, "read color fill", err)
		return
	}
	if fill.Enabled {
		p.textures.uploadSolidColor(p.textures.texture(screen), fill.R, fill.G, fill.B)
		return
	}

	cfg, err := readFramebufferConfig(p.mem, screen)
	if err != nil {
		p.diagnose(screen, "read framebuffer config", err)
		return
	}

	// Unknown formats end here.
	TransferDescriptorFor(cfg.Format)

	if err := cfg.Validate(); err != nil {
		if p.config.Strict {
			panic(fmt.Sprintf("screen %d framebuffer contract violated: %v", screen, err))
		}
		p.diagnose(screen, "validate framebuffer", err)
		return
	}

	if cfg.Width == 0 || cfg.Height == 0 {
		return // screen not programmed
	}

	addr := cfg.ActiveAddress()
	length := cfg.ByteLength()
	vaddr := p.mem.ResolveAddress(addr)
	var pixels []byte
	if vaddr != 0 && length <= maxFramebufferBytes {
		pixels = p.mem.ReadBytes(vaddr, int(length))
	}
	if vaddr == 0 || uint64(len(pixels)) < length {
		p.diagnose(screen, "map framebuffer",
			fmt.Errorf("0x%08X: %d of %d bytes: %w", addr, len(pixels), length, ErrFramebufferUnmapped))
		return
	}

	tex := p.textures.ensureReady(screen, cfg)
	p.textures.uploadPixels(tex, pixels, cfg.PixelStride())
}

func (p *FramebufferPresenter) surfaceLayout() DisplayLayout {
	if p.host != nil {
		return p.host.SurfaceLayout()
	}
	return StackedScreenLayout(SCREEN_TOP_WIDTH, SCREEN_TOP_HEIGHT+SCREEN_BOTTOM_HEIGHT)
}

// composite draws both screens onto the current surface.
func (p *FramebufferPresenter) composite() {
	dev := p.device
	layout := p.surfaceLayout()

	dev.Viewport(0, 0, layout.Width, layout.Height)
	p.checkDevice("Viewport")
	cc := p.config.ClearColor
	dev.SetClearColor(cc[0], cc[1], cc[2], 1)
	p.checkDevice("SetClearColor")
	dev.Clear()
	p.checkDevice("Clear")
	dev.SetProjection(OrthographicProjection(float32(layout.Width), float32(layout.Height)))
	p.checkDevice("SetProjection")

	top, bottom := RectanglesFor(layout)
	p.drawScreen(SCREEN_TOP, top)
	p.drawScreen(SCREEN_BOTTOM, bottom)
}

func (p *FramebufferPresenter) drawScreen(screen int, rect ScreenRect) {
	tex := p.textures.texture(screen)
	if tex.Width == 0 || tex.Height == 0 {
		return // nothing uploaded yet
	}
	dev := p.device
	dev.BindTexture(tex.Handle)
	p.checkDevice("BindTexture")
	dev.DrawQuad(rotatedQuadFor(rect))
	p.checkDevice("DrawQuad")
	dev.BindTexture(0)
	p.checkDevice("BindTexture")
}

// checkDevice drains the device error queue, attributing failures to the
// caller.
func (p *FramebufferPresenter) checkDevice(op string) {
	p.drainDeviceErrors(op, 2)
}

// maxQueuedDeviceErrors bounds one drain; a lost context can report errors
// forever.
const maxQueuedDeviceErrors = 8

func (p *FramebufferPresenter) drainDeviceErrors(op string, skip int) {
	for range maxQueuedDeviceErrors {
		err := p.device.Error()
		if err == nil {
			return
		}
		file, line := callerLocation(skip + 1)
		p.record(FrameDiagnostic{
			File:   file,
			Line:   line,
			Op:     op,
			Screen: -1,
			Err: &VideoError{
				Operation: op,
				Details:   fmt.Sprintf("%s:%d", file, line),
				Err:       err,
			},
		})
	}
}

func (p *FramebufferPresenter) diagnose(screen int, op string, err error) {
	file, line := callerLocation(2)
	p.record(FrameDiagnostic{File: file, Line: line, Op: op, Screen: screen, Err: err})
}

func (p *FramebufferPresenter) record(d FrameDiagnostic) {
	Logger().Error("frame diagnostic",
		"op", d.Op, "screen", d.Screen, "at", fmt.Sprintf("%s:%d", d.File, d.Line), "err", d.Err)
	p.diagMutex.Lock()
	p.pending = append(p.pending, d)
	p.diagMutex.Unlock()
}

func (p *FramebufferPresenter) publishDiagnostics() {
	p.diagMutex.Lock()
	p.diagnostics = p.pending
	p.pending = nil
	p.diagMutex.Unlock()
}

func callerLocation(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "?", 0
	}
	return filepath.Base(file), line
}
