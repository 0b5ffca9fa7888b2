// video_interface.go - Presentation backend and graphics device contracts

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
	"errors"
	"fmt"
	"sort"
)

// VideoError provides detailed error context for video operations
type VideoError struct {
	Operation string // What operation was being attempted
	Details   string // Additional error context
	Err       error  // Underlying error if any
}

func (e *VideoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("video %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("video %s failed: %s", e.Operation, e.Details)
}

func (e *VideoError) Unwrap() error {
	return e.Err
}

// Device error classes, mirroring the GL error codes.
var (
	ErrInvalidEnum      = errors.New("invalid enum")
	ErrInvalidValue     = errors.New("invalid value")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrOutOfMemory      = errors.New("out of memory")
)

// TextureHandle names a device texture. Zero is "no texture".
type TextureHandle uint32

// GraphicsDevice is the backend context object owned by the presenter. Calls
// do not return errors; failures are queued and drained with Error, the way
// a GL context reports them.
type GraphicsDevice interface {
	// Lifecycle
	Init() error
	Version() string
	Release()

	// Textures. All texture calls act on the bound texture.
	GenTexture() TextureHandle
	DeleteTexture(h TextureHandle)
	BindTexture(h TextureHandle)
	TexImage2D(internal TransferLayout, width, height int, layout TransferLayout, typ TransferType, pixels []byte)
	TexSubImage2D(x, y, width, height int, layout TransferLayout, typ TransferType, pixels []byte)
	SetUnpackRowLength(pixels int)

	// Drawing
	Viewport(x, y, width, height int)
	SetClearColor(r, g, b, a float32)
	Clear()
	SetProjection(m Mat3x2)
	DrawQuad(quad ScreenQuad)

	// Error pops the oldest pending error, or returns nil.
	Error() error
}

// SurfaceHost is the windowing collaborator the presenter draws into.
type SurfaceHost interface {
	MakeCurrent()
	PollEvents()
	SwapBuffers()
	SurfaceLayout() DisplayLayout
}

// PresentationBackend is the lifecycle surface exposed to the embedding
// application.
type PresentationBackend interface {
	Init()
	Shutdown()
	SetSurfaceTarget(host SurfaceHost)
	PresentFrame()
	FrameCount() uint64
}

// Predefined video backend types
const (
	VIDEO_BACKEND_EBITEN   = iota // Pure Go Ebiten device and window
	VIDEO_BACKEND_SOFTWARE        // Software device, Linux framebuffer or offscreen surface
	VIDEO_BACKEND_OPENGL          // OpenGL device using cgo, GLX window
	VIDEO_BACKEND_NULL            // Counts frames, draws nothing
)

var backendNames = map[string]int{
	"ebiten":    VIDEO_BACKEND_EBITEN,
	"fbdev":     VIDEO_BACKEND_SOFTWARE,
	"offscreen": VIDEO_BACKEND_SOFTWARE,
	"opengl":    VIDEO_BACKEND_OPENGL,
	"null":      VIDEO_BACKEND_NULL,
}

// deviceFactories holds the devices compiled into this binary. Build-tagged
// files add theirs from init.
var deviceFactories = map[int]func() (GraphicsDevice, error){
	VIDEO_BACKEND_SOFTWARE: func() (GraphicsDevice, error) { return NewSoftDevice(), nil },
}

func registerDevice(backend int, feature string, factory func() (GraphicsDevice, error)) {
	deviceFactories[backend] = factory
	compiledFeatures = append(compiledFeatures, feature)
}

// NewGraphicsDevice creates the device for a backend type
func NewGraphicsDevice(backend int) (GraphicsDevice, error) {
	if backend == VIDEO_BACKEND_NULL {
		return nil, nil
	}
	factory, ok := deviceFactories[backend]
	if !ok {
		return nil, &VideoError{
			Operation: "device creation",
			Details:   fmt.Sprintf("backend %d not compiled into this build", backend),
		}
	}
	return factory()
}

// NewPresentationBackend selects the presentation variant for a backend type.
// The device is owned by the returned backend from here on.
func NewPresentationBackend(backend int, device GraphicsDevice, mem MemoryAccessor, config PresenterConfig) (PresentationBackend, error) {
	switch backend {
	case VIDEO_BACKEND_NULL:
		return NewNullPresenter(mem), nil
	case VIDEO_BACKEND_EBITEN, VIDEO_BACKEND_SOFTWARE, VIDEO_BACKEND_OPENGL:
		if device == nil {
			return nil, &VideoError{
				Operation: "backend creation",
				Details:   "no graphics device",
			}
		}
		return NewFramebufferPresenter(device, mem, config), nil
	}
	return nil, &VideoError{
		Operation: "backend creation",
		Details:   fmt.Sprintf("unknown backend type: %d", backend),
	}
}

func parseBackendName(name string) (int, error) {
	if b, ok := backendNames[name]; ok {
		return b, nil
	}
	names := make([]string, 0, len(backendNames))
	for n := range backendNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return 0, fmt.Errorf("unknown backend %q (want one of %v)", name, names)
}
