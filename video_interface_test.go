// video_interface_test.go - Tests for backend selection and device factories

package main

import (
	"errors"
	"strings"
	"testing"
)

func TestParseBackendName(t *testing.T) {
	for name, want := range map[string]int{
		"ebiten":    VIDEO_BACKEND_EBITEN,
		"offscreen": VIDEO_BACKEND_SOFTWARE,
		"fbdev":     VIDEO_BACKEND_SOFTWARE,
		"opengl":    VIDEO_BACKEND_OPENGL,
		"null":      VIDEO_BACKEND_NULL,
	} {
		got, err := parseBackendName(name)
		if err != nil || got != want {
			t.Errorf("parseBackendName(%q) = %d, %v", name, got, err)
		}
	}
	if _, err := parseBackendName("vulkan"); err == nil || !strings.Contains(err.Error(), "offscreen") {
		t.Fatalf("unknown backend error = %v", err)
	}
}

func TestNewGraphicsDevice_Software(t *testing.T) {
	dev, err := NewGraphicsDevice(VIDEO_BACKEND_SOFTWARE)
	if err != nil {
		t.Fatalf("NewGraphicsDevice: %v", err)
	}
	if _, ok := dev.(*SoftDevice); !ok {
		t.Fatalf("device is %T, want *SoftDevice", dev)
	}
}

func TestNewGraphicsDevice_NullHasNoDevice(t *testing.T) {
	dev, err := NewGraphicsDevice(VIDEO_BACKEND_NULL)
	if dev != nil || err != nil {
		t.Fatalf("got %v, %v", dev, err)
	}
}

func TestNewGraphicsDevice_NotCompiled(t *testing.T) {
	_, err := NewGraphicsDevice(99)
	var verr *VideoError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *VideoError", err)
	}
}

func TestNewPresentationBackend(t *testing.T) {
	mem := NewMemoryMap()

	b, err := NewPresentationBackend(VIDEO_BACKEND_NULL, nil, mem, PresenterConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := b.(*NullPresenter); !ok {
		t.Fatalf("null backend is %T", b)
	}

	b, err = NewPresentationBackend(VIDEO_BACKEND_SOFTWARE, NewSoftDevice(), mem, PresenterConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := b.(*FramebufferPresenter); !ok {
		t.Fatalf("software backend is %T", b)
	}

	if _, err := NewPresentationBackend(VIDEO_BACKEND_SOFTWARE, nil, mem, PresenterConfig{}); err == nil {
		t.Fatal("presenter created without a device")
	}
	if _, err := NewPresentationBackend(42, NewSoftDevice(), mem, PresenterConfig{}); err == nil {
		t.Fatal("unknown backend accepted")
	}
}

func TestVideoError_Unwrap(t *testing.T) {
	err := &VideoError{Operation: "BindTexture", Details: "x.go:1", Err: ErrInvalidValue}
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatal("VideoError does not unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "BindTexture") {
		t.Fatalf("message %q lacks the operation", err.Error())
	}
}

func TestNullPresenter_CountsFramesAndDrivesHost(t *testing.T) {
	quietLogger(t)
	n := NewNullPresenter(NewMemoryMap())
	host := newRecordingHost(400, 480, nil)
	n.SetSurfaceTarget(host)
	n.Init()
	defer n.Shutdown()

	for range 3 {
		n.PresentFrame()
	}
	if n.FrameCount() != 3 {
		t.Fatalf("FrameCount = %d", n.FrameCount())
	}
	if len(host.calls) != 9 || host.calls[8] != "SwapBuffers" {
		t.Fatalf("host calls = %v", host.calls)
	}
}
