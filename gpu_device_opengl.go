//go:build opengl && linux && cgo

// gpu_device_opengl.go - OpenGL graphics device and GLX window host

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

/*
#cgo linux LDFLAGS: -lGL -lX11
#cgo CFLAGS: -O2

#include <stdlib.h>
#include <GL/gl.h>
#include <GL/glx.h>
#include <X11/Xlib.h>

#ifndef GL_UNPACK_ROW_LENGTH
#define GL_UNPACK_ROW_LENGTH 0x0CF2
#endif
#ifndef GL_CLAMP_TO_EDGE
#define GL_CLAMP_TO_EDGE 0x812F
#endif

static Display* display;
static Window window;
static GLXContext context;
static Atom wmDelete;
static int initialized = 0;
static int surfaceWidth = 0;
static int surfaceHeight = 0;

static int glxOpen(int width, int height, const char* title) {
    display = XOpenDisplay(NULL);
    if (!display) {
        return -1;
    }

    static int visual_attribs[] = {
        GLX_RGBA,
        GLX_DOUBLEBUFFER,
        None
    };

    int screen = DefaultScreen(display);
    XVisualInfo* vi = glXChooseVisual(display, screen, visual_attribs);
    if (!vi) {
        XCloseDisplay(display);
        return -2;
    }

    Colormap cmap = XCreateColormap(display, RootWindow(display, vi->screen), vi->visual, AllocNone);

    XSetWindowAttributes swa;
    swa.colormap = cmap;
    swa.border_pixel = 0;
    swa.event_mask = StructureNotifyMask | ExposureMask;

    window = XCreateWindow(display, RootWindow(display, vi->screen),
                           0, 0, width, height, 0,
                           vi->depth, InputOutput, vi->visual,
                           CWBorderPixel|CWColormap|CWEventMask, &swa);

    XStoreName(display, window, title);
    wmDelete = XInternAtom(display, "WM_DELETE_WINDOW", False);
    XSetWMProtocols(display, window, &wmDelete, 1);
    XMapWindow(display, window);

    context = glXCreateContext(display, vi, NULL, GL_TRUE);
    XFree(vi);
    if (!context) {
        XDestroyWindow(display, window);
        XCloseDisplay(display);
        return -3;
    }

    glXMakeCurrent(display, window, context);
    glEnable(GL_TEXTURE_2D);
    glDisable(GL_DEPTH_TEST);
    glDisable(GL_BLEND);

    surfaceWidth = width;
    surfaceHeight = height;
    initialized = 1;
    return 0;
}

static void glxMakeCurrent() {
    if (!initialized) return;
    glXMakeCurrent(display, window, context);
}

// Returns 1 once the window has been closed.
static int glxPollEvents() {
    if (!initialized) return 1;
    while (XPending(display)) {
        XEvent ev;
        XNextEvent(display, &ev);
        if (ev.type == ConfigureNotify) {
            surfaceWidth = ev.xconfigure.width;
            surfaceHeight = ev.xconfigure.height;
        } else if (ev.type == ClientMessage && (Atom)ev.xclient.data.l[0] == wmDelete) {
            return 1;
        }
    }
    return 0;
}

static void glxSwapBuffers() {
    if (!initialized) return;
    glXSwapBuffers(display, window);
}

static void glxClose() {
    if (!initialized) return;
    glXMakeCurrent(display, None, NULL);
    glXDestroyContext(display, context);
    XDestroyWindow(display, window);
    XCloseDisplay(display);
    initialized = 0;
}

static int glxWidth() { return surfaceWidth; }
static int glxHeight() { return surfaceHeight; }

static void createScreenTexture(GLuint* tex) {
    glGenTextures(1, tex);
    glBindTexture(GL_TEXTURE_2D, *tex);
    glTexParameteri(GL_TEXTURE_2D, GL_TEXTURE_MIN_FILTER, GL_LINEAR);
    glTexParameteri(GL_TEXTURE_2D, GL_TEXTURE_MAG_FILTER, GL_LINEAR);
    glTexParameteri(GL_TEXTURE_2D, GL_TEXTURE_WRAP_S, GL_CLAMP_TO_EDGE);
    glTexParameteri(GL_TEXTURE_2D, GL_TEXTURE_WRAP_T, GL_CLAMP_TO_EDGE);
    glTexParameteri(GL_TEXTURE_2D, GL_TEXTURE_MAX_LEVEL, 0);
    glBindTexture(GL_TEXTURE_2D, 0);
}

static void drawQuad(const float* v) {
    glBegin(GL_TRIANGLE_STRIP);
    for (int i = 0; i < 4; i++) {
        glTexCoord2f(v[i*4+2], v[i*4+3]);
        glVertex2f(v[i*4+0], v[i*4+1]);
    }
    glEnd();
}
*/
import "C"

import (
	"fmt"
	"runtime"
	"unsafe"
)

func init() {
	registerDevice(VIDEO_BACKEND_OPENGL, "device: opengl (cgo, GL 2.1)", func() (GraphicsDevice, error) {
		return &GLDevice{}, nil
	})
	registerHost("opengl", runGLXHost)
}

// GLDevice passes device calls straight to the current GL context. Packed
// pixel types are read by GL as host-order words; see le_check.go.
type GLDevice struct{}

func (d *GLDevice) Init() error {
	if C.glXGetCurrentContext() == nil {
		return &VideoError{Operation: "OpenGL init", Details: "no current GLX context"}
	}
	return nil
}

func (d *GLDevice) Version() string {
	v := C.glGetString(C.GL_VERSION)
	r := C.glGetString(C.GL_RENDERER)
	if v == nil {
		return "OpenGL (unknown)"
	}
	return fmt.Sprintf("OpenGL %s (%s)",
		C.GoString((*C.char)(unsafe.Pointer(v))), C.GoString((*C.char)(unsafe.Pointer(r))))
}

func (d *GLDevice) Release() {}

func (d *GLDevice) GenTexture() TextureHandle {
	var tex C.GLuint
	C.createScreenTexture(&tex)
	return TextureHandle(tex)
}

func (d *GLDevice) DeleteTexture(h TextureHandle) {
	tex := C.GLuint(h)
	C.glDeleteTextures(1, &tex)
}

func (d *GLDevice) BindTexture(h TextureHandle) {
	C.glBindTexture(C.GL_TEXTURE_2D, C.GLuint(h))
}

func pixelPointer(pixels []byte) unsafe.Pointer {
	if len(pixels) == 0 {
		return nil
	}
	return unsafe.Pointer(&pixels[0])
}

func (d *GLDevice) TexImage2D(internal TransferLayout, width, height int, layout TransferLayout, typ TransferType, pixels []byte) {
	C.glTexImage2D(C.GL_TEXTURE_2D, 0, C.GLint(internal), C.GLsizei(width), C.GLsizei(height), 0,
		C.GLenum(layout), C.GLenum(typ), pixelPointer(pixels))
}

func (d *GLDevice) TexSubImage2D(x, y, width, height int, layout TransferLayout, typ TransferType, pixels []byte) {
	C.glTexSubImage2D(C.GL_TEXTURE_2D, 0, C.GLint(x), C.GLint(y), C.GLsizei(width), C.GLsizei(height),
		C.GLenum(layout), C.GLenum(typ), pixelPointer(pixels))
}

func (d *GLDevice) SetUnpackRowLength(pixels int) {
	C.glPixelStorei(C.GL_UNPACK_ROW_LENGTH, C.GLint(pixels))
}

func (d *GLDevice) Viewport(x, y, width, height int) {
	C.glViewport(C.GLint(x), C.GLint(y), C.GLsizei(width), C.GLsizei(height))
}

func (d *GLDevice) SetClearColor(r, g, b, a float32) {
	C.glClearColor(C.GLfloat(r), C.GLfloat(g), C.GLfloat(b), C.GLfloat(a))
}

func (d *GLDevice) Clear() {
	C.glClear(C.GL_COLOR_BUFFER_BIT)
}

// SetProjection loads the 3x2 transform as a 4x4 fixed function projection.
func (d *GLDevice) SetProjection(m Mat3x2) {
	matrix := [16]C.GLfloat{
		C.GLfloat(m.A), C.GLfloat(m.D), 0, 0,
		C.GLfloat(m.B), C.GLfloat(m.E), 0, 0,
		0, 0, 1, 0,
		C.GLfloat(m.C), C.GLfloat(m.F), 0, 1,
	}
	C.glMatrixMode(C.GL_PROJECTION)
	C.glLoadMatrixf(&matrix[0])
	C.glMatrixMode(C.GL_MODELVIEW)
	C.glLoadIdentity()
}

func (d *GLDevice) DrawQuad(quad ScreenQuad) {
	var v [16]C.float
	for i, vert := range quad {
		v[i*4+0] = C.float(vert.X)
		v[i*4+1] = C.float(vert.Y)
		v[i*4+2] = C.float(vert.U)
		v[i*4+3] = C.float(vert.V)
	}
	C.drawQuad(&v[0])
}

func (d *GLDevice) Error() error {
	switch C.glGetError() {
	case C.GL_NO_ERROR:
		return nil
	case C.GL_INVALID_ENUM:
		return ErrInvalidEnum
	case C.GL_INVALID_VALUE:
		return ErrInvalidValue
	case C.GL_INVALID_OPERATION:
		return ErrInvalidOperation
	case C.GL_OUT_OF_MEMORY:
		return ErrOutOfMemory
	default:
		return ErrInvalidOperation
	}
}

// GLXSurface is an X11 window with a GLX context.
type GLXSurface struct {
	closed bool
	stop   func()
}

func (s *GLXSurface) MakeCurrent() {
	C.glxMakeCurrent()
}

func (s *GLXSurface) PollEvents() {
	if C.glxPollEvents() != 0 && !s.closed {
		s.closed = true
		if s.stop != nil {
			s.stop()
		}
	}
}

func (s *GLXSurface) SwapBuffers() {
	C.glxSwapBuffers()
}

func (s *GLXSurface) SurfaceLayout() DisplayLayout {
	return StackedScreenLayout(int(C.glxWidth()), int(C.glxHeight()))
}

func runGLXHost(backend PresentationBackend, device GraphicsDevice, opts HostOptions) error {
	// GL contexts are bound to the creating thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	w, h := opts.surfaceSize()
	title := C.CString("Dual Screen Presenter")
	defer C.free(unsafe.Pointer(title))
	if rc := C.glxOpen(C.int(w), C.int(h), title); rc != 0 {
		return &VideoError{Operation: "GLX window", Details: fmt.Sprintf("glxOpen returned %d", int(rc))}
	}
	defer C.glxClose()

	ctx, stop := hostContext()
	defer stop()
	surface := &GLXSurface{stop: stop}

	backend.SetSurfaceTarget(surface)
	backend.Init()
	defer backend.Shutdown()

	runFrameLoop(ctx, backend, opts.Frames)
	return nil
}
