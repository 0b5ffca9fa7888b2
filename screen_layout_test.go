// screen_layout_test.go - Tests for projection, quads and the stacked layout

package main

import (
	"image"
	"math"
	"testing"
)

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-6
}

func TestOrthographicProjection_TopScreen(t *testing.T) {
	m := OrthographicProjection(400, 240)
	want := Mat3x2{A: 0.005, B: 0, C: -1, D: 0, E: -1.0 / 120, F: 1}
	for i, pair := range [][2]float32{
		{m.A, want.A}, {m.B, want.B}, {m.C, want.C},
		{m.D, want.D}, {m.E, want.E}, {m.F, want.F},
	} {
		if !approxEqual(pair[0], pair[1]) {
			t.Fatalf("element %d = %v, want %v", i, pair[0], pair[1])
		}
	}

	corners := []struct{ x, y, nx, ny float32 }{
		{0, 0, -1, 1},
		{400, 0, 1, 1},
		{0, 240, -1, -1},
		{400, 240, 1, -1},
	}
	for _, c := range corners {
		nx, ny := m.Apply(c.x, c.y)
		if !approxEqual(nx, c.nx) || !approxEqual(ny, c.ny) {
			t.Errorf("(%v,%v) -> (%v,%v), want (%v,%v)", c.x, c.y, nx, ny, c.nx, c.ny)
		}
	}
}

func TestMat3x2_ColumnMajor(t *testing.T) {
	m := Mat3x2{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	if got := m.ColumnMajor(); got != [6]float32{1, 4, 2, 5, 3, 6} {
		t.Fatalf("ColumnMajor = %v", got)
	}
}

func TestRotatedScreenQuad_TextureCoordinates(t *testing.T) {
	q := RotatedScreenQuad(10, 20, 400, 240)
	want := ScreenQuad{
		{X: 10, Y: 20, U: 1, V: 0},
		{X: 410, Y: 20, U: 1, V: 1},
		{X: 10, Y: 260, U: 0, V: 0},
		{X: 410, Y: 260, U: 0, V: 1},
	}
	if q != want {
		t.Fatalf("quad = %+v\nwant   %+v", q, want)
	}
}

func TestStackedScreenLayout_NativeAspect(t *testing.T) {
	l := StackedScreenLayout(400, 480)
	top, bottom := RectanglesFor(l)
	if top != (ScreenRect{Left: 0, Top: 0, Right: 400, Bottom: 240}) {
		t.Fatalf("top = %+v", top)
	}
	if bottom != (ScreenRect{Left: 40, Top: 240, Right: 360, Bottom: 480}) {
		t.Fatalf("bottom = %+v", bottom)
	}
}

func TestStackedScreenLayout_WideWindow(t *testing.T) {
	l := StackedScreenLayout(800, 480)
	if l.TopScreen != (ScreenRect{Left: 200, Top: 0, Right: 600, Bottom: 240}) {
		t.Fatalf("top = %+v", l.TopScreen)
	}
	if l.BottomScreen != (ScreenRect{Left: 240, Top: 240, Right: 560, Bottom: 480}) {
		t.Fatalf("bottom = %+v", l.BottomScreen)
	}
}

func TestStackedScreenLayout_TallWindow(t *testing.T) {
	l := StackedScreenLayout(400, 600)
	// 480 pixel viewport centred vertically.
	if l.TopScreen != (ScreenRect{Left: 0, Top: 60, Right: 400, Bottom: 300}) {
		t.Fatalf("top = %+v", l.TopScreen)
	}
	if l.BottomScreen != (ScreenRect{Left: 40, Top: 300, Right: 360, Bottom: 540}) {
		t.Fatalf("bottom = %+v", l.BottomScreen)
	}
}

func TestStackedScreenLayout_DegenerateSize(t *testing.T) {
	l := StackedScreenLayout(0, -5)
	if l.Width != 1 || l.Height != 1 {
		t.Fatalf("size = %dx%d, want 1x1", l.Width, l.Height)
	}
}

func TestSurfacePosition_IdentityForFullViewport(t *testing.T) {
	m := OrthographicProjection(400, 480)
	vp := image.Rect(0, 0, 400, 480)
	for _, p := range [][2]float32{{0, 0}, {400, 240}, {40, 480}, {123, 77}} {
		x, y := surfacePosition(m, vp, 480, p[0], p[1])
		if math.Abs(float64(x-p[0])) > 1e-3 || math.Abs(float64(y-p[1])) > 1e-3 {
			t.Errorf("(%v,%v) landed at (%v,%v)", p[0], p[1], x, y)
		}
	}
}
