// screen_layout.go - Projection, screen rectangles and rotated quads

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
	"image"
	"math"
)

// Mat3x2 is a 2D affine transform in row-major order:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
//
// The implicit third row is [0 0 1].
type Mat3x2 struct {
	A, B, C float32
	D, E, F float32
}

// OrthographicProjection maps surface pixels (origin top-left, y down) to
// normalized device coordinates (origin centre, y up).
func OrthographicProjection(width, height float32) Mat3x2 {
	return Mat3x2{
		A: 2 / width, B: 0, C: -1,
		D: 0, E: -2 / height, F: 1,
	}
}

func (m Mat3x2) Apply(x, y float32) (float32, float32) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// ColumnMajor returns the matrix as three columns of two floats, the order
// glUniformMatrix3x2fv expects with transpose disabled.
func (m Mat3x2) ColumnMajor() [6]float32 {
	return [6]float32{m.A, m.D, m.B, m.E, m.C, m.F}
}

// ScreenRect is a destination rectangle in surface pixels.
type ScreenRect struct {
	Left, Top, Right, Bottom int
}

func (r ScreenRect) Width() int  { return r.Right - r.Left }
func (r ScreenRect) Height() int { return r.Bottom - r.Top }

// DisplayLayout is where the two screens land on the host surface.
type DisplayLayout struct {
	Width, Height int
	TopScreen     ScreenRect
	BottomScreen  ScreenRect
}

// RectanglesFor returns the top and bottom destination rectangles of a layout.
func RectanglesFor(layout DisplayLayout) (top, bottom ScreenRect) {
	return layout.TopScreen, layout.BottomScreen
}

// StackedScreenLayout is the default layout policy of the shipped hosts:
// the top screen above the bottom one, the pair letterboxed into the surface
// at its native 400:480 aspect, the narrower bottom screen centred.
func StackedScreenLayout(width, height int) DisplayLayout {
	res := DisplayLayout{Width: max(width, 1), Height: max(height, 1)}
	width, height = res.Width, res.Height

	windowAspect := float64(height) / float64(width)
	emulationAspect := float64(SCREEN_TOP_HEIGHT*2) / float64(SCREEN_TOP_WIDTH)
	bottomRatio := float64(SCREEN_BOTTOM_WIDTH) / float64(SCREEN_TOP_WIDTH)

	if windowAspect > emulationAspect {
		// Narrower than the content: borders above and below
		viewportHeight := int(math.Round(emulationAspect * float64(width)))
		res.TopScreen.Left = 0
		res.TopScreen.Right = width
		res.TopScreen.Top = (height - viewportHeight) / 2
		res.TopScreen.Bottom = res.TopScreen.Top + viewportHeight/2

		bottomWidth := int(bottomRatio * float64(res.TopScreen.Width()))
		border := (res.TopScreen.Width() - bottomWidth) / 2
		res.BottomScreen.Left = border
		res.BottomScreen.Right = border + bottomWidth
		res.BottomScreen.Top = res.TopScreen.Bottom
		res.BottomScreen.Bottom = res.BottomScreen.Top + viewportHeight/2
	} else {
		// Wider than the content: borders left and right
		viewportWidth := int(math.Round(float64(height) / emulationAspect))
		res.TopScreen.Left = (width - viewportWidth) / 2
		res.TopScreen.Right = res.TopScreen.Left + viewportWidth
		res.TopScreen.Top = 0
		res.TopScreen.Bottom = height / 2

		bottomWidth := int(bottomRatio * float64(res.TopScreen.Width()))
		border := (res.TopScreen.Width() - bottomWidth) / 2
		res.BottomScreen.Left = res.TopScreen.Left + border
		res.BottomScreen.Right = res.BottomScreen.Left + bottomWidth
		res.BottomScreen.Top = res.TopScreen.Bottom
		res.BottomScreen.Bottom = res.BottomScreen.Top + height/2
	}
	return res
}

// ScreenVertex is one corner of a screen quad: surface position and texture
// coordinate.
type ScreenVertex struct {
	X, Y float32
	U, V float32
}

// ScreenQuad is a four vertex triangle strip.
type ScreenQuad [4]ScreenVertex

// RotatedScreenQuad builds the quad for one screen. The panels are mounted
// rotated by 90 degrees, so texture u runs bottom-to-top and v runs
// left-to-right across the destination rectangle.
func RotatedScreenQuad(x, y, w, h float32) ScreenQuad {
	return ScreenQuad{
		{X: x, Y: y, U: 1, V: 0},
		{X: x + w, Y: y, U: 1, V: 1},
		{X: x, Y: y + h, U: 0, V: 0},
		{X: x + w, Y: y + h, U: 0, V: 1},
	}
}

func rotatedQuadFor(r ScreenRect) ScreenQuad {
	return RotatedScreenQuad(float32(r.Left), float32(r.Top), float32(r.Width()), float32(r.Height()))
}

// surfacePosition takes a vertex through the projection and a GL viewport
// (origin bottom-left) to pixel coordinates of a target surfaceHeight tall,
// origin top-left.
func surfacePosition(m Mat3x2, viewport image.Rectangle, surfaceHeight int, x, y float32) (float32, float32) {
	nx, ny := m.Apply(x, y)
	wx := float32(viewport.Min.X) + (nx+1)/2*float32(viewport.Dx())
	wy := float32(viewport.Min.Y) + (ny+1)/2*float32(viewport.Dy())
	return wx, float32(surfaceHeight) - wy
}
