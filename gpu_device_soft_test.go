// gpu_device_soft_test.go - Tests for the software graphics device

package main

import (
	"errors"
	"image"
	"testing"
)

func TestSoftDevice_ErrorQueue(t *testing.T) {
	d := NewSoftDevice()
	d.BindTexture(99)
	d.SetUnpackRowLength(-1)

	if err := d.Error(); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("first error = %v, want ErrInvalidValue", err)
	}
	if err := d.Error(); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("second error = %v, want ErrInvalidValue", err)
	}
	if err := d.Error(); err != nil {
		t.Fatalf("queue not drained: %v", err)
	}
}

func TestSoftDevice_UploadWithoutBinding(t *testing.T) {
	d := NewSoftDevice()
	d.TexImage2D(TransferLayoutRGB, 1, 1, TransferLayoutRGB, TransferTypeUnsignedByte, []byte{1, 2, 3})
	if err := d.Error(); !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("err = %v, want ErrInvalidOperation", err)
	}
}

func TestSoftDevice_SubImageBeforeStorage(t *testing.T) {
	d := NewSoftDevice()
	h := d.GenTexture()
	d.BindTexture(h)
	d.TexSubImage2D(0, 0, 1, 1, TransferLayoutRGB, TransferTypeUnsignedByte, []byte{1, 2, 3})
	if err := d.Error(); !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("err = %v, want ErrInvalidOperation", err)
	}
}

func TestSoftDevice_SubImageOutOfBounds(t *testing.T) {
	d := NewSoftDevice()
	h := d.GenTexture()
	d.BindTexture(h)
	d.TexImage2D(TransferLayoutRGB, 4, 4, TransferLayoutRGB, TransferTypeUnsignedByte, nil)
	d.TexSubImage2D(2, 2, 4, 4, TransferLayoutRGB, TransferTypeUnsignedByte, make([]byte, 64))
	if err := d.Error(); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("err = %v, want ErrInvalidValue", err)
	}
}

func TestSoftDevice_BadTransferEnum(t *testing.T) {
	d := NewSoftDevice()
	h := d.GenTexture()
	d.BindTexture(h)
	d.TexImage2D(TransferLayoutRGB, 1, 1, TransferLayoutRGB, TransferType(0x1234), nil)
	if err := d.Error(); !errors.Is(err, ErrInvalidEnum) {
		t.Fatalf("err = %v, want ErrInvalidEnum", err)
	}
}

func TestSoftDevice_ShortPixelData(t *testing.T) {
	d := NewSoftDevice()
	h := d.GenTexture()
	d.BindTexture(h)
	d.TexImage2D(TransferLayoutRGBA, 2, 2, TransferLayoutRGBA, TransferTypeUint8888, nil)
	d.TexSubImage2D(0, 0, 2, 2, TransferLayoutRGBA, TransferTypeUint8888, make([]byte, 15))
	if err := d.Error(); !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("err = %v, want ErrInvalidOperation", err)
	}
}

func TestSoftDevice_ClearFillsTarget(t *testing.T) {
	d := NewSoftDevice()
	target := image.NewRGBA(image.Rect(0, 0, 8, 8))
	d.SetTarget(target)
	d.SetClearColor(1, 0.5, 0, 1)
	d.Clear()

	if got := pixelAt(target, 7, 7); got != [4]uint8{0xFF, 0x80, 0, 0xFF} {
		t.Fatalf("cleared pixel = %v", got)
	}
	snap := d.Snapshot()
	target.Pix[0] = 0
	if snap.Pix[0] != 0xFF {
		t.Fatal("snapshot shares memory with the target")
	}
}

func TestSoftDevice_DrawQuadStretchesTexture(t *testing.T) {
	d := NewSoftDevice()
	target := image.NewRGBA(image.Rect(0, 0, 40, 20))
	d.SetTarget(target)

	h := d.GenTexture()
	d.BindTexture(h)
	// 2x1 texture, left texel red, right texel blue.
	d.TexImage2D(TransferLayoutRGB, 2, 1, TransferLayoutRGB, TransferTypeUnsignedByte,
		[]byte{0xFF, 0, 0, 0, 0, 0xFF})

	d.Viewport(0, 0, 40, 20)
	d.SetProjection(OrthographicProjection(40, 20))
	d.DrawQuad(ScreenQuad{
		{X: 0, Y: 0, U: 0, V: 0},
		{X: 40, Y: 0, U: 1, V: 0},
		{X: 0, Y: 20, U: 0, V: 1},
		{X: 40, Y: 20, U: 1, V: 1},
	})
	if err := d.Error(); err != nil {
		t.Fatalf("DrawQuad: %v", err)
	}

	if got := pixelAt(target, 2, 10); got != [4]uint8{0xFF, 0, 0, 0xFF} {
		t.Fatalf("left = %v, want red", got)
	}
	if got := pixelAt(target, 37, 10); got != [4]uint8{0, 0, 0xFF, 0xFF} {
		t.Fatalf("right = %v, want blue", got)
	}
}

func TestSolveAffine_Degenerate(t *testing.T) {
	p := [2]float64{1, 1}
	if _, ok := solveAffine(p, p, p, p, p, p); ok {
		t.Fatal("solved a degenerate triangle")
	}
}

func TestUnitToByte(t *testing.T) {
	for _, tt := range []struct {
		in   float32
		want uint8
	}{{-1, 0}, {0, 0}, {0.5, 0x80}, {1, 0xFF}, {2, 0xFF}} {
		if got := unitToByte(tt.in); got != tt.want {
			t.Errorf("unitToByte(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
