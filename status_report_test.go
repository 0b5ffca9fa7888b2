// status_report_test.go - Tests for the terminal status line

package main

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestFormatStatusLine(t *testing.T) {
	st := FrameStats{
		Avg: 16 * time.Millisecond,
		Min: 15 * time.Millisecond,
		Max: 17500 * time.Microsecond,
		FPS: 62.5,
	}
	got := formatStatusLine(120, st, 0)
	want := "frames 120 | fps 62.5 | frame avg 16.00ms min 15.00ms max 17.50ms"
	if got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}

func TestFormatStatusLine_Width(t *testing.T) {
	line := formatStatusLine(1, FrameStats{}, 100)
	if len(line) != 100 || !strings.HasPrefix(line, "frames 1 |") {
		t.Fatalf("padded line %q has length %d", line, len(line))
	}
	if got := formatStatusLine(1, FrameStats{}, 10); got != "frames 1 |" {
		t.Fatalf("clipped line = %q", got)
	}
}

func TestStatusReporter_NonTerminal(t *testing.T) {
	quietLogger(t)
	var buf bytes.Buffer
	r := NewStatusReporter(&buf)

	backend := NewFramebufferPresenter(NewSoftDevice(), NewMemoryMap(), PresenterConfig{})
	backend.Init()
	defer backend.Shutdown()
	backend.PresentFrame()

	r.Report(backend)
	r.Finish()
	r.Finish()

	out := buf.String()
	if !strings.HasPrefix(out, "frames 1 |") || !strings.HasSuffix(out, "\n") || strings.Contains(out, "\r") {
		t.Fatalf("output = %q", out)
	}
}
