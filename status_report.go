// status_report.go - Live frame timing line for the terminal

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
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

const STATUS_REPORT_INTERVAL = time.Second

// profiledBackend is a backend that exposes frame timing.
type profiledBackend interface {
	Profiler() *FrameProfiler
}

// StatusReporter prints frame statistics once per interval. On a terminal
// the line is redrawn in place and clipped to the terminal width; otherwise
// one line per interval is appended.
type StatusReporter struct {
	out   io.Writer
	fd    int
	isTTY bool

	done     chan struct{}
	finished sync.Once
	wg       sync.WaitGroup
}

func NewStatusReporter(out io.Writer) *StatusReporter {
	r := &StatusReporter{out: out, fd: -1, done: make(chan struct{})}
	if f, ok := out.(*os.File); ok {
		r.fd = int(f.Fd())
		r.isTTY = term.IsTerminal(r.fd)
	}
	return r
}

func (r *StatusReporter) width() int {
	if !r.isTTY {
		return 0
	}
	w, _, err := term.GetSize(r.fd)
	if err != nil {
		return 0
	}
	return w
}

// Start reports from a new goroutine until ctx ends or Finish is called.
func (r *StatusReporter) Start(ctx context.Context, backend PresentationBackend) {
	r.wg.Add(1)
	go r.run(ctx, backend)
}

func (r *StatusReporter) run(ctx context.Context, backend PresentationBackend) {
	defer r.wg.Done()

	ticker := time.NewTicker(STATUS_REPORT_INTERVAL)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.done:
			return
		case <-ticker.C:
			r.Report(backend)
		}
	}
}

// Report writes one status line for the backend's current state.
func (r *StatusReporter) Report(backend PresentationBackend) {
	var stats FrameStats
	if pb, ok := backend.(profiledBackend); ok {
		stats = pb.Profiler().Stats()
	}
	line := formatStatusLine(backend.FrameCount(), stats, r.width())
	if r.isTTY {
		fmt.Fprintf(r.out, "\r%s", line)
	} else {
		fmt.Fprintln(r.out, line)
	}
}

// Finish stops reporting and ends the live line.
func (r *StatusReporter) Finish() {
	if r == nil {
		return
	}
	r.finished.Do(func() {
		close(r.done)
		r.wg.Wait()
		if r.isTTY {
			fmt.Fprintln(r.out)
		}
	})
}

// formatStatusLine renders the statistics. A positive width pads or clips
// the line to exactly that many columns.
func formatStatusLine(frames uint64, st FrameStats, width int) string {
	line := fmt.Sprintf("frames %d | fps %.1f | frame avg %s min %s max %s",
		frames, st.FPS, formatMillis(st.Avg), formatMillis(st.Min), formatMillis(st.Max))
	if width <= 0 {
		return line
	}
	if len(line) > width {
		return line[:width]
	}
	return line + strings.Repeat(" ", width-len(line))
}

func formatMillis(d time.Duration) string {
	return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
}
