// frame_profiler.go - Frame timing samples and aggregation

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
	"sync"
	"time"
)

// FRAME_PROFILE_WINDOW is how many recent frames the aggregate covers.
const FRAME_PROFILE_WINDOW = 120

// FrameStats summarizes the recent frame times.
type FrameStats struct {
	Frames uint64 // samples recorded since creation
	Last   time.Duration
	Min    time.Duration
	Max    time.Duration
	Avg    time.Duration
	FPS    float64
}

// FrameProfiler times frames on the presentation goroutine. Stats may be
// read from anywhere.
type FrameProfiler struct {
	mutex sync.RWMutex
	now   func() time.Time

	running    bool
	frameStart time.Time

	samples []time.Duration
	next    int
	filled  int
	total   uint64
	last    time.Duration
}

func NewFrameProfiler(window int, now func() time.Time) *FrameProfiler {
	if window <= 0 {
		window = FRAME_PROFILE_WINDOW
	}
	if now == nil {
		now = time.Now
	}
	return &FrameProfiler{
		now:     now,
		samples: make([]time.Duration, window),
	}
}

// BeginFrame starts a new sample.
func (p *FrameProfiler) BeginFrame() {
	p.mutex.Lock()
	p.frameStart = p.now()
	p.running = true
	p.mutex.Unlock()
}

// FinishFrame closes the running sample and adds it to the aggregate. It
// returns zero when no sample was running.
func (p *FrameProfiler) FinishFrame() time.Duration {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if !p.running {
		return 0
	}
	d := p.now().Sub(p.frameStart)
	p.running = false

	p.samples[p.next] = d
	p.next = (p.next + 1) % len(p.samples)
	if p.filled < len(p.samples) {
		p.filled++
	}
	p.total++
	p.last = d
	return d
}

// Stats aggregates the samples in the window.
func (p *FrameProfiler) Stats() FrameStats {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	st := FrameStats{Frames: p.total, Last: p.last}
	if p.filled == 0 {
		return st
	}
	var sum time.Duration
	st.Min = p.samples[0]
	for i := 0; i < p.filled; i++ {
		d := p.samples[i]
		sum += d
		st.Min = min(st.Min, d)
		st.Max = max(st.Max, d)
	}
	st.Avg = sum / time.Duration(p.filled)
	if st.Avg > 0 {
		st.FPS = float64(time.Second) / float64(st.Avg)
	}
	return st
}

// Reset drops all samples.
func (p *FrameProfiler) Reset() {
	p.mutex.Lock()
	clear(p.samples)
	p.next, p.filled, p.total, p.last = 0, 0, 0, 0
	p.running = false
	p.mutex.Unlock()
}
