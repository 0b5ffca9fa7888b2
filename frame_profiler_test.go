// frame_profiler_test.go - Tests for frame time statistics

package main

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestFrameProfiler_Stats(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewFrameProfiler(4, clock.now)

	for _, d := range []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 30 * time.Millisecond} {
		p.BeginFrame()
		clock.advance(d)
		if got := p.FinishFrame(); got != d {
			t.Fatalf("FinishFrame = %v, want %v", got, d)
		}
	}

	st := p.Stats()
	if st.Frames != 3 || st.Last != 30*time.Millisecond {
		t.Fatalf("frames=%d last=%v", st.Frames, st.Last)
	}
	if st.Min != 10*time.Millisecond || st.Max != 30*time.Millisecond || st.Avg != 20*time.Millisecond {
		t.Fatalf("min/max/avg = %v/%v/%v", st.Min, st.Max, st.Avg)
	}
	if st.FPS != 50 {
		t.Fatalf("FPS = %v, want 50", st.FPS)
	}
}

func TestFrameProfiler_WindowDropsOldSamples(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewFrameProfiler(2, clock.now)

	for _, d := range []time.Duration{100 * time.Millisecond, 10 * time.Millisecond, 10 * time.Millisecond} {
		p.BeginFrame()
		clock.advance(d)
		p.FinishFrame()
	}
	st := p.Stats()
	if st.Frames != 3 {
		t.Fatalf("frames = %d, want 3", st.Frames)
	}
	if st.Max != 10*time.Millisecond {
		t.Fatalf("max = %v, oldest sample not evicted", st.Max)
	}
}

func TestFrameProfiler_FinishWithoutBegin(t *testing.T) {
	p := NewFrameProfiler(0, nil)
	if d := p.FinishFrame(); d != 0 {
		t.Fatalf("FinishFrame without BeginFrame = %v", d)
	}
	if st := p.Stats(); st.Frames != 0 || st.FPS != 0 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestFrameProfiler_Reset(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewFrameProfiler(4, clock.now)
	p.BeginFrame()
	clock.advance(time.Millisecond)
	p.FinishFrame()

	p.Reset()
	if st := p.Stats(); st != (FrameStats{}) {
		t.Fatalf("stats after reset = %+v", st)
	}
}
