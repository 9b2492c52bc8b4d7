package memory

import (
	"math"
	"testing"
	"time"
)

func TestEasingEndpoints(t *testing.T) {
	for _, e := range []Easing{EaseLinear, EaseOutCubic, EaseInOutCubic} {
		if got := e.Apply(0); math.Abs(got) > 1e-9 {
			t.Errorf("easing %d: Apply(0) = %v", e, got)
		}
		if got := e.Apply(1); math.Abs(got-1) > 1e-9 {
			t.Errorf("easing %d: Apply(1) = %v", e, got)
		}
		prev := 0.0
		for i := 1; i <= 20; i++ {
			v := e.Apply(float64(i) / 20)
			if v < prev {
				t.Errorf("easing %d not monotonic at %d/20", e, i)
			}
			prev = v
		}
	}
	if got := EaseInOutCubic.Apply(0.5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("EaseInOutCubic(0.5) = %v, want 0.5", got)
	}
}

func TestAnimationProgress(t *testing.T) {
	a := Animation{Kind: AnimReveal, Start: 100 * time.Millisecond, Duration: 200 * time.Millisecond}
	tests := []struct {
		now  time.Duration
		want float64
	}{
		{0, 0},
		{100 * time.Millisecond, 0},
		{200 * time.Millisecond, 0.5},
		{300 * time.Millisecond, 1},
		{time.Second, 1},
	}
	for _, tt := range tests {
		if got := a.Progress(tt.now); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Progress(%v) = %v, want %v", tt.now, got, tt.want)
		}
	}
	if got := (Animation{}).Progress(0); got != 1 {
		t.Errorf("inactive animation progress = %v, want 1", got)
	}
}

func TestFaceFollowsFlip(t *testing.T) {
	e := newTestEngine(t, 2)
	startPlaying(t, e)

	if !e.SelectCard(1) {
		t.Fatal("SelectCard rejected")
	}
	if f := e.View().Cards[1].Face; f != 0 {
		t.Errorf("face at flip start = %v, want 0", f)
	}
	e.Advance(e.Timing().Flip() / 2)
	c := e.View().Cards[1]
	if math.Abs(c.Face-0.5) > 1e-9 {
		t.Errorf("face halfway = %v, want 0.5", c.Face)
	}
	if c.State != CardHidden {
		t.Errorf("state mid-flip = %v, want hidden until the flip lands", c.State)
	}
	e.Advance(e.Timing().Flip() / 2)
	c = e.View().Cards[1]
	if !c.FaceUp() || c.State != CardRevealed {
		t.Errorf("after flip: face %v state %v", c.Face, c.State)
	}
}
