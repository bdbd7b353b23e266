package anim

import (
	"math"
	"time"
)

// maxDelta caps the per-tick delta so animations do not fast-forward
// after the terminal was suspended or the loop stalled.
const maxDelta = 250 * time.Millisecond

// Clock turns wall-clock tick timestamps into animation deltas, scaled
// by the configured animation speed.
type Clock struct {
	last  time.Time
	speed float64
}

// NewClock returns a clock with the given speed multiplier. A speed of
// zero or less freezes all animations.
func NewClock(speed float64) *Clock {
	if speed < 0 {
		speed = 0
	}
	return &Clock{speed: speed}
}

// Tick records now and returns the scaled delta since the previous
// tick. The first call returns zero.
func (c *Clock) Tick(now time.Time) time.Duration {
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	delta := now.Sub(c.last)
	c.last = now
	if delta < 0 {
		return 0
	}
	if delta > maxDelta {
		delta = maxDelta
	}
	return time.Duration(float64(delta) * c.speed)
}

// Speed returns the configured speed multiplier.
func (c *Clock) Speed() float64 {
	return c.speed
}

// Tween interpolates a float value over a fixed duration with an
// easing curve. A finished tween holds its terminal value until
// retriggered.
type Tween struct {
	from     float64
	to       float64
	duration time.Duration
	elapsed  time.Duration
	easing   Easing
	active   bool
	last     float64
}

// NewTween returns a tween resting at initial with progress 1.
func NewTween(initial float64) Tween {
	return Tween{from: initial, to: initial, last: 1}
}

// AnimateTo retriggers the tween from its current value toward target.
// A non-positive duration completes immediately.
func (t *Tween) AnimateTo(target float64, d time.Duration, e Easing) {
	t.from = t.Value()
	t.to = target
	t.duration = d
	t.easing = e
	t.elapsed = 0
	if d <= 0 {
		t.last = 1
		t.active = false
		return
	}
	t.last = 0
	t.active = true
}

// Update advances the tween by delta and reports whether this call
// completed the animation.
func (t *Tween) Update(delta time.Duration) bool {
	if !t.active {
		return false
	}
	t.elapsed += delta
	if t.elapsed >= t.duration {
		t.elapsed = t.duration
		t.last = 1
		t.active = false
		return true
	}
	p := t.easing.Apply(float64(t.elapsed) / float64(t.duration))
	if p > t.last {
		t.last = p
	}
	return false
}

// Progress returns the eased progress in [0,1]. A tween that has never
// been triggered, or whose duration was non-positive, reports 1.
func (t *Tween) Progress() float64 {
	return t.last
}

// Value returns the interpolated value at the current progress.
func (t *Tween) Value() float64 {
	return t.from + (t.to-t.from)*t.last
}

// Active reports whether the tween is still running.
func (t *Tween) Active() bool {
	return t.active
}

// SetImmediate pins the tween to v with no animation.
func (t *Tween) SetImmediate(v float64) {
	t.from = v
	t.to = v
	t.last = 1
	t.active = false
}

// Pulse maps an oscillator phase (advanced by the caller, radians) to
// a highlight brightness in [0.4, 1.0].
func Pulse(phase float64) float64 {
	return Clamp(math.Sin(phase)*0.3+0.7, 0.4, 1.0)
}

// BlinkOn reports whether a caret driven by phase (advanced at the
// blink rate, radians) is currently visible.
func BlinkOn(phase float64) bool {
	return math.Sin(phase) > 0
}

// Stagger returns the entrance progress of the index-th item when each
// item's start is delayed by step and the item then animates at double
// speed. The result is clamped to [0,1].
func Stagger(progress float64, index int, step float64) float64 {
	return Clamp((progress-float64(index)*step)*2, 0, 1)
}
