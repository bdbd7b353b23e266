// Package anim provides the animation clock, tween state, and easing
// curves used by the TUI screens. All curves map progress in [0,1] to
// eased progress in [0,1] and hold their endpoints.
package anim

// Easing identifies one of the built-in easing curves.
type Easing int

const (
	Linear Easing = iota
	EaseIn
	EaseOut
	EaseInOut
	EaseOutCubic
	Bounce
)

// String returns a human-readable name for the easing curve.
func (e Easing) String() string {
	switch e {
	case Linear:
		return "linear"
	case EaseIn:
		return "ease-in"
	case EaseOut:
		return "ease-out"
	case EaseInOut:
		return "ease-in-out"
	case EaseOutCubic:
		return "ease-out-cubic"
	case Bounce:
		return "bounce"
	default:
		return "unknown"
	}
}

// Apply maps raw progress t through the easing curve. Input outside
// [0,1] is clamped first, so every curve is total and satisfies
// Apply(0) == 0 and Apply(1) == 1.
func (e Easing) Apply(t float64) float64 {
	t = Clamp(t, 0, 1)
	switch e {
	case EaseIn:
		return t * t
	case EaseOut:
		return 1 - (1-t)*(1-t)
	case EaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		return 1 - 2*(1-t)*(1-t)
	case EaseOutCubic:
		u := 1 - t
		return 1 - u*u*u
	case Bounce:
		return bounce(t)
	default:
		return t
	}
}

// bounce is the classic four-segment bounce-out curve.
func bounce(t float64) float64 {
	const n = 7.5625
	const d = 2.75
	switch {
	case t < 1/d:
		return n * t * t
	case t < 2/d:
		t -= 1.5 / d
		return n*t*t + 0.75
	case t < 2.5/d:
		t -= 2.25 / d
		return n*t*t + 0.9375
	default:
		t -= 2.625 / d
		return n*t*t + 0.984375
	}
}

// Clamp restricts v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
