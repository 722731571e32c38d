// Package anim holds animated property values. A Variable is advanced by
// the host's periodic tick; nothing here runs off the UI thread.
package anim

import "time"

// EasingFunc maps time progress (0-1) to value progress (0-1).
type EasingFunc func(t float64) float64

// EaseLinear is the identity curve.
var EaseLinear EasingFunc = func(t float64) float64 { return t }

// CubicBezier returns the CSS-style timing function with control points
// (x1,y1) and (x2,y2).
func CubicBezier(x1, y1, x2, y2 float64) EasingFunc {
	bez := func(a, b, t float64) float64 {
		u := 1 - t
		return 3*u*u*t*a + 3*u*t*t*b + t*t*t
	}
	return func(x float64) float64 {
		if x <= 0 {
			return 0
		}
		if x >= 1 {
			return 1
		}
		lo, hi := 0.0, 1.0
		t := x
		for i := 0; i < 24; i++ {
			t = (lo + hi) / 2
			if bez(x1, x2, t) < x {
				lo = t
			} else {
				hi = t
			}
		}
		return bez(y1, y2, t)
	}
}

// Variable is one animated value.
type Variable struct {
	value    float64
	from     float64
	to       float64
	elapsed  time.Duration
	duration time.Duration
	easing   EasingFunc
	active   bool
}

// NewVariable returns a resting variable at value.
func NewVariable(value float64) *Variable {
	return &Variable{value: value, from: value, to: value, easing: EaseLinear}
}

// Value returns the current interpolated value.
func (v *Variable) Value() float64 {
	return v.value
}

// Target returns the value the variable is heading to.
func (v *Variable) Target() float64 {
	return v.to
}

// Active reports whether a transition is in progress.
func (v *Variable) Active() bool {
	return v.active
}

// Transition starts moving from the current value to `to`. A non-positive
// duration jumps immediately.
func (v *Variable) Transition(to float64, duration time.Duration, easing EasingFunc) {
	if easing == nil {
		easing = EaseLinear
	}
	v.from = v.value
	v.to = to
	v.elapsed = 0
	v.duration = duration
	v.easing = easing
	if duration <= 0 || v.from == to {
		v.value = to
		v.active = false
		return
	}
	v.active = true
}

// Stop freezes the variable at its current value.
func (v *Variable) Stop() {
	v.active = false
	v.from = v.value
	v.to = v.value
}

// Advance moves the transition forward by dt and returns the new value.
func (v *Variable) Advance(dt time.Duration) float64 {
	if !v.active {
		return v.value
	}
	v.elapsed += dt
	if v.elapsed >= v.duration {
		v.value = v.to
		v.active = false
		return v.value
	}
	t := float64(v.elapsed) / float64(v.duration)
	v.value = v.from + (v.to-v.from)*v.easing(t)
	return v.value
}
