package math

// EaseFunc remaps linear progress in [0, 1] onto a curve with f(0)=0 and f(1)=1.
type EaseFunc func(t float32) float32

// Linear is the identity easing.
func Linear(t float32) float32 { return t }

// EaseInOutCubic accelerates through the first half and decelerates through the second.
func EaseInOutCubic(t float32) float32 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// EaseOutCubic starts fast and settles.
func EaseOutCubic(t float32) float32 {
	u := 1 - t
	return 1 - u*u*u
}

// EaseOutQuart is a sharper EaseOutCubic.
func EaseOutQuart(t float32) float32 {
	u := 1 - t
	return 1 - u*u*u*u
}

// Lerp interpolates between a and b. The two-product form returns b exactly at t=1.
func Lerp(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float32) float32 {
	return Clamp(v, 0, 1)
}
