package common

// EasingFunc maps normalized progress in [0, 1] to eased progress in [0, 1].
type EasingFunc func(t float32) float32

// Linear returns t unchanged.
func Linear(t float32) float32 {
	return t
}

// EaseInOutQuad accelerates through the first half and decelerates through the second.
// Equivalent to GSAP's power1.inOut curve.
func EaseInOutQuad(t float32) float32 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

// EaseInOutCubic is a steeper ease-in-out (power2.inOut).
func EaseInOutCubic(t float32) float32 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// EaseOutQuad decelerates toward the end.
func EaseOutQuad(t float32) float32 {
	u := 1 - t
	return 1 - u*u
}

// Easings maps config names to easing curves.
var Easings = map[string]EasingFunc{
	"linear":         Linear,
	"power1.inOut":   EaseInOutQuad,
	"power2.inOut":   EaseInOutCubic,
	"power1.out":     EaseOutQuad,
	"easeInOutQuad":  EaseInOutQuad,
	"easeInOutCubic": EaseInOutCubic,
	"easeOutQuad":    EaseOutQuad,
}

// EasingByName looks up an easing curve by name.
//
// Parameters:
//   - name: the easing name (e.g. "power1.inOut")
//
// Returns:
//   - EasingFunc: the curve, or nil if unknown
//   - bool: true if the name is known
func EasingByName(name string) (EasingFunc, bool) {
	fn, ok := Easings[name]
	return fn, ok
}
