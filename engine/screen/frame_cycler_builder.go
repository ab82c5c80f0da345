package screen

// FrameCyclerBuilderOption is a functional option for configuring a FrameCycler.
type FrameCyclerBuilderOption func(*frameCycler)

// WithInterval sets the seconds each frame is shown.
//
// Parameters:
//   - seconds: display time per frame; must be positive
//
// Returns:
//   - FrameCyclerBuilderOption: option function to apply
func WithInterval(seconds float32) FrameCyclerBuilderOption {
	return func(fc *frameCycler) {
		fc.interval = seconds
	}
}

// WithStartIndex sets the frame shown first. Out-of-range values wrap.
//
// Parameters:
//   - index: the starting frame index
//
// Returns:
//   - FrameCyclerBuilderOption: option function to apply
func WithStartIndex(index int) FrameCyclerBuilderOption {
	return func(fc *frameCycler) {
		if n := len(fc.frames); n > 0 {
			fc.index = ((index % n) + n) % n
		}
	}
}

// WithOnChange registers the frame-advance callback at construction.
//
// Parameters:
//   - fn: the callback
//
// Returns:
//   - FrameCyclerBuilderOption: option function to apply
func WithOnChange(fn func(index int, frame string)) FrameCyclerBuilderOption {
	return func(fc *frameCycler) {
		fc.onChange = fn
	}
}
