package screen

import "sync"

// DefaultInterval is the time in seconds each frame stays on screen.
const DefaultInterval float32 = 1.0

type frameCycler struct {
	mu *sync.Mutex

	frames   []string
	interval float32
	elapsed  float32
	index    int
	stopped  bool

	onChange func(index int, frame string)
}

// FrameCycler advances through a fixed list of frame references at a fixed interval,
// the way a slideshow texture swaps images on a floating screen.
// Frames are opaque strings (usually asset paths); the cycler never loads them.
type FrameCycler interface {
	// Tick accumulates dt seconds and advances one frame per whole interval elapsed.
	// Does nothing once stopped or when the frame list is empty.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous tick
	Tick(dt float32)

	// Stop freezes the current frame permanently.
	Stop()

	// Stopped reports whether Stop has been called.
	//
	// Returns:
	//   - bool: true once stopped
	Stopped() bool

	// Current returns the index and reference of the frame on screen.
	// The frame is "" when the list is empty.
	//
	// Returns:
	//   - int: frame index
	//   - string: frame reference
	Current() (int, string)

	// Frames returns a copy of the frame list.
	//
	// Returns:
	//   - []string: the frame references in display order
	Frames() []string

	// Interval returns the seconds each frame is shown.
	//
	// Returns:
	//   - float32: the interval
	Interval() float32
}

var _ FrameCycler = &frameCycler{}

// NewFrameCycler creates a FrameCycler showing frames[0] first.
// Panics if the interval option is not positive.
//
// Parameters:
//   - frames: the frame references in display order
//   - options: functional options to configure the cycler
//
// Returns:
//   - FrameCycler: the newly created cycler
func NewFrameCycler(frames []string, options ...FrameCyclerBuilderOption) FrameCycler {
	fc := &frameCycler{
		mu:       &sync.Mutex{},
		frames:   append([]string(nil), frames...),
		interval: DefaultInterval,
	}
	for _, option := range options {
		option(fc)
	}
	if fc.interval <= 0 {
		panic("screen: NewFrameCycler requires a positive interval")
	}
	return fc
}

func (fc *frameCycler) Tick(dt float32) {
	fc.mu.Lock()
	if fc.stopped || len(fc.frames) == 0 || dt <= 0 {
		fc.mu.Unlock()
		return
	}

	fc.elapsed += dt
	advanced := false
	for fc.elapsed >= fc.interval {
		fc.elapsed -= fc.interval
		fc.index = (fc.index + 1) % len(fc.frames)
		advanced = true
	}
	index, frame, cb := fc.index, fc.frames[fc.index], fc.onChange
	fc.mu.Unlock()

	if advanced && cb != nil {
		cb(index, frame)
	}
}

func (fc *frameCycler) Stop() {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.stopped = true
}

func (fc *frameCycler) Stopped() bool {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.stopped
}

func (fc *frameCycler) Current() (int, string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if len(fc.frames) == 0 {
		return 0, ""
	}
	return fc.index, fc.frames[fc.index]
}

func (fc *frameCycler) Frames() []string {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return append([]string(nil), fc.frames...)
}

func (fc *frameCycler) Interval() float32 {
	return fc.interval
}
