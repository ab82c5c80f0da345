package window

import (
	"fmt"
	"runtime"
)

// MouseButton identifies which button drives a drag.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// Window provides platform windowing and pointer/keyboard input for the interactive viewer.
// Callbacks run on the thread that calls ProcessMessages.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in, negative = down/zoom out)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key press and repeat events.
	//
	// Parameters:
	//   - callback: function receiving the key code (see common key codes)
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetClickCallback sets the callback for a left-button press and release that moved less
	// than the drag threshold.
	//
	// Parameters:
	//   - callback: function receiving the cursor position in framebuffer pixels
	SetClickCallback(callback func(x, y float32))

	// SetDragCallback sets the callback for cursor movement while a button is held.
	//
	// Parameters:
	//   - callback: function receiving the held button and the movement since the previous event in pixels
	SetDragCallback(callback func(button MouseButton, dx, dy float32))

	// SetMouseMoveCallback sets the callback for mouse movement.
	//
	// Parameters:
	//   - callback: function receiving mouse x, y position
	SetMouseMoveCallback(callback func(x, y float32))

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls OnUpdate callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	title string

	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// width and height track the framebuffer, which differs from the window size on high-DPI displays
	width  int
	height int

	// clickSlop is the largest cursor travel in pixels between press and release still reported as a click
	clickSlop float32

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate    func()
	onResize    func(width, height int)
	onScroll    func(delta float32)
	onKeyDown   func(keyCode uint32)
	onKeyUp     func(keyCode uint32)
	onClick     func(x, y float32)
	onDrag      func(button MouseButton, dx, dy float32)
	onMouseMove func(x, y float32)

	// pointer tracks the button gesture in progress
	pointer pointerState
}

// pointerState turns raw button and cursor events into click and drag gestures.
type pointerState struct {
	held     bool
	button   MouseButton
	pressX   float32
	pressY   float32
	lastX    float32
	lastY    float32
	traveled float32
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
// Panics if the platform window cannot be created.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
func NewWindow(options ...WindowBuilderOption) Window {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:     "oxy-folio",
		maxWidth:  2560,
		maxHeight: 1600,
		minWidth:  640,
		minHeight: 360,
		width:     1280,
		height:    720,
		clickSlop: 4,
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetClickCallback(callback func(x, y float32)) {
	w.onClick = callback
}

func (w *engineWindow) SetDragCallback(callback func(button MouseButton, dx, dy float32)) {
	w.onDrag = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y float32)) {
	w.onMouseMove = callback
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// handleButton records a press or resolves a release into a click.
func (w *engineWindow) handleButton(button MouseButton, pressed bool, x, y float32) {
	if pressed {
		w.pointer = pointerState{held: true, button: button, pressX: x, pressY: y, lastX: x, lastY: y}
		return
	}
	p := w.pointer
	w.pointer = pointerState{}
	if !p.held || p.button != button {
		return
	}
	if button == MouseLeft && p.traveled <= w.clickSlop && w.onClick != nil {
		w.onClick(x, y)
	}
}

// handleCursor reports movement and, while a button is held, drag deltas.
func (w *engineWindow) handleCursor(x, y float32) {
	if w.onMouseMove != nil {
		w.onMouseMove(x, y)
	}
	if !w.pointer.held {
		return
	}
	dx, dy := x-w.pointer.lastX, y-w.pointer.lastY
	w.pointer.lastX, w.pointer.lastY = x, y
	w.pointer.traveled += abs(dx) + abs(dy)
	if w.onDrag != nil && (dx != 0 || dy != 0) {
		w.onDrag(w.pointer.button, dx, dy)
	}
}

// handleResize stores the new framebuffer size and forwards it.
func (w *engineWindow) handleResize(width, height int) {
	w.width = width
	w.height = height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
