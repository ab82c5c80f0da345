package common

// Key codes delivered by the window's key callbacks.
// Printable keys use their ASCII value; the rest follow GLFW numbering.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyB      = 66 // B key (ASCII)
	KeyR      = 82 // R key (ASCII)
	KeyMinus  = 45 // - key (ASCII)
	KeyEqual  = 61 // = key (ASCII)
	KeyA      = 65 // A key (ASCII)
	KeyD      = 68 // D key (ASCII)
	KeyS      = 83 // S key (ASCII)
	KeyW      = 87 // W key (ASCII)
	Key1      = 49 // 1 key (ASCII)
	Key9      = 57 // 9 key (ASCII)
	KeyEsc    = 256
	KeyBack   = 259 // Backspace
	KeyRight  = 262
	KeyLeft   = 263
	KeyDown   = 264
	KeyUp     = 265
	KeyKPAdd  = 334 // keypad +
	KeyKPSub  = 333 // keypad -
	KeyLShift = 340
)

// Action is what a key press asks the viewer to do.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionBack
	ActionFocus // Arg is the zero-based target index
	ActionOrbit // Arg is -1 or +1 along Axis
	ActionZoom  // Arg is +1 (in) or -1 (out)
)

// Axis selects the orbit direction of an ActionOrbit binding.
type Axis int

const (
	AxisAzimuth Axis = iota
	AxisElevation
)

// Binding is the resolved meaning of a key press.
type Binding struct {
	Action Action
	Axis   Axis
	Arg    int
}

// ViewerBindings maps key codes to viewer actions. Digits 1-9 are handled by BindingForKey.
var ViewerBindings = map[uint32]Binding{
	KeyEsc:   {Action: ActionQuit},
	KeyBack:  {Action: ActionBack},
	KeyB:     {Action: ActionBack},
	KeyR:     {Action: ActionBack},
	KeyLeft:  {Action: ActionOrbit, Axis: AxisAzimuth, Arg: -1},
	KeyA:     {Action: ActionOrbit, Axis: AxisAzimuth, Arg: -1},
	KeyRight: {Action: ActionOrbit, Axis: AxisAzimuth, Arg: 1},
	KeyD:     {Action: ActionOrbit, Axis: AxisAzimuth, Arg: 1},
	KeyUp:    {Action: ActionOrbit, Axis: AxisElevation, Arg: 1},
	KeyW:     {Action: ActionOrbit, Axis: AxisElevation, Arg: 1},
	KeyDown:  {Action: ActionOrbit, Axis: AxisElevation, Arg: -1},
	KeyS:     {Action: ActionOrbit, Axis: AxisElevation, Arg: -1},
	KeyEqual: {Action: ActionZoom, Arg: 1},
	KeyKPAdd: {Action: ActionZoom, Arg: 1},
	KeyMinus: {Action: ActionZoom, Arg: -1},
	KeyKPSub: {Action: ActionZoom, Arg: -1},
}

// BindingForKey resolves a key code against ViewerBindings.
//
// Parameters:
//   - keyCode: the code passed to a window key callback
//
// Returns:
//   - Binding: the resolved binding; Action is ActionNone for unbound keys
func BindingForKey(keyCode uint32) Binding {
	if keyCode >= Key1 && keyCode <= Key9 {
		return Binding{Action: ActionFocus, Arg: int(keyCode - Key1)}
	}
	return ViewerBindings[keyCode]
}
