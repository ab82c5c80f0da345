package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBindingForKey(t *testing.T) {
	tests := []struct {
		name string
		key  uint32
		want Binding
	}{
		{"escape quits", KeyEsc, Binding{Action: ActionQuit}},
		{"backspace goes back", KeyBack, Binding{Action: ActionBack}},
		{"b goes back", KeyB, Binding{Action: ActionBack}},
		{"first digit focuses index 0", Key1, Binding{Action: ActionFocus, Arg: 0}},
		{"last digit focuses index 8", Key9, Binding{Action: ActionFocus, Arg: 8}},
		{"left arrow orbits left", KeyLeft, Binding{Action: ActionOrbit, Axis: AxisAzimuth, Arg: -1}},
		{"w orbits up", KeyW, Binding{Action: ActionOrbit, Axis: AxisElevation, Arg: 1}},
		{"equals zooms in", KeyEqual, Binding{Action: ActionZoom, Arg: 1}},
		{"keypad minus zooms out", KeyKPSub, Binding{Action: ActionZoom, Arg: -1}},
		{"shift is unbound", KeyLShift, Binding{}},
		{"zero is unbound", 48, Binding{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BindingForKey(tt.key))
		})
	}
}
