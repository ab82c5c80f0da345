package camera

import (
	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/go-gl/mathgl/mgl32"
)

// completionSlop absorbs float32 rounding when many frame deltas are summed into Elapsed.
const completionSlop = 1e-4

// Transition animates one vector property from Start to End over Duration seconds.
// It is advanced explicitly by Advance; nothing schedules it in the background.
type Transition struct {
	Start    mgl32.Vec3
	End      mgl32.Vec3
	Duration float32
	Easing   common.EasingFunc
	Elapsed  float32
}

// NewTransition creates a Transition with zero elapsed time.
// A nil easing falls back to common.Linear.
//
// Parameters:
//   - start: the value at progress 0
//   - end: the value at progress 1
//   - duration: length of the animation in seconds
//   - easing: the easing curve
//
// Returns:
//   - *Transition: the new transition
func NewTransition(start, end mgl32.Vec3, duration float32, easing common.EasingFunc) *Transition {
	if easing == nil {
		easing = common.Linear
	}
	return &Transition{
		Start:    start,
		End:      end,
		Duration: duration,
		Easing:   easing,
	}
}

// Advance adds dt to the elapsed time and returns the interpolated value.
// Negative dt is ignored so elapsed never decreases.
//
// Parameters:
//   - dt: elapsed seconds since the previous advance
//
// Returns:
//   - mgl32.Vec3: the eased value at the new elapsed time
//   - bool: true once the transition has reached its end
func (t *Transition) Advance(dt float32) (mgl32.Vec3, bool) {
	if dt > 0 {
		t.Elapsed += dt
	}
	if t.Duration <= 0 || t.Elapsed >= t.Duration-completionSlop {
		return t.End, true
	}
	return common.Lerp3(t.Start, t.End, t.Easing(t.Elapsed/t.Duration)), false
}
