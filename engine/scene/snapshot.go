package scene

import (
	"github.com/Carmen-Shannon/oxy-folio/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

// Snapshot is the published state of a scene after an Update.
// Snapshots are plain values safe to hand to other goroutines.
type Snapshot struct {
	Scene         string             `json:"scene"`
	Frame         uint64             `json:"frame"`
	Position      mgl32.Vec3         `json:"position"`
	LookAt        mgl32.Vec3         `json:"look_at"`
	Mode          string             `json:"mode"`
	FocusedID     string             `json:"focused_id,omitempty"`
	Permissions   camera.Permissions `json:"permissions"`
	Transitioning bool               `json:"transitioning"`
	Screen        *ScreenState       `json:"screen,omitempty"`
	Props         []PropState        `json:"props,omitempty"`
}

// ScreenState describes the frame shown on the floating screen.
type ScreenState struct {
	TargetID string `json:"target_id"`
	Index    int    `json:"index"`
	Frame    string `json:"frame"`
	Stopped  bool   `json:"stopped"`
}

// PropState is the transform of one spinning prop.
type PropState struct {
	ID       uint64     `json:"id"`
	Name     string     `json:"name"`
	Position mgl32.Vec3 `json:"position"`
	Rotation mgl32.Vec3 `json:"rotation"`
	Matrix   mgl32.Mat4 `json:"matrix"` // column-major model matrix
}

// TargetInfo describes one registered target.
type TargetInfo struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Position mgl32.Vec3 `json:"position"`
	Yaw      float32    `json:"yaw"`
}

// Layout describes the static parts of a scene: its bounds and pickable targets.
type Layout struct {
	Scene   string        `json:"scene"`
	Bounds  camera.Bounds `json:"bounds"`
	Targets []TargetInfo  `json:"targets"`
}
