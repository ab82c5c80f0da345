package server

import (
	"github.com/Carmen-Shannon/oxy-folio/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// Message types exchanged over the WebSocket.
const (
	MessageHello    = "hello"
	MessageSnapshot = "snapshot"
	MessageClick    = "click"
	MessageAck      = "ack"
	MessageError    = "error"

	CommandClick = "click"
	CommandBack  = "back"
	CommandFocus = "focus"
	CommandOrbit = "orbit"
	CommandZoom  = "zoom"
	CommandPan   = "pan"
)

// ClickRequest selects a pick ray either directly in world space or from a pointer position.
// Origin and Direction take precedence when both are present.
type ClickRequest struct {
	Origin    *mgl32.Vec3 `json:"origin,omitempty"`
	Direction *mgl32.Vec3 `json:"direction,omitempty"`

	X      *float32 `json:"x,omitempty"`
	Y      *float32 `json:"y,omitempty"`
	Width  int      `json:"width,omitempty"`
	Height int      `json:"height,omitempty"`
}

func (c ClickRequest) worldRay() bool {
	return c.Origin != nil && c.Direction != nil
}

func (c ClickRequest) pixel() bool {
	return c.X != nil && c.Y != nil && c.Width > 0 && c.Height > 0
}

// ClickResponse reports the target a click focused. Hit is null on a miss.
type ClickResponse struct {
	Hit *string `json:"hit"`
}

// ClientMessage is a command sent by a WebSocket client.
type ClientMessage struct {
	Type string `json:"type"`

	ClickRequest

	// focus
	ID string `json:"id,omitempty"`

	// orbit
	DAzimuth   float32 `json:"d_azimuth,omitempty"`
	DElevation float32 `json:"d_elevation,omitempty"`

	// zoom
	Delta float32 `json:"delta,omitempty"`

	// pan
	DX float32 `json:"dx,omitempty"`
	DY float32 `json:"dy,omitempty"`
}

// ServerMessage is anything the server pushes to a WebSocket client.
type ServerMessage struct {
	Type     string          `json:"type"`
	Session  string          `json:"session,omitempty"`
	Command  string          `json:"command,omitempty"`
	Snapshot *scene.Snapshot `json:"snapshot,omitempty"`
	Layout   *scene.Layout   `json:"layout,omitempty"`
	Result   *ClickResponse  `json:"result,omitempty"`
	Error    string          `json:"error,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}
