// Package config loads the portfolio scene layout and runtime settings.
package config

import (
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/Carmen-Shannon/oxy-folio/engine/logger"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalid wraps every validation failure returned by Validate.
var ErrInvalid = errors.New("config: invalid")

// Vec3 is a config-friendly 3D vector, written as a three element list.
type Vec3 [3]float32

// Vec returns the vector as an mgl32.Vec3.
func (v Vec3) Vec() mgl32.Vec3 {
	return mgl32.Vec3(v)
}

// Config is the full application configuration.
type Config struct {
	Log      logger.Config  `mapstructure:"log" yaml:"log"`
	Engine   EngineConfig   `mapstructure:"engine" yaml:"engine"`
	Camera   CameraConfig   `mapstructure:"camera" yaml:"camera"`
	Screen   ScreenConfig   `mapstructure:"screen" yaml:"screen"`
	Projects []TargetConfig `mapstructure:"projects" yaml:"projects"`
	Props    []PropConfig   `mapstructure:"props" yaml:"props"`
	Assets   AssetsConfig   `mapstructure:"assets" yaml:"assets"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Window   WindowConfig   `mapstructure:"window" yaml:"window"`
}

// EngineConfig configures the frame loop.
type EngineConfig struct {
	TickRate  float64 `mapstructure:"tick_rate" yaml:"tick_rate"`
	Profiling bool    `mapstructure:"profiling" yaml:"profiling"`
	QueueSize int     `mapstructure:"queue_size" yaml:"queue_size"`
}

// PermissionsConfig holds the interaction flags the camera starts with.
type PermissionsConfig struct {
	Rotate bool `mapstructure:"rotate" yaml:"rotate"`
	Pan    bool `mapstructure:"pan" yaml:"pan"`
	Zoom   bool `mapstructure:"zoom" yaml:"zoom"`
}

// CameraConfig configures the camera and its interaction controller.
type CameraConfig struct {
	MinDistance        float32           `mapstructure:"min_distance" yaml:"min_distance"`
	MaxDistance        float32           `mapstructure:"max_distance" yaml:"max_distance"`
	StartPosition      Vec3              `mapstructure:"start_position" yaml:"start_position"`
	DefaultPosition    Vec3              `mapstructure:"default_position" yaml:"default_position"`
	DefaultLookAt      Vec3              `mapstructure:"default_look_at" yaml:"default_look_at"`
	Standoff           float32           `mapstructure:"standoff" yaml:"standoff"`
	Lift               float32           `mapstructure:"lift" yaml:"lift"`
	TransitionDuration float32           `mapstructure:"transition_duration" yaml:"transition_duration"`
	Easing             string            `mapstructure:"easing" yaml:"easing"`
	Fov                float32           `mapstructure:"fov" yaml:"fov"` // degrees
	Near               float32           `mapstructure:"near" yaml:"near"`
	Far                float32           `mapstructure:"far" yaml:"far"`
	ZoomSpeed          float32           `mapstructure:"zoom_speed" yaml:"zoom_speed"`
	PanSpeed           float32           `mapstructure:"pan_speed" yaml:"pan_speed"`
	Permissions        PermissionsConfig `mapstructure:"permissions" yaml:"permissions"`
}

// ColliderConfig describes a target's pickable shape.
type ColliderConfig struct {
	Shape       string  `mapstructure:"shape" yaml:"shape"` // quad, sphere or box
	Width       float32 `mapstructure:"width" yaml:"width,omitempty"`
	Height      float32 `mapstructure:"height" yaml:"height,omitempty"`
	Radius      float32 `mapstructure:"radius" yaml:"radius,omitempty"`
	HalfExtents Vec3    `mapstructure:"half_extents" yaml:"half_extents,omitempty"`
}

// TargetConfig places one clickable project placeholder.
type TargetConfig struct {
	ID       string         `mapstructure:"id" yaml:"id"`
	Name     string         `mapstructure:"name" yaml:"name,omitempty"`
	Image    string         `mapstructure:"image" yaml:"image,omitempty"`
	Position Vec3           `mapstructure:"position" yaml:"position"`
	Yaw      float32        `mapstructure:"yaw" yaml:"yaw"`
	Collider ColliderConfig `mapstructure:"collider" yaml:"collider"`
}

// ScreenConfig places the floating screen and its frame slideshow.
type ScreenConfig struct {
	Enabled  bool     `mapstructure:"enabled" yaml:"enabled"`
	ID       string   `mapstructure:"id" yaml:"id"`
	Name     string   `mapstructure:"name" yaml:"name,omitempty"`
	Position Vec3     `mapstructure:"position" yaml:"position"`
	Yaw      float32  `mapstructure:"yaw" yaml:"yaw"`
	Width    float32  `mapstructure:"width" yaml:"width"`
	Height   float32  `mapstructure:"height" yaml:"height"`
	Frames   []string `mapstructure:"frames" yaml:"frames"`
	Interval float32  `mapstructure:"interval" yaml:"interval"`
}

// PropConfig places a decorative spinning object.
type PropConfig struct {
	Name          string `mapstructure:"name" yaml:"name"`
	Position      Vec3   `mapstructure:"position" yaml:"position"`
	Rotation      Vec3   `mapstructure:"rotation" yaml:"rotation"`
	Scale         Vec3   `mapstructure:"scale" yaml:"scale"`
	RotationSpeed Vec3   `mapstructure:"rotation_speed" yaml:"rotation_speed"` // radians per second
}

// AssetsConfig locates the images referenced by projects and screen frames.
type AssetsConfig struct {
	Root  string `mapstructure:"root" yaml:"root"`
	Serve bool   `mapstructure:"serve" yaml:"serve"`
}

// ServerConfig configures the HTTP and WebSocket API.
type ServerConfig struct {
	Addr           string        `mapstructure:"addr" yaml:"addr"`
	BroadcastRate  float64       `mapstructure:"broadcast_rate" yaml:"broadcast_rate"`
	Workers        int           `mapstructure:"workers" yaml:"workers"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins" yaml:"allowed_origins,omitempty"`
}

// WindowConfig configures the native viewer window.
type WindowConfig struct {
	Title  string `mapstructure:"title" yaml:"title"`
	Width  int    `mapstructure:"width" yaml:"width"`
	Height int    `mapstructure:"height" yaml:"height"`
}

// DefaultConfig returns the portfolio scene layout: four project boards facing -X,
// the floating screen cycling five frames, and the spinning Akata model.
func DefaultConfig() *Config {
	faceLeft := float32(-math.Pi / 2)
	project := func(n int, x, y, z float32) TargetConfig {
		num := strconv.Itoa(n)
		return TargetConfig{
			ID:       "project-" + num,
			Name:     "Project " + num,
			Image:    "./assets/project" + num + ".png",
			Position: Vec3{x, y, z},
			Yaw:      faceLeft,
			Collider: ColliderConfig{Shape: "quad", Width: 1, Height: 1},
		}
	}

	return &Config{
		Log: logger.DefaultConfig(),
		Engine: EngineConfig{
			TickRate:  60,
			QueueSize: 256,
		},
		Camera: CameraConfig{
			MinDistance:        0.5,
			MaxDistance:        4.5,
			StartPosition:      Vec3{10, 10, 10},
			DefaultPosition:    Vec3{0, 2, 4},
			DefaultLookAt:      Vec3{0, 0, 0},
			Standoff:           0.8,
			Lift:               0.3,
			TransitionDuration: 1.5,
			Easing:             "power1.inOut",
			Fov:                75,
			Near:               0.1,
			Far:                1000,
			ZoomSpeed:          0.25,
			PanSpeed:           0.01,
			Permissions:        PermissionsConfig{Rotate: true, Pan: false, Zoom: true},
		},
		Screen: ScreenConfig{
			Enabled:  true,
			ID:       "screen",
			Name:     "Floating screen",
			Position: Vec3{-1.15, 0.9, 1.64},
			Width:    0.46,
			Height:   0.6,
			Frames: []string{
				"./assets/frame1.png",
				"./assets/frame2.png",
				"./assets/frame3.png",
				"./assets/frame4.png",
				"./assets/frame5.png",
			},
			Interval: 1,
		},
		Projects: []TargetConfig{
			project(1, -1.5, 2, 0),
			project(2, -1.5, 2, 1),
			project(3, -1.5, 2, -1),
			project(4, -1.5, 1, 0),
		},
		Props: []PropConfig{
			{
				Name:          "Akata",
				Scale:         Vec3{1, 1, 1},
				RotationSpeed: Vec3{-1.2, 0, 0},
			},
		},
		Assets: AssetsConfig{
			Root:  ".",
			Serve: true,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			BroadcastRate:  30,
			Workers:        4,
			WriteTimeout:   5 * time.Second,
			RequestTimeout: 2 * time.Second,
		},
		Window: WindowConfig{
			Title:  "oxy-folio",
			Width:  1280,
			Height: 720,
		},
	}
}

// AssetPaths lists every image the scene references: project images in order, then screen frames.
func (c *Config) AssetPaths() []string {
	var paths []string
	for _, p := range c.Projects {
		if p.Image != "" {
			paths = append(paths, p.Image)
		}
	}
	if c.Screen.Enabled {
		paths = append(paths, c.Screen.Frames...)
	}
	return paths
}
