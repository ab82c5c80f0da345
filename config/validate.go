package config

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine/logger"
)

// Validate checks the configuration for values the engine cannot run with.
// Every returned error wraps ErrInvalid; several problems are joined into one error.
//
// Returns:
//   - error: nil if the configuration is usable
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
	}

	switch c.Log.Format {
	case "", logger.FormatConsole, logger.FormatJSON:
	default:
		add("log.format %q is not console or json", c.Log.Format)
	}

	if c.Engine.TickRate <= 0 {
		add("engine.tick_rate must be positive, got %v", c.Engine.TickRate)
	}
	if c.Engine.QueueSize < 0 {
		add("engine.queue_size must not be negative, got %d", c.Engine.QueueSize)
	}

	cam := c.Camera
	if !(cam.MinDistance > 0 && cam.MinDistance < cam.MaxDistance) {
		add("camera distance bounds must satisfy 0 < min < max, got min=%v max=%v", cam.MinDistance, cam.MaxDistance)
	}
	if cam.TransitionDuration < 0 {
		add("camera.transition_duration must not be negative, got %v", cam.TransitionDuration)
	}
	if cam.Easing != "" {
		if _, ok := common.EasingByName(cam.Easing); !ok {
			add("camera.easing %q is unknown", cam.Easing)
		}
	}
	if cam.Fov <= 0 || cam.Fov >= 180 {
		add("camera.fov must be in (0, 180) degrees, got %v", cam.Fov)
	}
	if !(cam.Near > 0 && cam.Near < cam.Far) {
		add("camera clip planes must satisfy 0 < near < far, got near=%v far=%v", cam.Near, cam.Far)
	}

	seen := make(map[string]bool)
	if c.Screen.Enabled {
		if c.Screen.ID == "" {
			add("screen.id is required when the screen is enabled")
		}
		seen[c.Screen.ID] = true
		if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
			add("screen size must be positive, got %vx%v", c.Screen.Width, c.Screen.Height)
		}
		if len(c.Screen.Frames) > 0 && c.Screen.Interval <= 0 {
			add("screen.interval must be positive, got %v", c.Screen.Interval)
		}
	}
	for i, p := range c.Projects {
		if p.ID == "" {
			add("projects[%d].id is required", i)
			continue
		}
		if seen[p.ID] {
			add("projects[%d].id %q is duplicated", i, p.ID)
		}
		seen[p.ID] = true
		if err := p.Collider.validate(); err != nil {
			add("projects[%d] (%s): %v", i, p.ID, err)
		}
	}

	if c.Server.BroadcastRate <= 0 {
		add("server.broadcast_rate must be positive, got %v", c.Server.BroadcastRate)
	}
	if c.Server.Workers <= 0 {
		add("server.workers must be positive, got %d", c.Server.Workers)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		add("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	return errors.Join(errs...)
}

func (cc ColliderConfig) validate() error {
	switch cc.Shape {
	case "", "quad":
		if cc.Width <= 0 || cc.Height <= 0 {
			return fmt.Errorf("quad collider needs a positive width and height, got %vx%v", cc.Width, cc.Height)
		}
	case "sphere":
		if cc.Radius <= 0 {
			return fmt.Errorf("sphere collider needs a positive radius, got %v", cc.Radius)
		}
	case "box":
		for _, e := range cc.HalfExtents {
			if e <= 0 {
				return fmt.Errorf("box collider needs positive half extents, got %v", cc.HalfExtents)
			}
		}
	default:
		return fmt.Errorf("collider shape %q is not quad, sphere or box", cc.Shape)
	}
	return nil
}
