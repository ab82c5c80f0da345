package server

import (
	"time"

	"github.com/Carmen-Shannon/oxy-folio/engine/loader"
	"github.com/rs/zerolog"
)

// ServerBuilderOption is a functional option for configuring a Server.
type ServerBuilderOption func(*server)

// WithAddr sets the listen address used by ListenAndServe.
//
// Parameters:
//   - addr: host:port to listen on
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithAddr(addr string) ServerBuilderOption {
	return func(s *server) {
		s.addr = addr
	}
}

// WithBroadcastRate sets how many snapshots per second Run pushes to clients.
//
// Parameters:
//   - hz: broadcasts per second; values <= 0 keep the default of 30
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithBroadcastRate(hz float64) ServerBuilderOption {
	return func(s *server) {
		s.broadcastRate = hz
	}
}

// WithWorkers sets the size of the pool that writes snapshots to clients.
//
// Parameters:
//   - n: worker count; values <= 0 keep the default of 4
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithWorkers(n int) ServerBuilderOption {
	return func(s *server) {
		s.workers = n
	}
}

// WithWriteTimeout bounds every WebSocket write.
func WithWriteTimeout(d time.Duration) ServerBuilderOption {
	return func(s *server) {
		if d > 0 {
			s.writeTimeout = d
		}
	}
}

// WithRequestTimeout bounds how long a command waits for the engine loop.
func WithRequestTimeout(d time.Duration) ServerBuilderOption {
	return func(s *server) {
		if d > 0 {
			s.requestTimeout = d
		}
	}
}

// WithAllowedOrigins restricts WebSocket upgrades to the given Origin headers.
// An empty list accepts every origin.
//
// Parameters:
//   - origins: exact Origin header values to accept
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithAllowedOrigins(origins ...string) ServerBuilderOption {
	return func(s *server) {
		s.allowedOrigins = append([]string(nil), origins...)
	}
}

// WithAssets serves the loader's cached assets under /files/ and lists them at /api/assets.
// Only assets the loader has loaded are served.
//
// Parameters:
//   - l: the asset loader
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithAssets(l loader.Loader) ServerBuilderOption {
	return func(s *server) {
		s.assets = l
	}
}

// WithLogger sets the logger for connection and request events.
//
// Parameters:
//   - log: the parent logger
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithLogger(log zerolog.Logger) ServerBuilderOption {
	return func(s *server) {
		s.log = log.With().Str("component", "server").Logger()
	}
}
