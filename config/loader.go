package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to environment variable overrides, e.g. OXYFOLIO_SERVER_ADDR.
const EnvPrefix = "OXYFOLIO"

// envKeys are the scalar settings that may be overridden from the environment.
var envKeys = []string{
	"log.level",
	"log.format",
	"engine.tick_rate",
	"engine.profiling",
	"assets.root",
	"camera.min_distance",
	"camera.max_distance",
	"camera.transition_duration",
	"camera.easing",
	"server.addr",
	"server.broadcast_rate",
	"server.workers",
}

// Loader reads a Config from a YAML file and the environment, and can watch the file for changes.
type Loader struct {
	mu *sync.Mutex
	v  *viper.Viper
}

// NewLoader creates a Loader for the given file. An empty path searches ./oxy-folio.yaml and
// $HOME/.oxy-folio/oxy-folio.yaml, falling back to DefaultConfig when neither exists.
//
// Parameters:
//   - path: explicit config file path, or ""
//
// Returns:
//   - *Loader: the loader
func NewLoader(path string) *Loader {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("oxy-folio")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.oxy-folio")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}
	return &Loader{mu: &sync.Mutex{}, v: v}
}

// Load reads the config file (if any) and environment overrides on top of DefaultConfig,
// then validates the result.
//
// Returns:
//   - *Config: the effective configuration
//   - error: a read, decode or validation error
func (l *Loader) Load() (*Config, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return l.decode()
}

// decode unmarshals the current viper state over DefaultConfig. Lists present in the file replace
// the defaults wholesale rather than merging element by element.
func (l *Loader) decode() (*Config, error) {
	cfg := DefaultConfig()
	if l.v.IsSet("projects") {
		cfg.Projects = nil
	}
	if l.v.IsSet("props") {
		cfg.Props = nil
	}
	if l.v.IsSet("screen.frames") {
		cfg.Screen.Frames = nil
	}
	if l.v.IsSet("server.allowed_origins") {
		cfg.Server.AllowedOrigins = nil
	}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConfigFileUsed returns the path of the file read by the last Load, or "".
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// Watch re-reads the config file whenever it changes and hands the result to fn.
// fn receives either the new Config or the error that prevented loading it; the previous
// configuration stays in effect on error. Load must have found a file for Watch to fire.
//
// Parameters:
//   - fn: callback invoked on the watcher goroutine
func (l *Loader) Watch(fn func(cfg *Config, err error)) {
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		l.mu.Lock()
		cfg, err := l.decode()
		l.mu.Unlock()
		fn(cfg, err)
	})
	l.v.WatchConfig()
}

// Load is a shortcut for NewLoader(path).Load().
//
// Parameters:
//   - path: explicit config file path, or "" to search the default locations
//
// Returns:
//   - *Config: the effective configuration
//   - error: a read, decode or validation error
func Load(path string) (*Config, error) {
	return NewLoader(path).Load()
}

// WriteYAML encodes cfg as YAML with two-space indentation.
//
// Parameters:
//   - w: destination
//   - cfg: the configuration to write
//
// Returns:
//   - error: an encoding or write error
func WriteYAML(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
