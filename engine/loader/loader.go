// Package loader resolves the image assets a scene references and caches their metadata.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// LoaderBackendType identifies the asset decoding backend to use.
type LoaderBackendType int

const (
	// BackendTypeImage decodes PNG, JPEG, WebP and BMP headers.
	BackendTypeImage LoaderBackendType = iota
)

var (
	// ErrInvalidPath is returned for empty paths and paths escaping the asset root.
	ErrInvalidPath = errors.New("loader: invalid asset path")
	// ErrUnsupported is returned when no backend recognises the asset's format.
	ErrUnsupported = errors.New("loader: unsupported asset format")
)

// Asset describes one decoded image.
type Asset struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"`
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	fsys    fs.FS
	cache   map[string]Asset
	backend loaderBackend

	log zerolog.Logger
}

// Loader reads image assets from a file system root and caches what it learned about them.
// It is safe for concurrent use.
type Loader interface {
	// Load reads the asset's header and caches the result. Cached assets are returned without I/O.
	// Leading "./" is ignored; the path must stay inside the root.
	//
	// Parameters:
	//   - p: slash-separated path relative to the asset root
	//
	// Returns:
	//   - Asset: the asset metadata
	//   - error: ErrInvalidPath, ErrUnsupported, or the file system error
	Load(p string) (Asset, error)

	// LoadAll loads every path, continuing past failures.
	//
	// Parameters:
	//   - paths: asset paths
	//
	// Returns:
	//   - []Asset: the assets that loaded, in input order
	//   - error: every failure joined, or nil
	LoadAll(paths ...string) ([]Asset, error)

	// Get retrieves a cached asset.
	//
	// Parameters:
	//   - p: the asset path, in any form Load accepts
	//
	// Returns:
	//   - Asset: the cached asset
	//   - bool: true if the asset has been loaded
	Get(p string) (Asset, bool)

	// Assets returns a copy of the cache keyed by cleaned path.
	Assets() map[string]Asset

	// FS returns the asset root.
	FS() fs.FS
}

var _ Loader = &loader{}

// NewLoader creates a Loader with the given backend. The asset root defaults to the working directory.
//
// Parameters:
//   - backendType: the decoding backend (BackendTypeImage)
//   - options: functional options to configure the loader
//
// Returns:
//   - Loader: the new loader
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		fsys:  os.DirFS("."),
		cache: make(map[string]Asset),
		log:   zerolog.Nop(),
	}

	switch backendType {
	case BackendTypeImage:
		l.backend = newImageLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}
	return l
}

// Clean converts a config-style asset path into the form used as a cache key and fs.FS name.
//
// Parameters:
//   - p: a slash-separated relative path, optionally prefixed with "./"
//
// Returns:
//   - string: the cleaned path
//   - error: ErrInvalidPath if p is empty, absolute or escapes the root
func Clean(p string) (string, error) {
	if p == "" || strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	cleaned := path.Clean(p)
	if !fs.ValidPath(cleaned) || cleaned == "." {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return cleaned, nil
}

func (l *loader) Load(p string) (Asset, error) {
	name, err := Clean(p)
	if err != nil {
		return Asset{}, err
	}

	l.mu.RLock()
	if cached, ok := l.cache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	f, err := l.fsys.Open(name)
	if err != nil {
		return Asset{}, fmt.Errorf("open asset %s: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Asset{}, fmt.Errorf("stat asset %s: %w", name, err)
	}

	cfg, format, err := l.backend.Decode(f)
	if err != nil {
		return Asset{}, fmt.Errorf("decode asset %s: %w", name, err)
	}

	a := Asset{
		Path:   name,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
		Size:   info.Size(),
	}

	l.mu.Lock()
	l.cache[name] = a
	l.mu.Unlock()

	l.log.Debug().Str("asset", name).Str("format", format).Int("width", a.Width).Int("height", a.Height).Msg("asset loaded")
	return a, nil
}

func (l *loader) LoadAll(paths ...string) ([]Asset, error) {
	assets := make([]Asset, 0, len(paths))
	var errs []error
	for _, p := range paths {
		a, err := l.Load(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		assets = append(assets, a)
	}
	return assets, errors.Join(errs...)
}

func (l *loader) Get(p string) (Asset, bool) {
	name, err := Clean(p)
	if err != nil {
		return Asset{}, false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	a, ok := l.cache[name]
	return a, ok
}

func (l *loader) Assets() map[string]Asset {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]Asset, len(l.cache))
	for k, v := range l.cache {
		out[k] = v
	}
	return out
}

func (l *loader) FS() fs.FS {
	return l.fsys
}
