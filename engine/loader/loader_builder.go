package loader

import (
	"io/fs"

	"github.com/rs/zerolog"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithFS sets the asset root. Nil is ignored.
//
// Parameters:
//   - fsys: the file system assets are read from
//
// Returns:
//   - LoaderBuilderOption: a function that applies the root to a loader
func WithFS(fsys fs.FS) LoaderBuilderOption {
	return func(l *loader) {
		if fsys != nil {
			l.fsys = fsys
		}
	}
}

// WithAsset pre-populates the cache, e.g. for assets generated at runtime.
//
// Parameters:
//   - a: the asset; its Path must already be clean
//
// Returns:
//   - LoaderBuilderOption: a function that caches the asset
func WithAsset(a Asset) LoaderBuilderOption {
	return func(l *loader) {
		l.cache[a.Path] = a
	}
}

// WithLogger sets the logger for load events.
func WithLogger(log zerolog.Logger) LoaderBuilderOption {
	return func(l *loader) {
		l.log = log.With().Str("component", "loader").Logger()
	}
}
