package loader

import (
	"errors"
	"fmt"
	"image"
	"io"

	// registered decoders
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// loaderBackend reads format and dimensions from an asset stream without decoding pixel data.
type loaderBackend interface {
	// Decode reads the asset header.
	//
	// Parameters:
	//   - r: the asset stream
	//
	// Returns:
	//   - image.Config: the dimensions and color model
	//   - string: the format name, e.g. "png"
	//   - error: ErrUnsupported for unknown formats, or the read error
	Decode(r io.Reader) (image.Config, string, error)
}

// imageLoaderBackend decodes headers through the image package's format registry.
type imageLoaderBackend struct{}

var _ loaderBackend = imageLoaderBackend{}

func newImageLoaderBackend() loaderBackend {
	return imageLoaderBackend{}
}

func (imageLoaderBackend) Decode(r io.Reader) (image.Config, string, error) {
	cfg, format, err := image.DecodeConfig(r)
	if errors.Is(err, image.ErrFormat) {
		return image.Config{}, "", fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	return cfg, format, err
}
