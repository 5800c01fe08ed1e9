package preprocess

import (
	"bytes"
	"fmt"
	"image/png"
)

// Slice is the sub-rectangle of a packed spritesheet that belongs to one
// logical asset. Coordinates are pixels, origin top-left.
type Slice struct {
	MinX int `toml:"min_x"`
	MinY int `toml:"min_y"`
	MaxX int `toml:"max_x"`
	MaxY int `toml:"max_y"`
}

// Size returns the slice dimensions.
func (s Slice) Size() (width, height int) {
	return s.MaxX - s.MinX, s.MaxY - s.MinY
}

// Preprocessor prepares raw image bytes for upload. Implementations may
// re-encode, pack inputs into shared sheets, or pass bytes through
// untouched; when an input lands inside a packed sheet the returned slice
// describes its sub-rectangle.
type Preprocessor interface {
	Preprocess(raw []byte) (encoded []byte, slice *Slice, err error)
}

// Passthrough validates that the input decodes as a PNG and forwards the
// bytes unchanged. It never produces slices.
type Passthrough struct{}

// Preprocess implements Preprocessor.
func (Passthrough) Preprocess(raw []byte) ([]byte, *Slice, error) {
	if _, err := png.DecodeConfig(bytes.NewReader(raw)); err != nil {
		return nil, nil, fmt.Errorf("decode png: %w", err)
	}
	return raw, nil, nil
}
