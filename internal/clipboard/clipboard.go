// Package clipboard copies drawings to, and background pictures from, the
// system clipboard.
package clipboard

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
)

var (
	// ErrNoImage is returned when the clipboard holds no PNG data.
	ErrNoImage   = errors.New("clipboard does not contain image data")
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
)

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodePNG(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrNoImage
	}
	return png.Decode(bytes.NewReader(data))
}
