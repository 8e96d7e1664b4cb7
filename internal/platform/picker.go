package platform

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	"github.com/example/drawpad/internal/clipboard"
)

// LoadImage decodes a PNG, JPEG or GIF file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Printf("error closing %q: %v", path, cerr)
		}
	}()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// FilePicker always picks the same file.
type FilePicker struct {
	Path string
}

func (p FilePicker) PickImage(ctx context.Context) (image.Image, error) {
	if p.Path == "" {
		return nil, ErrNoImage
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadImage(p.Path)
}

// ClipboardPicker picks whatever picture is on the clipboard.
type ClipboardPicker struct{}

func (ClipboardPicker) PickImage(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := clipboard.ReadImage()
	if errors.Is(err, clipboard.ErrNoImage) {
		return nil, ErrNoImage
	}
	return img, err
}

// FallbackPicker tries each picker in turn until one returns a picture or
// the user cancels.
type FallbackPicker []ImagePicker

func (fp FallbackPicker) PickImage(ctx context.Context) (image.Image, error) {
	var errs []error
	for _, p := range fp {
		img, err := p.PickImage(ctx)
		if err == nil {
			return img, nil
		}
		if errors.Is(err, ErrNoImage) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, ErrNoImage
	}
	return nil, errors.Join(errs...)
}
