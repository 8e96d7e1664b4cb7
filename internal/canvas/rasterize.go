package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"
)

// ErrInvalidSize is returned when a raster is requested with no area.
var ErrInvalidSize = errors.New("invalid raster size")

// Background is painted before any stroke. A nil Color means white. When
// Image is set it is scaled to cover the whole raster on top of Color.
type Background struct {
	Color color.Color
	Image image.Image
}

// Solid returns a plain color background.
func Solid(c color.Color) Background { return Background{Color: c} }

// Picture returns a background showing img over white.
func Picture(img image.Image) Background { return Background{Image: img} }

// Snapshot is an immutable copy of a canvas taken at one point in time.
type Snapshot struct {
	Width   int
	Height  int
	Strokes []Stroke
}

// Empty reports whether the snapshot holds no strokes.
func (s Snapshot) Empty() bool { return len(s.Strokes) == 0 }

// Rasterize paints bg and the snapshot strokes into a new w by h image.
// Zero dimensions fall back to the size recorded in the snapshot.
func (s Snapshot) Rasterize(w, h int, bg Background) (*image.RGBA, error) {
	if w == 0 && h == 0 {
		w, h = s.Width, s.Height
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	base := paintBackground(w, h, bg)
	dc := gg.NewContextForImage(base)
	defer func() {
		_ = dc.Close()
	}()
	surf := NewContextSurface(dc)
	for _, st := range s.Strokes {
		if err := surf.DrawStroke(st); err != nil {
			return nil, err
		}
	}
	return toRGBA(dc.Image()), nil
}

func paintBackground(w, h int, bg Background) *image.RGBA {
	base := image.NewRGBA(image.Rect(0, 0, w, h))
	fill := bg.Color
	if fill == nil {
		fill = color.White
	}
	xdraw.Draw(base, base.Bounds(), image.NewUniform(fill), image.Point{}, xdraw.Src)
	if bg.Image != nil && !bg.Image.Bounds().Empty() {
		xdraw.CatmullRom.Scale(base, base.Bounds(), bg.Image, bg.Image.Bounds(), xdraw.Over, nil)
	}
	return base
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(out, out.Bounds(), img, b.Min, xdraw.Src)
	return out
}

// Compose draws the canvas, including the stroke in progress, over bg. It
// is what an interactive view shows.
func (c *Canvas) Compose(w, h int, bg Background) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	dc := gg.NewContextForImage(paintBackground(w, h, bg))
	defer func() {
		_ = dc.Close()
	}()
	if err := c.Render(NewContextSurface(dc)); err != nil {
		return nil, err
	}
	return toRGBA(dc.Image()), nil
}
