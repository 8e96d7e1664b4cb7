// Package assets provides the application icon, drawn on demand so no
// binary files need to be shipped.
package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sort"
	"sync"

	"github.com/gogpu/gg"

	"github.com/example/drawpad/internal/canvas"
)

var (
	iconMu    sync.Mutex
	iconCache = map[int]*image.RGBA{}
)

// sizes are the icon sizes desktop notification centers ask for.
var sizes = []int{16, 32, 48, 64, 128}

// IconSizes lists the sizes Icon is usually called with.
func IconSizes() []int {
	out := append([]int(nil), sizes...)
	sort.Ints(out)
	return out
}

// Icon returns a size by size picture of a brush stroke on a rounded sheet.
// Results are cached; callers must not modify them.
func Icon(size int) (*image.RGBA, error) {
	if size < 8 {
		return nil, fmt.Errorf("icon %dpx too small", size)
	}
	iconMu.Lock()
	defer iconMu.Unlock()
	if img, ok := iconCache[size]; ok {
		return img, nil
	}
	img, err := drawIcon(size)
	if err != nil {
		return nil, err
	}
	iconCache[size] = img
	return img, nil
}

func drawIcon(size int) (*image.RGBA, error) {
	dc := gg.NewContext(size, size)
	defer func() {
		_ = dc.Close()
	}()
	s := float64(size)
	dc.SetColor(color.RGBA{0xFA, 0xD3, 0xB4, 0xFF})
	dc.DrawRoundedRectangle(0, 0, s, s, s/6)
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("icon sheet: %w", err)
	}
	surf := canvas.NewContextSurface(dc)
	stroke := canvas.Stroke{
		Points: []canvas.Point{{X: s * 0.2, Y: s * 0.7}, {X: s * 0.4, Y: s * 0.35}, {X: s * 0.6, Y: s * 0.65}, {X: s * 0.8, Y: s * 0.3}},
		Color:  color.RGBA{0x00, 0x00, 0xFF, 0xFF},
		Width:  s / 10,
	}
	if err := surf.DrawStroke(stroke); err != nil {
		return nil, fmt.Errorf("icon stroke: %w", err)
	}
	src := dc.Image()
	b := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), src, b.Min, draw.Src)
	return out, nil
}

// IconPNG returns the icon encoded as PNG.
func IconPNG(size int) ([]byte, error) {
	img, err := Icon(size)
	if err != nil {
		return nil, err
	}
	dc := gg.NewContextForImage(img)
	defer func() {
		_ = dc.Close()
	}()
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
