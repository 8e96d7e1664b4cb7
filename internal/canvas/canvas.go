// Package canvas implements a freehand stroke canvas with linear undo and
// redo, rendering and rasterization for export.
package canvas

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/example/drawpad/internal/palette"
)

// Canvas holds committed strokes, the stroke being drawn and the brush used
// for the next stroke. All methods are safe for concurrent use, though
// mutations are expected to come from a single event loop.
type Canvas struct {
	mu      sync.RWMutex
	palette *palette.Palette
	width   int
	height  int
	hist    history
	current *Stroke
	brush   float64
	color   color.RGBA
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithPalette sets the palette used to resolve color tokens.
func WithPalette(p *palette.Palette) Option {
	return func(c *Canvas) {
		if p != nil {
			c.palette = p
		}
	}
}

// WithSize sets the canvas dimensions.
func WithSize(w, h int) Option {
	return func(c *Canvas) {
		c.SetSize(w, h)
	}
}

// WithBrushSize sets the initial brush width.
func WithBrushSize(w float64) Option {
	return func(c *Canvas) {
		c.SetBrushSize(w)
	}
}

// WithColor sets the initial brush color from a token. Unknown tokens keep
// the default.
func WithColor(token string) Option {
	return func(c *Canvas) {
		c.SetColor(token)
	}
}

// New returns an empty canvas with a medium black brush.
func New(opts ...Option) *Canvas {
	c := &Canvas{
		palette: palette.Default,
		brush:   palette.DefaultBrushSize,
		color:   color.RGBA{A: 255},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetBrushSize sets the width of strokes started afterwards. Widths that
// are not positive finite numbers are ignored.
func (c *Canvas) SetBrushSize(w float64) {
	if !(w > 0) || math.IsInf(w, 0) {
		return
	}
	c.mu.Lock()
	c.brush = w
	c.mu.Unlock()
}

// SetColor resolves token and uses it for strokes started afterwards. It
// reports false, leaving the color unchanged, when the token is unknown.
func (c *Canvas) SetColor(token string) bool {
	col, err := c.palette.Resolve(token)
	if err != nil {
		return false
	}
	c.SetRGBA(col)
	return true
}

// SetRGBA sets the brush color directly.
func (c *Canvas) SetRGBA(col color.RGBA) {
	c.mu.Lock()
	c.color = col
	c.mu.Unlock()
}

// BeginStroke starts a new stroke at p with the current brush. It does
// nothing while another stroke is in progress.
func (c *Canvas) BeginStroke(p Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil {
		return
	}
	c.current = &Stroke{
		ID:     uuid.New(),
		Points: []Point{p},
		Color:  c.color,
		Width:  c.brush,
	}
}

// ExtendStroke appends p to the stroke in progress, if any.
func (c *Canvas) ExtendStroke(p Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return
	}
	c.current.Points = append(c.current.Points, p)
}

// EndStroke commits the stroke in progress and discards the redo stack.
func (c *Canvas) EndStroke() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return
	}
	c.hist.commit(*c.current)
	c.current = nil
}

// Undo removes the most recent committed stroke. It reports whether
// anything changed.
func (c *Canvas) Undo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hist.undo()
}

// Redo restores the most recently undone stroke. It reports whether
// anything changed.
func (c *Canvas) Redo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hist.redo()
}

// Clear removes every stroke, including the one in progress, and forgets
// the undo history.
func (c *Canvas) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hist.reset()
	c.current = nil
}

// Render draws committed strokes in order, then the stroke in progress.
func (c *Canvas) Render(s Surface) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, st := range c.hist.committed() {
		if err := s.DrawStroke(st); err != nil {
			return err
		}
	}
	if c.current != nil {
		return s.DrawStroke(*c.current)
	}
	return nil
}

// Rasterize paints bg and then the committed strokes into a new w by h
// image. The stroke in progress is not included.
func (c *Canvas) Rasterize(w, h int, bg Background) (*image.RGBA, error) {
	return c.Snapshot().Rasterize(w, h, bg)
}

// Snapshot returns a deep copy of the committed strokes.
func (c *Canvas) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		Width:   c.width,
		Height:  c.height,
		Strokes: cloneStrokes(c.hist.committed()),
	}
}

// Strokes returns a copy of the committed strokes in draw order.
func (c *Canvas) Strokes() []Stroke {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneStrokes(c.hist.committed())
}

// Current returns a copy of the stroke in progress.
func (c *Canvas) Current() (Stroke, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return Stroke{}, false
	}
	return c.current.clone(), true
}

// HasStrokes reports whether anything is committed.
func (c *Canvas) HasStrokes() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hist.canUndo()
}

func (c *Canvas) CanUndo() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hist.canUndo()
}

func (c *Canvas) CanRedo() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hist.canRedo()
}

func (c *Canvas) BrushSize() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.brush
}

func (c *Canvas) Color() color.RGBA {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.color
}

// Size returns the canvas dimensions as last set by SetSize.
func (c *Canvas) Size() (int, int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.width, c.height
}

// SetSize records the dimensions of the drawing area. Strokes are kept in
// absolute coordinates and are not rescaled.
func (c *Canvas) SetSize(w, h int) {
	if w < 0 || h < 0 {
		return
	}
	c.mu.Lock()
	c.width, c.height = w, h
	c.mu.Unlock()
}
