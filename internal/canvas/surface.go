package canvas

import (
	"fmt"
	"image/color"

	"github.com/gogpu/gg"
)

// Surface receives strokes from Render.
type Surface interface {
	DrawStroke(s Stroke) error
}

// ContextSurface draws strokes onto a gg context with round caps and joins.
type ContextSurface struct {
	dc *gg.Context
}

// NewContextSurface wraps dc.
func NewContextSurface(dc *gg.Context) *ContextSurface {
	return &ContextSurface{dc: dc}
}

// DrawStroke renders s. A stroke with a single point, or whose points all
// coincide, is drawn as a dot with diameter equal to the stroke width.
func (cs *ContextSurface) DrawStroke(s Stroke) error {
	if len(s.Points) == 0 || s.Width <= 0 {
		return nil
	}
	dc := cs.dc
	c := color.NRGBAModel.Convert(s.Color).(color.NRGBA)
	dc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
	if s.IsDot() {
		p := s.Points[0]
		dc.DrawCircle(p.X, p.Y, s.Width/2)
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("fill dot: %w", err)
		}
		return nil
	}
	dc.SetLineWidth(s.Width)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.MoveTo(s.Points[0].X, s.Points[0].Y)
	for _, p := range s.Points[1:] {
		dc.LineTo(p.X, p.Y)
	}
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("stroke path: %w", err)
	}
	return nil
}
