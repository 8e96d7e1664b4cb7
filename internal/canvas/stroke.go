package canvas

import (
	"image/color"

	"github.com/google/uuid"
)

// Point is a position on the canvas in pixels.
type Point struct {
	X, Y float64
}

// Stroke is one continuous freehand line. Points are kept in input order.
type Stroke struct {
	ID     uuid.UUID
	Points []Point
	Color  color.RGBA
	Width  float64
}

// IsDot reports whether the stroke has a single point, or only points that
// coincide, and so is drawn as a filled circle of diameter Width.
func (s Stroke) IsDot() bool {
	if len(s.Points) == 0 {
		return false
	}
	for _, p := range s.Points[1:] {
		if p != s.Points[0] {
			return false
		}
	}
	return true
}

func (s Stroke) clone() Stroke {
	pts := make([]Point, len(s.Points))
	copy(pts, s.Points)
	s.Points = pts
	return s
}

func cloneStrokes(in []Stroke) []Stroke {
	out := make([]Stroke, len(in))
	for i, s := range in {
		out[i] = s.clone()
	}
	return out
}
