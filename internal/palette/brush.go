package palette

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Brush is a named stroke width preset.
type Brush struct {
	Name  string
	Width float64
}

const (
	SmallBrush  = 10
	MediumBrush = 20
	LargeBrush  = 30

	// DefaultBrushSize is the width used before the user picks a brush.
	DefaultBrushSize = MediumBrush
)

var brushes = []Brush{
	{"small", SmallBrush},
	{"medium", MediumBrush},
	{"large", LargeBrush},
}

// Brushes returns a copy of the brush presets, smallest first.
func Brushes() []Brush {
	out := make([]Brush, len(brushes))
	copy(out, brushes)
	return out
}

// ParseBrush accepts a preset name (small, medium, large, or its first
// letter) or a positive number.
func ParseBrush(s string) (float64, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return 0, fmt.Errorf("brush size cannot be empty")
	}
	for _, b := range brushes {
		if spec == b.Name || spec == b.Name[:1] {
			return b.Width, nil
		}
	}
	w, err := strconv.ParseFloat(spec, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid brush size %q", s)
	}
	if w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return 0, fmt.Errorf("brush size must be positive, got %q", s)
	}
	return w, nil
}
