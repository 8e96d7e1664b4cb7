// Package palette resolves color tokens and brush size presets for the
// drawing canvas.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/colornames"
)

// ErrUnknownColor is returned when a token does not name a color.
var ErrUnknownColor = errors.New("unknown color")

// Entry is a named palette color.
type Entry struct {
	Name  string
	Color color.RGBA
}

// Palette is an ordered, concurrency safe list of named colors.
type Palette struct {
	mu      sync.RWMutex
	entries []Entry
}

var defaultEntries = []Entry{
	{"Skin", color.RGBA{0xFA, 0xD3, 0xB4, 0xFF}},
	{"Black", color.RGBA{0x00, 0x00, 0x00, 0xFF}},
	{"Red", color.RGBA{0xFF, 0x00, 0x00, 0xFF}},
	{"Green", color.RGBA{0x00, 0x80, 0x00, 0xFF}},
	{"Blue", color.RGBA{0x00, 0x00, 0xFF, 0xFF}},
	{"Yellow", color.RGBA{0xFF, 0xFF, 0x00, 0xFF}},
	{"Lavender", color.RGBA{0xE6, 0xE6, 0xFA, 0xFF}},
	{"Orange", color.RGBA{0xFF, 0xA5, 0x00, 0xFF}},
	{"White", color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}},
}

// DefaultColorName names the color used before any selection is made.
const DefaultColorName = "Black"

// New returns a palette holding the default swatches.
func New() *Palette {
	p := &Palette{entries: make([]Entry, len(defaultEntries))}
	copy(p.entries, defaultEntries)
	return p
}

// Default is the process wide palette used when none is configured.
var Default = New()

// Entries returns a copy of the palette entries.
func (p *Palette) Entries() []Entry {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Len reports the number of entries.
func (p *Palette) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}

// At returns the entry at idx, clamped to the palette bounds.
func (p *Palette) At(idx int) Entry {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.entries) == 0 {
		return Entry{}
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(p.entries) {
		idx = len(p.entries) - 1
	}
	return p.entries[idx]
}

// Ensure makes sure col is present and returns its index. An existing entry
// with the same color keeps its name unless it had none.
func (p *Palette) Ensure(name string, col color.RGBA) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	for idx, existing := range p.entries {
		if existing.Color == col {
			if name != "" && existing.Name == "" {
				p.entries[idx].Name = name
			}
			return idx
		}
		if name != "" && strings.EqualFold(existing.Name, name) {
			p.entries[idx].Color = col
			return idx
		}
	}
	if name == "" {
		name = Hex(col)
	}
	p.entries = append(p.entries, Entry{Name: name, Color: col})
	return len(p.entries) - 1
}

// Index returns the position of the entry whose color equals col, or -1.
func (p *Palette) Index(col color.RGBA) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for idx, e := range p.entries {
		if e.Color == col {
			return idx
		}
	}
	return -1
}

// Resolve turns a color token into a concrete color. Tokens are matched
// against palette names, then CSS color names, then hex notation
// (#RRGGBB or #RRGGBBAA).
func (p *Palette) Resolve(token string) (color.RGBA, error) {
	spec := strings.TrimSpace(token)
	if spec == "" {
		return color.RGBA{}, fmt.Errorf("%w: empty token", ErrUnknownColor)
	}
	p.mu.RLock()
	for _, e := range p.entries {
		if strings.EqualFold(e.Name, spec) {
			p.mu.RUnlock()
			return e.Color, nil
		}
	}
	p.mu.RUnlock()
	if c, ok := colornames.Map[strings.ToLower(spec)]; ok {
		return c, nil
	}
	if strings.HasPrefix(spec, "#") {
		n, err := ParseHex(spec)
		if err != nil {
			return color.RGBA{}, err
		}
		return Premultiply(n), nil
	}
	return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, token)
}

// Resolve resolves token against the default palette.
func Resolve(token string) (color.RGBA, error) { return Default.Resolve(token) }

// ParseHex parses #RRGGBB or #RRGGBBAA. The channels are read as straight
// alpha, the way colors are written in config and theme files.
func ParseHex(s string) (color.NRGBA, error) {
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, fmt.Errorf("%w: color must start with #", ErrUnknownColor)
	}
	hex := strings.TrimPrefix(s, "#")
	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q: %v", ErrUnknownColor, s, err)
	}
	switch len(hex) {
	case 6:
		return color.NRGBA{
			R: uint8(val >> 16),
			G: uint8((val >> 8) & 0xFF),
			B: uint8(val & 0xFF),
			A: 255,
		}, nil
	case 8:
		return color.NRGBA{
			R: uint8(val >> 24),
			G: uint8((val >> 16) & 0xFF),
			B: uint8((val >> 8) & 0xFF),
			A: uint8(val & 0xFF),
		}, nil
	}
	return color.NRGBA{}, fmt.Errorf("%w: invalid hex length in %q", ErrUnknownColor, s)
}

// Premultiply converts a straight alpha color into the premultiplied form
// color.RGBA holds.
func Premultiply(c color.NRGBA) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

// Hex formats col with straight alpha as #RRGGBB, or #RRGGBBAA when it is
// not opaque.
func Hex(col color.RGBA) string {
	n := color.NRGBAModel.Convert(col).(color.NRGBA)
	if n.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", n.R, n.G, n.B, n.A)
}
