package appstate

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"

	"github.com/example/drawpad/internal/theme"
)

const (
	toolbarHeight = 56
	statusHeight  = 24
	swatchSize    = 20
	buttonHeight  = 22
	padding       = 4
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// shortcutKeys returns the lookups tried for a key press: the rune with
// its modifiers, then the physical code with its modifiers.
func shortcutKeys(r rune, code key.Code, mods key.Modifiers) []KeyShortcut {
	var out []KeyShortcut
	if r > 0 {
		out = append(out, KeyShortcut{Rune: lowerASCII(r), Modifiers: mods})
	}
	if code != key.CodeUnknown {
		out = append(out, KeyShortcut{Code: code, Modifiers: mods})
	}
	return out
}

func lowerASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	// Control chords arrive as C0 control characters on some drivers.
	if r >= 1 && r <= 26 {
		return 'a' + r - 1
	}
	return r
}

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive toolbar element.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

// sync drops cached renders when a label button changed between enabled
// and disabled since it was last drawn.
func (cb *CacheButton) sync() {
	lb, ok := cb.Button.(*LabelButton)
	if !ok {
		return
	}
	if off := lb.disabled(); off != lb.drawnOff {
		lb.drawnOff = off
		cb.cache = [3]*image.RGBA{}
	}
}

// LabelButton is a text button running an action.
type LabelButton struct {
	label  string
	action string
	theme  *theme.Theme
	rect   image.Rectangle
	onTap  func()
	// enabled greys the label out when it returns false.
	enabled  func() bool
	drawnOff bool
}

func (b *LabelButton) disabled() bool { return b.enabled != nil && !b.enabled() }

func (b *LabelButton) Draw(dst *image.RGBA, state ButtonState) {
	bg := b.theme.ButtonBackground
	switch state {
	case StateHover:
		bg = b.theme.ButtonBackgroundHover
	case StatePressed:
		bg = b.theme.ButtonBackgroundActive
	}
	draw.Draw(dst, b.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
	drawRect(dst, b.rect, b.theme.ButtonBorder, 1)
	fg := b.theme.ButtonText
	if b.drawnOff {
		fg = b.theme.ButtonDisabledText
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: basicfont.Face7x13,
		Dot: fixed.P(b.rect.Min.X+padding, b.rect.Min.Y+16)}
	d.DrawString(b.label)
}

func (b *LabelButton) Rect() image.Rectangle     { return b.rect }
func (b *LabelButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *LabelButton) Activate() {
	if b.onTap != nil && !b.disabled() {
		b.onTap()
	}
}

func (b *LabelButton) width() int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	return d.MeasureString(b.label).Ceil() + 2*padding
}

// SwatchButton selects a palette color.
type SwatchButton struct {
	name  string
	color color.RGBA
	theme *theme.Theme
	rect  image.Rectangle
	onTap func()
}

func (s *SwatchButton) Draw(dst *image.RGBA, state ButtonState) {
	draw.Draw(dst, s.rect, &image.Uniform{s.color}, image.Point{}, draw.Src)
	switch state {
	case StateHover:
		draw.Draw(dst, s.rect, &image.Uniform{color.RGBA{80, 80, 80, 80}}, image.Point{}, draw.Over)
		drawRect(dst, s.rect, s.theme.ButtonBorder, 1)
	case StatePressed:
		drawRect(dst, s.rect, s.theme.ButtonBorder, 3)
	default:
		drawRect(dst, s.rect, s.theme.ButtonBorder, 1)
	}
}

func (s *SwatchButton) Rect() image.Rectangle     { return s.rect }
func (s *SwatchButton) SetRect(r image.Rectangle) { s.rect = r }

func (s *SwatchButton) Activate() {
	if s.onTap != nil {
		s.onTap()
	}
}

// layoutRow places buttons left to right starting at (x, y), each sized by
// widthOf, and returns the x after the last one.
func layoutRow(buttons []*CacheButton, x, y, h int, widthOf func(Button) int) int {
	for _, cb := range buttons {
		w := widthOf(cb.Button)
		cb.SetRect(image.Rect(x, y, x+w, y+h))
		x += w + padding
	}
	return x
}

func buttonWidth(b Button) int {
	if lb, ok := b.(*LabelButton); ok {
		return lb.width()
	}
	return swatchSize
}

// hitTest returns the index of the button containing p, or -1.
func hitTest(buttons []*CacheButton, p image.Point) int {
	for i, cb := range buttons {
		if p.In(cb.Rect()) {
			return i
		}
	}
	return -1
}

func drawRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	u := &image.Uniform{col}
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+thick), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Max.Y-thick, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+thick, rect.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Max.X-thick, rect.Min.Y, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Src)
}
