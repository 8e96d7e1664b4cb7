package palette

import (
	"errors"
	"image/color"
	"testing"
)

func TestResolvePaletteName(t *testing.T) {
	p := New()
	got, err := p.Resolve("red")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := (color.RGBA{255, 0, 0, 255}); got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestResolveCSSName(t *testing.T) {
	got, err := New().Resolve("Teal")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := (color.RGBA{0, 128, 128, 255}); got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestResolveHex(t *testing.T) {
	p := New()
	got, err := p.Resolve("#112233")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := (color.RGBA{0x11, 0x22, 0x33, 0xFF}); got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
	got, err = p.Resolve("#11223380")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := Premultiply(color.NRGBA{0x11, 0x22, 0x33, 0x80}); got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
	got, err = p.Resolve("#FF000080")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := (color.RGBA{0x80, 0, 0, 0x80}); got != want {
		t.Fatalf("translucent red = %+v, want premultiplied %+v", got, want)
	}
}

func TestParseHexStraightAlpha(t *testing.T) {
	got, err := ParseHex("#9020F060")
	if err != nil {
		t.Fatalf("ParseHex: %v", err)
	}
	if want := (color.NRGBA{0x90, 0x20, 0xF0, 0x60}); got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
	c := Premultiply(got)
	if c.R > c.A || c.G > c.A || c.B > c.A {
		t.Fatalf("premultiplied channel exceeds alpha: %+v", c)
	}
}

func TestResolveUnknown(t *testing.T) {
	for _, token := range []string{"", "notacolor", "#12", "#zzzzzz"} {
		if _, err := New().Resolve(token); !errors.Is(err, ErrUnknownColor) {
			t.Fatalf("Resolve(%q) err = %v, want ErrUnknownColor", token, err)
		}
	}
}

func TestEnsureAddsAndRenames(t *testing.T) {
	p := New()
	n := p.Len()
	idx := p.Ensure("Brand", color.RGBA{1, 2, 3, 255})
	if idx != n {
		t.Fatalf("index = %d, want %d", idx, n)
	}
	if got, err := p.Resolve("brand"); err != nil || got != (color.RGBA{1, 2, 3, 255}) {
		t.Fatalf("Resolve(brand) = %+v, %v", got, err)
	}
	if again := p.Ensure("", color.RGBA{1, 2, 3, 255}); again != idx {
		t.Fatalf("duplicate color added at %d", again)
	}
	p.Ensure("Red", color.RGBA{200, 0, 0, 255})
	if got, _ := p.Resolve("red"); got != (color.RGBA{200, 0, 0, 255}) {
		t.Fatalf("named entry not overridden: %+v", got)
	}
}

func TestHex(t *testing.T) {
	if got := Hex(color.RGBA{0xAB, 0xCD, 0xEF, 0xFF}); got != "#ABCDEF" {
		t.Fatalf("Hex = %s", got)
	}
	if got := Hex(color.RGBA{0x80, 0, 0, 0x80}); got != "#FF000080" {
		t.Fatalf("Hex = %s", got)
	}
}

func TestParseBrush(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"small", 10, true},
		{"M", 20, true},
		{"large", 30, true},
		{"12.5", 12.5, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"huge", 0, false},
	}
	for _, tc := range tests {
		got, err := ParseBrush(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParseBrush(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseBrush(%q) expected error", tc.in)
		}
	}
}
