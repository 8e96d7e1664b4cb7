package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	th, err := Parse(strings.NewReader("Name: mine\nbackground: #101010\nUnknown: #FFFFFF\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if th.Name != "mine" {
		t.Fatalf("name = %q", th.Name)
	}
	if th.Background != (color.RGBA{0x10, 0x10, 0x10, 0xFF}) {
		t.Fatalf("background = %+v", th.Background)
	}
	if th.Foreground != Default().Foreground {
		t.Fatalf("unset fields should keep defaults")
	}
}

func TestParseBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("Canvas: white\n")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoadBuiltinAndFile(t *testing.T) {
	l := &Loader{}
	dark, err := l.Load("dark")
	if err != nil {
		t.Fatalf("Load dark: %v", err)
	}
	if dark.Name != "dark" || dark.Background != (color.RGBA{0x1E, 0x1E, 0x1E, 0xFF}) {
		t.Fatalf("dark = %+v", dark)
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ocean.theme"), []byte("Name: ocean\nCanvas: #E0F0FF\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	l.ConfigDir = dir
	ocean, err := l.Load("ocean")
	if err != nil {
		t.Fatalf("Load ocean: %v", err)
	}
	if ocean.Canvas != (color.RGBA{0xE0, 0xF0, 0xFF, 0xFF}) {
		t.Fatalf("canvas = %+v", ocean.Canvas)
	}
	if _, err := l.Load("missing"); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
}

func TestFieldsMatchSet(t *testing.T) {
	th := Default()
	for _, f := range th.Fields() {
		if err := th.Set(f.Name, "#010203"); err != nil {
			t.Fatalf("Set %s: %v", f.Name, err)
		}
	}
	for _, f := range th.Fields() {
		if f.Color != (color.RGBA{1, 2, 3, 255}) {
			t.Fatalf("field %s not set", f.Name)
		}
	}
}
