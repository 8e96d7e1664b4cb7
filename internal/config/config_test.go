package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/drawpad/internal/palette"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/drawings
pictures_dir: "/tmp/pictures"
brush_size = large
color = red

[notify]
save = true
share = false
copy = true

[palette]
Brand = #112233
Glass = #11223380

[theme.my_custom_theme]
Background = #111111
Foreground = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/drawings" {
		t.Errorf("Expected save_dir '/tmp/drawings', got '%s'", cfg.SaveDir)
	}
	if cfg.PicturesDir != "/tmp/pictures" {
		t.Errorf("Expected pictures_dir '/tmp/pictures', got '%s'", cfg.PicturesDir)
	}
	if cfg.BrushSize != palette.LargeBrush {
		t.Errorf("Expected brush_size %v, got %v", palette.LargeBrush, cfg.BrushSize)
	}
	if cfg.Color != "red" {
		t.Errorf("Expected color red, got %q", cfg.Color)
	}
	if !cfg.Notify.Save || cfg.Notify.Share || !cfg.Notify.Copy || cfg.Notify.Failure {
		t.Errorf("Unexpected notify settings %+v", cfg.Notify)
	}
	if len(cfg.Palette) != 2 || cfg.Palette[1].Color != palette.Premultiply(color.NRGBA{0x11, 0x22, 0x33, 0x80}) {
		t.Errorf("Unexpected palette %+v", cfg.Palette)
	}

	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.Background != (color.RGBA{0x11, 0x11, 0x11, 0xFF}) {
		t.Errorf("Unexpected Background color: %+v", th.Background)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"[notify]\nsave = maybe\n",
		"brush_size = -1\n",
		"[palette]\nBad = red\n",
		"[theme.x]\nCanvas: #12\n",
	} {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/drawings
brush_size = 12.5
color = #00FF00

[notify]
save = true
share = true
copy = false
failure = true

[palette]
Sky = #87CEEB

[theme.custom]
Name = custom
Background = #000000
Canvas = #FFFFF0
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}
	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if cfg.Theme != cfg2.Theme || cfg.SaveDir != cfg2.SaveDir || cfg.Color != cfg2.Color {
		t.Errorf("Root mismatch: %+v vs %+v", cfg, cfg2)
	}
	if cfg.BrushSize != cfg2.BrushSize {
		t.Errorf("BrushSize mismatch: %v vs %v", cfg.BrushSize, cfg2.BrushSize)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	if len(cfg2.Palette) != 1 || cfg2.Palette[0] != cfg.Palette[0] {
		t.Errorf("Palette mismatch: %+v vs %+v", cfg.Palette, cfg2.Palette)
	}
	t1, t2 := cfg.Themes["custom"], cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DRAWPAD_SAVE_DIR", "/env/out")
	t.Setenv("DRAWPAD_BRUSH_SIZE", "small")
	t.Setenv("DRAWPAD_COLOR", "blue")
	cfg := New()
	cfg.SaveDir = "/file/out"
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.SaveDir != "/env/out" || cfg.BrushSize != palette.SmallBrush || cfg.Color != "blue" {
		t.Fatalf("env not applied: %+v", cfg)
	}

	t.Setenv("DRAWPAD_BRUSH_SIZE", "enormous")
	if err := New().ApplyEnv(); err == nil {
		t.Fatalf("expected error for bad brush size")
	}
}

func TestApplyPalette(t *testing.T) {
	cfg := New()
	cfg.Palette = []palette.Entry{{Name: "Brand", Color: color.RGBA{1, 2, 3, 255}}}
	p := palette.New()
	cfg.ApplyPalette(p)
	if got, err := p.Resolve("brand"); err != nil || got != (color.RGBA{1, 2, 3, 255}) {
		t.Fatalf("Resolve = %+v, %v", got, err)
	}
}

func TestLoaderOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.rc")
	if err := os.WriteFile(path, []byte("color = orange\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := NewLoader("1.0.0", path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Color != "orange" {
		t.Fatalf("color = %q", cfg.Color)
	}
}

func TestLoaderDevFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	if got := NewLoader("dev", "").GetConfigPath(); got != "" {
		t.Fatalf("unexpected config %q", got)
	}
	if err := os.WriteFile(filepath.Join(dir, ".drawpadrc"), []byte("theme = dark\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := NewLoader("dev", "").GetConfigPath(); got != filepath.Join(dir, ".drawpadrc") {
		t.Fatalf("dev path = %q", got)
	}
}
