// Package config loads drawpad settings from an rc file and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/example/drawpad/internal/palette"
	"github.com/example/drawpad/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save    bool
	Share   bool
	Copy    bool
	Failure bool
}

// Config holds the application configuration.
type Config struct {
	Theme       string
	SaveDir     string
	PicturesDir string
	BrushSize   float64
	Color       string
	Notify      Notify
	Palette     []palette.Entry
	Themes      map[string]*theme.Theme
}

// New creates a new Config with defaults. Zero values mean "use the
// built-in default" so an empty file changes nothing.
func New() *Config {
	return &Config{
		Themes: make(map[string]*theme.Theme),
	}
}

// ApplyEnv overlays DRAWPAD_* environment variables. Invalid numbers are
// reported and leave the field untouched.
func (c *Config) ApplyEnv() error {
	if v := strings.TrimSpace(os.Getenv("DRAWPAD_THEME")); v != "" {
		c.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv("DRAWPAD_SAVE_DIR")); v != "" {
		c.SaveDir = v
	}
	if v := strings.TrimSpace(os.Getenv("DRAWPAD_PICTURES_DIR")); v != "" {
		c.PicturesDir = v
	}
	if v := strings.TrimSpace(os.Getenv("DRAWPAD_COLOR")); v != "" {
		c.Color = v
	}
	if v := strings.TrimSpace(os.Getenv("DRAWPAD_BRUSH_SIZE")); v != "" {
		w, err := palette.ParseBrush(v)
		if err != nil {
			return fmt.Errorf("DRAWPAD_BRUSH_SIZE: %w", err)
		}
		c.BrushSize = w
	}
	return nil
}

// ExportDir returns SaveDir, or the per-user cache directory when unset.
func (c *Config) ExportDir() string {
	if c.SaveDir != "" {
		return expandHome(c.SaveDir)
	}
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "drawpad")
	}
	return filepath.Join(os.TempDir(), "drawpad")
}

// PictureDir returns PicturesDir, XDG_PICTURES_DIR, or ~/Pictures.
func (c *Config) PictureDir() string {
	if c.PicturesDir != "" {
		return expandHome(c.PicturesDir)
	}
	if v := os.Getenv("XDG_PICTURES_DIR"); v != "" {
		return v
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "Pictures")
}

// ApplyPalette adds the configured entries to p.
func (c *Config) ApplyPalette(p *palette.Palette) {
	for _, e := range c.Palette {
		p.Ensure(e.Name, e.Color)
	}
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.PicturesDir != "" {
		fmt.Fprintf(&sb, "pictures_dir = %s\n", c.PicturesDir)
	}
	if c.BrushSize > 0 {
		fmt.Fprintf(&sb, "brush_size = %s\n", strconv.FormatFloat(c.BrushSize, 'g', -1, 64))
	}
	if c.Color != "" {
		fmt.Fprintf(&sb, "color = %s\n", c.Color)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "share = %v\n", c.Notify.Share)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "failure = %v\n", c.Notify.Failure)
	sb.WriteString("\n")

	if len(c.Palette) > 0 {
		sb.WriteString("[palette]\n")
		for _, e := range c.Palette {
			fmt.Fprintf(&sb, "%s = %s\n", e.Name, palette.Hex(e.Color))
		}
		sb.WriteString("\n")
	}

	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)
	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range t.Fields() {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, palette.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
