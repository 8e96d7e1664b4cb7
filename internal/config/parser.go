package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/drawpad/internal/palette"
	"github.com/example/drawpad/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	var current *theme.Theme
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			current = nil
			if name, ok := strings.CutPrefix(section, "theme."); ok {
				current = theme.Default()
				current.Name = name
				cfg.Themes[name] = current
			}
			continue
		}

		key, value, ok := splitKeyValue(line)
		if !ok {
			continue
		}

		var err error
		switch {
		case current != nil:
			err = current.Set(key, value)
		case section == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case section == "palette":
			err = addPaletteEntry(cfg, key, value)
		case section == "":
			err = setRootField(cfg, key, value)
		}
		if err != nil {
			where := "root section"
			if section != "" {
				where = "section [" + section + "]"
			}
			return nil, fmt.Errorf("line %d, %s: %w", lineNo, where, err)
		}
	}

	return cfg, scanner.Err()
}

// splitKeyValue accepts "key = value" and "key: value". Quotes around the
// value are removed.
func splitKeyValue(line string) (string, string, bool) {
	sep := strings.IndexAny(line, "=:")
	if sep < 0 {
		return "", "", false
	}
	key := strings.TrimSpace(line[:sep])
	value := strings.TrimSpace(line[sep+1:])
	if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
		value = value[1 : len(value)-1]
	}
	return key, value, key != ""
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "save_dir":
		cfg.SaveDir = value
	case "pictures_dir":
		cfg.PicturesDir = value
	case "color":
		cfg.Color = value
	case "brush_size":
		w, err := palette.ParseBrush(value)
		if err != nil {
			return err
		}
		cfg.BrushSize = w
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "save":
		n.Save = b
	case "share":
		n.Share = b
	case "copy":
		n.Copy = b
	case "failure":
		n.Failure = b
	}
	return nil
}

func addPaletteEntry(cfg *Config, name, value string) error {
	straight, err := palette.ParseHex(value)
	if err != nil {
		return fmt.Errorf("palette entry %s: %w", name, err)
	}
	col := palette.Premultiply(straight)
	for i, e := range cfg.Palette {
		if strings.EqualFold(e.Name, name) {
			cfg.Palette[i].Color = col
			return nil
		}
	}
	cfg.Palette = append(cfg.Palette, palette.Entry{Name: name, Color: col})
	return nil
}
