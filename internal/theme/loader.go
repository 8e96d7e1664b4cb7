package theme

import (
	"embed"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

//go:embed defaults/*.theme
var embedded embed.FS

// Loader handles loading themes from various sources.
type Loader struct {
	ConfigDir string
	SystemDir string
}

// NewLoader creates a new Loader with standard paths.
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{
		ConfigDir: filepath.Join(home, ".config", "drawpad", "themes"),
		SystemDir: "/usr/share/drawpad/themes",
	}
}

// Load resolves name as a file path, then a built-in theme, then a file in
// ConfigDir or SystemDir. An empty name yields Default.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" {
		return Default(), nil
	}
	if _, err := os.Stat(name); err == nil {
		return parseFile(name)
	}

	filename := name
	if !strings.HasSuffix(filename, ".theme") {
		filename += ".theme"
	}
	if f, err := embedded.Open("defaults/" + filename); err == nil {
		return parseAndClose(f, filename)
	}
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir == "" {
			continue
		}
		p := filepath.Join(dir, filename)
		if _, err := os.Stat(p); err == nil {
			return parseFile(p)
		}
	}
	return nil, fmt.Errorf("theme %q not found", name)
}

// Builtin lists the names of the embedded themes.
func Builtin() []string {
	entries, err := embedded.ReadDir("defaults")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".theme"))
	}
	return names
}

func parseFile(path string) (*Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return parseAndClose(f, path)
}

func parseAndClose(f io.ReadCloser, name string) (*Theme, error) {
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("error closing %q: %v", name, err)
		}
	}()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", name, err)
	}
	return t, nil
}
