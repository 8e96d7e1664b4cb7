package config

import (
	"log"
	"os"
	"path/filepath"
)

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Set at compile time if needed
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load reads the first configuration file found, or returns defaults.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("error closing %q: %v", path, err)
		}
	}()

	return Parse(f)
}

// DefaultPath is where `config save` writes when no file exists yet.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "drawpad", "config.rc")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "drawpad", "config.rc")
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	if l.Version == "dev" {
		if wd, err := os.Getwd(); err == nil {
			local := filepath.Join(wd, ".drawpadrc")
			if _, err := os.Stat(local); err == nil {
				return local
			}
		}
	}

	if p := DefaultPath(); fileExists(p) {
		return p
	}
	home, _ := os.UserHomeDir()
	if p := filepath.Join(home, ".drawpadrc"); fileExists(p) {
		return p
	}
	return ""
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
