// Package export writes rasterized drawings to disk.
package export

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FilePrefix starts every generated file name.
const FilePrefix = "DrawingApp_"

// ExportError reports a failed write together with its destination.
type ExportError struct {
	Op   string
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// Exporter writes images into a directory.
type Exporter struct {
	Dir string
	// Now stamps generated names. Defaults to time.Now.
	Now func() time.Time
}

// New returns an exporter writing to dir.
func New(dir string) *Exporter {
	return &Exporter{Dir: dir, Now: time.Now}
}

// FileName returns DrawingApp_<unix seconds><ext>.
func (e *Exporter) FileName(ext string) string {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return fmt.Sprintf("%s%d%s", FilePrefix, now().Unix(), ext)
}

// path resolves name inside the export directory, generating a name when
// empty. Absolute names are used as given.
func (e *Exporter) path(name, ext string) (string, error) {
	if name == "" {
		name = e.FileName(ext)
	}
	p := name
	if !filepath.IsAbs(p) {
		p = filepath.Join(e.Dir, name)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", &ExportError{Op: "resolve", Path: p, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", &ExportError{Op: "mkdir", Path: filepath.Dir(abs), Err: err}
	}
	return abs, nil
}

// WritePNG encodes img as PNG and returns the absolute path written. An
// empty name generates one.
func (e *Exporter) WritePNG(img image.Image, name string) (string, error) {
	abs, err := e.path(name, ".png")
	if err != nil {
		return "", err
	}
	f, err := os.Create(abs)
	if err != nil {
		return "", &ExportError{Op: "create", Path: abs, Err: err}
	}
	if err := png.Encode(f, img); err != nil {
		if cerr := f.Close(); cerr != nil {
			log.Printf("error closing %q: %v", abs, cerr)
		}
		return "", &ExportError{Op: "encode", Path: abs, Err: err}
	}
	if err := f.Close(); err != nil {
		return "", &ExportError{Op: "close", Path: abs, Err: err}
	}
	return abs, nil
}
