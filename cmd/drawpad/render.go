package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/drawpad/internal/canvas"
	"github.com/example/drawpad/internal/clipboard"
	"github.com/example/drawpad/internal/export"
	"github.com/example/drawpad/internal/palette"
	"github.com/example/drawpad/internal/platform"
)

var (
	writeClipboardFn = clipboard.WriteImage
	shareFn          = func(path, mimeType string) error { return platform.DesktopShare().Share(path, mimeType) }
)

var stdin io.Reader = os.Stdin

// renderCmd replays a stroke script and exports the result.
type renderCmd struct {
	*root
	fs          *flag.FlagSet
	script      string
	output      string
	saveDir     string
	width       int
	height      int
	background  string
	fill        string
	format      string
	share       bool
	toClipboard bool
}

func (c *renderCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *renderCmd) Program() string {
	if c.root == nil {
		return "render"
	}
	return c.root.program + " render"
}

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	c := &renderCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.script, "script", "-", "stroke script file, - for stdin")
	fs.StringVar(&c.output, "output", "", "output file (defaults to DrawingApp_<time> in the save dir)")
	fs.StringVar(&c.saveDir, "save-dir", "", "directory for generated file names")
	fs.IntVar(&c.width, "width", 0, "canvas width in pixels (defaults to the background size or 800)")
	fs.IntVar(&c.height, "height", 0, "canvas height in pixels (defaults to the background size or 600)")
	fs.StringVar(&c.background, "background", "", "background picture")
	fs.StringVar(&c.fill, "fill", "white", "background color name or hex value")
	fs.StringVar(&c.format, "format", "", "png or pdf (defaults to the output extension, then png)")
	fs.BoolVar(&c.share, "share", false, "hand the exported file to the desktop share service")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the rendered image to the clipboard")
	fs.BoolVar(&c.toClipboard, "to-clip", false, "copy the rendered image to the clipboard (alias)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	if c.width < 0 || c.height < 0 {
		return nil, fmt.Errorf("width and height must not be negative")
	}
	if c.format == "" {
		c.format = strings.TrimPrefix(strings.ToLower(filepath.Ext(c.output)), ".")
		if c.format != "pdf" {
			c.format = "png"
		}
	}
	c.format = strings.ToLower(c.format)
	if c.format != "png" && c.format != "pdf" {
		return nil, fmt.Errorf("unsupported format %q", c.format)
	}
	return c, nil
}

func (c *renderCmd) colors() *palette.Palette {
	if c.root != nil && c.root.palette != nil {
		return c.root.palette
	}
	return palette.Default
}

func (c *renderCmd) exportDir() string {
	if c.saveDir != "" {
		return c.saveDir
	}
	if c.root != nil && c.root.config != nil {
		return c.root.config.ExportDir()
	}
	return "."
}

func (c *renderCmd) Run() error {
	pal := c.colors()
	fillCol, err := pal.Resolve(c.fill)
	if err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	bg := canvas.Solid(fillCol)
	if c.background != "" {
		img, err := platform.LoadImage(c.background)
		if err != nil {
			return fmt.Errorf("background: %w", err)
		}
		bg.Image = img
	}

	w, h := c.width, c.height
	if w == 0 || h == 0 {
		dw, dh := 800, 600
		if bg.Image != nil {
			dw, dh = bg.Image.Bounds().Dx(), bg.Image.Bounds().Dy()
		}
		if w == 0 {
			w = dw
		}
		if h == 0 {
			h = dh
		}
	}

	opts := []canvas.Option{canvas.WithPalette(pal), canvas.WithSize(w, h)}
	if c.root != nil && c.root.config != nil {
		if c.root.config.BrushSize > 0 {
			opts = append(opts, canvas.WithBrushSize(c.root.config.BrushSize))
		}
		if c.root.config.Color != "" {
			opts = append(opts, canvas.WithColor(c.root.config.Color))
		}
	}
	cv := canvas.New(opts...)
	if err := c.replay(cv); err != nil {
		return err
	}

	snap := cv.Snapshot()
	exp := export.New(c.exportDir())
	log.Printf("rendering %d strokes at %dx%d", len(snap.Strokes), w, h)

	var (
		path string
		img  image.Image
	)
	if c.format == "pdf" {
		path, err = exp.WritePDF(snap, bg, c.output)
	} else {
		img, err = snap.Rasterize(w, h, bg)
		if err == nil {
			path, err = exp.WritePNG(img, c.output)
		}
	}
	if err != nil {
		if c.root != nil {
			c.root.notifier.Failure(err)
		}
		return fmt.Errorf("save drawing: %w", err)
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", path)
	if c.root != nil {
		c.root.notifier.Save(path)
	}

	if c.toClipboard {
		if img == nil {
			if img, err = snap.Rasterize(w, h, bg); err != nil {
				return err
			}
		}
		if err := writeClipboardFn(img); err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		fmt.Fprintln(os.Stderr, "copied drawing to clipboard")
		if c.root != nil {
			c.root.notifier.Copy(filepath.Base(path), img)
		}
	}

	if c.share {
		mime := "image/png"
		if c.format == "pdf" {
			mime = "application/pdf"
		}
		if err := shareFn(path, mime); err != nil {
			return fmt.Errorf("share %s: %w", path, err)
		}
		if c.root != nil {
			c.root.notifier.Share(path)
		}
	}
	return nil
}

func (c *renderCmd) replay(cv *canvas.Canvas) error {
	if c.script == "" || c.script == "-" {
		return replayScript(stdin, cv)
	}
	f, err := os.Open(c.script)
	if err != nil {
		return fmt.Errorf("open script: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("error closing %q: %v", c.script, err)
		}
	}()
	return replayScript(f, cv)
}
