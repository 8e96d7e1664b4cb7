package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"github.com/example/drawpad/internal/appstate"
	"github.com/example/drawpad/internal/canvas"
	"github.com/example/drawpad/internal/export"
	"github.com/example/drawpad/internal/palette"
	"github.com/example/drawpad/internal/platform"
)

// drawCmd opens the drawing window.
type drawCmd struct {
	*root
	fs          *flag.FlagSet
	background  string
	saveDir     string
	picturesDir string
	color       string
	brush       string
	width       int
	height      int
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func (d *drawCmd) Program() string {
	if d.root == nil {
		return "draw"
	}
	return d.root.program + " draw"
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	fs.StringVar(&d.background, "background", "", "picture to draw on")
	fs.StringVar(&d.saveDir, "save-dir", "", "directory exported drawings are written to")
	fs.StringVar(&d.picturesDir, "pictures-dir", "", "directory background pictures are read from")
	fs.StringVar(&d.color, "color", "", "initial brush color name or hex value")
	fs.StringVar(&d.brush, "brush", "", "initial brush size: small, medium, large or a width")
	fs.IntVar(&d.width, "width", 0, "canvas width in pixels")
	fs.IntVar(&d.height, "height", 0, "canvas height in pixels")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: d}
	}
	if d.width < 0 || d.height < 0 {
		return nil, fmt.Errorf("width and height must not be negative")
	}
	if d.brush != "" {
		if _, err := palette.ParseBrush(d.brush); err != nil {
			return nil, err
		}
	}
	if d.root != nil && d.root.config != nil {
		if d.saveDir != "" {
			d.root.config.SaveDir = d.saveDir
		}
		if d.picturesDir != "" {
			d.root.config.PicturesDir = d.picturesDir
		}
	}
	return d, nil
}

// canvasOptions merges flags over the config file.
func (d *drawCmd) canvasOptions(pal *palette.Palette) ([]canvas.Option, error) {
	opts := []canvas.Option{canvas.WithPalette(pal)}
	if d.width > 0 && d.height > 0 {
		opts = append(opts, canvas.WithSize(d.width, d.height))
	}
	brush := d.brush
	colorToken := d.color
	if d.root != nil && d.root.config != nil {
		if brush == "" && d.root.config.BrushSize > 0 {
			opts = append(opts, canvas.WithBrushSize(d.root.config.BrushSize))
		}
		if colorToken == "" {
			colorToken = d.root.config.Color
		}
	}
	if brush != "" {
		w, err := palette.ParseBrush(brush)
		if err != nil {
			return nil, err
		}
		opts = append(opts, canvas.WithBrushSize(w))
	}
	if colorToken != "" {
		if _, err := pal.Resolve(colorToken); err != nil {
			return nil, fmt.Errorf("color: %w", err)
		}
		opts = append(opts, canvas.WithColor(colorToken))
	}
	return opts, nil
}

func (d *drawCmd) Run() error {
	pal := palette.Default
	if d.root != nil && d.root.palette != nil {
		pal = d.root.palette
	}
	opts, err := d.canvasOptions(pal)
	if err != nil {
		return err
	}
	cv := canvas.New(opts...)

	var bg image.Image
	if d.background != "" {
		if bg, err = platform.LoadImage(d.background); err != nil {
			return fmt.Errorf("background: %w", err)
		}
	}

	exportDir, picturesDir := ".", "."
	if d.root != nil && d.root.config != nil {
		exportDir = d.root.config.ExportDir()
		picturesDir = d.root.config.PictureDir()
	}
	ctrlOpts := []appstate.ControllerOption{
		appstate.WithPalette(pal),
		appstate.WithPermissions(platform.NewDirGateway(picturesDir, exportDir)),
		appstate.WithPicker(platform.FallbackPicker{platform.PortalPicker{}, platform.ClipboardPicker{}}),
		appstate.WithExporter(export.New(exportDir)),
		appstate.WithShare(platform.DesktopShare()),
	}
	if bg != nil {
		ctrlOpts = append(ctrlOpts, appstate.WithBackground(bg))
	}
	winOpts := []appstate.WindowOption{
		appstate.WithOnClose(func() { fmt.Fprintln(os.Stderr, "window closed") }),
	}
	if d.root != nil {
		ctrlOpts = append(ctrlOpts, appstate.WithNotifier(d.root.notifier))
		winOpts = append(winOpts, appstate.WithTheme(d.root.activeTheme))
	}
	ctrl := appstate.NewController(cv, ctrlOpts...)
	if c := d.colorName(); c != "" {
		ctrl.PaintClicked(c)
	}
	appstate.NewWindow(ctrl, winOpts...).Run()
	ctrl.Wait()
	return nil
}

// colorName returns the color token the window should mark as selected.
func (d *drawCmd) colorName() string {
	if d.color != "" {
		return d.color
	}
	if d.root != nil && d.root.config != nil {
		return d.root.config.Color
	}
	return ""
}
