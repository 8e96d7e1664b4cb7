package appstate

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"strings"
	"sync"

	"github.com/example/drawpad/internal/canvas"
	"github.com/example/drawpad/internal/clipboard"
	"github.com/example/drawpad/internal/export"
	"github.com/example/drawpad/internal/notify"
	"github.com/example/drawpad/internal/palette"
	"github.com/example/drawpad/internal/platform"
)

// User facing messages.
const (
	msgPermissionGranted = "Permission granted, now you can read the storage files."
	msgPermissionDenied  = "Oops you just denied the permission."
	msgSaved             = "File saved successfully: %s"
	msgSaveFailed        = "Something went wrong while saving the file"
	msgSaveBusy          = "Still saving the previous drawing"
	msgCopied            = "Drawing copied to clipboard"
	msgPickFailed        = "Could not load the picture"
	msgNothingToSave     = "Nothing to save yet"
)

// MimePNG is the type announced when sharing exports.
const MimePNG = "image/png"

// Exporter writes a rasterized drawing and returns where it went.
type Exporter interface {
	WritePNG(img image.Image, name string) (string, error)
}

// view is what the window exposes back to the controller.
type view interface {
	Message(text string)
	Refresh()
	platform.ProgressIndicator
}

// Controller forwards user actions to the canvas and the platform services.
// Canvas edits are expected on one goroutine; picking and exporting run in
// the background and report back through the view.
type Controller struct {
	canvas   *canvas.Canvas
	palette  *palette.Palette
	perms    platform.PermissionGateway
	picker   platform.ImagePicker
	exporter Exporter
	share    platform.ShareService
	notifier *notify.Notifier
	copyFn   func(image.Image) error

	viewMu sync.RWMutex
	view   view

	mu          sync.Mutex
	background  image.Image
	canvasColor color.Color
	colorToken  string
	saving      bool
	lastExport  string

	wg sync.WaitGroup
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithPermissions sets the permission gateway.
func WithPermissions(g platform.PermissionGateway) ControllerOption {
	return func(c *Controller) { c.perms = g }
}

// WithPicker sets where background pictures come from.
func WithPicker(p platform.ImagePicker) ControllerOption {
	return func(c *Controller) { c.picker = p }
}

// WithExporter sets the file exporter.
func WithExporter(e Exporter) ControllerOption {
	return func(c *Controller) { c.exporter = e }
}

// WithShare sets the share service.
func WithShare(s platform.ShareService) ControllerOption {
	return func(c *Controller) { c.share = s }
}

// WithNotifier sets the desktop notifier.
func WithNotifier(n *notify.Notifier) ControllerOption {
	return func(c *Controller) { c.notifier = n }
}

// WithClipboard replaces the clipboard writer.
func WithClipboard(fn func(image.Image) error) ControllerOption {
	return func(c *Controller) { c.copyFn = fn }
}

// WithBackground sets the initial background picture.
func WithBackground(img image.Image) ControllerOption {
	return func(c *Controller) { c.background = img }
}

// WithCanvasColor sets the color painted under the strokes when no
// background picture is loaded. Nil means white.
func WithCanvasColor(col color.Color) ControllerOption {
	return func(c *Controller) { c.canvasColor = col }
}

// WithPalette sets the palette shown as swatches.
func WithPalette(p *palette.Palette) ControllerOption {
	return func(c *Controller) { c.palette = p }
}

// WithView routes messages, refreshes and progress to v.
func WithView(v view) ControllerOption {
	return func(c *Controller) { c.view = v }
}

// NewController wires a controller around cv.
func NewController(cv *canvas.Canvas, opts ...ControllerOption) *Controller {
	c := &Controller{
		canvas:     cv,
		palette:    palette.Default,
		copyFn:     clipboard.WriteImage,
		colorToken: palette.DefaultColorName,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Canvas returns the canvas being edited.
func (c *Controller) Canvas() *canvas.Canvas { return c.canvas }

// Palette returns the swatch palette.
func (c *Controller) Palette() *palette.Palette { return c.palette }

func (c *Controller) bindView(v view) {
	c.viewMu.Lock()
	c.view = v
	c.viewMu.Unlock()
}

func (c *Controller) currentView() view {
	c.viewMu.RLock()
	defer c.viewMu.RUnlock()
	return c.view
}

func (c *Controller) message(format string, args ...interface{}) {
	text := format
	if len(args) > 0 {
		text = fmt.Sprintf(format, args...)
	}
	log.Print(text)
	if v := c.currentView(); v != nil {
		v.Message(text)
	}
}

func (c *Controller) refresh() {
	if v := c.currentView(); v != nil {
		v.Refresh()
	}
}

func (c *Controller) showProgress(on bool) {
	v := c.currentView()
	if v == nil {
		return
	}
	if on {
		v.Show()
	} else {
		v.Hide()
	}
}

// PaintClicked selects the color named by token unless it is already the
// current selection. It reports whether the brush changed.
func (c *Controller) PaintClicked(token string) bool {
	c.mu.Lock()
	same := strings.EqualFold(strings.TrimSpace(token), c.colorToken)
	c.mu.Unlock()
	if same {
		return false
	}
	if !c.canvas.SetColor(token) {
		return false
	}
	c.mu.Lock()
	c.colorToken = strings.TrimSpace(token)
	c.mu.Unlock()
	c.refresh()
	return true
}

// SelectedColor returns the token of the current swatch.
func (c *Controller) SelectedColor() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.colorToken
}

// BrushChosen applies a preset name or width.
func (c *Controller) BrushChosen(preset string) bool {
	w, err := palette.ParseBrush(preset)
	if err != nil {
		return false
	}
	c.canvas.SetBrushSize(w)
	c.refresh()
	return true
}

func (c *Controller) UndoClicked() {
	if c.canvas.Undo() {
		c.refresh()
	}
}

func (c *Controller) RedoClicked() {
	if c.canvas.Redo() {
		c.refresh()
	}
}

// ClearClicked wipes every stroke. The background picture stays.
func (c *Controller) ClearClicked() {
	c.canvas.Clear()
	c.refresh()
}

// PointerDown, PointerMove and PointerUp translate a drag into a stroke.
func (c *Controller) PointerDown(p canvas.Point) {
	c.canvas.BeginStroke(p)
	c.refresh()
}

func (c *Controller) PointerMove(p canvas.Point) {
	c.canvas.ExtendStroke(p)
	c.refresh()
}

func (c *Controller) PointerUp() {
	c.canvas.EndStroke()
	c.refresh()
}

// Background returns the current background picture, if any.
func (c *Controller) Background() image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.background
}

// SetBackground replaces the background picture.
func (c *Controller) SetBackground(img image.Image) {
	c.mu.Lock()
	c.background = img
	c.mu.Unlock()
	c.refresh()
}

// setCanvasColor replaces the color under the strokes.
func (c *Controller) setCanvasColor(col color.Color) {
	c.mu.Lock()
	c.canvasColor = col
	c.mu.Unlock()
	c.refresh()
}

// backdrop describes what sits behind the strokes, both on screen and in
// exports.
func (c *Controller) backdrop() canvas.Background {
	c.mu.Lock()
	defer c.mu.Unlock()
	return canvas.Background{Color: c.canvasColor, Image: c.background}
}

// GalleryClicked opens the picker straight away when reading is allowed and
// otherwise asks for storage access first. Only a refused read permission
// is reported to the user.
func (c *Controller) GalleryClicked(ctx context.Context) {
	if c.perms == nil || c.perms.IsGranted(platform.ReadImages) {
		c.pickBackground(ctx)
		return
	}
	c.perms.Request([]platform.Permission{platform.ReadImages, platform.WriteImages}, func(res map[platform.Permission]bool) {
		launched := false
		for _, p := range []platform.Permission{platform.ReadImages, platform.WriteImages} {
			granted, ok := res[p]
			if !ok {
				continue
			}
			switch {
			case granted:
				c.message(msgPermissionGranted)
				if !launched {
					launched = true
					c.pickBackground(ctx)
				}
			case p == platform.ReadImages:
				c.message(msgPermissionDenied)
			}
		}
	})
}

func (c *Controller) pickBackground(ctx context.Context) {
	if c.picker == nil {
		c.message("%s: %v", msgPickFailed, platform.ErrUnsupported)
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		img, err := c.picker.PickImage(ctx)
		switch {
		case errors.Is(err, platform.ErrNoImage), errors.Is(err, context.Canceled):
			return
		case err != nil:
			c.message("%s: %v", msgPickFailed, err)
			return
		}
		c.SetBackground(img)
	}()
}

// SaveClicked exports the committed strokes in the background. It reports
// whether an export was started.
func (c *Controller) SaveClicked(ctx context.Context) bool {
	if c.perms != nil && !c.perms.IsGranted(platform.ReadImages) {
		c.message("Cannot save: %v", platform.ErrPermissionDenied)
		return false
	}
	if c.exporter == nil {
		c.message("%s: %v", msgSaveFailed, platform.ErrUnsupported)
		return false
	}
	if !c.canvas.HasStrokes() && c.Background() == nil {
		c.message(msgNothingToSave)
		return false
	}
	c.mu.Lock()
	if c.saving {
		c.mu.Unlock()
		c.message(msgSaveBusy)
		return false
	}
	c.saving = true
	c.mu.Unlock()

	c.showProgress(true)
	snap := c.canvas.Snapshot()
	bg := c.backdrop()
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		path, err := c.exportSnapshot(ctx, snap, bg)
		c.showProgress(false)
		c.mu.Lock()
		c.saving = false
		if err == nil {
			c.lastExport = path
		}
		c.mu.Unlock()
		if err != nil {
			c.reportExportError(err)
			return
		}
		c.message(msgSaved, path)
		c.notifier.Save(path)
		if c.share != nil {
			if err := c.share.Share(path, MimePNG); err != nil {
				log.Printf("share %s: %v", path, err)
			} else {
				c.notifier.Share(path)
			}
		}
	}()
	return true
}

func (c *Controller) exportSnapshot(ctx context.Context, snap canvas.Snapshot, bg canvas.Background) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	w, h := snap.Width, snap.Height
	if (w <= 0 || h <= 0) && bg.Image != nil {
		b := bg.Image.Bounds()
		w, h = b.Dx(), b.Dy()
	}
	img, err := snap.Rasterize(w, h, bg)
	if err != nil {
		return "", err
	}
	return c.exporter.WritePNG(img, "")
}

func (c *Controller) reportExportError(err error) {
	var ee *export.ExportError
	if errors.As(err, &ee) {
		log.Printf("export %s failed at %s: %v", ee.Path, ee.Op, ee.Err)
	} else {
		log.Printf("export: %v", err)
	}
	c.message(msgSaveFailed)
	c.notifier.Failure(err)
}

// LastExport returns the path of the most recent successful export.
func (c *Controller) LastExport() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastExport
}

// Saving reports whether an export is in flight.
func (c *Controller) Saving() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saving
}

// CopyClicked rasterizes the drawing and places it on the clipboard.
func (c *Controller) CopyClicked() error {
	snap := c.canvas.Snapshot()
	bg := c.backdrop()
	w, h := snap.Width, snap.Height
	if (w <= 0 || h <= 0) && bg.Image != nil {
		w, h = bg.Image.Bounds().Dx(), bg.Image.Bounds().Dy()
	}
	img, err := snap.Rasterize(w, h, bg)
	if err != nil {
		c.message("copy: %v", err)
		return err
	}
	if err := c.copyFn(img); err != nil {
		c.message("copy: %v", err)
		return err
	}
	c.message(msgCopied)
	c.notifier.Copy("drawing", img)
	return nil
}

// Wait blocks until background picks and exports have finished.
func (c *Controller) Wait() { c.wg.Wait() }
