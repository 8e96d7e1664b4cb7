package appstate

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/drawpad/internal/canvas"
	"github.com/example/drawpad/internal/palette"
	"github.com/example/drawpad/internal/theme"
)

const (
	defaultCanvasWidth  = 800
	defaultCanvasHeight = 600
	messageDuration     = 3 * time.Second
)

// Window shows the canvas with a toolbar of swatches, brush presets and
// actions on top and a status line below.
type Window struct {
	ctrl    *Controller
	theme   *theme.Theme
	onClose func()

	updateCh chan struct{}

	mu           sync.Mutex
	message      string
	messageUntil time.Time
	busy         bool
}

// WindowOption configures a Window.
type WindowOption func(*Window)

// WithTheme sets the chrome colors.
func WithTheme(t *theme.Theme) WindowOption {
	return func(w *Window) {
		if t != nil {
			w.theme = t
		}
	}
}

// WithOnClose registers fn to run once the window is gone.
func WithOnClose(fn func()) WindowOption { return func(w *Window) { w.onClose = fn } }

// NewWindow binds a window to ctrl. Messages, refreshes and progress from
// the controller are routed to the window from now on.
func NewWindow(ctrl *Controller, opts ...WindowOption) *Window {
	w := &Window{
		ctrl:     ctrl,
		theme:    theme.Default(),
		updateCh: make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(w)
	}
	ctrl.setCanvasColor(w.theme.Canvas)
	ctrl.bindView(w)
	return w
}

// Message shows text in the status line for a few seconds.
func (w *Window) Message(text string) {
	w.mu.Lock()
	w.message = text
	w.messageUntil = time.Now().Add(messageDuration)
	w.mu.Unlock()
	w.Refresh()
	time.AfterFunc(messageDuration, w.Refresh)
}

// Refresh schedules a repaint. It never blocks.
func (w *Window) Refresh() {
	select {
	case w.updateCh <- struct{}{}:
	default:
	}
}

// Show marks a long running export.
func (w *Window) Show() { w.setBusy(true) }

// Hide clears the export marker.
func (w *Window) Hide() { w.setBusy(false) }

func (w *Window) setBusy(b bool) {
	w.mu.Lock()
	w.busy = b
	w.mu.Unlock()
	w.Refresh()
}

// statusText returns the current message or, once it expired, a summary of
// the brush and history.
func (w *Window) statusText(now time.Time) string {
	w.mu.Lock()
	msg, until, busy := w.message, w.messageUntil, w.busy
	w.mu.Unlock()
	if msg != "" && now.Before(until) {
		return msg
	}
	if busy {
		return "Saving..."
	}
	cv := w.ctrl.Canvas()
	return fmt.Sprintf("%s  brush %g  strokes %d", w.ctrl.SelectedColor(), cv.BrushSize(), len(cv.Strokes()))
}

func (w *Window) notifyClose() {
	if w.onClose != nil {
		w.onClose()
	}
}

// Run opens the window and blocks until it is closed.
func (w *Window) Run() { driver.Main(w.Main) }

// toolbar holds the buttons of the top bar in drawing order.
type toolbar struct {
	swatches []*CacheButton
	brushes  []*CacheButton
	actions  []*CacheButton
}

func (tb *toolbar) all() []*CacheButton {
	out := make([]*CacheButton, 0, len(tb.swatches)+len(tb.brushes)+len(tb.actions))
	out = append(out, tb.swatches...)
	out = append(out, tb.brushes...)
	return append(out, tb.actions...)
}

// layout arranges swatches on the first row and brushes then actions on the
// second.
func (tb *toolbar) layout() {
	layoutRow(tb.swatches, padding, padding, swatchSize, buttonWidth)
	y := padding + swatchSize + padding
	x := layoutRow(tb.brushes, padding, y, buttonHeight, buttonWidth)
	layoutRow(tb.actions, x+2*padding, y, buttonHeight, buttonWidth)
}

func (w *Window) buildToolbar(trigger func(string)) *toolbar {
	tb := &toolbar{}
	for _, e := range w.ctrl.Palette().Entries() {
		name := e.Name
		tb.swatches = append(tb.swatches, &CacheButton{Button: &SwatchButton{
			name: name, color: e.Color, theme: w.theme,
			onTap: func() { w.ctrl.PaintClicked(name) },
		}})
	}
	for _, b := range palette.Brushes() {
		name := b.Name
		tb.brushes = append(tb.brushes, &CacheButton{Button: &LabelButton{
			label: strings.ToUpper(name[:1]), action: "brush-" + name, theme: w.theme,
			onTap: func() { w.ctrl.BrushChosen(name) },
		}})
	}
	cv := w.ctrl.Canvas()
	for _, a := range []struct {
		label, action string
		enabled       func() bool
	}{
		{"Undo", "undo", cv.CanUndo}, {"Redo", "redo", cv.CanRedo}, {"Clear", "clear", nil},
		{"Open", "open", nil}, {"Save", "save", nil}, {"Copy", "copy", nil},
	} {
		action := a.action
		tb.actions = append(tb.actions, &CacheButton{Button: &LabelButton{
			label: a.label, action: action, theme: w.theme, enabled: a.enabled,
			onTap: func() { trigger(action) },
		}})
	}
	tb.layout()
	return tb
}

// selected reports whether cb reflects the current brush or color.
func (w *Window) selected(cb *CacheButton) bool {
	switch b := cb.Button.(type) {
	case *SwatchButton:
		return strings.EqualFold(b.name, w.ctrl.SelectedColor())
	case *LabelButton:
		if strings.HasPrefix(b.action, "brush-") {
			width, err := palette.ParseBrush(strings.TrimPrefix(b.action, "brush-"))
			return err == nil && width == w.ctrl.Canvas().BrushSize()
		}
	}
	return false
}

func (w *Window) canvasArea(width, height int) image.Rectangle {
	return image.Rect(0, toolbarHeight, width, height-statusHeight)
}

// Main runs the window on s. It returns when the window is closed or the
// quit action fires.
func (w *Window) Main(s screen.Screen) {
	cv := w.ctrl.Canvas()
	cw, ch := cv.Size()
	if cw <= 0 || ch <= 0 {
		cw, ch = defaultCanvasWidth, defaultCanvasHeight
		if bg := w.ctrl.Background(); bg != nil {
			cw, ch = bg.Bounds().Dx(), bg.Bounds().Dy()
		}
		cv.SetSize(cw, ch)
	}
	width, height := cw, ch+toolbarHeight+statusHeight

	win, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "Drawpad"})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer win.Release()
	defer w.notifyClose()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-w.updateCh:
				win.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()
	defer close(done)

	quit := false
	keyboardAction := map[KeyShortcut]string{}
	actions := map[string]func(){}
	register := func(name string, keys KeyboardShortcuts, fn func()) {
		actions[name] = fn
		if keys != nil {
			for _, sc := range keys.KeyboardShortcuts() {
				keyboardAction[sc] = name
			}
		}
	}
	trigger := func(name string) {
		if fn, ok := actions[name]; ok {
			fn()
			win.Send(paint.Event{})
		}
	}

	register("undo", shortcutList{{Rune: 'z', Modifiers: key.ModControl}}, w.ctrl.UndoClicked)
	register("redo", shortcutList{
		{Rune: 'y', Modifiers: key.ModControl},
		{Rune: 'z', Modifiers: key.ModControl | key.ModShift},
	}, w.ctrl.RedoClicked)
	register("clear", shortcutList{{Code: key.CodeDeleteBackspace, Modifiers: key.ModControl}}, w.ctrl.ClearClicked)
	register("open", shortcutList{{Rune: 'o', Modifiers: key.ModControl}}, func() { w.ctrl.GalleryClicked(ctx) })
	register("save", shortcutList{{Rune: 's', Modifiers: key.ModControl}}, func() { w.ctrl.SaveClicked(ctx) })
	register("copy", shortcutList{{Rune: 'c', Modifiers: key.ModControl}}, func() {
		if err := w.ctrl.CopyClicked(); err != nil {
			log.Printf("copy: %v", err)
		}
	})
	for i, b := range palette.Brushes() {
		name := b.Name
		register("brush-"+name, shortcutList{{Rune: rune('1' + i)}}, func() { w.ctrl.BrushChosen(name) })
	}
	register("quit", shortcutList{{Rune: 'q'}, {Code: key.CodeEscape}}, func() { quit = true })

	tb := w.buildToolbar(trigger)
	buttons := tb.all()
	hover := -1
	pressed := -1
	drawing := false

	for !quit {
		switch e := win.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			area := w.canvasArea(width, height)
			if area.Dx() > 0 && area.Dy() > 0 {
				cv.SetSize(area.Dx(), area.Dy())
			}
			win.Send(paint.Event{})
		case paint.Event:
			w.drawFrame(s, win, width, height, buttons, hover, pressed)
		case mouse.Event:
			p := image.Pt(int(e.X), int(e.Y))
			area := w.canvasArea(width, height)
			local := canvas.Point{X: float64(e.X) - float64(area.Min.X), Y: float64(e.Y) - float64(area.Min.Y)}
			switch {
			case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
				if idx := hitTest(buttons, p); idx >= 0 {
					pressed = idx
					buttons[idx].Activate()
					win.Send(paint.Event{})
					continue
				}
				if p.In(area) {
					drawing = true
					w.ctrl.PointerDown(local)
				}
			case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
				pressed = -1
				if drawing {
					drawing = false
					w.ctrl.PointerUp()
				}
				win.Send(paint.Event{})
			case e.Direction == mouse.DirNone:
				if drawing {
					w.ctrl.PointerMove(local)
					continue
				}
				if idx := hitTest(buttons, p); idx != hover {
					hover = idx
					win.Send(paint.Event{})
				}
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			for _, ks := range shortcutKeys(e.Rune, e.Code, e.Modifiers) {
				if action, ok := keyboardAction[ks]; ok {
					trigger(action)
					break
				}
			}
		}
	}
}

func (w *Window) drawFrame(s screen.Screen, win screen.Window, width, height int, buttons []*CacheButton, hover, pressed int) {
	if width <= 0 || height <= 0 {
		return
	}
	b, err := s.NewBuffer(image.Point{width, height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	dst := b.RGBA()
	th := w.theme

	draw.Draw(dst, dst.Bounds(), &image.Uniform{th.Background}, image.Point{}, draw.Src)

	area := w.canvasArea(width, height)
	if area.Dx() > 0 && area.Dy() > 0 {
		img, err := w.ctrl.Canvas().Compose(area.Dx(), area.Dy(), w.ctrl.backdrop())
		if err != nil {
			log.Printf("compose: %v", err)
		} else {
			draw.Draw(dst, area, img, image.Point{}, draw.Src)
		}
	}

	draw.Draw(dst, image.Rect(0, 0, width, toolbarHeight), &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	for i, cb := range buttons {
		cb.sync()
		state := StateDefault
		switch {
		case i == pressed || w.selected(cb):
			state = StatePressed
		case i == hover:
			state = StateHover
		}
		cb.Draw(dst, state)
	}

	status := image.Rect(0, height-statusHeight, width, height)
	draw.Draw(dst, status, &image.Uniform{th.StatusBackground}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.StatusText), Face: basicfont.Face7x13,
		Dot: fixed.P(padding*2, status.Min.Y+16)}
	d.DrawString(w.statusText(time.Now()))

	win.Upload(image.Point{}, b, b.Bounds())
	win.Publish()
}
