package appstate

import (
	"image"
	"image/color"
	"testing"
	"time"

	"golang.org/x/mobile/event/key"

	"github.com/example/drawpad/internal/canvas"
	"github.com/example/drawpad/internal/theme"
)

func TestShortcutKeys(t *testing.T) {
	got := shortcutKeys('S', key.CodeS, key.ModControl)
	if len(got) != 2 {
		t.Fatalf("got %v", got)
	}
	if got[0] != (KeyShortcut{Rune: 's', Modifiers: key.ModControl}) {
		t.Errorf("rune lookup = %+v", got[0])
	}
	if got[1] != (KeyShortcut{Code: key.CodeS, Modifiers: key.ModControl}) {
		t.Errorf("code lookup = %+v", got[1])
	}
	if got := shortcutKeys(0x13, key.CodeUnknown, key.ModControl); len(got) != 1 || got[0].Rune != 's' {
		t.Errorf("control char lookup = %v", got)
	}
	if got := shortcutKeys(-1, key.CodeEscape, 0); len(got) != 1 || got[0].Code != key.CodeEscape {
		t.Errorf("escape lookup = %v", got)
	}
}

func TestToolbarLayoutAndHitTest(t *testing.T) {
	c := NewController(canvas.New())
	w := NewWindow(c)
	var fired []string
	tb := w.buildToolbar(func(name string) { fired = append(fired, name) })

	if len(tb.swatches) != c.Palette().Len() {
		t.Fatalf("swatches = %d", len(tb.swatches))
	}
	buttons := tb.all()
	for i, cb := range buttons {
		r := cb.Rect()
		if r.Empty() || r.Max.Y > toolbarHeight {
			t.Fatalf("button %d rect %v outside toolbar", i, r)
		}
		for j := i + 1; j < len(buttons); j++ {
			if r.Overlaps(buttons[j].Rect()) {
				t.Fatalf("buttons %d and %d overlap", i, j)
			}
		}
	}

	red := -1
	for i, cb := range tb.swatches {
		if sb := cb.Button.(*SwatchButton); sb.name == "Red" {
			red = i
		}
	}
	if red < 0 {
		t.Fatalf("no red swatch")
	}
	mid := tb.swatches[red].Rect().Min.Add(image.Pt(2, 2))
	idx := hitTest(buttons, mid)
	if idx != red {
		t.Fatalf("hit = %d want %d", idx, red)
	}
	buttons[idx].Activate()
	if c.SelectedColor() != "Red" || !w.selected(buttons[idx]) {
		t.Fatalf("red not selected")
	}

	save := tb.actions[4]
	save.Activate()
	if len(fired) != 1 || fired[0] != "save" {
		t.Fatalf("fired = %v", fired)
	}
	if hitTest(buttons, image.Pt(-5, -5)) != -1 {
		t.Fatalf("hit outside toolbar")
	}
}

func TestDisabledUndoDoesNotFire(t *testing.T) {
	c := NewController(canvas.New())
	w := NewWindow(c)
	var fired []string
	tb := w.buildToolbar(func(name string) { fired = append(fired, name) })
	undo := tb.actions[0]
	undo.sync()
	if !undo.Button.(*LabelButton).drawnOff {
		t.Fatalf("undo should render disabled on an empty canvas")
	}
	undo.Activate()
	if len(fired) != 0 {
		t.Fatalf("disabled undo fired %v", fired)
	}

	c.PointerDown(canvas.Point{X: 1, Y: 1})
	c.PointerUp()
	undo.sync()
	if undo.Button.(*LabelButton).drawnOff {
		t.Fatalf("undo still disabled")
	}
	undo.Activate()
	if len(fired) != 1 || fired[0] != "undo" {
		t.Fatalf("fired = %v", fired)
	}
}

func TestCacheButtonRendersState(t *testing.T) {
	th := theme.Default()
	lb := &LabelButton{label: "Save", theme: th}
	cb := &CacheButton{Button: lb}
	cb.SetRect(image.Rect(0, 0, 40, buttonHeight))
	dst := image.NewRGBA(image.Rect(0, 0, 40, buttonHeight))
	cb.Draw(dst, StateHover)
	if got := dst.RGBAAt(20, 2); got != th.ButtonBackgroundHover {
		t.Fatalf("hover bg = %v", got)
	}
	if cb.cache[StateHover] == nil {
		t.Fatalf("hover render not cached")
	}
	cb.SetRect(image.Rect(0, 0, 50, buttonHeight))
	if cb.cache[StateHover] != nil {
		t.Fatalf("cache kept after resize")
	}
}

func TestStatusTextFallsBackToSummary(t *testing.T) {
	c := NewController(canvas.New())
	w := NewWindow(c)
	w.mu.Lock()
	w.message = "hello"
	w.messageUntil = time.Now().Add(time.Minute)
	w.mu.Unlock()
	if got := w.statusText(time.Now()); got != "hello" {
		t.Fatalf("status = %q", got)
	}
	if got := w.statusText(time.Now().Add(2 * time.Minute)); got != "Black  brush 20  strokes 0" {
		t.Fatalf("status = %q", got)
	}
	w.Show()
	if got := w.statusText(time.Now().Add(2 * time.Minute)); got != "Saving..." {
		t.Fatalf("status = %q", got)
	}
}

func TestWindowThemeCanvasIsExportBackdrop(t *testing.T) {
	c, _ := newTestController(t)
	th := theme.Default()
	th.Canvas = color.RGBA{10, 20, 30, 255}
	NewWindow(c, WithTheme(th))
	if got := c.backdrop().Color; got != th.Canvas {
		t.Fatalf("backdrop color = %v, want theme canvas %v", got, th.Canvas)
	}
}
