package export

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/example/drawpad/internal/canvas"
)

func fixedExporter(dir string) *Exporter {
	e := New(dir)
	e.Now = func() time.Time { return time.Unix(1700000000, 0) }
	return e
}

func TestFileName(t *testing.T) {
	e := fixedExporter("")
	if got := e.FileName(".png"); got != "DrawingApp_1700000000.png" {
		t.Fatalf("FileName = %q", got)
	}
	if got := e.FileName("pdf"); got != "DrawingApp_1700000000.pdf" {
		t.Fatalf("FileName = %q", got)
	}
}

func TestWritePNG(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.RGBA{10, 20, 30, 255})
	path, err := fixedExporter(dir).WritePNG(img, "")
	if err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	if want := filepath.Join(dir, "DrawingApp_1700000000.png"); path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Fatalf("bounds = %v", decoded.Bounds())
	}
	r, g, b, _ := decoded.At(1, 1).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Fatalf("pixel = %d %d %d", r>>8, g>>8, b>>8)
	}
}

func TestWritePNGNamed(t *testing.T) {
	dir := t.TempDir()
	path, err := New(dir).WritePNG(image.NewRGBA(image.Rect(0, 0, 1, 1)), "sub/out.png")
	if err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	if want := filepath.Join(dir, "sub", "out.png"); path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
}

func TestWritePNGFailureIsExportError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := New(blocker).WritePNG(image.NewRGBA(image.Rect(0, 0, 1, 1)), "")
	var ee *ExportError
	if !errors.As(err, &ee) {
		t.Fatalf("err = %v, want *ExportError", err)
	}
	if ee.Path == "" || ee.Err == nil {
		t.Fatalf("incomplete error: %+v", ee)
	}
}

func TestWritePDF(t *testing.T) {
	dir := t.TempDir()
	snap := canvas.Snapshot{
		Width:  120,
		Height: 80,
		Strokes: []canvas.Stroke{
			{Points: []canvas.Point{{X: 10, Y: 10}, {X: 50, Y: 40}, {X: 100, Y: 20}}, Color: color.RGBA{255, 0, 0, 255}, Width: 4},
			{Points: []canvas.Point{{X: 60, Y: 60}}, Color: color.RGBA{0, 0, 128, 128}, Width: 10},
		},
	}
	path, err := fixedExporter(dir).WritePDF(snap, canvas.Background{}, "")
	if err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("not a PDF: %q", data[:8])
	}
	if filepath.Base(path) != "DrawingApp_1700000000.pdf" {
		t.Fatalf("name = %q", filepath.Base(path))
	}
}

func TestWritePDFEmptySize(t *testing.T) {
	_, err := New(t.TempDir()).WritePDF(canvas.Snapshot{}, canvas.Background{}, "")
	if !errors.Is(err, canvas.ErrInvalidSize) {
		t.Fatalf("err = %v, want ErrInvalidSize", err)
	}
}

type recordingPen struct {
	ops   []string
	alpha float64
	fill  [3]int
}

func (p *recordingPen) SetAlpha(alpha float64, _ string) {
	if alpha != 1 {
		p.alpha = alpha
	}
}
func (p *recordingPen) SetFillColor(r, g, b int) { p.fill = [3]int{r, g, b} }
func (p *recordingPen) SetDrawColor(_, _, _ int) {}
func (p *recordingPen) SetLineWidth(_ float64) {}
func (p *recordingPen) Circle(_, _, _ float64, _ string) {
	p.ops = append(p.ops, "circle")
}
func (p *recordingPen) MoveTo(_, _ float64) { p.ops = append(p.ops, "move") }
func (p *recordingPen) LineTo(_, _ float64) { p.ops = append(p.ops, "line") }
func (p *recordingPen) DrawPath(_ string) { p.ops = append(p.ops, "path") }

func TestPDFStrokeCoincidentPointsIsDot(t *testing.T) {
	pen := &recordingPen{}
	drawPDFStroke(pen, canvas.Stroke{
		Points: []canvas.Point{{X: 5, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 5}},
		Color:  color.RGBA{128, 0, 0, 128},
		Width:  6,
	})
	if got := strings.Join(pen.ops, ","); got != "circle" {
		t.Fatalf("ops = %s, want circle", got)
	}
	if pen.fill != [3]int{255, 0, 0} {
		t.Fatalf("fill = %v, want straight red", pen.fill)
	}
	if pen.alpha < 0.5 || pen.alpha > 0.51 {
		t.Fatalf("alpha = %v", pen.alpha)
	}
}

func TestPDFStrokeLine(t *testing.T) {
	pen := &recordingPen{}
	drawPDFStroke(pen, canvas.Stroke{
		Points: []canvas.Point{{X: 5, Y: 5}, {X: 5, Y: 5}, {X: 9, Y: 5}},
		Color:  color.RGBA{A: 255},
		Width:  2,
	})
	if got := strings.Join(pen.ops, ","); got != "move,line,line,path" {
		t.Fatalf("ops = %s", got)
	}
}
