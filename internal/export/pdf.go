package export

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"

	"github.com/jung-kurt/gofpdf"

	"github.com/example/drawpad/internal/canvas"
)

// WritePDF writes the snapshot as vector strokes on a page the size of the
// snapshot, one PDF point per canvas pixel. bg supplies the page color and
// an optional background picture.
func (e *Exporter) WritePDF(snap canvas.Snapshot, bg canvas.Background, name string) (string, error) {
	if snap.Width <= 0 || snap.Height <= 0 {
		return "", &ExportError{Op: "pdf", Path: name, Err: fmt.Errorf("%w: %dx%d", canvas.ErrInvalidSize, snap.Width, snap.Height)}
	}
	abs, err := e.path(name, ".pdf")
	if err != nil {
		return "", err
	}
	w, h := float64(snap.Width), float64(snap.Height)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	fill := bg.Color
	if fill == nil {
		fill = color.White
	}
	r, g, b := rgb(fill)
	pdf.SetFillColor(r, g, b)
	pdf.Rect(0, 0, w, h, "F")

	if bg.Image != nil {
		var buf bytes.Buffer
		if err := png.Encode(&buf, bg.Image); err != nil {
			return "", &ExportError{Op: "encode", Path: abs, Err: err}
		}
		opt := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("background", opt, &buf)
		pdf.ImageOptions("background", 0, 0, w, h, false, opt, 0, "")
	}

	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")
	for _, st := range snap.Strokes {
		drawPDFStroke(pdf, st)
	}
	if err := pdf.OutputFileAndClose(abs); err != nil {
		return "", &ExportError{Op: "pdf", Path: abs, Err: err}
	}
	return abs, nil
}

// pdfPen is the part of *gofpdf.Fpdf strokes are drawn with.
type pdfPen interface {
	SetAlpha(alpha float64, blendModeStr string)
	SetFillColor(r, g, b int)
	SetDrawColor(r, g, b int)
	SetLineWidth(width float64)
	Circle(x, y, r float64, styleStr string)
	MoveTo(x, y float64)
	LineTo(x, y float64)
	DrawPath(styleStr string)
}

func drawPDFStroke(pdf pdfPen, st canvas.Stroke) {
	if len(st.Points) == 0 {
		return
	}
	r, g, b := rgb(st.Color)
	alpha := float64(st.Color.A) / 255
	pdf.SetAlpha(alpha, "Normal")
	defer pdf.SetAlpha(1, "Normal")
	if st.IsDot() {
		pdf.SetFillColor(r, g, b)
		pdf.Circle(st.Points[0].X, st.Points[0].Y, st.Width/2, "F")
		return
	}
	pdf.SetDrawColor(r, g, b)
	pdf.SetLineWidth(st.Width)
	pdf.MoveTo(st.Points[0].X, st.Points[0].Y)
	for _, p := range st.Points[1:] {
		pdf.LineTo(p.X, p.Y)
	}
	pdf.DrawPath("D")
}

func rgb(c color.Color) (int, int, int) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return int(n.R), int(n.G), int(n.B)
}
