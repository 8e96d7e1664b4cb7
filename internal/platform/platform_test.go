package platform

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestDirGateway(t *testing.T) {
	pics := t.TempDir()
	export := filepath.Join(t.TempDir(), "exports")
	g := NewDirGateway(pics, export)

	if !g.IsGranted(ReadImages) {
		t.Fatalf("read should be granted for an existing directory")
	}
	if g.IsGranted(WriteImages) {
		t.Fatalf("write should not be granted before the export dir exists")
	}

	calls := 0
	var got map[Permission]bool
	g.Request([]Permission{ReadImages, WriteImages}, func(res map[Permission]bool) {
		calls++
		got = res
	})
	if calls != 1 {
		t.Fatalf("callback called %d times", calls)
	}
	if !got[ReadImages] || !got[WriteImages] {
		t.Fatalf("unexpected result %v", got)
	}
	if !g.IsGranted(WriteImages) {
		t.Fatalf("write should be granted after request")
	}
	entries, err := os.ReadDir(export)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("probe file left behind: %v", entries)
	}
}

func TestDirGatewayMissingPictures(t *testing.T) {
	g := NewDirGateway(filepath.Join(t.TempDir(), "missing"), "")
	if g.IsGranted(ReadImages) {
		t.Fatalf("read granted for missing directory")
	}
	var got map[Permission]bool
	g.Request([]Permission{ReadImages, WriteImages}, func(res map[Permission]bool) { got = res })
	if got[ReadImages] || got[WriteImages] {
		t.Fatalf("unexpected grants %v", got)
	}
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestFilePicker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bg.png")
	writePNG(t, path)
	img, err := FilePicker{Path: path}.PickImage(context.Background())
	if err != nil {
		t.Fatalf("PickImage: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if _, err := (FilePicker{}).PickImage(context.Background()); !errors.Is(err, ErrNoImage) {
		t.Fatalf("empty path err = %v, want ErrNoImage", err)
	}
}

type stubPicker struct {
	img image.Image
	err error
	n   *int
}

func (s stubPicker) PickImage(context.Context) (image.Image, error) {
	if s.n != nil {
		*s.n++
	}
	return s.img, s.err
}

func TestFallbackPicker(t *testing.T) {
	want := image.NewRGBA(image.Rect(0, 0, 1, 1))
	second := 0
	fp := FallbackPicker{
		stubPicker{err: ErrUnsupported},
		stubPicker{img: want, n: &second},
	}
	got, err := fp.PickImage(context.Background())
	if err != nil || got != want {
		t.Fatalf("PickImage = %v, %v", got, err)
	}

	third := 0
	fp = FallbackPicker{
		stubPicker{err: ErrNoImage},
		stubPicker{img: want, n: &third},
	}
	if _, err := fp.PickImage(context.Background()); !errors.Is(err, ErrNoImage) {
		t.Fatalf("err = %v, want ErrNoImage", err)
	}
	if third != 0 {
		t.Fatalf("cancel should stop the chain")
	}
}

type stubShare struct {
	err   error
	paths []string
}

func (s *stubShare) Share(path, mimeType string) error {
	s.paths = append(s.paths, path+"|"+mimeType)
	return s.err
}

func TestFallbackShare(t *testing.T) {
	primary := &stubShare{err: errors.New("no portal")}
	secondary := &stubShare{}
	if err := (FallbackShare{Primary: primary, Secondary: secondary}).Share("/tmp/a.png", "image/png"); err != nil {
		t.Fatalf("Share: %v", err)
	}
	if len(secondary.paths) != 1 || secondary.paths[0] != "/tmp/a.png|image/png" {
		t.Fatalf("secondary got %v", secondary.paths)
	}
	if err := (FallbackShare{}).Share("x", "image/png"); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}
