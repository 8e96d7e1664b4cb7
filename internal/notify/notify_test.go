package notify

import (
	"errors"
	"image"
	"os"
	"strings"
	"testing"

	"github.com/example/drawpad/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func captureSends(t *testing.T) *[]sent {
	t.Helper()
	var got []sent
	prev := send
	send = func(title, body string, opts platform.Options) error {
		got = append(got, sent{title, body, opts})
		return nil
	}
	t.Cleanup(func() { send = prev })
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got := captureSends(t)
	n := New(DefaultPreferences())
	n.Save("/tmp/x.png")
	n.Share("/tmp/x.png")
	n.Failure(errors.New("boom"))
	var nilNotifier *Notifier
	nilNotifier.Save("/tmp/x.png")
	if len(*got) != 0 {
		t.Fatalf("unexpected notifications %v", *got)
	}
}

func TestSaveUsesAbsolutePathAndIcon(t *testing.T) {
	got := captureSends(t)
	f, err := os.CreateTemp(t.TempDir(), "saved-*.png")
	if err != nil {
		t.Fatalf("temp: %v", err)
	}
	_ = f.Close()

	n := New(DefaultPreferences())
	n.Enable(EventSave, true)
	n.Save(f.Name())
	if len(*got) != 1 {
		t.Fatalf("want 1 notification, got %d", len(*got))
	}
	s := (*got)[0]
	if s.title != platform.AppName {
		t.Fatalf("title = %q", s.title)
	}
	if !strings.Contains(s.body, f.Name()) || !strings.HasPrefix(s.body, "File saved successfully") {
		t.Fatalf("body = %q", s.body)
	}
	if s.opts.IconPath != f.Name() {
		t.Fatalf("icon = %q", s.opts.IconPath)
	}
}

func TestCopyPreviewIsRemoved(t *testing.T) {
	got := captureSends(t)
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	n.Copy("", image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if len(*got) != 1 {
		t.Fatalf("want 1 notification, got %d", len(*got))
	}
	s := (*got)[0]
	if s.body != "Copied drawing to clipboard" {
		t.Fatalf("body = %q", s.body)
	}
	if s.opts.IconPath == "" {
		t.Fatalf("expected preview icon")
	}
	if _, err := os.Stat(s.opts.IconPath); !os.IsNotExist(err) {
		t.Fatalf("preview not cleaned up: %v", err)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("DRAWPAD_NOTIFY_TITLE", "Sketch")
	t.Setenv("DRAWPAD_NOTIFY_FAILURE_TEXT", "Export failed")
	prefs := LoadPreferences()
	if prefs.Title != "Sketch" {
		t.Fatalf("title = %q", prefs.Title)
	}
	got := captureSends(t)
	n := New(prefs)
	n.Enable(EventFailure, true)
	n.Failure(errors.New("disk full"))
	if len(*got) != 1 || (*got)[0].body != "Export failed" {
		t.Fatalf("got %v", *got)
	}
}

func TestShareAttachesAppIcon(t *testing.T) {
	got := captureSends(t)
	n := New(DefaultPreferences())
	n.Enable(EventShare, true)
	n.Share("/tmp/DrawingApp_1.png")
	if len(*got) != 1 {
		t.Fatalf("want 1 notification, got %d", len(*got))
	}
	s := (*got)[0]
	if s.body != "Sharing DrawingApp_1.png" {
		t.Fatalf("body = %q", s.body)
	}
	if s.opts.IconPath == "" {
		t.Fatalf("expected app icon")
	}
}
