// Package notify turns drawing events into desktop notifications.
package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/drawpad/assets"
	"github.com/example/drawpad/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave fires when a drawing is written to disk.
	EventSave Event = "save"
	// EventShare fires when an exported file is handed to the share service.
	EventShare Event = "share"
	// EventCopy fires when a drawing is copied to the clipboard.
	EventCopy Event = "copy"
	// EventFailure fires when an export fails.
	EventFailure Event = "failure"
)

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
}

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: platform.AppName,
		Events: map[Event]EventPreference{
			EventSave:    {Template: "File saved successfully: %s"},
			EventShare:   {Template: "Sharing %s"},
			EventCopy:    {Template: "Copied %s to clipboard"},
			EventFailure: {Template: "Something went wrong while saving the file: %s"},
		},
	}
}

// LoadPreferences applies DRAWPAD_NOTIFY_* environment overrides to the
// defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("DRAWPAD_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for _, event := range []Event{EventSave, EventShare, EventCopy, EventFailure} {
		key := "DRAWPAD_NOTIFY_" + strings.ToUpper(string(event)) + "_TEXT"
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Events[event] = EventPreference{Template: v}
		}
	}
	return prefs
}

var send = platform.Notify

const appIconSize = 64

// Notifier sends OS-level notifications for enabled events. A nil Notifier
// is valid and sends nothing.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New creates a new Notifier using the provided preferences.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool)}
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Save reports a written file, using it as the notification icon.
func (n *Notifier) Save(path string) {
	if !n.enabledFor(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, statErr := os.Stat(abs); statErr == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

// Share reports that path was passed on for sharing.
func (n *Notifier) Share(path string) {
	n.dispatchWithAppIcon(EventShare, filepath.Base(path))
}

// Copy reports a clipboard copy with a preview of img when given.
func (n *Notifier) Copy(detail string, img image.Image) {
	if !n.enabledFor(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "drawing"
	}
	opts := platform.Options{}
	if img != nil {
		if path, cleanup, err := writePreview(img); err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(EventCopy, detail, opts)
}

// Failure reports a failed export.
func (n *Notifier) Failure(err error) {
	if err == nil {
		return
	}
	n.dispatchWithAppIcon(EventFailure, err.Error())
}

// dispatchWithAppIcon sends event with the application icon attached.
func (n *Notifier) dispatchWithAppIcon(event Event, detail string) {
	if !n.enabledFor(event) {
		return
	}
	opts := platform.Options{}
	if icon, err := assets.Icon(appIconSize); err != nil {
		log.Printf("notification icon: %v", err)
	} else if path, cleanup, err := writePreview(icon); err != nil {
		log.Printf("notification icon: %v", err)
	} else {
		defer cleanup()
		opts.IconPath = path
	}
	n.dispatch(event, detail, opts)
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	if !n.enabledFor(event) {
		return
	}
	tmpl := strings.TrimSpace(n.prefs.Events[event].Template)
	if tmpl == "" {
		return
	}
	body := tmpl
	if strings.Contains(tmpl, "%") {
		body = fmt.Sprintf(tmpl, strings.TrimSpace(detail))
	}
	if err := send(n.prefs.Title, strings.TrimSpace(body), opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

func writePreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "drawpad-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}
	return path, cleanup, nil
}
