//go:build linux

package platform

import (
	"context"
	"fmt"
	"image"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	portalDest = "org.freedesktop.portal.Desktop"
	portalPath = "/org/freedesktop/portal/desktop"
)

var portalHandleToken = newPortalHandleToken

func newPortalHandleToken() string {
	return fmt.Sprintf("drawpad_%d", time.Now().UnixNano())
}

// PortalPicker opens the desktop file chooser through xdg-desktop-portal.
type PortalPicker struct {
	Title string
}

func (p PortalPicker) PickImage(ctx context.Context) (image.Image, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("dbus connect: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Printf("dbus close: %v", cerr)
		}
	}()

	title := p.Title
	if title == "" {
		title = "Choose a background"
	}
	res, err := portalRequest(ctx, conn, "org.freedesktop.portal.FileChooser.OpenFile", "", title, fileChooserOptions())
	if err != nil {
		return nil, err
	}
	path, err := firstURIPath(res)
	if err != nil {
		return nil, err
	}
	return LoadImage(path)
}

type portalFilterRule struct {
	Kind    uint32
	Pattern string
}

type portalFilter struct {
	Name  string
	Rules []portalFilterRule
}

func fileChooserOptions() map[string]dbus.Variant {
	images := portalFilter{
		Name: "Images",
		Rules: []portalFilterRule{
			{Kind: 1, Pattern: "image/png"},
			{Kind: 1, Pattern: "image/jpeg"},
			{Kind: 1, Pattern: "image/gif"},
		},
	}
	return map[string]dbus.Variant{
		"handle_token": dbus.MakeVariant(portalHandleToken()),
		"modal":        dbus.MakeVariant(true),
		"multiple":     dbus.MakeVariant(false),
		"filters":      dbus.MakeVariant([]portalFilter{images}),
	}
}

func firstURIPath(res map[string]dbus.Variant) (string, error) {
	v, ok := res["uris"]
	if !ok {
		return "", ErrNoImage
	}
	uris, ok := v.Value().([]string)
	if !ok || len(uris) == 0 {
		return "", ErrNoImage
	}
	return uriPath(uris[0])
}

func uriPath(uri string) (string, error) {
	if !strings.HasPrefix(uri, "file://") {
		return "", fmt.Errorf("portal returned non-file uri %q", uri)
	}
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parse uri %q: %w", uri, err)
	}
	return u.Path, nil
}

// portalRequest calls a portal method that answers through a Request
// object and waits for its Response signal.
func portalRequest(ctx context.Context, conn *dbus.Conn, method string, args ...interface{}) (map[string]dbus.Variant, error) {
	sigc := make(chan *dbus.Signal, 4)
	conn.Signal(sigc)
	defer conn.RemoveSignal(sigc)

	obj := conn.Object(portalDest, portalPath)
	var handle dbus.ObjectPath
	call := obj.CallWithContext(ctx, method, 0, args...)
	if call.Err != nil {
		return nil, fmt.Errorf("portal %s: %w", method, call.Err)
	}
	if err := call.Store(&handle); err != nil {
		return nil, fmt.Errorf("portal %s response: %w", method, err)
	}
	rule := fmt.Sprintf("type='signal',interface='org.freedesktop.portal.Request',member='Response',path='%s'", handle)
	if err := conn.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, rule).Err; err != nil {
		return nil, fmt.Errorf("portal subscribe: %w", err)
	}
	defer conn.BusObject().Call("org.freedesktop.DBus.RemoveMatch", 0, rule)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case sig, ok := <-sigc:
			if !ok {
				return nil, fmt.Errorf("portal %s: connection closed", method)
			}
			if sig.Path != handle || sig.Name != "org.freedesktop.portal.Request.Response" {
				continue
			}
			return parseResponse(sig.Body)
		}
	}
}

func parseResponse(body []interface{}) (map[string]dbus.Variant, error) {
	if len(body) < 2 {
		return nil, fmt.Errorf("portal response: short body")
	}
	code, _ := body[0].(uint32)
	switch code {
	case 0:
	case 1:
		return nil, ErrNoImage
	default:
		return nil, fmt.Errorf("portal response: code %d", code)
	}
	res, ok := body[1].(map[string]dbus.Variant)
	if !ok {
		return nil, fmt.Errorf("portal response: unexpected results %T", body[1])
	}
	return res, nil
}

// PortalShare asks the desktop to open the exported file with a handler
// chosen by the user.
type PortalShare struct{}

func (PortalShare) Share(path, mimeType string) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("dbus connect: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Printf("dbus close: %v", cerr)
		}
	}()
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Printf("error closing %q: %v", path, cerr)
		}
	}()
	opts := map[string]dbus.Variant{
		"handle_token": dbus.MakeVariant(portalHandleToken()),
		"ask":          dbus.MakeVariant(true),
	}
	obj := conn.Object(portalDest, portalPath)
	call := obj.Call("org.freedesktop.portal.OpenURI.OpenFile", 0, "", dbus.UnixFD(f.Fd()), opts)
	if call.Err != nil {
		return fmt.Errorf("portal share %s (%s): %w", path, mimeType, call.Err)
	}
	return nil
}
