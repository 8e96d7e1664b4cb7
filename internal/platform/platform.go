// Package platform adapts the host desktop: storage permissions, picking a
// background picture, sharing an exported file and desktop notifications.
package platform

import (
	"context"
	"errors"
	"image"
)

// AppName identifies the application to desktop services.
const AppName = "Drawpad"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
}

var (
	// ErrPermissionDenied is returned when a storage permission is missing.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrNoImage is returned when the user dismisses the picker.
	ErrNoImage = errors.New("no image selected")
	// ErrUnsupported is returned by services the host cannot provide.
	ErrUnsupported = errors.New("not supported on this platform")
)

// Permission names a storage capability.
type Permission string

const (
	ReadImages  Permission = "read-images"
	WriteImages Permission = "write-images"
)

// PermissionGateway checks and requests storage permissions.
type PermissionGateway interface {
	IsGranted(p Permission) bool
	// Request asks for perms and calls done exactly once with the outcome of
	// each permission.
	Request(perms []Permission, done func(map[Permission]bool))
}

// ImagePicker lets the user choose a picture.
type ImagePicker interface {
	PickImage(ctx context.Context) (image.Image, error)
}

// ShareService hands a file to whatever the desktop uses to share it.
type ShareService interface {
	Share(path, mimeType string) error
}

// ProgressIndicator shows that a long operation is running.
type ProgressIndicator interface {
	Show()
	Hide()
}
