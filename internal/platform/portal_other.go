//go:build !linux

package platform

import (
	"context"
	"image"
)

// PortalPicker needs xdg-desktop-portal and is unavailable here.
type PortalPicker struct {
	Title string
}

func (PortalPicker) PickImage(context.Context) (image.Image, error) {
	return nil, ErrUnsupported
}

// PortalShare needs xdg-desktop-portal and is unavailable here.
type PortalShare struct{}

func (PortalShare) Share(string, string) error { return ErrUnsupported }
