// Package theme holds the colors of the drawing window chrome.
package theme

import (
	"image/color"
)

// Theme defines the colors used around the canvas.
type Theme struct {
	Name string

	Background color.RGBA // Window area outside the canvas
	Foreground color.RGBA // Default text

	ToolbarBackground color.RGBA
	StatusBackground  color.RGBA
	StatusText        color.RGBA

	ButtonBackground       color.RGBA
	ButtonBackgroundHover  color.RGBA
	ButtonBackgroundActive color.RGBA // Selected brush or swatch
	ButtonText             color.RGBA
	ButtonBorder           color.RGBA
	ButtonDisabledText     color.RGBA

	// Canvas is painted when no background picture is loaded.
	Canvas color.RGBA
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:                   "Default",
		Background:             color.RGBA{220, 220, 220, 255},
		Foreground:             color.RGBA{0, 0, 0, 255},
		ToolbarBackground:      color.RGBA{220, 220, 220, 255},
		StatusBackground:       color.RGBA{235, 235, 235, 255},
		StatusText:             color.RGBA{40, 40, 40, 255},
		ButtonBackground:       color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover:  color.RGBA{180, 180, 180, 255},
		ButtonBackgroundActive: color.RGBA{150, 150, 150, 255},
		ButtonText:             color.RGBA{0, 0, 0, 255},
		ButtonBorder:           color.RGBA{0, 0, 0, 255},
		ButtonDisabledText:     color.RGBA{130, 130, 130, 255},
		Canvas:                 color.RGBA{255, 255, 255, 255},
	}
}
