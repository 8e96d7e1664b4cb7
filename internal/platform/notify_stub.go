//go:build !linux && !darwin && !windows

package platform

// Notify reports ErrUnsupported so callers can fall back to the terminal.
func Notify(title, body string, opts Options) error {
	return ErrUnsupported
}
