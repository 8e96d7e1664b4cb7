package platform

import (
	"fmt"
	"log"
	"path/filepath"
)

// NotifyShare announces the file through a desktop notification instead of
// handing it to another application.
type NotifyShare struct {
	Title string
}

func (n NotifyShare) Share(path, mimeType string) error {
	title := n.Title
	if title == "" {
		title = AppName
	}
	body := fmt.Sprintf("%s ready to share (%s)\n%s", filepath.Base(path), mimeType, path)
	return Notify(title, body, Options{IconPath: path})
}

// FallbackShare tries Primary and falls back to Secondary on failure.
type FallbackShare struct {
	Primary   ShareService
	Secondary ShareService
}

func (f FallbackShare) Share(path, mimeType string) error {
	if f.Primary != nil {
		err := f.Primary.Share(path, mimeType)
		if err == nil {
			return nil
		}
		log.Printf("share %s: %v", path, err)
	}
	if f.Secondary == nil {
		return ErrUnsupported
	}
	return f.Secondary.Share(path, mimeType)
}

// DesktopShare is the share service used by the application.
func DesktopShare() ShareService {
	return FallbackShare{Primary: PortalShare{}, Secondary: NotifyShare{}}
}
