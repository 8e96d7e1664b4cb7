package platform

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
)

// DirGateway grants read access when the pictures directory can be listed
// and write access when the export directory accepts new files.
type DirGateway struct {
	PicturesDir string
	ExportDir   string
}

// NewDirGateway returns a gateway over the two directories.
func NewDirGateway(pictures, export string) *DirGateway {
	return &DirGateway{PicturesDir: pictures, ExportDir: export}
}

func (g *DirGateway) IsGranted(p Permission) bool {
	switch p {
	case ReadImages:
		return canRead(g.PicturesDir)
	case WriteImages:
		return canWrite(g.ExportDir, false)
	}
	return false
}

// Request creates the export directory when write access is requested and
// reports the resulting state of every permission.
func (g *DirGateway) Request(perms []Permission, done func(map[Permission]bool)) {
	res := make(map[Permission]bool, len(perms))
	for _, p := range perms {
		switch p {
		case ReadImages:
			res[p] = canRead(g.PicturesDir)
		case WriteImages:
			res[p] = canWrite(g.ExportDir, true)
		default:
			res[p] = false
		}
	}
	if done != nil {
		done(res)
	}
}

func canRead(dir string) bool {
	if dir == "" {
		return false
	}
	f, err := os.Open(dir)
	if err != nil {
		return false
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("error closing %q: %v", dir, err)
		}
	}()
	info, err := f.Stat()
	if err != nil || !info.IsDir() {
		return false
	}
	_, err = f.Readdirnames(1)
	return err == nil || errors.Is(err, io.EOF)
}

func canWrite(dir string, create bool) bool {
	if dir == "" {
		return false
	}
	if create {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Printf("create %s: %v", dir, err)
			return false
		}
	}
	f, err := os.CreateTemp(dir, ".drawpad-probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		log.Printf("error closing %q: %v", name, err)
	}
	if err := os.Remove(filepath.Clean(name)); err != nil {
		log.Printf("remove %s: %v", name, err)
	}
	return true
}
