//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"fmt"
	"image"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	initOnce sync.Once
	initErr  error
	owner    *x11Owner
)

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		o := &x11Owner{}
		if err := o.connect(); err != nil {
			initErr = fmt.Errorf("x11 clipboard: %w", err)
			return
		}
		owner = o
	})
	return initErr
}

// WriteImage takes ownership of the CLIPBOARD selection and serves img as
// image/png until another client claims it.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	data, err := encodePNG(img)
	if err != nil {
		return err
	}
	owner.mu.Lock()
	owner.png = data
	owner.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(owner.conn, owner.window, owner.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

// ReadImage asks the current selection owner for image/png data.
func ReadImage() (image.Image, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	data, err := owner.request(owner.atoms.png)
	if err != nil {
		return nil, err
	}
	return decodePNG(data)
}

// x11Owner holds a hidden window that owns the selection while we have
// something on the clipboard.
type x11Owner struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  x11Atoms
	mu     sync.RWMutex
	png    []byte
}

type x11Atoms struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	png       xproto.Atom
	property  xproto.Atom
}

func (o *x11Owner) connect() error {
	conn, err := xgb.NewConn()
	if err != nil {
		return err
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return err
	}
	const mask = xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify
	if err := xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOutput, screen.RootVisual, xproto.CwEventMask, []uint32{mask}).Check(); err != nil {
		conn.Close()
		return err
	}
	atoms, err := lookupAtoms(conn)
	if err != nil {
		xproto.DestroyWindow(conn, window)
		conn.Close()
		return err
	}
	o.conn, o.window, o.atoms = conn, window, atoms
	go o.serve()
	return nil
}

func lookupAtoms(conn *xgb.Conn) (x11Atoms, error) {
	names := []string{"CLIPBOARD", "TARGETS", "image/png", "DRAWPAD_CLIPBOARD"}
	got := make([]xproto.Atom, len(names))
	for i, name := range names {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			return x11Atoms{}, fmt.Errorf("intern %s: %w", name, err)
		}
		got[i] = reply.Atom
	}
	return x11Atoms{clipboard: got[0], targets: got[1], png: got[2], property: got[3]}, nil
}

func (o *x11Owner) serve() {
	for {
		ev, err := o.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			o.answer(e)
		case xproto.SelectionClearEvent:
			o.mu.Lock()
			o.png = nil
			o.mu.Unlock()
		}
	}
}

func (o *x11Owner) answer(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}
	o.mu.RLock()
	data := o.png
	o.mu.RUnlock()

	switch {
	case e.Target == o.atoms.targets:
		targets := []xproto.Atom{o.atoms.targets}
		if len(data) > 0 {
			targets = append(targets, o.atoms.png)
		}
		buf := make([]byte, len(targets)*4)
		for i, atom := range targets {
			xgb.Put32(buf[i*4:], uint32(atom))
		}
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, property, xproto.AtomAtom, 32, uint32(len(targets)), buf)
	case e.Target == o.atoms.png && len(data) > 0:
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, property, o.atoms.png, 8, uint32(len(data)), data)
	default:
		property = xproto.AtomNone
	}

	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	_ = xproto.SendEvent(o.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

// request converts the selection to target on a short lived connection so
// the owner loop is never blocked waiting on ourselves.
func (o *x11Owner) request(target xproto.Atom) ([]byte, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}
	if err := xproto.CreateWindowChecked(conn, 0, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOnly, 0, xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check(); err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, window)

	if err := xproto.ConvertSelectionChecked(conn, window, o.atoms.clipboard, target, o.atoms.property, xproto.TimeCurrentTime).Check(); err != nil {
		return nil, err
	}
	for {
		ev, err := conn.WaitForEvent()
		if err != nil {
			return nil, err
		}
		e, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok {
			continue
		}
		if e.Property == xproto.AtomNone {
			return nil, ErrNoImage
		}
		reply, replyErr := xproto.GetProperty(conn, true, window, e.Property, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
		if replyErr != nil {
			return nil, replyErr
		}
		return append([]byte(nil), reply.Value...), nil
	}
}
