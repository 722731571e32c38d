package menu

import (
	"github.com/atomicstack/quelthalas/internal/geom"
	"github.com/atomicstack/quelthalas/internal/host"
)

type fakePopup struct {
	host        *fakeMenuHost
	bounds      geom.Rect
	destroyed   bool
	invalidated int
}

func (p *fakePopup) Bounds() geom.Rect { return p.bounds }
func (p *fakePopup) Invalidate()       { p.invalidated++ }

func (p *fakePopup) SetBounds(r geom.Rect) error {
	if p.destroyed {
		return host.ErrInvalidWindow
	}
	p.bounds = r
	return nil
}

func (p *fakePopup) Destroy() error {
	if p.destroyed {
		return host.ErrInvalidWindow
	}
	p.destroyed = true
	p.host.destroyed = append(p.host.destroyed, p)
	return nil
}

type fakeMenuHost struct {
	work      geom.Rect
	dead      bool
	popups    []*fakePopup
	destroyed []*fakePopup
	posted    []uint32
	entered   int
	exited    int
	capture   host.Popup
	released  int
	createErr error
}

func newFakeMenuHost() *fakeMenuHost {
	return &fakeMenuHost{work: geom.XYWH(0, 0, 80, 24)}
}

func (h *fakeMenuHost) CreatePopup(bounds geom.Rect) (host.Popup, error) {
	if h.createErr != nil {
		return nil, h.createErr
	}
	p := &fakePopup{host: h, bounds: bounds}
	h.popups = append(h.popups, p)
	return p, nil
}

func (h *fakeMenuHost) WorkArea(geom.Point) geom.Rect { return h.work }
func (h *fakeMenuHost) OwnerAlive() bool              { return !h.dead }
func (h *fakeMenuHost) EnterMenuLoop()                { h.entered++ }
func (h *fakeMenuHost) ExitMenuLoop()                 { h.exited++ }
func (h *fakeMenuHost) SetCapture(p host.Popup)       { h.capture = p }

func (h *fakeMenuHost) ReleaseCapture() {
	h.capture = nil
	h.released++
}

func (h *fakeMenuHost) PostCommand(id uint32) error {
	if h.dead {
		return host.ErrInvalidWindow
	}
	h.posted = append(h.posted, id)
	return nil
}

func (h *fakeMenuHost) live() []*fakePopup {
	var out []*fakePopup
	for _, p := range h.popups {
		if !p.destroyed {
			out = append(out, p)
		}
	}
	return out
}

const (
	cmdNew uint32 = iota + 100
	cmdOpen
	cmdA
	cmdB
)

// fileMenu is [New, Open (disabled), divider, More > [A, B]].
func fileMenu() []Info {
	return []Info{
		Leaf("New", cmdNew),
		Leaf("Open", cmdOpen).Disable(),
		Divider(),
		Sub("More", Leaf("A", cmdA), Leaf("B", cmdB)),
	}
}

func key(k host.Key) host.KeyPress {
	return host.KeyPress{Key: k}
}

// center returns the screen point in the middle of item i of m.
func center(m *Menu, i int) geom.Point {
	r := m.ScreenRect(i)
	return geom.Point{X: (r.Left + r.Right) / 2, Y: r.Top}
}

func openFileMenu(h *fakeMenuHost) (*Session, error) {
	return Open(h, fileMenu(), geom.Point{X: 5, Y: 2}, Options{})
}
