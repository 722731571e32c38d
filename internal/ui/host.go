package ui

import (
	"fmt"

	"github.com/atomicstack/quelthalas/internal/geom"
	"github.com/atomicstack/quelthalas/internal/host"
	"github.com/atomicstack/quelthalas/internal/shaping"
	"github.com/charmbracelet/bubbles/cursor"
)

// termCaret is the one caret of the canvas. The field that created it last
// owns it.
type termCaret struct {
	cursor       cursor.Model
	owner        *formField
	pos          geom.Point // client coordinates of the owner
	height       int
	visible      bool
	focusPending bool
	moved        bool
}

type fieldCaret struct {
	c     *termCaret
	owner *formField
}

func (fc fieldCaret) Create(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("caret size %dx%d", width, height)
	}
	fc.c.owner = fc.owner
	fc.c.height = height
	fc.c.visible = false
	fc.c.focusPending = true
	return nil
}

func (fc fieldCaret) Destroy() {
	if fc.c.owner != fc.owner {
		return
	}
	fc.c.owner = nil
	fc.c.visible = false
	fc.c.cursor.Blur()
}

func (fc fieldCaret) SetPos(p geom.Point) {
	if fc.c.owner != fc.owner || fc.c.pos == p {
		return
	}
	fc.c.pos = p
	fc.c.moved = true
}

func (fc fieldCaret) Show() {
	if fc.c.owner == fc.owner {
		fc.c.visible = true
	}
}

func (fc fieldCaret) Hide() {
	if fc.c.owner == fc.owner {
		fc.c.visible = false
	}
}

// termIME records what a field tells the input method. Terminals compose
// text themselves, so nothing is forwarded.
type termIME struct {
	pos  geom.Point
	area geom.Rect
	font shaping.Font
}

func (i *termIME) SetCompositionWindow(pos geom.Point, area geom.Rect) error {
	i.pos = pos
	i.area = area
	return nil
}

func (i *termIME) SetCompositionFont(font shaping.Font) error {
	i.font = font
	return nil
}

// fieldHost adapts the model to one field.
type fieldHost struct {
	m  *Model
	ff *formField
}

func (h fieldHost) Invalidate(geom.Rect) {
	h.m.dirty = true
}

func (h fieldHost) Caret() host.Caret {
	return fieldCaret{c: h.m.caret, owner: h.ff}
}

func (h fieldHost) IME() host.IME {
	return &h.ff.ime
}

func (h fieldHost) Clipboard() host.Clipboard {
	return h.m.clipboard
}

func (h fieldHost) ClientToScreen(p geom.Point) geom.Point {
	return p.Add(h.ff.origin)
}

func (h fieldHost) SetCapture() {
	h.m.fieldCapture = h.ff
}

func (h fieldHost) ReleaseCapture() {
	if h.m.fieldCapture == h.ff {
		h.m.fieldCapture = nil
		h.m.dragOutside = false
	}
}

// termPopup is a rectangle of the canvas drawn over the form.
type termPopup struct {
	m           *Model
	bounds      geom.Rect
	destroyed   bool
	invalidated int
}

func (p *termPopup) Bounds() geom.Rect {
	return p.bounds
}

func (p *termPopup) SetBounds(r geom.Rect) error {
	if p.destroyed {
		return host.ErrInvalidWindow
	}
	p.bounds = r
	p.m.dirty = true
	return nil
}

func (p *termPopup) Invalidate() {
	p.invalidated++
	p.m.dirty = true
}

func (p *termPopup) Destroy() error {
	if p.destroyed {
		return host.ErrInvalidWindow
	}
	p.destroyed = true
	kept := p.m.popups[:0]
	for _, q := range p.m.popups {
		if q != p {
			kept = append(kept, q)
		}
	}
	p.m.popups = kept
	if p.m.capture == host.Popup(p) {
		p.m.capture = nil
	}
	p.m.dirty = true
	return nil
}

// menuHost adapts the model to a menu session.
type menuHost struct {
	m *Model
}

func (h menuHost) CreatePopup(bounds geom.Rect) (host.Popup, error) {
	if bounds.Empty() {
		return nil, fmt.Errorf("popup bounds %+v", bounds)
	}
	p := &termPopup{m: h.m, bounds: bounds}
	h.m.popups = append(h.m.popups, p)
	h.m.dirty = true
	return p, nil
}

func (h menuHost) WorkArea(geom.Point) geom.Rect {
	return geom.XYWH(0, 0, h.m.width, h.m.height)
}

func (h menuHost) OwnerAlive() bool {
	return !h.m.quitting
}

func (h menuHost) PostCommand(id uint32) error {
	if h.m.quitting {
		return host.ErrInvalidWindow
	}
	h.m.posted = append(h.m.posted, id)
	return nil
}

func (h menuHost) EnterMenuLoop() {
	h.m.menuLoop++
}

func (h menuHost) ExitMenuLoop() {
	if h.m.menuLoop > 0 {
		h.m.menuLoop--
	}
}

func (h menuHost) SetCapture(p host.Popup) {
	h.m.capture = p
}

func (h menuHost) ReleaseCapture() {
	h.m.capture = nil
}
