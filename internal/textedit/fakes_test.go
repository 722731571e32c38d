package textedit

import (
	"unicode/utf16"

	"github.com/atomicstack/quelthalas/internal/geom"
	"github.com/atomicstack/quelthalas/internal/host"
	"github.com/atomicstack/quelthalas/internal/shaping"
)

type fakeCaret struct {
	created   bool
	width     int
	height    int
	pos       geom.Point
	visible   bool
	destroyed int
}

func (c *fakeCaret) Create(w, h int) error {
	c.created, c.width, c.height = true, w, h
	return nil
}

func (c *fakeCaret) Destroy() {
	c.created = false
	c.visible = false
	c.destroyed++
}

func (c *fakeCaret) SetPos(p geom.Point) { c.pos = p }
func (c *fakeCaret) Show()               { c.visible = true }
func (c *fakeCaret) Hide()               { c.visible = false }

type fakeIME struct {
	pos   geom.Point
	area  geom.Rect
	font  shaping.Font
	calls int
}

func (i *fakeIME) SetCompositionWindow(pos geom.Point, area geom.Rect) error {
	i.pos, i.area = pos, area
	i.calls++
	return nil
}

func (i *fakeIME) SetCompositionFont(font shaping.Font) error {
	i.font = font
	return nil
}

type fakeClipboard struct {
	data []uint16
	err  error
}

func (c *fakeClipboard) ReadText() ([]uint16, error) {
	if c.err != nil {
		return nil, c.err
	}
	return append([]uint16(nil), c.data...), nil
}

func (c *fakeClipboard) WriteText(units []uint16) error {
	if c.err != nil {
		return c.err
	}
	c.data = append([]uint16(nil), units...)
	return nil
}

func (c *fakeClipboard) setString(s string) {
	c.data = utf16.Encode([]rune(s))
}

type fakeHost struct {
	invalidated []geom.Rect
	caret       *fakeCaret
	ime         *fakeIME
	clip        *fakeClipboard
	origin      geom.Point
	captured    bool
	captures    int
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		caret:  &fakeCaret{},
		ime:    &fakeIME{},
		clip:   &fakeClipboard{},
		origin: geom.Point{X: 10, Y: 5},
	}
}

func (h *fakeHost) Invalidate(r geom.Rect)    { h.invalidated = append(h.invalidated, r) }
func (h *fakeHost) Caret() host.Caret         { return h.caret }
func (h *fakeHost) IME() host.IME             { return h.ime }
func (h *fakeHost) Clipboard() host.Clipboard { return h.clip }
func (h *fakeHost) ReleaseCapture()           { h.captured = false }

func (h *fakeHost) SetCapture() {
	h.captured = true
	h.captures++
}

func (h *fakeHost) ClientToScreen(p geom.Point) geom.Point {
	return p.Add(h.origin)
}

// failingShaper wraps the cell shaper and fails every call while fail is
// set.
type failingShaper struct {
	inner *shaping.Cells
	fail  bool
	calls int
}

func (s *failingShaper) Analyse(text []uint16, font shaping.Font, opts shaping.Options) (shaping.Analysis, error) {
	s.calls++
	if s.fail {
		return nil, &shaping.Error{Op: "analyse", Err: shaping.ErrExhausted}
	}
	return s.inner.Analyse(text, font, opts)
}

var testFont = shaping.Font{Family: "mono", Size: 1, LineHeight: 1, AvgCharWidth: 1}

// newTestField builds a field whose format rectangle is width cells wide,
// starting at x=1.
func newTestField(h *fakeHost, width int, opts Options) *Field {
	opts.Font = testFont
	opts.Bounds = geom.XYWH(0, 0, width+2, 1)
	opts.PaddingX = 1
	if opts.ID == "" {
		opts.ID = "test"
	}
	return New(h, shaping.NewCells(), opts)
}

func u16(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

func typeString(f *Field, s string) {
	for _, r := range s {
		for _, c := range host.CharsFromRune(r) {
			f.Handle(c)
		}
	}
}

func utf16Decode(units []uint16) []rune {
	return utf16.Decode(units)
}

func keyDown(k host.Key, mods host.Modifiers) host.KeyPress {
	return host.KeyPress{Key: k, Mods: mods}
}

func charEvent(u uint16) host.Char {
	return host.Char{Unit: u}
}
