package textedit

import (
	"testing"
	"time"

	"github.com/atomicstack/quelthalas/internal/anim"
	"github.com/atomicstack/quelthalas/internal/geom"
	"github.com/atomicstack/quelthalas/internal/host"
)

func TestHandleIgnoresForeignEvents(t *testing.T) {
	f := newTestField(newFakeHost(), 10, Options{})
	if f.Handle(host.CancelMode{}) {
		t.Fatalf("expected CancelMode to be left to the host")
	}
	if f.Handle(nil) {
		t.Fatalf("expected nil event to be ignored")
	}
}

func TestControlCharactersAreNotInserted(t *testing.T) {
	f := newTestField(newFakeHost(), 10, Options{})
	for _, u := range []uint16{0x02, 0x1B, charDelete, '\t'} {
		f.Handle(charEvent(u))
	}
	if f.TextLength() != 0 {
		t.Fatalf("expected no text, got %q", f.String())
	}
}

func TestSurrogatePairArrivesAsTwoChars(t *testing.T) {
	f := newTestField(newFakeHost(), 10, Options{})
	typeString(f, "a😀b")
	if f.String() != "a😀b" {
		t.Fatalf("expected a😀b, got %q", f.String())
	}
	f.Handle(charEvent(0xDE00))
	if f.String() != "a😀b" {
		t.Fatalf("expected a lone low surrogate to be dropped, got %q", f.String())
	}
	f.Handle(keyDown(host.KeyLeft, 0))
	f.Handle(keyDown(host.KeyLeft, 0))
	if got := f.Selection(); got != (Selection{1, 1}) {
		t.Fatalf("expected Left to step over the pair, got %+v", got)
	}
}

func TestNumberFieldAcceptsDigitsOnly(t *testing.T) {
	h := newFakeHost()
	f := newTestField(h, 10, Options{Kind: InputNumber})
	typeString(f, "a1b2")
	if f.String() != "12" {
		t.Fatalf("expected 12, got %q", f.String())
	}
	h.clip.setString("3x")
	f.Handle(host.Paste{})
	if f.String() != "12" {
		t.Fatalf("expected paste with letters rejected, got %q", f.String())
	}
	h.clip.setString("34\n5")
	f.Handle(host.Paste{})
	if f.String() != "1234" {
		t.Fatalf("expected digits before the line break, got %q", f.String())
	}
}

func TestPasswordFieldBlocksCopyAndCut(t *testing.T) {
	h := newFakeHost()
	f := newTestField(h, 10, Options{Kind: InputPassword})
	typeString(f, "secret")
	f.Handle(charEvent(charSelectAll))
	f.Handle(host.Copy{})
	f.Handle(charEvent(charCopy))
	f.Handle(charEvent(charCut))
	f.Handle(keyDown(host.KeyInsert, host.ModCtrl))
	if h.clip.data != nil {
		t.Fatalf("expected clipboard untouched, got %v", h.clip.data)
	}
	if f.String() != "secret" {
		t.Fatalf("expected cut refused, got %q", f.String())
	}
	info, err := f.Paint()
	if err != nil {
		t.Fatalf("paint: %v", err)
	}
	if len(info.Runs) != 1 || info.Runs[0].Text != "******" {
		t.Fatalf("expected masked text, got %+v", info.Runs)
	}
}

func TestClipboardRoundTrip(t *testing.T) {
	h := newFakeHost()
	f := newTestField(h, 20, Options{})
	if err := f.SetString("hello world"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	if _, err := f.SetSelection(At(0), At(5)); err != nil {
		t.Fatalf("select: %v", err)
	}
	f.Handle(charEvent(charCopy))
	if want := append(u16("hello"), 0); string(utf16Decode(h.clip.data)) != string(utf16Decode(want)) {
		t.Fatalf("expected NUL-terminated hello, got %v", h.clip.data)
	}
	f.Handle(charEvent(charCut))
	if f.String() != " world" {
		t.Fatalf("expected cut to remove hello, got %q", f.String())
	}
	f.Handle(keyDown(host.KeyEnd, 0))
	h.clip.setString("!\r\nignored")
	f.Handle(charEvent(charPaste))
	if f.String() != " world!" {
		t.Fatalf("expected paste up to the line break, got %q", f.String())
	}
	h.clip.setString("?")
	f.Handle(keyDown(host.KeyInsert, host.ModShift))
	if f.String() != " world!?" {
		t.Fatalf("expected Shift+Insert to paste, got %q", f.String())
	}
}

func TestWordNavigation(t *testing.T) {
	f := newTestField(newFakeHost(), 30, Options{})
	if err := f.SetString("hello  big world"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	for _, want := range []int{7, 11, 16} {
		f.Handle(keyDown(host.KeyRight, host.ModCtrl))
		if got := f.Selection().End; got != want {
			t.Fatalf("Ctrl+Right: expected %d, got %d", want, got)
		}
	}
	for _, want := range []int{11, 7, 0} {
		f.Handle(keyDown(host.KeyLeft, host.ModCtrl))
		if got := f.Selection().End; got != want {
			t.Fatalf("Ctrl+Left: expected %d, got %d", want, got)
		}
	}
	f.Handle(keyDown(host.KeyEnd, 0))
	f.Handle(keyDown(host.KeyLeft, host.ModShift))
	if got := f.Selection(); got != (Selection{16, 15}) {
		t.Fatalf("expected Shift+Left to extend, got %+v", got)
	}
	f.Handle(keyDown(host.KeyHome, host.ModShift))
	if got := f.Selection(); got != (Selection{16, 0}) {
		t.Fatalf("expected Shift+Home to keep the anchor, got %+v", got)
	}
}

func TestDeleteVariants(t *testing.T) {
	f := newTestField(newFakeHost(), 30, Options{})
	if err := f.SetString("hello  big world"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	if _, err := f.SetSelection(At(6), At(6)); err != nil {
		t.Fatalf("select: %v", err)
	}
	f.Handle(keyDown(host.KeyDelete, host.ModCtrl))
	if f.String() != "hello " {
		t.Fatalf("expected Ctrl+Delete to delete to the end, got %q", f.String())
	}
	f.Handle(keyDown(host.KeyDelete, host.ModShift))
	if f.String() != "hello" {
		t.Fatalf("expected Shift+Delete to delete backwards, got %q", f.String())
	}
	f.Handle(keyDown(host.KeyDelete, host.ModShift|host.ModCtrl))
	if f.String() != "hello" {
		t.Fatalf("expected Shift+Ctrl+Delete to do nothing, got %q", f.String())
	}
}

func TestDoubleClickSelectsWord(t *testing.T) {
	h := newFakeHost()
	f := newTestField(h, 20, Options{})
	if err := f.SetString("hello world"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	left := f.FormatRect().Left
	f.Handle(host.DoubleClick{Pos: geom.Point{X: left + 7}})
	if got := f.Selection(); got != (Selection{6, 11}) {
		t.Fatalf("expected world selected, got %+v", got)
	}
	if !f.Captured() || !h.captured {
		t.Fatalf("expected double click to capture the pointer")
	}
	f.Handle(host.MouseUp{Button: host.ButtonLeft})
	f.Handle(host.DoubleClick{Pos: geom.Point{X: left + 5}})
	if got := f.Selection(); got != (Selection{5, 6}) {
		t.Fatalf("expected the space run selected, got %+v", got)
	}
}

func TestMouseDragAutoScrolls(t *testing.T) {
	h := newFakeHost()
	f := newTestField(h, 5, Options{AutoHScroll: true})
	if err := f.SetString("abcdefghijklmnop"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	f.Handle(host.FocusGained{})
	left := f.FormatRect().Left
	f.Handle(host.MouseDown{Pos: geom.Point{X: left}, Button: host.ButtonLeft})
	if !f.Captured() || !h.captured {
		t.Fatalf("expected capture on button down")
	}
	f.Handle(host.MouseMove{Pos: geom.Point{X: 40}})
	if got := f.Selection(); got != (Selection{0, 4}) {
		t.Fatalf("expected drag to the right edge, got %+v", got)
	}
	f.Handle(host.Tick{Elapsed: 100 * time.Millisecond})
	f.Handle(host.Tick{Elapsed: 100 * time.Millisecond})
	if got := f.Selection(); got != (Selection{0, 6}) {
		t.Fatalf("expected ticks to extend the selection, got %+v", got)
	}
	if f.ScrollOffset() == 0 {
		t.Fatalf("expected the drag to scroll")
	}
	f.Handle(host.MouseUp{Button: host.ButtonLeft})
	if f.Captured() || h.captured {
		t.Fatalf("expected capture released")
	}
	f.Handle(host.Tick{Elapsed: 100 * time.Millisecond})
	if got := f.Selection(); got != (Selection{0, 6}) {
		t.Fatalf("expected ticks to stop after release, got %+v", got)
	}
}

func TestShiftClickExtends(t *testing.T) {
	f := newTestField(newFakeHost(), 20, Options{})
	if err := f.SetString("hello world"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	left := f.FormatRect().Left
	f.Handle(host.MouseDown{Pos: geom.Point{X: left + 2}, Button: host.ButtonLeft})
	f.Handle(host.MouseUp{Button: host.ButtonLeft})
	f.Handle(host.MouseDown{Pos: geom.Point{X: left + 8}, Button: host.ButtonLeft, Mods: host.ModShift})
	if got := f.Selection(); got != (Selection{2, 8}) {
		t.Fatalf("expected (2,8), got %+v", got)
	}
	f.Handle(host.CaptureLost{})
	if f.Captured() {
		t.Fatalf("expected capture loss to end the drag")
	}
}

func TestFocusCreatesCaretAndPlacesIME(t *testing.T) {
	h := newFakeHost()
	f := newTestField(h, 20, Options{})
	f.Handle(host.FocusGained{})
	if !f.Focused() || !h.caret.created || !h.caret.visible {
		t.Fatalf("expected a visible caret, got %+v", h.caret)
	}
	if h.caret.width != 1 || h.caret.height != 1 {
		t.Fatalf("expected a 1x1 caret, got %dx%d", h.caret.width, h.caret.height)
	}
	if h.caret.pos != (geom.Point{X: 1, Y: 0}) {
		t.Fatalf("expected caret at the format origin, got %+v", h.caret.pos)
	}
	if h.ime.font != testFont {
		t.Fatalf("expected composition font to be set")
	}
	if h.ime.pos != (geom.Point{X: 11, Y: 5}) {
		t.Fatalf("expected composition window in screen coordinates, got %+v", h.ime.pos)
	}
	if h.ime.area != (geom.Rect{Left: 11, Top: 5, Right: 31, Bottom: 6}) {
		t.Fatalf("expected screen format rect, got %+v", h.ime.area)
	}
	typeString(f, "ab")
	if h.caret.pos != (geom.Point{X: 3, Y: 0}) {
		t.Fatalf("expected caret to follow typing, got %+v", h.caret.pos)
	}
	f.Handle(host.FocusLost{})
	if f.Focused() || h.caret.created || h.caret.destroyed != 1 {
		t.Fatalf("expected caret destroyed on blur, got %+v", h.caret)
	}
}

func TestFocusRingAnimates(t *testing.T) {
	sched := anim.NewScheduler()
	f := newTestField(newFakeHost(), 20, Options{Scheduler: sched})
	f.Handle(host.FocusGained{})
	if f.FocusRing() != 0 || !sched.Active() {
		t.Fatalf("expected ring transition scheduled, got %v", f.FocusRing())
	}
	sched.Tick(50 * time.Millisecond)
	if v := f.FocusRing(); v <= 0 || v >= 1 {
		t.Fatalf("expected ring mid-transition, got %v", v)
	}
	sched.Tick(time.Second)
	if f.FocusRing() != 1 || sched.Active() {
		t.Fatalf("expected ring settled at 1, got %v", f.FocusRing())
	}

	g := newTestField(newFakeHost(), 20, Options{})
	g.Handle(host.FocusGained{})
	g.Handle(host.Tick{Elapsed: time.Second})
	if g.FocusRing() != 1 || g.Animating() {
		t.Fatalf("expected tick to settle the ring, got %v", g.FocusRing())
	}
}

func TestCompositionCommitsUndoably(t *testing.T) {
	h := newFakeHost()
	f := newTestField(h, 20, Options{})
	f.Handle(host.FocusGained{})
	f.Handle(host.Composition{Text: u16("n")})
	f.Handle(host.Composition{Text: u16("ni")})
	if f.String() != "ni" || !f.Composing() {
		t.Fatalf("expected composition text, got %q", f.String())
	}
	if f.CanUndo() {
		t.Fatalf("expected composition text not to be undoable")
	}
	if s, e := f.CompositionRange(); s != 0 || e != 2 {
		t.Fatalf("expected composition range (0,2), got (%d,%d)", s, e)
	}
	r, err := f.QueryCharPosition(1)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if r != geom.XYWH(12, 5, 1, 1) {
		t.Fatalf("expected second char at screen (12,5), got %+v", r)
	}
	f.Handle(host.Composition{Text: u16("你"), Final: true})
	if f.String() != "你" || f.Composing() {
		t.Fatalf("expected committed result, got %q", f.String())
	}
	if !f.CanUndo() {
		t.Fatalf("expected result to be undoable")
	}
	f.Handle(host.Undo{})
	if f.String() != "" {
		t.Fatalf("expected undo to remove the result, got %q", f.String())
	}
}

func TestCompositionReplacesSelection(t *testing.T) {
	f := newTestField(newFakeHost(), 20, Options{})
	if err := f.SetString("abc"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	if _, err := f.SetSelection(At(1), At(2)); err != nil {
		t.Fatalf("select: %v", err)
	}
	f.Handle(host.Composition{Text: u16("x")})
	f.Handle(host.Composition{Text: u16("y"), Final: true})
	if f.String() != "ayc" {
		t.Fatalf("expected ayc, got %q", f.String())
	}
}

func TestPaintReportsRunsAndSelection(t *testing.T) {
	f := newTestField(newFakeHost(), 20, Options{Placeholder: "name"})
	info, err := f.Paint()
	if err != nil {
		t.Fatalf("paint: %v", err)
	}
	if info.Placeholder != "name" || len(info.Runs) != 0 {
		t.Fatalf("expected placeholder on empty field, got %+v", info)
	}
	if err := f.SetString("hello world"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	f.Handle(host.FocusGained{})
	if _, err := f.SetSelection(At(0), At(5)); err != nil {
		t.Fatalf("select: %v", err)
	}
	info, err = f.Paint()
	if err != nil {
		t.Fatalf("paint: %v", err)
	}
	if info.Placeholder != "" {
		t.Fatalf("expected no placeholder")
	}
	if len(info.Runs) != 2 {
		t.Fatalf("expected two runs, got %+v", info.Runs)
	}
	if r := info.Runs[0]; r.Text != "hello" || !r.Selected || r.X != 1 || r.Width != 5 {
		t.Fatalf("unexpected selected run %+v", r)
	}
	if r := info.Runs[1]; r.Text != " world" || r.Selected || r.X != 6 {
		t.Fatalf("unexpected plain run %+v", r)
	}
	if info.Selection != (geom.Rect{Left: 1, Top: 0, Right: 6, Bottom: 1}) {
		t.Fatalf("unexpected selection rect %+v", info.Selection)
	}
	if info.Caret != (geom.Point{X: 6, Y: 0}) {
		t.Fatalf("unexpected caret %+v", info.Caret)
	}
}

func TestPaintClipsToViewport(t *testing.T) {
	f := newTestField(newFakeHost(), 5, Options{AutoHScroll: true})
	typeString(f, "abcdefghij")
	info, err := f.Paint()
	if err != nil {
		t.Fatalf("paint: %v", err)
	}
	text := ""
	for _, r := range info.Runs {
		text += r.Text
	}
	if len(text) > f.FormatRect().Width() {
		t.Fatalf("expected at most %d visible cells, got %q", f.FormatRect().Width(), text)
	}
	if text != f.String()[info.VisibleStart:info.VisibleEnd] {
		t.Fatalf("expected visible text %q, got %q", f.String()[info.VisibleStart:info.VisibleEnd], text)
	}
	if info.VisibleEnd != f.TextLength() {
		t.Fatalf("expected the caret end to be visible, got end %d", info.VisibleEnd)
	}
}
