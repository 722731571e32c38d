package textedit

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/atomicstack/quelthalas/internal/geom"
	"github.com/atomicstack/quelthalas/internal/host"
	"github.com/atomicstack/quelthalas/internal/logging"
	"github.com/atomicstack/quelthalas/internal/shaping"
)

func TestInsertThenUndoRestoresTextAndCaret(t *testing.T) {
	f := newTestField(newFakeHost(), 20, Options{AutoHScroll: true})
	if err := f.SetString("Hello"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	if _, err := f.SetSelection(At(2), At(2)); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := f.ReplaceSelection(true, u16("X"), true); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if f.String() != "HeXllo" {
		t.Fatalf("expected HeXllo, got %q", f.String())
	}
	if got := f.Selection(); got != (Selection{3, 3}) {
		t.Fatalf("expected caret at 3, got %+v", got)
	}
	if err := f.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if f.String() != "Hello" {
		t.Fatalf("expected Hello after undo, got %q", f.String())
	}
	if got := f.Selection(); got != (Selection{2, 2}) {
		t.Fatalf("expected caret back at 2, got %+v", got)
	}
}

func TestBackspaceOverSelectAllEmptiesField(t *testing.T) {
	f := newTestField(newFakeHost(), 20, Options{})
	if err := f.SetString("Hello"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	if _, err := f.SetSelection(At(0), At(5)); err != nil {
		t.Fatalf("select: %v", err)
	}
	f.Handle(host.Char{Unit: charBackspace})
	if f.String() != "" {
		t.Fatalf("expected empty text, got %q", f.String())
	}
	if got := f.Selection(); got != (Selection{0, 0}) {
		t.Fatalf("expected selection (0,0), got %+v", got)
	}
}

func TestReplaceThenUndoRestoresSelectedRange(t *testing.T) {
	f := newTestField(newFakeHost(), 20, Options{})
	if err := f.SetString("Hello"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	if _, err := f.SetSelection(At(1), At(4)); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := f.ReplaceSelection(true, u16("XY"), true); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if f.String() != "HXYo" {
		t.Fatalf("expected HXYo, got %q", f.String())
	}
	if err := f.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if f.String() != "Hello" {
		t.Fatalf("expected Hello, got %q", f.String())
	}
	if got := f.Selection(); got != (Selection{1, 4}) {
		t.Fatalf("expected selection (1,4), got %+v", got)
	}
	if err := f.Undo(); err != nil {
		t.Fatalf("redo: %v", err)
	}
	if f.String() != "HXYo" {
		t.Fatalf("expected second undo to redo, got %q", f.String())
	}
}

func TestUndoRestoresBackwardSelection(t *testing.T) {
	f := newTestField(newFakeHost(), 20, Options{})
	if err := f.SetString("Hello"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	if _, err := f.SetSelection(At(4), At(1)); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := f.ReplaceSelection(true, u16("X"), true); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if !f.UndoRecord().Backward {
		t.Fatalf("expected record to remember the backward selection")
	}
	if err := f.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if f.String() != "Hello" {
		t.Fatalf("expected Hello, got %q", f.String())
	}
	if got := f.Selection(); got != (Selection{4, 1}) {
		t.Fatalf("expected selection (4,1), got %+v", got)
	}
}

func TestBackspaceUndoSelectsForward(t *testing.T) {
	f := newTestField(newFakeHost(), 20, Options{})
	if err := f.SetString("abc"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	f.Handle(host.KeyPress{Key: host.KeyEnd})
	f.Handle(host.KeyPress{Key: host.KeyDelete, Mods: host.ModShift})
	if f.String() != "ab" {
		t.Fatalf("expected shift+delete to act as backspace, got %q", f.String())
	}
	f.Handle(host.Char{Unit: charUndo})
	if got := f.Selection(); got != (Selection{2, 3}) {
		t.Fatalf("expected restored text selected forward, got %+v", got)
	}
}

func TestEmptyReplaceOfEmptySelectionIsNoop(t *testing.T) {
	h := newFakeHost()
	changes := 0
	f := newTestField(h, 20, Options{OnChange: func() { changes++ }})
	if err := f.SetString("abc"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	h.invalidated = nil
	if err := f.ReplaceSelection(true, nil, true); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if f.String() != "abc" || f.CanUndo() {
		t.Fatalf("expected untouched text and no undo record, got %q undo=%v", f.String(), f.CanUndo())
	}
	if len(h.invalidated) != 0 || changes != 0 {
		t.Fatalf("expected no side effects, got %d invalidations, %d changes", len(h.invalidated), changes)
	}
}

func TestTypingCoalescesIntoOneUndo(t *testing.T) {
	changes := 0
	f := newTestField(newFakeHost(), 20, Options{OnChange: func() { changes++ }})
	typeString(f, "abc")
	if changes != 3 {
		t.Fatalf("expected three change notifications, got %d", changes)
	}
	rec := f.UndoRecord()
	if rec.Position != 0 || rec.InsertedCount != 3 {
		t.Fatalf("expected one record covering abc, got %+v", rec)
	}
	f.Handle(host.Undo{})
	if f.String() != "" {
		t.Fatalf("expected undo to remove all typing, got %q", f.String())
	}
}

func TestBackspacesCoalesceLeftward(t *testing.T) {
	f := newTestField(newFakeHost(), 20, Options{})
	if err := f.SetString("abcd"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	f.Handle(host.KeyPress{Key: host.KeyEnd})
	f.Handle(host.Char{Unit: charBackspace})
	f.Handle(host.Char{Unit: charBackspace})
	if f.String() != "ab" {
		t.Fatalf("expected ab, got %q", f.String())
	}
	f.Handle(host.Char{Unit: charUndo})
	if f.String() != "abcd" {
		t.Fatalf("expected abcd after undo, got %q", f.String())
	}
	if got := f.Selection(); got != (Selection{2, 4}) {
		t.Fatalf("expected restored text selected, got %+v", got)
	}
}

func TestForwardDeletesCoalesceRightward(t *testing.T) {
	f := newTestField(newFakeHost(), 20, Options{})
	if err := f.SetString("abcd"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	f.Handle(host.KeyPress{Key: host.KeyDelete})
	f.Handle(host.KeyPress{Key: host.KeyDelete})
	if f.String() != "cd" {
		t.Fatalf("expected cd, got %q", f.String())
	}
	rec := f.UndoRecord()
	if rec.Position != 0 || string(utf16Decode(rec.Deleted)) != "ab" {
		t.Fatalf("expected record of ab at 0, got %+v", rec)
	}
}

func TestNonUndoableReplaceClearsRecord(t *testing.T) {
	f := newTestField(newFakeHost(), 20, Options{})
	typeString(f, "ab")
	if !f.CanUndo() {
		t.Fatalf("expected undo record after typing")
	}
	if err := f.ReplaceSelection(false, u16("c"), true); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if f.CanUndo() {
		t.Fatalf("expected record cleared")
	}
}

func TestSetTextClearsUndoWithoutNotifying(t *testing.T) {
	changes := 0
	f := newTestField(newFakeHost(), 20, Options{OnChange: func() { changes++ }})
	typeString(f, "a")
	if err := f.SetText(u16("first\r\nsecond")); err != nil {
		t.Fatalf("set text: %v", err)
	}
	if f.String() != "first" {
		t.Fatalf("expected text cut at the line break, got %q", f.String())
	}
	if f.CanUndo() || changes != 1 {
		t.Fatalf("expected no undo and no extra change, got undo=%v changes=%d", f.CanUndo(), changes)
	}
	if got := f.Selection(); got != (Selection{0, 0}) {
		t.Fatalf("expected caret at start, got %+v", got)
	}
}

func TestWidthLimitTrimsOnlyInsertedText(t *testing.T) {
	f := newTestField(newFakeHost(), 5, Options{})
	if err := f.SetString("abXY"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	if _, err := f.SetSelection(At(2), At(2)); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := f.ReplaceSelection(true, u16("cdef"), true); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if f.String() != "abcXY" {
		t.Fatalf("expected abcXY, got %q", f.String())
	}
	if got := f.Selection(); got != (Selection{3, 3}) {
		t.Fatalf("expected caret after the kept insert, got %+v", got)
	}
	a, err := f.analyse()
	if err != nil {
		t.Fatalf("analyse: %v", err)
	}
	if a.Width() > f.FormatRect().Width() {
		t.Fatalf("expected width %d to fit %d", a.Width(), f.FormatRect().Width())
	}
	if rec := f.UndoRecord(); rec.InsertedCount != 1 {
		t.Fatalf("expected undo to cover one unit, got %+v", rec)
	}
}

func TestWidthLimitStopsTyping(t *testing.T) {
	f := newTestField(newFakeHost(), 5, Options{})
	typeString(f, "abcdefgh")
	if f.String() != "abcde" {
		t.Fatalf("expected typing to stop at the viewport, got %q", f.String())
	}
	typeString(f, "中")
	if f.String() != "abcde" {
		t.Fatalf("expected wide rune rejected, got %q", f.String())
	}
}

func TestWidthLimitKeepsSurrogatePairsWhole(t *testing.T) {
	f := newTestField(newFakeHost(), 3, Options{})
	if err := f.ReplaceSelection(true, u16("a😀😀"), true); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if f.String() != "a😀" {
		t.Fatalf("expected a😀, got %q", f.String())
	}
	if f.TextLength() != 3 {
		t.Fatalf("expected 3 code units, got %d", f.TextLength())
	}
}

func TestAutoHScrollIgnoresWidth(t *testing.T) {
	f := newTestField(newFakeHost(), 5, Options{AutoHScroll: true})
	typeString(f, "abcdefgh")
	if f.String() != "abcdefgh" {
		t.Fatalf("expected full text, got %q", f.String())
	}
}

func TestMaxLengthCutsReplacement(t *testing.T) {
	f := newTestField(newFakeHost(), 20, Options{MaxLength: 4})
	if err := f.ReplaceSelection(true, u16("abcdef"), true); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if f.String() != "abcd" {
		t.Fatalf("expected abcd, got %q", f.String())
	}
	typeString(f, "z")
	if f.String() != "abcd" {
		t.Fatalf("expected full field to refuse input, got %q", f.String())
	}
}

func TestShapingFailureLeavesFieldUntouched(t *testing.T) {
	shaper := &failingShaper{inner: shaping.NewCells()}
	h := newFakeHost()
	f := New(h, shaper, Options{ID: "fail", Font: testFont, Bounds: geom.XYWH(0, 0, 22, 1)})
	if err := f.SetString("Hello"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	if _, err := f.SetSelection(At(5), At(5)); err != nil {
		t.Fatalf("select: %v", err)
	}
	shaper.fail = true
	err := f.ReplaceSelection(true, u16("!"), true)
	if !errors.Is(err, shaping.ErrExhausted) {
		t.Fatalf("expected exhausted error, got %v", err)
	}
	var serr *shaping.Error
	if !errors.As(err, &serr) || serr.Op != "analyse" {
		t.Fatalf("expected shaping error, got %v", err)
	}
	if f.String() != "Hello" || f.Selection() != (Selection{5, 5}) || f.CanUndo() {
		t.Fatalf("expected rollback, got %q %+v undo=%v", f.String(), f.Selection(), f.CanUndo())
	}

	logging.Configure(filepath.Join(t.TempDir(), "field.log"))
	t.Cleanup(func() { logging.Configure("") })
	if !f.Handle(host.Char{Unit: 'x'}) {
		t.Fatalf("expected the char to be handled")
	}
	if f.String() != "Hello" {
		t.Fatalf("expected dropped keystroke, got %q", f.String())
	}
	shaper.fail = false
	f.Handle(host.Char{Unit: 'x'})
	if f.String() != "Hellox" {
		t.Fatalf("expected field to recover, got %q", f.String())
	}
}
