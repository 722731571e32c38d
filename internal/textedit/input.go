package textedit

import (
	"fmt"
	"reflect"

	"github.com/atomicstack/quelthalas/internal/geom"
	"github.com/atomicstack/quelthalas/internal/host"
	"github.com/atomicstack/quelthalas/internal/logging"
	"github.com/atomicstack/quelthalas/internal/logging/events"
)

const (
	charSelectAll = 0x01
	charCopy      = 0x03
	charBackspace = 0x08
	charPaste     = 0x16
	charCut       = 0x18
	charUndo      = 0x1A
	charDelete    = 0x7F
)

func (f *Field) registerHandlers() {
	f.handlers = map[reflect.Type]handler{
		reflect.TypeOf(host.Char{}):        f.onChar,
		reflect.TypeOf(host.KeyPress{}):    f.onKeyDown,
		reflect.TypeOf(host.MouseDown{}):   f.onMouseDown,
		reflect.TypeOf(host.MouseMove{}):   f.onMouseMove,
		reflect.TypeOf(host.MouseUp{}):     f.onMouseUp,
		reflect.TypeOf(host.CaptureLost{}): f.onCaptureLost,
		reflect.TypeOf(host.DoubleClick{}): f.onDoubleClick,
		reflect.TypeOf(host.FocusGained{}): f.onFocusGained,
		reflect.TypeOf(host.FocusLost{}):   f.onFocusLost,
		reflect.TypeOf(host.Composition{}): f.onComposition,
		reflect.TypeOf(host.Copy{}):        func(host.Event) error { return f.Copy() },
		reflect.TypeOf(host.Cut{}):         func(host.Event) error { return f.Cut() },
		reflect.TypeOf(host.Paste{}):       func(host.Event) error { return f.Paste() },
		reflect.TypeOf(host.Clear{}):       func(host.Event) error { return f.Clear() },
		reflect.TypeOf(host.Undo{}):        func(host.Event) error { return f.Undo() },
		reflect.TypeOf(host.SetText{}):     f.onSetText,
		reflect.TypeOf(host.Tick{}):        f.onTick,
	}
}

// Handle dispatches one host event. It reports whether the field handles
// that kind of event at all. Failures are logged and dropped so a single
// bad keystroke never breaks the field.
func (f *Field) Handle(ev host.Event) bool {
	if ev == nil {
		return false
	}
	t := reflect.TypeOf(ev)
	h, ok := f.handlers[t]
	if !ok {
		return false
	}
	if err := h(ev); err != nil {
		name := t.Name()
		logging.Error(fmt.Errorf("field %s: %s: %w", f.opts.ID, name, err))
		events.Field.Error(f.opts.ID, name, err)
	}
	return true
}

func (f *Field) onChar(ev host.Event) error {
	c := ev.(host.Char).Unit
	switch c {
	case charBackspace:
		return f.backspace()
	case charSelectAll:
		_, err := f.SetSelection(At(0), Unset)
		return err
	case charCopy:
		return f.Copy()
	case charPaste:
		return f.Paste()
	case charCut:
		return f.Cut()
	case charUndo:
		return f.Undo()
	}
	if c < 0x20 || c == charDelete {
		return nil
	}

	units := []uint16{c}
	switch {
	case isHighSurrogate(c):
		f.pendingHigh = c
		return nil
	case isLowSurrogate(c):
		if f.pendingHigh == 0 {
			return nil
		}
		units = []uint16{f.pendingHigh, c}
	}
	f.pendingHigh = 0

	if f.opts.Kind == InputNumber && (c < '0' || c > '9') {
		events.Field.Reject(f.opts.ID, events.RejectNonDigit)
		return nil
	}
	return f.ReplaceSelection(true, units, true)
}

func (f *Field) backspace() error {
	if !f.sel.Empty() {
		return f.Clear()
	}
	caret := f.sel.Caret()
	prev, err := f.prevCharStop(caret)
	if err != nil {
		return err
	}
	if prev == caret {
		return nil
	}
	if _, err := f.setSelection(At(prev), At(caret)); err != nil {
		return err
	}
	return f.Clear()
}

func (f *Field) onKeyDown(ev host.Event) error {
	k := ev.(host.KeyPress)
	shift, ctrl := k.Mods.Shift(), k.Mods.Ctrl()
	switch k.Key {
	case host.KeyLeft, host.KeyUp:
		if ctrl {
			return f.moveWordBackward(shift)
		}
		return f.moveBackward(shift)
	case host.KeyRight, host.KeyDown:
		if ctrl {
			return f.moveWordForward(shift)
		}
		return f.moveForward(shift)
	case host.KeyHome:
		return f.moveTo(0, shift)
	case host.KeyEnd:
		return f.moveTo(f.buf.Len(), shift)
	case host.KeyDelete:
		return f.delete(shift, ctrl)
	case host.KeyInsert:
		switch {
		case shift:
			return f.Paste()
		case ctrl:
			return f.Copy()
		}
	case host.KeyBackspace:
		return f.backspace()
	}
	return nil
}

func (f *Field) delete(shift, ctrl bool) error {
	if shift && ctrl {
		return nil
	}
	if !f.sel.Empty() {
		if shift {
			return f.Cut()
		}
		return f.Clear()
	}
	if shift {
		return f.backspace()
	}
	if _, err := f.setSelection(Unset, Unset); err != nil {
		return err
	}
	var err error
	switch {
	case ctrl:
		err = f.moveTo(f.buf.Len(), true)
	default:
		err = f.moveForward(true)
	}
	if err != nil {
		return err
	}
	return f.Clear()
}

// moveTo puts the caret at e, keeping the anchor when extending.
func (f *Field) moveTo(e int, extend bool) error {
	start := e
	if extend {
		start = f.sel.Start
	}
	_, err := f.SetSelection(At(start), At(e))
	return err
}

func (f *Field) moveBackward(extend bool) error {
	e, err := f.prevCharStop(f.sel.End)
	if err != nil {
		return err
	}
	return f.moveTo(e, extend)
}

func (f *Field) moveForward(extend bool) error {
	e, err := f.nextCharStop(f.sel.End)
	if err != nil {
		return err
	}
	return f.moveTo(e, extend)
}

func (f *Field) moveWordBackward(extend bool) error {
	e, err := f.wordLeft(f.sel.End)
	if err != nil {
		return err
	}
	return f.moveTo(e, extend)
}

func (f *Field) moveWordForward(extend bool) error {
	e, err := f.wordRight(f.sel.End)
	if err != nil {
		return err
	}
	return f.moveTo(e, extend)
}

// confine clamps p into the format rectangle.
func (f *Field) confine(p geom.Point) geom.Point {
	return geom.Point{
		X: clamp(p.X, f.format.Left, max(f.format.Right-1, f.format.Left)),
		Y: clamp(p.Y, f.format.Top, max(f.format.Bottom-1, f.format.Top)),
	}
}

func (f *Field) onMouseDown(ev host.Event) error {
	m := ev.(host.MouseDown)
	if m.Button != host.ButtonLeft {
		return nil
	}
	if !f.captured {
		f.captured = true
		f.host.SetCapture()
	}
	f.regionX = 0
	e, err := f.charFromPosition(f.confine(m.Pos).X)
	if err != nil {
		return err
	}
	return f.moveTo(e, m.Mods.Shift())
}

func (f *Field) onMouseMove(ev host.Event) error {
	if !f.captured {
		return nil
	}
	m := ev.(host.MouseMove)
	p := f.confine(m.Pos)
	switch {
	case m.Pos.X < p.X:
		f.regionX = -1
	case m.Pos.X > p.X:
		f.regionX = 1
	default:
		f.regionX = 0
	}
	e, err := f.charFromPosition(p.X)
	if err != nil {
		return err
	}
	if _, err := f.setSelection(At(f.sel.Start), At(e)); err != nil {
		return err
	}
	return f.updateCaret()
}

func (f *Field) onMouseUp(ev host.Event) error {
	if ev.(host.MouseUp).Button != host.ButtonLeft {
		return nil
	}
	if f.captured {
		f.host.ReleaseCapture()
	}
	f.captured = false
	f.regionX = 0
	return nil
}

func (f *Field) onCaptureLost(host.Event) error {
	f.captured = false
	f.regionX = 0
	return nil
}

func (f *Field) onDoubleClick(ev host.Event) error {
	d := ev.(host.DoubleClick)
	pos, err := f.charFromPosition(f.confine(d.Pos).X)
	if err != nil {
		return err
	}
	s, e, err := f.wordBounds(pos)
	if err != nil {
		return err
	}
	if _, err := f.SetSelection(At(s), At(e)); err != nil {
		return err
	}
	if !f.captured {
		f.captured = true
		f.host.SetCapture()
	}
	f.regionX = 0
	return nil
}

func (f *Field) onFocusGained(host.Event) error {
	if f.focused {
		return nil
	}
	f.focused = true
	events.Field.Focus(f.opts.ID)
	if err := f.invalidateText(f.sel.Start, f.sel.End); err != nil {
		return err
	}
	if c := f.host.Caret(); c != nil {
		if err := c.Create(1, f.lineHeight()); err != nil {
			return fmt.Errorf("create caret: %w", err)
		}
	}
	if err := f.updateCaret(); err != nil {
		return err
	}
	if c := f.host.Caret(); c != nil {
		c.Show()
	}
	f.animateRing(1)
	return f.updateIME()
}

func (f *Field) onFocusLost(host.Event) error {
	if !f.focused {
		return nil
	}
	f.focused = false
	events.Field.Blur(f.opts.ID)
	if c := f.host.Caret(); c != nil {
		c.Destroy()
	}
	if f.captured {
		f.captured = false
		f.host.ReleaseCapture()
	}
	f.regionX = 0
	f.pendingHigh = 0
	f.composing = false
	f.compLen = 0
	f.animateRing(0)
	return f.invalidateText(f.sel.Start, f.sel.End)
}

func (f *Field) onSetText(ev host.Event) error {
	return f.SetText(ev.(host.SetText).Text)
}

// onTick extends a drag selection while the pointer sits outside the
// viewport, and advances the focus ring when no scheduler owns it.
func (f *Field) onTick(ev host.Event) error {
	dt := ev.(host.Tick).Elapsed
	if f.opts.Scheduler == nil && f.ring.Active() {
		f.ring.Advance(dt)
		f.host.Invalidate(f.bounds)
	}
	if !f.captured {
		return nil
	}
	switch {
	case f.regionX < 0:
		return f.moveBackward(true)
	case f.regionX > 0:
		return f.moveForward(true)
	}
	return nil
}

func (f *Field) animateRing(to float64) {
	f.ring.Transition(to, f.opts.FocusDuration, f.opts.Easing)
	if f.opts.Scheduler != nil {
		f.opts.Scheduler.Start(f.ring, func(float64) {
			f.host.Invalidate(f.bounds)
		})
		return
	}
	if !f.ring.Active() {
		f.host.Invalidate(f.bounds)
	}
}

// FocusRing is the current focus-ring intensity, 0 unfocused to 1 focused.
func (f *Field) FocusRing() float64 {
	return f.ring.Value()
}

// Animating reports whether the focus ring is still moving.
func (f *Field) Animating() bool {
	return f.ring.Active()
}
