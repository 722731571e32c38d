package ui

import (
	"fmt"
	"unicode/utf16"

	"github.com/atomicstack/quelthalas/internal/geom"
	"github.com/atomicstack/quelthalas/internal/host"
	"github.com/atomicstack/quelthalas/internal/logging"
	"github.com/atomicstack/quelthalas/internal/logging/events"
	"github.com/atomicstack/quelthalas/internal/menu"
	"github.com/atomicstack/quelthalas/internal/textedit"
)

const (
	headerRows    = 2
	labelWidth    = 12
	fieldRowGap   = 2
	minFieldWidth = 8
	maxFieldWidth = 40
)

// Context menu commands.
const (
	cmdUndo uint32 = iota + 1
	cmdCut
	cmdCopy
	cmdPaste
	cmdDelete
	cmdSelectAll
	cmdInsertDate
	cmdInsertTime
)

var commandNames = map[uint32]string{
	cmdUndo:       "undo",
	cmdCut:        "cut",
	cmdCopy:       "copy",
	cmdPaste:      "paste",
	cmdDelete:     "delete",
	cmdSelectAll:  "select all",
	cmdInsertDate: "insert date",
	cmdInsertTime: "insert time",
}

// formField is one labelled field placed on the canvas.
type formField struct {
	label  string
	field  *textedit.Field
	origin geom.Point // screen position of the field's client origin
	ime    termIME
}

func (ff *formField) screenBounds() geom.Rect {
	b := ff.field.Bounds()
	return b.Offset(ff.origin.X, ff.origin.Y)
}

func (ff *formField) toClient(p geom.Point) geom.Point {
	return p.Sub(ff.origin)
}

func (m *Model) buildForm() {
	defs := []struct {
		label string
		opts  textedit.Options
	}{
		{"Name", textedit.Options{ID: "name", Kind: textedit.InputText, Placeholder: "Your name", AutoHScroll: true}},
		{"Age", textedit.Options{ID: "age", Kind: textedit.InputNumber, Placeholder: "0", MaxLength: 3}},
		{"Password", textedit.Options{ID: "password", Kind: textedit.InputPassword, AutoHScroll: true}},
	}
	for _, def := range defs {
		ff := &formField{label: def.label}
		opts := def.opts
		opts.Font = shapingFont
		opts.Bounds = geom.XYWH(0, 0, minFieldWidth, 1)
		opts.PaddingX = 1
		opts.FocusDuration = m.theme.Tokens.DurationFaster()
		opts.Easing = m.theme.Tokens.EasyEase()
		opts.Scheduler = m.scheduler
		opts.OnChange = m.markDirty
		ff.field = textedit.New(fieldHost{m: m, ff: ff}, m.shaper, opts)
		m.fields = append(m.fields, ff)
	}
	m.focus = -1
}

func (m *Model) markDirty() {
	m.dirty = true
}

// layout places the fields for the current canvas width.
func (m *Model) layout() {
	w := min(max(m.width-labelWidth-1, minFieldWidth), maxFieldWidth)
	for i, ff := range m.fields {
		ff.origin = geom.Point{X: labelWidth, Y: headerRows + i*fieldRowGap}
		if err := ff.field.Resize(geom.XYWH(0, 0, w, 1)); err != nil {
			logging.Error(fmt.Errorf("resize %s: %w", ff.label, err))
		}
	}
	m.dirty = true
}

func (m *Model) focused() *formField {
	if m.focus < 0 || m.focus >= len(m.fields) {
		return nil
	}
	return m.fields[m.focus]
}

func (m *Model) setFocus(i int) {
	if i == m.focus || i < 0 || i >= len(m.fields) {
		return
	}
	if old := m.focused(); old != nil {
		old.field.Handle(host.FocusLost{})
		if old.field.Kind() == textedit.InputPassword {
			// A password's undo record does not outlive its focus.
			old.field.EmptyUndo()
		}
	}
	m.focus = i
	ff := m.fields[i]
	ff.field.Handle(host.FocusGained{})
	events.UI.FocusField(ff.field.ID())
}

func (m *Model) focusNext(delta int) {
	n := len(m.fields)
	if n == 0 {
		return
	}
	m.setFocus(((m.focus+delta)%n + n) % n)
}

func (m *Model) fieldAt(p geom.Point) (int, *formField) {
	for i, ff := range m.fields {
		if ff.screenBounds().Contains(p) {
			return i, ff
		}
	}
	return -1, nil
}

// contextItems builds the edit menu for ff.
func (m *Model) contextItems(ff *formField) []menu.Info {
	f := ff.field
	sel := f.Selection()
	secret := f.Kind() == textedit.InputPassword
	enable := func(info menu.Info, ok bool) menu.Info {
		if !ok {
			return info.Disable()
		}
		return info
	}
	insert := menu.Sub("Insert",
		menu.Leaf("Today's date", cmdInsertDate),
		menu.Leaf("Current time", cmdInsertTime),
	)
	return []menu.Info{
		enable(menu.Leaf("Undo", cmdUndo), f.CanUndo()),
		menu.Divider(),
		enable(menu.Leaf("Cut", cmdCut), !sel.Empty() && !secret),
		enable(menu.Leaf("Copy", cmdCopy), !sel.Empty() && !secret),
		menu.Leaf("Paste", cmdPaste),
		enable(menu.Leaf("Delete", cmdDelete), !sel.Empty()),
		menu.Divider(),
		enable(menu.Leaf("Select All", cmdSelectAll), f.TextLength() > 0),
		enable(insert, f.Kind() == textedit.InputText),
	}
}

// openContextMenu starts a menu session for the focused field at the
// screen point at.
func (m *Model) openContextMenu(at geom.Point) {
	ff := m.focused()
	if ff == nil || m.session != nil {
		return
	}
	if m.fieldCapture != nil {
		m.fieldCapture.field.Handle(host.CaptureLost{})
		m.fieldCapture = nil
		m.dragOutside = false
	}
	opts := menu.Options{
		Shaper:        m.shaper,
		Font:          shapingFont,
		Metrics:       m.theme.MenuMetrics(),
		HoverDuration: m.theme.Tokens.DurationFaster(),
		Easing:        m.theme.Tokens.EasyEase(),
		Scheduler:     m.scheduler,
	}
	s, err := menu.Open(menuHost{m: m}, m.contextItems(ff), at, opts)
	if err != nil {
		logging.Error(err)
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.session = s
	m.menuTarget = ff
	m.posted = m.posted[:0]
}

// sendMenu feeds one event to the open session and settles it if it ends.
func (m *Model) sendMenu(ev host.Event) {
	if m.session == nil {
		return
	}
	if m.session.Handle(ev) {
		m.endMenu()
	}
}

func (m *Model) endMenu() {
	target := m.menuTarget
	posted := append([]uint32(nil), m.posted...)
	m.session = nil
	m.menuTarget = nil
	m.posted = m.posted[:0]
	m.dirty = true
	if target == nil {
		return
	}
	for _, id := range posted {
		m.applyCommand(target, id)
	}
}

func (m *Model) applyCommand(ff *formField, id uint32) {
	err := m.runCommand(ff.field, id)
	events.UI.Command(id, ff.field.ID(), err)
	if err != nil {
		logging.Error(fmt.Errorf("%s on %s: %w", commandNames[id], ff.label, err))
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.status = fmt.Sprintf("%s: %s", ff.label, commandNames[id])
}

func (m *Model) runCommand(f *textedit.Field, id uint32) error {
	switch id {
	case cmdUndo:
		return f.Undo()
	case cmdCut:
		return f.Cut()
	case cmdCopy:
		return f.Copy()
	case cmdPaste:
		return f.Paste()
	case cmdDelete:
		return f.Clear()
	case cmdSelectAll:
		_, err := f.SetSelection(textedit.At(0), textedit.Unset)
		return err
	case cmdInsertDate:
		return f.ReplaceSelection(true, utf16.Encode([]rune(m.now().Format("2006-01-02"))), true)
	case cmdInsertTime:
		return f.ReplaceSelection(true, utf16.Encode([]rune(m.now().Format("15:04"))), true)
	}
	return fmt.Errorf("unknown command %d", id)
}
