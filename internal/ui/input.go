package ui

import (
	"github.com/atomicstack/quelthalas/internal/geom"
	"github.com/atomicstack/quelthalas/internal/host"
	"github.com/atomicstack/quelthalas/internal/shaping"
	tea "github.com/charmbracelet/bubbletea"
)

var shapingFont = shaping.Font{Family: "terminal", Size: 1, LineHeight: 1, AvgCharWidth: 1}

// Control characters fields interpret as editing commands.
const (
	ctrlSelectAll = 0x01
	ctrlCopy      = 0x03
	ctrlBackspace = 0x08
	ctrlPaste     = 0x16
	ctrlCut       = 0x18
	ctrlUndo      = 0x1A
)

type keyMapping struct {
	key  host.Key
	mods host.Modifiers
}

var navigationKeys = map[tea.KeyType]keyMapping{
	tea.KeyLeft:           {host.KeyLeft, 0},
	tea.KeyRight:          {host.KeyRight, 0},
	tea.KeyUp:             {host.KeyUp, 0},
	tea.KeyDown:           {host.KeyDown, 0},
	tea.KeyHome:           {host.KeyHome, 0},
	tea.KeyEnd:            {host.KeyEnd, 0},
	tea.KeyDelete:         {host.KeyDelete, 0},
	tea.KeyInsert:         {host.KeyInsert, 0},
	tea.KeyEnter:          {host.KeyEnter, 0},
	tea.KeyEsc:            {host.KeyEscape, 0},
	tea.KeyF10:            {host.KeyF10, 0},
	tea.KeyShiftLeft:      {host.KeyLeft, host.ModShift},
	tea.KeyShiftRight:     {host.KeyRight, host.ModShift},
	tea.KeyShiftUp:        {host.KeyUp, host.ModShift},
	tea.KeyShiftDown:      {host.KeyDown, host.ModShift},
	tea.KeyShiftHome:      {host.KeyHome, host.ModShift},
	tea.KeyShiftEnd:       {host.KeyEnd, host.ModShift},
	tea.KeyCtrlLeft:       {host.KeyLeft, host.ModCtrl},
	tea.KeyCtrlRight:      {host.KeyRight, host.ModCtrl},
	tea.KeyCtrlUp:         {host.KeyUp, host.ModCtrl},
	tea.KeyCtrlDown:       {host.KeyDown, host.ModCtrl},
	tea.KeyCtrlHome:       {host.KeyHome, host.ModCtrl},
	tea.KeyCtrlEnd:        {host.KeyEnd, host.ModCtrl},
	tea.KeyCtrlShiftLeft:  {host.KeyLeft, host.ModShift | host.ModCtrl},
	tea.KeyCtrlShiftRight: {host.KeyRight, host.ModShift | host.ModCtrl},
	tea.KeyCtrlShiftUp:    {host.KeyUp, host.ModShift | host.ModCtrl},
	tea.KeyCtrlShiftDown:  {host.KeyDown, host.ModShift | host.ModCtrl},
	tea.KeyCtrlShiftHome:  {host.KeyHome, host.ModShift | host.ModCtrl},
	tea.KeyCtrlShiftEnd:   {host.KeyEnd, host.ModShift | host.ModCtrl},
}

var controlChars = map[tea.KeyType]uint16{
	tea.KeyBackspace: ctrlBackspace,
	tea.KeyCtrlH:     ctrlBackspace,
	tea.KeyCtrlA:     ctrlSelectAll,
	tea.KeyCtrlC:     ctrlCopy,
	tea.KeyCtrlV:     ctrlPaste,
	tea.KeyCtrlX:     ctrlCut,
	tea.KeyCtrlZ:     ctrlUndo,
}

// keyEvents translates a key press into host events.
func keyEvents(msg tea.KeyMsg) []host.Event {
	if k, ok := navigationKeys[msg.Type]; ok {
		mods := k.mods
		if msg.Alt {
			mods |= host.ModAlt
		}
		return []host.Event{host.KeyPress{Key: k.key, Mods: mods}}
	}
	if c, ok := controlChars[msg.Type]; ok {
		return []host.Event{host.Char{Unit: c}}
	}
	var runes []rune
	switch msg.Type {
	case tea.KeySpace:
		runes = []rune{' '}
	case tea.KeyRunes:
		if msg.Alt && !msg.Paste {
			return nil
		}
		runes = msg.Runes
	default:
		return nil
	}
	evs := make([]host.Event, 0, len(runes))
	for _, r := range runes {
		for _, c := range host.CharsFromRune(r) {
			evs = append(evs, c)
		}
	}
	return evs
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key := msg.(tea.KeyMsg)
	if m.session != nil {
		for _, ev := range keyEvents(key) {
			m.sendMenu(ev)
		}
		return nil
	}
	switch key.Type {
	case tea.KeyEsc, tea.KeyCtrlQ:
		m.quitting = true
		return nil
	case tea.KeyTab:
		m.focusNext(1)
		return nil
	case tea.KeyShiftTab:
		m.focusNext(-1)
		return nil
	case tea.KeyF2, tea.KeyF10:
		m.openContextMenu(m.caretScreenPos())
		return nil
	}
	ff := m.focused()
	if ff == nil {
		return nil
	}
	for _, ev := range keyEvents(key) {
		ff.field.Handle(ev)
	}
	return nil
}

// caretScreenPos is where keyboard-opened menus appear: just below the
// caret of the focused field.
func (m *Model) caretScreenPos() geom.Point {
	ff := m.focused()
	if ff == nil {
		return geom.Point{}
	}
	p, err := ff.field.PositionFromChar(ff.field.Selection().Caret())
	if err != nil {
		p = geom.Point{}
	}
	return p.Add(ff.origin).Add(geom.Point{Y: 1})
}

func mouseMods(msg tea.MouseMsg) host.Modifiers {
	var mods host.Modifiers
	if msg.Shift {
		mods |= host.ModShift
	}
	if msg.Ctrl {
		mods |= host.ModCtrl
	}
	if msg.Alt {
		mods |= host.ModAlt
	}
	return mods
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse := msg.(tea.MouseMsg)
	p := geom.Point{X: mouse.X, Y: mouse.Y}
	mods := mouseMods(mouse)
	var button host.Button
	switch mouse.Button {
	case tea.MouseButtonLeft:
		button = host.ButtonLeft
	case tea.MouseButtonRight:
		button = host.ButtonRight
	case tea.MouseButtonNone:
	default:
		return nil
	}

	if m.session != nil {
		switch mouse.Action {
		case tea.MouseActionPress:
			m.sendMenu(host.MouseDown{Pos: p, Button: button, Mods: mods})
		case tea.MouseActionRelease:
			m.sendMenu(host.MouseUp{Pos: p, Button: button, Mods: mods})
		case tea.MouseActionMotion:
			m.sendMenu(host.MouseMove{Pos: p, Mods: mods})
		}
		return nil
	}

	switch mouse.Action {
	case tea.MouseActionPress:
		m.mousePress(p, button, mods)
	case tea.MouseActionMotion:
		if ff := m.fieldCapture; ff != nil {
			c := ff.toClient(p)
			fr := ff.field.FormatRect()
			m.dragOutside = c.X < fr.Left || c.X >= fr.Right
			ff.field.Handle(host.MouseMove{Pos: c, Mods: mods})
		}
	case tea.MouseActionRelease:
		if ff := m.fieldCapture; ff != nil {
			ff.field.Handle(host.MouseUp{Pos: ff.toClient(p), Button: host.ButtonLeft, Mods: mods})
		}
	}
	return nil
}

func (m *Model) mousePress(p geom.Point, button host.Button, mods host.Modifiers) {
	i, ff := m.fieldAt(p)
	if ff == nil {
		return
	}
	m.setFocus(i)
	if button == host.ButtonRight {
		m.openContextMenu(p)
		return
	}
	now := m.now()
	double := p == m.lastClickPos && now.Sub(m.lastClick) <= doubleClickTime
	m.lastClick, m.lastClickPos = now, p
	c := ff.toClient(p)
	if double {
		m.lastClick = now.Add(-doubleClickTime)
		ff.field.Handle(host.DoubleClick{Pos: c, Mods: mods})
		return
	}
	ff.field.Handle(host.MouseDown{Pos: c, Button: button, Mods: mods})
}
