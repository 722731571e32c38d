// Package host describes the widget host the editing engine and the menu
// tracker run inside: the semantic input events it dispatches and the
// services it offers back.
package host

import (
	"time"
	"unicode"
	"unicode/utf16"

	"github.com/atomicstack/quelthalas/internal/geom"
)

// Event is one decoded input or lifecycle notification.
type Event interface {
	isEvent()
}

// Modifiers is a bitset of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
)

func (m Modifiers) Shift() bool { return m&ModShift != 0 }
func (m Modifiers) Ctrl() bool  { return m&ModCtrl != 0 }
func (m Modifiers) Alt() bool   { return m&ModAlt != 0 }

// Key names a non-character key.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyDelete
	KeyInsert
	KeyBackspace
	KeyEnter
	KeyEscape
	KeyTab
	KeyAlt
	KeyF10
)

var keyNames = map[Key]string{
	KeyNone:      "none",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyDelete:    "delete",
	KeyInsert:    "insert",
	KeyBackspace: "backspace",
	KeyEnter:     "enter",
	KeyEscape:    "escape",
	KeyTab:       "tab",
	KeyAlt:       "alt",
	KeyF10:       "f10",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// Button identifies a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
)

// Char delivers one UTF-16 code unit of typed text. Control characters
// (backspace, ^C, ^V, ^X, ^Z) arrive as Char too.
type Char struct {
	Unit uint16
}

// CharsFromRune splits r into the code units a host delivers for it,
// surrogate pairs included.
func CharsFromRune(r rune) []Char {
	if r1, r2 := utf16.EncodeRune(r); r1 != unicode.ReplacementChar || r2 != unicode.ReplacementChar {
		return []Char{{Unit: uint16(r1)}, {Unit: uint16(r2)}}
	}
	return []Char{{Unit: uint16(r)}}
}

type KeyPress struct {
	Key  Key
	Mods Modifiers
}

type MouseDown struct {
	Pos    geom.Point
	Button Button
	Mods   Modifiers
}

type MouseUp struct {
	Pos    geom.Point
	Button Button
	Mods   Modifiers
}

type MouseMove struct {
	Pos  geom.Point
	Mods Modifiers
}

type DoubleClick struct {
	Pos  geom.Point
	Mods Modifiers
}

// CaptureLost tells the receiver that pointer capture was taken away.
type CaptureLost struct{}

type FocusGained struct{}

type FocusLost struct{}

// Composition carries IME composition text. Final marks the committed
// result string.
type Composition struct {
	Text  []uint16
	Final bool
}

type Copy struct{}

type Cut struct{}

type Paste struct{}

type Clear struct{}

type Undo struct{}

type SetText struct {
	Text []uint16
}

// Tick is the periodic animation/timer callback.
type Tick struct {
	Elapsed time.Duration
}

// Paint asks for a repaint of a popup while a modal loop is running.
type Paint struct {
	Window Popup
}

// CancelMode forces any modal session to end.
type CancelMode struct{}

func (Char) isEvent()        {}
func (KeyPress) isEvent()    {}
func (MouseDown) isEvent()   {}
func (MouseUp) isEvent()     {}
func (MouseMove) isEvent()   {}
func (DoubleClick) isEvent() {}
func (CaptureLost) isEvent() {}
func (FocusGained) isEvent() {}
func (FocusLost) isEvent()   {}
func (Composition) isEvent() {}
func (Copy) isEvent()        {}
func (Cut) isEvent()         {}
func (Paste) isEvent()       {}
func (Clear) isEvent()       {}
func (Undo) isEvent()        {}
func (SetText) isEvent()     {}
func (Tick) isEvent()        {}
func (Paint) isEvent()       {}
func (CancelMode) isEvent()  {}
