// Package textedit is the single-line text editing engine: a UTF-16
// buffer with a coalescing undo record, an anchor/caret selection, and the
// input field controller that turns host events into edits, caret moves
// and invalidations.
package textedit

import (
	"errors"
	"fmt"
	"reflect"
	"time"
	"unicode/utf16"

	"github.com/atomicstack/quelthalas/internal/anim"
	"github.com/atomicstack/quelthalas/internal/geom"
	"github.com/atomicstack/quelthalas/internal/host"
	"github.com/atomicstack/quelthalas/internal/shaping"
)

// Kind is the declared input class of a field.
type Kind int

const (
	InputText Kind = iota
	InputNumber
	InputPassword
)

func (k Kind) String() string {
	switch k {
	case InputNumber:
		return "number"
	case InputPassword:
		return "password"
	default:
		return "text"
	}
}

const (
	defaultFocusDuration = 100 * time.Millisecond
	defaultMask          = '*'
)

var errNoClipboard = errors.New("no clipboard available")

// Options configure a Field.
type Options struct {
	ID          string
	Kind        Kind
	Font        shaping.Font
	Bounds      geom.Rect
	PaddingX    int
	PaddingY    int
	MaxLength   int // code units, 0 for no limit
	AutoHScroll bool
	Placeholder string
	Mask        rune

	FocusDuration time.Duration
	Easing        anim.EasingFunc
	// Scheduler advances the focus ring. Without one the field advances
	// it from Tick events.
	Scheduler *anim.Scheduler

	OnChange func()
}

type handler func(host.Event) error

// Field is one single-line input.
type Field struct {
	host   host.FieldHost
	shaper shaping.Shaper
	opts   Options

	buf      *Buffer
	sel      Selection
	undo     UndoRecord
	bounds   geom.Rect
	format   geom.Rect
	xOffset  int // first visible code unit
	analysis shaping.Analysis

	focused     bool
	captured    bool
	regionX     int
	pendingHigh uint16

	composing bool
	compStart int
	compLen   int

	ring     *anim.Variable
	handlers map[reflect.Type]handler
}

// New creates an empty, unfocused field.
func New(h host.FieldHost, s shaping.Shaper, opts Options) *Field {
	if opts.FocusDuration == 0 {
		opts.FocusDuration = defaultFocusDuration
	}
	if opts.Easing == nil {
		opts.Easing = anim.CubicBezier(0.33, 0, 0.67, 1)
	}
	if opts.Kind == InputPassword && opts.Mask == 0 {
		opts.Mask = defaultMask
	}
	f := &Field{
		host:   h,
		shaper: s,
		opts:   opts,
		buf:    NewBuffer(nil),
		ring:   anim.NewVariable(0),
	}
	f.setBounds(opts.Bounds)
	f.registerHandlers()
	return f
}

// ID returns the identifier the field was created with.
func (f *Field) ID() string {
	return f.opts.ID
}

func (f *Field) Kind() Kind {
	return f.opts.Kind
}

// Text returns a copy of the buffer content.
func (f *Field) Text() []uint16 {
	return f.buf.Text()
}

// String returns the content as UTF-8.
func (f *Field) String() string {
	return f.buf.String()
}

func (f *Field) TextLength() int {
	return f.buf.Len()
}

func (f *Field) Selection() Selection {
	return f.sel
}

func (f *Field) Focused() bool {
	return f.focused
}

func (f *Field) Captured() bool {
	return f.captured
}

// ScrollOffset is the first visible code unit.
func (f *Field) ScrollOffset() int {
	return f.xOffset
}

// FormatRect is the text viewport inside the field.
func (f *Field) FormatRect() geom.Rect {
	return f.format
}

func (f *Field) Bounds() geom.Rect {
	return f.bounds
}

// CanUndo reports whether Undo has anything to revert.
func (f *Field) CanUndo() bool {
	return !f.undo.Empty()
}

// EmptyUndo drops the undo record.
func (f *Field) EmptyUndo() {
	f.undo.Clear()
}

// UndoRecord returns a copy of the pending undo record.
func (f *Field) UndoRecord() UndoRecord {
	return f.undo.clone()
}

// SetText replaces the whole content without recording undo or firing
// OnChange. Text after the first line break is dropped.
func (f *Field) SetText(text []uint16) error {
	text = untilLineBreak(text)
	snap := f.save()
	if _, err := f.setSelection(At(0), Unset); err != nil {
		f.restore(snap)
		return err
	}
	if err := f.replaceSelection(false, text, false, false); err != nil {
		f.restore(snap)
		return err
	}
	f.undo.Clear()
	f.xOffset = 0
	f.analysis = nil
	if _, err := f.setSelection(At(0), At(0)); err != nil {
		f.restore(snap)
		return err
	}
	if err := f.scrollCaret(); err != nil {
		f.restore(snap)
		return err
	}
	f.host.Invalidate(f.format)
	return f.updateCaret()
}

// SetString is SetText for UTF-8 input.
func (f *Field) SetString(s string) error {
	return f.SetText(utf16.Encode([]rune(s)))
}

// Resize moves the field and recomputes its format rectangle.
func (f *Field) Resize(bounds geom.Rect) error {
	f.setBounds(bounds)
	f.host.Invalidate(f.bounds)
	if err := f.scrollCaret(); err != nil {
		return err
	}
	return f.updateCaret()
}

func (f *Field) setBounds(bounds geom.Rect) {
	f.bounds = bounds
	format := geom.Rect{
		Left:   bounds.Left + f.opts.PaddingX,
		Top:    bounds.Top + f.opts.PaddingY,
		Right:  bounds.Right - f.opts.PaddingX,
		Bottom: bounds.Bottom - f.opts.PaddingY,
	}
	if format.Right < format.Left {
		format.Right = format.Left
	}
	if format.Bottom < format.Top+f.lineHeight() {
		format.Bottom = format.Top + f.lineHeight()
	}
	f.format = format
}

func (f *Field) lineHeight() int {
	if f.opts.Font.LineHeight > 0 {
		return f.opts.Font.LineHeight
	}
	return 1
}

func (f *Field) avgCharWidth() int {
	if f.opts.Font.AvgCharWidth > 0 {
		return f.opts.Font.AvgCharWidth
	}
	return 1
}

// analyse returns the cached shaping of the current text.
func (f *Field) analyse() (shaping.Analysis, error) {
	if f.analysis != nil {
		return f.analysis, nil
	}
	a, err := f.shaper.Analyse(f.buf.Text(), f.opts.Font, shaping.Options{
		Password: f.opts.Kind == InputPassword,
		Mask:     f.opts.Mask,
	})
	if err != nil {
		return nil, fmt.Errorf("analyse text: %w", err)
	}
	f.analysis = a
	return a, nil
}

type fieldState struct {
	buf      bufferState
	sel      Selection
	undo     UndoRecord
	xOffset  int
	analysis shaping.Analysis
}

func (f *Field) save() fieldState {
	return fieldState{
		buf:      f.buf.snapshot(),
		sel:      f.sel,
		undo:     f.undo.clone(),
		xOffset:  f.xOffset,
		analysis: f.analysis,
	}
}

func (f *Field) restore(s fieldState) {
	f.buf.restore(s.buf)
	f.sel = s.sel
	f.undo = s.undo
	f.xOffset = s.xOffset
	f.analysis = s.analysis
}

// updateCaret moves the host caret to the selection end.
func (f *Field) updateCaret() error {
	if !f.focused {
		return nil
	}
	p, err := f.positionFromChar(f.sel.End)
	if err != nil {
		return err
	}
	if c := f.host.Caret(); c != nil {
		c.SetPos(p)
	}
	if f.composing {
		return f.updateCompositionWindow()
	}
	return nil
}

func untilLineBreak(text []uint16) []uint16 {
	for i, u := range text {
		if u == 0 || u == '\r' || u == '\n' {
			return text[:i]
		}
	}
	return text
}

func isHighSurrogate(u uint16) bool {
	return u >= 0xD800 && u < 0xDC00
}

func isLowSurrogate(u uint16) bool {
	return u >= 0xDC00 && u < 0xE000
}
