// Package shaping defines the text shaping service consumed by the editing
// engine and the menu layout: logical offsets to visual x-coordinates and
// back, rendered widths, and per-code-unit logical attributes.
package shaping

import (
	"errors"
	"unicode/utf16"
)

// ErrExhausted reports that the shaping backend ran out of resources.
var ErrExhausted = errors.New("shaping resources exhausted")

// Error wraps a failure raised by a shaping call.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "shaping: " + e.Op
	}
	return "shaping: " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Font carries the metrics a shaper and the IME need for one field.
type Font struct {
	Family       string
	Size         int
	LineHeight   int
	AvgCharWidth int
}

// Options tune a single analysis.
type Options struct {
	Password bool
	Mask     rune
}

// LogAttr flags one code unit of the analysed text.
type LogAttr struct {
	CharStop   bool // a caret may rest before this unit
	WordStop   bool // a word starts at this unit
	WhiteSpace bool
}

// Analysis is the shaped form of one string. It is immutable and becomes
// stale as soon as the text it was built from changes.
type Analysis interface {
	// Len is the number of UTF-16 code units analysed.
	Len() int
	// Width is the rendered width of the whole string.
	Width() int
	// XAt returns the x-coordinate of the leading (or trailing) edge of the
	// cluster holding col.
	XAt(col int, trailing bool) (int, error)
	// OffsetAt maps x to the cluster under it. trailing is the number of
	// code units to add when x falls on the cluster's trailing half.
	OffsetAt(x int) (col, trailing int, err error)
	// LogAttrs returns one entry per code unit.
	LogAttrs() []LogAttr
}

// Shaper produces analyses.
type Shaper interface {
	Analyse(text []uint16, font Font, opts Options) (Analysis, error)
}

// MeasureString returns the rendered width of s.
func MeasureString(s Shaper, text string, font Font) (int, error) {
	a, err := s.Analyse(utf16.Encode([]rune(text)), font, Options{})
	if err != nil {
		return 0, err
	}
	return a.Width(), nil
}

var errOutOfRange = errors.New("offset out of range")
