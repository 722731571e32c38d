package textedit

import (
	"strings"
	"unicode/utf16"

	"github.com/atomicstack/quelthalas/internal/geom"
)

// Run is a stretch of visible text sharing one highlight state. X is in
// client coordinates.
type Run struct {
	Text     string
	X        int
	Width    int
	Selected bool
}

// PaintInfo is what the host needs to draw a field.
type PaintInfo struct {
	Bounds       geom.Rect
	FormatRect   geom.Rect
	Runs         []Run
	VisibleStart int
	VisibleEnd   int
	Selection    geom.Rect // empty unless focused with a selection
	Caret        geom.Point
	Focused      bool
	FocusRing    float64
	Placeholder  string // set only while the text is empty
	Kind         Kind
}

// Paint lays out the visible part of the field.
func (f *Field) Paint() (PaintInfo, error) {
	info := PaintInfo{
		Bounds:       f.bounds,
		FormatRect:   f.format,
		Focused:      f.focused,
		FocusRing:    f.ring.Value(),
		Kind:         f.opts.Kind,
		VisibleStart: f.xOffset,
		VisibleEnd:   f.xOffset,
	}
	n := f.buf.Len()
	if n == 0 {
		info.Placeholder = f.opts.Placeholder
	}
	caret, err := f.positionFromChar(f.sel.End)
	if err != nil {
		return info, err
	}
	info.Caret = caret

	s, e := f.sel.Ordered()
	if f.focused && s != e {
		rect, ok, err := f.textRect(s, e)
		if err != nil {
			return info, err
		}
		if ok {
			info.Selection = rect
		}
	}
	if n == 0 {
		return info, nil
	}

	attrs, err := f.logAttrs()
	if err != nil {
		return info, err
	}
	start := min(f.xOffset, n)
	for start < n && !attrs[start].CharStop {
		start++
	}
	info.VisibleStart = start
	info.VisibleEnd = start

	var text strings.Builder
	var cur *Run
	for i := start; i < n; {
		j := i + 1
		for j < n && !attrs[j].CharStop {
			j++
		}
		x1, err := f.positionFromChar(i)
		if err != nil {
			return info, err
		}
		x2, err := f.positionFromChar(j)
		if err != nil {
			return info, err
		}
		if x2.X > f.format.Right {
			break
		}
		selected := f.focused && i >= s && i < e
		if cur == nil || cur.Selected != selected {
			if cur != nil {
				cur.Text = text.String()
				info.Runs = append(info.Runs, *cur)
				text.Reset()
			}
			cur = &Run{X: x1.X, Selected: selected}
		}
		if f.opts.Kind == InputPassword {
			text.WriteRune(f.opts.Mask)
		} else {
			text.WriteString(string(utf16.Decode(f.buf.units[i:j])))
		}
		cur.Width += x2.X - x1.X
		info.VisibleEnd = j
		i = j
	}
	if cur != nil {
		cur.Text = text.String()
		info.Runs = append(info.Runs, *cur)
	}
	return info, nil
}
