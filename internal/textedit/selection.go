package textedit

import (
	"github.com/atomicstack/quelthalas/internal/geom"
	"github.com/atomicstack/quelthalas/internal/logging/events"
)

// Offset is an optional buffer position for SetSelection.
type Offset struct {
	n   int
	set bool
}

// At is a set offset.
func At(n int) Offset {
	return Offset{n: n, set: true}
}

// Unset leaves the endpoint to SetSelection's defaults.
var Unset = Offset{}

// Selection is an anchor/caret pair. Start may exceed End.
type Selection struct {
	Start int
	End   int
}

// Ordered returns the range low end first.
func (s Selection) Ordered() (int, int) {
	if s.Start > s.End {
		return s.End, s.Start
	}
	return s.Start, s.End
}

func (s Selection) Empty() bool {
	return s.Start == s.End
}

// Caret is the end the user is moving.
func (s Selection) Caret() int {
	return s.End
}

// resolve applies the Unset defaults and clamps to [0, n].
func (s Selection) resolve(start, end Offset, n int) Selection {
	var next Selection
	switch {
	case !start.set:
		next.Start = clamp(s.End, 0, n)
		next.End = next.Start
		if end.set {
			next.End = clamp(end.n, 0, n)
		}
	case !end.set:
		next.Start = clamp(start.n, 0, n)
		next.End = n
	default:
		next.Start = clamp(start.n, 0, n)
		next.End = clamp(end.n, 0, n)
	}
	return next
}

// SetSelection moves the selection and keeps the caret visible. An unset
// start anchors at the current caret; a set start with an unset end
// extends to the end of the text. It reports false, and touches nothing,
// when the pair is unchanged.
func (f *Field) SetSelection(start, end Offset) (bool, error) {
	changed, err := f.setSelection(start, end)
	if err != nil || !changed {
		return changed, err
	}
	if err := f.scrollCaret(); err != nil {
		return true, err
	}
	return true, f.updateCaret()
}

func (f *Field) setSelection(start, end Offset) (bool, error) {
	old := f.sel
	next := old.resolve(start, end, f.buf.Len())
	if next == old {
		return false, nil
	}

	// Sort the four boundaries so only the symmetric difference is
	// repainted. Afterwards ns is the minimum and pe the maximum.
	ns, ne, ps, pe := next.Start, next.End, old.Start, old.End
	ne, pe = order(ne, pe)
	ns, ps = order(ns, ps)
	ps, pe = order(ps, pe)
	ns, ne = order(ns, ne)

	var ranges [][2]int
	switch {
	case ne == ps:
		ranges = append(ranges, [2]int{ns, pe})
	case ps > ne:
		ranges = append(ranges, [2]int{ns, ne}, [2]int{ps, pe})
	default:
		ranges = append(ranges, [2]int{ns, ps}, [2]int{ne, pe})
	}

	rects := make([]geom.Rect, 0, len(ranges))
	for _, r := range ranges {
		rect, ok, err := f.textRect(r[0], r[1])
		if err != nil {
			return false, err
		}
		if ok {
			rects = append(rects, rect)
		}
	}

	f.sel = next
	for _, r := range rects {
		f.host.Invalidate(r)
	}
	events.Field.Selection(f.opts.ID, next.Start, next.End)
	return true, nil
}

// invalidateText repaints the columns [start, end).
func (f *Field) invalidateText(start, end int) error {
	rect, ok, err := f.textRect(start, end)
	if err != nil || !ok {
		return err
	}
	f.host.Invalidate(rect)
	return nil
}

// textRect maps a column range to its on-screen rectangle clipped to the
// format rectangle.
func (f *Field) textRect(start, end int) (geom.Rect, bool, error) {
	if start == end {
		return geom.Rect{}, false, nil
	}
	start, end = order(start, end)
	x1 := f.format.Left
	if start != 0 {
		p, err := f.positionFromChar(start)
		if err != nil {
			return geom.Rect{}, false, err
		}
		x1 = p.X
	}
	p, err := f.positionFromChar(end)
	if err != nil {
		return geom.Rect{}, false, err
	}
	x2 := p.X
	x1, x2 = order(x1, x2)
	line := geom.Rect{Left: x1, Top: f.format.Top, Right: x2, Bottom: f.format.Top + f.lineHeight()}
	r, ok := line.Intersect(f.format)
	return r, ok, nil
}

// textRectToEdge maps everything from column start to the right edge.
func (f *Field) textRectToEdge(start int) (geom.Rect, bool, error) {
	x := f.format.Left
	if start != 0 {
		p, err := f.positionFromChar(start)
		if err != nil {
			return geom.Rect{}, false, err
		}
		x = p.X
	}
	line := geom.Rect{Left: x, Top: f.format.Top, Right: f.format.Right, Bottom: f.format.Top + f.lineHeight()}
	r, ok := line.Intersect(f.format)
	return r, ok, nil
}

func order(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
