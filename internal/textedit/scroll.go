package textedit

import (
	"github.com/atomicstack/quelthalas/internal/geom"
	"github.com/atomicstack/quelthalas/internal/logging/events"
)

// scrollFraction sets the margin band scrollCaret recentres into: a third
// of the viewport width from the edge the caret left through.
const scrollFraction = 3

// PositionFromChar returns the client position of the leading edge of
// column index, accounting for horizontal scroll.
func (f *Field) PositionFromChar(index int) (geom.Point, error) {
	return f.positionFromChar(index)
}

// CharFromPosition returns the column nearest p.
func (f *Field) CharFromPosition(p geom.Point) (int, error) {
	return f.charFromPosition(p.X)
}

// ScrollCaret scrolls the viewport until the caret is visible.
func (f *Field) ScrollCaret() error {
	return f.scrollCaret()
}

// scrollX is the text x-coordinate shown at the left edge of the format
// rectangle. Offsets past the text count avgCharWidth each.
func (f *Field) scrollX() (int, error) {
	if f.xOffset == 0 {
		return 0, nil
	}
	a, err := f.analyse()
	if err != nil {
		return 0, err
	}
	n := f.buf.Len()
	if f.xOffset >= n {
		return a.Width() + f.avgCharWidth()*(f.xOffset-n), nil
	}
	return a.XAt(f.xOffset, false)
}

func (f *Field) positionFromChar(index int) (geom.Point, error) {
	a, err := f.analyse()
	if err != nil {
		return geom.Point{}, err
	}
	xoff, err := f.scrollX()
	if err != nil {
		return geom.Point{}, err
	}
	n := f.buf.Len()
	index = clamp(index, 0, n)
	x := 0
	switch {
	case index == 0:
	case index >= n:
		x = a.Width()
	default:
		if x, err = a.XAt(index, false); err != nil {
			return geom.Point{}, err
		}
	}
	return geom.Point{X: x - xoff + f.format.Left, Y: f.format.Top}, nil
}

func (f *Field) charFromPosition(x int) (int, error) {
	x -= f.format.Left
	n := f.buf.Len()
	if x == 0 {
		return min(f.xOffset, n), nil
	}
	a, err := f.analyse()
	if err != nil {
		return 0, err
	}
	xoff, err := f.scrollX()
	if err != nil {
		return 0, err
	}
	x += xoff
	if x <= 0 {
		return 0, nil
	}
	if x >= a.Width() {
		return n, nil
	}
	col, trailing, err := a.OffsetAt(x)
	if err != nil {
		return 0, err
	}
	return min(col+trailing, n), nil
}

func (f *Field) scrollCaret() error {
	p, err := f.positionFromChar(f.sel.End)
	if err != nil {
		return err
	}
	x := p.X
	width := f.format.Width()
	before := f.xOffset
	switch {
	case x < f.format.Left:
		goal := f.format.Left + width/scrollFraction
		for {
			f.xOffset--
			if p, err = f.positionFromChar(f.sel.End); err != nil {
				f.xOffset = before
				return err
			}
			if p.X >= goal || f.xOffset == 0 {
				break
			}
		}
	case x > f.format.Right:
		n := f.buf.Len()
		goal := f.format.Right - width/scrollFraction
		for {
			f.xOffset++
			if p, err = f.positionFromChar(f.sel.End); err != nil {
				f.xOffset = before
				return err
			}
			last, err := f.positionFromChar(n)
			if err != nil {
				f.xOffset = before
				return err
			}
			if p.X <= goal || last.X <= f.format.Right {
				break
			}
		}
	}
	if f.xOffset != before {
		f.host.Invalidate(f.format)
		events.Field.Scroll(f.opts.ID, f.xOffset)
	}
	return nil
}
