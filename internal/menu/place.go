package menu

import "github.com/atomicstack/quelthalas/internal/geom"

// Place positions a w x h popup requested at (x, y) inside work. On each
// axis a popup that would overflow the far edge first tries the flipped
// side, x - w - xAnchor (xAnchor is the width of whatever it is attached
// to, usually the parent menu), then is pushed back inside the far edge
// and finally clamped to the near edge.
func Place(x, y, w, h, xAnchor, yAnchor int, work geom.Rect) geom.Point {
	return geom.Point{
		X: placeAxis(x, w, xAnchor, work.Left, work.Right),
		Y: placeAxis(y, h, yAnchor, work.Top, work.Bottom),
	}
}

func placeAxis(pos, size, anchor, lo, hi int) int {
	if pos+size > hi {
		if anchor != 0 && pos-size-anchor >= lo {
			pos = pos - size - anchor
		}
		if pos+size > hi {
			pos = hi - size
		}
	}
	if pos < lo {
		pos = lo
	}
	return pos
}
