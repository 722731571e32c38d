package menu

import "github.com/atomicstack/quelthalas/internal/geom"

// HitKind classifies what lies under a point.
type HitKind int

const (
	HitNowhere HitKind = iota
	HitBorder
	HitItem
	HitScrollUp
	HitScrollDown
)

// Hit is the result of HitTest. Index is set for HitItem only.
type Hit struct {
	Kind  HitKind
	Index int
}

// HitTest classifies the screen point p against m's popup. Dividers and
// the frame around the list count as border.
func HitTest(m *Menu, p geom.Point) Hit {
	if m == nil || m.window == nil {
		return Hit{Kind: HitNowhere, Index: -1}
	}
	bounds := m.window.Bounds()
	if !bounds.Contains(p) {
		return Hit{Kind: HitNowhere, Index: -1}
	}
	c := p.Sub(bounds.Origin())
	if !m.ListRect.Contains(c) {
		if m.Scrolling && c.X >= m.ListRect.Left && c.X < m.ListRect.Right {
			if c.Y < m.ListRect.Top {
				return Hit{Kind: HitScrollUp, Index: -1}
			}
			if c.Y >= m.ListRect.Bottom {
				return Hit{Kind: HitScrollDown, Index: -1}
			}
		}
		return Hit{Kind: HitBorder, Index: -1}
	}
	for i := range m.Items {
		if !m.ItemRect(i).Contains(c) {
			continue
		}
		if m.Items[i].Kind == KindDivider {
			return Hit{Kind: HitBorder, Index: -1}
		}
		return Hit{Kind: HitItem, Index: i}
	}
	return Hit{Kind: HitBorder, Index: -1}
}

// menuFromPoint returns the shown menu under p, searching open submenus
// before their parents since they stack on top.
func menuFromPoint(m *Menu, p geom.Point) *Menu {
	if m == nil || m.window == nil {
		return nil
	}
	if sub := m.OpenSub(); sub != nil {
		if hit := menuFromPoint(sub, p); hit != nil {
			return hit
		}
	}
	if m.window.Bounds().Contains(p) {
		return m
	}
	return nil
}
