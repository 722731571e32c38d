package menu

import (
	"fmt"

	"github.com/atomicstack/quelthalas/internal/geom"
	"github.com/atomicstack/quelthalas/internal/shaping"
)

// Metrics are the fixed sizes of menu chrome.
type Metrics struct {
	MinWidth          int
	PaddingX          int
	ArrowWidth        int // reserved for the submenu indicator
	ItemHeight        int
	DividerHeight     int
	Margin            int // popup border around the item list
	ScrollArrowHeight int
}

// DefaultMetrics suits a character-cell host.
func DefaultMetrics() Metrics {
	return Metrics{
		MinWidth:          10,
		PaddingX:          1,
		ArrowWidth:        2,
		ItemHeight:        1,
		DividerHeight:     1,
		Margin:            1,
		ScrollArrowHeight: 1,
	}
}

// CalcSize lays out m's items and returns the popup size. When the items
// do not fit in maxHeight the menu switches to scrolling mode: the popup is
// clamped to maxHeight and the list rectangle leaves room for the scroll
// zones. A non-positive maxHeight disables the limit.
func CalcSize(m *Menu, s shaping.Shaper, font shaping.Font, mt Metrics, maxHeight int) (int, int, error) {
	textW := 0
	for i := range m.Items {
		it := &m.Items[i]
		if it.Kind == KindDivider {
			continue
		}
		w, err := shaping.MeasureString(s, it.Text, font)
		if err != nil {
			return 0, 0, fmt.Errorf("measure %q: %w", it.Text, err)
		}
		w += 2 * mt.PaddingX
		if it.Kind == KindSubMenu {
			w += mt.ArrowWidth
		}
		textW = max(textW, w)
	}
	listW := max(mt.MinWidth, textW)

	y := 0
	for i := range m.Items {
		h := mt.ItemHeight
		if m.Items[i].Kind == KindDivider {
			h = mt.DividerHeight
		}
		m.Items[i].Rect = geom.XYWH(0, y, listW, h)
		y += h
	}
	listH := y

	w := listW + 2*mt.Margin
	h := listH + 2*mt.Margin
	m.ListRect = geom.XYWH(mt.Margin, mt.Margin, listW, listH)
	m.Scrolling = false
	m.ScrollPosition = 0
	m.maxScroll = 0
	if maxHeight > 0 && h > maxHeight {
		h = maxHeight
		top := mt.Margin + mt.ScrollArrowHeight
		visible := max(0, h-2*top)
		m.ListRect = geom.XYWH(mt.Margin, top, listW, visible)
		m.Scrolling = true
		m.maxScroll = max(0, listH-visible)
	}
	return w, h, nil
}

// scrollBy moves the list by delta and reports whether it moved.
func (m *Menu) scrollBy(delta int) bool {
	if !m.Scrolling {
		return false
	}
	pos := min(max(m.ScrollPosition+delta, 0), m.maxScroll)
	if pos == m.ScrollPosition {
		return false
	}
	m.ScrollPosition = pos
	return true
}

// ensureVisible scrolls so item i lies wholly inside the list rectangle.
func (m *Menu) ensureVisible(i int) bool {
	if !m.Scrolling || i < 0 || i >= len(m.Items) {
		return false
	}
	r := m.Items[i].Rect
	visible := m.ListRect.Height()
	pos := m.ScrollPosition
	if r.Top < pos {
		pos = r.Top
	}
	if r.Bottom > pos+visible {
		pos = r.Bottom - visible
	}
	return m.scrollBy(pos - m.ScrollPosition)
}
