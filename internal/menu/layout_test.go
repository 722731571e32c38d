package menu

import (
	"testing"

	"github.com/atomicstack/quelthalas/internal/geom"
	"github.com/atomicstack/quelthalas/internal/shaping"
)

func TestCalcSizeReservesArrowForSubmenusOnly(t *testing.T) {
	mt := DefaultMetrics()
	m := Build([]Info{Leaf("Preferences", 1), Divider(), Leaf("Quit", 2)})
	w, h, err := CalcSize(m, shaping.NewCells(), shaping.Font{}, mt, 0)
	if err != nil {
		t.Fatalf("calc size: %v", err)
	}
	// "Preferences" is 11 cells plus padding on both sides.
	if w != 13+2*mt.Margin || h != 3+2*mt.Margin {
		t.Fatalf("unexpected size %dx%d", w, h)
	}

	m = Build([]Info{Leaf("Preferences", 1), Sub("Preferences", Leaf("x", 3))})
	w, _, _ = CalcSize(m, shaping.NewCells(), shaping.Font{}, mt, 0)
	if w != 13+mt.ArrowWidth+2*mt.Margin {
		t.Fatalf("expected arrow width reserved, got %d", w)
	}
}

func TestCalcSizeHonoursMinimumWidthAndStacksItems(t *testing.T) {
	mt := DefaultMetrics()
	m := Build([]Info{Leaf("a", 1), Divider(), Leaf("b", 2)})
	w, _, err := CalcSize(m, shaping.NewCells(), shaping.Font{}, mt, 0)
	if err != nil {
		t.Fatalf("calc size: %v", err)
	}
	if w != mt.MinWidth+2*mt.Margin {
		t.Fatalf("expected minimum width, got %d", w)
	}
	if m.Items[2].Rect != geom.XYWH(0, 2, mt.MinWidth, 1) {
		t.Fatalf("unexpected item rect %+v", m.Items[2].Rect)
	}
	if m.Scrolling {
		t.Fatalf("short menu should not scroll")
	}
}

func TestCalcSizeSwitchesToScrolling(t *testing.T) {
	mt := DefaultMetrics()
	var infos []Info
	for i := 0; i < 20; i++ {
		infos = append(infos, Leaf("item", uint32(i)))
	}
	m := Build(infos)
	_, h, err := CalcSize(m, shaping.NewCells(), shaping.Font{}, mt, 10)
	if err != nil {
		t.Fatalf("calc size: %v", err)
	}
	if !m.Scrolling || h != 10 {
		t.Fatalf("expected scrolling menu of height 10, got %v %d", m.Scrolling, h)
	}
	top := mt.Margin + mt.ScrollArrowHeight
	if m.ListRect.Top != top || m.ListRect.Bottom != h-top {
		t.Fatalf("expected list clamped between scroll zones, got %+v", m.ListRect)
	}
	if m.CanScrollUp() || !m.CanScrollDown() {
		t.Fatalf("expected to start scrolled to the top")
	}
}

func TestEnsureVisibleScrollsBothWays(t *testing.T) {
	var infos []Info
	for i := 0; i < 10; i++ {
		infos = append(infos, Leaf("x", uint32(i)))
	}
	m := Build(infos)
	CalcSize(m, shaping.NewCells(), shaping.Font{}, DefaultMetrics(), 7)
	if !m.ensureVisible(9) || m.ScrollPosition != 7 {
		t.Fatalf("expected scroll to 7, got %d", m.ScrollPosition)
	}
	if !m.ensureVisible(2) || m.ScrollPosition != 2 {
		t.Fatalf("expected scroll to 2, got %d", m.ScrollPosition)
	}
	if m.ensureVisible(3) {
		t.Fatalf("visible item must not scroll")
	}
}
