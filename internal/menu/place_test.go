package menu

import (
	"testing"

	"github.com/atomicstack/quelthalas/internal/geom"
)

func TestPlaceClampsToRightEdge(t *testing.T) {
	work := geom.Rect{Left: 0, Top: 0, Right: 80, Bottom: 24}
	got := Place(70, 2, 30, 5, 0, 0, work)
	if got.X != work.Right-30 || got.Y != 2 {
		t.Fatalf("expected x clamped to %d, got %+v", work.Right-30, got)
	}
}

func TestPlaceClampsWideMenuToLeftEdge(t *testing.T) {
	work := geom.Rect{Left: 4, Top: 0, Right: 80, Bottom: 24}
	got := Place(70, 2, 100, 5, 0, 0, work)
	if got.X != work.Left {
		t.Fatalf("expected x clamped to left edge, got %+v", got)
	}
}

func TestPlaceFlipsSubmenuToParentsLeft(t *testing.T) {
	work := geom.XYWH(0, 0, 80, 24)
	got := Place(70, 3, 20, 5, 12, 0, work)
	if got.X != 70-20-12 {
		t.Fatalf("expected flip to %d, got %+v", 70-20-12, got)
	}
	// No room on the left either: fall back to the right edge clamp.
	got = Place(25, 3, 60, 5, 12, 0, work)
	if got.X != 20 {
		t.Fatalf("expected clamp to 20, got %+v", got)
	}
}

func TestPlaceClampsBottom(t *testing.T) {
	work := geom.XYWH(0, 0, 80, 24)
	got := Place(0, 22, 10, 6, 0, 0, work)
	if got.Y != 18 {
		t.Fatalf("expected y 18, got %+v", got)
	}
}
