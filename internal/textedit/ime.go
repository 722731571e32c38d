package textedit

import (
	"fmt"

	"github.com/atomicstack/quelthalas/internal/geom"
	"github.com/atomicstack/quelthalas/internal/host"
	"github.com/atomicstack/quelthalas/internal/logging/events"
)

// updateIME reports the composition window and font to the input method.
func (f *Field) updateIME() error {
	ime := f.host.IME()
	if ime == nil {
		return nil
	}
	if err := ime.SetCompositionFont(f.opts.Font); err != nil {
		return fmt.Errorf("set composition font: %w", err)
	}
	return f.updateCompositionWindow()
}

func (f *Field) updateCompositionWindow() error {
	ime := f.host.IME()
	if ime == nil {
		return nil
	}
	p, err := f.positionFromChar(f.sel.End)
	if err != nil {
		return err
	}
	area := f.format
	origin := f.host.ClientToScreen(area.Origin())
	area = area.Offset(origin.X-area.Left, origin.Y-area.Top)
	if err := ime.SetCompositionWindow(f.host.ClientToScreen(p), area); err != nil {
		return fmt.Errorf("set composition window: %w", err)
	}
	return nil
}

// Composing reports whether an IME composition is in progress.
func (f *Field) Composing() bool {
	return f.composing
}

// CompositionRange returns the columns held by the in-progress
// composition.
func (f *Field) CompositionRange() (int, int) {
	return f.compStart, f.compStart + f.compLen
}

// QueryCharPosition answers the input method's request for the screen
// rectangle of the i-th character of the composition.
func (f *Field) QueryCharPosition(i int) (geom.Rect, error) {
	start := f.sel.End
	if f.composing {
		start = f.compStart
	}
	p, err := f.positionFromChar(start + i)
	if err != nil {
		return geom.Rect{}, err
	}
	next, err := f.positionFromChar(start + i + 1)
	if err != nil {
		return geom.Rect{}, err
	}
	sp := f.host.ClientToScreen(p)
	return geom.XYWH(sp.X, sp.Y, max(next.X-p.X, 1), f.lineHeight()), nil
}

// onComposition replaces the previous composition text with the new one.
// Intermediate strings are not undoable; the committed result is.
func (f *Field) onComposition(ev host.Event) error {
	c := ev.(host.Composition)
	text := untilNUL(c.Text)

	if !f.composing {
		if !f.sel.Empty() {
			if err := f.Clear(); err != nil {
				return err
			}
		}
		f.composing = true
		f.compStart = f.sel.End
		f.compLen = 0
	}
	if f.sel.End < f.compStart {
		f.compStart = f.sel.End
	}

	if c.Final {
		if f.compLen > 0 {
			if _, err := f.setSelection(At(f.compStart), At(f.compStart+f.compLen)); err != nil {
				return err
			}
			if err := f.replaceSelection(false, nil, false, false); err != nil {
				return err
			}
		}
		if _, err := f.setSelection(At(f.compStart), At(f.compStart)); err != nil {
			return err
		}
		if err := f.ReplaceSelection(true, text, true); err != nil {
			return err
		}
		f.composing = false
		f.compStart = f.sel.End
		f.compLen = 0
		events.Field.Composition(f.opts.ID, len(text), true)
		return f.updateCompositionWindow()
	}

	if _, err := f.setSelection(At(f.compStart), At(f.compStart+f.compLen)); err != nil {
		return err
	}
	if err := f.replaceSelection(false, text, true, false); err != nil {
		return err
	}
	f.compLen = f.sel.End - f.compStart
	events.Field.Composition(f.opts.ID, len(text), false)
	return f.updateCompositionWindow()
}
