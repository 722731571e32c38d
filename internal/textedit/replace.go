package textedit

import "github.com/atomicstack/quelthalas/internal/logging/events"

// ReplaceSelection replaces the selected text with replacement and leaves
// the caret after it. With honorLimit the insertion is cut to MaxLength
// and, for fields without AutoHScroll, trimmed from its tail until the
// text fits the viewport. A failure leaves the field as it was.
func (f *Field) ReplaceSelection(canUndo bool, replacement []uint16, honorLimit bool) error {
	return f.replaceSelection(canUndo, replacement, honorLimit, true)
}

func (f *Field) replaceSelection(canUndo bool, replacement []uint16, honorLimit, notify bool) error {
	replacement = untilNUL(replacement)
	s, e := f.sel.Ordered()
	if s == e && len(replacement) == 0 {
		return nil
	}
	n := f.buf.Len()
	if honorLimit && f.opts.MaxLength > 0 {
		room := max(f.opts.MaxLength-(n-(e-s)), 0)
		if len(replacement) > room {
			replacement = cutUnits(replacement, room)
			events.Field.Reject(f.opts.ID, events.RejectMaxLength)
		}
	}
	if s == e && len(replacement) == 0 {
		return nil
	}

	snap := f.save()
	deleted := f.buf.Splice(s, e, replacement)
	f.analysis = nil
	inserted := len(replacement)

	trimmed := 0
	if honorLimit && !f.opts.AutoHScroll {
		for inserted > 0 {
			a, err := f.analyse()
			if err != nil {
				f.restore(snap)
				return err
			}
			if a.Width() <= f.format.Width() {
				break
			}
			cut := 1
			if inserted >= 2 && isLowSurrogate(f.buf.At(s+inserted-1)) && isHighSurrogate(f.buf.At(s+inserted-2)) {
				cut = 2
			}
			f.buf.Splice(s+inserted-cut, s+inserted, nil)
			f.analysis = nil
			inserted -= cut
			trimmed += cut
		}
	}
	if len(deleted) == 0 && inserted == 0 {
		f.restore(snap)
		return nil
	}

	if canUndo {
		f.undo.record(s, e, deleted, inserted)
		if len(deleted) > 0 {
			f.undo.Backward = f.sel.Start > f.sel.End
		}
	} else {
		f.undo.Clear()
	}

	caret := s + inserted
	if _, err := f.setSelection(At(caret), At(caret)); err != nil {
		f.restore(snap)
		return err
	}
	if err := f.scrollCaret(); err != nil {
		f.restore(snap)
		return err
	}
	rect, ok, err := f.textRectToEdge(s)
	if err != nil {
		f.restore(snap)
		return err
	}
	if ok {
		f.host.Invalidate(rect)
	}
	if err := f.updateCaret(); err != nil {
		f.restore(snap)
		return err
	}

	events.Field.Replace(f.opts.ID, s, e, inserted, trimmed)
	if notify && f.opts.OnChange != nil {
		f.opts.OnChange()
	}
	return nil
}

// Undo reverts the pending undo record and selects the restored text in
// the direction it was selected before the edit. The revert is itself
// recorded, so a second Undo redoes.
func (f *Field) Undo() error {
	if f.undo.Empty() {
		return nil
	}
	rec := f.undo.clone()
	snap := f.save()
	if _, err := f.setSelection(At(rec.Position), At(rec.Position+rec.InsertedCount)); err != nil {
		f.restore(snap)
		return err
	}
	f.undo.Clear()
	if err := f.replaceSelection(true, rec.Deleted, false, true); err != nil {
		f.restore(snap)
		return err
	}
	start, end := rec.Position, rec.Position+len(rec.Deleted)
	if rec.Backward {
		start, end = end, start
	}
	if _, err := f.SetSelection(At(start), At(end)); err != nil {
		return err
	}
	events.Field.Undo(f.opts.ID, rec.Position, len(rec.Deleted))
	return nil
}

// Clear deletes the selection.
func (f *Field) Clear() error {
	return f.ReplaceSelection(true, nil, true)
}

// cutUnits shortens units to at most n without splitting a surrogate pair.
func cutUnits(units []uint16, n int) []uint16 {
	if n <= 0 {
		return nil
	}
	if n >= len(units) {
		return units
	}
	if isHighSurrogate(units[n-1]) && isLowSurrogate(units[n]) {
		n--
	}
	return units[:n]
}
