package textedit

import (
	"fmt"

	"github.com/atomicstack/quelthalas/internal/logging/events"
)

// Copy writes the selection to the clipboard as NUL-terminated UTF-16.
// Password fields never copy.
func (f *Field) Copy() error {
	if f.opts.Kind == InputPassword {
		events.Field.Reject(f.opts.ID, events.RejectPassword)
		return nil
	}
	s, e := f.sel.Ordered()
	if s == e {
		return nil
	}
	cb := f.host.Clipboard()
	if cb == nil {
		return errNoClipboard
	}
	units := append(f.buf.Slice(s, e), 0)
	if err := cb.WriteText(units); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	events.Field.Clipboard(f.opts.ID, "copy", e-s)
	return nil
}

// Cut copies the selection and deletes it.
func (f *Field) Cut() error {
	if f.opts.Kind == InputPassword {
		events.Field.Reject(f.opts.ID, events.RejectPassword)
		return nil
	}
	if f.sel.Empty() {
		return nil
	}
	if err := f.Copy(); err != nil {
		return err
	}
	return f.Clear()
}

// Paste inserts clipboard text up to its first line break. Number fields
// refuse text holding anything but digits.
func (f *Field) Paste() error {
	cb := f.host.Clipboard()
	if cb == nil {
		return errNoClipboard
	}
	units, err := cb.ReadText()
	if err != nil {
		return fmt.Errorf("read clipboard: %w", err)
	}
	units = untilLineBreak(units)
	if f.opts.Kind == InputNumber {
		for _, u := range units {
			if u < '0' || u > '9' {
				events.Field.Reject(f.opts.ID, events.RejectNonDigit)
				return nil
			}
		}
	}
	events.Field.Clipboard(f.opts.ID, "paste", len(units))
	return f.ReplaceSelection(true, units, true)
}
