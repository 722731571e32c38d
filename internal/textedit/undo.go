package textedit

// UndoRecord is the single coalesced edit that Undo reverts: the
// InsertedCount units at Position replaced the Deleted text. Backward
// records that the replaced selection had its caret at the low end.
type UndoRecord struct {
	Position      int
	InsertedCount int
	Deleted       []uint16
	Backward      bool
}

// Empty reports whether there is nothing to undo.
func (u *UndoRecord) Empty() bool {
	return u.InsertedCount == 0 && len(u.Deleted) == 0
}

// Clear forgets the record.
func (u *UndoRecord) Clear() {
	u.Position = 0
	u.InsertedCount = 0
	u.Deleted = nil
	u.Backward = false
}

func (u *UndoRecord) clone() UndoRecord {
	return UndoRecord{
		Position:      u.Position,
		InsertedCount: u.InsertedCount,
		Deleted:       append([]uint16(nil), u.Deleted...),
		Backward:      u.Backward,
	}
}

// record folds an edit at [s, e) that removed deleted and inserted
// inserted units into the record.
func (u *UndoRecord) record(s, e int, deleted []uint16, inserted int) {
	if len(deleted) > 0 {
		pureDeletion := u.InsertedCount == 0 && len(u.Deleted) > 0
		switch {
		case pureDeletion && s == u.Position:
			// forward delete: the removed text follows what was saved
			u.Deleted = append(u.Deleted, deleted...)
		case pureDeletion && e == u.Position:
			// backspace: the removed text precedes it
			u.Deleted = append(append([]uint16(nil), deleted...), u.Deleted...)
			u.Position = s
		default:
			u.Deleted = append([]uint16(nil), deleted...)
			u.Position = s
		}
		u.InsertedCount = 0
	}
	if inserted > 0 {
		if s == u.Position || (u.InsertedCount > 0 && s == u.Position+u.InsertedCount) {
			u.InsertedCount += inserted
			return
		}
		u.Position = s
		u.InsertedCount = inserted
		u.Deleted = nil
		u.Backward = false
	}
}
