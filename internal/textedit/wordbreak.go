package textedit

import "github.com/atomicstack/quelthalas/internal/shaping"

// logAttrs returns the per-unit attribute table of the current text. It
// lives on the cached analysis, so any text change rebuilds it.
func (f *Field) logAttrs() ([]shaping.LogAttr, error) {
	a, err := f.analyse()
	if err != nil {
		return nil, err
	}
	return a.LogAttrs(), nil
}

// prevCharStop is the caret position one grapheme before pos.
func (f *Field) prevCharStop(pos int) (int, error) {
	if pos <= 0 {
		return 0, nil
	}
	attrs, err := f.logAttrs()
	if err != nil {
		return 0, err
	}
	i := min(pos, len(attrs)) - 1
	for i > 0 && !attrs[i].CharStop {
		i--
	}
	return max(i, 0), nil
}

// nextCharStop is the caret position one grapheme after pos.
func (f *Field) nextCharStop(pos int) (int, error) {
	n := f.buf.Len()
	if pos >= n {
		return n, nil
	}
	attrs, err := f.logAttrs()
	if err != nil {
		return 0, err
	}
	i := pos + 1
	for i < len(attrs) && !attrs[i].CharStop {
		i++
	}
	return min(i, n), nil
}

// wordLeft is the start of the word before pos.
func (f *Field) wordLeft(pos int) (int, error) {
	if pos <= 0 {
		return 0, nil
	}
	attrs, err := f.logAttrs()
	if err != nil {
		return 0, err
	}
	i := min(pos, len(attrs)) - 1
	for i > 0 && !attrs[i].WordStop {
		i--
	}
	return max(i, 0), nil
}

// wordRight is the start of the word after pos, or the end of the text.
func (f *Field) wordRight(pos int) (int, error) {
	n := f.buf.Len()
	if pos >= n {
		return n, nil
	}
	attrs, err := f.logAttrs()
	if err != nil {
		return 0, err
	}
	i := pos + 1
	for i < len(attrs) && !attrs[i].WordStop {
		i++
	}
	return min(i, n), nil
}

// wordBounds returns the word, or whitespace run, holding pos.
func (f *Field) wordBounds(pos int) (int, int, error) {
	n := f.buf.Len()
	if n == 0 {
		return 0, 0, nil
	}
	attrs, err := f.logAttrs()
	if err != nil {
		return 0, 0, err
	}
	idx := clamp(pos, 0, len(attrs)-1)
	start, end := idx, idx+1
	if attrs[idx].WhiteSpace {
		for start > 0 && attrs[start-1].WhiteSpace {
			start--
		}
		for end < len(attrs) && attrs[end].WhiteSpace {
			end++
		}
		return start, end, nil
	}
	for start > 0 && !attrs[start].WordStop && !attrs[start-1].WhiteSpace {
		start--
	}
	for end < len(attrs) && !attrs[end].WordStop && !attrs[end].WhiteSpace {
		end++
	}
	return start, end, nil
}
