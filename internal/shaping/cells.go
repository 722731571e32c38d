package shaping

import (
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cells shapes text onto a fixed-pitch grid: one unit is one terminal cell.
// Clusters come from uniseg, cell widths from go-runewidth.
type Cells struct {
	// DefaultMask is drawn for every cluster of a password analysis when
	// Options.Mask is zero.
	DefaultMask rune
}

// NewCells returns a cell shaper masking passwords with '*'.
func NewCells() *Cells {
	return &Cells{DefaultMask: '*'}
}

type cluster struct {
	start, end int // code units
	x, width   int
}

type cellAnalysis struct {
	n        int
	width    int
	clusters []cluster
	owner    []int // code unit -> cluster index
	attrs    []LogAttr
}

// Analyse implements Shaper.
func (c *Cells) Analyse(text []uint16, font Font, opts Options) (Analysis, error) {
	s, unitAt := decode(text)
	n := len(text)
	a := &cellAnalysis{
		n:     n,
		owner: make([]int, n),
		attrs: make([]LogAttr, n),
	}
	mask := opts.Mask
	if mask == 0 {
		mask = c.DefaultMask
	}
	if mask == 0 {
		mask = '*'
	}
	maskWidth := runewidth.RuneWidth(mask)

	x := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		from, to := g.Positions()
		cl := cluster{start: unitAt[from], end: unitAt[to], x: x}
		if opts.Password {
			cl.width = maskWidth
		} else {
			cl.width = runewidth.StringWidth(g.Str())
		}
		idx := len(a.clusters)
		for u := cl.start; u < cl.end; u++ {
			a.owner[u] = idx
		}
		if cl.start < n {
			a.attrs[cl.start].CharStop = true
		}
		a.clusters = append(a.clusters, cl)
		x += cl.width
	}
	a.width = x

	if opts.Password {
		if n > 0 {
			a.attrs[0].WordStop = true
		}
		return a, nil
	}
	for i, r := range s {
		if unicode.IsSpace(r) {
			a.attrs[unitAt[i]].WhiteSpace = true
		}
	}
	markWords(s, unitAt, a.attrs)
	return a, nil
}

// decode converts UTF-16 to UTF-8 and returns, for every rune-start byte
// offset (plus the end offset), the code unit it came from.
func decode(text []uint16) (string, []int) {
	var b strings.Builder
	b.Grow(len(text))
	unitAt := make([]int, 0, len(text)*3+1)
	for i := 0; i < len(text); {
		r := rune(text[i])
		size := 1
		switch {
		case utf16.IsSurrogate(r) && i+1 < len(text):
			if dec := utf16.DecodeRune(r, rune(text[i+1])); dec != utf8.RuneError {
				r = dec
				size = 2
			} else {
				r = utf8.RuneError
			}
		case utf16.IsSurrogate(r):
			r = utf8.RuneError
		}
		n := utf8.RuneLen(r)
		for k := 0; k < n; k++ {
			unitAt = append(unitAt, i)
		}
		b.WriteRune(r)
		i += size
	}
	unitAt = append(unitAt, len(text))
	return b.String(), unitAt
}

func markWords(s string, unitAt []int, attrs []LogAttr) {
	state := -1
	offset := 0
	rest := s
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		r, _ := utf8.DecodeRuneInString(word)
		if !unicode.IsSpace(r) {
			attrs[unitAt[offset]].WordStop = true
		}
		offset += len(word)
	}
}

func (a *cellAnalysis) Len() int {
	return a.n
}

func (a *cellAnalysis) Width() int {
	return a.width
}

func (a *cellAnalysis) XAt(col int, trailing bool) (int, error) {
	if col < 0 {
		return 0, &Error{Op: "x at column", Err: errOutOfRange}
	}
	if col >= a.n {
		return a.width, nil
	}
	cl := a.clusters[a.owner[col]]
	if trailing {
		return cl.x + cl.width, nil
	}
	return cl.x, nil
}

func (a *cellAnalysis) OffsetAt(x int) (int, int, error) {
	if x < 0 || len(a.clusters) == 0 {
		return 0, 0, nil
	}
	if x >= a.width {
		return a.n, 0, nil
	}
	for _, cl := range a.clusters {
		if x >= cl.x+cl.width {
			continue
		}
		if 2*(x-cl.x) >= cl.width {
			return cl.start, cl.end - cl.start, nil
		}
		return cl.start, 0, nil
	}
	return a.n, 0, nil
}

func (a *cellAnalysis) LogAttrs() []LogAttr {
	return a.attrs
}
