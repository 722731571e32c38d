package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/quelthalas/internal/geom"
	"github.com/atomicstack/quelthalas/internal/menu"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/rivo/uniseg"
)

const (
	appTitle   = "quelthalas"
	footerHelp = "tab next field · F2/right-click edit menu · esc quit"
)

type cellStyle int

const (
	cellBase cellStyle = iota
	cellStroke
	cellPlaceholder
	cellSelection
	cellRaw // already styled
)

// cell is one terminal column of a rendered row. Wide clusters leave an
// empty continuation cell after them.
type cell struct {
	text  string
	style cellStyle
}

// View implements tea.Model.
func (m *Model) View() string {
	m.dirty = false
	styles := m.theme.Styles
	lines := make([]string, 0, m.height)
	lines = append(lines, styles.Header.Render(appTitle), "")
	for i, ff := range m.fields {
		for len(lines) < ff.origin.Y {
			lines = append(lines, "")
		}
		label := fmt.Sprintf("%-*s", labelWidth, fitWidth(ff.label, labelWidth-1))
		labelStyle := styles.FieldLabel
		if i == m.focus {
			labelStyle = styles.Header
		}
		lines = append(lines, labelStyle.Render(label)+m.renderField(ff))
	}
	lines = append(lines, "")
	if m.errMsg != "" {
		lines = append(lines, styles.Error.Render(m.errMsg))
	} else if m.status != "" {
		lines = append(lines, styles.Footer.Render(m.status))
	}
	lines = append(lines, styles.Footer.Render(fitWidth(footerHelp, max(m.width, 1))))

	if m.session != nil {
		for _, mn := range m.session.Menus() {
			lines = overlay(lines, mn.Window().Bounds(), m.renderMenu(mn))
		}
	}
	return strings.Join(lines, "\n")
}

// renderField draws the field box: the stroke brackets around the format
// rectangle, the visible runs, the placeholder and the caret.
func (m *Model) renderField(ff *formField) string {
	styles := m.theme.Styles
	info, err := ff.field.Paint()
	if err != nil {
		return styles.Error.Render(err.Error())
	}
	w := info.Bounds.Width()
	if w <= 0 {
		return ""
	}
	cells := make([]cell, w)
	for i := range cells {
		cells[i] = cell{text: " "}
	}
	cells[0] = cell{text: "[", style: cellStroke}
	cells[w-1] = cell{text: "]", style: cellStroke}

	fr := info.FormatRect
	if info.Placeholder != "" && len(info.Runs) == 0 {
		text := fitWidth(info.Placeholder, max(fr.Width(), 0))
		putText(cells, fr.Left, fr.Right, text, cellPlaceholder)
	}
	for _, run := range info.Runs {
		st := cellBase
		if run.Selected {
			st = cellSelection
		}
		putText(cells, run.X, min(run.X+run.Width, fr.Right), run.Text, st)
	}

	c := m.caret
	if c.owner == ff && c.visible && info.Focused {
		x := info.Caret.X
		if x >= fr.Left && x < fr.Right && x < w {
			under := cells[x].text
			if under == "" {
				under = " "
			}
			c.cursor.SetChar(under)
			cells[x] = cell{text: c.cursor.View(), style: cellRaw}
		}
	}
	palette := map[cellStyle]lipgloss.Style{
		cellBase:        *styles.Field,
		cellStroke:      styles.FieldBorder.Foreground(m.theme.FocusStroke(info.FocusRing)),
		cellPlaceholder: *styles.FieldPlaceholder,
		cellSelection:   *styles.FieldSelection,
	}
	return joinCells(cells, palette)
}

// putText writes text into cells [left, right), one grapheme cluster at a
// time.
func putText(cells []cell, left, right int, text string, st cellStyle) {
	x := left
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		cw := max(uniseg.StringWidth(cluster), 1)
		if x+cw > right || x+cw > len(cells) {
			return
		}
		if x >= 0 {
			cells[x] = cell{text: cluster, style: st}
			for k := 1; k < cw; k++ {
				cells[x+k] = cell{text: "", style: st}
			}
		}
		x += cw
	}
}

func joinCells(cells []cell, palette map[cellStyle]lipgloss.Style) string {
	var b strings.Builder
	var run strings.Builder
	cur := cellBase
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if cur == cellRaw {
			b.WriteString(run.String())
		} else {
			b.WriteString(palette[cur].Render(run.String()))
		}
		run.Reset()
	}
	for i, c := range cells {
		if i == 0 || c.style != cur || c.style == cellRaw {
			flush()
			cur = c.style
		}
		run.WriteString(c.text)
	}
	flush()
	return b.String()
}

// renderMenu draws one popup: a frame, optional scroll arrows, and the
// visible part of the item list.
func (m *Model) renderMenu(mn *menu.Menu) []string {
	styles := m.theme.Styles
	b := mn.Window().Bounds()
	w, h := b.Width(), b.Height()
	if w < 2 || h < 2 {
		return nil
	}
	frame := *styles.Menu
	inner := w - 2
	rows := make([]string, h)
	rows[0] = frame.Render("┌" + strings.Repeat("─", inner) + "┐")
	rows[h-1] = frame.Render("└" + strings.Repeat("─", inner) + "┘")
	for y := 1; y < h-1; y++ {
		rows[y] = frame.Render("│" + strings.Repeat(" ", inner) + "│")
	}

	lr := mn.ListRect
	if mn.Scrolling {
		arrow := func(y int, glyph string, on bool) {
			if y <= 0 || y >= h-1 {
				return
			}
			if !on {
				glyph = " "
			}
			rows[y] = frame.Render("│" + center(glyph, inner) + "│")
		}
		arrow(lr.Top-1, "▲", mn.CanScrollUp())
		arrow(lr.Bottom, "▼", mn.CanScrollDown())
	}

	metrics := m.theme.MenuMetrics()
	for i := range mn.Items {
		y := mn.ItemRect(i).Top
		if y >= lr.Top && y < lr.Bottom {
			rows[y] = m.renderMenuItem(&mn.Items[i], i == mn.FocusedIndex, inner, metrics)
		}
	}
	return rows
}

func (m *Model) renderMenuItem(it *menu.Item, focused bool, inner int, mt menu.Metrics) string {
	styles := m.theme.Styles
	frame := *styles.Menu
	if it.Kind == menu.KindDivider {
		return frame.Render("├" + strings.Repeat("─", inner) + "┤")
	}
	st := *styles.MenuItem
	if it.Disabled {
		st = *styles.MenuItemDisabled
	}
	if hover := it.Hover(); hover > 0 {
		st = st.Background(m.theme.MenuHover(hover))
	}
	if focused {
		st = st.Bold(true)
	}
	arrow := ""
	if it.Kind == menu.KindSubMenu {
		arrow = strings.Repeat(" ", max(mt.ArrowWidth-1, 0)) + "▸"
	}
	avail := max(inner-2*mt.PaddingX-ansi.StringWidth(arrow), 0)
	text := fitWidth(it.Text, avail)
	pad := strings.Repeat(" ", mt.PaddingX)
	gap := strings.Repeat(" ", max(avail-ansi.StringWidth(text), 0))
	content := pad + text + gap + arrow + pad
	return frame.Render("│") + st.Render(content) + frame.Render("│")
}

// fitWidth cuts s to width cells with a trailing ellipsis, leaving text
// that already fits untouched.
func fitWidth(s string, width int) string {
	if ansi.StringWidth(s) <= width {
		return s
	}
	return truncate.StringWithTail(s, uint(max(width, 0)), "…")
}

func center(s string, width int) string {
	sw := ansi.StringWidth(s)
	if sw >= width {
		return s
	}
	left := (width - sw) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-sw-left)
}

// overlay draws rows over lines with the top-left corner at bounds' origin.
func overlay(lines []string, bounds geom.Rect, rows []string) []string {
	for len(lines) < bounds.Top+len(rows) {
		lines = append(lines, "")
	}
	x := bounds.Left
	for i, row := range rows {
		y := bounds.Top + i
		if y < 0 {
			continue
		}
		line := lines[y]
		if lw := ansi.StringWidth(line); lw < x {
			line += strings.Repeat(" ", x-lw)
		}
		left := ansi.Truncate(line, x, "")
		right := ansi.TruncateLeft(line, x+ansi.StringWidth(row), "")
		lines[y] = left + row + right
	}
	return lines
}
