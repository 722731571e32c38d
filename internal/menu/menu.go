// Package menu implements popup menus: a tree of items built from a
// declarative description, its layout and placement on the monitor, and
// the tracking session that owns input while the menu is open.
package menu

import (
	"errors"
	"fmt"

	"github.com/atomicstack/quelthalas/internal/anim"
	"github.com/atomicstack/quelthalas/internal/geom"
	"github.com/atomicstack/quelthalas/internal/host"
)

// Kind is the variant of a menu item.
type Kind int

const (
	KindLeaf Kind = iota
	KindSubMenu
	KindDivider
)

func (k Kind) String() string {
	switch k {
	case KindSubMenu:
		return "submenu"
	case KindDivider:
		return "divider"
	default:
		return "leaf"
	}
}

// Info describes one item of a menu to build.
type Info struct {
	Kind     Kind
	Text     string
	ID       uint32
	Disabled bool
	Items    []Info
}

// Leaf is an item that posts id when executed.
func Leaf(text string, id uint32) Info {
	return Info{Kind: KindLeaf, Text: text, ID: id}
}

// Sub is an item opening a nested menu.
func Sub(text string, items ...Info) Info {
	return Info{Kind: KindSubMenu, Text: text, Items: items}
}

func Divider() Info {
	return Info{Kind: KindDivider}
}

// Disable returns a greyed copy of the item.
func (i Info) Disable() Info {
	i.Disabled = true
	return i
}

// Item is one built entry. Rect is relative to the top of the item list.
type Item struct {
	Kind     Kind
	Text     string
	ID       uint32
	Disabled bool
	Rect     geom.Rect
	Sub      *Menu

	hover *anim.Variable
}

// Focusable reports whether keyboard or pointer focus may rest here.
func (it *Item) Focusable() bool {
	return it.Kind != KindDivider
}

// Hover is the item's highlight intensity, 0 to 1.
func (it *Item) Hover() float64 {
	if it.hover == nil {
		return 0
	}
	return it.hover.Value()
}

// Menu is one node of the tree. A SubMenu item owns its child; the popup
// window exists only while the menu is shown.
type Menu struct {
	Items          []Item
	FocusedIndex   int // -1 when nothing is focused
	ListRect       geom.Rect
	Scrolling      bool
	ScrollPosition int

	parent    *Menu
	window    host.Popup
	maxScroll int
}

// Build creates the tree described by infos.
func Build(infos []Info) *Menu {
	return build(infos, nil)
}

func build(infos []Info, parent *Menu) *Menu {
	m := &Menu{FocusedIndex: -1, parent: parent}
	m.Items = make([]Item, len(infos))
	for i, info := range infos {
		it := Item{
			Kind:     info.Kind,
			Text:     info.Text,
			ID:       info.ID,
			Disabled: info.Disabled,
			hover:    anim.NewVariable(0),
		}
		if info.Kind == KindSubMenu {
			it.Sub = build(info.Items, m)
		}
		m.Items[i] = it
	}
	return m
}

// Parent is the menu owning this one, nil at the root.
func (m *Menu) Parent() *Menu {
	return m.parent
}

// Window is the popup showing the menu, nil while hidden.
func (m *Menu) Window() host.Popup {
	return m.window
}

func (m *Menu) Visible() bool {
	return m.window != nil
}

// Focused returns the focused item, or nil.
func (m *Menu) Focused() *Item {
	if m.FocusedIndex < 0 || m.FocusedIndex >= len(m.Items) {
		return nil
	}
	return &m.Items[m.FocusedIndex]
}

// OpenSub returns the focused item's submenu when it is shown.
func (m *Menu) OpenSub() *Menu {
	it := m.Focused()
	if it == nil || it.Kind != KindSubMenu || it.Sub == nil || !it.Sub.Visible() {
		return nil
	}
	return it.Sub
}

// Contains reports whether sub is m or one of its descendants.
func (m *Menu) Contains(sub *Menu) bool {
	for n := sub; n != nil; n = n.parent {
		if n == m {
			return true
		}
	}
	return false
}

// ItemRect returns item i in the popup's client coordinates, shifted by
// the scroll position.
func (m *Menu) ItemRect(i int) geom.Rect {
	scroll := 0
	if m.Scrolling {
		scroll = m.ScrollPosition
	}
	return m.Items[i].Rect.Offset(m.ListRect.Left, m.ListRect.Top-scroll)
}

// ScreenRect returns item i in screen coordinates.
func (m *Menu) ScreenRect(i int) geom.Rect {
	r := m.ItemRect(i)
	if m.window == nil {
		return r
	}
	o := m.window.Bounds().Origin()
	return r.Offset(o.X, o.Y)
}

// CanScrollUp and CanScrollDown report whether the scroll zones lead
// anywhere.
func (m *Menu) CanScrollUp() bool {
	return m.Scrolling && m.ScrollPosition > 0
}

func (m *Menu) CanScrollDown() bool {
	return m.Scrolling && m.ScrollPosition < m.maxScroll
}

// destroyWindow closes m's popup after closing every shown descendant.
func (m *Menu) destroyWindow() error {
	var errs []error
	for i := range m.Items {
		if sub := m.Items[i].Sub; sub != nil && sub.window != nil {
			if err := sub.destroyWindow(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if m.window != nil {
		if err := m.window.Destroy(); err != nil && !errors.Is(err, host.ErrInvalidWindow) {
			errs = append(errs, fmt.Errorf("destroy popup: %w", err))
		}
		m.window = nil
	}
	m.FocusedIndex = -1
	for i := range m.Items {
		m.Items[i].hover.Stop()
	}
	return errors.Join(errs...)
}

// Destroy tears down every popup in the tree, deepest first.
func (m *Menu) Destroy() error {
	return m.destroyWindow()
}

func (m *Menu) depth() int {
	d := 0
	for n := m.parent; n != nil; n = n.parent {
		d++
	}
	return d
}

func (m *Menu) first() int {
	return m.next(-1)
}

func (m *Menu) last() int {
	return m.prev(len(m.Items))
}

// next returns the first focusable item after i, or -1. It never wraps.
func (m *Menu) next(i int) int {
	for j := i + 1; j < len(m.Items); j++ {
		if m.Items[j].Focusable() {
			return j
		}
	}
	return -1
}

func (m *Menu) prev(i int) int {
	for j := min(i, len(m.Items)) - 1; j >= 0; j-- {
		if m.Items[j].Focusable() {
			return j
		}
	}
	return -1
}
