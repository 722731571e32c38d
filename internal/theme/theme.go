package theme

import (
	"math"

	"github.com/atomicstack/quelthalas/internal/menu"
	"github.com/charmbracelet/lipgloss"
)

// Styles describes reusable Lip Gloss styles shared across the host.
type Styles struct {
	Field            *lipgloss.Style
	FieldLabel       *lipgloss.Style
	FieldPlaceholder *lipgloss.Style
	FieldSelection   *lipgloss.Style
	FieldBorder      *lipgloss.Style
	Caret            *lipgloss.Style
	Menu             *lipgloss.Style
	MenuItem         *lipgloss.Style
	MenuItemDisabled *lipgloss.Style
	MenuDivider      *lipgloss.Style
	MenuArrow        *lipgloss.Style
	Header           *lipgloss.Style
	Footer           *lipgloss.Style
	Error            *lipgloss.Style
}

// Theme pairs the tokens with the styles built from them.
type Theme struct {
	Tokens Tokens
	Styles *Styles
}

var defaultTheme = New(WebLight())

// Default exposes the standard web light theme.
func Default() *Theme {
	return defaultTheme
}

// Load builds a theme from a TOML override file. An empty path yields the
// default theme.
func Load(path string) (*Theme, error) {
	if path == "" {
		return Default(), nil
	}
	t, err := LoadTokens(path)
	if err != nil {
		return Default(), err
	}
	return New(t), nil
}

// New derives styles from t. Invalid colors fall back to the terminal's
// own defaults.
func New(t Tokens) *Theme {
	c := func(hex string) lipgloss.TerminalColor {
		if _, err := parseHex(hex); err != nil {
			return lipgloss.NoColor{}
		}
		return lipgloss.Color(hex)
	}
	bg := c(t.ColorNeutralBackground1)
	fg := c(t.ColorNeutralForeground1)
	styles := &Styles{
		Field: ptr(
			lipgloss.NewStyle().Foreground(fg).Background(bg),
		),
		FieldLabel: ptr(
			lipgloss.NewStyle().Foreground(c(t.ColorNeutralForeground4)).Bold(true),
		),
		FieldPlaceholder: ptr(
			lipgloss.NewStyle().Foreground(c(t.ColorNeutralForeground4)).Background(bg),
		),
		FieldSelection: ptr(
			lipgloss.NewStyle().Foreground(c(t.ColorNeutralForegroundOnBrand)).Background(c(t.ColorBrandBackground)),
		),
		FieldBorder: ptr(
			lipgloss.NewStyle().Foreground(c(t.ColorNeutralStroke1)),
		),
		Caret: ptr(
			lipgloss.NewStyle().Foreground(bg).Background(fg),
		),
		Menu: ptr(
			lipgloss.NewStyle().Foreground(c(t.ColorNeutralStroke1)).Background(bg),
		),
		MenuItem: ptr(
			lipgloss.NewStyle().Foreground(fg).Background(bg),
		),
		MenuItemDisabled: ptr(
			lipgloss.NewStyle().Foreground(c(t.ColorNeutralForegroundDisabled)).Background(bg),
		),
		MenuDivider: ptr(
			lipgloss.NewStyle().Foreground(c(t.ColorNeutralStroke1)).Background(bg),
		),
		MenuArrow: ptr(
			lipgloss.NewStyle().Foreground(c(t.ColorNeutralForeground4)).Background(bg),
		),
		Header: ptr(
			lipgloss.NewStyle().Foreground(c(t.ColorBrandBackground)).Bold(true),
		),
		Footer: ptr(
			lipgloss.NewStyle().Foreground(c(t.ColorNeutralForeground4)),
		),
		Error: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("#c50f1f")).Bold(true),
		),
	}
	return &Theme{Tokens: t, Styles: styles}
}

// MenuMetrics sizes popup menus for a character-cell host.
func (th *Theme) MenuMetrics() menu.Metrics {
	m := menu.DefaultMetrics()
	if th.Tokens.MenuMinWidth > 0 {
		m.MinWidth = th.Tokens.MenuMinWidth
	}
	if th.Tokens.SpacingHorizontalM > 0 {
		m.PaddingX = th.Tokens.SpacingHorizontalM
	}
	return m
}

// MenuHover returns the item background for a hover intensity between 0
// and 1, blending the neutral rest and hover colors.
func (th *Theme) MenuHover(v float64) lipgloss.TerminalColor {
	return blend(th.Tokens.ColorNeutralBackground1, th.Tokens.ColorNeutralBackground1Hover, v)
}

// FocusStroke returns the field border color for a focus ring value.
func (th *Theme) FocusStroke(v float64) lipgloss.TerminalColor {
	return blend(th.Tokens.ColorNeutralStroke1, th.Tokens.ColorBrandBackground, v)
}

func blend(from, to string, v float64) lipgloss.TerminalColor {
	a, errA := parseHex(from)
	b, errB := parseHex(to)
	if errA != nil || errB != nil {
		return lipgloss.NoColor{}
	}
	v = math.Min(math.Max(v, 0), 1)
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*v))
	}
	return lipgloss.Color(rgb{r: mix(a.r, b.r), g: mix(a.g, b.g), b: mix(a.b, b.b)}.hex())
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
