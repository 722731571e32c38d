package theme

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/quelthalas/internal/anim"
	"github.com/pelletier/go-toml/v2"
)

// Tokens are the design values everything else is derived from. Colors
// are #rrggbb strings.
type Tokens struct {
	ColorNeutralBackground1        string    `toml:"color_neutral_background1"`
	ColorNeutralBackground1Hover   string    `toml:"color_neutral_background1_hover"`
	ColorNeutralBackground1Pressed string    `toml:"color_neutral_background1_pressed"`
	ColorBrandBackground           string    `toml:"color_brand_background"`
	ColorBrandBackgroundHover      string    `toml:"color_brand_background_hover"`
	ColorBrandBackgroundPressed    string    `toml:"color_brand_background_pressed"`
	ColorNeutralForeground1        string    `toml:"color_neutral_foreground1"`
	ColorNeutralForegroundDisabled string    `toml:"color_neutral_foreground_disabled"`
	ColorNeutralForegroundOnBrand  string    `toml:"color_neutral_foreground_on_brand"`
	ColorNeutralForeground4        string    `toml:"color_neutral_foreground4"`
	ColorNeutralStroke1            string    `toml:"color_neutral_stroke1"`
	ColorNeutralStroke1Hover       string    `toml:"color_neutral_stroke1_hover"`
	ColorNeutralStroke1Pressed     string    `toml:"color_neutral_stroke1_pressed"`
	SpacingHorizontalM             int       `toml:"spacing_horizontal_m"`
	DurationFasterMS               int       `toml:"duration_faster_ms"`
	CurveEasyEase                  []float64 `toml:"curve_easy_ease"`
	MenuMinWidth                   int       `toml:"menu_min_width"`
}

// WebLight is the default light palette.
func WebLight() Tokens {
	return Tokens{
		ColorNeutralBackground1:        "#ffffff",
		ColorNeutralBackground1Hover:   "#f5f5f5",
		ColorNeutralBackground1Pressed: "#e0e0e0",
		ColorBrandBackground:           "#0f6cbd",
		ColorBrandBackgroundHover:      "#115ea3",
		ColorBrandBackgroundPressed:    "#0c3b5e",
		ColorNeutralForeground1:        "#242424",
		ColorNeutralForegroundDisabled: "#bdbdbd",
		ColorNeutralForegroundOnBrand:  "#ffffff",
		ColorNeutralForeground4:        "#707070",
		ColorNeutralStroke1:            "#d1d1d1",
		ColorNeutralStroke1Hover:       "#c7c7c7",
		ColorNeutralStroke1Pressed:     "#b3b3b3",
		SpacingHorizontalM:             1,
		DurationFasterMS:               100,
		CurveEasyEase:                  []float64{0.33, 0, 0.67, 1},
		MenuMinWidth:                   10,
	}
}

// DurationFaster is the short transition used for hover and focus.
func (t Tokens) DurationFaster() time.Duration {
	return time.Duration(t.DurationFasterMS) * time.Millisecond
}

// EasyEase is the standard easing curve.
func (t Tokens) EasyEase() anim.EasingFunc {
	c := t.CurveEasyEase
	if len(c) != 4 {
		return anim.EaseLinear
	}
	return anim.CubicBezier(c[0], c[1], c[2], c[3])
}

// Validate checks every color parses and the numbers make sense.
func (t Tokens) Validate() error {
	var errs []error
	for name, c := range t.colors() {
		if _, err := parseHex(c); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if len(t.CurveEasyEase) != 4 {
		errs = append(errs, fmt.Errorf("curve_easy_ease: want 4 control values, got %d", len(t.CurveEasyEase)))
	}
	if t.DurationFasterMS < 0 {
		errs = append(errs, fmt.Errorf("duration_faster_ms must be >= 0 (got %d)", t.DurationFasterMS))
	}
	if t.SpacingHorizontalM < 0 {
		errs = append(errs, fmt.Errorf("spacing_horizontal_m must be >= 0 (got %d)", t.SpacingHorizontalM))
	}
	return errors.Join(errs...)
}

func (t Tokens) colors() map[string]string {
	return map[string]string{
		"color_neutral_background1":         t.ColorNeutralBackground1,
		"color_neutral_background1_hover":   t.ColorNeutralBackground1Hover,
		"color_neutral_background1_pressed": t.ColorNeutralBackground1Pressed,
		"color_brand_background":            t.ColorBrandBackground,
		"color_brand_background_hover":      t.ColorBrandBackgroundHover,
		"color_brand_background_pressed":    t.ColorBrandBackgroundPressed,
		"color_neutral_foreground1":         t.ColorNeutralForeground1,
		"color_neutral_foreground_disabled": t.ColorNeutralForegroundDisabled,
		"color_neutral_foreground_on_brand": t.ColorNeutralForegroundOnBrand,
		"color_neutral_foreground4":         t.ColorNeutralForeground4,
		"color_neutral_stroke1":             t.ColorNeutralStroke1,
		"color_neutral_stroke1_hover":       t.ColorNeutralStroke1Hover,
		"color_neutral_stroke1_pressed":     t.ColorNeutralStroke1Pressed,
	}
}

// LoadTokens reads overrides from a TOML file on top of WebLight. Keys the
// file leaves out keep their defaults.
func LoadTokens(path string) (Tokens, error) {
	t := WebLight()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read theme: %w", err)
	}
	if err := toml.Unmarshal(data, &t); err != nil {
		return WebLight(), fmt.Errorf("decode theme %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return WebLight(), fmt.Errorf("theme %s: %w", path, err)
	}
	return t, nil
}

type rgb struct {
	r, g, b uint8
}

func parseHex(s string) (rgb, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return rgb{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return rgb{}, fmt.Errorf("invalid color %q", s)
	}
	return rgb{r: uint8(v >> 16), g: uint8(v >> 8), b: uint8(v)}, nil
}

func (c rgb) hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
}
