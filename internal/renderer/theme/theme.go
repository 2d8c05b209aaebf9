// Package theme provides the styles used for window chrome: split dividers
// and pane status strips.
package theme

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/termwm/internal/renderer/core"
)

// Theme holds the styles used when painting window chrome.
type Theme struct {
	// Divider is the style of the 1-cell separator between column-wise
	// siblings.
	Divider core.Style

	// DividerRune is the character drawn in divider cells.
	DividerRune rune

	// StatusBar is the style of a pane's bottom status strip.
	StatusBar core.Style

	// StatusBarFocused is the status strip style of the focused pane.
	StatusBarFocused core.Style
}

// Default returns the standard theme: reverse-video chrome with a dimmed
// strip for unfocused panes.
func Default() *Theme {
	return FromBase(core.ColorFromRGB(0xD0, 0xD0, 0xD0))
}

// FromBase builds a theme around one chrome color: the focused strip gets
// the color itself, the unfocused strip a shaded variant.
func FromBase(base core.Color) *Theme {
	return &Theme{
		Divider:          core.DefaultStyle().Reverse(),
		DividerRune:      '|',
		StatusBar:        core.DefaultStyle().WithBackground(Shade(base, 0.45)).WithForeground(core.ColorFromRGB(0, 0, 0)),
		StatusBarFocused: core.DefaultStyle().WithBackground(base).WithForeground(core.ColorFromRGB(0, 0, 0)).Bold(),
	}
}

// StatusStyle returns the status strip style for the given focus state.
func (t *Theme) StatusStyle(focused bool) core.Style {
	if focused {
		return t.StatusBarFocused
	}
	return t.StatusBar
}

// Shade blends an RGB color toward black by the given amount in [0,1].
// Indexed and default colors are returned unchanged; the terminal palette
// is not ours to remap.
func Shade(c core.Color, amount float64) core.Color {
	if c.Default || c.Indexed {
		return c
	}
	if amount <= 0 {
		return c
	}
	if amount > 1 {
		amount = 1
	}
	from := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	blended := from.BlendLab(colorful.Color{}, amount).Clamped()
	return core.ColorFromRGB(uint8(blended.R*255+0.5), uint8(blended.G*255+0.5), uint8(blended.B*255+0.5))
}
