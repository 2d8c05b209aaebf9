package scroller

import "github.com/dshills/termwm/internal/renderer/core"

// Style markers are the only escape form the scrollback understands:
// ESC '[' with zero to two decimal parameters separated by ';', terminated
// by 'm'. Well-formed markers are stored in the buffer verbatim and carry
// zero display width; anything else degrades to plain-text handling.

// markerLength returns the rune length of a well-formed style marker at
// the start of rs.
func markerLength(rs []rune) (int, bool) {
	if len(rs) < 3 || rs[0] != 0x1B || rs[1] != '[' {
		return 0, false
	}
	i := 2
	for p := 0; p < 2; p++ {
		start := i
		for i < len(rs) && rs[i] >= '0' && rs[i] <= '9' {
			i++
		}
		if i == start {
			if p > 0 {
				// A separator must be followed by digits.
				return 0, false
			}
			break
		}
		if p == 0 && i < len(rs) && rs[i] == ';' {
			i++
			continue
		}
		break
	}
	if i < len(rs) && rs[i] == 'm' {
		return i + 1, true
	}
	return 0, false
}

// parseMarker extracts the numeric parameters of a marker at the start of
// rs. A marker with no parameters means reset, reported as [0].
func parseMarker(rs []rune) (codes []int, length int, ok bool) {
	length, ok = markerLength(rs)
	if !ok {
		return nil, 0, false
	}
	body := rs[2 : length-1]
	if len(body) == 0 {
		return []int{0}, length, true
	}
	v := 0
	for _, r := range body {
		if r == ';' {
			codes = append(codes, v)
			v = 0
			continue
		}
		v = v*10 + int(r-'0')
	}
	codes = append(codes, v)
	return codes, length, true
}

// applyMarker folds marker parameters into a style. The bright color
// ranges imply bold, matching how most terminals approximate them.
func applyMarker(style core.Style, codes []int) core.Style {
	for _, c := range codes {
		switch {
		case c == 0:
			style = core.DefaultStyle()
		case c == 1:
			style.Attributes = style.Attributes.With(core.AttrBold)
		case c == 2:
			style.Attributes = style.Attributes.With(core.AttrDim)
		case c == 3:
			style.Attributes = style.Attributes.With(core.AttrItalic)
		case c == 4:
			style.Attributes = style.Attributes.With(core.AttrUnderline)
		case c == 5:
			style.Attributes = style.Attributes.With(core.AttrBlink)
		case c == 7:
			style.Attributes = style.Attributes.With(core.AttrReverse)
		case c == 8:
			style.Attributes = style.Attributes.With(core.AttrHidden)
		case c >= 30 && c <= 37:
			style = style.WithForeground(core.ColorFromIndex(uint8(c - 30)))
		case c >= 40 && c <= 47:
			style = style.WithBackground(core.ColorFromIndex(uint8(c - 40)))
		case c >= 90 && c <= 97:
			style = style.WithForeground(core.ColorFromIndex(uint8(c - 90)))
			style.Attributes = style.Attributes.With(core.AttrBold)
		case c >= 100 && c <= 107:
			style = style.WithBackground(core.ColorFromIndex(uint8(c - 100)))
			style.Attributes = style.Attributes.With(core.AttrBold)
		}
	}
	return style
}

// visibleLength returns the display width of a line, excluding markers.
func visibleLength(line string) int {
	rs := []rune(line)
	width := 0
	for i := 0; i < len(rs); i++ {
		if n, ok := markerLength(rs[i:]); ok {
			i += n - 1
			continue
		}
		width += core.RuneWidth(rs[i])
	}
	return width
}

// visibleWidthBefore returns the display width of the line content before
// rune index pos, excluding markers.
func visibleWidthBefore(line string, pos int) int {
	rs := []rune(line)
	if pos > len(rs) {
		pos = len(rs)
	}
	width := 0
	for i := 0; i < pos; i++ {
		if n, ok := markerLength(rs[i:]); ok {
			i += n - 1
			continue
		}
		width += core.RuneWidth(rs[i])
	}
	return width
}
