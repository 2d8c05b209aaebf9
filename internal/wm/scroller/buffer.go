package scroller

import "strings"

// tabStop is the column multiple tabs expand to.
const tabStop = 8

// buffer is the scrollback line store. It always holds at least one line;
// incoming text edits the last line through a write cursor, so carriage
// returns and backspaces rewrite content in place the way a terminal
// program expects.
type buffer struct {
	lines  []string
	cursor int // write position, as a rune index into the last line
}

func newBuffer() *buffer {
	return &buffer{lines: []string{""}}
}

func (b *buffer) count() int { return len(b.lines) }

func (b *buffer) line(i int) string { return b.lines[i] }

func (b *buffer) last() string { return b.lines[len(b.lines)-1] }

// append streams raw text into the buffer. Text before the first newline
// merges into the current last line; every newline starts a fresh line.
func (b *buffer) append(text string) {
	segs := strings.Split(text, "\n")
	if segs[0] != "" {
		i := len(b.lines) - 1
		b.lines[i], b.cursor = editLine(b.lines[i], b.cursor, segs[0])
	}
	for _, seg := range segs[1:] {
		line, pos := editLine("", 0, seg)
		b.lines = append(b.lines, line)
		b.cursor = pos
	}
}

// editLine applies one segment of incoming text to a line at write
// position pos and returns the new line and position. Backspace and
// delete step the position back, tab pads with spaces to the next tab
// stop, carriage return rewinds to column zero, printable characters
// overwrite or extend, and well-formed style markers are stored verbatim.
// Other control characters are dropped. Trailing spaces past the final
// write position are trimmed.
func editLine(line string, pos int, seg string) (string, int) {
	rs := []rune(line)
	in := []rune(seg)

	put := func(r rune) {
		if pos < len(rs) {
			rs[pos] = r
		} else {
			rs = append(rs, r)
		}
		pos++
	}

	for i := 0; i < len(in); i++ {
		r := in[i]
		switch {
		case r == 0x08 || r == 0x7F:
			if pos > 0 {
				pos--
			}
		case r == '\t':
			for {
				put(' ')
				if pos%tabStop == 0 {
					break
				}
			}
		case r == '\r':
			pos = 0
		case r == 0x1B:
			if n, ok := markerLength(in[i:]); ok {
				for _, mr := range in[i : i+n] {
					put(mr)
				}
				i += n - 1
			}
			// A lone or malformed escape is dropped.
		case r >= ' ':
			put(r)
		}
	}

	j := len(rs) - 1
	for j >= pos && rs[j] == ' ' {
		j--
	}
	return string(rs[:j+1]), pos
}
