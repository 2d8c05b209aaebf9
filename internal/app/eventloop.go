package app

import (
	"fmt"
	"time"

	"github.com/dshills/termwm/internal/renderer/backend"
	"github.com/dshills/termwm/internal/wm"
	"github.com/dshills/termwm/internal/wm/scroller"
)

// eventLoop blocks on backend events until quit.
func (a *Application) eventLoop() error {
	a.feedWelcome()

	for {
		ev := a.backend.PollEvent()
		switch ev.Type {
		case backend.EventResize:
			a.relayout(ev.Width, ev.Height)
		case backend.EventKey:
			if err := a.handleKey(ev); err != nil {
				return err
			}
		}
	}
}

func (a *Application) handleKey(ev backend.Event) error {
	if ev.Mod&backend.ModAlt != 0 {
		switch ev.Key {
		case backend.KeyUp:
			a.focusNeighbor(wm.DirUp)
		case backend.KeyDown:
			a.focusNeighbor(wm.DirDown)
		case backend.KeyLeft:
			a.focusNeighbor(wm.DirLeft)
		case backend.KeyRight:
			a.focusNeighbor(wm.DirRight)
		}
		return nil
	}

	switch ev.Key {
	case backend.KeyCtrlC:
		return ErrQuit
	case backend.KeyCtrlL:
		width, height := a.backend.Size()
		a.relayout(width, height)
	case backend.KeyUp:
		a.scrollFocused(func(s *scroller.Scroller) { s.ScrollUp(1) })
	case backend.KeyDown:
		a.scrollFocused(func(s *scroller.Scroller) { s.ScrollDown(1) })
	case backend.KeyPageUp:
		a.scrollFocused(func(s *scroller.Scroller) { s.ScrollUp(s.ContentHeight()) })
	case backend.KeyPageDown:
		a.scrollFocused(func(s *scroller.Scroller) { s.ScrollDown(s.ContentHeight()) })
	case backend.KeyHome:
		a.scrollFocused(func(s *scroller.Scroller) { s.Home() })
	case backend.KeyEnd:
		a.scrollFocused(func(s *scroller.Scroller) { s.End() })
	case backend.KeyEnter:
		a.feedLine()
	case backend.KeyRune:
		return a.handleRune(ev.Rune)
	}
	return nil
}

func (a *Application) handleRune(r rune) error {
	switch r {
	case 'q':
		return ErrQuit
	case 's':
		return a.splitFocused(wm.AxisRows)
	case 'v':
		return a.splitFocused(wm.AxisCols)
	case 'c':
		return a.closeFocused()
	case '+':
		return a.resizeFocused(1)
	case '-':
		return a.resizeFocused(-1)
	}
	return nil
}

// scrollFocused applies fn to the focused scrollback pane and repaints it.
func (a *Application) scrollFocused(fn func(*scroller.Scroller)) {
	s := a.FocusedScroller()
	if s == nil {
		return
	}
	fn(s)
	_ = s.Redraw(true)
}

// feedLine streams one timestamped sample line into the focused pane.
func (a *Application) feedLine() {
	s := a.FocusedScroller()
	if s == nil {
		return
	}
	s.Append(fmt.Sprintf("\x1b[32m%s\x1b[0m sample output for %s\n",
		time.Now().Format("15:04:05"), s.Title()))
	_ = s.Redraw(true)
}

func (a *Application) feedWelcome() {
	s := a.FocusedScroller()
	if s == nil {
		return
	}
	s.Append("\x1b[1mtermwm\x1b[0m\n")
	s.Append("s/v split  c close  +/- resize  alt+arrows focus\n")
	s.Append("arrows/pgup/pgdn scroll  enter feed  q quit\n")
	_ = s.Redraw(true)
}
