package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"liiga-teletext/teletext"
)

// WindowTitle is set on the terminal for the lifetime of the UI.
const WindowTitle = "SM-LIIGA 221"

// Terminal owns the raw-mode alternate-screen session. Release it with
// Restore, which also runs on panic so the shell is never left in raw
// mode.
type Terminal struct {
	screen tcell.Screen
}

// OpenTerminal acquires the screen: raw mode, alternate screen, hidden
// cursor and the window title.
func OpenTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	screen.SetTitle(WindowTitle)
	screen.HideCursor()
	screen.Clear()
	return &Terminal{screen: screen}, nil
}

// Screen exposes the underlying tcell screen for the event loop.
func (t *Terminal) Screen() tcell.Screen { return t.screen }

// Restore leaves the alternate screen and disables raw mode. Deferred: it
// fires on normal return, error return, and panic alike (the panic is
// re-raised after cleanup).
func (t *Terminal) Restore() {
	if r := recover(); r != nil {
		t.screen.Fini()
		panic(r)
	}
	t.screen.Fini()
}

// DrawFrame paints a composed frame onto the screen in one Show call, so
// the update is atomic from the terminal's point of view.
func DrawFrame(screen tcell.Screen, frame teletext.Frame) {
	screen.Clear()
	for _, span := range frame.Spans {
		style := toTcellStyle(span.Style)
		x := span.X
		for _, r := range span.Text {
			screen.SetContent(x, span.Y, r, nil, style)
			x += runewidth.RuneWidth(r)
		}
	}
	screen.HideCursor()
	screen.Show()
}

func toTcellStyle(s teletext.Style) tcell.Style {
	style := tcell.StyleDefault
	if s.FG != teletext.ColorDefault {
		style = style.Foreground(tcell.PaletteColor(s.FG))
	}
	if s.BG != teletext.ColorDefault {
		style = style.Background(tcell.PaletteColor(s.BG))
	}
	if s.Bold {
		style = style.Bold(true)
	}
	if s.Link != "" {
		style = style.Url(s.Link)
	}
	return style
}
