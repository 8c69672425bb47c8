// Package teletext renders Liiga games in the visual style of the classic
// YLE Teksti-TV results page 221: a fixed character grid, the 256-color
// ANSI palette, and three display modes (normal, compact, wide).
package teletext

import "sort"

// 256-color palette indexes, fixed to match the teletext reference.
const (
	ColorHeaderBg    = 21  // blue
	ColorTitleBg     = 46  // green
	ColorTitleFg     = 16  // black on the green title block
	ColorText        = 231 // white
	ColorResult      = 46  // green
	ColorHomeScorer  = 51  // cyan
	ColorAwayScorer  = 51  // cyan
	ColorWinningGoal = 201 // magenta
	ColorGoalType    = 226 // yellow
	ColorCountdown   = 226 // yellow
)

// ColorDefault leaves the terminal's own color in place.
const ColorDefault = -1

// Style is the appearance of one span of characters.
type Style struct {
	FG   int // 256-palette index, ColorDefault for none
	BG   int
	Bold bool
	Link string // OSC-8 hyperlink target, empty for none
}

// PlainStyle is default text without any attributes.
var PlainStyle = Style{FG: ColorDefault, BG: ColorDefault}

// TextStyle is the teletext body text color.
var TextStyle = Style{FG: ColorText, BG: ColorDefault}

// Span is a run of text placed at an absolute cell position. Coordinates
// are 0-based; the writer converts to 1-based CSI addressing.
type Span struct {
	X, Y  int
	Text  string
	Style Style
}

// Frame is one complete composed screen. Spans may be appended in any
// order; Sorted returns them in row-major paint order.
type Frame struct {
	Width  int
	Height int
	Spans  []Span
}

func (f *Frame) add(x, y int, text string, style Style) {
	if text == "" {
		return
	}
	f.Spans = append(f.Spans, Span{X: x, Y: y, Text: text, Style: style})
}

// Sorted returns the spans ordered by row, then column.
func (f *Frame) Sorted() []Span {
	spans := make([]Span, len(f.Spans))
	copy(spans, f.Spans)
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Y != spans[j].Y {
			return spans[i].Y < spans[j].Y
		}
		return spans[i].X < spans[j].X
	})
	return spans
}
