package teletext

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"liiga-teletext/api"
)

const (
	compactHeaderMaxWidth = 30
	futureGamesPrefix     = "Seuraavat ottelut "
	futureGamesShort      = "Seur. ottelut "
)

// renderCompactGames packs a run of games into lines of gamesPerLine cells
// starting at row y, with a spacer line after each full line. Returns the
// next free row.
func renderCompactGames(f *Frame, y int, games []api.Game, gamesPerLine int) int {
	for start := 0; start < len(games); start += gamesPerLine {
		end := start + gamesPerLine
		if end > len(games) {
			end = len(games)
		}
		x := ContentMargin
		for i, g := range games[start:end] {
			if i > 0 {
				f.add(x, y, compactGameSeparator, PlainStyle)
				x += len(compactGameSeparator)
			}
			x = renderCompactCell(f, x, y, g)
		}
		y += 2 // game line plus spacer
	}
	return y
}

// renderCompactCell draws one "TAP-IFK  3-2  " cell and returns the x
// position just past it.
func renderCompactCell(f *Frame, x, y int, g api.Game) int {
	pair := fmt.Sprintf("%s-%s", Abbreviate(g.HomeTeam), Abbreviate(g.AwayTeam))
	f.add(x, y, padRight(pair, compactTagPairWidth), TextStyle)
	x += compactTagPairWidth

	var cell string
	style := TextStyle
	switch g.Status {
	case api.StatusScheduled:
		cell = g.Time
	case api.StatusOngoing:
		cell = g.Result + g.ResultSuffix()
	case api.StatusFinal:
		cell = g.Result + g.ResultSuffix()
		style = Style{FG: ColorResult, BG: ColorDefault}
	}
	f.add(x, y, padCenter(cell, compactScoreWidth), style)
	return x + compactScoreWidth
}

// compactHeader abbreviates the standard future-games header so the date
// survives, and clips anything else to the compact width.
func compactHeader(text string) string {
	if strings.HasPrefix(text, futureGamesPrefix) {
		return futureGamesShort + strings.TrimPrefix(text, futureGamesPrefix)
	}
	if runewidth.StringWidth(text) > compactHeaderMaxWidth {
		return runewidth.Truncate(text, compactHeaderMaxWidth, "...")
	}
	return text
}

func padRight(s string, width int) string {
	if pad := width - runewidth.StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

func padCenter(s string, width int) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
