package teletext

import (
	"github.com/mattn/go-runewidth"
	"liiga-teletext/api"
)

// renderNormalGame draws one game in normal mode starting at row y, offset
// horizontally by xOff (zero outside wide mode). Returns the next free
// row.
func renderNormalGame(f *Frame, xOff, y int, game api.Game, layout Layout, linksEnabled, spacer bool) int {
	home := TruncateTeamName(game.HomeTeam, layout.HomeTeamWidth)
	away := TruncateTeamName(game.AwayTeam, layout.AwayTeamWidth)

	f.add(xOff+ContentMargin, y, home, TextStyle)
	f.add(xOff+ContentMargin+layout.HomeTeamWidth, y, TeamSeparator, TextStyle)
	f.add(xOff+layout.AwayColumnX(), y, away, TextStyle)

	renderTimeScore(f, xOff, y, game, layout)
	y++

	homeGoals, awayGoals := splitGoals(game)
	rows := len(homeGoals)
	if len(awayGoals) > rows {
		rows = len(awayGoals)
	}
	for i := 0; i < rows; i++ {
		if i < len(homeGoals) {
			renderGoalCell(f, xOff+ContentMargin, y, homeGoals[i], layout, game, linksEnabled)
		}
		if i < len(awayGoals) {
			renderGoalCell(f, xOff+layout.AwayColumnX(), y, awayGoals[i], layout, game, linksEnabled)
		}
		y++
	}

	if spacer {
		y++
	}
	return y
}

// renderTimeScore draws the state cell at the right edge of the team line:
// start time for scheduled games, game clock plus running score while
// ongoing, and the final result with its overtime/shootout suffix.
func renderTimeScore(f *Frame, xOff, y int, game api.Game, layout Layout) {
	rightEdge := xOff + layout.ScoreColumn + scoreCellWidth

	switch game.Status {
	case api.StatusScheduled:
		f.add(rightEdge-runewidth.StringWidth(game.Time), y, game.Time, TextStyle)
	case api.StatusOngoing:
		clock := api.FormatPlayedTime(game.PlayedTime)
		f.add(xOff+layout.TimeColumn, y, clock, TextStyle)
		f.add(rightEdge-runewidth.StringWidth(game.Result), y, game.Result, Style{FG: ColorResult, BG: ColorDefault})
	case api.StatusFinal:
		result := game.Result + game.ResultSuffix()
		f.add(rightEdge-runewidth.StringWidth(result), y, result, Style{FG: ColorResult, BG: ColorDefault})
	}
}
