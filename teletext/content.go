package teletext

import "liiga-teletext/api"

type rowKind int

const (
	rowGame rowKind = iota
	rowError
	rowFutureHeader
)

// ContentRow is one ordered entry of a page: a game, an error line, or a
// "future games" header.
type ContentRow struct {
	kind rowKind
	game api.Game
	text string
}

// scorerRowCount is the number of scorer lines a game needs: home and away
// scorers are interleaved side by side, so it is the longer of the two.
func scorerRowCount(g api.Game) int {
	home, away := 0, 0
	for _, goal := range g.Goals {
		if goal.IsHomeTeam {
			home++
		} else {
			away++
		}
	}
	if home > away {
		return home
	}
	return away
}

func splitGoals(g api.Game) (home, away []api.Goal) {
	for _, goal := range g.Goals {
		if goal.IsHomeTeam {
			home = append(home, goal)
		} else {
			away = append(away, goal)
		}
	}
	return home, away
}
