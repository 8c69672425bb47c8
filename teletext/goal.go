package teletext

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"liiga-teletext/api"
)

// PlayIcon marks goals that have a video clip attached.
const PlayIcon = "▶"

// PenaltyShotType is rendered in the winning-goal color regardless of team.
const penaltyShotType = "VL"

// renderGoalCell places one scorer cell at (x, y): right-justified minute,
// scorer name, optional play-icon hyperlink, then the goal-type tags.
func renderGoalCell(f *Frame, x, y int, goal api.Goal, layout Layout, game api.Game, linksEnabled bool) {
	name := runewidth.Truncate(goal.ScorerName, layout.MaxPlayerNameWidth, "")
	text := fmt.Sprintf("%2d %s", goal.Minute, name)
	f.add(x, y, text, scorerStyle(goal, game))

	iconX := x + layout.PlayIconColumn + 1
	if goal.VideoURL != "" && linksEnabled {
		f.add(iconX, y, PlayIcon, Style{FG: scorerStyle(goal, game).FG, BG: ColorDefault, Link: goal.VideoURL})
	}

	if len(goal.GoalTypes) > 0 {
		tags := runewidth.Truncate(strings.Join(goal.GoalTypes, " "), layout.MaxGoalTypesWidth, "")
		f.add(iconX+playIconSlotWidth, y, tags, Style{FG: ColorGoalType, BG: ColorDefault})
	}
}

// scorerStyle picks the scorer hue: team color normally, the winning-goal
// color for overtime/shootout winners and penalty-shot goals.
func scorerStyle(goal api.Goal, game api.Game) Style {
	if goal.IsWinning && (game.Overtime || game.Shootout) {
		return Style{FG: ColorWinningGoal, BG: ColorDefault}
	}
	for _, t := range goal.GoalTypes {
		if t == penaltyShotType {
			return Style{FG: ColorWinningGoal, BG: ColorDefault}
		}
	}
	if goal.IsHomeTeam {
		return Style{FG: ColorHomeScorer, BG: ColorDefault}
	}
	return Style{FG: ColorAwayScorer, BG: ColorDefault}
}
