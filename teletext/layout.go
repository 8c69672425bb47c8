package teletext

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"liiga-teletext/api"
)

// Mode selects the row renderer.
type Mode int

const (
	ModeNormal Mode = iota
	ModeCompact
	ModeWide
)

const (
	// ContentMargin is the fixed left/right margin of the content area.
	ContentMargin = 2
	// TeamSeparator sits between the team names on every team line.
	TeamSeparator = " - "

	minTeamWidth       = 15
	preferredTeamWidth = 25

	// Right-hand column: "MM:SS" clock plus the running score.
	timeWidth      = 5
	scoreCellWidth = 7 // "10-9 rl"
	rightColWidth  = timeWidth + 1 + scoreCellWidth

	// Wide mode geometry: two fixed 60-column blocks with an 8-column gap.
	WideColumnWidth  = 60
	WideColumnGap    = 8
	WideMinimumWidth = 128

	// Compact mode geometry.
	compactTagPairWidth   = 8 // "TAP-IFK"
	compactScoreWidth     = 6
	compactGameSeparator  = "  "
	compactMaxGamesPerRow = 3

	// Scorer cell internals: right-justified 2-digit minute plus a space,
	// then the name budget, a play-icon slot, and the goal-type tags.
	minutePrefixWidth = 3
	playIconSlotWidth = 2
	goalTypesWidth    = 3
)

// Layout holds the per-row column geometry for one terminal width and game
// set. It is a pure value: recompute it whenever either input changes.
type Layout struct {
	TerminalWidth int

	HomeTeamWidth  int
	AwayTeamWidth  int
	SeparatorWidth int

	TimeColumn  int // x of the clock cell for ongoing games
	ScoreColumn int // x of the score/state cell

	// PlayIconColumn is the offset of the ▶ slot within a scorer cell;
	// identical for the home and away columns so icons line up.
	PlayIconColumn int

	MaxPlayerNameWidth int
	MaxGoalTypesWidth  int
}

// NewLayout computes the column geometry for the given terminal width and
// the games that will be displayed. Team columns grow to fit the longest
// observed names when the width permits and clamp to the fixed minimum
// otherwise.
func NewLayout(terminalWidth int, games []api.Game) Layout {
	l := Layout{
		TerminalWidth:     terminalWidth,
		SeparatorWidth:    len(TeamSeparator),
		MaxGoalTypesWidth: goalTypesWidth,
	}

	longestHome, longestAway := preferredTeamWidth, preferredTeamWidth
	for _, g := range games {
		if w := runewidth.StringWidth(g.HomeTeam); w > longestHome {
			longestHome = w
		}
		if w := runewidth.StringWidth(g.AwayTeam); w > longestAway {
			longestAway = w
		}
	}

	available := terminalWidth - 2*ContentMargin - l.SeparatorWidth - rightColWidth - 1
	half := available / 2
	if half < minTeamWidth {
		half = minTeamWidth
	}

	l.HomeTeamWidth = clampWidth(longestHome, half)
	l.AwayTeamWidth = clampWidth(longestAway, half)

	l.ScoreColumn = terminalWidth - ContentMargin - scoreCellWidth
	l.TimeColumn = l.ScoreColumn - 1 - timeWidth

	nameBudget := l.HomeTeamWidth - minutePrefixWidth - playIconSlotWidth - goalTypesWidth - 1
	if away := l.AwayTeamWidth - minutePrefixWidth - playIconSlotWidth - goalTypesWidth - 1; away < nameBudget {
		nameBudget = away
	}
	if nameBudget < 1 {
		nameBudget = 1
	}
	l.MaxPlayerNameWidth = nameBudget
	l.PlayIconColumn = minutePrefixWidth + nameBudget

	return l
}

func clampWidth(want, max int) int {
	if want > max {
		want = max
	}
	if want < minTeamWidth {
		want = minTeamWidth
	}
	return want
}

// AwayColumnX is the x position where the away team's column starts.
func (l Layout) AwayColumnX() int {
	return ContentMargin + l.HomeTeamWidth + l.SeparatorWidth
}

// CompactGamesPerLine computes how many compact game cells fit side by
// side, capped at three. Zero means the terminal is too narrow even for
// one.
func CompactGamesPerLine(terminalWidth int) int {
	gameWidth := compactTagPairWidth + compactScoreWidth
	available := terminalWidth - 2*ContentMargin
	for k := compactMaxGamesPerRow; k >= 1; k-- {
		if k*gameWidth+(k-1)*len(compactGameSeparator) <= available {
			return k
		}
	}
	return 0
}

// TruncateTeamName shortens a name to fit the budget, cutting at the last
// space or hyphen when one lands inside the budget, otherwise hard at the
// cell edge. No ellipsis: the teletext grid has no room for one.
func TruncateTeamName(name string, width int) string {
	if runewidth.StringWidth(name) <= width {
		return name
	}
	hard := runewidth.Truncate(name, width, "")
	if idx := strings.LastIndexAny(hard, " -"); idx > 0 {
		return hard[:idx]
	}
	return hard
}
