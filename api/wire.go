package api

import (
	"fmt"
	"sort"
	"time"
)

// finishedType values used by the Liiga API for games decided after
// regulation.
const (
	finishedOvertime = "ENDED_DURING_EXTENDED_GAME_TIME"
	finishedShootout = "ENDED_DURING_WINNING_SHOT_COMPETITION"
)

type wireGoalEvent struct {
	ScorerPlayerID int64    `json:"scorerPlayerId"`
	GameTime       int      `json:"gameTime"`
	HomeTeamScore  int      `json:"homeTeamScore"`
	AwayTeamScore  int      `json:"awayTeamScore"`
	WinningGoal    bool     `json:"winningGoal"`
	GoalTypes      []string `json:"goalTypes"`
	VideoClipURL   string   `json:"videoClipUrl"`
}

type wireTeam struct {
	TeamID     string          `json:"teamId"`
	TeamName   string          `json:"teamName"`
	Goals      int             `json:"goals"`
	GoalEvents []wireGoalEvent `json:"goalEvents"`
}

type wirePlayer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type scheduleGame struct {
	ID           int64        `json:"id"`
	Season       int          `json:"season"`
	Start        string       `json:"start"`
	Started      bool         `json:"started"`
	Ended        bool         `json:"ended"`
	GameTime     int          `json:"gameTime"`
	FinishedType string       `json:"finishedType"`
	HomeTeam     wireTeam     `json:"homeTeam"`
	AwayTeam     wireTeam     `json:"awayTeam"`
	Players      []wirePlayer `json:"players"`
}

func (sg scheduleGame) toGame(tournament string) Game {
	game := Game{
		HomeTeam:   sg.HomeTeam.TeamName,
		AwayTeam:   sg.AwayTeam.TeamName,
		Tournament: tournament,
		Start:      sg.Start,
	}

	if start, err := time.Parse(time.RFC3339, sg.Start); err == nil {
		game.Time = start.Local().Format("15:04")
	}

	switch {
	case sg.Ended:
		game.Status = StatusFinal
	case sg.Started:
		game.Status = StatusOngoing
	default:
		game.Status = StatusScheduled
	}

	if game.Status != StatusScheduled {
		game.Result = fmt.Sprintf("%d-%d", sg.HomeTeam.Goals, sg.AwayTeam.Goals)
		game.PlayedTime = sg.GameTime
		game.Overtime = sg.FinishedType == finishedOvertime
		game.Shootout = sg.FinishedType == finishedShootout
		game.Goals = sg.goals()
	}

	return game
}

// goals merges both teams' goal events into one list ordered by the
// running total score, with scorer names resolved from the game's player
// list.
func (sg scheduleGame) goals() []Goal {
	names := scorerNames(sg.Players)

	var goals []Goal
	for _, side := range []struct {
		events []wireGoalEvent
		home   bool
	}{
		{sg.HomeTeam.GoalEvents, true},
		{sg.AwayTeam.GoalEvents, false},
	} {
		for _, ev := range side.events {
			goals = append(goals, Goal{
				ScorerID:   ev.ScorerPlayerID,
				ScorerName: names[ev.ScorerPlayerID],
				Minute:     ev.GameTime / 60,
				HomeScore:  ev.HomeTeamScore,
				AwayScore:  ev.AwayTeamScore,
				IsWinning:  ev.WinningGoal,
				GoalTypes:  ev.GoalTypes,
				IsHomeTeam: side.home,
				VideoURL:   ev.VideoClipURL,
			})
		}
	}

	sort.SliceStable(goals, func(i, j int) bool {
		return goals[i].HomeScore+goals[i].AwayScore < goals[j].HomeScore+goals[j].AwayScore
	})
	return goals
}

// scorerNames maps player ids to display names. Plain last name by
// default; when two players in the game share one, the first initial is
// appended ("Koivu M.").
func scorerNames(players []wirePlayer) map[int64]string {
	lastNameCount := make(map[string]int)
	for _, p := range players {
		lastNameCount[p.LastName]++
	}

	names := make(map[int64]string, len(players))
	for _, p := range players {
		name := p.LastName
		if lastNameCount[p.LastName] > 1 && len(p.FirstName) > 0 {
			name = fmt.Sprintf("%s %c.", p.LastName, []rune(p.FirstName)[0])
		}
		names[p.ID] = name
	}
	return names
}
