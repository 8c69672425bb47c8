package api

import (
	"fmt"
	"time"
)

// Tournament identifiers used by the Liiga API.
const (
	TournamentRegular        = "runkosarja"
	TournamentPlayoffs       = "playoffs"
	TournamentPlayout        = "playout"
	TournamentQualifications = "qualifications"
	TournamentPreseason      = "valmistavat_ottelut"
)

type GameStatus int

const (
	StatusScheduled GameStatus = iota
	StatusOngoing
	StatusFinal
)

func (s GameStatus) String() string {
	switch s {
	case StatusOngoing:
		return "ongoing"
	case StatusFinal:
		return "final"
	default:
		return "scheduled"
	}
}

// Goal is a single scoring event within a game.
type Goal struct {
	ScorerID   int64
	ScorerName string
	Minute     int
	HomeScore  int
	AwayScore  int
	IsWinning  bool
	GoalTypes  []string
	IsHomeTeam bool
	VideoURL   string
}

// Game is an immutable snapshot of one match as returned by the fetcher.
type Game struct {
	HomeTeam   string
	AwayTeam   string
	Time       string // scheduled local start, HH:MM
	Result     string // "3-2", empty while scheduled
	Status     GameStatus
	Overtime   bool
	Shootout   bool
	Tournament string
	PlayedTime int    // seconds of game clock, 0 while scheduled
	Start      string // ISO 8601 UTC start timestamp
	Goals      []Goal
}

// IsLive reports whether the game clock is running.
func (g Game) IsLive() bool {
	return g.Status == StatusOngoing
}

// ResultSuffix is the overtime/shootout marker shown after a final result.
func (g Game) ResultSuffix() string {
	if g.Shootout {
		return " rl"
	}
	if g.Overtime {
		return " ja"
	}
	return ""
}

// FormatPlayedTime renders the game clock as MM:SS.
func FormatPlayedTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// StartDate returns the game's start date in the local timezone, or the
// zero time when the start timestamp does not parse.
func (g Game) StartDate() time.Time {
	t, err := time.Parse(time.RFC3339, g.Start)
	if err != nil {
		return time.Time{}
	}
	return t.Local()
}
