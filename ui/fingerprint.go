// Package ui drives the interactive teletext display: the tcell event
// loop, the refresh scheduler, change detection, and the one-shot printer.
package ui

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"
	"liiga-teletext/api"
)

// Fingerprint digests the fields of a game list that matter for update
// detection. Derived and low-signal fields (scorer names, goal types,
// winning-goal flags, video URLs) are deliberately excluded so cosmetic
// shifts do not trigger redraws, while played_time stays in so a running
// clock counts as a change.
func Fingerprint(games []api.Game) uint64 {
	h := xxhash.New()
	buf := make([]byte, 0, 64)

	writeStr := func(s string) {
		h.WriteString(s)
		h.Write([]byte{0x1f})
	}
	writeInt := func(n int64) {
		buf = strconv.AppendInt(buf[:0], n, 10)
		h.Write(buf)
		h.Write([]byte{0x1f})
	}
	writeBool := func(b bool) {
		if b {
			h.Write([]byte{1, 0x1f})
		} else {
			h.Write([]byte{0, 0x1f})
		}
	}

	for _, g := range games {
		writeStr(g.HomeTeam)
		writeStr(g.AwayTeam)
		writeStr(g.Result)
		writeStr(g.Time)
		writeInt(int64(g.Status))
		writeBool(g.Overtime)
		writeBool(g.Shootout)
		writeStr(g.Tournament)
		writeInt(int64(g.PlayedTime))
		writeStr(g.Start)
		for _, goal := range g.Goals {
			writeInt(goal.ScorerID)
			writeInt(int64(goal.Minute))
			writeInt(int64(goal.HomeScore))
			writeInt(int64(goal.AwayScore))
		}
		h.Write([]byte{0x1e})
	}
	return h.Sum64()
}

// AllScheduled reports whether every game is still waiting to start. The
// scheduler uses it to stop polling a day that cannot change yet.
func AllScheduled(games []api.Game) bool {
	for _, g := range games {
		if g.Status != api.StatusScheduled {
			return false
		}
	}
	return len(games) > 0
}

// LogClockUpdates emits a debug event for every ongoing game whose clock
// advanced between two fetches.
func LogClockUpdates(prev, curr []api.Game, logger zerolog.Logger) {
	prevTimes := make(map[string]int, len(prev))
	for _, g := range prev {
		if g.IsLive() {
			prevTimes[g.HomeTeam+"|"+g.AwayTeam] = g.PlayedTime
		}
	}
	for _, g := range curr {
		if !g.IsLive() {
			continue
		}
		if before, ok := prevTimes[g.HomeTeam+"|"+g.AwayTeam]; ok && g.PlayedTime > before {
			logger.Debug().
				Str("home", g.HomeTeam).
				Str("away", g.AwayTeam).
				Int("played_time", g.PlayedTime).
				Msg("clock update")
		}
	}
}
