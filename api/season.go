package api

import (
	"time"
)

// TournamentsForDate lists the tournament buckets worth querying for a
// date, most likely bucket first. Post-season runs March through June,
// preseason July and August, the regular season the rest of the year.
func TournamentsForDate(date time.Time) []string {
	switch m := date.Month(); {
	case m >= time.March && m <= time.June:
		return []string{TournamentPlayoffs, TournamentPlayout, TournamentQualifications, TournamentRegular}
	case m == time.July || m == time.August:
		return []string{TournamentPreseason, TournamentRegular}
	default:
		return []string{TournamentRegular}
	}
}

// IsHistoricalDate reports whether the date belongs to a previous season.
// The rule is purely calendar based: once the new season has started
// (September onward), the June-August off-season months of the current and
// the previous year count as historical, and anything two or more years
// back always does. The API is never consulted.
func IsHistoricalDate(now, date time.Time) bool {
	if date.Year() <= now.Year()-2 {
		return true
	}
	if now.Month() < time.September {
		return false
	}
	offSeason := date.Month() >= time.June && date.Month() <= time.August
	if offSeason && (date.Year() == now.Year() || date.Year() == now.Year()-1) {
		return true
	}
	return false
}

// ShouldShowCountdown reports whether a season countdown makes sense for
// the game set: only outside the regular season.
func ShouldShowCountdown(games []Game) bool {
	for _, g := range games {
		if g.Tournament == TournamentRegular {
			return false
		}
	}
	return true
}

// CountdownToSeasonStart counts whole days from today (UTC) to the
// earliest known regular-season start timestamp, as reported by the
// schedule probe. The second return is false when no future start exists.
func CountdownToSeasonStart(starts []time.Time, now time.Time) (int, bool) {
	var earliest time.Time
	for _, s := range starts {
		if earliest.IsZero() || s.Before(earliest) {
			earliest = s
		}
	}
	if earliest.IsZero() {
		return 0, false
	}
	today := now.UTC().Truncate(24 * time.Hour)
	startDay := earliest.UTC().Truncate(24 * time.Hour)
	days := int(startDay.Sub(today).Hours() / 24)
	if days <= 0 {
		return 0, false
	}
	return days, true
}
