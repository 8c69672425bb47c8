package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestTournamentsForDate(t *testing.T) {
	tests := []struct {
		name string
		date string
		want []string
	}{
		{
			name: "regular season in january",
			date: "2024-01-15",
			want: []string{TournamentRegular},
		},
		{
			name: "post-season in april",
			date: "2024-04-10",
			want: []string{TournamentPlayoffs, TournamentPlayout, TournamentQualifications, TournamentRegular},
		},
		{
			name: "preseason in august",
			date: "2024-08-07",
			want: []string{TournamentPreseason, TournamentRegular},
		},
		{
			name: "regular season in november",
			date: "2024-11-01",
			want: []string{TournamentRegular},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TournamentsForDate(date(tt.date)))
		})
	}
}

func TestIsHistoricalDate(t *testing.T) {
	tests := []struct {
		name string
		now  string
		date string
		want bool
	}{
		{name: "same month is current", now: "2024-01-15", date: "2024-01-10", want: false},
		{name: "two years back is historical", now: "2024-01-15", date: "2022-03-10", want: true},
		{name: "summer before season start is current", now: "2024-05-01", date: "2024-06-15", want: false},
		{name: "this summer once season started", now: "2024-10-01", date: "2024-07-15", want: true},
		{name: "last summer once season started", now: "2024-10-01", date: "2023-07-15", want: true},
		{name: "current season date in october", now: "2024-10-01", date: "2024-09-20", want: false},
		{name: "spring of the running season", now: "2024-10-01", date: "2024-03-10", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsHistoricalDate(date(tt.now), date(tt.date)))
		})
	}
}

func TestShouldShowCountdown(t *testing.T) {
	assert.True(t, ShouldShowCountdown(nil))
	assert.True(t, ShouldShowCountdown([]Game{{Tournament: TournamentPreseason}}))
	assert.False(t, ShouldShowCountdown([]Game{
		{Tournament: TournamentPreseason},
		{Tournament: TournamentRegular},
	}))
}

func TestCountdownToSeasonStart(t *testing.T) {
	now := time.Date(2024, 8, 20, 14, 0, 0, 0, time.UTC)

	days, ok := CountdownToSeasonStart([]time.Time{
		time.Date(2024, 9, 10, 17, 30, 0, 0, time.UTC),
		time.Date(2024, 9, 4, 17, 30, 0, 0, time.UTC),
	}, now)
	assert.True(t, ok)
	assert.Equal(t, 15, days)

	_, ok = CountdownToSeasonStart(nil, now)
	assert.False(t, ok)

	_, ok = CountdownToSeasonStart([]time.Time{now.AddDate(0, 0, -1)}, now)
	assert.False(t, ok)
}
