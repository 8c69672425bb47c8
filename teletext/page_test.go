package teletext

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"liiga-teletext/api"
)

func findSpan(f Frame, text string) (Span, bool) {
	for _, s := range f.Spans {
		if s.Text == text {
			return s, true
		}
	}
	return Span{}, false
}

func frameContains(f Frame, text string) bool {
	for _, s := range f.Spans {
		if strings.Contains(s.Text, text) {
			return true
		}
	}
	return false
}

func interactivePage(mode Mode, width, height int) *Page {
	return NewPage(DefaultPageNumber, DefaultTitle, "RUNKOSARJA", PageOptions{
		Mode:       mode,
		ShowFooter: true,
		Width:      width,
		Height:     height,
	})
}

func finalGame() api.Game {
	return api.Game{
		HomeTeam: "Tappara",
		AwayTeam: "HIFK",
		Result:   "3-2",
		Status:   api.StatusFinal,
		Overtime: true,
		Goals: []api.Goal{
			{ScorerName: "Virtanen", Minute: 14, HomeScore: 1, IsHomeTeam: true, VideoURL: "https://example.com/clip/1"},
			{ScorerName: "Koivu", Minute: 32, HomeScore: 1, AwayScore: 1, GoalTypes: []string{"YV"}},
			{ScorerName: "Lehtonen", Minute: 63, HomeScore: 3, AwayScore: 2, IsHomeTeam: true, IsWinning: true},
		},
	}
}

func TestRenderFrameHeader(t *testing.T) {
	p := interactivePage(ModeNormal, 80, 24)
	p.SetFetchedDate("2024-01-15")
	f := p.RenderFrame()

	title, ok := findSpan(f, " JÄÄKIEKKO ")
	require.True(t, ok)
	assert.Equal(t, 0, title.X)
	assert.Equal(t, 0, title.Y)
	assert.Equal(t, ColorTitleFg, title.Style.FG)
	assert.Equal(t, ColorTitleBg, title.Style.BG)

	banner, ok := findSpan(f, " SM-LIIGA 221 15.01.2024 ")
	require.True(t, ok)
	assert.Equal(t, 55, banner.X)
	assert.Equal(t, 0, banner.Y)
	assert.Equal(t, ColorHeaderBg, banner.Style.BG)

	sub, ok := findSpan(f, " RUNKOSARJA ")
	require.True(t, ok)
	assert.Equal(t, 1, sub.Y)
	assert.Equal(t, ColorHeaderBg, sub.Style.BG)
}

func TestRenderFrameFinalGame(t *testing.T) {
	p := interactivePage(ModeNormal, 80, 24)
	p.AddGameResult(finalGame())
	f := p.RenderFrame()

	home, ok := findSpan(f, "Tappara")
	require.True(t, ok)
	assert.Equal(t, ContentMargin, home.X)
	assert.Equal(t, headerRows, home.Y)

	away, ok := findSpan(f, "HIFK")
	require.True(t, ok)
	assert.Equal(t, 30, away.X)
	assert.Equal(t, home.Y, away.Y)

	result, ok := findSpan(f, "3-2 ja")
	require.True(t, ok)
	assert.Equal(t, 72, result.X)
	assert.Equal(t, home.Y, result.Y)
	assert.Equal(t, ColorResult, result.Style.FG)

	// Home scorers on the left, away on the right, interleaved by row.
	first, ok := findSpan(f, "14 Virtanen")
	require.True(t, ok)
	assert.Equal(t, ContentMargin, first.X)
	assert.Equal(t, home.Y+1, first.Y)
	assert.Equal(t, ColorHomeScorer, first.Style.FG)

	awayGoal, ok := findSpan(f, "32 Koivu")
	require.True(t, ok)
	assert.Equal(t, 30, awayGoal.X)
	assert.Equal(t, home.Y+1, awayGoal.Y)

	winner, ok := findSpan(f, "63 Lehtonen")
	require.True(t, ok)
	assert.Equal(t, home.Y+2, winner.Y)
	assert.Equal(t, ColorWinningGoal, winner.Style.FG)

	icon, ok := findSpan(f, PlayIcon)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/clip/1", icon.Style.Link)
	assert.Equal(t, ContentMargin+p.layout.PlayIconColumn+1, icon.X)

	tags, ok := findSpan(f, "YV")
	require.True(t, ok)
	assert.Equal(t, ColorGoalType, tags.Style.FG)
}

func TestRenderFrameDisabledLinksOmitIcons(t *testing.T) {
	p := NewPage(DefaultPageNumber, DefaultTitle, "RUNKOSARJA", PageOptions{
		Mode:              ModeNormal,
		DisableVideoLinks: true,
		ShowFooter:        true,
		Width:             80,
		Height:            24,
	})
	p.AddGameResult(finalGame())
	f := p.RenderFrame()

	_, ok := findSpan(f, PlayIcon)
	assert.False(t, ok)
}

func TestRenderFrameOngoingGame(t *testing.T) {
	p := interactivePage(ModeNormal, 80, 24)
	p.AddGameResult(api.Game{
		HomeTeam:   "JYP",
		AwayTeam:   "Ilves",
		Result:     "1-0",
		Status:     api.StatusOngoing,
		PlayedTime: 1454,
	})
	f := p.RenderFrame()

	clock, ok := findSpan(f, "24:14")
	require.True(t, ok)
	assert.Equal(t, p.layout.TimeColumn, clock.X)

	result, ok := findSpan(f, "1-0")
	require.True(t, ok)
	assert.Equal(t, ColorResult, result.Style.FG)
}

func TestRenderFrameScheduledGame(t *testing.T) {
	p := interactivePage(ModeNormal, 80, 24)
	p.AddGameResult(api.Game{HomeTeam: "JYP", AwayTeam: "Ilves", Time: "19:30", Status: api.StatusScheduled})
	f := p.RenderFrame()

	start, ok := findSpan(f, "19:30")
	require.True(t, ok)
	assert.Equal(t, p.layout.ScoreColumn+scoreCellWidth-5, start.X)
}

func TestCompactModeLine(t *testing.T) {
	p := interactivePage(ModeCompact, 80, 24)
	p.AddGameResult(api.Game{HomeTeam: "Tappara", AwayTeam: "HIFK", Result: "3-2", Status: api.StatusFinal})
	p.AddGameResult(api.Game{HomeTeam: "JYP", AwayTeam: "Ilves", Time: "19:30", Status: api.StatusScheduled})
	f := p.RenderFrame()

	pair, ok := findSpan(f, "TAP-IFK ")
	require.True(t, ok)
	assert.Equal(t, ContentMargin, pair.X)

	score, ok := findSpan(f, " 3-2  ")
	require.True(t, ok)
	assert.Equal(t, pair.X+compactTagPairWidth, score.X)
	assert.Equal(t, ColorResult, score.Style.FG)

	second, ok := findSpan(f, "JYP-ILV ")
	require.True(t, ok)
	assert.Equal(t, pair.X+compactTagPairWidth+compactScoreWidth+len(compactGameSeparator), second.X)
	assert.Equal(t, pair.Y, second.Y)

	start, ok := findSpan(f, "19:30 ")
	require.True(t, ok)
	assert.Equal(t, ColorText, start.Style.FG)
}

func TestCompactModeTooNarrow(t *testing.T) {
	p := interactivePage(ModeCompact, 10, 24)
	p.AddGameResult(finalGame())
	f := p.RenderFrame()

	assert.True(t, frameContains(f, "Pääte on liian kapea"))
	assert.True(t, frameContains(f, "Levennä ikkunaa"))
}

func TestCompactHeaderAbbreviatesFutureGames(t *testing.T) {
	p := interactivePage(ModeCompact, 80, 24)
	p.AddFutureGamesHeader("Seuraavat ottelut 18.01.")
	p.AddGameResult(api.Game{HomeTeam: "JYP", AwayTeam: "Ilves", Time: "19:30", Status: api.StatusScheduled})
	f := p.RenderFrame()

	assert.True(t, frameContains(f, "Seur. ottelut 18.01."))
	assert.False(t, frameContains(f, "Seuraavat ottelut"))
}

func TestWideModeTwoColumns(t *testing.T) {
	p := interactivePage(ModeWide, 140, 30)
	teams := [][2]string{{"Tappara", "HIFK"}, {"Kärpät", "Lukko"}, {"JYP", "Ilves"}, {"TPS", "KalPa"}}
	for _, pair := range teams {
		p.AddGameResult(api.Game{HomeTeam: pair[0], AwayTeam: pair[1], Result: "1-0", Status: api.StatusFinal})
	}
	f := p.RenderFrame()

	left, ok := findSpan(f, "Tappara")
	require.True(t, ok)
	assert.Equal(t, ContentMargin, left.X)
	assert.Equal(t, headerRows, left.Y)

	right, ok := findSpan(f, "JYP")
	require.True(t, ok)
	assert.Equal(t, WideColumnWidth+WideColumnGap+ContentMargin, right.X)
	assert.Equal(t, headerRows, right.Y)

	second, ok := findSpan(f, "Kärpät")
	require.True(t, ok)
	assert.Equal(t, ContentMargin, second.X)
	assert.Greater(t, second.Y, left.Y)
}

func TestWideModeFallsBackWhenNarrow(t *testing.T) {
	p := interactivePage(ModeWide, 100, 24)
	p.AddGameResult(finalGame())
	f := p.RenderFrame()

	assert.True(t, frameContains(f, "Pääte on liian kapea kahdelle palstalle"))
	// Content still renders, just in one column.
	_, ok := findSpan(f, "Tappara")
	assert.True(t, ok)
}

func TestPaginationSplitsAcrossPages(t *testing.T) {
	p := interactivePage(ModeNormal, 80, 24)
	for i := 0; i < 15; i++ {
		p.AddGameResult(api.Game{HomeTeam: "Tappara", AwayTeam: "HIFK", Time: "18:30", Status: api.StatusScheduled})
	}

	require.Equal(t, 2, p.TotalPages())
	assert.Equal(t, 0, p.CurrentPage())

	// Every page fits the content budget and no game straddles a boundary.
	budget := 24 - p.reservedRows()
	for _, page := range p.paginate() {
		used := 0
		for _, u := range page {
			used += u.height
		}
		assert.LessOrEqual(t, used, budget)
	}
}

func TestPageNavigationWraps(t *testing.T) {
	p := interactivePage(ModeNormal, 80, 24)
	for i := 0; i < 15; i++ {
		p.AddGameResult(api.Game{HomeTeam: "Tappara", AwayTeam: "HIFK", Time: "18:30", Status: api.StatusScheduled})
	}
	require.Equal(t, 2, p.TotalPages())

	p.NextPage()
	assert.Equal(t, 1, p.CurrentPage())
	p.NextPage()
	assert.Equal(t, 0, p.CurrentPage())
	p.PreviousPage()
	assert.Equal(t, 1, p.CurrentPage())

	pager, ok := findSpan(p.RenderFrame(), "2/2")
	require.True(t, ok)
	assert.Equal(t, 1, pager.Y)
}

func TestSinglePageNeverNavigates(t *testing.T) {
	p := interactivePage(ModeNormal, 80, 24)
	p.AddGameResult(finalGame())

	require.Equal(t, 1, p.TotalPages())
	p.NextPage()
	assert.Equal(t, 0, p.CurrentPage())
	p.PreviousPage()
	assert.Equal(t, 0, p.CurrentPage())

	_, ok := findSpan(p.RenderFrame(), "1/1")
	assert.False(t, ok)
}

func TestResizeClampsCurrentPage(t *testing.T) {
	p := interactivePage(ModeNormal, 80, 24)
	for i := 0; i < 15; i++ {
		p.AddGameResult(api.Game{HomeTeam: "Tappara", AwayTeam: "HIFK", Time: "18:30", Status: api.StatusScheduled})
	}
	p.NextPage()
	require.Equal(t, 1, p.CurrentPage())

	p.Resize(80, 60)
	assert.Equal(t, 1, p.TotalPages())
	assert.Equal(t, 0, p.CurrentPage())
}

func TestSetCurrentPageRejectsOutOfRange(t *testing.T) {
	p := interactivePage(ModeNormal, 80, 24)
	p.AddGameResult(finalGame())

	p.SetCurrentPage(5)
	assert.Equal(t, 0, p.CurrentPage())
	p.SetCurrentPage(-1)
	assert.Equal(t, 0, p.CurrentPage())
}

func TestIgnoreHeightLimitRendersEverything(t *testing.T) {
	p := NewPage(DefaultPageNumber, DefaultTitle, "RUNKOSARJA", PageOptions{
		Mode:              ModeNormal,
		IgnoreHeightLimit: true,
		Width:             80,
		Height:            1,
	})
	for i := 0; i < 15; i++ {
		p.AddGameResult(api.Game{HomeTeam: "Tappara", AwayTeam: "HIFK", Time: "18:30", Status: api.StatusScheduled})
	}

	assert.Equal(t, 1, p.TotalPages())
	f := p.RenderFrame()
	count := 0
	for _, s := range f.Spans {
		if s.Text == "Tappara" {
			count++
		}
	}
	assert.Equal(t, 15, count)
}

func TestFooterFlags(t *testing.T) {
	p := interactivePage(ModeNormal, 80, 24)
	p.AddGameResult(finalGame())
	p.SetAutoRefreshDisabled(true)
	p.SetErrorWarning(true)
	p.StartLoading("Päivitetään...")
	f := p.RenderFrame()

	var footer Span
	found := false
	for _, s := range f.Spans {
		if s.Y == 23 && strings.HasPrefix(s.Text, "q=Lopeta") {
			footer, found = s, true
		}
	}
	require.True(t, found)
	assert.Contains(t, footer.Text, "(Ei päivity)")
	assert.Contains(t, footer.Text, "Päivitetään...")
	assert.Contains(t, footer.Text, "⚠")
	assert.NotContains(t, footer.Text, "←→=Sivut")
}

func TestSeasonCountdownAboveFooter(t *testing.T) {
	p := interactivePage(ModeNormal, 80, 24)
	p.SetSeasonCountdown(15)
	f := p.RenderFrame()

	countdown, ok := findSpan(f, "Runkosarjan alkuun 15 päivää")
	require.True(t, ok)
	assert.Equal(t, 22, countdown.Y)
	assert.Equal(t, ColorCountdown, countdown.Style.FG)
}

func TestRenderBufferedIsDeterministic(t *testing.T) {
	p := NewPage(DefaultPageNumber, DefaultTitle, "RUNKOSARJA", PageOptions{
		Mode:              ModeNormal,
		IgnoreHeightLimit: true,
		Width:             80,
		Height:            1,
	})
	p.AddGameResult(finalGame())
	p.SetFetchedDate("2024-01-15")

	var first, second bytes.Buffer
	require.NoError(t, p.RenderBuffered(&first))
	require.NoError(t, p.RenderBuffered(&second))
	assert.Equal(t, first.String(), second.String())
	assert.Contains(t, first.String(), "Tappara")
}

func TestFormatDateFI(t *testing.T) {
	assert.Equal(t, "15.01.2024", FormatDateFI("2024-01-15"))
	assert.Equal(t, "not-a-date", FormatDateFI("not-a-date"))
}
