package ui

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"
	"liiga-teletext/api"
	"liiga-teletext/teletext"
)

// PrintOnce fetches a single time and writes one complete frame to the
// writer: the --once mode. Fetch failures other than a missing API domain
// still produce a frame (an error page) and a nil return, so scripts get
// exit code 0 with something legible on stdout.
func PrintOnce(ctx context.Context, fetcher Fetcher, w io.Writer, width int, opts Options, logger zerolog.Logger) error {
	now := time.Now()

	fctx, cancel := context.WithTimeout(ctx, opts.FetchTimeout)
	games, canonical, err := fetcher.Fetch(fctx, opts.Date)
	cancel()

	if errors.Is(err, api.ErrPlaceholderDomain) {
		return err
	}
	if canonical == "" {
		canonical = opts.Date
	}

	page := teletext.NewPage(teletext.DefaultPageNumber, teletext.DefaultTitle, onceSubheader(games), teletext.PageOptions{
		Mode:              opts.Mode,
		DisableVideoLinks: opts.DisableVideoLinks,
		ShowFooter:        false,
		IgnoreHeightLimit: true,
		Width:             width,
		Height:            1, // unused: pagination is off
	})
	page.SetFetchedDate(canonical)

	if date, perr := time.Parse("2006-01-02", canonical); perr == nil {
		// No effect without a refresh loop, but it keeps the intent visible.
		page.SetAutoRefreshDisabled(api.IsHistoricalDate(now, date))
	}

	switch {
	case err != nil:
		logger.Error().Err(err).Msg("fetch failed in once mode")
		page.AddErrorMessage(errorText(err, canonical))
	case len(games) == 0:
		page.AddErrorMessage(noGamesMessage + " " + teletext.FormatDateFI(canonical))
	default:
		today := now.Format("2006-01-02")
		if canonical > today {
			page.AddFutureGamesHeader("Seuraavat ottelut " + shortDateFI(canonical))
		}
		for _, g := range games {
			page.AddGameResult(g)
		}
	}

	if err := page.RenderBuffered(w); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

func onceSubheader(games []api.Game) string {
	if len(games) > 0 {
		return teletext.SubheaderForTournament(games[0].Tournament)
	}
	return "RUNKOSARJA"
}
