package ui

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"liiga-teletext/api"
	"liiga-teletext/teletext"
)

const (
	pageNavDebounce  = 200 * time.Millisecond
	resizeDebounce   = 200 * time.Millisecond
	cacheMonitorTick = 60 * time.Second

	dateNavProbeTimeout = 15 * time.Second
	dateNavMaxBack      = 30
	dateNavMaxForward   = 60

	loadingMessage    = "Haetaan otteluita..."
	refreshingMessage = "Päivitetään..."
	noGamesMessage    = "Ei otteluita"
	navigationHint    = "Käytä Shift + nuolia siirtyäksesi toiselle päivälle"
)

// Fetcher is the single capability the controller needs from the data
// layer.
type Fetcher interface {
	// Fetch returns the games for a date (empty means "pick for me") and
	// the canonical date that produced them.
	Fetch(ctx context.Context, date string) ([]api.Game, string, error)
	// RegularSeasonStarts feeds the season countdown.
	RegularSeasonStarts(ctx context.Context) ([]time.Time, error)
	// LogCacheStats is the out-of-band cache-monitor notification.
	LogCacheStats()
}

// Options fixes the controller's run configuration.
type Options struct {
	Mode               teletext.Mode
	DisableVideoLinks  bool
	Date               string // YYYY-MM-DD override, empty for automatic
	MinRefreshInterval time.Duration
	FetchTimeout       time.Duration
	ShowCountdown      bool
}

// Controller runs the interactive teletext loop: input polling, scheduled
// fetches, change detection and buffered redraws.
type Controller struct {
	fetcher Fetcher
	screen  tcell.Screen
	logger  zerolog.Logger
	opts    Options

	state       *SchedulerState
	page        *teletext.Page
	games       []api.Game
	fingerprint uint64

	events chan tcell.Event
	dirty  bool
	now    func() time.Time

	resizePending    bool
	lastCacheMonitor time.Time
	quitRequested    bool
}

func NewController(fetcher Fetcher, screen tcell.Screen, logger zerolog.Logger, opts Options) *Controller {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 30 * time.Second
	}
	return &Controller{
		fetcher: fetcher,
		screen:  screen,
		logger:  logger,
		opts:    opts,
		state:   NewSchedulerState(),
		now:     time.Now,
	}
}

// Run drives the loop until the user quits or the context is cancelled.
func (c *Controller) Run(ctx context.Context) error {
	c.events = make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go c.screen.ChannelEvents(c.events, quit)

	now := c.now()
	c.state.LastActivity = now
	c.lastCacheMonitor = now

	c.page = c.newPage(nil, c.opts.Date)
	c.page.StartLoading(loadingMessage)
	c.draw()

	if err := c.refresh(ctx, c.opts.Date, true); err != nil {
		return err
	}
	c.draw()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-c.events:
			if err := c.handleEvent(ctx, ev); err != nil {
				return err
			}
		case <-time.After(PollInterval(c.now(), c.state.LastActivity)):
		}
		if c.quitRequested {
			return nil
		}
		if err := c.tick(ctx); err != nil {
			return err
		}
		if c.dirty {
			c.draw()
		}
	}
}

func (c *Controller) handleEvent(ctx context.Context, ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		c.state.LastActivity = c.now()
		return c.handleKey(ctx, ev)
	case *tcell.EventResize:
		c.state.LastResize = c.now()
		c.resizePending = true
	}
	return nil
}

func (c *Controller) handleKey(ctx context.Context, ev *tcell.EventKey) error {
	switch {
	case ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' || ev.Rune() == 'Q':
		c.quitRequested = true
	case ev.Rune() == 'r' || ev.Rune() == 'R':
		if c.state.CanManualRefresh(c.now(), c.isHistorical(), c.page.AutoRefreshDisabled()) {
			c.state.LastManualRefresh = c.now()
			return c.refresh(ctx, c.page.FetchedDate(), true)
		}
	case ev.Key() == tcell.KeyLeft && ev.Modifiers()&tcell.ModShift != 0:
		return c.navigateDate(ctx, -1)
	case ev.Key() == tcell.KeyRight && ev.Modifiers()&tcell.ModShift != 0:
		return c.navigateDate(ctx, 1)
	case ev.Key() == tcell.KeyLeft:
		c.changePage(false)
	case ev.Key() == tcell.KeyRight:
		c.changePage(true)
	}
	return nil
}

func (c *Controller) changePage(forward bool) {
	now := c.now()
	if now.Sub(c.state.LastPageChange) < pageNavDebounce {
		return
	}
	c.state.LastPageChange = now
	if forward {
		c.page.NextPage()
	} else {
		c.page.PreviousPage()
	}
	c.dirty = true
}

func (c *Controller) tick(ctx context.Context) error {
	now := c.now()

	if c.resizePending && now.Sub(c.state.LastResize) >= resizeDebounce {
		c.resizePending = false
		w, h := c.screen.Size()
		c.page.Resize(w, h)
		c.screen.Sync()
		c.dirty = true
	}

	if now.Sub(c.lastCacheMonitor) >= cacheMonitorTick {
		c.lastCacheMonitor = now
		c.fetcher.LogCacheStats()
	}

	if c.page.TickIndicators() {
		c.dirty = true
	}

	if !c.page.AutoRefreshDisabled() &&
		c.state.ShouldAutoFetch(c.games, now, c.opts.MinRefreshInterval, c.isHistorical()) {
		return c.refresh(ctx, c.page.FetchedDate(), false)
	}
	return nil
}

// refresh fetches the given date and swaps in a new page when the data
// actually changed. Retryable failures keep the last good page and raise
// the footer warning; data-shape and not-found failures replace the
// content with an error row.
func (c *Controller) refresh(ctx context.Context, date string, manual bool) error {
	now := c.now()
	c.state.LastAutoRefresh = now

	if manual {
		c.page.StartLoading(loadingMessage)
	} else {
		c.page.StartAutoRefresh(refreshingMessage)
	}
	c.draw()

	fctx, cancel := context.WithTimeout(ctx, c.opts.FetchTimeout)
	games, canonical, err := c.fetcher.Fetch(fctx, date)
	cancel()

	c.page.StopLoading()
	c.page.StopAutoRefresh()
	c.dirty = true

	if err != nil {
		return c.handleFetchError(err, date)
	}

	c.state.RecordSuccess()
	c.page.SetErrorWarning(false)

	fp := Fingerprint(games)
	if fp == c.fingerprint && c.page.FetchedDate() == canonical {
		c.logger.Debug().Str("date", canonical).Msg("fetch returned unchanged data")
		return nil
	}

	LogClockUpdates(c.games, games, c.logger)
	c.games = games
	c.fingerprint = fp
	c.swapPage(games, canonical)
	c.maybeSetCountdown(ctx, games)
	return nil
}

func (c *Controller) handleFetchError(err error, date string) error {
	switch {
	case api.IsRetryable(err):
		delay := c.state.RecordFailure(c.now())
		c.page.SetErrorWarning(true)
		c.logger.Warn().Err(err).Dur("backoff", delay).Msg("retryable fetch failure")
		return nil
	case errors.Is(err, api.ErrPlaceholderDomain):
		return err
	default:
		c.logger.Error().Err(err).Str("date", date).Msg("fetch failed")
		page := c.newPage(nil, date)
		page.AddErrorMessage(errorText(err, date))
		page.AddErrorMessage(navigationHint)
		c.page = page
		c.games = nil
		c.fingerprint = 0
		return nil
	}
}

func errorText(err error, date string) string {
	if api.IsNotFound(err) {
		return noGamesMessage + " " + teletext.FormatDateFI(date)
	}
	return "Virheellinen vastaus palvelimelta"
}

// swapPage builds the replacement page, inheriting the current page index
// so navigation survives data refreshes.
func (c *Controller) swapPage(games []api.Game, date string) {
	page := c.newPage(games, date)
	if len(games) == 0 {
		page.AddErrorMessage(noGamesMessage + " " + teletext.FormatDateFI(date))
		page.AddErrorMessage(navigationHint)
	}
	if c.page != nil && c.page.FetchedDate() == date {
		page.SetCurrentPage(c.page.CurrentPage())
	}
	c.page = page
	c.dirty = true
}

func (c *Controller) newPage(games []api.Game, date string) *teletext.Page {
	w, h := c.screen.Size()
	subheader := "RUNKOSARJA"
	if len(games) > 0 {
		subheader = teletext.SubheaderForTournament(games[0].Tournament)
	}
	page := teletext.NewPage(teletext.DefaultPageNumber, teletext.DefaultTitle, subheader, teletext.PageOptions{
		Mode:              c.opts.Mode,
		DisableVideoLinks: c.opts.DisableVideoLinks,
		ShowFooter:        true,
		Width:             w,
		Height:            h,
	})
	page.SetFetchedDate(date)
	page.SetAutoRefreshDisabled(c.isHistoricalDate(date))

	today := c.now().Format("2006-01-02")
	if len(games) > 0 && date > today {
		page.AddFutureGamesHeader("Seuraavat ottelut " + shortDateFI(date))
	}
	for _, g := range games {
		page.AddGameResult(g)
	}
	return page
}

func (c *Controller) maybeSetCountdown(ctx context.Context, games []api.Game) {
	if !c.opts.ShowCountdown || !api.ShouldShowCountdown(games) {
		return
	}
	fctx, cancel := context.WithTimeout(ctx, c.opts.FetchTimeout)
	starts, err := c.fetcher.RegularSeasonStarts(fctx)
	cancel()
	if err != nil {
		c.logger.Debug().Err(err).Msg("season countdown probe failed")
		return
	}
	if days, ok := api.CountdownToSeasonStart(starts, c.now()); ok {
		c.page.SetSeasonCountdown(days)
		c.dirty = true
	}
}

// navigateDate walks the calendar one day at a time until a date with
// games turns up, bounded backward by the previous-season boundary and 30
// days, forward by 60 days. Any key press between probes cancels the
// search.
func (c *Controller) navigateDate(ctx context.Context, direction int) error {
	now := c.now()
	c.state.LastDateNavigation = now

	base, err := time.Parse("2006-01-02", c.page.FetchedDate())
	if err != nil {
		base = now
	}

	limit := dateNavMaxForward
	if direction < 0 {
		limit = dateNavMaxBack
	}

	c.page.StartLoading(loadingMessage)
	defer func() {
		c.page.StopLoading()
		c.dirty = true
	}()

	for step := 1; step <= limit; step++ {
		if c.searchCancelled() {
			return nil
		}
		candidate := base.AddDate(0, 0, direction*step)
		if direction < 0 && api.IsHistoricalDate(now, candidate) {
			return nil
		}
		date := candidate.Format("2006-01-02")

		c.page.TickIndicators()
		c.draw()

		fctx, cancel := context.WithTimeout(ctx, dateNavProbeTimeout)
		games, canonical, err := c.fetcher.Fetch(fctx, date)
		cancel()
		if err != nil {
			if api.IsRetryable(err) {
				c.state.RecordFailure(c.now())
				c.page.SetErrorWarning(true)
				return nil
			}
			if api.IsNotFound(err) {
				continue
			}
			return c.handleFetchError(err, date)
		}
		if len(games) == 0 {
			continue
		}

		c.state.RecordSuccess()
		c.games = games
		c.fingerprint = Fingerprint(games)
		c.swapPage(games, canonical)
		c.maybeSetCountdown(ctx, games)
		return nil
	}
	return nil
}

// searchCancelled drains pending input during a date search; any key
// cancels, quit keys also stop the whole loop.
func (c *Controller) searchCancelled() bool {
	for {
		select {
		case ev := <-c.events:
			if key, ok := ev.(*tcell.EventKey); ok {
				if key.Key() == tcell.KeyCtrlC || key.Rune() == 'q' || key.Rune() == 'Q' {
					c.quitRequested = true
				}
				return true
			}
		default:
			return false
		}
	}
}

func (c *Controller) isHistorical() bool {
	return c.isHistoricalDate(c.page.FetchedDate())
}

func (c *Controller) isHistoricalDate(date string) bool {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	return api.IsHistoricalDate(c.now(), d)
}

func (c *Controller) draw() {
	DrawFrame(c.screen, c.page.RenderFrame())
	c.dirty = false
}

func shortDateFI(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02.01.")
}
