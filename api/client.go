package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	gamesPath    = "/games"
	schedulePath = "/schedule"

	// Forward search bound when the requested date has no games.
	maxForwardSearchDays = 60

	// Local-time cutoff for the "no date given" case: before noon we show
	// yesterday's results, after noon today's games.
	morningCutoffHour = 12
)

// placeholderDomains disable network calls entirely so test and CI runs
// cannot hang on a real fetch.
var placeholderDomains = map[string]bool{
	"":            true,
	"placeholder": true,
	"test":        true,
	"unset":       true,
}

// Client fetches Liiga games from the JSON API. It owns its HTTP client
// and a per-tournament response cache; callers only ever see the merged,
// deduplicated game list for a date.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     zerolog.Logger
	now        func() time.Time
	cache      *responseCache
}

// NewClient builds a client for the given API domain. The domain may be a
// placeholder value, in which case every fetch fails fast with
// ErrPlaceholderDomain.
func NewClient(apiDomain string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(apiDomain, "/"),
		logger:     logger,
		now:        time.Now,
		cache:      newResponseCache(),
	}
}

func (c *Client) isPlaceholder() bool {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(c.baseURL, "https://"), "http://")
	return placeholderDomains[strings.ToLower(trimmed)]
}

// Fetch returns the games for the given date (YYYY-MM-DD) together with
// the canonical date that actually produced them. An empty date means
// "pick for me": yesterday's results before noon, today's games after,
// searching forward for the next date with games when today is empty.
func (c *Client) Fetch(ctx context.Context, date string) ([]Game, string, error) {
	if c.isPlaceholder() {
		return nil, "", ErrPlaceholderDomain
	}

	if date != "" {
		games, err := c.fetchDate(ctx, date)
		if err != nil {
			return nil, "", err
		}
		return games, date, nil
	}

	now := c.now()
	chosen := now
	if now.Hour() < morningCutoffHour {
		chosen = now.AddDate(0, 0, -1)
	}
	chosenStr := chosen.Format("2006-01-02")

	games, err := c.fetchDate(ctx, chosenStr)
	if err != nil {
		return nil, "", err
	}
	if len(games) > 0 {
		return games, chosenStr, nil
	}

	next, err := c.nextDateWithGames(ctx, now)
	if err != nil {
		return nil, chosenStr, err
	}
	games, err = c.fetchDate(ctx, next)
	if err != nil {
		return nil, "", err
	}
	return games, next, nil
}

// fetchDate merges every plausible tournament bucket for the date into one
// deduplicated, start-time ordered game list.
func (c *Client) fetchDate(ctx context.Context, date string) ([]Game, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	var merged []Game
	seen := make(map[string]bool)
	for _, tournament := range TournamentsForDate(day) {
		games, err := c.fetchTournament(ctx, tournament, date)
		if err != nil {
			if IsNotFound(err) {
				continue
			}
			return nil, err
		}
		for _, g := range games {
			key := g.HomeTeam + "|" + g.AwayTeam + "|" + g.Start
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, g)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Start < merged[j].Start
	})
	return merged, nil
}

func (c *Client) fetchTournament(ctx context.Context, tournament, date string) ([]Game, error) {
	if games, ok := c.cache.get(tournament, date); ok {
		return games, nil
	}

	url := fmt.Sprintf("%s%s?tournament=%s&date=%s", c.baseURL, gamesPath, tournament, date)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create games request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch games: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: res.StatusCode, URL: url}
	}

	var wire []scheduleGame
	if err := json.NewDecoder(res.Body).Decode(&wire); err != nil {
		return nil, &DecodeError{URL: url, Err: err}
	}

	games := make([]Game, 0, len(wire))
	for _, sg := range wire {
		games = append(games, sg.toGame(tournament))
	}
	c.cache.put(tournament, date, games)
	c.logger.Debug().Str("tournament", tournament).Str("date", date).Int("games", len(games)).Msg("fetched games")
	return games, nil
}

// nextDateWithGames consults the schedule endpoints for the earliest game
// starting after the given moment, bounded to maxForwardSearchDays.
func (c *Client) nextDateWithGames(ctx context.Context, after time.Time) (string, error) {
	limit := after.AddDate(0, 0, maxForwardSearchDays)
	var earliest time.Time
	for _, tournament := range TournamentsForDate(after) {
		starts, err := c.scheduleStarts(ctx, tournament)
		if err != nil {
			if IsNotFound(err) {
				continue
			}
			return "", err
		}
		for _, s := range starts {
			if s.After(after) && s.Before(limit) && (earliest.IsZero() || s.Before(earliest)) {
				earliest = s
			}
		}
	}
	if earliest.IsZero() {
		return "", ErrNoGames
	}
	return earliest.Local().Format("2006-01-02"), nil
}

// RegularSeasonStarts returns the known start timestamps of upcoming
// regular-season games, used for the season countdown.
func (c *Client) RegularSeasonStarts(ctx context.Context) ([]time.Time, error) {
	if c.isPlaceholder() {
		return nil, ErrPlaceholderDomain
	}
	return c.scheduleStarts(ctx, TournamentRegular)
}

func (c *Client) scheduleStarts(ctx context.Context, tournament string) ([]time.Time, error) {
	url := fmt.Sprintf("%s%s?tournament=%s", c.baseURL, schedulePath, tournament)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: res.StatusCode, URL: url}
	}

	var wire []struct {
		Start string `json:"start"`
	}
	if err := json.NewDecoder(res.Body).Decode(&wire); err != nil {
		return nil, &DecodeError{URL: url, Err: err}
	}

	starts := make([]time.Time, 0, len(wire))
	for _, entry := range wire {
		t, err := time.Parse(time.RFC3339, entry.Start)
		if err != nil {
			continue
		}
		starts = append(starts, t)
	}
	return starts, nil
}

// LogCacheStats is the cache-monitor hook: the controller calls it on a
// slow tick so cache pressure shows up in the logs. Expired entries are
// reaped by the cache itself.
func (c *Client) LogCacheStats() {
	live, completed := c.cache.sizes()
	c.logger.Debug().Int("live_entries", live).Int("completed_entries", completed).Msg("response cache stats")
}
