package api

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	cacheSize = 64

	// Responses with a running game clock go stale fast; finished days
	// barely change and can be kept for the whole session's typical length.
	liveTTL      = 15 * time.Second
	completedTTL = 30 * time.Minute
)

// responseCache keeps per-(tournament, date) game lists so that date
// navigation and merged multi-tournament fetches do not hammer the API.
type responseCache struct {
	live      *expirable.LRU[string, []Game]
	completed *expirable.LRU[string, []Game]
}

func newResponseCache() *responseCache {
	return &responseCache{
		live:      expirable.NewLRU[string, []Game](cacheSize, nil, liveTTL),
		completed: expirable.NewLRU[string, []Game](cacheSize, nil, completedTTL),
	}
}

func cacheKey(tournament, date string) string {
	return fmt.Sprintf("%s|%s", tournament, date)
}

func (c *responseCache) get(tournament, date string) ([]Game, bool) {
	key := cacheKey(tournament, date)
	if games, ok := c.live.Get(key); ok {
		return games, true
	}
	return c.completed.Get(key)
}

func (c *responseCache) put(tournament, date string, games []Game) {
	key := cacheKey(tournament, date)
	if hasLiveGames(games) {
		c.live.Add(key, games)
		return
	}
	c.completed.Add(key, games)
}

func (c *responseCache) sizes() (live, completed int) {
	return c.live.Len(), c.completed.Len()
}

func hasLiveGames(games []Game) bool {
	for _, g := range games {
		if g.IsLive() {
			return true
		}
	}
	return false
}
