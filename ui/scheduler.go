package ui

import (
	"time"

	"github.com/cenkalti/backoff/v4"
	"liiga-teletext/api"
)

const (
	intervalLive      = 15 * time.Second
	intervalNearStart = 30 * time.Second
	intervalIdle      = 60 * time.Second

	// Window around a scheduled start during which polling tightens.
	nearStartBefore = 5 * time.Minute
	nearStartAfter  = 10 * time.Minute

	manualRefreshCooldown = 15 * time.Second

	retryInitialInterval = 2 * time.Second
	retryMaxInterval     = 10 * time.Second
	retryJitter          = 0.2
)

// SchedulerState carries the timers and backoff the refresh scheduler
// decides from. Decisions are pure functions of this state, the game list
// and a clock, so they test without sleeping.
type SchedulerState struct {
	LastManualRefresh  time.Time
	LastAutoRefresh    time.Time
	LastPageChange     time.Time
	LastDateNavigation time.Time
	LastResize         time.Time
	LastActivity       time.Time
	LastRateLimitHit   time.Time

	retryDelay time.Duration
	backoff    *backoff.ExponentialBackOff
}

// NewSchedulerState initializes the backoff policy: 2 s doubling to a 10 s
// cap with ±20% jitter.
func NewSchedulerState() *SchedulerState {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = retryInitialInterval
	b.MaxInterval = retryMaxInterval
	b.Multiplier = 2
	b.RandomizationFactor = retryJitter
	b.MaxElapsedTime = 0
	b.Reset()
	return &SchedulerState{backoff: b}
}

// TargetInterval picks the polling cadence from the game states: tight
// while a clock runs, medium around scheduled starts, slow otherwise.
func TargetInterval(games []api.Game, now time.Time) time.Duration {
	for _, g := range games {
		if g.IsLive() {
			return intervalLive
		}
	}
	for _, g := range games {
		if g.Status != api.StatusScheduled {
			continue
		}
		start := g.StartDate()
		if start.IsZero() {
			continue
		}
		if now.After(start.Add(-nearStartBefore)) && now.Before(start.Add(nearStartAfter)) {
			return intervalNearStart
		}
	}
	return intervalIdle
}

// MinInterval is the floor between automatic fetches: the user override
// when set, otherwise scaled by how many games a fetch has to assemble.
func MinInterval(gameCount int, override time.Duration) time.Duration {
	if override > 0 {
		return override
	}
	switch {
	case gameCount <= 3:
		return 10 * time.Second
	case gameCount <= 5:
		return 20 * time.Second
	default:
		return 30 * time.Second
	}
}

// ShouldAutoFetch is the per-tick auto-refresh decision. Every guard must
// pass; historical dates never refresh, and a day of far-off scheduled
// games stops polling entirely until the list empties.
func (s *SchedulerState) ShouldAutoFetch(games []api.Game, now time.Time, override time.Duration, historical bool) bool {
	if historical {
		return false
	}
	// All-scheduled suppression, overridden when there is nothing to show.
	if AllScheduled(games) && TargetInterval(games, now) == intervalIdle {
		return false
	}
	if now.Sub(s.LastAutoRefresh) < TargetInterval(games, now) {
		return false
	}
	if now.Sub(s.LastAutoRefresh) < MinInterval(len(games), override) {
		return false
	}
	if s.retryDelay > 0 && now.Sub(s.LastRateLimitHit) < s.retryDelay {
		return false
	}
	return true
}

// CanManualRefresh gates the 'r' key: 15 s cooldown, never on historical
// dates or pages that opted out of refreshing.
func (s *SchedulerState) CanManualRefresh(now time.Time, historical, autoRefreshDisabled bool) bool {
	if historical || autoRefreshDisabled {
		return false
	}
	return now.Sub(s.LastManualRefresh) >= manualRefreshCooldown
}

// RecordFailure advances the retry backoff after a retryable error and
// returns the jittered delay now in force.
func (s *SchedulerState) RecordFailure(now time.Time) time.Duration {
	s.LastRateLimitHit = now
	s.retryDelay = s.backoff.NextBackOff()
	return s.retryDelay
}

// RecordSuccess resets the backoff.
func (s *SchedulerState) RecordSuccess() {
	s.retryDelay = 0
	s.backoff.Reset()
}

// RetryDelay is the delay currently imposed by the backoff, zero when
// healthy.
func (s *SchedulerState) RetryDelay() time.Duration { return s.retryDelay }

// PollInterval is the adaptive input-poll cadence: snappy right after
// activity, relaxed when idle.
func PollInterval(now, lastActivity time.Time) time.Duration {
	idle := now.Sub(lastActivity)
	switch {
	case idle < 5*time.Second:
		return 50 * time.Millisecond
	case idle < 30*time.Second:
		return 200 * time.Millisecond
	default:
		return 500 * time.Millisecond
	}
}
