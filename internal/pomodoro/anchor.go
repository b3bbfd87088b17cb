package pomodoro

import "time"

// anchor pins the remaining time of a running interval to a wall clock
// instant. The remaining time is always recomputed from the anchor, never
// decremented per tick, so throttled or suspended tickers do not lose time.
type anchor struct {
	wall      time.Time
	remaining int
	set       bool
}

func newAnchor(now time.Time, remaining int) anchor {
	return anchor{wall: now, remaining: remaining, set: true}
}

func (a anchor) remainingAt(now time.Time) int {
	return RemainingAt(a.wall, a.remaining, now)
}

// RemainingAt computes the seconds left of an interval that had
// startRemaining seconds left at start, as observed at now. A clock that
// moved backwards counts as no time elapsed.
func RemainingAt(start time.Time, startRemaining int, now time.Time) int {
	elapsed := int(now.Sub(start) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}

	return max(0, startRemaining-elapsed)
}
