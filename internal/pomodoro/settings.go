package pomodoro

import (
	"fmt"
	"time"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/models"
)

// Mode is the interval the countdown is currently running.
type Mode string

const (
	Focus      Mode = Mode(models.SessionFocus)
	ShortBreak Mode = Mode(models.SessionShortBreak)
	LongBreak  Mode = Mode(models.SessionLongBreak)
)

// Valid reports whether m is one of the three known modes.
func (m Mode) Valid() bool {
	return m == Focus || m == ShortBreak || m == LongBreak
}

// IsBreak reports whether m is a short or long break.
func (m Mode) IsBreak() bool {
	return m == ShortBreak || m == LongBreak
}

// Title returns a human readable name for the mode.
func (m Mode) Title() string {
	switch m {
	case Focus:
		return "Focus"
	case ShortBreak:
		return "Short break"
	case LongBreak:
		return "Long break"
	}

	return string(m)
}

// ParseMode converts a session type string into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown mode %q", s)
	}

	return m, nil
}

const (
	DefaultFocus                   = 25 * time.Minute
	DefaultShortBreak              = 5 * time.Minute
	DefaultLongBreak               = 15 * time.Minute
	DefaultSessionsBeforeLongBreak = 4
)

// Bounds is the inclusive range an interval length is clamped to.
type Bounds struct {
	Min, Max time.Duration
}

// Clamp pulls d into the range.
func (b Bounds) Clamp(d time.Duration) time.Duration {
	return min(max(d, b.Min), b.Max)
}

var (
	FocusBounds      = Bounds{Min: time.Minute, Max: 60 * time.Minute}
	ShortBreakBounds = Bounds{Min: time.Minute, Max: 30 * time.Minute}
	LongBreakBounds  = Bounds{Min: time.Minute, Max: 60 * time.Minute}

	MinSessionsBeforeLongBreak = 2
	MaxSessionsBeforeLongBreak = 10
)

// Settings holds the configurable interval lengths.
type Settings struct {
	Focus                   time.Duration
	ShortBreak              time.Duration
	LongBreak               time.Duration
	SessionsBeforeLongBreak int
}

// DefaultSettings returns the classic 25/5/15 schedule with a long break
// after every fourth focus interval.
func DefaultSettings() Settings {
	return Settings{
		Focus:                   DefaultFocus,
		ShortBreak:              DefaultShortBreak,
		LongBreak:               DefaultLongBreak,
		SessionsBeforeLongBreak: DefaultSessionsBeforeLongBreak,
	}
}

// Clamp returns a copy of s with every value pulled into its valid range.
func (s Settings) Clamp() Settings {
	return Settings{
		Focus:      FocusBounds.Clamp(s.Focus),
		ShortBreak: ShortBreakBounds.Clamp(s.ShortBreak),
		LongBreak:  LongBreakBounds.Clamp(s.LongBreak),
		SessionsBeforeLongBreak: min(
			max(s.SessionsBeforeLongBreak, MinSessionsBeforeLongBreak),
			MaxSessionsBeforeLongBreak,
		),
	}
}

// Duration returns the configured length of mode m.
func (s Settings) Duration(m Mode) time.Duration {
	switch m {
	case ShortBreak:
		return s.ShortBreak
	case LongBreak:
		return s.LongBreak
	default:
		return s.Focus
	}
}

// Seconds returns the configured length of mode m in whole seconds.
func (s Settings) Seconds(m Mode) int {
	return int(s.Duration(m) / time.Second)
}

// Minutes returns the configured length of mode m rounded to whole minutes.
func (s Settings) Minutes(m Mode) int {
	return max(int(s.Duration(m).Round(time.Minute)/time.Minute), 1)
}

// NextBreak returns the break that follows the focus interval numbered
// completed. A long break is due on every multiple of every.
func NextBreak(completed, every int) Mode {
	if every > 0 && completed > 0 && completed%every == 0 {
		return LongBreak
	}

	return ShortBreak
}
