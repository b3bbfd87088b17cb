package pomodoro

import (
	"slices"
	"time"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/models"
)

// Status is the run state of the countdown, orthogonal to its Mode.
type Status int

const (
	Idle Status = iota
	Running
	Paused
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "idle"
	}
}

// State is a point-in-time copy of the timer. It is safe to keep and read
// after the controller has moved on.
type State struct {
	Task           TaskAssociation
	Mode           Mode
	Day            string
	CompletedToday []models.CompletedSession
	Settings       Settings
	Remaining      int
	SessionCount   int
	Running        bool
	Paused         bool
}

// Status derives the run state from the Running and Paused flags.
func (s State) Status() Status {
	switch {
	case s.Running && s.Paused:
		return Paused
	case s.Running:
		return Running
	default:
		return Idle
	}
}

// Total returns the full length of the current mode in seconds.
func (s State) Total() int {
	return s.Settings.Seconds(s.Mode)
}

// Progress returns the fraction of the current interval already elapsed.
func (s State) Progress() float64 {
	total := s.Total()
	if total <= 0 {
		return 0
	}

	return 1 - float64(s.Remaining)/float64(total)
}

// Cycle returns the position of the current focus interval within the long
// break cycle, starting at 1.
func (s State) Cycle() int {
	every := s.Settings.SessionsBeforeLongBreak
	if every <= 0 {
		return s.SessionCount + 1
	}

	if s.Mode.IsBreak() {
		if c := s.SessionCount % every; c != 0 {
			return c
		}

		return every
	}

	return s.SessionCount%every + 1
}

// FocusMinutesToday sums the length of the focus intervals finished today.
func (s State) FocusMinutesToday() int {
	var total int

	for _, c := range s.CompletedToday {
		total += c.DurationMinutes
	}

	return total
}

func (s State) clone() State {
	s.CompletedToday = slices.Clone(s.CompletedToday)

	return s
}

// freshState is the idle focus state a new day starts with.
func freshState(day string, settings Settings) State {
	return State{
		Mode:      Focus,
		Remaining: settings.Seconds(Focus),
		Day:       day,
	}
}

func dayKey(t time.Time) string {
	return t.Format(models.DateLayout)
}
