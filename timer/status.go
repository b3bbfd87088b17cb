package timer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/osutil"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/pomodoro"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/timeutil"
)

// Status is the summary of a live timer written to the status file so that
// other processes can report on it.
type Status struct {
	UpdatedAt               time.Time     `json:"updated_at"`
	Mode                    pomodoro.Mode `json:"mode"`
	State                   string        `json:"state"`
	Task                    string        `json:"task,omitempty"`
	Remaining               int           `json:"remaining"`
	Cycle                   int           `json:"cycle"`
	SessionsBeforeLongBreak int           `json:"sessions_before_long_break"`
	SessionCount            int           `json:"session_count"`
}

// NewStatus captures st as seen at now.
func NewStatus(st pomodoro.State, now time.Time) Status {
	return Status{
		UpdatedAt:               now,
		Mode:                    st.Mode,
		State:                   st.Status().String(),
		Task:                    st.Task.Label(),
		Remaining:               st.Remaining,
		Cycle:                   st.Cycle(),
		SessionsBeforeLongBreak: st.Settings.SessionsBeforeLongBreak,
		SessionCount:            st.SessionCount,
	}
}

// RemainingAt projects the countdown to now. Only a running timer moves.
func (s *Status) RemainingAt(now time.Time) int {
	if s.State != pomodoro.Running.String() {
		return s.Remaining
	}

	return pomodoro.RemainingAt(s.UpdatedAt, s.Remaining, now)
}

// Format renders the status line printed by the status command.
func (s *Status) Format(now time.Time) string {
	var text string

	switch s.Mode {
	case pomodoro.Focus:
		text = fmt.Sprintf("[Focus %d/%d]", s.Cycle, s.SessionsBeforeLongBreak)
	case pomodoro.ShortBreak:
		text = "[Short break]"
	case pomodoro.LongBreak:
		text = "[Long break]"
	}

	if s.State != pomodoro.Running.String() {
		text += " " + s.State
	}

	text += ": " + timeutil.FormatCountdown(s.RemainingAt(now))

	if s.Task != "" {
		text += " " + s.Task
	}

	return text
}

func WriteStatus(path string, s *Status) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return osutil.WriteFileAtomic(path, b)
}

// ReadStatus returns nil when no timer has written a status file.
func ReadStatus(path string) (*Status, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	var s Status

	err = json.Unmarshal(b, &s)
	if err != nil {
		return nil, errCorruptStatus.Wrap(err)
	}

	return &s, nil
}

// RemoveStatus deletes the status file, ignoring a missing one.
func RemoveStatus(path string) error {
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}
