package server

import (
	"fmt"
	"time"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/models"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/pomodoro"
)

type (
	taskBody struct {
		Kind  string `json:"kind"`
		ID    string `json:"id,omitempty"`
		Label string `json:"label,omitempty"`
	}

	settingsBody struct {
		FocusMinutes            int `json:"focus_minutes"`
		ShortBreakMinutes       int `json:"short_break_minutes"`
		LongBreakMinutes        int `json:"long_break_minutes"`
		SessionsBeforeLongBreak int `json:"sessions_before_long_break"`
	}

	// settingsPatch is the body of a settings update. Omitted fields keep
	// their current value.
	settingsPatch struct {
		FocusMinutes            *int `json:"focus_minutes"`
		ShortBreakMinutes       *int `json:"short_break_minutes"`
		LongBreakMinutes        *int `json:"long_break_minutes"`
		SessionsBeforeLongBreak *int `json:"sessions_before_long_break"`
	}

	stateResponse struct {
		Task           *taskBody                 `json:"task"`
		Mode           pomodoro.Mode             `json:"mode"`
		Status         string                    `json:"status"`
		Day            string                    `json:"day"`
		CompletedToday []models.CompletedSession `json:"completed_today"`
		Settings       settingsBody              `json:"settings"`
		Progress       float64                   `json:"progress"`
		Remaining      int                       `json:"remaining"`
		Total          int                       `json:"total"`
		SessionCount   int                       `json:"session_count"`
		Cycle          int                       `json:"cycle"`
		FocusMinutes   int                       `json:"focus_minutes_today"`
	}
)

func newSettingsBody(s pomodoro.Settings) settingsBody {
	return settingsBody{
		FocusMinutes:            s.Minutes(pomodoro.Focus),
		ShortBreakMinutes:       s.Minutes(pomodoro.ShortBreak),
		LongBreakMinutes:        s.Minutes(pomodoro.LongBreak),
		SessionsBeforeLongBreak: s.SessionsBeforeLongBreak,
	}
}

func (p settingsPatch) apply(s pomodoro.Settings) pomodoro.Settings {
	if p.FocusMinutes != nil {
		s.Focus = time.Duration(*p.FocusMinutes) * time.Minute
	}

	if p.ShortBreakMinutes != nil {
		s.ShortBreak = time.Duration(*p.ShortBreakMinutes) * time.Minute
	}

	if p.LongBreakMinutes != nil {
		s.LongBreak = time.Duration(*p.LongBreakMinutes) * time.Minute
	}

	if p.SessionsBeforeLongBreak != nil {
		s.SessionsBeforeLongBreak = *p.SessionsBeforeLongBreak
	}

	return s
}

func newStateResponse(st pomodoro.State) stateResponse {
	resp := stateResponse{
		Mode:           st.Mode,
		Status:         st.Status().String(),
		Day:            st.Day,
		CompletedToday: st.CompletedToday,
		Settings:       newSettingsBody(st.Settings),
		Progress:       st.Progress(),
		Remaining:      st.Remaining,
		Total:          st.Total(),
		SessionCount:   st.SessionCount,
		Cycle:          st.Cycle(),
		FocusMinutes:   st.FocusMinutesToday(),
	}

	if resp.CompletedToday == nil {
		resp.CompletedToday = []models.CompletedSession{}
	}

	if !st.Task.IsZero() {
		resp.Task = &taskBody{
			Kind:  string(st.Task.Kind()),
			ID:    st.Task.ID(),
			Label: st.Task.Label(),
		}
	}

	return resp
}

// association converts a request body into a task association. A nil body
// or an empty kind clears the task.
func (b *taskBody) association() (pomodoro.TaskAssociation, error) {
	if b == nil {
		return pomodoro.NoTask(), nil
	}

	switch pomodoro.TaskKind(b.Kind) {
	case pomodoro.TaskNone:
		return pomodoro.NoTask(), nil
	case pomodoro.TaskCustom:
		return pomodoro.CustomTask(b.Label), nil
	case pomodoro.TaskGoal:
		return pomodoro.GoalTask(b.ID, b.Label), nil
	case pomodoro.TaskTimeBlock:
		return pomodoro.TimeBlockTask(b.ID, b.Label), nil
	case pomodoro.TaskCard:
		return pomodoro.CardTask(b.ID, b.Label), nil
	}

	return pomodoro.NoTask(), fmt.Errorf("unknown task kind %q", b.Kind)
}
