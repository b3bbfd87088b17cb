// Package models defines the persisted shapes shared by the timer and its
// stores
package models

import "time"

// SessionType identifies the kind of interval a session record belongs to.
type SessionType string

const (
	SessionFocus      SessionType = "focus"
	SessionShortBreak SessionType = "shortBreak"
	SessionLongBreak  SessionType = "longBreak"
)

// DateLayout is the layout of the calendar day keys used throughout.
const DateLayout = "2006-01-02"

// SessionRecord is the persisted representation of one focus interval, from
// the moment it starts until it is completed or abandoned.
type SessionRecord struct {
	StartedAt         time.Time   `json:"started_at"`
	CompletedAt       *time.Time  `json:"completed_at"`
	TaskDescription   *string     `json:"task_description"`
	LinkedGoalID      *string     `json:"linked_goal_id"`
	LinkedTimeBlockID *string     `json:"linked_time_block_id"`
	ID                string      `json:"id"`
	Date              string      `json:"date"`
	SessionType       SessionType `json:"session_type"`
	DurationMinutes   int         `json:"duration_minutes"`
	WasCompleted      bool        `json:"was_completed"`
}

// TaskFields holds the task linkage columns of a session record. A nil
// pointer clears the column.
type TaskFields struct {
	Description *string `json:"task_description"`
	GoalID      *string `json:"linked_goal_id"`
	TimeBlockID *string `json:"linked_time_block_id"`
}

// SessionPatch is a partial update of a session record. Nil fields are left
// untouched.
type SessionPatch struct {
	CompletedAt     *time.Time  `json:"completed_at,omitempty"`
	WasCompleted    *bool       `json:"was_completed,omitempty"`
	DurationMinutes *int        `json:"duration_minutes,omitempty"`
	Task            *TaskFields `json:"task,omitempty"`
}

// Apply merges the patch into the record.
func (r *SessionRecord) Apply(p SessionPatch) {
	if p.CompletedAt != nil {
		t := *p.CompletedAt
		r.CompletedAt = &t
	}

	if p.WasCompleted != nil {
		r.WasCompleted = *p.WasCompleted
	}

	if p.DurationMinutes != nil {
		r.DurationMinutes = *p.DurationMinutes
	}

	if p.Task != nil {
		r.TaskDescription = p.Task.Description
		r.LinkedGoalID = p.Task.GoalID
		r.LinkedTimeBlockID = p.Task.TimeBlockID
	}
}

// CompletedSession is a local entry of the focus intervals finished today.
type CompletedSession struct {
	CompletedAt     time.Time `json:"completed_at"`
	Task            string    `json:"task,omitempty"`
	CardID          string    `json:"card_id,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
}

// TaskRef is the serialised form of the task a timer is linked to.
type TaskRef struct {
	Kind  string `json:"kind"`
	ID    string `json:"id,omitempty"`
	Label string `json:"label,omitempty"`
}

// TimerSnapshot is the daily timer state written after every change so that a
// restart can pick up where the previous process left off.
type TimerSnapshot struct {
	SavedAt        time.Time          `json:"saved_at"`
	Task           *TaskRef           `json:"task,omitempty"`
	CalendarDay    string             `json:"calendar_day"`
	Mode           SessionType        `json:"mode"`
	OpenSessionID  string             `json:"open_session_id,omitempty"`
	CompletedToday []CompletedSession `json:"completed_today"`
	TimeRemaining  int                `json:"time_remaining"`
	SessionCount   int                `json:"session_count"`
	Running        bool               `json:"running"`
	Paused         bool               `json:"paused"`
}
