// Package stats summarises focus sessions over a reporting period
package stats

import (
	"cmp"
	"slices"
	"time"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/models"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/timeutil"
)

const uncategorized = "uncategorized"

type (
	// DayTotal is the focus time logged on one calendar day.
	DayTotal struct {
		Date      string `json:"date"`
		Minutes   int    `json:"minutes"`
		Completed int    `json:"completed"`
	}

	// TaskTotal is the focus time logged against one task description.
	TaskTotal struct {
		Task    string `json:"task"`
		Minutes int    `json:"minutes"`
	}

	// Summary is the aggregate of the focus sessions started within
	// [Start, End].
	Summary struct {
		Start          time.Time   `json:"start"`
		End            time.Time   `json:"end"`
		Days           []DayTotal  `json:"days"`
		Tasks          []TaskTotal `json:"tasks"`
		Weekdays       [7]int      `json:"weekdays"`
		Hours          [24]int     `json:"hours"`
		Completed      int         `json:"completed"`
		Abandoned      int         `json:"abandoned"`
		FocusMinutes   int         `json:"focus_minutes"`
		AverageMinutes int         `json:"average_minutes"`
	}
)

// Summarize aggregates records into a Summary. Only completed intervals count
// towards logged minutes. A zero start means the day of the first record.
func Summarize(records []models.SessionRecord, start, end time.Time) Summary {
	records = slices.Clone(records)

	slices.SortStableFunc(records, func(a, b models.SessionRecord) int {
		return a.StartedAt.Compare(b.StartedAt)
	})

	records = slices.DeleteFunc(records, func(r models.SessionRecord) bool {
		return r.SessionType != models.SessionFocus ||
			r.StartedAt.Before(start) ||
			r.StartedAt.After(end)
	})

	if start.IsZero() && len(records) > 0 {
		start = timeutil.RoundToStart(records[0].StartedAt.In(end.Location()))
	}

	s := Summary{
		Start: start,
		End:   end,
		Days:  emptyDays(start, end),
		Tasks: []TaskTotal{},
	}

	dayIndex := make(map[string]int, len(s.Days))
	for i := range s.Days {
		dayIndex[s.Days[i].Date] = i
	}

	tasks := make(map[string]int)

	for i := range records {
		r := &records[i]

		if !r.WasCompleted {
			s.Abandoned++
			continue
		}

		s.Completed++
		s.FocusMinutes += r.DurationMinutes

		startedAt := r.StartedAt.In(end.Location())

		s.Weekdays[startedAt.Weekday()] += r.DurationMinutes
		s.Hours[startedAt.Hour()] += r.DurationMinutes

		date := r.Date
		if date == "" {
			date = startedAt.Format(models.DateLayout)
		}

		if idx, ok := dayIndex[date]; ok {
			s.Days[idx].Minutes += r.DurationMinutes
			s.Days[idx].Completed++
		}

		task := uncategorized
		if r.TaskDescription != nil && *r.TaskDescription != "" {
			task = *r.TaskDescription
		}

		tasks[task] += r.DurationMinutes
	}

	for task, minutes := range tasks {
		s.Tasks = append(s.Tasks, TaskTotal{Task: task, Minutes: minutes})
	}

	slices.SortFunc(s.Tasks, func(a, b TaskTotal) int {
		if c := cmp.Compare(b.Minutes, a.Minutes); c != 0 {
			return c
		}

		return cmp.Compare(a.Task, b.Task)
	})

	if n := len(s.Days); n > 0 {
		s.AverageMinutes = timeutil.Round(float64(s.FocusMinutes) / float64(n))
	}

	return s
}

// emptyDays lists every calendar day between start and end.
func emptyDays(start, end time.Time) []DayTotal {
	days := []DayTotal{}

	if start.IsZero() || end.Before(start) {
		return days
	}

	for d := timeutil.RoundToStart(start); !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, DayTotal{Date: d.Format(models.DateLayout)})
	}

	return days
}
