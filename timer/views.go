package timer

import (
	"fmt"
	"strings"
	"time"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/pomodoro"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/timeutil"
)

func (t *Timer) headerView() string {
	var s strings.Builder

	st := t.state

	s.WriteString(t.styles.modes[st.Mode].Render())

	switch st.Status() {
	case pomodoro.Paused:
		s.WriteString(t.styles.secondary.Render("[Paused]"))
	case pomodoro.Idle:
		s.WriteString(t.styles.secondary.Render("[Ready]"))
	case pomodoro.Running:
		timeFormat := "03:04 PM"
		if t.cfg.Settings.TwentyFourHour {
			timeFormat = "15:04"
		}

		end := t.clock.Now().Add(time.Duration(st.Remaining) * time.Second)

		s.WriteString(t.styles.hint.Render("until " + end.Format(timeFormat)))
	}

	if st.Mode == pomodoro.Focus {
		s.WriteString(t.styles.hint.Render(fmt.Sprintf(
			" (%d/%d)",
			st.Cycle(),
			st.Settings.SessionsBeforeLongBreak,
		)))
	}

	return s.String()
}

func (t *Timer) timerView() string {
	var s strings.Builder

	st := t.state

	s.WriteString(t.headerView())
	s.WriteString("\n\n")
	s.WriteString(t.styles.main.Render(timeutil.FormatCountdown(st.Remaining)))
	s.WriteString("\n\n")
	s.WriteString(t.progress.ViewAs(st.Progress()))

	if label := st.Task.Label(); label != "" {
		s.WriteString("\n\n" + t.styles.secondary.Render("Task: "+label))
	}

	s.WriteString("\n" + t.styles.hint.Render(fmt.Sprintf(
		"Today: %d sessions, %s",
		len(st.CompletedToday),
		timeutil.FormatMinutes(st.FocusMinutesToday()),
	)))

	if t.lastErr != nil {
		s.WriteString("\n" + t.styles.err.Render(t.lastErr.Error()))
	}

	s.WriteString("\n\n" + t.help.ShortHelpView(
		t.keys.forStatus(st.Running, st.Paused),
	))

	return s.String()
}

func (t *Timer) View() string {
	if t.quitting {
		return ""
	}

	view := t.timerView()

	if t.taskForm != nil {
		view += "\n\n" + t.taskForm.View()
	}

	return t.styles.base.Render(view)
}
