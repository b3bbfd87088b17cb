package timer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/davecgh/go-spew/spew"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/pomodoro"
)

func (t *Timer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		if t.quitting {
			return t, nil
		}

		t.state = pomodoro.State(msg)
		t.writeStatus()

		return t, waitForState(t.states)

	case tickMsg:
		if t.quitting {
			return t, nil
		}

		t.state = t.ctrl.State()

		return t, tick()

	// the terminal regained focus, possibly after the machine slept
	case tea.FocusMsg:
		t.state = t.ctrl.Reconcile()
		t.writeStatus()

		return t, nil

	case tea.WindowSizeMsg:
		t.progress.Width = min(msg.Width-padding*2-4, maxWidth)
		t.help.Width = msg.Width

		return t, nil

	case tea.KeyMsg:
		if t.taskForm != nil {
			return t.handleTaskForm(msg)
		}

		return t.handleKeyPress(msg)
	}

	if t.taskForm != nil {
		return t.handleTaskForm(msg)
	}

	if t.logger.Enabled(context.Background(), slog.LevelDebug) {
		t.logger.Debug("unhandled message", slog.String("msg", spew.Sdump(msg)))
	}

	return t, nil
}

func (t *Timer) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error

	switch {
	case key.Matches(msg, t.keys.quit):
		t.stop()

		return t, tea.Quit

	case key.Matches(msg, t.keys.start):
		switch t.state.Status() {
		case pomodoro.Paused:
			err = t.ctrl.Resume()
		case pomodoro.Running:
			return t, nil
		case pomodoro.Idle:
			err = t.ctrl.Start()
		}

	case key.Matches(msg, t.keys.pause):
		if t.state.Status() == pomodoro.Paused {
			err = t.ctrl.Resume()
		} else {
			err = t.ctrl.Pause()
		}

	case key.Matches(msg, t.keys.reset):
		err = t.ctrl.Reset()

	case key.Matches(msg, t.keys.skip):
		err = t.ctrl.Skip()

	case key.Matches(msg, t.keys.task):
		return t, t.openTaskForm()

	default:
		return t, nil
	}

	t.lastErr = err
	t.state = t.ctrl.State()

	return t, nil
}

func (t *Timer) openTaskForm() tea.Cmd {
	t.taskInput = t.state.Task.Label()

	t.taskForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What are you working on?").
				Description("Leave empty to clear the current task").
				Value(&t.taskInput),
		),
	).WithShowHelp(false)

	return t.taskForm.Init()
}

func (t *Timer) handleTaskForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		t.taskForm = nil
		return t, nil
	}

	form, cmd := t.taskForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.taskForm = f
	}

	switch t.taskForm.State {
	case huh.StateCompleted:
		t.ctrl.SetTask(pomodoro.CustomTask(strings.TrimSpace(t.taskInput)))
		t.taskForm = nil
		t.state = t.ctrl.State()

		return t, nil

	case huh.StateAborted:
		t.taskForm = nil

		return t, nil

	case huh.StateNormal:
	}

	return t, cmd
}
