package timer

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/config"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/pomodoro"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/testutil"
)

var t0 = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	timer      *Timer
	ctrl       *pomodoro.Controller
	clock      *clockwork.FakeClock
	statusPath string
}

func newFixture(t *testing.T, cfg *config.Config) *fixture {
	t.Helper()

	if cfg == nil {
		cfg = &config.Config{}
	}

	clock := clockwork.NewFakeClockAt(t0)

	ctrl := pomodoro.New(
		context.Background(),
		pomodoro.DefaultSettings(),
		pomodoro.WithClock(clock),
		// ticks are driven by the test
		pomodoro.WithTickInterval(24*time.Hour),
	)

	t.Cleanup(func() {
		_ = ctrl.Close(context.Background())
	})

	statusPath := filepath.Join(t.TempDir(), "status.json")

	tm := New(ctrl, cfg, WithClock(clock), WithStatusFile(statusPath))

	return &fixture{
		timer:      tm,
		ctrl:       ctrl,
		clock:      clock,
		statusPath: statusPath,
	}
}

func (f *fixture) press(keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg

		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}

		f.timer.Update(msg)
	}
}

func TestKeyTransitions(t *testing.T) {
	cases := []struct {
		name   string
		keys   []string
		mode   pomodoro.Mode
		status pomodoro.Status
	}{
		{"start", []string{"s"}, pomodoro.Focus, pomodoro.Running},
		{"enter starts", []string{"enter"}, pomodoro.Focus, pomodoro.Running},
		{"pause", []string{"s", "p"}, pomodoro.Focus, pomodoro.Paused},
		{"p resumes", []string{"s", "p", "p"}, pomodoro.Focus, pomodoro.Running},
		{"enter resumes", []string{"s", "p", "enter"}, pomodoro.Focus, pomodoro.Running},
		{"reset", []string{"s", "r"}, pomodoro.Focus, pomodoro.Idle},
		{"skip focus", []string{"s", "n"}, pomodoro.ShortBreak, pomodoro.Idle},
		{"skip break", []string{"n", "n"}, pomodoro.Focus, pomodoro.Idle},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, nil)

			f.press(tc.keys...)

			st := f.ctrl.State()
			assert.Equal(t, tc.mode, st.Mode)
			assert.Equal(t, tc.status, st.Status())
			assert.NoError(t, f.timer.lastErr)
		})
	}
}

func TestRejectedTransitionIsShown(t *testing.T) {
	f := newFixture(t, nil)

	f.press("p")

	require.ErrorIs(t, f.timer.lastErr, pomodoro.ErrNotRunning)
	assert.Contains(t, f.timer.View(), "no countdown is running")

	f.press("s")
	assert.NoError(t, f.timer.lastErr)
}

func TestView(t *testing.T) {
	f := newFixture(t, &config.Config{CLI: config.CLIConfig{Task: "write report"}})

	f.timer.Update(stateMsg(f.ctrl.State()))

	view := f.timer.View()
	assert.Contains(t, view, "Focus")
	assert.Contains(t, view, "25:00")
	assert.Contains(t, view, "(1/4)")
	assert.Contains(t, view, "Task: write report")
	assert.Contains(t, view, "[Ready]")
}

func TestFocusReconciles(t *testing.T) {
	f := newFixture(t, nil)

	f.press("s")

	f.clock.Advance(25 * time.Minute)
	f.timer.Update(tea.FocusMsg{})

	assert.Equal(t, pomodoro.ShortBreak, f.timer.state.Mode)
	assert.Equal(t, pomodoro.Running, f.timer.state.Status())
	assert.Len(t, f.timer.state.CompletedToday, 1)

	s, err := ReadStatus(f.statusPath)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, pomodoro.ShortBreak, s.Mode)
}

func TestTaskForm(t *testing.T) {
	f := newFixture(t, nil)

	f.press("t")
	require.NotNil(t, f.timer.taskForm)

	// keys go to the form while it is open
	f.press("n")
	assert.Equal(t, pomodoro.Focus, f.ctrl.State().Mode)

	f.press("esc")
	assert.Nil(t, f.timer.taskForm)
}

func TestStatusFileLifecycle(t *testing.T) {
	f := newFixture(t, nil)

	f.timer.Init()

	s, err := ReadStatus(f.statusPath)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "idle", s.State)

	_, cmd := f.timer.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.True(t, f.timer.quitting)

	_, err = os.Stat(f.statusPath)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStatusJSON(t *testing.T) {
	st := pomodoro.State{
		Task:         pomodoro.CustomTask("write report"),
		Mode:         pomodoro.Focus,
		Day:          "2026-03-10",
		Settings:     pomodoro.DefaultSettings(),
		Remaining:    1200,
		SessionCount: 1,
		Running:      true,
	}

	s := NewStatus(st, t0.Add(5*time.Minute))

	b, err := json.MarshalIndent(s, "", "  ")
	require.NoError(t, err)

	testutil.CompareGoldenFile(t, "status_json", append(b, '\n'))
}

func TestStatusFormat(t *testing.T) {
	updated := t0

	cases := []struct {
		name   string
		status Status
		now    time.Time
		want   string
	}{
		{
			name: "running focus",
			status: Status{
				UpdatedAt:               updated,
				Mode:                    pomodoro.Focus,
				State:                   "running",
				Remaining:               600,
				Cycle:                   2,
				SessionsBeforeLongBreak: 4,
			},
			now:  updated.Add(90 * time.Second),
			want: "[Focus 2/4]: 08:30",
		},
		{
			name: "paused break does not move",
			status: Status{
				UpdatedAt: updated,
				Mode:      pomodoro.ShortBreak,
				State:     "paused",
				Remaining: 120,
			},
			now:  updated.Add(time.Hour),
			want: "[Short break] paused: 02:00",
		},
		{
			name: "expired",
			status: Status{
				UpdatedAt: updated,
				Mode:      pomodoro.LongBreak,
				State:     "running",
				Remaining: 60,
			},
			now:  updated.Add(5 * time.Minute),
			want: "[Long break]: 00:00",
		},
		{
			name: "with task",
			status: Status{
				UpdatedAt:               updated,
				Mode:                    pomodoro.Focus,
				State:                   "idle",
				Remaining:               1500,
				Cycle:                   1,
				SessionsBeforeLongBreak: 4,
				Task:                    "write report",
			},
			now:  updated,
			want: "[Focus 1/4] idle: 25:00 write report",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.status.Format(tc.now))
		})
	}
}

func TestReadStatusMissing(t *testing.T) {
	s, err := ReadStatus(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Nil(t, s)

	path := filepath.Join(t.TempDir(), "status.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	_, err = ReadStatus(path)
	assert.ErrorIs(t, err, errCorruptStatus)
}
