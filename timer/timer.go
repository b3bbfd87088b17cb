// Package timer hosts the session controller in an interactive terminal UI
// and mirrors its state to the status file
package timer

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/jonboulle/clockwork"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/config"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/pomodoro"
)

const (
	padding  = 2
	maxWidth = 80
)

type (
	stateMsg pomodoro.State
	tickMsg  time.Time
)

// Timer is the bubbletea model driving a session controller.
type Timer struct {
	clock       clockwork.Clock
	ctrl        *pomodoro.Controller
	cfg         *config.Config
	logger      *slog.Logger
	states      <-chan pomodoro.State
	unsubscribe func()
	taskForm    *huh.Form
	// lastErr is the most recent rejected transition, shown until the next
	// key press
	lastErr    error
	styles     styles
	statusPath string
	taskInput  string
	state      pomodoro.State
	keys       keymap
	help       help.Model
	progress   progress.Model
	quitting   bool
}

type Option func(*Timer)

// WithClock sets the clock used for status file timestamps.
func WithClock(clock clockwork.Clock) Option {
	return func(t *Timer) {
		t.clock = clock
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(t *Timer) {
		t.logger = logger
	}
}

// WithStatusFile mirrors every state change to path.
func WithStatusFile(path string) Option {
	return func(t *Timer) {
		t.statusPath = path
	}
}

// New returns a Timer for ctrl. The task given on the command line, if any,
// is linked straight away.
func New(ctrl *pomodoro.Controller, cfg *config.Config, opts ...Option) *Timer {
	t := &Timer{
		clock:  clockwork.NewRealClock(),
		ctrl:   ctrl,
		cfg:    cfg,
		logger: slog.Default(),
		keys:   defaultKeymap,
		help:   help.New(),
		progress: progress.New(
			progress.WithDefaultGradient(),
			progress.WithoutPercentage(),
		),
		styles: newStyles(cfg),
	}

	for _, opt := range opts {
		opt(t)
	}

	if cfg.CLI.Task != "" {
		ctrl.SetTask(pomodoro.CustomTask(cfg.CLI.Task))
	}

	t.states, t.unsubscribe = ctrl.Subscribe()
	t.state = ctrl.State()

	return t
}

func waitForState(ch <-chan pomodoro.State) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return nil
		}

		return stateMsg(st)
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (t *Timer) Init() tea.Cmd {
	t.writeStatus()

	return tea.Batch(waitForState(t.states), tick())
}

// writeStatus records the current state in the status file. Failures are
// logged and otherwise ignored.
func (t *Timer) writeStatus() {
	if t.statusPath == "" {
		return
	}

	s := NewStatus(t.state, t.clock.Now())

	if err := WriteStatus(t.statusPath, &s); err != nil {
		t.logger.Warn("unable to write status file",
			slog.String("path", t.statusPath),
			slog.Any("error", err),
		)
	}
}

func (t *Timer) removeStatus() {
	if t.statusPath == "" {
		return
	}

	if err := RemoveStatus(t.statusPath); err != nil {
		t.logger.Warn("unable to remove status file", slog.Any("error", err))
	}
}

// Run blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, t *Timer) error {
	p := tea.NewProgram(
		t,
		tea.WithContext(ctx),
		tea.WithReportFocus(),
	)

	_, err := p.Run()

	t.stop()

	return err
}

func (t *Timer) stop() {
	if t.quitting {
		return
	}

	t.quitting = true

	t.unsubscribe()
	t.removeStatus()
}
