package timer

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/config"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/pomodoro"
)

type styles struct {
	modes     map[pomodoro.Mode]lipgloss.Style
	base      lipgloss.Style
	main      lipgloss.Style
	secondary lipgloss.Style
	hint      lipgloss.Style
	err       lipgloss.Style
}

func newStyles(cfg *config.Config) styles {
	display := cfg.Display

	s := styles{
		modes:     make(map[pomodoro.Mode]lipgloss.Style),
		base:      lipgloss.NewStyle().Padding(1, padding),
		main:      lipgloss.NewStyle().Bold(true),
		secondary: lipgloss.NewStyle(),
		hint:      lipgloss.NewStyle(),
		err:       lipgloss.NewStyle(),
	}

	for _, mode := range []pomodoro.Mode{
		pomodoro.Focus,
		pomodoro.ShortBreak,
		pomodoro.LongBreak,
	} {
		s.modes[mode] = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			MarginRight(1).
			SetString(mode.Title())
	}

	if display.NoColor {
		return s
	}

	highlight := lipgloss.Color("#FFFDF5")
	dim := lipgloss.Color("#A49FA5")

	if !display.DarkTheme {
		highlight = lipgloss.Color("#1A1A1A")
		dim = lipgloss.Color("#6C6C6C")
	}

	s.main = s.main.Foreground(highlight)
	s.secondary = s.secondary.Foreground(highlight)
	s.hint = s.hint.Foreground(dim)
	s.err = s.err.Foreground(lipgloss.Color("#FF5F87"))

	for mode, style := range s.modes {
		s.modes[mode] = style.
			Foreground(lipgloss.Color("#1A1A1A")).
			Background(lipgloss.Color(cfg.Session(mode).Color))
	}

	return s
}
