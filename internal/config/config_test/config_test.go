package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/config"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/pomodoro"
)

type TestCase struct {
	Want   *config.Config
	Name   string
	Config string
}

// defaultConfig returns a new Config instance with default values.
func defaultConfig() *config.Config {
	return &config.Config{
		Focus: config.SessionConfig{
			Message:  "Focus on your task",
			Color:    "#B0DB43",
			Sound:    "beep",
			Duration: 25 * time.Minute,
		},
		ShortBreak: config.SessionConfig{
			Message:  "Take a breather",
			Color:    "#12EAEA",
			Sound:    "beep",
			Duration: 5 * time.Minute,
		},
		LongBreak: config.SessionConfig{
			Message:  "Take a long break",
			Color:    "#C492B1",
			Sound:    "beep",
			Duration: 15 * time.Minute,
		},
		Settings: config.SettingsConfig{
			Cmd:               "",
			LongBreakInterval: 4,
			TwentyFourHour:    false,
		},
		Notifications: config.NotificationConfig{
			Enabled: true,
		},
		Display: config.DisplayConfig{
			DarkTheme: true,
		},
		Storage: config.StorageConfig{
			Driver: config.DriverBolt,
		},
		Server: config.ServerConfig{
			Port: config.DefaultPort,
		},
	}
}

func TestViperWriteConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := config.New(
		config.WithViperConfig(configPath),
	)
	require.NoError(t, err)

	assert.Equal(t, defaultConfig(), cfg)

	b, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "long_break_interval: 4")

	// reading the written file back yields the same values
	again, err := config.New(
		config.WithViperConfig(configPath),
	)
	require.NoError(t, err)

	assert.Equal(t, cfg, again)
	assert.Equal(t, pomodoro.DefaultSettings(), cfg.PomodoroSettings())
}

func TestViperReadConfig(t *testing.T) {
	modified := func() *config.Config {
		c := defaultConfig()
		c.Focus.Duration = 50 * time.Minute
		c.ShortBreak.Duration = 10 * time.Minute
		c.ShortBreak.Message = "Take a short rest"
		c.LongBreak.Duration = 30 * time.Minute
		c.LongBreak.Sound = "off"
		c.Settings.LongBreakInterval = 6
		c.Settings.Cmd = "notify-send done"
		c.Storage.Driver = config.DriverSQLite

		return c
	}

	table := []TestCase{
		{
			Name: "read a modified config file",
			Config: `focus:
  duration: 50m
short_break:
  duration: 10m
  message: Take a short rest
long_break:
  duration: 30m
  sound: "off"
settings:
  long_break_interval: 6
  session_cmd: notify-send done
storage:
  driver: sqlite
`,
			Want: modified(),
		},
		{
			Name: "bare numbers are minutes",
			Config: `focus:
  duration: 50
short_break:
  duration: "10"
  message: Take a short rest
long_break:
  duration: 30
  sound: "off"
settings:
  long_break_interval: 6
  session_cmd: notify-send done
storage:
  driver: sqlite
`,
			Want: modified(),
		},
	}

	for _, tc := range table {
		t.Run(tc.Name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yml")

			err := os.WriteFile(configPath, []byte(tc.Config), 0o600)
			require.NoError(t, err)

			cfg, err := config.New(
				config.WithViperConfig(configPath),
			)
			require.NoError(t, err)

			assert.Equal(t, tc.Want, cfg)
		})
	}
}

func TestViperInvalidDuration(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	err := os.WriteFile(configPath, []byte("focus:\n  duration: forever\n"), 0o600)
	require.NoError(t, err)

	_, err = config.New(config.WithViperConfig(configPath))
	assert.Error(t, err)
}
