// Package config loads stillmove settings from the config file, the first-run
// prompt and command-line flags
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/pomodoro"
)

type (
	// Config holds all configuration settings
	Config struct {
		Focus         SessionConfig      `mapstructure:"focus"`
		ShortBreak    SessionConfig      `mapstructure:"short_break"`
		LongBreak     SessionConfig      `mapstructure:"long_break"`
		Settings      SettingsConfig     `mapstructure:"settings"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Display       DisplayConfig      `mapstructure:"display"`
		Storage       StorageConfig      `mapstructure:"storage"`
		Server        ServerConfig       `mapstructure:"server"`
		Log           LogConfig          `mapstructure:"log"`
		CLI           CLIConfig          `mapstructure:"-"`
	}

	// SessionConfig holds the settings of one interval kind
	SessionConfig struct {
		Message  string        `mapstructure:"message"`
		Color    string        `mapstructure:"color"`
		Sound    string        `mapstructure:"sound"`
		Duration time.Duration `mapstructure:"duration"`
	}

	SettingsConfig struct {
		Cmd               string `mapstructure:"session_cmd"`
		LongBreakInterval int    `mapstructure:"long_break_interval"`
		TwentyFourHour    bool   `mapstructure:"24hr_clock"`
	}

	NotificationConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}

	DisplayConfig struct {
		DarkTheme bool `mapstructure:"dark_theme"`
		NoColor   bool `mapstructure:"-"`
	}

	// StorageConfig selects the database. An empty DSN means the default
	// file for bolt and sqlite, and the OS keyring for postgres.
	StorageConfig struct {
		Driver string `mapstructure:"driver"`
		DSN    string `mapstructure:"dsn"`
	}

	ServerConfig struct {
		Port int `mapstructure:"port"`
	}

	LogConfig struct {
		Debug bool `mapstructure:"debug"`
	}

	// CLIConfig holds values that only come from the command line
	CLIConfig struct {
		Task string
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.3.0"

const (
	DriverBolt     = "bolt"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a new Config and applies options in order
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	return cfg, nil
}

// PomodoroSettings returns the interval lengths for the session controller.
func (c *Config) PomodoroSettings() pomodoro.Settings {
	return pomodoro.Settings{
		Focus:                   c.Focus.Duration,
		ShortBreak:              c.ShortBreak.Duration,
		LongBreak:               c.LongBreak.Duration,
		SessionsBeforeLongBreak: c.Settings.LongBreakInterval,
	}
}

// Session returns the interval settings of mode.
func (c *Config) Session(mode pomodoro.Mode) SessionConfig {
	switch mode {
	case pomodoro.ShortBreak:
		return c.ShortBreak
	case pomodoro.LongBreak:
		return c.LongBreak
	default:
		return c.Focus
	}
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"focus=%s short_break=%s long_break=%s interval=%d driver=%s",
		c.Focus.Duration,
		c.ShortBreak.Duration,
		c.LongBreak.Duration,
		c.Settings.LongBreakInterval,
		c.Storage.Driver,
	)
}
