package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/pomodoro"
)

const (
	SoundOff  = "off"
	SoundBeep = "beep"
)

var (
	// Color format validation.
	hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

	validSoundExts = []string{".mp3", ".ogg", ".flac", ".wav"}

	validDrivers = []string{DriverBolt, DriverSQLite, DriverPostgres}
)

// Validate checks the Config. Interval lengths out of range are clamped
// with a warning rather than rejected.
func (c *Config) Validate() error {
	c.clampDurations()

	sessions := []struct {
		sc   SessionConfig
		name string
	}{
		{c.Focus, "focus"},
		{c.ShortBreak, "short break"},
		{c.LongBreak, "long break"},
	}

	for _, s := range sessions {
		if err := validateSessionConfig(s.sc, s.name); err != nil {
			return err
		}
	}

	if !slices.Contains(validDrivers, c.Storage.Driver) {
		return errInvalidDriver.Fmt(c.Storage.Driver)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errInvalidPort.Fmt(c.Server.Port)
	}

	return nil
}

// clampDurations pulls interval lengths into the range the timer accepts.
func (c *Config) clampDurations() {
	given := c.PomodoroSettings()
	clamped := given.Clamp()

	if given == clamped {
		return
	}

	slog.Warn(
		"config values out of range were clamped",
		slog.Any("given", given),
		slog.Any("clamped", clamped),
	)

	c.Focus.Duration = clamped.Focus
	c.ShortBreak.Duration = clamped.ShortBreak
	c.LongBreak.Duration = clamped.LongBreak
	c.Settings.LongBreakInterval = clamped.SessionsBeforeLongBreak
}

// validateSessionConfig validates an individual SessionConfig.
func validateSessionConfig(sc SessionConfig, sessionType string) error {
	if strings.TrimSpace(sc.Message) == "" {
		return errEmptyMsg.Fmt(sessionType)
	}

	if !hexColorRegex.MatchString(sc.Color) {
		return errInvalidColor.Fmt(sessionType, sc.Color)
	}

	return validateSound(sc.Sound)
}

// validateSound accepts "off", "beep" or the path to an audio file.
func validateSound(sound string) error {
	if sound == "" || sound == SoundOff || sound == SoundBeep {
		return nil
	}

	ext := strings.ToLower(filepath.Ext(sound))

	if !slices.Contains(validSoundExts, ext) {
		return errInvalidSoundFormat.Fmt(sound)
	}

	_, err := os.Stat(sound)
	if errors.Is(err, os.ErrNotExist) {
		return errUnknownAlertSound.Fmt(sound)
	}

	return err
}

// SoundFor returns the alert sound of mode, with an empty value meaning off.
func (c *Config) SoundFor(mode pomodoro.Mode) string {
	sound := c.Session(mode).Sound
	if sound == SoundOff {
		return ""
	}

	return sound
}
