package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// viperKeys defines the mapping between config keys and their Viper counterparts.
const (
	keyFocusDuration        = "focus.duration"
	keyFocusMessage         = "focus.message"
	keyFocusSound           = "focus.sound"
	keyFocusColor           = "focus.color"
	keyShortBreakDuration   = "short_break.duration"
	keyShortBreakMessage    = "short_break.message"
	keyShortBreakSound      = "short_break.sound"
	keyShortBreakColor      = "short_break.color"
	keyLongBreakDuration    = "long_break.duration"
	keyLongBreakMessage     = "long_break.message"
	keyLongBreakSound       = "long_break.sound"
	keyLongBreakColor       = "long_break.color"
	keyLongBreakInterval    = "settings.long_break_interval"
	keySessionCmd           = "settings.session_cmd"
	keyTwentyFourHour       = "settings.24hr_clock"
	keyNotificationsEnabled = "notifications.enabled"
	keyDarkTheme            = "display.dark_theme"
	keyStorageDriver        = "storage.driver"
	keyStorageDSN           = "storage.dsn"
	keyServerPort           = "server.port"
	keyLogDebug             = "log.debug"
)

const DefaultPort = 7420

// WithViperConfig returns an Option that loads configuration from Viper. A
// config file with default values is written when none exists.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper configures Viper with defaults and prompt values.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keyFocusDuration, "25m")
	v.SetDefault(keyFocusMessage, "Focus on your task")
	v.SetDefault(keyFocusColor, "#B0DB43")
	v.SetDefault(keyFocusSound, SoundBeep)
	v.SetDefault(keyShortBreakDuration, "5m")
	v.SetDefault(keyShortBreakMessage, "Take a breather")
	v.SetDefault(keyShortBreakColor, "#12EAEA")
	v.SetDefault(keyShortBreakSound, SoundBeep)
	v.SetDefault(keyLongBreakColor, "#C492B1")
	v.SetDefault(keyLongBreakMessage, "Take a long break")
	v.SetDefault(keyLongBreakDuration, "15m")
	v.SetDefault(keyLongBreakSound, SoundBeep)
	v.SetDefault(keyLongBreakInterval, 4)
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyStorageDriver, DriverBolt)
	v.SetDefault(keyStorageDSN, "")
	v.SetDefault(keyServerPort, DefaultPort)
	v.SetDefault(keyLogDebug, false)

	// answers from the first-run prompt
	if c.Focus.Duration != 0 {
		v.Set(keyFocusDuration, c.Focus.Duration.String())
	}

	if c.ShortBreak.Duration != 0 {
		v.Set(keyShortBreakDuration, c.ShortBreak.Duration.String())
	}

	if c.LongBreak.Duration != 0 {
		v.Set(keyLongBreakDuration, c.LongBreak.Duration.String())
	}

	if c.Settings.LongBreakInterval != 0 {
		v.Set(keyLongBreakInterval, c.Settings.LongBreakInterval)
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	err := v.Unmarshal(c, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		durationHook,
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return errReadConfig.Wrap(err)
	}

	return nil
}

var durationType = reflect.TypeOf(time.Duration(0))

// durationHook decodes durations written as "25m", "1h30m" or as a bare
// number of minutes.
func durationHook(_, to reflect.Type, data any) (any, error) {
	if to != durationType {
		return data, nil
	}

	switch v := data.(type) {
	case string:
		return parseDuration(v)
	case int:
		return time.Duration(v) * time.Minute, nil
	case int64:
		return time.Duration(v) * time.Minute, nil
	case float64:
		return time.Duration(v * float64(time.Minute)), nil
	}

	return data, nil
}

// parseDuration accepts Go duration strings and bare minutes.
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	// Try parsing as duration string first
	dur, err := time.ParseDuration(s)
	if err == nil {
		return dur, nil
	}

	// Try parsing as minutes in case duration unit is absent
	mins, err := time.ParseDuration(s + "m")
	if err != nil {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}

	return mins, nil
}
