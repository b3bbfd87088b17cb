package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	session := func(d time.Duration) SessionConfig {
		return SessionConfig{
			Message:  "msg",
			Color:    "#B0DB43",
			Sound:    SoundBeep,
			Duration: d,
		}
	}

	return &Config{
		Focus:      session(25 * time.Minute),
		ShortBreak: session(5 * time.Minute),
		LongBreak:  session(15 * time.Minute),
		Settings:   SettingsConfig{LongBreakInterval: 4},
		Storage:    StorageConfig{Driver: DriverBolt},
		Server:     ServerConfig{Port: DefaultPort},
	}
}

func TestValidate(t *testing.T) {
	table := []struct {
		Modify func(c *Config)
		Want   error
		Name   string
	}{
		{Name: "valid", Modify: func(*Config) {}},
		{
			Name:   "empty message",
			Modify: func(c *Config) { c.ShortBreak.Message = " " },
			Want:   errEmptyMsg,
		},
		{
			Name:   "bad color",
			Modify: func(c *Config) { c.LongBreak.Color = "purple" },
			Want:   errInvalidColor,
		},
		{
			Name:   "unsupported sound format",
			Modify: func(c *Config) { c.Focus.Sound = "chime.aiff" },
			Want:   errInvalidSoundFormat,
		},
		{
			Name:   "missing sound file",
			Modify: func(c *Config) { c.Focus.Sound = "/does/not/exist.ogg" },
			Want:   errUnknownAlertSound,
		},
		{
			Name:   "sound off",
			Modify: func(c *Config) { c.Focus.Sound = SoundOff },
		},
		{
			Name:   "unknown driver",
			Modify: func(c *Config) { c.Storage.Driver = "mysql" },
			Want:   errInvalidDriver,
		},
		{
			Name:   "port out of range",
			Modify: func(c *Config) { c.Server.Port = 70000 },
			Want:   errInvalidPort,
		},
	}

	for _, tc := range table {
		t.Run(tc.Name, func(t *testing.T) {
			c := validConfig()
			tc.Modify(c)

			err := c.Validate()
			if tc.Want == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tc.Want)
		})
	}
}

func TestValidateClampsDurations(t *testing.T) {
	c := validConfig()
	c.Focus.Duration = 3 * time.Hour
	c.ShortBreak.Duration = 0
	c.Settings.LongBreakInterval = 50

	require.NoError(t, c.Validate())

	assert.Equal(t, 60*time.Minute, c.Focus.Duration)
	assert.Equal(t, time.Minute, c.ShortBreak.Duration)
	assert.Equal(t, 10, c.Settings.LongBreakInterval)
}

func TestValidateSoundFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gong.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF"), 0o600))

	c := validConfig()
	c.LongBreak.Sound = path

	assert.NoError(t, c.Validate())
	assert.Equal(t, path, c.SoundFor("longBreak"))

	c.Focus.Sound = SoundOff
	assert.Empty(t, c.SoundFor("focus"))
}
