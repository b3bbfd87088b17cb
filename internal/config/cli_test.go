package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyCLIOptions(t *testing.T) {
	c := &Config{}
	c.Notifications.Enabled = true
	c.Settings.LongBreakInterval = 4

	err := applyCLIOptions(c, CLIOptions{
		Work:              "50m",
		ShortBreak:        "10",
		LongBreakInterval: 6,
		Task:              "  Write tests ",
		SessionCmd:        "say done",
		DisableNotify:     true,
		NoColor:           true,
	})
	require.NoError(t, err)

	assert.Equal(t, 50*time.Minute, c.Focus.Duration)
	assert.Equal(t, 10*time.Minute, c.ShortBreak.Duration)
	assert.Zero(t, c.LongBreak.Duration)
	assert.Equal(t, 6, c.Settings.LongBreakInterval)
	assert.Equal(t, "Write tests", c.CLI.Task)
	assert.Equal(t, "say done", c.Settings.Cmd)
	assert.False(t, c.Notifications.Enabled)
	assert.True(t, c.Display.NoColor)
}

func TestApplyCLIOptionsInvalidDuration(t *testing.T) {
	err := applyCLIOptions(&Config{}, CLIOptions{LongBreak: "soon"})
	assert.ErrorIs(t, err, errInvalidCLIDuration)
}
