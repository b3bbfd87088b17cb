package config

import (
	"strings"

	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Work              string
	ShortBreak        string
	LongBreak         string
	Task              string
	SessionCmd        string
	LongBreakInterval uint
	DisableNotify     bool
	NoColor           bool
	Debug             bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Work:              ctx.String("work"),
			ShortBreak:        ctx.String("short-break"),
			LongBreak:         ctx.String("long-break"),
			LongBreakInterval: ctx.Uint("long-break-interval"),
			Task:              ctx.String("task"),
			SessionCmd:        ctx.String("session-cmd"),
			DisableNotify:     ctx.Bool("disable-notification"),
			NoColor:           ctx.Bool("no-color"),
			Debug:             ctx.Bool("debug"),
		}

		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	if err := applyCLIDurations(c, opts); err != nil {
		return err
	}

	c.CLI.Task = strings.TrimSpace(opts.Task)

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	if opts.SessionCmd != "" {
		c.Settings.Cmd = opts.SessionCmd
	}

	if opts.NoColor {
		c.Display.NoColor = true
	}

	if opts.Debug {
		c.Log.Debug = true
	}

	return nil
}

// applyCLIDurations handles parsing and applying duration settings from CLI.
func applyCLIDurations(c *Config, opts CLIOptions) error {
	durations := []struct {
		dst  *SessionConfig
		name string
		val  string
	}{
		{&c.Focus, "focus", opts.Work},
		{&c.ShortBreak, "short break", opts.ShortBreak},
		{&c.LongBreak, "long break", opts.LongBreak},
	}

	for _, d := range durations {
		if d.val == "" {
			continue
		}

		dur, err := parseDuration(d.val)
		if err != nil {
			return errInvalidCLIDuration.Fmt(d.name, d.val).Wrap(err)
		}

		d.dst.Duration = dur
	}

	if opts.LongBreakInterval > 0 {
		c.Settings.LongBreakInterval = int(opts.LongBreakInterval)
	}

	return nil
}
