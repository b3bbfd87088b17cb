// Package app defines the stillmove command-line interface.
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the stillmove app instance.
func Get() *cli.App {
	sessionFlags := append([]cli.Flag{jsonFlag}, filterFlags...)
	confirmFlags := append([]cli.Flag{yesFlag}, filterFlags...)

	return &cli.App{
		Name: "stillmove",
		Usage: `
		stillmove is a Pomodoro timer for the command-line. It alternates focus
		intervals with short and long breaks, links each focus interval to a task
		and keeps a record of your sessions.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
			{
				Name:   "status",
				Usage:  "Print the status of the timer",
				Action: statusAction,
			},
			{
				Name:   "sessions",
				Usage:  "List the sessions recorded within a time period (default: today)",
				Flags:  sessionFlags,
				Action: listAction,
				Subcommands: []*cli.Command{
					{
						Name:   "delete",
						Usage:  "Permanently delete the sessions recorded within a time period",
						Flags:  confirmFlags,
						Action: deleteAction,
					},
					{
						Name:      "edit",
						Usage:     "Change the task of the sessions recorded within a time period",
						UsageText: "stillmove sessions edit [OPTIONS] <task>",
						Flags:     append([]cli.Flag{clearFlag}, confirmFlags...),
						Action:    editAction,
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Summarise your focus time within a time period (default: today)",
				Flags:  sessionFlags,
				Action: statsAction,
			},
			{
				Name:   "serve",
				Usage:  "Control the timer over a local HTTP API",
				Flags:  []cli.Flag{portFlag},
				Action: serveAction,
			},
			{
				Name:  "credentials",
				Usage: "Manage the postgres connection string kept in the system keyring",
				Subcommands: []*cli.Command{
					{
						Name:      "set",
						Usage:     "Store the connection string",
						UsageText: "stillmove credentials set [dsn]",
						Action:    setCredentialsAction,
					},
					{
						Name:   "delete",
						Usage:  "Remove the stored connection string",
						Action: deleteCredentialsAction,
					},
				},
			},
		},
		Flags: []cli.Flag{
			workFlag,
			shortBreakFlag,
			longBreakFlag,
			longBreakIntervalFlag,
			taskFlag,
			disableNotificationFlag,
			sessionCmdFlag,
			noColorFlag,
			debugFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}
}
