package app

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/gin-gonic/gin"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/config"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/models"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/pathutil"
	"github.com/doni-wahyudi/stillmove-planner-sub001/server"
	"github.com/doni-wahyudi/stillmove-planner-sub001/stats"
	"github.com/doni-wahyudi/stillmove-planner-sub001/store"
	"github.com/doni-wahyudi/stillmove-planner-sub001/timer"
)

const (
	envNoColor          = "NO_COLOR"
	envStillmoveNoColor = "STILLMOVE_NO_COLOR"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// sessionHelper opens the database and retrieves the sessions selected by
// the filter flags.
func sessionHelper(
	ctx *cli.Context,
) (*appEnv, store.DB, []models.SessionRecord, *config.FilterConfig, error) {
	filter, err := config.Filter(ctx)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	env, err := newAppEnv(ctx, false)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	db, err := env.openStore(ctx.Context)
	if err != nil {
		env.close()
		return nil, nil, nil, nil, err
	}

	sessions, err := db.ListSessionsForRange(
		ctx.Context,
		filter.StartTime,
		filter.EndTime,
	)
	if err != nil {
		_ = db.Close()
		env.close()

		return nil, nil, nil, nil, err
	}

	return env, db, sessions, filter, nil
}

// defaultAction restores today's timer and opens the countdown interface.
func defaultAction(ctx *cli.Context) error {
	env, err := newAppEnv(ctx, true)
	if err != nil {
		return err
	}

	defer env.close()

	db, err := env.openStore(ctx.Context)
	if err != nil {
		return err
	}

	ctrl := env.newController(ctx, db)

	t := timer.New(
		ctrl,
		env.cfg,
		timer.WithLogger(env.logger.Logger),
		timer.WithStatusFile(pathutil.StatusFilePath()),
	)

	runErr := timer.Run(ctx.Context, t)

	err = env.shutdown(ctrl, db)
	if runErr != nil {
		return runErr
	}

	return err
}

// statusAction handles the status command and prints the status of the
// currently running timer. Nothing is printed when no timer is open.
func statusAction(_ *cli.Context) error {
	s, err := timer.ReadStatus(pathutil.StatusFilePath())
	if err != nil {
		return err
	}

	if s == nil {
		return nil
	}

	fmt.Fprintln(config.Stdout, s.Format(time.Now()))

	return nil
}

// listAction prints a table of all the sessions started within a time
// period.
func listAction(ctx *cli.Context) error {
	env, db, sessions, _, err := sessionHelper(ctx)
	if err != nil {
		return err
	}

	defer env.close()
	defer db.Close()

	return listSessions(config.Stdout, sessions, ctx.Bool(jsonFlag.Name))
}

// deleteAction removes the sessions selected by the filter flags.
func deleteAction(ctx *cli.Context) error {
	env, db, sessions, _, err := sessionHelper(ctx)
	if err != nil {
		return err
	}

	defer env.close()
	defer db.Close()

	return delSessions(
		ctx.Context,
		db,
		sessions,
		prompter{in: config.Stdin, out: config.Stdout},
		ctx.Bool(yesFlag.Name),
	)
}

// editAction changes the task of the sessions selected by the filter flags.
func editAction(ctx *cli.Context) error {
	task := trimTask(ctx.Args().Slice())
	if task == "" && !ctx.Bool(clearFlag.Name) {
		return errMissingTask
	}

	env, db, sessions, _, err := sessionHelper(ctx)
	if err != nil {
		return err
	}

	defer env.close()
	defer db.Close()

	return editTask(
		ctx.Context,
		db,
		sessions,
		task,
		prompter{in: config.Stdin, out: config.Stdout},
		ctx.Bool(yesFlag.Name),
	)
}

// statsAction computes the stats for the specified time period.
func statsAction(ctx *cli.Context) error {
	env, db, sessions, filter, err := sessionHelper(ctx)
	if err != nil {
		return err
	}

	defer env.close()
	defer db.Close()

	summary := stats.Summarize(sessions, filter.StartTime, filter.EndTime)

	if ctx.Bool(jsonFlag.Name) {
		b, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}

		fmt.Fprintln(config.Stdout, string(b))

		return nil
	}

	return stats.Render(config.Stdout, summary)
}

// serveAction exposes the timer over HTTP until the process is interrupted.
func serveAction(ctx *cli.Context) error {
	env, err := newAppEnv(ctx, false)
	if err != nil {
		return err
	}

	defer env.close()

	if !env.cfg.Log.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := env.openStore(ctx.Context)
	if err != nil {
		return err
	}

	ctrl := env.newController(ctx, db)

	port := env.cfg.Server.Port
	if ctx.IsSet(portFlag.Name) {
		port = ctx.Int(portFlag.Name)
	}

	sigCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(ctrl, db, server.WithLogger(env.logger.Logger))

	addr := ":" + strconv.Itoa(port)

	pterm.Info.Printfln("Listening on http://localhost%s", addr)

	runErr := srv.Run(sigCtx, addr)

	err = env.shutdown(ctrl, db)
	if runErr != nil {
		return runErr
	}

	return err
}

// editConfigAction handles the edit-config command which opens the config
// file in the user's default text editor.
func editConfigAction(ctx *cli.Context) error {
	env, err := newAppEnv(ctx, true)
	if err != nil {
		return err
	}

	env.close()

	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.CommandContext(ctx.Context, editor, pathutil.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

// setCredentialsAction stores the postgres connection string in the OS
// keyring. The value is prompted for when it is not given as an argument.
func setCredentialsAction(ctx *cli.Context) error {
	dsn := ctx.Args().First()

	if dsn == "" {
		err := huh.NewInput().
			Title("Postgres connection string").
			EchoMode(huh.EchoModePassword).
			Value(&dsn).
			Run()
		if err != nil {
			return err
		}
	}

	if dsn == "" {
		return errEmptyDSN
	}

	err := config.SetDSN(dsn)
	if err != nil {
		return err
	}

	pterm.Success.Println("Connection string saved to the system keyring")

	return nil
}

// deleteCredentialsAction removes the stored connection string.
func deleteCredentialsAction(_ *cli.Context) error {
	err := config.DeleteDSN()
	if err != nil {
		return err
	}

	pterm.Success.Println("Connection string removed from the system keyring")

	return nil
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	for _, name := range []string{envNoColor, envStillmoveNoColor} {
		if _, exists := os.LookupEnv(name); exists {
			disableStyling()
		}
	}

	if ctx.Bool(noColorFlag.Name) {
		disableStyling()
	}

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting stillmove")

	return nil
}
