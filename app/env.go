package app

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/config"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/logger"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/notify"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/pathutil"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/pomodoro"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/ui"
	"github.com/doni-wahyudi/stillmove-planner-sub001/store"
	"github.com/doni-wahyudi/stillmove-planner-sub001/store/sqlstore"
)

const shutdownTimeout = 5 * time.Second

// durationFlags override interval lengths saved by an earlier run.
var durationFlags = []string{
	workFlag.Name,
	shortBreakFlag.Name,
	longBreakFlag.Name,
	longBreakIntervalFlag.Name,
}

// appEnv holds what every command needs once flags are parsed.
type appEnv struct {
	cfg    *config.Config
	logger *logger.Logger
}

// newAppEnv loads the configuration and sets up logging. The first-run
// prompt is only shown when interactive is set. Debug output is copied to
// stderr unless the terminal belongs to the timer interface.
func newAppEnv(ctx *cli.Context, interactive bool) (*appEnv, error) {
	var opts []config.Option

	if interactive {
		opts = append(opts, config.WithPromptConfig(pathutil.ConfigFilePath()))
	}

	opts = append(
		opts,
		config.WithViperConfig(pathutil.ConfigFilePath()),
		config.WithCLIConfig(ctx),
	)

	cfg, err := config.New(opts...)
	if err != nil {
		return nil, err
	}

	var stderr io.Writer = config.Stderr
	if interactive {
		stderr = nil
	}

	l, err := logger.New(logger.Config{
		Stderr: stderr,
		Path:   pathutil.LogFilePath(),
		Debug:  cfg.Log.Debug,
	})
	if err != nil {
		return nil, err
	}

	slog.SetDefault(l.Logger)

	err = cfg.Validate()
	if err != nil {
		_ = l.Close()
		return nil, err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	if cfg.Display.NoColor {
		disableStyling()
	}

	l.Debug("configuration loaded", slog.String("config", cfg.String()))

	return &appEnv{cfg: cfg, logger: l}, nil
}

// openStore connects to the configured database.
func (e *appEnv) openStore(ctx context.Context) (store.DB, error) {
	dsn, err := e.cfg.ResolveDSN()
	if err != nil {
		return nil, err
	}

	switch e.cfg.Storage.Driver {
	case config.DriverSQLite:
		if dsn == "" {
			dsn = pathutil.SQLiteFilePath()
		}

		return openSQL(ctx, sqlstore.DriverSQLite, dsn)
	case config.DriverPostgres:
		return openSQL(ctx, sqlstore.DriverPostgres, dsn)
	}

	if dsn == "" {
		dsn = pathutil.DBFilePath()
	}

	client, err := store.NewClient(dsn)
	if err != nil {
		return nil, err
	}

	return client, nil
}

func openSQL(ctx context.Context, driver, dsn string) (store.DB, error) {
	db, err := sqlstore.Open(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// newController restores the timer from db. Interval lengths given on the
// command line replace the ones saved by an earlier run.
func (e *appEnv) newController(
	cliCtx *cli.Context,
	db store.DB,
) *pomodoro.Controller {
	ctrl := pomodoro.New(
		cliCtx.Context,
		e.cfg.PomodoroSettings(),
		pomodoro.WithLogger(e.logger.Logger),
		pomodoro.WithSessionRecorder(db),
		pomodoro.WithCardTracker(db),
		pomodoro.WithSnapshotStore(store.NewSnapshotStore(db)),
		pomodoro.WithSettingsStore(store.NewSettingsStore(db)),
		pomodoro.WithNotifier(notify.New(notify.FromConfig(e.cfg))),
	)

	for _, name := range durationFlags {
		if cliCtx.IsSet(name) {
			ctrl.UpdateSettings(e.cfg.PomodoroSettings())
			break
		}
	}

	return ctrl
}

// shutdown waits for pending writes and releases the database.
func (e *appEnv) shutdown(ctrl *pomodoro.Controller, db store.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var err error

	if ctrl != nil {
		err = ctrl.Close(ctx)
		if err != nil {
			e.logger.Error("timer did not shut down cleanly", slog.Any("error", err))
		}
	}

	if db != nil {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}

	return err
}

func (e *appEnv) close() {
	_ = e.logger.Close()
}
