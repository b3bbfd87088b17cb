// Package sqlstore implements the session store on SQLite and PostgreSQL
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/models"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/osutil"
	"github.com/doni-wahyudi/stillmove-planner-sub001/store"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// timeLayout keeps stored timestamps sortable as text in both dialects.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS pomodoro_sessions (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		started_at TEXT NOT NULL,
		completed_at TEXT,
		duration_minutes INTEGER NOT NULL,
		session_type TEXT NOT NULL,
		was_completed BOOLEAN NOT NULL DEFAULT FALSE,
		task_description TEXT,
		linked_goal_id TEXT,
		linked_time_block_id TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_pomodoro_sessions_started_at
		ON pomodoro_sessions (started_at)`,
	`CREATE TABLE IF NOT EXISTS card_pomodoros (
		card_id TEXT PRIMARY KEY,
		count INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS kv_settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
}

const sessionColumns = `id, date, started_at, completed_at, duration_minutes,
	session_type, was_completed, task_description, linked_goal_id,
	linked_time_block_id`

// Store is a SQL backed session store.
type Store struct {
	db     *sql.DB
	driver string
}

var _ store.DB = (*Store)(nil)

// Open connects to the database and creates the schema. For sqlite the dsn
// is a file path.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	switch driver {
	case DriverSQLite:
		err := os.MkdirAll(filepath.Dir(dsn), osutil.DirPermission)
		if err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	case DriverPostgres:
	default:
		return nil, store.ErrUnsupportedDriver.Fmt(driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite {
		// a single connection serialises writers instead of failing with
		// SQLITE_BUSY
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db, driver: driver}

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = s.migrate(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders into the $n form postgres expects.
func rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}

	var (
		b strings.Builder
		n int
	)

	for _, r := range query {
		if r != '?' {
			b.WriteRune(r)
			continue
		}

		n++

		b.WriteString("$" + strconv.Itoa(n))
	}

	return b.String()
}

func (s *Store) q(query string) string {
	return rebind(s.driver, query)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}

	v := formatTime(*t)

	return &v
}

func (s *Store) CreateSession(
	ctx context.Context,
	rec *models.SessionRecord,
) (string, error) {
	r := *rec
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, s.q(`INSERT INTO pomodoro_sessions (`+sessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			date = excluded.date,
			started_at = excluded.started_at,
			completed_at = excluded.completed_at,
			duration_minutes = excluded.duration_minutes,
			session_type = excluded.session_type,
			was_completed = excluded.was_completed,
			task_description = excluded.task_description,
			linked_goal_id = excluded.linked_goal_id,
			linked_time_block_id = excluded.linked_time_block_id`),
		r.ID,
		r.Date,
		formatTime(r.StartedAt),
		formatTimePtr(r.CompletedAt),
		r.DurationMinutes,
		string(r.SessionType),
		r.WasCompleted,
		r.TaskDescription,
		r.LinkedGoalID,
		r.LinkedTimeBlockID,
	)
	if err != nil {
		return "", err
	}

	return r.ID, nil
}

func (s *Store) UpdateSession(
	ctx context.Context,
	id string,
	patch models.SessionPatch,
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	row := tx.QueryRowContext(
		ctx,
		s.q(`SELECT `+sessionColumns+` FROM pomodoro_sessions WHERE id = ?`),
		id,
	)

	rec, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound.Wrap(errors.New(id))
	}

	if err != nil {
		return err
	}

	rec.Apply(patch)

	_, err = tx.ExecContext(ctx, s.q(`UPDATE pomodoro_sessions SET
			completed_at = ?,
			duration_minutes = ?,
			was_completed = ?,
			task_description = ?,
			linked_goal_id = ?,
			linked_time_block_id = ?
		WHERE id = ?`),
		formatTimePtr(rec.CompletedAt),
		rec.DurationMinutes,
		rec.WasCompleted,
		rec.TaskDescription,
		rec.LinkedGoalID,
		rec.LinkedTimeBlockID,
		id,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) DeleteSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(
		ctx,
		s.q(`DELETE FROM pomodoro_sessions WHERE id = ?`),
		id,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		return store.ErrNotFound.Wrap(errors.New(id))
	}

	return nil
}

func (s *Store) ListSessionsForDate(
	ctx context.Context,
	date string,
) ([]models.SessionRecord, error) {
	start, end, err := store.DayBounds(date, time.Local)
	if err != nil {
		return nil, err
	}

	return s.ListSessionsForRange(ctx, start, end)
}

func (s *Store) ListSessionsForRange(
	ctx context.Context,
	start, end time.Time,
) ([]models.SessionRecord, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`SELECT `+sessionColumns+`
		FROM pomodoro_sessions
		WHERE started_at >= ? AND started_at <= ?
		ORDER BY started_at, id`),
		formatTime(start),
		formatTime(end),
	)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var sessions []models.SessionRecord

	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, err
		}

		sessions = append(sessions, *rec)
	}

	return sessions, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*models.SessionRecord, error) {
	var (
		rec         models.SessionRecord
		startedAt   string
		completedAt sql.NullString
		sessionType string
		desc        sql.NullString
		goalID      sql.NullString
		timeBlockID sql.NullString
	)

	err := row.Scan(
		&rec.ID,
		&rec.Date,
		&startedAt,
		&completedAt,
		&rec.DurationMinutes,
		&sessionType,
		&rec.WasCompleted,
		&desc,
		&goalID,
		&timeBlockID,
	)
	if err != nil {
		return nil, err
	}

	rec.SessionType = models.SessionType(sessionType)

	rec.StartedAt, err = time.Parse(timeLayout, startedAt)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		t, err := time.Parse(timeLayout, completedAt.String)
		if err != nil {
			return nil, err
		}

		rec.CompletedAt = &t
	}

	rec.TaskDescription = nullable(desc)
	rec.LinkedGoalID = nullable(goalID)
	rec.LinkedTimeBlockID = nullable(timeBlockID)

	return &rec, nil
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}

	return &s.String
}

func (s *Store) IncrementCardPomodoros(ctx context.Context, cardID string) error {
	_, err := s.db.ExecContext(ctx, s.q(`INSERT INTO card_pomodoros (card_id, count)
		VALUES (?, 1)
		ON CONFLICT (card_id) DO UPDATE SET count = card_pomodoros.count + 1`),
		cardID,
	)

	return err
}

func (s *Store) CardPomodoros(ctx context.Context, cardID string) (int, error) {
	var n int

	err := s.db.QueryRowContext(
		ctx,
		s.q(`SELECT count FROM card_pomodoros WHERE card_id = ?`),
		cardID,
	).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}

	return n, err
}

func (s *Store) GetSetting(ctx context.Context, key string) ([]byte, error) {
	var value string

	err := s.db.QueryRowContext(
		ctx,
		s.q(`SELECT value FROM kv_settings WHERE key = ?`),
		key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return []byte(value), nil
}

func (s *Store) PutSetting(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, s.q(`INSERT INTO kv_settings (key, value)
		VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`),
		key,
		string(value),
	)

	return err
}
