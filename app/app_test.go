package app

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/models"
	"github.com/doni-wahyudi/stillmove-planner-sub001/store"
)

func init() {
	pterm.DisableStyling()
}

var base = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.Local)

func ptr[T any](v T) *T {
	return &v
}

func sampleSessions() []models.SessionRecord {
	return []models.SessionRecord{
		{
			ID:              "a",
			StartedAt:       base,
			CompletedAt:     ptr(base.Add(25 * time.Minute)),
			Date:            "2026-03-02",
			SessionType:     models.SessionFocus,
			DurationMinutes: 25,
			WasCompleted:    true,
			TaskDescription: ptr("write report"),
		},
		{
			ID:              "b",
			StartedAt:       base.Add(time.Hour),
			CompletedAt:     ptr(base.Add(time.Hour + 10*time.Minute)),
			Date:            "2026-03-02",
			SessionType:     models.SessionFocus,
			DurationMinutes: 10,
			LinkedGoalID:    ptr("g-1"),
		},
		{
			ID:              "c",
			StartedAt:       base.Add(2 * time.Hour),
			Date:            "2026-03-02",
			SessionType:     models.SessionFocus,
			DurationMinutes: 25,
		},
	}
}

func openTestStore(t *testing.T, sessions []models.SessionRecord) store.DB {
	t.Helper()

	db, err := store.NewClient(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	for i := range sessions {
		_, err := db.CreateSession(context.Background(), &sessions[i])
		require.NoError(t, err)
	}

	return db
}

func storedSessions(t *testing.T, db store.DB) []models.SessionRecord {
	t.Helper()

	got, err := db.ListSessionsForDate(context.Background(), "2026-03-02")
	require.NoError(t, err)

	return got
}

func TestListSessions(t *testing.T) {
	testCases := []struct {
		name     string
		sessions []models.SessionRecord
		contains []string
		asJSON   bool
	}{
		{
			name:     "table",
			sessions: sampleSessions(),
			contains: []string{
				"START DATE",
				"Mar 02, 2026 09:00 AM",
				"Mar 02, 2026 09:25 AM",
				"write report",
				"goal g-1",
				"completed",
				"abandoned",
				"open",
			},
		},
		{
			name:     "empty table",
			contains: []string{noSessionsMsg},
		},
		{
			name:     "json",
			sessions: sampleSessions()[:1],
			asJSON:   true,
			contains: []string{
				`"id": "a"`,
				`"task_description": "write report"`,
				`"was_completed": true`,
			},
		},
		{
			name:     "empty json",
			asJSON:   true,
			contains: []string{"[]"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer

			err := listSessions(&buf, tc.sessions, tc.asJSON)
			require.NoError(t, err)

			for _, want := range tc.contains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestDelSessions(t *testing.T) {
	db := openTestStore(t, sampleSessions())

	var out bytes.Buffer

	err := delSessions(
		context.Background(),
		db,
		storedSessions(t, db)[:2],
		prompter{in: strings.NewReader("\n"), out: &out},
		false,
	)
	require.NoError(t, err)

	remaining := storedSessions(t, db)
	require.Len(t, remaining, 1)
	assert.Equal(t, "c", remaining[0].ID)
	assert.Contains(t, out.String(), "2 session(s) deleted")
}

func TestDelSessionsAborted(t *testing.T) {
	db := openTestStore(t, sampleSessions())

	err := delSessions(
		context.Background(),
		db,
		storedSessions(t, db),
		prompter{in: strings.NewReader(""), out: &bytes.Buffer{}},
		false,
	)
	require.ErrorIs(t, err, errAborted)
	assert.Len(t, storedSessions(t, db), 3)
}

func TestEditTask(t *testing.T) {
	testCases := []struct {
		name string
		task string
	}{
		{name: "replace", task: "review PRs"},
		{name: "clear", task: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := openTestStore(t, sampleSessions())

			err := editTask(
				context.Background(),
				db,
				storedSessions(t, db),
				tc.task,
				prompter{in: strings.NewReader(""), out: &bytes.Buffer{}},
				true,
			)
			require.NoError(t, err)

			for _, sess := range storedSessions(t, db) {
				assert.Nil(t, sess.LinkedGoalID)
				assert.Nil(t, sess.LinkedTimeBlockID)

				if tc.task == "" {
					assert.Nil(t, sess.TaskDescription)
					continue
				}

				require.NotNil(t, sess.TaskDescription)
				assert.Equal(t, tc.task, *sess.TaskDescription)
			}
		})
	}
}

func TestTrimTask(t *testing.T) {
	assert.Equal(t, "write the report", trimTask([]string{" write", "the", "report "}))
	assert.Empty(t, trimTask(nil))
}

func TestCommands(t *testing.T) {
	a := Get()

	for _, name := range []string{"status", "sessions", "stats", "serve", "credentials", "edit-config"} {
		assert.NotNil(t, a.Command(name), name)
	}

	sessions := a.Command("sessions")
	require.NotNil(t, sessions)

	names := make([]string, 0, len(sessions.Subcommands))
	for _, cmd := range sessions.Subcommands {
		names = append(names, cmd.Name)
	}

	assert.ElementsMatch(t, []string{"delete", "edit"}, names)
}
