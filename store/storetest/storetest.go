// Package storetest holds the behaviour every store.DB implementation shares
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/models"
	"github.com/doni-wahyudi/stillmove-planner-sub001/store"
)

// Open returns a fresh, empty store. Implementations close it through
// t.Cleanup.
type Open func(t *testing.T) store.DB

func ptr[T any](v T) *T {
	return &v
}

func record(id string, started time.Time) *models.SessionRecord {
	return &models.SessionRecord{
		ID:              id,
		Date:            started.Format(models.DateLayout),
		StartedAt:       started,
		DurationMinutes: 25,
		SessionType:     models.SessionFocus,
	}
}

var equalTimes = cmp.Comparer(func(a, b time.Time) bool {
	return a.Equal(b)
})

// Run exercises the full store.DB contract against open.
func Run(t *testing.T, open Open) {
	t.Helper()

	t.Run("SessionLifecycle", func(t *testing.T) {
		testSessionLifecycle(t, open(t))
	})

	t.Run("RetriedCreateReplaces", func(t *testing.T) {
		testRetriedCreate(t, open(t))
	})

	t.Run("MissingSession", func(t *testing.T) {
		testMissingSession(t, open(t))
	})

	t.Run("ListOrder", func(t *testing.T) {
		testListOrder(t, open(t))
	})

	t.Run("CardCounters", func(t *testing.T) {
		testCardCounters(t, open(t))
	})

	t.Run("Settings", func(t *testing.T) {
		testSettings(t, open(t))
	})

	t.Run("SnapshotAdapter", func(t *testing.T) {
		testSnapshotAdapter(t, open(t))
	})
}

func testSessionLifecycle(t *testing.T, db store.DB) {
	ctx := context.Background()
	started := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

	rec := record("", started)
	rec.TaskDescription = ptr("write report")
	rec.LinkedGoalID = ptr("goal-1")

	id, err := db.CreateSession(ctx, rec)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	completed := started.Add(25 * time.Minute)

	err = db.UpdateSession(ctx, id, models.SessionPatch{
		CompletedAt:     &completed,
		WasCompleted:    ptr(true),
		DurationMinutes: ptr(25),
	})
	require.NoError(t, err)

	got, err := db.ListSessionsForDate(ctx, "2026-03-10")
	require.NoError(t, err)
	require.Len(t, got, 1)

	want := *rec
	want.ID = id
	want.CompletedAt = &completed
	want.WasCompleted = true

	if diff := cmp.Diff(want, got[0], equalTimes); diff != "" {
		t.Fatalf("session mismatch (-want +got):\n%s", diff)
	}

	err = db.UpdateSession(ctx, id, models.SessionPatch{
		Task: &models.TaskFields{Description: ptr("renamed")},
	})
	require.NoError(t, err)

	got, err = db.ListSessionsForDate(ctx, "2026-03-10")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "renamed", *got[0].TaskDescription)
	assert.Nil(t, got[0].LinkedGoalID)
	assert.True(t, got[0].WasCompleted)

	require.NoError(t, db.DeleteSession(ctx, id))

	got, err = db.ListSessionsForDate(ctx, "2026-03-10")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func testRetriedCreate(t *testing.T, db store.DB) {
	ctx := context.Background()
	started := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

	_, err := db.CreateSession(ctx, record("session-1", started))
	require.NoError(t, err)

	rec := record("session-1", started)
	rec.DurationMinutes = 50

	_, err = db.CreateSession(ctx, rec)
	require.NoError(t, err)

	got, err := db.ListSessionsForDate(ctx, "2026-03-10")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 50, got[0].DurationMinutes)
}

func testMissingSession(t *testing.T, db store.DB) {
	ctx := context.Background()

	err := db.UpdateSession(ctx, "nope", models.SessionPatch{
		WasCompleted: ptr(true),
	})
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = db.DeleteSession(ctx, "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = db.ListSessionsForDate(ctx, "10/03/2026")
	assert.ErrorIs(t, err, store.ErrInvalidDate)
}

func testListOrder(t *testing.T, db store.DB) {
	ctx := context.Background()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)

	for _, tc := range []struct {
		id     string
		offset time.Duration
	}{
		{"c", 15 * time.Hour},
		{"a", 9 * time.Hour},
		{"before", -time.Minute},
		{"b", 9*time.Hour + 30*time.Minute},
		{"after", 24 * time.Hour},
	} {
		_, err := db.CreateSession(ctx, record(tc.id, day.Add(tc.offset)))
		require.NoError(t, err)
	}

	got, err := db.ListSessionsForDate(ctx, "2026-03-10")
	require.NoError(t, err)

	ids := make([]string, 0, len(got))
	for i := range got {
		ids = append(ids, got[i].ID)
	}

	assert.Equal(t, []string{"a", "b", "c"}, ids)

	got, err = db.ListSessionsForRange(
		ctx,
		day.Add(-time.Hour),
		day.Add(48*time.Hour),
	)
	require.NoError(t, err)
	assert.Len(t, got, 5)
	assert.Equal(t, "before", got[0].ID)
	assert.Equal(t, "after", got[4].ID)
}

func testCardCounters(t *testing.T, db store.DB) {
	ctx := context.Background()

	n, err := db.CardPomodoros(ctx, "card-1")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	for range 3 {
		require.NoError(t, db.IncrementCardPomodoros(ctx, "card-1"))
	}

	require.NoError(t, db.IncrementCardPomodoros(ctx, "card-2"))

	n, err = db.CardPomodoros(ctx, "card-1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = db.CardPomodoros(ctx, "card-2")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func testSettings(t *testing.T, db store.DB) {
	ctx := context.Background()

	v, err := db.GetSetting(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, db.PutSetting(ctx, "k", []byte(`{"a":1}`)))
	require.NoError(t, db.PutSetting(ctx, "k", []byte(`{"a":2}`)))

	v, err = db.GetSetting(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":2}`, string(v))
}

func testSnapshotAdapter(t *testing.T, db store.DB) {
	ctx := context.Background()
	snapshots := store.NewSnapshotStore(db)

	got, err := snapshots.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	want := &models.TimerSnapshot{
		SavedAt:        time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
		Task:           &models.TaskRef{Kind: "card", ID: "card-1", Label: "Ship"},
		CalendarDay:    "2026-03-10",
		Mode:           models.SessionShortBreak,
		CompletedToday: []models.CompletedSession{},
		TimeRemaining:  120,
		SessionCount:   1,
		Running:        true,
	}

	require.NoError(t, snapshots.SaveSnapshot(ctx, want))

	got, err = snapshots.LoadSnapshot(ctx)
	require.NoError(t, err)

	if diff := cmp.Diff(want, got, equalTimes); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}
