package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/models"
)

func TestMigrateLegacySessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stillmove.db")

	started := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

	db, err := bolt.Open(path, 0o600, nil)
	require.NoError(t, err)

	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(sessionBucket))
		if err != nil {
			return err
		}

		value, err := json.Marshal(models.SessionRecord{
			StartedAt:       started,
			DurationMinutes: 25,
			SessionType:     models.SessionFocus,
			WasCompleted:    true,
		})
		if err != nil {
			return err
		}

		return b.Put([]byte(started.Format(time.RFC3339)), value)
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	c, err := NewClient(path)
	require.NoError(t, err)

	defer c.Close()

	ctx := context.Background()

	got, err := c.ListSessionsForDate(ctx, "2026-03-10")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotEmpty(t, got[0].ID)
	assert.Equal(t, "2026-03-10", got[0].Date)
	assert.True(t, got[0].WasCompleted)

	require.NoError(t, c.DeleteSession(ctx, got[0].ID))

	got, err = c.ListSessionsForDate(ctx, "2026-03-10")
	require.NoError(t, err)
	assert.Empty(t, got)
}
