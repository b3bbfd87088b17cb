package store

import (
	"context"
	"time"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/models"
)

// DB is the database storage interface.
type DB interface {
	// CreateSession stores a new session record. The record keeps its ID when
	// one is set; otherwise a new one is generated and returned.
	CreateSession(ctx context.Context, rec *models.SessionRecord) (string, error)
	// UpdateSession applies a partial update to a stored record
	UpdateSession(ctx context.Context, id string, patch models.SessionPatch) error
	// DeleteSession removes a record. Unknown ids yield ErrNotFound
	DeleteSession(ctx context.Context, id string) error
	// ListSessionsForDate returns the records of a calendar day (YYYY-MM-DD)
	ListSessionsForDate(ctx context.Context, date string) ([]models.SessionRecord, error)
	// ListSessionsForRange returns the records started within [start, end]
	// ordered by start time
	ListSessionsForRange(
		ctx context.Context,
		start, end time.Time,
	) ([]models.SessionRecord, error)
	// IncrementCardPomodoros adds one completed focus interval to a card
	IncrementCardPomodoros(ctx context.Context, cardID string) error
	// CardPomodoros returns the completed focus intervals of a card
	CardPomodoros(ctx context.Context, cardID string) (int, error)
	KV
	// Close ends the database connection
	Close() error
}

// KV is a key to JSON blob store for small pieces of local state. GetSetting
// returns nil and no error for a missing key.
type KV interface {
	GetSetting(ctx context.Context, key string) ([]byte, error)
	PutSetting(ctx context.Context, key string, value []byte) error
}

// DayBounds returns the first and last instant of a calendar day in loc.
func DayBounds(date string, loc *time.Location) (start, end time.Time, err error) {
	start, err = time.ParseInLocation(models.DateLayout, date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate.Fmt(date).Wrap(err)
	}

	end = start.AddDate(0, 0, 1).Add(-time.Nanosecond)

	return start, end, nil
}
