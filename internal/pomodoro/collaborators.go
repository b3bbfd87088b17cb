package pomodoro

import (
	"context"
	"time"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/models"
)

// SessionRecorder persists the lifecycle of focus intervals.
type SessionRecorder interface {
	CreateSession(ctx context.Context, rec *models.SessionRecord) (string, error)
	UpdateSession(ctx context.Context, id string, patch models.SessionPatch) error
	DeleteSession(ctx context.Context, id string) error
}

// CardTracker counts the focus intervals spent on a kanban card.
type CardTracker interface {
	IncrementCardPomodoros(ctx context.Context, cardID string) error
}

// SnapshotStore keeps the daily timer snapshot. LoadSnapshot returns nil
// and no error when nothing has been saved yet.
type SnapshotStore interface {
	LoadSnapshot(ctx context.Context) (*models.TimerSnapshot, error)
	SaveSnapshot(ctx context.Context, snap *models.TimerSnapshot) error
}

// SettingsStore keeps interval lengths customised at runtime. LoadSettings
// returns nil and no error when nothing has been saved yet.
type SettingsStore interface {
	LoadSettings(ctx context.Context) (*Settings, error)
	SaveSettings(ctx context.Context, s Settings) error
}

// Completion describes an interval that just ran out.
type Completion struct {
	At           time.Time
	Task         TaskAssociation
	Finished     Mode
	Next         Mode
	SessionCount int
	AutoStarted  bool
}

// Notifier alerts the user that an interval has finished.
type Notifier interface {
	Notify(ctx context.Context, c Completion) error
}

// discard is the collaborator used when none is configured.
type discard struct{}

func (discard) CreateSession(_ context.Context, rec *models.SessionRecord) (string, error) {
	return rec.ID, nil
}

func (discard) UpdateSession(context.Context, string, models.SessionPatch) error {
	return nil
}

func (discard) DeleteSession(context.Context, string) error {
	return nil
}

func (discard) IncrementCardPomodoros(context.Context, string) error {
	return nil
}

func (discard) LoadSnapshot(context.Context) (*models.TimerSnapshot, error) {
	return nil, nil
}

func (discard) SaveSnapshot(context.Context, *models.TimerSnapshot) error {
	return nil
}

func (discard) LoadSettings(context.Context) (*Settings, error) {
	return nil, nil
}

func (discard) SaveSettings(context.Context, Settings) error {
	return nil
}

func (discard) Notify(context.Context, Completion) error {
	return nil
}
