package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/models"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/pomodoro"
)

const (
	snapshotKey = "timer_snapshot"
	settingsKey = "pomodoro_settings"
)

// SnapshotStore keeps the daily timer snapshot as a JSON blob.
type SnapshotStore struct {
	kv KV
}

func NewSnapshotStore(kv KV) *SnapshotStore {
	return &SnapshotStore{kv: kv}
}

func (s *SnapshotStore) LoadSnapshot(ctx context.Context) (*models.TimerSnapshot, error) {
	b, err := s.kv.GetSetting(ctx, snapshotKey)
	if err != nil || b == nil {
		return nil, err
	}

	var snap models.TimerSnapshot

	err = json.Unmarshal(b, &snap)
	if err != nil {
		return nil, err
	}

	return &snap, nil
}

func (s *SnapshotStore) SaveSnapshot(ctx context.Context, snap *models.TimerSnapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	return s.kv.PutSetting(ctx, snapshotKey, b)
}

// customSettings is the stored form of interval lengths, in whole minutes.
type customSettings struct {
	FocusMinutes            int `json:"focus_minutes"`
	ShortBreakMinutes       int `json:"short_break_minutes"`
	LongBreakMinutes        int `json:"long_break_minutes"`
	SessionsBeforeLongBreak int `json:"sessions_before_long_break"`
}

// SettingsStore keeps interval lengths customised at runtime.
type SettingsStore struct {
	kv KV
}

func NewSettingsStore(kv KV) *SettingsStore {
	return &SettingsStore{kv: kv}
}

func (s *SettingsStore) LoadSettings(ctx context.Context) (*pomodoro.Settings, error) {
	b, err := s.kv.GetSetting(ctx, settingsKey)
	if err != nil || b == nil {
		return nil, err
	}

	var cs customSettings

	err = json.Unmarshal(b, &cs)
	if err != nil {
		return nil, err
	}

	return &pomodoro.Settings{
		Focus:                   time.Duration(cs.FocusMinutes) * time.Minute,
		ShortBreak:              time.Duration(cs.ShortBreakMinutes) * time.Minute,
		LongBreak:               time.Duration(cs.LongBreakMinutes) * time.Minute,
		SessionsBeforeLongBreak: cs.SessionsBeforeLongBreak,
	}, nil
}

func (s *SettingsStore) SaveSettings(ctx context.Context, settings pomodoro.Settings) error {
	b, err := json.Marshal(customSettings{
		FocusMinutes:            settings.Minutes(pomodoro.Focus),
		ShortBreakMinutes:       settings.Minutes(pomodoro.ShortBreak),
		LongBreakMinutes:        settings.Minutes(pomodoro.LongBreak),
		SessionsBeforeLongBreak: settings.SessionsBeforeLongBreak,
	})
	if err != nil {
		return err
	}

	return s.kv.PutSetting(ctx, settingsKey, b)
}
