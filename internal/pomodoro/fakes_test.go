package pomodoro

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/models"
)

var errStoreDown = errors.New("store is down")

// memStore is an in-memory stand-in for every persistence collaborator. It
// records the calls it receives in order.
type memStore struct {
	records  map[string]*models.SessionRecord
	cards    map[string]int
	snap     *models.TimerSnapshot
	settings *Settings
	calls    []string
	saves    int
	mu       sync.Mutex
	fail     bool
}

func newMemStore() *memStore {
	return &memStore{
		records: make(map[string]*models.SessionRecord),
		cards:   make(map[string]int),
	}
}

func (m *memStore) record(format string, args ...any) {
	m.calls = append(m.calls, fmt.Sprintf(format, args...))
}

func (m *memStore) CreateSession(_ context.Context, rec *models.SessionRecord) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("create %s", rec.ID)

	if m.fail {
		return "", errStoreDown
	}

	r := *rec
	m.records[rec.ID] = &r

	return rec.ID, nil
}

func (m *memStore) UpdateSession(_ context.Context, id string, patch models.SessionPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("update %s", id)

	if m.fail {
		return errStoreDown
	}

	r, ok := m.records[id]
	if !ok {
		return fmt.Errorf("session %s not found", id)
	}

	r.Apply(patch)

	return nil
}

func (m *memStore) DeleteSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("delete %s", id)

	if m.fail {
		return errStoreDown
	}

	delete(m.records, id)

	return nil
}

func (m *memStore) IncrementCardPomodoros(_ context.Context, cardID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("card %s", cardID)

	if m.fail {
		return errStoreDown
	}

	m.cards[cardID]++

	return nil
}

func (m *memStore) LoadSnapshot(context.Context) (*models.TimerSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.snap, nil
}

func (m *memStore) SaveSnapshot(_ context.Context, snap *models.TimerSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saves++

	if m.fail {
		return errStoreDown
	}

	m.snap = snap

	return nil
}

func (m *memStore) LoadSettings(context.Context) (*Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.settings, nil
}

func (m *memStore) SaveSettings(_ context.Context, s Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail {
		return errStoreDown
	}

	m.settings = &s

	return nil
}

func (m *memStore) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.calls)
}

func (m *memStore) Record(id string) (models.SessionRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.records[id]
	if !ok {
		return models.SessionRecord{}, false
	}

	return *r, true
}

func (m *memStore) Snapshot() *models.TimerSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.snap
}

type recordingNotifier struct {
	got []Completion
	mu  sync.Mutex
}

func (n *recordingNotifier) Notify(_ context.Context, c Completion) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.got = append(n.got, c)

	return nil
}

func (n *recordingNotifier) Completions() []Completion {
	n.mu.Lock()
	defer n.mu.Unlock()

	return slices.Clone(n.got)
}

// t0 is mid-morning so that a handful of intervals never cross midnight.
var t0 = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.Local)

type harness struct {
	c      *Controller
	clock  *clockwork.FakeClock
	store  *memStore
	alerts *recordingNotifier
}

// newHarness builds a controller on a fake clock whose ticker never fires on
// its own, so tests drive the countdown with Tick and Reconcile.
func newHarness(t *testing.T, store *memStore, start time.Time, opts ...Option) *harness {
	t.Helper()

	h := &harness{
		clock:  clockwork.NewFakeClockAt(start),
		store:  store,
		alerts: &recordingNotifier{},
	}

	ids := 0

	base := []Option{
		WithClock(h.clock),
		WithTickInterval(24 * time.Hour),
		WithSessionRecorder(store),
		WithCardTracker(store),
		WithSnapshotStore(store),
		WithSettingsStore(store),
		WithNotifier(h.alerts),
		WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("session-%d", ids)
		}),
	}

	h.c = New(context.Background(), DefaultSettings(), append(base, opts...)...)

	t.Cleanup(func() {
		_ = h.c.Close(context.Background())
	})

	return h
}

// advance moves the fake clock forward by whole seconds.
func (h *harness) advance(seconds int) {
	h.clock.Advance(time.Duration(seconds) * time.Second)
}

func (h *harness) flush(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, h.c.Flush(ctx))
}

// close shuts the controller down so that notifications can be inspected.
func (h *harness) close(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, h.c.Close(ctx))
}
