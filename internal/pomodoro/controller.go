// Package pomodoro implements the session controller: a focus and break
// countdown that survives restarts, corrects for drift against the wall
// clock and records focus intervals through best-effort collaborators.
package pomodoro

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/models"
)

const (
	defaultTickInterval = time.Second
	snapshotJobKey      = "snapshot"
)

// Option configures a Controller.
type Option func(*Controller)

func WithClock(clock clockwork.Clock) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func WithSessionRecorder(r SessionRecorder) Option {
	return func(c *Controller) {
		c.recorder = r
	}
}

func WithCardTracker(t CardTracker) Option {
	return func(c *Controller) {
		c.cards = t
	}
}

func WithSnapshotStore(s SnapshotStore) Option {
	return func(c *Controller) {
		c.snapshots = s
	}
}

func WithSettingsStore(s SettingsStore) Option {
	return func(c *Controller) {
		c.settingsStore = s
	}
}

func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		c.notifier = n
	}
}

// WithTickInterval sets how often the countdown is recomputed while running.
func WithTickInterval(d time.Duration) Option {
	return func(c *Controller) {
		c.tickInterval = d
	}
}

// WithIDGenerator replaces the generator of session record ids.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) {
		c.newID = fn
	}
}

// WithWriteTimeout bounds each background persistence call.
func WithWriteTimeout(d time.Duration) Option {
	return func(c *Controller) {
		c.writeTimeout = d
	}
}

// Controller owns the timer state. Transitions are synchronous and
// authoritative; everything they persist is handed to a background writer
// and never awaited.
type Controller struct {
	base          context.Context
	clock         clockwork.Clock
	recorder      SessionRecorder
	cards         CardTracker
	snapshots     SnapshotStore
	settingsStore SettingsStore
	notifier      Notifier
	logger        *slog.Logger
	writer        *writer
	newID         func() string
	tickStop      chan struct{}
	tickDone      chan struct{}
	subs          map[int]chan State
	openID        string
	anchor        anchor
	state         State
	notifications conc.WaitGroup
	tickInterval  time.Duration
	writeTimeout  time.Duration
	tickGen       uint64
	nextSub       int
	mu            sync.Mutex
	closed        bool
}

// New creates a controller and restores today's snapshot if one was saved.
// A countdown that was running when the snapshot was taken resumes at once.
func New(ctx context.Context, settings Settings, opts ...Option) *Controller {
	c := &Controller{
		base:          context.WithoutCancel(ctx),
		clock:         clockwork.NewRealClock(),
		logger:        slog.Default(),
		recorder:      discard{},
		cards:         discard{},
		snapshots:     discard{},
		settingsStore: discard{},
		notifier:      discard{},
		newID:         uuid.NewString,
		tickInterval:  defaultTickInterval,
		subs:          make(map[int]chan State),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.tickInterval <= 0 {
		c.tickInterval = defaultTickInterval
	}

	c.writer = newWriter(ctx, c.logger, c.writeTimeout)

	settings = c.loadSettings(ctx, settings)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.restoreLocked(ctx, settings)

	return c
}

func (c *Controller) loadSettings(ctx context.Context, settings Settings) Settings {
	saved, err := c.settingsStore.LoadSettings(ctx)
	if err != nil {
		c.logger.Warn("unable to load saved settings", slog.Any("error", err))
	} else if saved != nil {
		settings = *saved
	}

	clamped := settings.Clamp()
	if clamped != settings {
		c.logger.Warn(
			"settings out of range were clamped",
			slog.Any("given", settings),
			slog.Any("clamped", clamped),
		)
	}

	return clamped
}

func (c *Controller) restoreLocked(ctx context.Context, settings Settings) {
	now := c.clock.Now()
	today := dayKey(now)

	c.state = freshState(today, settings)
	c.state.Settings = settings

	snap, err := c.snapshots.LoadSnapshot(ctx)
	if err != nil {
		c.logger.Warn("unable to load timer snapshot", slog.Any("error", err))
		return
	}

	if snap == nil {
		return
	}

	mode, err := ParseMode(string(snap.Mode))
	if err != nil || snap.CalendarDay != today {
		c.logger.Debug(
			"discarding stale timer snapshot",
			slog.String("day", snap.CalendarDay),
			slog.String("mode", string(snap.Mode)),
		)

		c.discardOpenLocked(snap.OpenSessionID)
		c.commitLocked()

		return
	}

	c.state.Mode = mode
	c.state.Remaining = min(max(snap.TimeRemaining, 0), settings.Seconds(mode))
	c.state.SessionCount = max(snap.SessionCount, 0)
	c.state.CompletedToday = snap.CompletedToday
	c.state.Task = TaskFromRef(snap.Task)
	c.state.Running = snap.Running
	c.state.Paused = snap.Running && snap.Paused

	if mode == Focus && snap.Running {
		c.openID = snap.OpenSessionID
	} else {
		c.discardOpenLocked(snap.OpenSessionID)
	}

	c.logger.Debug(
		"restored timer snapshot",
		slog.String("mode", string(mode)),
		slog.Int("remaining", c.state.Remaining),
		slog.Int("session_count", c.state.SessionCount),
		slog.Bool("running", c.state.Running),
	)

	if c.state.Status() == Running {
		c.anchor = newAnchor(now, c.state.Remaining)
		c.startTickingLocked()

		if c.syncLocked(now) {
			return
		}
	}

	c.commitLocked()
}

// Start begins the current interval. A focus interval opens a session record.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	if c.state.Running {
		return ErrAlreadyRunning
	}

	now := c.clock.Now()
	c.rolloverLocked(now)

	if c.state.Remaining <= 0 {
		c.state.Remaining = c.state.Settings.Seconds(c.state.Mode)
	}

	if c.state.Mode == Focus {
		c.openRecordLocked(now)
	}

	c.state.Running = true
	c.state.Paused = false
	c.anchor = newAnchor(now, c.state.Remaining)
	c.startTickingLocked()

	c.commitLocked()

	return nil
}

// Pause freezes the countdown. If the interval ran out in the meantime it is
// completed first, so a focus interval that expired unnoticed is counted and
// the break it auto-started is the one that ends up paused. ErrNotRunning is
// returned when the completion left nothing running.
func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	if !c.state.Running {
		return ErrNotRunning
	}

	if c.state.Paused {
		return ErrAlreadyPaused
	}

	now := c.clock.Now()

	if c.syncLocked(now) && !c.state.Running {
		return ErrNotRunning
	}

	c.state.Remaining = c.anchor.remainingAt(now)
	c.state.Paused = true
	c.anchor = anchor{}
	c.stopTickingLocked()

	c.commitLocked()

	return nil
}

// Resume continues a paused countdown from where it stopped.
func (c *Controller) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	if !c.state.Running || !c.state.Paused {
		return ErrNotPaused
	}

	now := c.clock.Now()
	c.rolloverLocked(now)

	c.state.Paused = false
	c.anchor = newAnchor(now, c.state.Remaining)
	c.startTickingLocked()

	c.commitLocked()

	return nil
}

// Reset abandons the current interval and returns to an idle focus interval.
// The session count is left alone.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	c.rolloverLocked(c.clock.Now())
	c.discardOpenLocked(c.openID)
	c.idleLocked(Focus)

	c.commitLocked()

	return nil
}

// Skip abandons the current interval and moves on without counting it. A
// skipped focus interval leads to a short break, a skipped break to focus.
func (c *Controller) Skip() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	c.rolloverLocked(c.clock.Now())

	next := Focus
	if c.state.Mode == Focus {
		c.discardOpenLocked(c.openID)
		next = ShortBreak
	}

	c.idleLocked(next)

	c.commitLocked()

	return nil
}

// Tick recomputes the remaining time from the wall clock anchor and
// completes the interval when it has run out. It is driven by the internal
// ticker but may be called directly.
func (c *Controller) Tick() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tickLocked()

	return c.state.clone()
}

// Reconcile is called when the host regains visibility or wakes from sleep.
// It catches the countdown up immediately instead of waiting for the next
// tick, so an interval that ran out while hidden completes right away.
func (c *Controller) Reconcile() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Status() == Running {
		c.logger.Debug("reconciling countdown with wall clock")
	}

	c.tickLocked()

	return c.state.clone()
}

func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.tickGen {
		return
	}

	c.tickLocked()
}

// tickLocked also rolls the daily counters over for a timer that is not
// running, so an idle timer left open past midnight shows the new day.
func (c *Controller) tickLocked() {
	if c.closed {
		return
	}

	now := c.clock.Now()
	rolled := c.rolloverLocked(now)

	if c.state.Status() != Running {
		if rolled {
			c.commitLocked()
		}

		return
	}

	before := c.state.Remaining

	if c.syncLocked(now) {
		return
	}

	if rolled || c.state.Remaining != before {
		c.commitLocked()
	}
}

// SetTask links the timer to task, replacing any previous association. An
// open focus record is updated to match.
func (c *Controller) SetTask(task TaskAssociation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.state.Task = task

	if id := c.openID; id != "" {
		fields := task.fields()

		c.writer.submit("update session task", func(ctx context.Context) error {
			return c.recorder.UpdateSession(ctx, id, models.SessionPatch{
				Task: &fields,
			})
		})
	}

	c.commitLocked()
}

// UpdateSettings clamps and applies new interval lengths, then saves them.
// An idle timer is re-seeded with the new length of its mode; a running one
// keeps going but is cut short if it now exceeds its mode's length.
func (c *Controller) UpdateSettings(s Settings) Settings {
	clamped := s.Clamp()
	if clamped != s {
		c.logger.Warn(
			"settings out of range were clamped",
			slog.Any("given", s),
			slog.Any("clamped", clamped),
		)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return c.state.Settings
	}

	now := c.clock.Now()

	if c.state.Status() == Running {
		c.syncLocked(now)
	}

	c.state.Settings = clamped
	total := clamped.Seconds(c.state.Mode)

	switch {
	case !c.state.Running:
		c.state.Remaining = total
	case c.state.Remaining > total:
		c.state.Remaining = total

		if !c.state.Paused {
			c.anchor = newAnchor(now, total)
		}
	}

	c.writer.submit("save settings", func(ctx context.Context) error {
		return c.settingsStore.SaveSettings(ctx, clamped)
	})

	c.commitLocked()

	return clamped
}

// Settings returns the interval lengths in effect.
func (c *Controller) Settings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state.Settings
}

// State returns a copy of the current state with the remaining time and the
// calendar day brought up to date. It never completes an interval.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed && c.rolloverLocked(c.clock.Now()) {
		c.commitLocked()
	}

	st := c.state.clone()

	if st.Status() == Running && c.anchor.set {
		st.Remaining = c.anchor.remainingAt(c.clock.Now())
	}

	return st
}

// Subscribe returns a channel receiving the state after every change. Only
// the latest state is kept for a slow reader. The returned func ends the
// subscription.
func (c *Controller) Subscribe() (<-chan State, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan State, 1)

	if c.closed {
		close(ch)
		return ch, func() {}
	}

	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch

	var once sync.Once

	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()

			if _, ok := c.subs[id]; ok {
				delete(c.subs, id)
				close(ch)
			}
		})
	}
}

// Flush waits until every write queued so far has been attempted.
func (c *Controller) Flush(ctx context.Context) error {
	return c.writer.flush(ctx)
}

// Close stops the countdown ticker, saves a final snapshot and waits for
// queued writes and notifications to finish. A running countdown keeps its
// place in the snapshot and resumes on the next start.
func (c *Controller) Close(ctx context.Context) error {
	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()
		return nil
	}

	if c.state.Status() == Running && c.anchor.set {
		c.state.Remaining = c.anchor.remainingAt(c.clock.Now())
	}

	c.commitLocked()
	c.closed = true

	done := c.stopTickingLocked()

	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}

	c.mu.Unlock()

	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	notified := make(chan struct{})

	go func() {
		defer close(notified)
		c.notifications.Wait()
	}()

	select {
	case <-notified:
	case <-ctx.Done():
		return ctx.Err()
	}

	return c.writer.close(ctx)
}

// syncLocked brings the remaining time up to date and runs the completion
// when it reaches zero. It reports whether an interval completed.
func (c *Controller) syncLocked(now time.Time) bool {
	if c.state.Status() != Running || !c.anchor.set {
		return false
	}

	c.rolloverLocked(now)

	c.state.Remaining = c.anchor.remainingAt(now)
	if c.state.Remaining > 0 {
		return false
	}

	c.completeLocked(now)

	return true
}

func (c *Controller) completeLocked(now time.Time) {
	finished := c.state.Mode
	task := c.state.Task
	autoStarted := false

	if finished == Focus {
		minutes := c.state.Settings.Minutes(Focus)

		if id := c.openID; id != "" {
			completedAt := now
			done := true

			c.writer.submit("complete session", func(ctx context.Context) error {
				return c.recorder.UpdateSession(ctx, id, models.SessionPatch{
					CompletedAt:     &completedAt,
					WasCompleted:    &done,
					DurationMinutes: &minutes,
				})
			})
		}

		c.openID = ""

		entry := models.CompletedSession{
			CompletedAt:     now,
			Task:            task.Label(),
			DurationMinutes: minutes,
		}

		if task.Kind() == TaskCard {
			cardID := task.ID()
			entry.CardID = cardID

			c.writer.submit("increment card pomodoros", func(ctx context.Context) error {
				return c.cards.IncrementCardPomodoros(ctx, cardID)
			})
		}

		c.state.CompletedToday = append(c.state.CompletedToday, entry)
		c.state.SessionCount++

		next := NextBreak(c.state.SessionCount, c.state.Settings.SessionsBeforeLongBreak)

		c.state.Mode = next
		c.state.Remaining = c.state.Settings.Seconds(next)
		c.state.Running = true
		c.state.Paused = false
		c.state.Task = NoTask()
		c.anchor = newAnchor(now, c.state.Remaining)
		c.startTickingLocked()

		autoStarted = true
	} else {
		c.idleLocked(Focus)
	}

	c.logger.Info(
		"interval completed",
		slog.String("finished", string(finished)),
		slog.String("next", string(c.state.Mode)),
		slog.Int("session_count", c.state.SessionCount),
	)

	c.notifyLocked(Completion{
		At:           now,
		Task:         task,
		Finished:     finished,
		Next:         c.state.Mode,
		SessionCount: c.state.SessionCount,
		AutoStarted:  autoStarted,
	})

	c.commitLocked()
}

// idleLocked stops the countdown and seeds mode with its full length.
func (c *Controller) idleLocked(mode Mode) {
	c.stopTickingLocked()

	c.state.Mode = mode
	c.state.Remaining = c.state.Settings.Seconds(mode)
	c.state.Running = false
	c.state.Paused = false
	c.anchor = anchor{}
}

// rolloverLocked resets the daily counters once the calendar day changes and
// reports whether it did. A running interval is not interrupted.
func (c *Controller) rolloverLocked(now time.Time) bool {
	today := dayKey(now)
	if today == c.state.Day {
		return false
	}

	c.logger.Debug(
		"calendar day rolled over",
		slog.String("from", c.state.Day),
		slog.String("to", today),
	)

	c.state.Day = today
	c.state.SessionCount = 0
	c.state.CompletedToday = nil

	return true
}

func (c *Controller) openRecordLocked(now time.Time) {
	c.discardOpenLocked(c.openID)

	fields := c.state.Task.fields()
	rec := &models.SessionRecord{
		ID:                c.newID(),
		Date:              dayKey(now),
		StartedAt:         now,
		SessionType:       models.SessionFocus,
		DurationMinutes:   c.state.Settings.Minutes(Focus),
		TaskDescription:   fields.Description,
		LinkedGoalID:      fields.GoalID,
		LinkedTimeBlockID: fields.TimeBlockID,
	}

	c.openID = rec.ID

	c.writer.submit("create session", func(ctx context.Context) error {
		_, err := c.recorder.CreateSession(ctx, rec)
		return err
	})
}

// discardOpenLocked deletes an abandoned session record so it is never
// counted later.
func (c *Controller) discardOpenLocked(id string) {
	if id == "" {
		return
	}

	if id == c.openID {
		c.openID = ""
	}

	c.writer.submit("delete session", func(ctx context.Context) error {
		return c.recorder.DeleteSession(ctx, id)
	})
}

func (c *Controller) notifyLocked(comp Completion) {
	c.notifications.Go(func() {
		var (
			err     error
			catcher panics.Catcher
		)

		catcher.Try(func() {
			err = c.notifier.Notify(c.base, comp)
		})

		if r := catcher.Recovered(); r != nil {
			err = r.AsError()
		}

		if err != nil {
			c.logger.Warn("completion alert failed", slog.Any("error", err))
		}
	})
}

// commitLocked queues a snapshot save and publishes the state to subscribers.
func (c *Controller) commitLocked() {
	snap := c.snapshotLocked()

	c.writer.submitLatest(snapshotJobKey, "save snapshot", func(ctx context.Context) error {
		return c.snapshots.SaveSnapshot(ctx, snap)
	})

	st := c.state.clone()

	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}

		ch <- st
	}
}

func (c *Controller) snapshotLocked() *models.TimerSnapshot {
	st := c.state.clone()

	completed := st.CompletedToday
	if completed == nil {
		completed = []models.CompletedSession{}
	}

	return &models.TimerSnapshot{
		SavedAt:        c.clock.Now(),
		Task:           st.Task.ref(),
		CalendarDay:    st.Day,
		Mode:           models.SessionType(st.Mode),
		OpenSessionID:  c.openID,
		CompletedToday: completed,
		TimeRemaining:  st.Remaining,
		SessionCount:   st.SessionCount,
		Running:        st.Running,
		Paused:         st.Paused,
	}
}

func (c *Controller) startTickingLocked() {
	if c.tickDone != nil || c.closed {
		return
	}

	c.tickGen++
	gen := c.tickGen

	stop := make(chan struct{})
	done := make(chan struct{})
	c.tickStop, c.tickDone = stop, done

	ticker := c.clock.NewTicker(c.tickInterval)

	go func() {
		defer close(done)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.Chan():
				c.tick(gen)
			}
		}
	}()
}

// stopTickingLocked stops the ticker goroutine. A tick already waiting for
// the lock sees a stale generation and does nothing. The returned channel is
// closed once the goroutine has exited.
func (c *Controller) stopTickingLocked() <-chan struct{} {
	if c.tickDone == nil {
		return nil
	}

	c.tickGen++
	close(c.tickStop)

	done := c.tickDone
	c.tickStop, c.tickDone = nil, nil

	return done
}
