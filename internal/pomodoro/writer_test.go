package pomodoro

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type jobLog struct {
	ran []string
	mu  sync.Mutex
}

func (l *jobLog) job(name string) func(context.Context) error {
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()

		l.ran = append(l.ran, name)

		return nil
	}
}

func (l *jobLog) names() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.ran...)
}

// block occupies the writer until the returned func is called.
func block(t *testing.T, w *writer) func() {
	t.Helper()

	started := make(chan struct{})
	release := make(chan struct{})

	w.submit("block", func(context.Context) error {
		close(started)
		<-release

		return nil
	})

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("writer never picked up the blocking job")
	}

	return func() { close(release) }
}

func TestWriterKeepsSubmissionOrder(t *testing.T) {
	w := newWriter(context.Background(), discardLogger(), time.Second)
	log := &jobLog{}

	for _, name := range []string{"create", "update", "delete"} {
		w.submit(name, log.job(name))
	}

	require.NoError(t, w.flush(context.Background()))
	assert.Equal(t, []string{"create", "update", "delete"}, log.names())
}

func TestWriterCoalescesQueuedSnapshots(t *testing.T) {
	w := newWriter(context.Background(), discardLogger(), time.Second)
	log := &jobLog{}

	release := block(t, w)

	w.submitLatest("snap", "snapshot", log.job("snapshot 1"))
	w.submit("create", log.job("create"))
	w.submitLatest("snap", "snapshot", log.job("snapshot 2"))
	w.submitLatest("snap", "snapshot", log.job("snapshot 3"))

	release()

	require.NoError(t, w.flush(context.Background()))
	assert.Equal(t, []string{"snapshot 3", "create"}, log.names())
}

func TestWriterSurvivesFailures(t *testing.T) {
	w := newWriter(context.Background(), discardLogger(), time.Second)
	log := &jobLog{}

	w.submit("fails", func(context.Context) error {
		return errors.New("disk full")
	})
	w.submit("panics", func(context.Context) error {
		panic("boom")
	})
	w.submit("after", log.job("after"))

	require.NoError(t, w.flush(context.Background()))
	assert.Equal(t, []string{"after"}, log.names())
}

func TestWriterTimesOutJobs(t *testing.T) {
	w := newWriter(context.Background(), discardLogger(), 10*time.Millisecond)

	var got error

	w.submit("slow", func(ctx context.Context) error {
		<-ctx.Done()
		got = ctx.Err()

		return got
	})

	require.NoError(t, w.flush(context.Background()))
	assert.ErrorIs(t, got, context.DeadlineExceeded)
}

func TestWriterClose(t *testing.T) {
	w := newWriter(context.Background(), discardLogger(), time.Second)
	log := &jobLog{}

	w.submit("queued", log.job("queued"))

	require.NoError(t, w.close(context.Background()))
	assert.Equal(t, []string{"queued"}, log.names())

	assert.False(t, w.submit("late", log.job("late")))
	assert.False(t, w.submitLatest("snap", "late", log.job("late")))
	assert.NoError(t, w.flush(context.Background()))
}

func TestWriterFlushHonoursContext(t *testing.T) {
	w := newWriter(context.Background(), discardLogger(), time.Second)

	release := block(t, w)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, w.flush(ctx), context.DeadlineExceeded)
}
