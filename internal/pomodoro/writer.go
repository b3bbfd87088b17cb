package pomodoro

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sourcegraph/conc/panics"
)

const defaultWriteTimeout = 10 * time.Second

// job is one unit of background persistence. A job with a nil fn is a
// barrier used by flush.
type job struct {
	fn   func(ctx context.Context) error
	done chan struct{}
	key  string
	name string
}

// writer runs persistence jobs one at a time in submission order, so the
// writes belonging to one session record can never overtake each other.
// Failures are logged and dropped.
type writer struct {
	base    context.Context
	logger  *slog.Logger
	cond    *sync.Cond
	stopped chan struct{}
	queue   []*job
	timeout time.Duration
	mu      sync.Mutex
	closed  bool
}

func newWriter(ctx context.Context, logger *slog.Logger, timeout time.Duration) *writer {
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}

	w := &writer{
		base:    context.WithoutCancel(ctx),
		logger:  logger,
		timeout: timeout,
		stopped: make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)

	go w.loop()

	return w
}

// submit queues fn. It reports false once the writer is closed.
func (w *writer) submit(name string, fn func(ctx context.Context) error) bool {
	return w.enqueue(&job{name: name, fn: fn})
}

// submitLatest queues fn under key, replacing a queued job with the same key
// that has not started yet.
func (w *writer) submitLatest(key, name string, fn func(ctx context.Context) error) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return false
	}

	for _, j := range w.queue {
		if j.key == key {
			j.fn = fn
			return true
		}
	}

	w.queue = append(w.queue, &job{key: key, name: name, fn: fn})
	w.cond.Signal()

	return true
}

func (w *writer) enqueue(j *job) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return false
	}

	w.queue = append(w.queue, j)
	w.cond.Signal()

	return true
}

// flush blocks until every job queued before the call has run.
func (w *writer) flush(ctx context.Context) error {
	barrier := &job{name: "flush", done: make(chan struct{})}

	if !w.enqueue(barrier) {
		return w.wait(ctx)
	}

	select {
	case <-barrier.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close stops accepting jobs and waits for the queue to drain.
func (w *writer) close(ctx context.Context) error {
	w.mu.Lock()
	w.closed = true
	w.cond.Broadcast()
	w.mu.Unlock()

	return w.wait(ctx)
}

func (w *writer) wait(ctx context.Context) error {
	select {
	case <-w.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *writer) loop() {
	defer close(w.stopped)

	for {
		w.mu.Lock()

		for len(w.queue) == 0 && !w.closed {
			w.cond.Wait()
		}

		if len(w.queue) == 0 {
			w.mu.Unlock()
			return
		}

		j := w.queue[0]
		w.queue[0] = nil
		w.queue = w.queue[1:]

		w.mu.Unlock()

		w.run(j)
	}
}

func (w *writer) run(j *job) {
	if j.fn == nil {
		close(j.done)
		return
	}

	ctx, cancel := context.WithTimeout(w.base, w.timeout)
	defer cancel()

	var (
		err     error
		catcher panics.Catcher
	)

	catcher.Try(func() {
		err = j.fn(ctx)
	})

	if r := catcher.Recovered(); r != nil {
		err = r.AsError()
	}

	if err != nil {
		w.logger.Warn(
			"background write failed",
			slog.String("job", j.name),
			slog.Any("error", err),
		)

		return
	}

	w.logger.Debug("background write done", slog.String("job", j.name))
}
