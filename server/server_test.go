package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/pomodoro"
	"github.com/doni-wahyudi/stillmove-planner-sub001/stats"
	"github.com/doni-wahyudi/stillmove-planner-sub001/store"
)

var t0 = time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

type apiErrorEnvelope struct {
	Error APIError `json:"error"`
}

type stateEnvelope struct {
	State stateResponse `json:"state"`
}

type testServer struct {
	handler http.Handler
	ctrl    *pomodoro.Controller
	clock   *clockwork.FakeClock
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	os.Exit(m.Run())
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := store.NewClient(filepath.Join(t.TempDir(), "stillmove.db"))
	require.NoError(t, err)

	clock := clockwork.NewFakeClockAt(t0)

	ctrl := pomodoro.New(
		context.Background(),
		pomodoro.DefaultSettings(),
		pomodoro.WithClock(clock),
		pomodoro.WithTickInterval(24*time.Hour),
		pomodoro.WithSessionRecorder(db),
		pomodoro.WithCardTracker(db),
		pomodoro.WithSnapshotStore(store.NewSnapshotStore(db)),
		pomodoro.WithSettingsStore(store.NewSettingsStore(db)),
	)

	t.Cleanup(func() {
		_ = ctrl.Close(context.Background())
		_ = db.Close()
	})

	return &testServer{
		handler: New(ctrl, db, WithClock(clock)).Handler(),
		ctrl:    ctrl,
		clock:   clock,
	}
}

func (ts *testServer) request(
	t *testing.T,
	method, path string,
	body any,
) (int, []byte) {
	t.Helper()

	var payload []byte

	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)

		payload = raw
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	ts.handler.ServeHTTP(recorder, req)

	return recorder.Code, recorder.Body.Bytes()
}

func (ts *testServer) state(t *testing.T, method, path string, body any) stateResponse {
	t.Helper()

	status, raw := ts.request(t, method, path, body)
	require.Equal(t, http.StatusOK, status, string(raw))

	var env stateEnvelope
	require.NoError(t, json.Unmarshal(raw, &env))

	return env.State
}

func decodeError(t *testing.T, raw []byte) APIError {
	t.Helper()

	var env apiErrorEnvelope
	require.NoError(t, json.Unmarshal(raw, &env))

	return env.Error
}

func TestHealth(t *testing.T) {
	ts := setupTestServer(t)

	status, raw := ts.request(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(raw))
}

func TestTimerTransitions(t *testing.T) {
	ts := setupTestServer(t)

	st := ts.state(t, http.MethodGet, "/api/timer", nil)
	assert.Equal(t, "idle", st.Status)
	assert.Equal(t, pomodoro.Focus, st.Mode)
	assert.Equal(t, 1500, st.Remaining)
	assert.NotNil(t, st.CompletedToday)

	st = ts.state(t, http.MethodPost, "/api/timer/start", nil)
	assert.Equal(t, "running", st.Status)

	status, raw := ts.request(t, http.MethodPost, "/api/timer/start", nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "invalid_transition", decodeError(t, raw).Code)

	ts.clock.Advance(time.Minute)

	st = ts.state(t, http.MethodPost, "/api/timer/pause", nil)
	assert.Equal(t, "paused", st.Status)
	assert.Equal(t, 1440, st.Remaining)

	status, _ = ts.request(t, http.MethodPost, "/api/timer/pause", nil)
	assert.Equal(t, http.StatusConflict, status)

	st = ts.state(t, http.MethodPost, "/api/timer/resume", nil)
	assert.Equal(t, "running", st.Status)

	st = ts.state(t, http.MethodPost, "/api/timer/reset", nil)
	assert.Equal(t, "idle", st.Status)
	assert.Equal(t, 1500, st.Remaining)

	st = ts.state(t, http.MethodPost, "/api/timer/skip", nil)
	assert.Equal(t, pomodoro.ShortBreak, st.Mode)
	assert.Equal(t, 0, st.SessionCount)

	status, raw = ts.request(t, http.MethodPost, "/api/timer/resume", nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "the countdown is not paused", decodeError(t, raw).Message)
}

func TestCompletedSessionIsReported(t *testing.T) {
	ts := setupTestServer(t)

	ts.state(t, http.MethodPut, "/api/timer/task", map[string]any{
		"task": map[string]string{"kind": "custom", "label": "write report"},
	})
	ts.state(t, http.MethodPost, "/api/timer/start", nil)

	ts.clock.Advance(25 * time.Minute)

	st := ts.state(t, http.MethodPost, "/api/timer/reconcile", nil)
	assert.Equal(t, pomodoro.ShortBreak, st.Mode)
	assert.Equal(t, "running", st.Status)
	assert.Equal(t, 1, st.SessionCount)
	assert.Equal(t, 25, st.FocusMinutes)
	assert.Nil(t, st.Task)

	require.NoError(t, ts.ctrl.Flush(context.Background()))

	status, raw := ts.request(t, http.MethodGet, "/api/sessions?date=2026-03-10", nil)
	require.Equal(t, http.StatusOK, status, string(raw))

	var sessions struct {
		Sessions []struct {
			TaskDescription *string `json:"task_description"`
			DurationMinutes int     `json:"duration_minutes"`
			WasCompleted    bool    `json:"was_completed"`
		} `json:"sessions"`
	}

	require.NoError(t, json.Unmarshal(raw, &sessions))
	require.Len(t, sessions.Sessions, 1)
	assert.True(t, sessions.Sessions[0].WasCompleted)
	assert.Equal(t, 25, sessions.Sessions[0].DurationMinutes)
	require.NotNil(t, sessions.Sessions[0].TaskDescription)
	assert.Equal(t, "write report", *sessions.Sessions[0].TaskDescription)

	status, raw = ts.request(t, http.MethodGet, "/api/stats?from=2026-03-10&to=2026-03-10", nil)
	require.Equal(t, http.StatusOK, status, string(raw))

	var summary struct {
		Stats stats.Summary `json:"stats"`
	}

	require.NoError(t, json.Unmarshal(raw, &summary))
	assert.Equal(t, 1, summary.Stats.Completed)
	assert.Equal(t, 25, summary.Stats.FocusMinutes)
	assert.Equal(t, []stats.TaskTotal{{Task: "write report", Minutes: 25}}, summary.Stats.Tasks)
}

func TestSetTask(t *testing.T) {
	ts := setupTestServer(t)

	st := ts.state(t, http.MethodPut, "/api/timer/task", map[string]any{
		"task": map[string]string{"kind": "card", "id": "card-1", "label": "Ship it"},
	})
	require.NotNil(t, st.Task)
	assert.Equal(t, taskBody{Kind: "card", ID: "card-1", Label: "Ship it"}, *st.Task)

	status, raw := ts.request(t, http.MethodPut, "/api/timer/task", map[string]any{
		"task": map[string]string{"kind": "habit", "id": "h"},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_task", decodeError(t, raw).Code)

	st = ts.state(t, http.MethodPut, "/api/timer/task", map[string]any{})
	assert.Nil(t, st.Task)

	status, _ = ts.request(t, http.MethodPut, "/api/timer/task", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSettings(t *testing.T) {
	ts := setupTestServer(t)

	status, raw := ts.request(t, http.MethodPut, "/api/settings", settingsBody{
		FocusMinutes:            90,
		ShortBreakMinutes:       10,
		LongBreakMinutes:        20,
		SessionsBeforeLongBreak: 3,
	})
	require.Equal(t, http.StatusOK, status, string(raw))

	var resp struct {
		Settings settingsBody `json:"settings"`
	}

	require.NoError(t, json.Unmarshal(raw, &resp))
	assert.Equal(t, settingsBody{
		FocusMinutes:            60,
		ShortBreakMinutes:       10,
		LongBreakMinutes:        20,
		SessionsBeforeLongBreak: 3,
	}, resp.Settings)

	st := ts.state(t, http.MethodGet, "/api/timer", nil)
	assert.Equal(t, 3600, st.Remaining)
	assert.Equal(t, resp.Settings, st.Settings)
}

func TestPartialSettingsUpdate(t *testing.T) {
	ts := setupTestServer(t)

	cases := []struct {
		body any
		want settingsBody
		name string
	}{
		{
			name: "focus only",
			body: map[string]int{"focus_minutes": 50},
			want: settingsBody{
				FocusMinutes:            50,
				ShortBreakMinutes:       5,
				LongBreakMinutes:        15,
				SessionsBeforeLongBreak: 4,
			},
		},
		{
			name: "interval keeps earlier focus change",
			body: map[string]int{"sessions_before_long_break": 6},
			want: settingsBody{
				FocusMinutes:            50,
				ShortBreakMinutes:       5,
				LongBreakMinutes:        15,
				SessionsBeforeLongBreak: 6,
			},
		},
		{
			name: "empty body changes nothing",
			body: map[string]int{},
			want: settingsBody{
				FocusMinutes:            50,
				ShortBreakMinutes:       5,
				LongBreakMinutes:        15,
				SessionsBeforeLongBreak: 6,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, raw := ts.request(t, http.MethodPut, "/api/settings", tc.body)
			require.Equal(t, http.StatusOK, status, string(raw))

			var resp struct {
				Settings settingsBody `json:"settings"`
			}

			require.NoError(t, json.Unmarshal(raw, &resp))
			assert.Equal(t, tc.want, resp.Settings)
		})
	}
}

func TestDateParameters(t *testing.T) {
	ts := setupTestServer(t)

	cases := []struct {
		path string
		code string
	}{
		{"/api/sessions?date=10-03-2026", "invalid_date"},
		{"/api/sessions?from=2026-03-12&to=2026-03-10", "invalid_range"},
		{"/api/stats?from=2026-03-12&to=2026-03-10", "invalid_range"},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			status, raw := ts.request(t, http.MethodGet, tc.path, nil)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tc.code, decodeError(t, raw).Code)
		})
	}

	status, raw := ts.request(t, http.MethodGet, "/api/sessions", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"sessions":[]}`, string(raw))
}
