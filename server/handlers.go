package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/models"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/timeutil"
	"github.com/doni-wahyudi/stillmove-planner-sub001/stats"
	"github.com/doni-wahyudi/stillmove-planner-sub001/store"
)

func (s *Server) getState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": newStateResponse(s.ctrl.State())})
}

func (s *Server) transition(fn func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := fn(); err != nil {
			writeError(c, transitionError(err))
			return
		}

		s.getState(c)
	}
}

func (s *Server) reconcile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": newStateResponse(s.ctrl.Reconcile())})
}

func (s *Server) setTask(c *gin.Context) {
	var req struct {
		Task *taskBody `json:"task"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, badRequest("invalid_json", "invalid request body"))
		return
	}

	task, err := req.Task.association()
	if err != nil {
		writeError(c, badRequest("invalid_task", err.Error()))
		return
	}

	s.ctrl.SetTask(task)

	s.getState(c)
}

func (s *Server) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"settings": newSettingsBody(s.ctrl.Settings())})
}

// updateSettings applies the new lengths. Out of range values are clamped
// and the applied settings are returned.
func (s *Server) updateSettings(c *gin.Context) {
	var req settingsPatch

	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, badRequest("invalid_json", "invalid request body"))
		return
	}

	applied := s.ctrl.UpdateSettings(req.apply(s.ctrl.Settings()))

	c.JSON(http.StatusOK, gin.H{"settings": newSettingsBody(applied)})
}

// dateRange reads the date, from and to query parameters. A single date wins
// over a range; no parameters means today.
func (s *Server) dateRange(c *gin.Context) (start, end time.Time, apiErr *APIError) {
	now := s.clock.Now()

	if date := c.Query("date"); date != "" {
		dayStart, dayEnd, err := store.DayBounds(date, now.Location())
		if err != nil {
			return start, end, badRequest("invalid_date", err.Error())
		}

		return dayStart, dayEnd, nil
	}

	start, end = timeutil.PeriodRange(timeutil.PeriodToday, now)

	if from := c.Query("from"); from != "" {
		t, err := timeutil.ParseDate(from, now)
		if err != nil {
			return start, end, badRequest("invalid_date", err.Error())
		}

		start = timeutil.RoundToStart(t)
	}

	if to := c.Query("to"); to != "" {
		t, err := timeutil.ParseDate(to, now)
		if err != nil {
			return start, end, badRequest("invalid_date", err.Error())
		}

		end = timeutil.RoundToEnd(t)
	}

	if end.Before(start) {
		return start, end, badRequest("invalid_range", "from must not be after to")
	}

	return start, end, nil
}

func (s *Server) listSessions(c *gin.Context) {
	start, end, apiErr := s.dateRange(c)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	sessions, err := s.db.ListSessionsForRange(c.Request.Context(), start, end)
	if err != nil {
		writeError(c, internal(err))
		return
	}

	if sessions == nil {
		sessions = []models.SessionRecord{}
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (s *Server) getStats(c *gin.Context) {
	start, end, apiErr := s.dateRange(c)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	sessions, err := s.db.ListSessionsForRange(c.Request.Context(), start, end)
	if err != nil {
		writeError(c, internal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats.Summarize(sessions, start, end)})
}
