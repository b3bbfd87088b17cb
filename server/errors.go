package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/pomodoro"
)

// APIError is the body of every failed request, wrapped in an "error"
// envelope.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}

func newAPIError(status int, code, message string) *APIError {
	return &APIError{Status: status, Code: code, Message: message}
}

func badRequest(code, message string) *APIError {
	return newAPIError(http.StatusBadRequest, code, message)
}

func internal(err error) *APIError {
	return newAPIError(http.StatusInternalServerError, "internal_error", err.Error())
}

// transitionError maps a rejected controller call onto an API error.
func transitionError(err error) *APIError {
	switch {
	case errors.Is(err, pomodoro.ErrClosed):
		return newAPIError(http.StatusServiceUnavailable, "timer_closed", err.Error())
	case errors.Is(err, pomodoro.ErrAlreadyRunning),
		errors.Is(err, pomodoro.ErrNotRunning),
		errors.Is(err, pomodoro.ErrAlreadyPaused),
		errors.Is(err, pomodoro.ErrNotPaused):
		return newAPIError(http.StatusConflict, "invalid_transition", err.Error())
	}

	return internal(err)
}

func writeError(c *gin.Context, apiErr *APIError) {
	c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
}
