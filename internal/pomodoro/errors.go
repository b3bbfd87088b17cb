package pomodoro

import "github.com/doni-wahyudi/stillmove-planner-sub001/internal/apperr"

var (
	ErrAlreadyRunning = &apperr.Error{
		Message: "a countdown is already in progress",
	}

	ErrNotRunning = &apperr.Error{
		Message: "no countdown is running",
	}

	ErrAlreadyPaused = &apperr.Error{
		Message: "the countdown is already paused",
	}

	ErrNotPaused = &apperr.Error{
		Message: "the countdown is not paused",
	}

	ErrClosed = &apperr.Error{
		Message: "the timer has been shut down",
	}
)
