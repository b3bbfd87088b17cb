package store

import "github.com/doni-wahyudi/stillmove-planner-sub001/internal/apperr"

var (
	ErrAlreadyRunning = &apperr.Error{
		Message: "is stillmove already running? Only one instance can use the database at a time",
	}

	ErrNotFound = &apperr.Error{
		Message: "session not found",
	}

	ErrInvalidDate = &apperr.Error{
		Message: "invalid date %q: expected YYYY-MM-DD",
	}

	ErrUnsupportedDriver = &apperr.Error{
		Message: "unsupported storage driver %q",
	}
)
