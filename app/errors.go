package app

import "github.com/doni-wahyudi/stillmove-planner-sub001/internal/apperr"

var (
	errAborted = &apperr.Error{
		Message: "operation aborted",
	}

	errMissingTask = &apperr.Error{
		Message: "provide the new task description, or --clear to remove it",
	}

	errEmptyDSN = &apperr.Error{
		Message: "no connection string was entered",
	}
)
