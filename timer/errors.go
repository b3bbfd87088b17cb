package timer

import "github.com/doni-wahyudi/stillmove-planner-sub001/internal/apperr"

var errCorruptStatus = &apperr.Error{
	Message: "unable to read the timer status file",
}
