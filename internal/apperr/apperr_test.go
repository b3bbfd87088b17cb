package apperr_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/apperr"
)

var errDuration = &apperr.Error{
	Message: "%s duration must be between %v and %v",
}

func TestFmtMatchesSentinel(t *testing.T) {
	err := errDuration.Fmt("focus", 1, 60)

	assert.Equal(t, "focus duration must be between 1 and 60", err.Error())
	assert.ErrorIs(t, err, errDuration)
}

func TestWrapKeepsCause(t *testing.T) {
	err := errDuration.Fmt("focus", 1, 60).Wrap(io.EOF)

	assert.ErrorIs(t, err, io.EOF)
	assert.ErrorIs(t, err, errDuration)
	assert.Equal(t, "focus duration must be between 1 and 60: EOF", err.Error())
}

func TestUnrelatedErrorsDoNotMatch(t *testing.T) {
	other := &apperr.Error{Message: "something else"}

	assert.False(t, errors.Is(errDuration.Fmt("x", 1, 2), other))
}
