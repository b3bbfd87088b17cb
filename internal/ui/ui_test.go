package ui

import (
	"bytes"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcome(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	testCases := []struct {
		want      string
		completed bool
		open      bool
	}{
		{want: "completed", completed: true},
		{want: "completed", completed: true, open: true},
		{want: "open", open: true},
		{want: "abandoned"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, Outcome(tc.completed, tc.open))
		})
	}
}

func TestPrintTable(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	var buf bytes.Buffer

	err := PrintTable(&buf, [][]string{
		{"#", "TASK"},
		{"1", "write report"},
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "TASK")
	assert.Contains(t, buf.String(), "write report")
}
