package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.March, 10, 14, 30, 0, 0, time.UTC)

func TestPeriodRange(t *testing.T) {
	table := []struct {
		Period Period
		Start  time.Time
		End    time.Time
	}{
		{
			Period: PeriodToday,
			Start:  time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
			End:    time.Date(2026, time.March, 10, 23, 59, 59, 0, time.UTC),
		},
		{
			Period: PeriodYesterday,
			Start:  time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC),
			End:    time.Date(2026, time.March, 9, 23, 59, 59, 0, time.UTC),
		},
		{
			Period: Period7Days,
			Start:  time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC),
			End:    time.Date(2026, time.March, 10, 23, 59, 59, 0, time.UTC),
		},
		{
			Period: PeriodAllTime,
			End:    time.Date(2026, time.March, 10, 23, 59, 59, 0, time.UTC),
		},
	}

	for _, tc := range table {
		t.Run(string(tc.Period), func(t *testing.T) {
			start, end := PeriodRange(tc.Period, now)

			assert.Equal(t, tc.Start, start)
			assert.Equal(t, tc.End, end)
		})
	}
}

func TestParseDate(t *testing.T) {
	table := []struct {
		Input string
		Want  time.Time
	}{
		{"2026-02-14", time.Date(2026, time.February, 14, 0, 0, 0, 0, time.UTC)},
		{"yesterday", now.AddDate(0, 0, -1)},
		{"3 days ago", now.AddDate(0, 0, -3)},
	}

	for _, tc := range table {
		t.Run(tc.Input, func(t *testing.T) {
			got, err := ParseDate(tc.Input, now)
			require.NoError(t, err)

			assert.Equal(t, tc.Want.Format("2006-01-02"), got.Format("2006-01-02"))
		})
	}

	_, err := ParseDate("not a date at all", now)
	assert.Error(t, err)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "25m", FormatMinutes(25))
	assert.Equal(t, "2h 05m", FormatMinutes(125))
	assert.Equal(t, "24:59", FormatCountdown(1499))
	assert.Equal(t, "00:00", FormatCountdown(-3))
	assert.Equal(t, 29, DaysIn(time.Date(2028, time.February, 1, 0, 0, 0, 0, time.UTC)))
}
