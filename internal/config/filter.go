package config

import (
	"slices"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/timeutil"
)

// FilterConfig represents a configuration to filter sessions
// in the database by their start time.
type FilterConfig struct {
	StartTime time.Time
	EndTime   time.Time
}

// Filter reads the period, from and to flags into a time range. Without
// any of them the range covers today.
func Filter(ctx *cli.Context) (*FilterConfig, error) {
	return filterAt(ctx, time.Now())
}

func filterAt(ctx *cli.Context, now time.Time) (*FilterConfig, error) {
	filterCfg := &FilterConfig{}

	period := timeutil.Period(strings.TrimSpace(ctx.String("period")))

	if period != "" && !slices.Contains(timeutil.PeriodCollection, period) {
		return nil, errInvalidPeriod.Fmt(period)
	}

	from := strings.TrimSpace(ctx.String("from"))
	to := strings.TrimSpace(ctx.String("to"))

	if period != "" || (from == "" && to == "") {
		if period == "" {
			period = timeutil.PeriodToday
		}

		filterCfg.StartTime, filterCfg.EndTime = timeutil.PeriodRange(period, now)

		return filterCfg, nil
	}

	if from != "" {
		dateTime, err := timeutil.ParseDate(from, now)
		if err != nil {
			return nil, err
		}

		filterCfg.StartTime = timeutil.RoundToStart(dateTime)
	} else {
		filterCfg.StartTime = timeutil.RoundToStart(now)
	}

	filterCfg.EndTime = timeutil.RoundToEnd(now)

	if to != "" {
		dateTime, err := timeutil.ParseDate(to, now)
		if err != nil {
			return nil, err
		}

		filterCfg.EndTime = timeutil.RoundToEnd(dateTime)
	}

	if filterCfg.EndTime.Before(filterCfg.StartTime) {
		return nil, errInvalidDateRange
	}

	return filterCfg, nil
}
