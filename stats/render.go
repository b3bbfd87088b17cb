package stats

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/models"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/timeutil"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/ui"
)

const (
	noSessionsMsg = "No sessions found for the specified time range"
	// the daily table is only printed for periods up to a month
	maxDailyRows = 31
)

func getSummary(s Summary) string {
	header := fmt.Sprintf("%s\n", ui.Blue("Summary"))

	timeLogged := fmt.Sprintf(
		"Time logged: %s\n",
		ui.Green(timeutil.FormatMinutes(s.FocusMinutes)),
	)

	completed := fmt.Sprintln("Sessions completed:", ui.Green(s.Completed))

	abandoned := fmt.Sprintln("Sessions abandoned:", ui.Green(s.Abandoned))

	return header + timeLogged + completed + abandoned
}

func getAverages(s Summary) string {
	if len(s.Days) < 2 {
		return ""
	}

	header := fmt.Sprintf("\n%s\n", ui.Blue("Averages"))

	timeLogged := fmt.Sprintf(
		"Time logged per day: %s\n",
		ui.Green(timeutil.FormatMinutes(s.AverageMinutes)),
	)

	completed := fmt.Sprintln(
		"Sessions completed per day:",
		ui.Green(timeutil.Round(float64(s.Completed)/float64(len(s.Days)))),
	)

	return header + timeLogged + completed
}

// getTasks retrieves the task breakdown for the current time period.
func getTasks(tasks []TaskTotal) string {
	if len(tasks) == 0 {
		return ""
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("\n%s\n", ui.Blue("Tasks")))

	for _, t := range tasks {
		builder.WriteString(fmt.Sprintf(
			"%s: %s\n",
			t.Task,
			ui.Green(timeutil.FormatMinutes(t.Minutes)),
		))
	}

	return builder.String()
}

func getBreakdown(title string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	header := ui.Blue(fmt.Sprintf("\n%s breakdown\n", title))

	data := append([][]string{{title, "TIME LOGGED"}}, rows...)

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return header + table + "\n"
}

func dailyRows(days []DayTotal) [][]string {
	if len(days) < 2 || len(days) > maxDailyRows {
		return nil
	}

	rows := make([][]string, 0, len(days))

	for _, d := range days {
		label := d.Date

		if date, err := time.Parse(models.DateLayout, d.Date); err == nil {
			label = date.Format("Jan 02, 2006")
		}

		rows = append(rows, []string{label, timeutil.FormatMinutes(d.Minutes)})
	}

	return rows
}

// weekdayRows skips days without focus time.
func weekdayRows(weekdays [7]int) [][]string {
	var rows [][]string

	for i, v := range weekdays {
		if v == 0 {
			continue
		}

		rows = append(rows, []string{time.Weekday(i).String(), timeutil.FormatMinutes(v)})
	}

	return rows
}

func hourlyRows(hours [24]int) [][]string {
	var rows [][]string

	for i, v := range hours {
		if v == 0 {
			continue
		}

		rows = append(rows, []string{fmt.Sprintf("%02d:00", i), timeutil.FormatMinutes(v)})
	}

	return rows
}

// Render writes a human readable report of s to w.
func Render(w io.Writer, s Summary) error {
	if s.Completed == 0 && s.Abandoned == 0 {
		_, err := fmt.Fprintln(w, noSessionsMsg)
		return err
	}

	timePeriod := "Reporting period: " + s.Start.Format("January 02, 2006") +
		" - " + s.End.Format("January 02, 2006")

	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintln(timePeriod)

	output := fmt.Sprint(
		header,
		getSummary(s),
		getAverages(s),
		getTasks(s.Tasks),
		getBreakdown("Day", dailyRows(s.Days)),
		getBreakdown("Weekday", weekdayRows(s.Weekdays)),
		getBreakdown("Hour", hourlyRows(s.Hours)),
	)

	_, err := fmt.Fprintln(w, strings.TrimSpace(output))

	return err
}
