package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/models"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/timeutil"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/ui"
)

const (
	noSessionsMsg = "No sessions found for the specified time range"

	tableTimeLayout = "Jan 02, 2006 03:04 PM"
)

// printSessionsTable prints a session table to the command-line.
func printSessionsTable(w io.Writer, sessions []models.SessionRecord) error {
	tableBody := make([][]string, len(sessions))

	for i := range sessions {
		sess := sessions[i]

		endDate := ""
		if sess.CompletedAt != nil {
			endDate = sess.CompletedAt.Format(tableTimeLayout)
		}

		row := []string{
			fmt.Sprintf("%d", i+1),
			sess.StartedAt.Format(tableTimeLayout),
			endDate,
			timeutil.FormatMinutes(sess.DurationMinutes),
			taskText(sess),
			ui.Outcome(sess.WasCompleted, sess.CompletedAt == nil),
		}

		tableBody[i] = row
	}

	tableBody = append([][]string{
		{"#", "START DATE", "END DATE", "DURATION", "TASK", "STATUS"},
	}, tableBody...)

	return ui.PrintTable(w, tableBody)
}

func taskText(sess models.SessionRecord) string {
	switch {
	case sess.TaskDescription != nil && *sess.TaskDescription != "":
		return *sess.TaskDescription
	case sess.LinkedGoalID != nil:
		return "goal " + *sess.LinkedGoalID
	case sess.LinkedTimeBlockID != nil:
		return "time block " + *sess.LinkedTimeBlockID
	}

	return ""
}

// listSessions prints out a table of sessions, or their JSON encoding.
func listSessions(w io.Writer, sessions []models.SessionRecord, asJSON bool) error {
	if asJSON {
		if sessions == nil {
			sessions = []models.SessionRecord{}
		}

		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(sessions)
	}

	if len(sessions) == 0 {
		fmt.Fprintln(w, pterm.Info.Sprint(noSessionsMsg))
		return nil
	}

	return printSessionsTable(w, sessions)
}
