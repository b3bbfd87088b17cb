package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/models"
	"github.com/doni-wahyudi/stillmove-planner-sub001/store"
)

// editTask replaces the task description of the specified sessions. An empty
// task clears it along with any goal or time block link.
func editTask(
	ctx context.Context,
	db store.DB,
	sessions []models.SessionRecord,
	task string,
	p prompter,
	skipConfirm bool,
) error {
	if len(sessions) == 0 {
		fmt.Fprintln(p.out, pterm.Info.Sprint(noSessionsMsg))
		return nil
	}

	fields := &models.TaskFields{}
	if task != "" {
		fields.Description = &task
	}

	for i := range sessions {
		sessions[i].Apply(models.SessionPatch{Task: fields})
	}

	err := printSessionsTable(p.out, sessions)
	if err != nil {
		return err
	}

	if !skipConfirm {
		err = p.confirm("The sessions above will be updated. Press ENTER to proceed")
		if err != nil {
			return err
		}
	}

	for i := range sessions {
		err = db.UpdateSession(ctx, sessions[i].ID, models.SessionPatch{
			Task: fields,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func (p prompter) confirm(msg string) error {
	fmt.Fprint(p.out, pterm.Warning.Sprint(msg))

	reader := bufio.NewReader(p.in)

	_, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	if errors.Is(err, io.EOF) {
		return errAborted
	}

	return nil
}

func trimTask(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
