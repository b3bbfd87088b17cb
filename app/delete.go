package app

import (
	"context"
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/models"
	"github.com/doni-wahyudi/stillmove-planner-sub001/store"
)

// delSessions deletes all the specified sessions. It requests for confirmation
// before proceeding with the operation unless skipConfirm is set.
func delSessions(
	ctx context.Context,
	db store.DB,
	sessions []models.SessionRecord,
	p prompter,
	skipConfirm bool,
) error {
	if len(sessions) == 0 {
		fmt.Fprintln(p.out, pterm.Info.Sprint(noSessionsMsg))
		return nil
	}

	err := printSessionsTable(p.out, sessions)
	if err != nil {
		return err
	}

	if !skipConfirm {
		err = p.confirm(
			"The above sessions will be deleted permanently. Press ENTER to proceed",
		)
		if err != nil {
			return err
		}
	}

	for i := range sessions {
		err = db.DeleteSession(ctx, sessions[i].ID)
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(p.out, pterm.Success.Sprintf("%d session(s) deleted", len(sessions)))

	return nil
}

// prompter asks the user to confirm a destructive operation.
type prompter struct {
	in  io.Reader
	out io.Writer
}
