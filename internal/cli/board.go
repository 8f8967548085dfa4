package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/researchhub/internal/kanban"
	"github.com/roach88/researchhub/internal/model"
	"github.com/roach88/researchhub/internal/stats"
)

// NewBoardCommand creates the kanban board command. Without a subcommand it
// shows the board.
func NewBoardCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the kanban board or move tasks across it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoardShow(rootOpts, cmd)
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show tasks grouped by status, soonest due first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoardShow(rootOpts, cmd)
		},
	})
	cmd.AddCommand(newBoardMoveCommand(rootOpts))
	return cmd
}

func runBoardShow(opts *RootOptions, cmd *cobra.Command) error {
	return withApp(opts, cmd, func(a *app) error {
		doc, err := a.hub.Load(cmd.Context())
		if err != nil {
			return a.out.Fail(err)
		}
		cols := stats.KanbanColumns(doc)
		today := a.hub.Today()
		return a.out.Result(cols, func(w io.Writer) error {
			return writeColumns(w, doc, cols, today)
		})
	})
}

func writeColumns(w io.Writer, doc model.Document, cols stats.Columns, today string) error {
	for i, s := range model.Statuses {
		if i > 0 {
			fmt.Fprintln(w)
		}
		tasks := cols.Column(s)
		fmt.Fprintf(w, "%s (%d)\n", kanban.Label(s), len(tasks))
		for _, t := range tasks {
			r := taskRow(doc, t, today)
			fmt.Fprintf(w, "  %s  %s  [%s]  %s  due %s\n",
				r.ID, r.Title, kanban.PriorityLabel(r.Priority), orDash(r.Project), dueText(r))
		}
	}
	return nil
}

func newBoardMoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "move <task-id> <todo|doing|done>",
		Short: "Move a task to another column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app) error {
				status, err := kanban.ParseStatus(args[1])
				if err != nil {
					return a.out.Fail(err)
				}
				moved, err := a.hub.MoveTask(cmd.Context(), args[0], status)
				if err != nil {
					return a.out.Fail(err)
				}
				return a.out.Result(moved, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Moved task %s to %s\n", moved.ID, kanban.Label(moved.Status))
					return err
				})
			})
		},
	}
}
