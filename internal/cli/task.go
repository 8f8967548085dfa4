package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/researchhub/internal/kanban"
	"github.com/roach88/researchhub/internal/model"
	"github.com/roach88/researchhub/internal/stats"
)

// TaskRow is a task with its project title and deadline badge.
type TaskRow struct {
	model.Task
	Project string `json:"project"`
	Badge   string `json:"badge,omitempty"`
}

// NewTaskCommand creates the task command group.
func NewTaskCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage project tasks",
	}
	cmd.AddCommand(newTaskAddCommand(rootOpts))
	cmd.AddCommand(newTaskEditCommand(rootOpts))
	cmd.AddCommand(newTaskRmCommand(rootOpts))
	cmd.AddCommand(newTaskLsCommand(rootOpts))
	return cmd
}

func newTaskAddCommand(rootOpts *RootOptions) *cobra.Command {
	var due, status, priority string
	cmd := &cobra.Command{
		Use:     "add <project-id> <title>",
		Short:   "Create a task in a project",
		Example: `  researchhub task add prj_0192... "Draft methods section" --due 2026-02-10 --priority Med`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app) error {
				t := model.Task{ProjectID: args[0], Title: args[1], Due: due}
				if status != "" {
					st, err := kanban.ParseStatus(status)
					if err != nil {
						return a.out.Fail(err)
					}
					t.Status = st
				}
				if priority != "" {
					pr, err := kanban.ParsePriority(priority)
					if err != nil {
						return a.out.Fail(err)
					}
					t.Priority = pr
				}
				created, err := a.hub.CreateTask(cmd.Context(), t)
				if err != nil {
					return a.out.Fail(err)
				}
				return a.out.Result(created, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Created task %s: %s\n", created.ID, created.Title)
					return err
				})
			})
		},
	}
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", "", "status (todo|doing|done, default todo)")
	cmd.Flags().StringVar(&priority, "priority", "", "priority (Low|Med|High, default Low)")
	return cmd
}

func newTaskEditCommand(rootOpts *RootOptions) *cobra.Command {
	var projectID, title, due, status, priority string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a task",
		Long: `Change fields of a task. Only the flags given are applied.
Pass --due "" to clear the due date.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app) error {
				var f model.TaskFields
				flags := cmd.Flags()
				if flags.Changed("project") {
					f.ProjectID = &projectID
				}
				if flags.Changed("title") {
					f.Title = &title
				}
				if flags.Changed("due") {
					f.Due = &due
				}
				if flags.Changed("status") {
					st, err := kanban.ParseStatus(status)
					if err != nil {
						return a.out.Fail(err)
					}
					f.Status = &st
				}
				if flags.Changed("priority") {
					pr, err := kanban.ParsePriority(priority)
					if err != nil {
						return a.out.Fail(err)
					}
					f.Priority = &pr
				}
				updated, err := a.hub.UpdateTask(cmd.Context(), args[0], f)
				if err != nil {
					return a.out.Fail(err)
				}
				return a.out.Result(updated, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Updated task %s: %s\n", updated.ID, updated.Title)
					return err
				})
			})
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "move the task to another project")
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&due, "due", "", "new due date (YYYY-MM-DD, empty clears)")
	cmd.Flags().StringVar(&status, "status", "", "new status (todo|doing|done)")
	cmd.Flags().StringVar(&priority, "priority", "", "new priority (Low|Med|High)")
	return cmd
}

func newTaskRmCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app) error {
				if err := a.hub.DeleteTask(cmd.Context(), args[0]); err != nil {
					return a.out.Fail(err)
				}
				return a.out.Result(map[string]string{"id": args[0]}, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Deleted task %s\n", args[0])
					return err
				})
			})
		},
	}
}

func newTaskLsCommand(rootOpts *RootOptions) *cobra.Command {
	var projectID string
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List tasks in stored order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app) error {
				doc, err := a.hub.Load(cmd.Context())
				if err != nil {
					return a.out.Fail(err)
				}
				if projectID != "" {
					if _, ok := doc.FindProject(projectID); !ok {
						return a.out.Fail(model.NewNotFoundError(model.KindProject, projectID))
					}
				}
				rows := taskRows(doc, a.hub.Today(), func(t model.Task) bool {
					return projectID == "" || t.ProjectID == projectID
				})
				return a.out.Result(rows, func(w io.Writer) error {
					return writeTasks(w, rows)
				})
			})
		},
	}
	cmd.Flags().StringVarP(&projectID, "project", "p", "", "only tasks of this project")
	return cmd
}

// taskRows decorates the tasks accepted by keep.
func taskRows(doc model.Document, today string, keep func(model.Task) bool) []TaskRow {
	rows := []TaskRow{}
	for _, t := range doc.Tasks {
		if !keep(t) {
			continue
		}
		rows = append(rows, taskRow(doc, t, today))
	}
	return rows
}

func taskRow(doc model.Document, t model.Task, today string) TaskRow {
	row := TaskRow{Task: t}
	if p, ok := doc.FindProject(t.ProjectID); ok {
		row.Project = p.Title
	}
	if t.HasDue() {
		row.Badge = stats.Badge(t, today)
	}
	return row
}

func writeTasks(w io.Writer, rows []TaskRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No tasks.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPROJECT\tTITLE\tSTATUS\tPRIORITY\tDUE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, orDash(r.Project), r.Title, kanban.Label(r.Status), kanban.PriorityLabel(r.Priority), dueText(r))
	}
	return tw.Flush()
}

// dueText renders a due date with a marker for late tasks.
func dueText(r TaskRow) string {
	switch r.Badge {
	case "":
		return "-"
	case stats.BadgeDanger:
		return r.Due + " (late)"
	default:
		return r.Due
	}
}
