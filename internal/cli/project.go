package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/researchhub/internal/kanban"
	"github.com/roach88/researchhub/internal/model"
	"github.com/roach88/researchhub/internal/query"
	"github.com/roach88/researchhub/internal/stats"
)

// ProjectRow is a project with its derived task figures.
type ProjectRow struct {
	model.Project
	Tasks    int `json:"tasks"`
	Progress int `json:"progress"`
}

// NewProjectCommand creates the project command group.
func NewProjectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage research projects",
	}
	cmd.AddCommand(newProjectAddCommand(rootOpts))
	cmd.AddCommand(newProjectEditCommand(rootOpts))
	cmd.AddCommand(newProjectRmCommand(rootOpts))
	cmd.AddCommand(newProjectLsCommand(rootOpts))
	return cmd
}

func newProjectAddCommand(rootOpts *RootOptions) *cobra.Command {
	var field, priority string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a project",
		Example: `  researchhub project add "Sleep and memory" --field Neuroscience --priority High`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app) error {
				p := model.Project{Title: args[0], Field: field}
				if priority != "" {
					pr, err := kanban.ParsePriority(priority)
					if err != nil {
						return a.out.Fail(err)
					}
					p.Priority = pr
				}
				created, err := a.hub.CreateProject(cmd.Context(), p)
				if err != nil {
					return a.out.Fail(err)
				}
				return a.out.Result(created, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Created project %s: %s\n", created.ID, created.Title)
					return err
				})
			})
		},
	}
	cmd.Flags().StringVar(&field, "field", "", "research field")
	cmd.Flags().StringVar(&priority, "priority", "", "priority (Low|Med|High, default Low)")
	return cmd
}

func newProjectEditCommand(rootOpts *RootOptions) *cobra.Command {
	var title, field, priority string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app) error {
				var f model.ProjectFields
				flags := cmd.Flags()
				if flags.Changed("title") {
					f.Title = &title
				}
				if flags.Changed("field") {
					f.Field = &field
				}
				if flags.Changed("priority") {
					pr, err := kanban.ParsePriority(priority)
					if err != nil {
						return a.out.Fail(err)
					}
					f.Priority = &pr
				}
				updated, err := a.hub.UpdateProject(cmd.Context(), args[0], f)
				if err != nil {
					return a.out.Fail(err)
				}
				return a.out.Result(updated, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Updated project %s: %s\n", updated.ID, updated.Title)
					return err
				})
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&field, "field", "", "new research field")
	cmd.Flags().StringVar(&priority, "priority", "", "new priority (Low|Med|High)")
	return cmd
}

func newProjectRmCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a project and all of its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app) error {
				removed, err := a.hub.DeleteProject(cmd.Context(), args[0])
				if err != nil {
					return a.out.Fail(err)
				}
				data := map[string]any{"id": args[0], "tasks_removed": removed}
				return a.out.Result(data, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Deleted project %s and %d task(s)\n", args[0], removed)
					return err
				})
			})
		},
	}
}

func newProjectLsCommand(rootOpts *RootOptions) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List projects, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app) error {
				doc, err := a.hub.Load(cmd.Context())
				if err != nil {
					return a.out.Fail(err)
				}
				projects := query.SearchProjects(doc.Projects, search)
				rows := make([]ProjectRow, len(projects))
				for i, p := range projects {
					rows[i] = ProjectRow{
						Project:  p,
						Tasks:    stats.TaskCount(doc, p.ID),
						Progress: stats.ProjectProgress(doc, p.ID),
					}
				}
				return a.out.Result(rows, func(w io.Writer) error {
					return writeProjects(w, rows)
				})
			})
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by title or field (case-insensitive)")
	return cmd
}

func writeProjects(w io.Writer, rows []ProjectRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No projects.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tFIELD\tPRIORITY\tTASKS\tPROGRESS\tCREATED")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d%%\t%s\n",
			r.ID, r.Title, orDash(r.Field), kanban.PriorityLabel(r.Priority), r.Tasks, r.Progress, r.CreatedAt)
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
