package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/roach88/researchhub/internal/kanban"
	"github.com/roach88/researchhub/internal/model"
	"github.com/roach88/researchhub/internal/stats"
)

// DashboardView is the JSON shape of the dashboard command.
type DashboardView struct {
	Summary   stats.Summary `json:"summary"`
	Upcoming  []TaskRow     `json:"upcoming"`
	MiniBoard stats.Columns `json:"board"`
}

// NewDashboardCommand creates the dashboard command.
func NewDashboardCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show counters, upcoming deadlines and a small board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app) error {
				doc, err := a.hub.Load(cmd.Context())
				if err != nil {
					return a.out.Fail(err)
				}
				today := a.hub.Today()
				view := DashboardView{
					Summary:   stats.Dashboard(doc),
					Upcoming:  deadlineRows(doc, a.cfg.UpcomingLimit, today),
					MiniBoard: stats.MiniBoard(doc, stats.MiniBoardSize),
				}
				return a.out.Result(view, func(w io.Writer) error {
					s := view.Summary
					fmt.Fprintf(w, "Projects: %d   Tasks: %d   Papers: %d   Completion: %d%%\n\n",
						s.ProjectCount, s.TaskCount, s.PaperCount, s.CompletionPct)
					fmt.Fprintln(w, "Upcoming deadlines")
					if err := writeDeadlines(w, view.Upcoming, today); err != nil {
						return err
					}
					fmt.Fprintln(w)
					return writeMiniBoard(w, view.MiniBoard)
				})
			})
		},
	}
}

// NewDeadlinesCommand creates the deadlines command.
func NewDeadlinesCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "deadlines",
		Short: "List tasks by due date, soonest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app) error {
				doc, err := a.hub.Load(cmd.Context())
				if err != nil {
					return a.out.Fail(err)
				}
				n := limit
				if !cmd.Flags().Changed("limit") {
					n = a.cfg.UpcomingLimit
				}
				today := a.hub.Today()
				rows := deadlineRows(doc, n, today)
				return a.out.Result(rows, func(w io.Writer) error {
					return writeDeadlines(w, rows, today)
				})
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", stats.DefaultUpcomingLimit, "number of deadlines to show")
	return cmd
}

func deadlineRows(doc model.Document, limit int, today string) []TaskRow {
	tasks := stats.UpcomingDeadlines(doc, limit)
	rows := make([]TaskRow, len(tasks))
	for i, t := range tasks {
		rows[i] = taskRow(doc, t, today)
	}
	return rows
}

func writeDeadlines(w io.Writer, rows []TaskRow, today string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "  No deadlines.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range rows {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n",
			r.Due, relativeDue(r.Due, today), r.Title, orDash(r.Project), badgeText(r.Badge))
	}
	return tw.Flush()
}

// relativeDue describes due relative to today, e.g. "3 days from now".
func relativeDue(due, today string) string {
	d, err := time.Parse(model.DateLayout, due)
	if err != nil {
		return "-"
	}
	t, err := time.Parse(model.DateLayout, today)
	if err != nil {
		return "-"
	}
	if d.Equal(t) {
		return "today"
	}
	return humanize.RelTime(d, t, "ago", "from now")
}

func badgeText(badge string) string {
	switch badge {
	case stats.BadgeOK:
		return "done"
	case stats.BadgeDanger:
		return "LATE"
	default:
		return "open"
	}
}

func writeMiniBoard(w io.Writer, cols stats.Columns) error {
	for _, s := range model.Statuses {
		tasks := cols.Column(s)
		fmt.Fprintf(w, "%s:", kanban.Label(s))
		if len(tasks) == 0 {
			fmt.Fprint(w, " -")
		}
		for i, t := range tasks {
			sep := ","
			if i == 0 {
				sep = ""
			}
			fmt.Fprintf(w, "%s %s", sep, t.Title)
		}
		fmt.Fprintln(w)
	}
	return nil
}
