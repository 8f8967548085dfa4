// Package stats derives dashboard figures, deadlines, board columns and
// chart series from a Document. Every function is pure.
package stats

import (
	"slices"
	"strings"

	"github.com/roach88/researchhub/internal/chart"
	"github.com/roach88/researchhub/internal/kanban"
	"github.com/roach88/researchhub/internal/model"
)

// DefaultUpcomingLimit is the number of deadlines shown on the dashboard.
const DefaultUpcomingLimit = 6

// MiniBoardSize is the number of tasks per column on the dashboard board.
const MiniBoardSize = 4

// LabelRunes is the longest project label used in the progress chart.
const LabelRunes = 14

// NoDataLabel labels the single empty bar drawn when there are no projects.
const NoDataLabel = "No data"

// noDue sorts tasks without a due date after every real date.
const noDue = "9999-99-99"

// Summary holds the dashboard counters.
type Summary struct {
	ProjectCount  int `json:"projects"`
	TaskCount     int `json:"tasks"`
	PaperCount    int `json:"papers"`
	CompletionPct int `json:"completion_pct"`
}

// Columns groups tasks by kanban status.
type Columns struct {
	Todo  []model.Task `json:"todo"`
	Doing []model.Task `json:"doing"`
	Done  []model.Task `json:"done"`
}

// Column returns the tasks of one status.
func (c Columns) Column(s model.Status) []model.Task {
	switch s {
	case model.StatusTodo:
		return c.Todo
	case model.StatusDoing:
		return c.Doing
	case model.StatusDone:
		return c.Done
	default:
		return nil
	}
}

// Percent returns round(100*part/total), rounding halves up, or 0 when
// total is 0.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*part + total) / (2 * total)
}

func completion(tasks []model.Task) int {
	done := 0
	for _, t := range tasks {
		if t.Status == model.StatusDone {
			done++
		}
	}
	return Percent(done, len(tasks))
}

// Dashboard computes the headline counters.
func Dashboard(doc model.Document) Summary {
	return Summary{
		ProjectCount:  len(doc.Projects),
		TaskCount:     len(doc.Tasks),
		PaperCount:    len(doc.Papers),
		CompletionPct: completion(doc.Tasks),
	}
}

// ProjectProgress is the completion percentage of one project's tasks.
// A project without tasks, or an unknown id, is at 0.
func ProjectProgress(doc model.Document, projectID string) int {
	return completion(doc.TasksOf(projectID))
}

// TaskCount returns the number of tasks in a project.
func TaskCount(doc model.Document, projectID string) int {
	return len(doc.TasksOf(projectID))
}

// UpcomingDeadlines returns tasks with a due date, soonest first, at most
// limit of them. limit <= 0 means DefaultUpcomingLimit. Completed tasks are
// included.
func UpcomingDeadlines(doc model.Document, limit int) []model.Task {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	out := make([]model.Task, 0, len(doc.Tasks))
	for _, t := range doc.Tasks {
		if t.HasDue() {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Task) int {
		return strings.Compare(a.Due, b.Due)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// IsLate reports whether an unfinished task is past its due date. today is
// a YYYY-MM-DD date; a task due today is not late.
func IsLate(t model.Task, today string) bool {
	return t.HasDue() && t.Status != model.StatusDone && t.Due < today
}

// Badge kinds.
const (
	BadgeOK     = "ok"
	BadgeWarn   = "warn"
	BadgeDanger = "danger"
)

// Badge classifies a deadline: ok when done, danger when late, warn otherwise.
func Badge(t model.Task, today string) string {
	switch {
	case t.Status == model.StatusDone:
		return BadgeOK
	case IsLate(t, today):
		return BadgeDanger
	default:
		return BadgeWarn
	}
}

func dueKey(t model.Task) string {
	if t.Due == "" {
		return noDue
	}
	return t.Due
}

// KanbanColumns groups tasks by status, each column ordered by due date
// with undated tasks last. Tasks with an unrecognized status are left out.
func KanbanColumns(doc model.Document) Columns {
	var cols Columns
	for _, t := range doc.Tasks {
		switch t.Status {
		case model.StatusTodo:
			cols.Todo = append(cols.Todo, t)
		case model.StatusDoing:
			cols.Doing = append(cols.Doing, t)
		case model.StatusDone:
			cols.Done = append(cols.Done, t)
		}
	}
	byDue := func(a, b model.Task) int { return strings.Compare(dueKey(a), dueKey(b)) }
	slices.SortStableFunc(cols.Todo, byDue)
	slices.SortStableFunc(cols.Doing, byDue)
	slices.SortStableFunc(cols.Done, byDue)
	return cols
}

// MiniBoard returns the first n tasks of each status in stored order.
func MiniBoard(doc model.Document, n int) Columns {
	var cols Columns
	for _, t := range doc.Tasks {
		switch t.Status {
		case model.StatusTodo:
			if len(cols.Todo) < n {
				cols.Todo = append(cols.Todo, t)
			}
		case model.StatusDoing:
			if len(cols.Doing) < n {
				cols.Doing = append(cols.Doing, t)
			}
		case model.StatusDone:
			if len(cols.Done) < n {
				cols.Done = append(cols.Done, t)
			}
		}
	}
	return cols
}

// StatusDistribution counts tasks per column, labelled for the chart.
func StatusDistribution(doc model.Document) []chart.Item {
	items := make([]chart.Item, len(model.Statuses))
	for i, s := range model.Statuses {
		items[i].Label = kanban.Label(s)
	}
	for _, t := range doc.Tasks {
		if i := slices.Index(model.Statuses, t.Status); i >= 0 {
			items[i].Value++
		}
	}
	return items
}

// ProgressSeries is the completion percentage of each project, labelled
// with the first LabelRunes runes of its title. With no projects it is a
// single zero bar labelled NoDataLabel.
func ProgressSeries(doc model.Document) []chart.Item {
	if len(doc.Projects) == 0 {
		return []chart.Item{{Label: NoDataLabel, Value: 0}}
	}
	items := make([]chart.Item, len(doc.Projects))
	for i, p := range doc.Projects {
		items[i] = chart.Item{
			Label: truncate(p.Title, LabelRunes),
			Value: float64(ProjectProgress(doc, p.ID)),
		}
	}
	return items
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
