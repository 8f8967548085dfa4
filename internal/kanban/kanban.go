// Package kanban implements the task status state machine.
//
// The board has three flat columns (todo, doing, done) and no terminal
// state: a task may move between any two columns, and moving a task to the
// column it is already in changes nothing.
package kanban

import (
	"fmt"
	"strings"

	"github.com/roach88/researchhub/internal/model"
)

// UnknownLabel is shown for an empty status or priority.
const UnknownLabel = "—"

// ParseStatus converts user input to a Status. Matching is exact after
// trimming; column labels such as "To-Do" are accepted too.
func ParseStatus(s string) (model.Status, error) {
	s = strings.TrimSpace(s)
	if st := model.Status(s); st.Valid() {
		return st, nil
	}
	for _, st := range model.Statuses {
		if Label(st) == s {
			return st, nil
		}
	}
	return "", model.NewValidationError("status", fmt.Sprintf("unknown status %q (want todo, doing or done)", s))
}

// ParsePriority converts user input to a Priority.
func ParsePriority(s string) (model.Priority, error) {
	p := model.Priority(strings.TrimSpace(s))
	if !p.Valid() {
		return "", model.NewValidationError("priority", fmt.Sprintf("unknown priority %q (want Low, Med or High)", s))
	}
	return p, nil
}

// CanTransition reports whether a task in from may be moved to to.
//
// Every target column is reachable from every state. A task carrying an
// unrecognized status (kept from an import) may be moved into a column,
// which is how such tasks are repaired.
func CanTransition(from, to model.Status) bool {
	return to.Valid()
}

// Move returns a copy of doc with the task's status set to status.
// doc itself is never modified.
func Move(doc model.Document, taskID string, status model.Status) (model.Document, error) {
	i := doc.TaskIndex(taskID)
	if i < 0 {
		return model.Document{}, model.NewNotFoundError(model.KindTask, taskID)
	}
	if !CanTransition(doc.Tasks[i].Status, status) {
		return model.Document{}, model.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
	}

	out := doc.Clone()
	out.Tasks[i].Status = status
	return out, nil
}

// Label returns the column heading for a status. Values outside the known
// set are shown as stored.
func Label(s model.Status) string {
	switch s {
	case model.StatusTodo:
		return "To-Do"
	case model.StatusDoing:
		return "Doing"
	case model.StatusDone:
		return "Done"
	case "":
		return UnknownLabel
	default:
		return string(s)
	}
}

// PriorityLabel returns the display form of a priority.
func PriorityLabel(p model.Priority) string {
	if p == "" {
		return UnknownLabel
	}
	return string(p)
}
