package tracker

import (
	"context"
	"slices"
	"strings"

	"github.com/roach88/researchhub/internal/ids"
	"github.com/roach88/researchhub/internal/kanban"
	"github.com/roach88/researchhub/internal/model"
)

// CreateTask adds a task to an existing project. Status defaults to todo
// and priority to Low.
func (s *Store) CreateTask(ctx context.Context, in model.Task) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := model.Task{
		ProjectID: strings.TrimSpace(in.ProjectID),
		Title:     strings.TrimSpace(in.Title),
		Due:       strings.TrimSpace(in.Due),
		Status:    in.Status,
		Priority:  in.Priority,
	}
	if t.Status == "" {
		t.Status = model.StatusTodo
	}
	if t.Priority == "" {
		t.Priority = model.PriorityLow
	}

	err := t.Validate()
	if err == nil {
		err = s.mutate(ctx, func(doc *model.Document) error {
			if doc.ProjectIndex(t.ProjectID) < 0 {
				return &model.ReferentialError{ProjectID: t.ProjectID}
			}
			id, err := s.newID(doc, ids.PrefixTask)
			if err != nil {
				return err
			}
			t.ID = id
			t.CreatedAt = s.Today()
			doc.Tasks = append(doc.Tasks, t)
			return nil
		})
	}
	s.observe("create_task", err, "id", t.ID, "project_id", t.ProjectID)
	if err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// UpdateTask applies the set fields of f to task id. Moving a task to
// another project requires that project to exist.
func (s *Store) UpdateTask(ctx context.Context, id string, f model.TaskFields) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := f.Validate(); err != nil {
		s.observe("update_task", err, "id", id)
		return model.Task{}, err
	}

	var updated model.Task
	err := s.mutate(ctx, func(doc *model.Document) error {
		i := doc.TaskIndex(id)
		if i < 0 {
			return model.NewNotFoundError(model.KindTask, id)
		}
		t := doc.Tasks[i]
		f.Apply(&t)
		if err := model.ValidateTitle(model.KindTask, t.Title); err != nil {
			return err
		}
		if doc.ProjectIndex(t.ProjectID) < 0 {
			return &model.ReferentialError{TaskID: id, ProjectID: t.ProjectID}
		}
		doc.Tasks[i] = t
		updated = t
		return nil
	})
	s.observe("update_task", err, "id", id)
	return updated, err
}

// DeleteTask removes task id.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.mutate(ctx, func(doc *model.Document) error {
		i := doc.TaskIndex(id)
		if i < 0 {
			return model.NewNotFoundError(model.KindTask, id)
		}
		doc.Tasks = slices.Delete(doc.Tasks, i, i+1)
		return nil
	})
	s.observe("delete_task", err, "id", id)
	return err
}

// MoveTask sets the status of task id. Moving a task to the column it is
// already in succeeds and leaves the document unchanged.
func (s *Store) MoveTask(ctx context.Context, id string, status model.Status) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var moved model.Task
	err := s.mutate(ctx, func(doc *model.Document) error {
		next, err := kanban.Move(*doc, id, status)
		if err != nil {
			return err
		}
		*doc = next
		moved = next.Tasks[next.TaskIndex(id)]
		return nil
	})
	s.observe("move_task", err, "id", id, "status", string(status))
	return moved, err
}
