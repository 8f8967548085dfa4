package tracker

import (
	"context"
	"slices"
	"strings"

	"github.com/roach88/researchhub/internal/ids"
	"github.com/roach88/researchhub/internal/model"
)

// CreateProject adds a project built from in's title, field and priority.
// Priority defaults to Low. The id and creation date are assigned here.
func (s *Store) CreateProject(ctx context.Context, in model.Project) (model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := model.Project{
		Title:    strings.TrimSpace(in.Title),
		Field:    strings.TrimSpace(in.Field),
		Priority: in.Priority,
	}
	if p.Priority == "" {
		p.Priority = model.PriorityLow
	}

	err := p.Validate()
	if err == nil {
		err = s.mutate(ctx, func(doc *model.Document) error {
			id, err := s.newID(doc, ids.PrefixProject)
			if err != nil {
				return err
			}
			p.ID = id
			p.CreatedAt = s.Today()
			doc.Projects = append(doc.Projects, p)
			return nil
		})
	}
	s.observe("create_project", err, "id", p.ID)
	if err != nil {
		return model.Project{}, err
	}
	return p, nil
}

// UpdateProject applies the set fields of f to project id.
func (s *Store) UpdateProject(ctx context.Context, id string, f model.ProjectFields) (model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := f.Validate(); err != nil {
		s.observe("update_project", err, "id", id)
		return model.Project{}, err
	}

	var updated model.Project
	err := s.mutate(ctx, func(doc *model.Document) error {
		i := doc.ProjectIndex(id)
		if i < 0 {
			return model.NewNotFoundError(model.KindProject, id)
		}
		p := doc.Projects[i]
		f.Apply(&p)
		if err := model.ValidateTitle(model.KindProject, p.Title); err != nil {
			return err
		}
		doc.Projects[i] = p
		updated = p
		return nil
	})
	s.observe("update_project", err, "id", id)
	return updated, err
}

// DeleteProject removes project id and every task that references it, in
// one write. It returns the number of tasks removed with the project.
func (s *Store) DeleteProject(ctx context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	err := s.mutate(ctx, func(doc *model.Document) error {
		i := doc.ProjectIndex(id)
		if i < 0 {
			return model.NewNotFoundError(model.KindProject, id)
		}
		doc.Projects = slices.Delete(doc.Projects, i, i+1)
		before := len(doc.Tasks)
		doc.Tasks = slices.DeleteFunc(doc.Tasks, func(t model.Task) bool {
			return t.ProjectID == id
		})
		removed = before - len(doc.Tasks)
		return nil
	})
	s.observe("delete_project", err, "id", id, "cascaded_tasks", removed)
	if err != nil {
		return 0, err
	}
	return removed, nil
}
