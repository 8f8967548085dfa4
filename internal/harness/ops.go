package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/researchhub/internal/model"
	"github.com/roach88/researchhub/internal/tracker"
)

// ErrBadArgs is returned when a step's args do not fit its operation.
// It aborts the run instead of being recorded as an outcome.
var ErrBadArgs = errors.New("bad args")

// OpFunc executes one tracker operation with raw scenario args.
type OpFunc func(ctx context.Context, s *tracker.Store, args map[string]any) (any, error)

// Ops maps scenario op names to tracker operations. The names match the
// op labels the tracker reports to metrics.
var Ops = map[string]OpFunc{
	"create_project": createProject,
	"update_project": updateProject,
	"delete_project": deleteProject,
	"create_task":    createTask,
	"update_task":    updateTask,
	"delete_task":    deleteTask,
	"move_task":      moveTask,
	"create_paper":   createPaper,
	"update_paper":   updatePaper,
	"delete_paper":   deletePaper,
	"import":         importDocument,
	"seed":           seedDocument,
	"reset":          resetDocument,
}

type idArgs struct {
	ID string `json:"id"`
}

type projectArgs struct {
	ID       string          `json:"id"`
	Title    *string         `json:"title"`
	Field    *string         `json:"field"`
	Priority *model.Priority `json:"priority"`
}

type taskArgs struct {
	ID        string          `json:"id"`
	ProjectID *string         `json:"project_id"`
	Title     *string         `json:"title"`
	Due       *string         `json:"due"`
	Status    *model.Status   `json:"status"`
	Priority  *model.Priority `json:"priority"`
}

type paperArgs struct {
	ID      string    `json:"id"`
	Title   *string   `json:"title"`
	Authors *string   `json:"authors"`
	Year    *string   `json:"year"`
	Rating  *int      `json:"rating"`
	Tags    *[]string `json:"tags"`
	Link    *string   `json:"link"`
	Notes   *string   `json:"notes"`
}

type moveArgs struct {
	ID     string       `json:"id"`
	Status model.Status `json:"status"`
}

type importArgs struct {
	// Payload is the raw import text.
	Payload string `json:"payload"`
	// Document is an inline document, used when Payload is empty.
	Document map[string]any `json:"document"`
}

// decodeArgs maps raw YAML args onto an args struct. Unknown keys are
// rejected so a misspelled field cannot silently become a no-op.
func decodeArgs(raw map[string]any, v any) error {
	if raw == nil {
		raw = map[string]any{}
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadArgs, err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadArgs, err)
	}
	return nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func createProject(ctx context.Context, s *tracker.Store, raw map[string]any) (any, error) {
	var a projectArgs
	if err := decodeArgs(raw, &a); err != nil {
		return nil, err
	}
	return s.CreateProject(ctx, model.Project{
		Title:    deref(a.Title),
		Field:    deref(a.Field),
		Priority: deref(a.Priority),
	})
}

func updateProject(ctx context.Context, s *tracker.Store, raw map[string]any) (any, error) {
	var a projectArgs
	if err := decodeArgs(raw, &a); err != nil {
		return nil, err
	}
	return s.UpdateProject(ctx, a.ID, model.ProjectFields{
		Title:    a.Title,
		Field:    a.Field,
		Priority: a.Priority,
	})
}

func deleteProject(ctx context.Context, s *tracker.Store, raw map[string]any) (any, error) {
	var a idArgs
	if err := decodeArgs(raw, &a); err != nil {
		return nil, err
	}
	removed, err := s.DeleteProject(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	return map[string]any{"tasks_removed": removed}, nil
}

func createTask(ctx context.Context, s *tracker.Store, raw map[string]any) (any, error) {
	var a taskArgs
	if err := decodeArgs(raw, &a); err != nil {
		return nil, err
	}
	return s.CreateTask(ctx, model.Task{
		ProjectID: deref(a.ProjectID),
		Title:     deref(a.Title),
		Due:       deref(a.Due),
		Status:    deref(a.Status),
		Priority:  deref(a.Priority),
	})
}

func updateTask(ctx context.Context, s *tracker.Store, raw map[string]any) (any, error) {
	var a taskArgs
	if err := decodeArgs(raw, &a); err != nil {
		return nil, err
	}
	return s.UpdateTask(ctx, a.ID, model.TaskFields{
		ProjectID: a.ProjectID,
		Title:     a.Title,
		Due:       a.Due,
		Status:    a.Status,
		Priority:  a.Priority,
	})
}

func deleteTask(ctx context.Context, s *tracker.Store, raw map[string]any) (any, error) {
	var a idArgs
	if err := decodeArgs(raw, &a); err != nil {
		return nil, err
	}
	return nil, s.DeleteTask(ctx, a.ID)
}

func moveTask(ctx context.Context, s *tracker.Store, raw map[string]any) (any, error) {
	var a moveArgs
	if err := decodeArgs(raw, &a); err != nil {
		return nil, err
	}
	return s.MoveTask(ctx, a.ID, a.Status)
}

func createPaper(ctx context.Context, s *tracker.Store, raw map[string]any) (any, error) {
	var a paperArgs
	if err := decodeArgs(raw, &a); err != nil {
		return nil, err
	}
	return s.CreatePaper(ctx, model.Paper{
		Title:   deref(a.Title),
		Authors: deref(a.Authors),
		Year:    deref(a.Year),
		Rating:  deref(a.Rating),
		Tags:    deref(a.Tags),
		Link:    deref(a.Link),
		Notes:   deref(a.Notes),
	})
}

func updatePaper(ctx context.Context, s *tracker.Store, raw map[string]any) (any, error) {
	var a paperArgs
	if err := decodeArgs(raw, &a); err != nil {
		return nil, err
	}
	return s.UpdatePaper(ctx, a.ID, model.PaperFields{
		Title:   a.Title,
		Authors: a.Authors,
		Year:    a.Year,
		Rating:  a.Rating,
		Tags:    a.Tags,
		Link:    a.Link,
		Notes:   a.Notes,
	})
}

func deletePaper(ctx context.Context, s *tracker.Store, raw map[string]any) (any, error) {
	var a idArgs
	if err := decodeArgs(raw, &a); err != nil {
		return nil, err
	}
	return nil, s.DeletePaper(ctx, a.ID)
}

func importDocument(ctx context.Context, s *tracker.Store, raw map[string]any) (any, error) {
	var a importArgs
	if err := decodeArgs(raw, &a); err != nil {
		return nil, err
	}
	payload := []byte(a.Payload)
	if a.Payload == "" && a.Document != nil {
		data, err := json.Marshal(a.Document)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadArgs, err)
		}
		payload = data
	}
	doc, err := s.Import(ctx, payload)
	if err != nil {
		return nil, err
	}
	return documentCounts(doc), nil
}

func seedDocument(ctx context.Context, s *tracker.Store, raw map[string]any) (any, error) {
	if err := decodeArgs(raw, &struct{}{}); err != nil {
		return nil, err
	}
	seeded, err := s.Seed(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{"seeded": seeded}, nil
}

func resetDocument(ctx context.Context, s *tracker.Store, raw map[string]any) (any, error) {
	if err := decodeArgs(raw, &struct{}{}); err != nil {
		return nil, err
	}
	doc, err := s.ResetAll(ctx)
	if err != nil {
		return nil, err
	}
	return documentCounts(doc), nil
}

func documentCounts(doc model.Document) map[string]any {
	return map[string]any{
		"projects": len(doc.Projects),
		"tasks":    len(doc.Tasks),
		"papers":   len(doc.Papers),
	}
}
