package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the layout of every entity date (createdAt, due).
const DateLayout = "2006-01-02"

// Priority ranks projects and tasks.
type Priority string

const (
	PriorityLow  Priority = "Low"
	PriorityMed  Priority = "Med"
	PriorityHigh Priority = "High"
)

// Priorities lists the recognized priorities in ascending order.
var Priorities = []Priority{PriorityLow, PriorityMed, PriorityHigh}

// Valid reports whether p is one of the recognized priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMed, PriorityHigh:
		return true
	default:
		return false
	}
}

// Status is the kanban column of a task.
type Status string

const (
	StatusTodo  Status = "todo"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

// Statuses lists the recognized statuses in board order.
var Statuses = []Status{StatusTodo, StatusDoing, StatusDone}

// Valid reports whether s is one of the recognized statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	default:
		return false
	}
}

// Project groups tasks under a research topic.
type Project struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Field     string   `json:"field"`
	Priority  Priority `json:"priority"`
	CreatedAt string   `json:"createdAt"`
}

// Validate checks the fields a project must carry when written through CRUD.
func (p *Project) Validate() error {
	if err := ValidateTitle(KindProject, p.Title); err != nil {
		return err
	}
	return validatePriority(p.Priority)
}

// Task is a unit of work inside a project.
type Task struct {
	ID        string   `json:"id"`
	ProjectID string   `json:"projectId"`
	Title     string   `json:"title"`
	Due       string   `json:"due"`
	Status    Status   `json:"status"`
	Priority  Priority `json:"priority"`
	CreatedAt string   `json:"createdAt"`
}

// HasDue reports whether the task carries a due date.
func (t *Task) HasDue() bool {
	return t.Due != ""
}

// Validate checks the fields a task must carry when written through CRUD.
// Referential integrity is checked by the store, which sees the projects.
func (t *Task) Validate() error {
	if err := ValidateTitle(KindTask, t.Title); err != nil {
		return err
	}
	if err := validateStatus(t.Status); err != nil {
		return err
	}
	if err := validatePriority(t.Priority); err != nil {
		return err
	}
	return validateDue(t.Due)
}

// Paper is a bibliographic reference.
type Paper struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Authors   string   `json:"authors"`
	Year      string   `json:"year"`
	Rating    int      `json:"rating"`
	Tags      []string `json:"tags"`
	Link      string   `json:"link"`
	Notes     string   `json:"notes"`
	CreatedAt string   `json:"createdAt"`
}

// MinRating and MaxRating bound Paper.Rating.
const (
	MinRating = 1
	MaxRating = 5
)

// Validate checks the fields a paper must carry when written through CRUD.
func (p *Paper) Validate() error {
	if err := ValidateTitle(KindPaper, p.Title); err != nil {
		return err
	}
	return validateRating(p.Rating)
}

// Citation formats the paper the way it is copied into notes:
// "<title>. <authors> (<year>)." with "n.d." for a missing year.
func (p *Paper) Citation() string {
	year := p.Year
	if year == "" {
		year = "n.d."
	}
	return fmt.Sprintf("%s. %s (%s).", p.Title, p.Authors, year)
}

// Meta describes the document itself.
type Meta struct {
	CreatedAt string `json:"createdAt"`
}

// Document is the single persisted aggregate.
type Document struct {
	Meta     Meta      `json:"meta"`
	Projects []Project `json:"projects"`
	Tasks    []Task    `json:"tasks"`
	Papers   []Paper   `json:"papers"`
}

// NewDocument returns an empty document stamped with createdAt.
func NewDocument(createdAt time.Time) Document {
	return Document{
		Meta:     Meta{CreatedAt: createdAt.UTC().Format(time.RFC3339)},
		Projects: []Project{},
		Tasks:    []Task{},
		Papers:   []Paper{},
	}
}

// Clone returns a deep copy; mutating the copy never affects d.
func (d Document) Clone() Document {
	out := Document{
		Meta:     d.Meta,
		Projects: append(make([]Project, 0, len(d.Projects)), d.Projects...),
		Tasks:    append(make([]Task, 0, len(d.Tasks)), d.Tasks...),
		Papers:   make([]Paper, len(d.Papers)),
	}
	for i, p := range d.Papers {
		p.Tags = append(make([]string, 0, len(p.Tags)), p.Tags...)
		out.Papers[i] = p
	}
	return out
}

// Normalize replaces nil collections with empty ones so the document always
// serializes with all three lists present.
func (d *Document) Normalize() {
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.Tasks == nil {
		d.Tasks = []Task{}
	}
	if d.Papers == nil {
		d.Papers = []Paper{}
	}
	for i := range d.Papers {
		if d.Papers[i].Tags == nil {
			d.Papers[i].Tags = []string{}
		}
	}
}

// ProjectIndex returns the position of the project with id, or -1.
func (d *Document) ProjectIndex(id string) int {
	for i := range d.Projects {
		if d.Projects[i].ID == id {
			return i
		}
	}
	return -1
}

// TaskIndex returns the position of the task with id, or -1.
func (d *Document) TaskIndex(id string) int {
	for i := range d.Tasks {
		if d.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// PaperIndex returns the position of the paper with id, or -1.
func (d *Document) PaperIndex(id string) int {
	for i := range d.Papers {
		if d.Papers[i].ID == id {
			return i
		}
	}
	return -1
}

// FindProject returns the project with id.
func (d *Document) FindProject(id string) (Project, bool) {
	if i := d.ProjectIndex(id); i >= 0 {
		return d.Projects[i], true
	}
	return Project{}, false
}

// HasID reports whether any entity in the document uses id.
func (d *Document) HasID(id string) bool {
	return d.ProjectIndex(id) >= 0 || d.TaskIndex(id) >= 0 || d.PaperIndex(id) >= 0
}

// IsEmpty reports whether the document holds no entities.
func (d *Document) IsEmpty() bool {
	return len(d.Projects) == 0 && len(d.Tasks) == 0 && len(d.Papers) == 0
}

// TasksOf returns the tasks referencing projectID in insertion order.
func (d *Document) TasksOf(projectID string) []Task {
	var out []Task
	for _, t := range d.Tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}

// ValidateTitle rejects a title that is empty after trimming.
func ValidateTitle(kind, title string) error {
	if strings.TrimSpace(title) == "" {
		return NewValidationError("title", kind+" title is required")
	}
	return nil
}

func validatePriority(p Priority) error {
	if !p.Valid() {
		return NewValidationError("priority", fmt.Sprintf("unknown priority %q", p))
	}
	return nil
}

func validateStatus(s Status) error {
	if !s.Valid() {
		return NewValidationError("status", fmt.Sprintf("unknown status %q", s))
	}
	return nil
}

// validateDue accepts an empty due date.
func validateDue(due string) error {
	if due == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, due); err != nil {
		return NewValidationError("due", fmt.Sprintf("due date %q is not YYYY-MM-DD", due))
	}
	return nil
}

func validateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return NewValidationError("rating", fmt.Sprintf("rating %d is outside %d-%d", rating, MinRating, MaxRating))
	}
	return nil
}
