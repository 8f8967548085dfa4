// Package testutil provides deterministic clocks and document fixtures for
// tests.
package testutil

import (
	"fmt"

	"github.com/roach88/researchhub/internal/model"
)

// DocBuilder assembles a Document for tests. Ids are sequential per kind
// ("p1", "t1", "x1") so assertions can name them.
type DocBuilder struct {
	doc                     model.Document
	nProject, nTask, nPaper int
	createdAt               string
}

// NewDoc starts an empty document whose entities are created on createdAt.
func NewDoc(createdAt string) *DocBuilder {
	return &DocBuilder{
		doc: model.Document{
			Meta:     model.Meta{CreatedAt: createdAt + "T00:00:00Z"},
			Projects: []model.Project{},
			Tasks:    []model.Task{},
			Papers:   []model.Paper{},
		},
		createdAt: createdAt,
	}
}

// Project appends a project and returns its id.
func (b *DocBuilder) Project(title string, priority model.Priority) string {
	b.nProject++
	id := fmt.Sprintf("p%d", b.nProject)
	b.doc.Projects = append(b.doc.Projects, model.Project{
		ID: id, Title: title, Priority: priority, CreatedAt: b.createdAt,
	})
	return id
}

// Task appends a task of projectID and returns its id.
func (b *DocBuilder) Task(projectID, title string, status model.Status, due string) string {
	b.nTask++
	id := fmt.Sprintf("t%d", b.nTask)
	b.doc.Tasks = append(b.doc.Tasks, model.Task{
		ID: id, ProjectID: projectID, Title: title, Due: due,
		Status: status, Priority: model.PriorityMed, CreatedAt: b.createdAt,
	})
	return id
}

// Paper appends a paper and returns its id.
func (b *DocBuilder) Paper(title string, rating int, tags ...string) string {
	b.nPaper++
	id := fmt.Sprintf("x%d", b.nPaper)
	if tags == nil {
		tags = []string{}
	}
	b.doc.Papers = append(b.doc.Papers, model.Paper{
		ID: id, Title: title, Rating: rating, Tags: tags, CreatedAt: b.createdAt,
	})
	return id
}

// Build returns a copy of the assembled document.
func (b *DocBuilder) Build() model.Document {
	return b.doc.Clone()
}
