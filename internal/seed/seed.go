// Package seed provides the demo data offered to a new user.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/researchhub/internal/ids"
	"github.com/roach88/researchhub/internal/model"
)

//go:embed seed.yaml
var seedYAML []byte

// Fixture is the decoded demo data set.
type Fixture struct {
	Projects []ProjectFixture `yaml:"projects"`
	Papers   []PaperFixture   `yaml:"papers"`
}

// ProjectFixture is a demo project with its tasks.
type ProjectFixture struct {
	Title    string         `yaml:"title"`
	Field    string         `yaml:"field"`
	Priority model.Priority `yaml:"priority"`
	Tasks    []TaskFixture  `yaml:"tasks"`
}

// TaskFixture is a demo task. Its due date is DueInDays after the seeding day.
type TaskFixture struct {
	Title     string         `yaml:"title"`
	DueInDays int            `yaml:"due_in_days"`
	Status    model.Status   `yaml:"status"`
	Priority  model.Priority `yaml:"priority"`
}

// PaperFixture is a demo paper.
type PaperFixture struct {
	Title   string   `yaml:"title"`
	Authors string   `yaml:"authors"`
	Year    string   `yaml:"year"`
	Rating  int      `yaml:"rating"`
	Tags    []string `yaml:"tags"`
	Link    string   `yaml:"link"`
	Notes   string   `yaml:"notes"`
}

// Load decodes the embedded fixture.
func Load() (Fixture, error) {
	return Parse(seedYAML)
}

// Parse decodes a fixture, rejecting unknown fields.
func Parse(data []byte) (Fixture, error) {
	var f Fixture
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return Fixture{}, fmt.Errorf("failed to parse seed YAML: %w", err)
	}
	return f, nil
}

// Build materializes the fixture as entities created on today. ids come
// from gen. The returned document has no meta.
func (f Fixture) Build(today time.Time, gen ids.Generator) model.Document {
	created := today.Format(model.DateLayout)
	doc := model.Document{
		Projects: []model.Project{},
		Tasks:    []model.Task{},
		Papers:   []model.Paper{},
	}

	for _, pf := range f.Projects {
		p := model.Project{
			ID:        gen.New(ids.PrefixProject),
			Title:     pf.Title,
			Field:     pf.Field,
			Priority:  pf.Priority,
			CreatedAt: created,
		}
		doc.Projects = append(doc.Projects, p)

		for _, tf := range pf.Tasks {
			doc.Tasks = append(doc.Tasks, model.Task{
				ID:        gen.New(ids.PrefixTask),
				ProjectID: p.ID,
				Title:     tf.Title,
				Due:       today.AddDate(0, 0, tf.DueInDays).Format(model.DateLayout),
				Status:    tf.Status,
				Priority:  tf.Priority,
				CreatedAt: created,
			})
		}
	}

	for _, pf := range f.Papers {
		tags := append([]string{}, pf.Tags...)
		doc.Papers = append(doc.Papers, model.Paper{
			ID:        gen.New(ids.PrefixPaper),
			Title:     pf.Title,
			Authors:   pf.Authors,
			Year:      pf.Year,
			Rating:    pf.Rating,
			Tags:      tags,
			Link:      pf.Link,
			Notes:     pf.Notes,
			CreatedAt: created,
		})
	}
	return doc
}
