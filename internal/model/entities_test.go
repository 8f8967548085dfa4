package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument_EmptyCollections(t *testing.T) {
	at := time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)
	doc := NewDocument(at)

	assert.Equal(t, "2026-03-04T10:30:00Z", doc.Meta.CreatedAt)
	assert.NotNil(t, doc.Projects)
	assert.NotNil(t, doc.Tasks)
	assert.NotNil(t, doc.Papers)
	assert.True(t, doc.IsEmpty())
}

func TestDocument_CloneIsDeep(t *testing.T) {
	doc := Document{
		Projects: []Project{{ID: "prj_1", Title: "P"}},
		Tasks:    []Task{{ID: "tsk_1", ProjectID: "prj_1", Title: "T"}},
		Papers:   []Paper{{ID: "pap_1", Title: "X", Tags: []string{"ai"}}},
	}

	cp := doc.Clone()
	cp.Projects[0].Title = "changed"
	cp.Tasks[0].Status = StatusDone
	cp.Papers[0].Tags[0] = "ml"

	assert.Equal(t, "P", doc.Projects[0].Title)
	assert.Equal(t, Status(""), doc.Tasks[0].Status)
	assert.Equal(t, "ai", doc.Papers[0].Tags[0])
}

func TestDocument_Normalize(t *testing.T) {
	doc := Document{Papers: []Paper{{ID: "pap_1"}}}
	doc.Normalize()

	assert.NotNil(t, doc.Projects)
	assert.NotNil(t, doc.Tasks)
	assert.NotNil(t, doc.Papers[0].Tags)
}

func TestDocument_Lookups(t *testing.T) {
	doc := Document{
		Projects: []Project{{ID: "prj_1"}, {ID: "prj_2"}},
		Tasks: []Task{
			{ID: "tsk_1", ProjectID: "prj_1"},
			{ID: "tsk_2", ProjectID: "prj_2"},
			{ID: "tsk_3", ProjectID: "prj_1"},
		},
		Papers: []Paper{{ID: "pap_1"}},
	}

	assert.Equal(t, 1, doc.ProjectIndex("prj_2"))
	assert.Equal(t, -1, doc.ProjectIndex("nope"))
	assert.Equal(t, 2, doc.TaskIndex("tsk_3"))
	assert.Equal(t, 0, doc.PaperIndex("pap_1"))
	assert.True(t, doc.HasID("tsk_2"))
	assert.False(t, doc.HasID("pap_2"))

	tasks := doc.TasksOf("prj_1")
	require.Len(t, tasks, 2)
	assert.Equal(t, "tsk_1", tasks[0].ID)
	assert.Equal(t, "tsk_3", tasks[1].ID)
}

func TestProjectValidate(t *testing.T) {
	tests := []struct {
		name    string
		project Project
		field   string
	}{
		{name: "valid", project: Project{Title: "Digital twin", Priority: PriorityHigh}},
		{name: "blank title", project: Project{Title: "   ", Priority: PriorityLow}, field: "title"},
		{name: "unknown priority", project: Project{Title: "x", Priority: "Urgent"}, field: "priority"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.project.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestTaskValidate(t *testing.T) {
	valid := Task{Title: "Write chapter", Status: StatusTodo, Priority: PriorityMed}

	tests := []struct {
		name  string
		edit  func(*Task)
		field string
	}{
		{name: "valid without due", edit: func(*Task) {}},
		{name: "valid with due", edit: func(t *Task) { t.Due = "2026-02-28" }},
		{name: "blank title", edit: func(t *Task) { t.Title = "" }, field: "title"},
		{name: "unknown status", edit: func(t *Task) { t.Status = "blocked" }, field: "status"},
		{name: "unknown priority", edit: func(t *Task) { t.Priority = "" }, field: "priority"},
		{name: "malformed due", edit: func(t *Task) { t.Due = "28/02/2026" }, field: "due"},
		{name: "impossible due", edit: func(t *Task) { t.Due = "2026-02-30" }, field: "due"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := valid
			tt.edit(&task)
			err := task.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestPaperValidate_Rating(t *testing.T) {
	for rating := MinRating; rating <= MaxRating; rating++ {
		p := Paper{Title: "Survey", Rating: rating}
		assert.NoError(t, p.Validate(), "rating %d", rating)
	}
	for _, rating := range []int{0, 6, -1} {
		p := Paper{Title: "Survey", Rating: rating}
		assert.True(t, IsValidation(p.Validate()), "rating %d", rating)
	}
}

func TestPaperCitation(t *testing.T) {
	p := Paper{Title: "Task Management UX Patterns", Authors: "A. Smith", Year: "2022"}
	assert.Equal(t, "Task Management UX Patterns. A. Smith (2022).", p.Citation())

	p.Year = ""
	assert.Equal(t, "Task Management UX Patterns. A. Smith (n.d.).", p.Citation())
}

func TestEnums(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.Valid())
	}
	assert.False(t, Status("Done").Valid())

	for _, p := range Priorities {
		assert.True(t, p.Valid())
	}
	assert.False(t, Priority("high").Valid())
}
