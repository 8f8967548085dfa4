package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectFields_ApplyKeepsUnsetFields(t *testing.T) {
	p := Project{ID: "prj_1", Title: "Old", Field: "HCI", Priority: PriorityLow, CreatedAt: "2026-01-01"}

	ProjectFields{Title: Ptr("  New title ")}.Apply(&p)

	assert.Equal(t, "New title", p.Title)
	assert.Equal(t, "HCI", p.Field)
	assert.Equal(t, PriorityLow, p.Priority)
	assert.Equal(t, "2026-01-01", p.CreatedAt)
}

func TestTaskFields_Apply(t *testing.T) {
	task := Task{ID: "tsk_1", ProjectID: "prj_1", Title: "T", Status: StatusTodo, Priority: PriorityLow}

	TaskFields{Status: Ptr(StatusDoing), Due: Ptr("2026-05-01")}.Apply(&task)

	assert.Equal(t, StatusDoing, task.Status)
	assert.Equal(t, "2026-05-01", task.Due)
	assert.Equal(t, "prj_1", task.ProjectID)
	assert.Equal(t, "T", task.Title)
}

func TestPaperFields_ApplyCopiesTags(t *testing.T) {
	tags := []string{"ai", "ux"}
	p := Paper{ID: "pap_1", Title: "X", Rating: 3}

	PaperFields{Tags: &tags, Rating: Ptr(5)}.Apply(&p)
	tags[0] = "mutated"

	assert.Equal(t, []string{"ai", "ux"}, p.Tags)
	assert.Equal(t, 5, p.Rating)
	assert.Equal(t, "X", p.Title)
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"ai", "Smart-City", "ai"}, ParseTags(" ai, Smart-City ,, ai "))
	assert.Equal(t, []string{}, ParseTags(""))
	assert.Equal(t, []string{}, ParseTags(" , "))
}

func TestFields_ValidateOnlySetFields(t *testing.T) {
	assert.NoError(t, ProjectFields{}.Validate())
	assert.NoError(t, TaskFields{ProjectID: Ptr("")}.Validate())
	assert.NoError(t, TaskFields{Due: Ptr("")}.Validate())
	assert.NoError(t, PaperFields{Notes: Ptr("")}.Validate())

	assert.True(t, IsValidation(ProjectFields{Title: Ptr(" ")}.Validate()))
	assert.True(t, IsValidation(ProjectFields{Priority: Ptr(Priority("Urgent"))}.Validate()))
	assert.True(t, IsValidation(TaskFields{Status: Ptr(Status("blocked"))}.Validate()))
	assert.True(t, IsValidation(TaskFields{Priority: Ptr(Priority(""))}.Validate()))
	assert.True(t, IsValidation(TaskFields{Due: Ptr("2026-02-30")}.Validate()))
	assert.True(t, IsValidation(PaperFields{Rating: Ptr(0)}.Validate()))
	assert.True(t, IsValidation(PaperFields{Title: Ptr("")}.Validate()))
}
