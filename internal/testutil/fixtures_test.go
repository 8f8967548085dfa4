package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/researchhub/internal/model"
)

func TestDocBuilder(t *testing.T) {
	b := NewDoc("2026-01-10")
	p := b.Project("Thesis", model.PriorityHigh)
	b.Task(p, "Outline", model.StatusTodo, "2026-01-20")
	b.Paper("Survey", 4, "ai")

	doc := b.Build()

	require.Len(t, doc.Projects, 1)
	assert.Equal(t, "p1", doc.Projects[0].ID)
	assert.Equal(t, "p1", doc.Tasks[0].ProjectID)
	assert.Equal(t, "x1", doc.Papers[0].ID)
	assert.Equal(t, "2026-01-10T00:00:00Z", doc.Meta.CreatedAt)

	for _, task := range doc.Tasks {
		assert.NoError(t, task.Validate())
	}
}

func TestDocBuilder_BuildReturnsCopies(t *testing.T) {
	b := NewDoc("2026-01-10")
	b.Project("A", model.PriorityLow)

	first := b.Build()
	first.Projects[0].Title = "changed"

	assert.Equal(t, "A", b.Build().Projects[0].Title)
}
