package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/researchhub/internal/ids"
	"github.com/roach88/researchhub/internal/model"
)

func TestLoad_EmbeddedFixture(t *testing.T) {
	f, err := Load()
	require.NoError(t, err)

	require.Len(t, f.Projects, 2)
	assert.Len(t, f.Projects[0].Tasks, 3)
	assert.Len(t, f.Projects[1].Tasks, 3)
	assert.Len(t, f.Papers, 2)
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("projects:\n  - title: x\n    colour: red\n"))
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	f, err := Load()
	require.NoError(t, err)

	today := time.Date(2026, 1, 28, 15, 0, 0, 0, time.UTC)
	doc := f.Build(today, ids.NewSequenceGenerator())

	require.Len(t, doc.Projects, 2)
	require.Len(t, doc.Tasks, 6)
	require.Len(t, doc.Papers, 2)

	assert.Equal(t, "prj_0001", doc.Projects[0].ID)
	assert.Equal(t, "2026-01-28", doc.Projects[0].CreatedAt)

	var dues []string
	for _, task := range doc.Tasks {
		dues = append(dues, task.Due)
	}
	assert.Equal(t, []string{"2026-02-04", "2026-02-07", "2026-02-01", "2026-02-03", "2026-02-06", "2026-02-09"}, dues)

	assert.Equal(t, "prj_0001", doc.Tasks[0].ProjectID)
	assert.Equal(t, "prj_0002", doc.Tasks[5].ProjectID)
	assert.Equal(t, model.StatusDone, doc.Tasks[5].Status)
}

func TestBuild_EntitiesPassValidation(t *testing.T) {
	f, err := Load()
	require.NoError(t, err)

	doc := f.Build(time.Now(), ids.UUIDv7Generator{})
	for _, p := range doc.Projects {
		assert.NoError(t, p.Validate())
	}
	for _, task := range doc.Tasks {
		assert.NoError(t, task.Validate())
	}
	for _, p := range doc.Papers {
		assert.NoError(t, p.Validate())
	}
}
