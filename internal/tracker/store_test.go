package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/researchhub/internal/ids"
	"github.com/roach88/researchhub/internal/metrics"
	"github.com/roach88/researchhub/internal/model"
	"github.com/roach88/researchhub/internal/store"
)

func TestLoad_CreatesAndPersistsEmptyDocument(t *testing.T) {
	h := newHarness(t)

	doc := h.load(t)

	assert.Equal(t, "2026-01-28T09:30:00Z", doc.Meta.CreatedAt)
	assert.True(t, doc.IsEmpty())
	assert.Equal(t, `{"meta":{"createdAt":"2026-01-28T09:30:00Z"},"papers":[],"projects":[],"tasks":[]}`, h.persisted(t))

	// A later load returns the stored stamp rather than a new one.
	h.clock.AdvanceDays(3)
	assert.Equal(t, "2026-01-28T09:30:00Z", h.load(t).Meta.CreatedAt)
}

func TestLoad_StorageFailure(t *testing.T) {
	h := newHarness(t)
	h.slot.FailWith = errors.New("disk I/O error")

	_, err := h.tracker.Load(context.Background())
	require.Error(t, err)
	assert.True(t, model.IsStorage(err))
}

func TestLoad_CorruptPayloadIsStorageError(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.slot.Put(context.Background(), DocumentKey, []byte("{not json")))

	_, err := h.tracker.Load(context.Background())
	assert.True(t, model.IsStorage(err))

	// The corrupt payload is not overwritten.
	assert.Equal(t, "{not json", h.persisted(t))
}

func TestSave_ReadYourWrites(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	doc := h.load(t)
	doc.Projects = append(doc.Projects, model.Project{ID: "p", Title: "Imported", Priority: "Urgent"})
	require.NoError(t, h.tracker.Save(ctx, doc))

	got := h.load(t)
	require.Len(t, got.Projects, 1)
	assert.Equal(t, model.Priority("Urgent"), got.Projects[0].Priority)
}

func TestResetAll(t *testing.T) {
	h := newHarness(t)
	p := h.project(t, "Thesis")
	h.task(t, p.ID, "Outline", "", "")

	h.clock.AdvanceDays(1)
	doc, err := h.tracker.ResetAll(context.Background())
	require.NoError(t, err)

	assert.True(t, doc.IsEmpty())
	assert.Equal(t, "2026-01-29T09:30:00Z", doc.Meta.CreatedAt)
	loaded := h.load(t)
	assert.True(t, loaded.IsEmpty())
}

func TestNewID_RegeneratesOnCollision(t *testing.T) {
	slot := store.NewMemory()
	tr := New(slot, ids.NewFixedGenerator("prj_a", "prj_a", "prj_b"))
	ctx := context.Background()

	first, err := tr.CreateProject(ctx, model.Project{Title: "One"})
	require.NoError(t, err)
	second, err := tr.CreateProject(ctx, model.Project{Title: "Two"})
	require.NoError(t, err)

	assert.Equal(t, "prj_a", first.ID)
	assert.Equal(t, "prj_b", second.ID)
}

func TestNewID_GivesUpAfterSecondCollision(t *testing.T) {
	slot := store.NewMemory()
	tr := New(slot, ids.NewFixedGenerator("dup", "dup", "dup"))
	ctx := context.Background()

	_, err := tr.CreatePaper(ctx, model.Paper{Title: "One"})
	require.NoError(t, err)
	_, err = tr.CreatePaper(ctx, model.Paper{Title: "Two"})
	require.Error(t, err)

	doc, err := tr.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, doc.Papers, 1)
}

func TestOperationsAreCounted(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.project(t, "A")
	_, err := h.tracker.CreateProject(ctx, model.Project{Title: " "})
	require.Error(t, err)
	require.Error(t, h.tracker.DeleteTask(ctx, "missing"))

	reg := h.metrics.Registry()
	n, err := testutil.GatherAndCount(reg, "researchhub_store_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n, "one series per op/result pair")

	assert.Equal(t, 1.0, opCount(t, reg, "create_project", metrics.ResultOK))
	assert.Equal(t, 1.0, opCount(t, reg, "create_project", metrics.ResultValidation))
	assert.Equal(t, 1.0, opCount(t, reg, "delete_task", metrics.ResultNotFound))
}

// opCount reads one researchhub_store_operations_total sample.
func opCount(t *testing.T, reg prometheus.Gatherer, op, result string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "researchhub_store_operations_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["op"] == op && labels["result"] == result {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestSQLiteBackends_Persist(t *testing.T) {
	for _, driver := range []string{store.DriverCGO, store.DriverPureGo} {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			tr, path := newSQLiteTracker(t, driver)

			p, err := tr.CreateProject(ctx, model.Project{Title: "Durable", Priority: model.PriorityHigh})
			require.NoError(t, err)

			reopened, err := store.Open(path, driver)
			require.NoError(t, err)
			defer reopened.Close()

			doc, err := New(reopened, ids.UUIDv7Generator{}).Load(ctx)
			require.NoError(t, err)
			require.Len(t, doc.Projects, 1)
			assert.Equal(t, p, doc.Projects[0])
		})
	}
}

func TestToday_UsesClock(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, "2026-01-28", h.tracker.Today())

	h.clock.Set(time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, "2026-12-31", h.tracker.Today())
}
