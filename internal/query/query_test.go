package query

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/roach88/researchhub/internal/model"
)

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = id(it)
	}
	return out
}

func projectID(p model.Project) string { return p.ID }
func paperID(p model.Paper) string     { return p.ID }

func TestSearchProjects(t *testing.T) {
	projects := []model.Project{
		{ID: "p1", Title: "Digital Twin", Field: "Smart City", CreatedAt: "2026-01-01"},
		{ID: "p2", Title: "Thesis", Field: "HCI", CreatedAt: "2026-02-01"},
		{ID: "p3", Title: "City sensors", Field: "IoT", CreatedAt: "2026-01-15"},
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty matches all newest first", "", []string{"p2", "p3", "p1"}},
		{"blank is empty", "   ", []string{"p2", "p3", "p1"}},
		{"title or field", "city", []string{"p3", "p1"}},
		{"case insensitive", "THESIS", []string{"p2"}},
		{"trimmed", "  hci ", []string{"p2"}},
		{"no match", "biology", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SearchProjects(projects, tt.query)
			assert.Equal(t, tt.want, ids(got, projectID))
		})
	}
}

func TestSearchProjects_UnicodeFolding(t *testing.T) {
	projects := []model.Project{{ID: "p1", Title: "Straße", CreatedAt: "2026-01-01"}}

	assert.Len(t, SearchProjects(projects, "STRASSE"), 1)
}

func TestSearchProjects_TiesKeepStoredOrder(t *testing.T) {
	projects := []model.Project{
		{ID: "a", Title: "x", CreatedAt: "2026-03-01"},
		{ID: "b", Title: "x", CreatedAt: "2026-03-01"},
		{ID: "c", Title: "x", CreatedAt: "2026-03-02"},
		{ID: "d", Title: "x", CreatedAt: "2026-03-01"},
	}

	got := SearchProjects(projects, "")
	assert.Equal(t, []string{"c", "a", "b", "d"}, ids(got, projectID))
}

func TestSearchPapers(t *testing.T) {
	papers := []model.Paper{
		{ID: "a", Title: "Digital Twins for Cities", Authors: "Doe, J.", Rating: 4, Tags: []string{"twin", "city"}, CreatedAt: "2026-01-02"},
		{ID: "b", Title: "Task UX Patterns", Authors: "A. Smith", Rating: 3, Tags: []string{"ux", "productivity"}, CreatedAt: "2026-01-03"},
		{ID: "c", Title: "Readability", Authors: "Smithers", Rating: 5, Tags: []string{}, CreatedAt: "2026-01-01"},
	}

	tests := []struct {
		name      string
		query     string
		minRating int
		want      []string
	}{
		{"all", "", 0, []string{"b", "a", "c"}},
		{"by author", "smith", 0, []string{"b", "c"}},
		{"by tag", "productivity", 0, []string{"b"}},
		{"across joined tags", "twin city", 0, []string{"a"}},
		{"rating filter", "", 4, []string{"a", "c"}},
		{"rating and text", "smith", 4, []string{"c"}},
		{"rating five", "", 5, []string{"c"}},
		{"negative rating disables filter", "", -1, []string{"b", "a", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SearchPapers(papers, tt.query, tt.minRating)
			assert.Equal(t, tt.want, ids(got, paperID))
		})
	}
}

func TestSearch_DoesNotMutateInput(t *testing.T) {
	projects := []model.Project{
		{ID: "old", CreatedAt: "2025-01-01"},
		{ID: "new", CreatedAt: "2026-01-01"},
	}
	before := slices.Clone(projects)

	_ = SearchProjects(projects, "")
	assert.Equal(t, before, projects)
}

func TestSearchProjects_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 12).Draw(t, "n")
		projects := make([]model.Project, n)
		for i := range projects {
			projects[i] = model.Project{
				ID:        rapid.StringMatching(`p[0-9]{3}`).Draw(t, "id"),
				Title:     rapid.StringMatching(`[a-zA-Z ]{0,8}`).Draw(t, "title"),
				Field:     rapid.StringMatching(`[a-zA-Z ]{0,8}`).Draw(t, "field"),
				CreatedAt: rapid.SampledFrom([]string{"2026-01-01", "2026-01-02", "2026-01-03"}).Draw(t, "created"),
			}
		}
		q := rapid.StringMatching(`[a-zA-Z]{0,3}`).Draw(t, "query")

		got := SearchProjects(projects, q)

		// Every result matches, and nothing matching is dropped.
		want := 0
		for _, p := range projects {
			if strings.Contains(strings.ToLower(p.Title+"\x00"+p.Field), strings.ToLower(q)) {
				want++
			}
		}
		if len(got) != want {
			t.Fatalf("got %d results, want %d", len(got), want)
		}

		// Newest first.
		for i := 1; i < len(got); i++ {
			if got[i-1].CreatedAt < got[i].CreatedAt {
				t.Fatalf("results out of order at %d: %s before %s", i, got[i-1].CreatedAt, got[i].CreatedAt)
			}
		}
	})
}

func TestSearchPapers_TagMatchIgnoresQueryCase(t *testing.T) {
	papers := []model.Paper{
		{ID: "a", Title: "Transformers", Tags: []string{"ai", "nlp"}, Rating: 3},
		{ID: "b", Title: "Gardening", Tags: []string{"soil"}, Rating: 3},
	}

	for _, q := range []string{"AI", "ai", "Ai"} {
		got := SearchPapers(papers, q, 0)
		assert.Equal(t, []string{"a"}, ids(got, paperID), "query %q", q)
	}
}
