// Package query implements read-only search over projects and papers.
//
// Matching is case-insensitive using Unicode case folding. Results are
// ordered newest first by createdAt; entities created on the same day keep
// their stored order. Inputs are never modified.
package query

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/roach88/researchhub/internal/model"
)

// fold returns the case-folded form of s.
func fold(s string) string {
	return cases.Fold().String(s)
}

// matcher reports whether any field contains the folded query.
type matcher struct {
	needle string
}

func newMatcher(q string) matcher {
	return matcher{needle: fold(strings.TrimSpace(q))}
}

func (m matcher) match(fields ...string) bool {
	if m.needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(fold(f), m.needle) {
			return true
		}
	}
	return false
}

// SearchProjects returns projects whose title or field contains query.
// An empty or blank query matches every project.
func SearchProjects(projects []model.Project, query string) []model.Project {
	m := newMatcher(query)
	out := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if m.match(p.Title, p.Field) {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Project) int {
		return strings.Compare(b.CreatedAt, a.CreatedAt)
	})
	return out
}

// SearchPapers returns papers whose title, authors or tags contain query
// and whose rating is at least minRating. minRating <= 0 disables the
// rating filter.
func SearchPapers(papers []model.Paper, query string, minRating int) []model.Paper {
	m := newMatcher(query)
	out := make([]model.Paper, 0, len(papers))
	for _, p := range papers {
		if minRating > 0 && p.Rating < minRating {
			continue
		}
		if m.match(p.Title, p.Authors, strings.Join(p.Tags, " ")) {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Paper) int {
		return strings.Compare(b.CreatedAt, a.CreatedAt)
	})
	return out
}
