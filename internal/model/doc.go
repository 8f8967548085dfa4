// Package model defines the ResearchHub document: projects, tasks and papers,
// the closed enums they carry, partial-update patches and the error taxonomy
// shared by every other package.
//
// # Document shape
//
//	{
//	  "meta":     {"createdAt": "2026-01-02T15:04:05Z"},
//	  "projects": [{"id", "title", "field", "priority", "createdAt"}],
//	  "tasks":    [{"id", "projectId", "title", "due", "status", "priority", "createdAt"}],
//	  "papers":   [{"id", "title", "authors", "year", "rating", "tags", "link", "notes", "createdAt"}]
//	}
//
// Collections are ordered; insertion order is the tie-break for every sort.
// Dates are fixed-width "YYYY-MM-DD" strings so lexicographic comparison is
// chronological comparison.
package model
