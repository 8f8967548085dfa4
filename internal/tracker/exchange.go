package tracker

import (
	"context"
	"errors"
	"time"

	"github.com/roach88/researchhub/internal/codec"
	"github.com/roach88/researchhub/internal/model"
	"github.com/roach88/researchhub/internal/seed"
)

// Export returns the current document in export form.
func (s *Store) Export(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []byte
	doc, err := s.load(ctx)
	if err == nil {
		out, err = codec.Export(doc)
	}
	s.observe("export", err, "bytes", len(out))
	return out, err
}

// Import replaces the whole document with the payload in data. An invalid
// payload leaves the persisted document untouched.
func (s *Store) Import(ctx context.Context, data []byte) (model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := codec.Import(data)
	if err == nil {
		if doc.Meta.CreatedAt == "" {
			doc.Meta.CreatedAt = s.now().UTC().Format(time.RFC3339)
		}
		err = s.save(ctx, doc)
	}
	s.observe("import", err,
		"projects", len(doc.Projects), "tasks", len(doc.Tasks), "papers", len(doc.Papers))
	if err != nil {
		return model.Document{}, err
	}
	return doc, nil
}

// Seed fills an empty document with the demo data set. It reports whether
// anything was added; a document that already holds entities is left alone.
func (s *Store) Seed(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seeded := false
	err := s.mutate(ctx, func(doc *model.Document) error {
		if !doc.IsEmpty() {
			return errSkipSeed
		}
		fixture, err := seed.Load()
		if err != nil {
			return err
		}
		demo := fixture.Build(s.now(), s.ids)
		doc.Projects = demo.Projects
		doc.Tasks = demo.Tasks
		doc.Papers = demo.Papers
		seeded = true
		return nil
	})
	if errors.Is(err, errSkipSeed) {
		err = nil
	}
	s.observe("seed", err, "seeded", seeded)
	return seeded, err
}

var errSkipSeed = errors.New("document not empty")
