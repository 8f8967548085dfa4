package tracker

import (
	"context"
	"slices"
	"strings"

	"github.com/roach88/researchhub/internal/ids"
	"github.com/roach88/researchhub/internal/model"
)

// DefaultRating is given to papers created without a rating.
const DefaultRating = 3

// CreatePaper adds a paper. A zero rating becomes DefaultRating.
func (s *Store) CreatePaper(ctx context.Context, in model.Paper) (model.Paper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := model.Paper{
		Title:   strings.TrimSpace(in.Title),
		Authors: strings.TrimSpace(in.Authors),
		Year:    strings.TrimSpace(in.Year),
		Rating:  in.Rating,
		Tags:    append([]string{}, in.Tags...),
		Link:    strings.TrimSpace(in.Link),
		Notes:   strings.TrimSpace(in.Notes),
	}
	if p.Rating == 0 {
		p.Rating = DefaultRating
	}

	err := p.Validate()
	if err == nil {
		err = s.mutate(ctx, func(doc *model.Document) error {
			id, err := s.newID(doc, ids.PrefixPaper)
			if err != nil {
				return err
			}
			p.ID = id
			p.CreatedAt = s.Today()
			doc.Papers = append(doc.Papers, p)
			return nil
		})
	}
	s.observe("create_paper", err, "id", p.ID)
	if err != nil {
		return model.Paper{}, err
	}
	return p, nil
}

// UpdatePaper applies the set fields of f to paper id.
func (s *Store) UpdatePaper(ctx context.Context, id string, f model.PaperFields) (model.Paper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := f.Validate(); err != nil {
		s.observe("update_paper", err, "id", id)
		return model.Paper{}, err
	}

	var updated model.Paper
	err := s.mutate(ctx, func(doc *model.Document) error {
		i := doc.PaperIndex(id)
		if i < 0 {
			return model.NewNotFoundError(model.KindPaper, id)
		}
		p := doc.Papers[i]
		f.Apply(&p)
		if err := model.ValidateTitle(model.KindPaper, p.Title); err != nil {
			return err
		}
		doc.Papers[i] = p
		updated = p
		return nil
	})
	s.observe("update_paper", err, "id", id)
	return updated, err
}

// DeletePaper removes paper id.
func (s *Store) DeletePaper(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.mutate(ctx, func(doc *model.Document) error {
		i := doc.PaperIndex(id)
		if i < 0 {
			return model.NewNotFoundError(model.KindPaper, id)
		}
		doc.Papers = slices.Delete(doc.Papers, i, i+1)
		return nil
	})
	s.observe("delete_paper", err, "id", id)
	return err
}
