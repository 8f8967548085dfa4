package model

import "strings"

// ProjectFields is a partial project. Nil fields keep their previous value.
type ProjectFields struct {
	Title    *string
	Field    *string
	Priority *Priority
}

// Validate checks the set fields only, so a stored value the patch does
// not touch is never rejected.
func (f ProjectFields) Validate() error {
	if f.Title != nil {
		if err := ValidateTitle(KindProject, *f.Title); err != nil {
			return err
		}
	}
	if f.Priority != nil {
		return validatePriority(*f.Priority)
	}
	return nil
}

// Apply merges the set fields into p. Strings are stored trimmed.
func (f ProjectFields) Apply(p *Project) {
	if f.Title != nil {
		p.Title = strings.TrimSpace(*f.Title)
	}
	if f.Field != nil {
		p.Field = strings.TrimSpace(*f.Field)
	}
	if f.Priority != nil {
		p.Priority = *f.Priority
	}
}

// TaskFields is a partial task. Nil fields keep their previous value.
type TaskFields struct {
	ProjectID *string
	Title     *string
	Due       *string
	Status    *Status
	Priority  *Priority
}

// Validate checks the set fields only.
func (f TaskFields) Validate() error {
	if f.Title != nil {
		if err := ValidateTitle(KindTask, *f.Title); err != nil {
			return err
		}
	}
	if f.Status != nil {
		if err := validateStatus(*f.Status); err != nil {
			return err
		}
	}
	if f.Priority != nil {
		if err := validatePriority(*f.Priority); err != nil {
			return err
		}
	}
	if f.Due != nil {
		return validateDue(strings.TrimSpace(*f.Due))
	}
	return nil
}

// Apply merges the set fields into t. Strings are stored trimmed.
func (f TaskFields) Apply(t *Task) {
	if f.ProjectID != nil {
		t.ProjectID = strings.TrimSpace(*f.ProjectID)
	}
	if f.Title != nil {
		t.Title = strings.TrimSpace(*f.Title)
	}
	if f.Due != nil {
		t.Due = strings.TrimSpace(*f.Due)
	}
	if f.Status != nil {
		t.Status = *f.Status
	}
	if f.Priority != nil {
		t.Priority = *f.Priority
	}
}

// PaperFields is a partial paper. Nil fields keep their previous value.
type PaperFields struct {
	Title   *string
	Authors *string
	Year    *string
	Rating  *int
	Tags    *[]string
	Link    *string
	Notes   *string
}

// Validate checks the set fields only.
func (f PaperFields) Validate() error {
	if f.Title != nil {
		if err := ValidateTitle(KindPaper, *f.Title); err != nil {
			return err
		}
	}
	if f.Rating != nil {
		return validateRating(*f.Rating)
	}
	return nil
}

// Apply merges the set fields into p. Strings are stored trimmed; tags are
// copied so the caller's slice is never aliased.
func (f PaperFields) Apply(p *Paper) {
	if f.Title != nil {
		p.Title = strings.TrimSpace(*f.Title)
	}
	if f.Authors != nil {
		p.Authors = strings.TrimSpace(*f.Authors)
	}
	if f.Year != nil {
		p.Year = strings.TrimSpace(*f.Year)
	}
	if f.Rating != nil {
		p.Rating = *f.Rating
	}
	if f.Tags != nil {
		p.Tags = append(make([]string, 0, len(*f.Tags)), (*f.Tags)...)
	}
	if f.Link != nil {
		p.Link = strings.TrimSpace(*f.Link)
	}
	if f.Notes != nil {
		p.Notes = strings.TrimSpace(*f.Notes)
	}
}

// ParseTags splits a comma separated tag list, trimming whitespace and
// dropping empty entries. Case and duplicates are preserved.
func ParseTags(s string) []string {
	tags := []string{}
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T {
	return &v
}
