package model

import (
	"errors"
	"fmt"
)

// Entity kinds used in error messages and metrics labels.
const (
	KindProject = "project"
	KindTask    = "task"
	KindPaper   = "paper"
)

// ValidationError reports a missing required field or an enum value outside
// its recognized set. The operation that returned it made no mutation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ReferentialError reports a task pointing at a project that is not in the store.
type ReferentialError struct {
	TaskID    string
	ProjectID string
}

func (e *ReferentialError) Error() string {
	if e.TaskID == "" {
		return fmt.Sprintf("task references unknown project %q", e.ProjectID)
	}
	return fmt.Sprintf("task %q references unknown project %q", e.TaskID, e.ProjectID)
}

// NotFoundError reports an update, delete or move targeting an absent id.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// NewNotFoundError creates a NotFoundError for an entity kind.
func NewNotFoundError(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// ImportFormatError reports an import payload that failed structural
// validation. The store is left untouched.
type ImportFormatError struct {
	Reason string
	Err    error
}

func (e *ImportFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid import: %s: %v", e.Reason, e.Err)
	}
	return "invalid import: " + e.Reason
}

func (e *ImportFormatError) Unwrap() error {
	return e.Err
}

// StorageError reports a failing durable slot (disk full, locked database...).
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsValidation returns true if err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsReferential returns true if err is or wraps a ReferentialError.
func IsReferential(err error) bool {
	var re *ReferentialError
	return errors.As(err, &re)
}

// IsNotFound returns true if err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

// IsImportFormat returns true if err is or wraps an ImportFormatError.
func IsImportFormat(err error) bool {
	var ie *ImportFormatError
	return errors.As(err, &ie)
}

// IsStorage returns true if err is or wraps a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
