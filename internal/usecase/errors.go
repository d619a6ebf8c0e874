package usecase

import (
	"errors"
	"fmt"

	"event-marketplace/internal/data/repository"
	"event-marketplace/pkg/utils"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("resource conflict")
	ErrForbidden         = errors.New("operation not permitted")
	ErrUnauthorized      = errors.New("invalid credentials")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError carries per-field messages back to the caller.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + utils.FormatValidationErrors(e.Fields)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// validate runs the struct tags of req and returns a *ValidationError.
func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// mapRepoError turns integrity failures from storage into use-case errors
// and keeps the original text for logs.
func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, repository.ErrForeignKey), errors.Is(err, repository.ErrConstraint):
		return &ValidationError{Fields: map[string]string{"_": err.Error()}}
	default:
		return err
	}
}

// Outcome is the result class of an update.
type Outcome int

const (
	OutcomeUpdated Outcome = iota
	OutcomeNotFound
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUpdated:
		return "updated"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeRejected:
		return "rejected"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// UpdateResult reports what an update did. Value is set only when Outcome
// is OutcomeUpdated; Reason explains a rejection.
type UpdateResult[T any] struct {
	Outcome Outcome
	Value   *T
	Reason  string
}

func updated[T any](v T) *UpdateResult[T] {
	return &UpdateResult[T]{Outcome: OutcomeUpdated, Value: &v}
}

func notFound[T any]() *UpdateResult[T] {
	return &UpdateResult[T]{Outcome: OutcomeNotFound}
}

func rejected[T any](reason string) *UpdateResult[T] {
	return &UpdateResult[T]{Outcome: OutcomeRejected, Reason: reason}
}
