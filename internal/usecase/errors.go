package usecase

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"hotel-onboarding/internal/domain/user"
	"hotel-onboarding/internal/repository"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("conflict")
	ErrForbidden = errors.New("forbidden")
	ErrInternal  = errors.New("internal error")
)

// ValidationError carries the per-field error map surfaced to the caller as
// a 422 payload.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("validation failed: %s", strings.Join(keys, ", "))
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// Actor is the authorization context re-derived from token claims on every
// request.
type Actor struct {
	UserID      uuid.UUID
	Role        user.Role
	PropertyIDs []uuid.UUID
}

func (a Actor) Scope() repository.Scope {
	return repository.ScopeFor(a.Role, a.PropertyIDs)
}
