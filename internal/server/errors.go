// Package server provides the HTTP REST API for the admissions advisor.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/admissions-advisor/internal/types"
)

// ErrProfileNotFound indicates the profile does not exist
type ErrProfileNotFound struct {
	ProfileID uuid.UUID
}

func (e *ErrProfileNotFound) Error() string {
	return fmt.Sprintf("profile not found: %s", e.ProfileID)
}

// ErrDraftNotFound indicates the draft does not exist or has expired
type ErrDraftNotFound struct {
	DraftID uuid.UUID
}

func (e *ErrDraftNotFound) Error() string {
	return fmt.Sprintf("draft not found: %s", e.DraftID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrForbidden indicates the token is not scoped to the requested profile
type ErrForbidden struct {
	ProfileID uuid.UUID
}

func (e *ErrForbidden) Error() string {
	return fmt.Sprintf("token does not grant access to profile %s", e.ProfileID)
}

// ErrNotConfirmable indicates a draft whose type cannot become a profile record
type ErrNotConfirmable struct {
	Type types.ParsedType
}

func (e *ErrNotConfirmable) Error() string {
	return fmt.Sprintf("draft of type %q cannot be confirmed", e.Type)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		profileNotFound *ErrProfileNotFound
		draftNotFound   *ErrDraftNotFound
		validation      *ErrValidation
		forbidden       *ErrForbidden
		notConfirmable  *ErrNotConfirmable
	)
	switch {
	case errors.As(err, &profileNotFound), errors.As(err, &draftNotFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &notConfirmable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
