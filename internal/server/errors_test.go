package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/admissions-advisor/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestErrProfileNotFound(t *testing.T) {
	id := uuid.New()
	err := &ErrProfileNotFound{ProfileID: id}
	assert.Equal(t, "profile not found: "+id.String(), err.Error())
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "satTotal", Message: "must be within 400..1600"}
	assert.Equal(t, "validation error: satTotal - must be within 400..1600", err.Error())
	assert.Equal(t, "validation error: bad body", (&ErrValidation{Message: "bad body"}).Error())
}

func TestErrNotConfirmable(t *testing.T) {
	err := &ErrNotConfirmable{Type: types.ParsedUnknown}
	assert.Equal(t, `draft of type "unknown" cannot be confirmed`, err.Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "ErrProfileNotFound", err: &ErrProfileNotFound{ProfileID: uuid.New()}, expected: http.StatusNotFound},
		{name: "ErrDraftNotFound", err: &ErrDraftNotFound{DraftID: uuid.New()}, expected: http.StatusNotFound},
		{name: "ErrValidation", err: &ErrValidation{Field: "name", Message: "required"}, expected: http.StatusBadRequest},
		{name: "ErrForbidden", err: &ErrForbidden{ProfileID: uuid.New()}, expected: http.StatusForbidden},
		{name: "ErrNotConfirmable", err: &ErrNotConfirmable{Type: types.ParsedUnknown}, expected: http.StatusUnprocessableEntity},
		{name: "wrapped", err: fmt.Errorf("confirm: %w", &ErrForbidden{}), expected: http.StatusForbidden},
		{name: "Unknown error", err: assert.AnError, expected: http.StatusInternalServerError},
		{name: "Nil error", err: nil, expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
