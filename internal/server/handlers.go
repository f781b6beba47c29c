package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/admissions-advisor/internal/store"
	"github.com/jonathan/admissions-advisor/internal/types"
)

const maxBodyBytes = 64 << 10

type validatable interface {
	Validate() error
}

// decodeRequest reads a JSON body into req and runs its validation rules.
func decodeRequest(w http.ResponseWriter, r *http.Request, req validatable) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		return &ErrValidation{Message: "invalid request body: " + err.Error()}
	}

	if err := req.Validate(); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			msg := fmt.Sprintf("failed %q constraint", fe.Tag())
			if fe.Param() != "" {
				msg = fmt.Sprintf("failed %q constraint (%s)", fe.Tag(), fe.Param())
			}
			return &ErrValidation{Field: fe.Field(), Message: msg}
		}
		return &ErrValidation{Message: err.Error()}
	}
	return nil
}

// pathProfileID returns the {id} path value. The ownership middleware has already parsed it.
func pathProfileID(r *http.Request) uuid.UUID {
	id, _ := uuid.Parse(r.PathValue("id"))
	return id
}

// storeError translates store sentinels into API errors.
func storeError(err error, profileID uuid.UUID) error {
	if errors.Is(err, store.ErrProfileNotFound) {
		return &ErrProfileNotFound{ProfileID: profileID}
	}
	return err
}

// loadProfile returns the profile snapshot or *ErrProfileNotFound.
func (s *Server) loadProfile(ctx context.Context, profileID uuid.UUID) (*types.StudentProfile, error) {
	profile, err := s.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return nil, &ErrProfileNotFound{ProfileID: profileID}
	}
	return profile, nil
}
