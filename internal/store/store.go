// Package store defines how student profiles are persisted and provides an in-memory implementation.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jonathan/admissions-advisor/internal/types"
)

// ErrProfileNotFound is returned by mutations that target a profile that does not exist.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileStore persists student profiles.
//
// GetProfile returns nil, nil when the profile does not exist. Create methods
// assign the record's ID and CreatedAt and return the stored record.
type ProfileStore interface {
	CreateProfile(ctx context.Context, name string) (*types.StudentProfile, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*types.StudentProfile, error)
	DeleteProfile(ctx context.Context, id uuid.UUID) error

	SaveAcademics(ctx context.Context, profileID uuid.UUID, academics types.Academics) error
	SaveTesting(ctx context.Context, profileID uuid.UUID, testing types.Testing) error

	// MergeAcademics and MergeTesting set only the non-nil fields, atomically with
	// respect to other writes to the same profile, and return the resulting section.
	MergeAcademics(ctx context.Context, profileID uuid.UUID, academics types.Academics) (*types.Academics, error)
	MergeTesting(ctx context.Context, profileID uuid.UUID, testing types.Testing) (*types.Testing, error)

	CreateActivity(ctx context.Context, profileID uuid.UUID, activity types.Activity) (*types.Activity, error)
	CreateAward(ctx context.Context, profileID uuid.UUID, award types.Award) (*types.Award, error)
	CreateSchool(ctx context.Context, profileID uuid.UUID, school types.SchoolInterest) (*types.SchoolInterest, error)
	CreateGoal(ctx context.Context, profileID uuid.UUID, goal types.Goal) (*types.Goal, error)
}
