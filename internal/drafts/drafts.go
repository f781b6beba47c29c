// Package drafts holds classifier results that are waiting for the user to confirm or discard them.
package drafts

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/admissions-advisor/internal/types"
)

// DefaultTTL is how long an unconfirmed draft is kept.
const DefaultTTL = 24 * time.Hour

// ErrNotFound is returned when a draft does not exist or has expired.
var ErrNotFound = errors.New("draft not found")

// Draft is a proposed profile record derived from one chat message.
type Draft struct {
	ID        uuid.UUID        `json:"id"`
	ProfileID uuid.UUID        `json:"profileId"`
	Parsed    types.ParsedData `json:"parsed"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Store persists drafts per profile.
type Store interface {
	// Save stores d, assigning ID and CreatedAt when they are zero.
	Save(ctx context.Context, d *Draft) error
	Get(ctx context.Context, profileID, id uuid.UUID) (*Draft, error)
	Delete(ctx context.Context, profileID, id uuid.UUID) error
	// List returns the profile's live drafts, oldest first.
	List(ctx context.Context, profileID uuid.UUID) ([]Draft, error)
	// DeleteAll removes every draft for the profile. It is not an error if there are none.
	DeleteAll(ctx context.Context, profileID uuid.UUID) error
}

func prepare(d *Draft, now time.Time) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
}

func sortDrafts(ds []Draft) {
	sort.Slice(ds, func(i, j int) bool {
		if !ds[i].CreatedAt.Equal(ds[j].CreatedAt) {
			return ds[i].CreatedAt.Before(ds[j].CreatedAt)
		}
		return ds[i].ID.String() < ds[j].ID.String()
	})
}
