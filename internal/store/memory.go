package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/admissions-advisor/internal/types"
)

// SampleProfileID is the fixed ID of the demo profile seeded by WithSampleData.
var SampleProfileID = uuid.MustParse("5a3c0e1e-6b1f-4c43-9d0a-000000000001")

// MemoryStore is a ProfileStore backed by a map. It is safe for concurrent use.
// Reads return deep copies so callers never share state with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]*types.StudentProfile
	now      func() time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithSampleData seeds the store with a demo profile under SampleProfileID.
func WithSampleData() MemoryOption {
	return func(s *MemoryStore) {
		p := SampleProfile(s.now())
		s.profiles[p.ID] = p
	}
}

// WithClock overrides the time source used for CreatedAt and UpdatedAt.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.now = now }
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		profiles: make(map[uuid.UUID]*types.StudentProfile),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) CreateProfile(_ context.Context, name string) (*types.StudentProfile, error) {
	now := s.now()
	p := &types.StudentProfile{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.profiles[p.ID] = p
	s.mu.Unlock()

	return cloneProfile(p), nil
}

func (s *MemoryStore) GetProfile(_ context.Context, id uuid.UUID) (*types.StudentProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, nil
	}
	return cloneProfile(p), nil
}

func (s *MemoryStore) DeleteProfile(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[id]; !ok {
		return ErrProfileNotFound
	}
	delete(s.profiles, id)
	return nil
}

func (s *MemoryStore) SaveAcademics(_ context.Context, profileID uuid.UUID, academics types.Academics) error {
	return s.update(profileID, func(p *types.StudentProfile) {
		p.Academics = cloneAcademics(&academics)
	})
}

func (s *MemoryStore) SaveTesting(_ context.Context, profileID uuid.UUID, testing types.Testing) error {
	return s.update(profileID, func(p *types.StudentProfile) {
		p.Testing = cloneTesting(&testing)
	})
}

func (s *MemoryStore) MergeAcademics(_ context.Context, profileID uuid.UUID, patch types.Academics) (*types.Academics, error) {
	var merged *types.Academics
	err := s.update(profileID, func(p *types.StudentProfile) {
		a := cloneAcademics(p.Academics)
		if a == nil {
			a = &types.Academics{}
		}
		if patch.GPAUnweighted != nil {
			a.GPAUnweighted = types.Float64Ptr(*patch.GPAUnweighted)
		}
		if patch.GPAWeighted != nil {
			a.GPAWeighted = types.Float64Ptr(*patch.GPAWeighted)
		}
		if patch.ClassRank != nil {
			a.ClassRank = types.StringPtr(*patch.ClassRank)
		}
		p.Academics = a
		merged = cloneAcademics(a)
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

func (s *MemoryStore) MergeTesting(_ context.Context, profileID uuid.UUID, patch types.Testing) (*types.Testing, error) {
	var merged *types.Testing
	err := s.update(profileID, func(p *types.StudentProfile) {
		t := cloneTesting(p.Testing)
		if t == nil {
			t = &types.Testing{}
		}
		if patch.SATTotal != nil {
			t.SATTotal = types.IntPtr(*patch.SATTotal)
		}
		if patch.ACTComposite != nil {
			t.ACTComposite = types.IntPtr(*patch.ACTComposite)
		}
		p.Testing = t
		merged = cloneTesting(t)
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

func (s *MemoryStore) CreateActivity(_ context.Context, profileID uuid.UUID, activity types.Activity) (*types.Activity, error) {
	activity.ID = uuid.New()
	activity.CreatedAt = s.now()
	err := s.update(profileID, func(p *types.StudentProfile) {
		p.Activities = append(p.Activities, activity)
	})
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (s *MemoryStore) CreateAward(_ context.Context, profileID uuid.UUID, award types.Award) (*types.Award, error) {
	award.ID = uuid.New()
	award.CreatedAt = s.now()
	err := s.update(profileID, func(p *types.StudentProfile) {
		p.Awards = append(p.Awards, award)
	})
	if err != nil {
		return nil, err
	}
	return &award, nil
}

func (s *MemoryStore) CreateSchool(_ context.Context, profileID uuid.UUID, school types.SchoolInterest) (*types.SchoolInterest, error) {
	school.ID = uuid.New()
	school.CreatedAt = s.now()
	err := s.update(profileID, func(p *types.StudentProfile) {
		p.Schools = append(p.Schools, school)
	})
	if err != nil {
		return nil, err
	}
	return &school, nil
}

func (s *MemoryStore) CreateGoal(_ context.Context, profileID uuid.UUID, goal types.Goal) (*types.Goal, error) {
	goal.ID = uuid.New()
	goal.CreatedAt = s.now()
	if goal.Status == "" {
		goal.Status = types.GoalNotStarted
	}
	err := s.update(profileID, func(p *types.StudentProfile) {
		p.Goals = append(p.Goals, goal)
	})
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// update applies fn to the stored profile under the write lock and bumps UpdatedAt.
func (s *MemoryStore) update(id uuid.UUID, fn func(p *types.StudentProfile)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return ErrProfileNotFound
	}
	fn(p)
	p.UpdatedAt = s.now()
	return nil
}

func cloneProfile(p *types.StudentProfile) *types.StudentProfile {
	c := *p
	c.Academics = cloneAcademics(p.Academics)
	c.Testing = cloneTesting(p.Testing)
	c.Activities = append([]types.Activity(nil), p.Activities...)
	c.Awards = append([]types.Award(nil), p.Awards...)
	c.Schools = append([]types.SchoolInterest(nil), p.Schools...)
	c.Goals = append([]types.Goal(nil), p.Goals...)
	return &c
}

func cloneAcademics(a *types.Academics) *types.Academics {
	if a == nil {
		return nil
	}
	c := types.Academics{}
	if a.GPAUnweighted != nil {
		c.GPAUnweighted = types.Float64Ptr(*a.GPAUnweighted)
	}
	if a.GPAWeighted != nil {
		c.GPAWeighted = types.Float64Ptr(*a.GPAWeighted)
	}
	if a.ClassRank != nil {
		c.ClassRank = types.StringPtr(*a.ClassRank)
	}
	return &c
}

func cloneTesting(t *types.Testing) *types.Testing {
	if t == nil {
		return nil
	}
	c := types.Testing{}
	if t.SATTotal != nil {
		c.SATTotal = types.IntPtr(*t.SATTotal)
	}
	if t.ACTComposite != nil {
		c.ACTComposite = types.IntPtr(*t.ACTComposite)
	}
	return &c
}
