// Package storetest holds behavioural tests shared by every store.ProfileStore implementation.
package storetest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/admissions-advisor/internal/store"
	"github.com/jonathan/admissions-advisor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises s against the ProfileStore contract. Each subtest creates its own profile.
func Run(t *testing.T, s store.ProfileStore) {
	t.Helper()

	t.Run("create and get", func(t *testing.T) { testCreateAndGet(t, s) })
	t.Run("get missing", func(t *testing.T) { testGetMissing(t, s) })
	t.Run("sections", func(t *testing.T) { testSections(t, s) })
	t.Run("merge sections", func(t *testing.T) { testMergeSections(t, s) })
	t.Run("sub-records", func(t *testing.T) { testSubRecords(t, s) })
	t.Run("missing profile", func(t *testing.T) { testMissingProfile(t, s) })
	t.Run("delete", func(t *testing.T) { testDelete(t, s) })
}

func testCreateAndGet(t *testing.T, s store.ProfileStore) {
	ctx := context.Background()

	created, err := s.CreateProfile(ctx, "Test Student")
	require.NoError(t, err)
	defer s.DeleteProfile(ctx, created.ID)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := s.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Test Student", got.Name)
	assert.Nil(t, got.Academics)
	assert.Nil(t, got.Testing)
	assert.Empty(t, got.Activities)
}

func testGetMissing(t *testing.T, s store.ProfileStore) {
	got, err := s.GetProfile(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func testSections(t *testing.T, s store.ProfileStore) {
	ctx := context.Background()
	p, err := s.CreateProfile(ctx, "Sections")
	require.NoError(t, err)
	defer s.DeleteProfile(ctx, p.ID)

	require.NoError(t, s.SaveAcademics(ctx, p.ID, types.Academics{GPAUnweighted: types.Float64Ptr(3.8)}))
	require.NoError(t, s.SaveTesting(ctx, p.ID, types.Testing{ACTComposite: types.IntPtr(34)}))

	got, err := s.GetProfile(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Academics)
	require.NotNil(t, got.Academics.GPAUnweighted)
	assert.InDelta(t, 3.8, *got.Academics.GPAUnweighted, 0.0001)
	assert.Nil(t, got.Academics.GPAWeighted, "absent stays absent")
	require.NotNil(t, got.Testing)
	assert.Nil(t, got.Testing.SATTotal)
	assert.Equal(t, 34, *got.Testing.ACTComposite)

	// Saving again replaces the section.
	require.NoError(t, s.SaveAcademics(ctx, p.ID, types.Academics{GPAWeighted: types.Float64Ptr(4.4)}))
	got, err = s.GetProfile(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Academics.GPAUnweighted)
	assert.InDelta(t, 4.4, *got.Academics.GPAWeighted, 0.0001)
}

func testMergeSections(t *testing.T, s store.ProfileStore) {
	ctx := context.Background()
	p, err := s.CreateProfile(ctx, "Merge")
	require.NoError(t, err)
	defer s.DeleteProfile(ctx, p.ID)

	// Merging into an absent section creates it.
	scores, err := s.MergeTesting(ctx, p.ID, types.Testing{SATTotal: types.IntPtr(1480)})
	require.NoError(t, err)
	require.NotNil(t, scores.SATTotal)
	assert.Nil(t, scores.ACTComposite)

	scores, err = s.MergeTesting(ctx, p.ID, types.Testing{ACTComposite: types.IntPtr(33)})
	require.NoError(t, err)
	require.NotNil(t, scores.SATTotal, "merge keeps the stored SAT")
	assert.Equal(t, 1480, *scores.SATTotal)
	assert.Equal(t, 33, *scores.ACTComposite)

	require.NoError(t, s.SaveAcademics(ctx, p.ID, types.Academics{
		GPAWeighted: types.Float64Ptr(4.2),
		ClassRank:   types.StringPtr("12/300"),
	}))
	academics, err := s.MergeAcademics(ctx, p.ID, types.Academics{GPAUnweighted: types.Float64Ptr(3.85)})
	require.NoError(t, err)
	assert.InDelta(t, 3.85, *academics.GPAUnweighted, 0.0001)
	assert.InDelta(t, 4.2, *academics.GPAWeighted, 0.0001)
	assert.Equal(t, "12/300", *academics.ClassRank)

	got, err := s.GetProfile(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, academics, got.Academics)
	assert.Equal(t, scores, got.Testing)
}

func testSubRecords(t *testing.T, s store.ProfileStore) {
	ctx := context.Background()
	p, err := s.CreateProfile(ctx, "Records")
	require.NoError(t, err)
	defer s.DeleteProfile(ctx, p.ID)

	activity, err := s.CreateActivity(ctx, p.ID, types.Activity{Title: "Debate captain", IsLeadership: true})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, activity.ID)

	_, err = s.CreateAward(ctx, p.ID, types.Award{Title: "AIME qualifier", Level: types.AwardLevelNational})
	require.NoError(t, err)
	_, err = s.CreateSchool(ctx, p.ID, types.SchoolInterest{Name: "Duke", Tier: types.TierReach})
	require.NoError(t, err)
	goal, err := s.CreateGoal(ctx, p.ID, types.Goal{Title: "Build an app", Category: types.GoalProject})
	require.NoError(t, err)
	assert.Equal(t, types.GoalNotStarted, goal.Status, "status defaults to not_started")

	got, err := s.GetProfile(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.Activities, 1)
	assert.Equal(t, activity.ID, got.Activities[0].ID)
	assert.True(t, got.Activities[0].IsLeadership)
	require.Len(t, got.Awards, 1)
	assert.Equal(t, types.AwardLevelNational, got.Awards[0].Level)
	require.Len(t, got.Schools, 1)
	assert.Equal(t, types.TierReach, got.Schools[0].Tier)
	require.Len(t, got.Goals, 1)
	assert.Equal(t, types.GoalProject, got.Goals[0].Category)
}

func testMissingProfile(t *testing.T, s store.ProfileStore) {
	ctx := context.Background()
	missing := uuid.New()

	assert.ErrorIs(t, s.SaveAcademics(ctx, missing, types.Academics{}), store.ErrProfileNotFound)
	assert.ErrorIs(t, s.SaveTesting(ctx, missing, types.Testing{}), store.ErrProfileNotFound)
	_, err := s.MergeAcademics(ctx, missing, types.Academics{GPAUnweighted: types.Float64Ptr(3.0)})
	assert.ErrorIs(t, err, store.ErrProfileNotFound)
	_, err = s.MergeTesting(ctx, missing, types.Testing{SATTotal: types.IntPtr(1200)})
	assert.ErrorIs(t, err, store.ErrProfileNotFound)

	_, err = s.CreateActivity(ctx, missing, types.Activity{Title: "x"})
	assert.ErrorIs(t, err, store.ErrProfileNotFound)
	_, err = s.CreateAward(ctx, missing, types.Award{Title: "x", Level: types.AwardLevelSchool})
	assert.ErrorIs(t, err, store.ErrProfileNotFound)
	_, err = s.CreateSchool(ctx, missing, types.SchoolInterest{Name: "x"})
	assert.ErrorIs(t, err, store.ErrProfileNotFound)
	_, err = s.CreateGoal(ctx, missing, types.Goal{Title: "x", Category: types.GoalProject})
	assert.ErrorIs(t, err, store.ErrProfileNotFound)

	assert.ErrorIs(t, s.DeleteProfile(ctx, missing), store.ErrProfileNotFound)
}

func testDelete(t *testing.T, s store.ProfileStore) {
	ctx := context.Background()
	p, err := s.CreateProfile(ctx, "Doomed")
	require.NoError(t, err)
	_, err = s.CreateActivity(ctx, p.ID, types.Activity{Title: "Chess club"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteProfile(ctx, p.ID))

	got, err := s.GetProfile(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
