package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/admissions-advisor/internal/types"
)

// SampleProfile returns the demo profile used when the server runs with sample data.
func SampleProfile(now time.Time) *types.StudentProfile {
	return &types.StudentProfile{
		ID:   SampleProfileID,
		Name: "Sample Student",
		Academics: &types.Academics{
			GPAUnweighted: types.Float64Ptr(3.85),
			GPAWeighted:   types.Float64Ptr(4.32),
			ClassRank:     types.StringPtr("12/410"),
		},
		Testing: &types.Testing{SATTotal: types.IntPtr(1510)},
		Activities: []types.Activity{
			{ID: uuid.New(), Title: "Robotics club captain", IsLeadership: true, CreatedAt: now},
			{ID: uuid.New(), Title: "Hospital volunteer", CreatedAt: now},
			{ID: uuid.New(), Title: "Varsity cross country", CreatedAt: now},
		},
		Awards: []types.Award{
			{ID: uuid.New(), Title: "AIME qualifier", Level: types.AwardLevelNational, CreatedAt: now},
			{ID: uuid.New(), Title: "State science fair, 2nd place", Level: types.AwardLevelState, CreatedAt: now},
		},
		Schools: []types.SchoolInterest{
			{ID: uuid.New(), Name: "Stanford", Tier: types.TierTarget, CreatedAt: now},
			{ID: uuid.New(), Name: "UC Berkeley", Tier: types.TierTarget, CreatedAt: now},
		},
		Goals: []types.Goal{
			{ID: uuid.New(), Title: "Publish a summer research paper", Category: types.GoalResearch, Status: types.GoalInProgress, CreatedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
