// Package chances estimates admission chances for a student profile at a target school.
package chances

import (
	"fmt"

	"github.com/jonathan/admissions-advisor/internal/reference"
	"github.com/jonathan/admissions-advisor/internal/types"
)

const (
	minChance = 1
	maxChance = 95
)

// Breakdown factor labels, in evaluation order.
const (
	FactorGPA        = "GPA"
	FactorTestScores = "Test Scores"
	FactorActivities = "Activities"
	FactorAwards     = "Awards"
)

// Estimator computes ChancesResults against a set of reference tables.
// It holds no mutable state and is safe for concurrent use.
type Estimator struct {
	tables *reference.Tables
}

// New creates an Estimator. A nil tables argument selects the embedded defaults.
func New(tables *reference.Tables) *Estimator {
	if tables == nil {
		tables = reference.Default()
	}
	return &Estimator{tables: tables}
}

var defaultEstimator = New(nil)

// Estimate runs the default Estimator.
func Estimate(profile *types.StudentProfile, schoolName string) types.ChancesResult {
	return defaultEstimator.Estimate(profile, schoolName)
}

// KnownSchool reports whether schoolName has its own selectivity entry in the default tables.
func KnownSchool(schoolName string) bool {
	return defaultEstimator.KnownSchool(schoolName)
}

// KnownSchool reports whether schoolName has its own selectivity entry.
func (e *Estimator) KnownSchool(schoolName string) bool {
	_, ok := e.tables.Selectivity(schoolName)
	return ok
}

// factorScore is the result of grading one factor.
type factorScore struct {
	present    bool
	adjustment int
	status     types.FactorStatus
}

// Estimate computes the admission chance for profile at schoolName.
// It never fails: missing data lowers confidence, an unrecognised school uses the
// default base rate, and a nil profile yields an "unknown" tier.
func (e *Estimator) Estimate(profile *types.StudentProfile, schoolName string) types.ChancesResult {
	if profile == nil {
		return types.ChancesResult{
			Tier:       types.TierUnknown,
			Breakdown:  []types.FactorBreakdown{},
			Confidence: types.ConfidenceLow,
		}
	}

	base, _ := e.tables.Selectivity(schoolName)
	chance := base
	dataPoints := 0

	factors := []struct {
		name  string
		score factorScore
	}{
		{FactorGPA, scoreGPA(profile.Academics)},
		{FactorTestScores, scoreTesting(profile.Testing)},
		{FactorActivities, scoreActivities(profile.Activities)},
		{FactorAwards, scoreAwards(profile.Awards)},
	}

	breakdown := make([]types.FactorBreakdown, 0, len(factors))
	for _, f := range factors {
		if !f.score.present {
			breakdown = append(breakdown, types.FactorBreakdown{
				Factor: f.name,
				Status: types.StatusMissing,
				Impact: "?",
			})
			continue
		}
		dataPoints++
		chance += f.score.adjustment
		breakdown = append(breakdown, types.FactorBreakdown{
			Factor: f.name,
			Status: f.score.status,
			Impact: formatImpact(f.score.adjustment),
		})
	}

	chance = clamp(chance, minChance, maxChance)

	return types.ChancesResult{
		Chance:     chance,
		Tier:       types.TierForChance(chance),
		Breakdown:  breakdown,
		Confidence: types.ConfidenceForDataPoints(dataPoints),
	}
}

// scoreGPA grades the unweighted GPA. A weighted GPA alone does not count.
func scoreGPA(a *types.Academics) factorScore {
	if a == nil || a.GPAUnweighted == nil {
		return factorScore{}
	}
	gpa := *a.GPAUnweighted
	switch {
	case gpa >= 3.9:
		return factorScore{true, 5, types.StatusStrong}
	case gpa >= 3.7:
		return factorScore{true, 2, types.StatusOK}
	case gpa >= 3.5:
		return factorScore{true, 0, types.StatusOK}
	default:
		return factorScore{true, -3, types.StatusWeak}
	}
}

// scoreTesting grades the SAT total, or the ACT composite when no SAT is on file.
func scoreTesting(t *types.Testing) factorScore {
	if t == nil {
		return factorScore{}
	}
	if t.SATTotal != nil {
		sat := *t.SATTotal
		switch {
		case sat >= 1550:
			return factorScore{true, 6, types.StatusStrong}
		case sat >= 1500:
			return factorScore{true, 3, types.StatusOK}
		case sat >= 1400:
			return factorScore{true, 0, types.StatusOK}
		default:
			return factorScore{true, -4, types.StatusWeak}
		}
	}
	if t.ACTComposite != nil {
		act := *t.ACTComposite
		switch {
		case act >= 35:
			return factorScore{true, 6, types.StatusStrong}
		case act >= 33:
			return factorScore{true, 3, types.StatusOK}
		default:
			// ACT has no weak bucket.
			return factorScore{true, 0, types.StatusOK}
		}
	}
	return factorScore{}
}

func scoreActivities(activities []types.Activity) factorScore {
	if len(activities) == 0 {
		return factorScore{}
	}
	switch {
	case len(activities) >= 5 && types.HasLeadership(activities):
		return factorScore{true, 4, types.StatusStrong}
	case len(activities) >= 3:
		return factorScore{true, 2, types.StatusOK}
	default:
		return factorScore{true, 1, types.StatusOK}
	}
}

func scoreAwards(awards []types.Award) factorScore {
	if len(awards) == 0 {
		return factorScore{}
	}
	for _, a := range awards {
		if a.Level == types.AwardLevelNational || a.Level == types.AwardLevelInternational {
			return factorScore{true, 5, types.StatusStrong}
		}
	}
	return factorScore{true, 2, types.StatusOK}
}

// formatImpact renders an adjustment as a signed percentage, e.g. "+5%" or "-3%".
func formatImpact(adjustment int) string {
	return fmt.Sprintf("%+d%%", adjustment)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
