// Package types provides type definitions for structured data used throughout the admissions advisor.
package types

import (
	"time"

	"github.com/google/uuid"
)

// StudentProfile is a read-only snapshot of everything known about a student.
// Every section is optional; a nil pointer or empty slice means "unknown", never zero.
type StudentProfile struct {
	ID         uuid.UUID        `json:"id"`
	Name       string           `json:"name,omitempty"`
	Academics  *Academics       `json:"academics,omitempty"`
	Testing    *Testing         `json:"testing,omitempty"`
	Activities []Activity       `json:"activities,omitempty"`
	Awards     []Award          `json:"awards,omitempty"`
	Schools    []SchoolInterest `json:"schools,omitempty"`
	Goals      []Goal           `json:"goals,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

// Academics holds grade data.
type Academics struct {
	GPAUnweighted *float64 `json:"gpaUnweighted,omitempty"`
	GPAWeighted   *float64 `json:"gpaWeighted,omitempty"`
	ClassRank     *string  `json:"classRank,omitempty"`
}

// Testing holds standardized test results.
type Testing struct {
	SATTotal     *int `json:"satTotal,omitempty"`
	ACTComposite *int `json:"actComposite,omitempty"`
}

// Activity is an extracurricular entry.
type Activity struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	IsLeadership bool      `json:"isLeadership"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AwardLevel is the reach of an award.
type AwardLevel string

const (
	AwardLevelSchool        AwardLevel = "school"
	AwardLevelRegional      AwardLevel = "regional"
	AwardLevelState         AwardLevel = "state"
	AwardLevelNational      AwardLevel = "national"
	AwardLevelInternational AwardLevel = "international"
)

// Award is an honor or competition result.
type Award struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Level     AwardLevel `json:"level"`
	CreatedAt time.Time  `json:"createdAt"`
}

// SchoolInterest is a school on the student's list.
type SchoolInterest struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Tier      Tier      `json:"tier"`
	CreatedAt time.Time `json:"createdAt"`
}

// GoalCategory buckets goals by kind.
type GoalCategory string

const (
	GoalResearch    GoalCategory = "research"
	GoalCompetition GoalCategory = "competition"
	GoalLeadership  GoalCategory = "leadership"
	GoalProject     GoalCategory = "project"
)

// GoalStatus tracks progress on a goal.
type GoalStatus string

const (
	GoalNotStarted GoalStatus = "not_started"
	GoalInProgress GoalStatus = "in_progress"
	GoalCompleted  GoalStatus = "completed"
)

// Goal is something the student intends to do.
type Goal struct {
	ID        uuid.UUID    `json:"id"`
	Title     string       `json:"title"`
	Category  GoalCategory `json:"category"`
	Status    GoalStatus   `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
}

// HasLeadership reports whether any activity is a leadership role.
func HasLeadership(activities []Activity) bool {
	for _, a := range activities {
		if a.IsLeadership {
			return true
		}
	}
	return false
}

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 { return &v }

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// StringPtr returns a pointer to v.
func StringPtr(v string) *string { return &v }
