package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateProfileRequest creates an empty student profile.
type CreateProfileRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// CreateProfileResponse returns the new profile ID and a bearer token scoped to it.
type CreateProfileResponse struct {
	ID    uuid.UUID `json:"id"`
	Token string    `json:"token"`
}

// AcademicsRequest upserts the academics section.
type AcademicsRequest struct {
	GPAUnweighted *float64 `json:"gpaUnweighted" validate:"omitempty,gte=0,lte=5"`
	GPAWeighted   *float64 `json:"gpaWeighted" validate:"omitempty,gte=0,lte=6"`
	ClassRank     *string  `json:"classRank" validate:"omitempty,max=50"`
}

// TestingRequest upserts the testing section.
type TestingRequest struct {
	SATTotal     *int `json:"satTotal" validate:"omitempty,gte=400,lte=1600"`
	ACTComposite *int `json:"actComposite" validate:"omitempty,gte=1,lte=36"`
}

// ActivityRequest creates an activity.
type ActivityRequest struct {
	Title        string `json:"title" validate:"required,max=500"`
	IsLeadership bool   `json:"isLeadership"`
}

// AwardRequest creates an award.
type AwardRequest struct {
	Title string     `json:"title" validate:"required,max=500"`
	Level AwardLevel `json:"level" validate:"required,oneof=school regional state national international"`
}

// SchoolRequest adds a school to the list.
type SchoolRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// GoalRequest creates a goal.
type GoalRequest struct {
	Title    string       `json:"title" validate:"required,max=500"`
	Category GoalCategory `json:"category" validate:"required,oneof=research competition leadership project"`
	Status   GoalStatus   `json:"status" validate:"omitempty,oneof=not_started in_progress completed"`
}

// ClassifyRequest carries one sentence of chat input.
type ClassifyRequest struct {
	Text string `json:"text" validate:"max=2000"`
}

// MessageRequest carries one chat message to turn into a draft record.
type MessageRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

var validate = newValidator()

// newValidator reports field errors under their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate validates the CreateProfileRequest using the validator.
func (r *CreateProfileRequest) Validate() error { return validate.Struct(r) }

// Validate validates the AcademicsRequest using the validator.
func (r *AcademicsRequest) Validate() error { return validate.Struct(r) }

// Validate validates the TestingRequest using the validator.
func (r *TestingRequest) Validate() error { return validate.Struct(r) }

// Validate validates the ActivityRequest using the validator.
func (r *ActivityRequest) Validate() error { return validate.Struct(r) }

// Validate validates the AwardRequest using the validator.
func (r *AwardRequest) Validate() error { return validate.Struct(r) }

// Validate validates the SchoolRequest using the validator.
func (r *SchoolRequest) Validate() error { return validate.Struct(r) }

// Validate validates the GoalRequest using the validator.
func (r *GoalRequest) Validate() error { return validate.Struct(r) }

// Validate validates the ClassifyRequest using the validator.
func (r *ClassifyRequest) Validate() error { return validate.Struct(r) }

// Validate validates the MessageRequest using the validator.
func (r *MessageRequest) Validate() error { return validate.Struct(r) }
