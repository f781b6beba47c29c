package types

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestValidation(t *testing.T) {
	tests := []struct {
		name      string
		req       interface{ Validate() error }
		wantField string
	}{
		{name: "profile ok", req: &CreateProfileRequest{Name: "Ada"}},
		{name: "profile missing name", req: &CreateProfileRequest{}, wantField: "name"},
		{name: "academics empty ok", req: &AcademicsRequest{}},
		{name: "academics gpa too high", req: &AcademicsRequest{GPAUnweighted: Float64Ptr(5.1)}, wantField: "gpaUnweighted"},
		{name: "academics weighted ok", req: &AcademicsRequest{GPAWeighted: Float64Ptr(5.2)}},
		{name: "testing sat range", req: &TestingRequest{SATTotal: IntPtr(1610)}, wantField: "satTotal"},
		{name: "testing act zero", req: &TestingRequest{ACTComposite: IntPtr(0)}, wantField: "actComposite"},
		{name: "testing ok", req: &TestingRequest{SATTotal: IntPtr(400), ACTComposite: IntPtr(36)}},
		{name: "award level", req: &AwardRequest{Title: "x", Level: "galactic"}, wantField: "level"},
		{name: "award international", req: &AwardRequest{Title: "IMO gold", Level: AwardLevelInternational}},
		{name: "goal status", req: &GoalRequest{Title: "x", Category: GoalProject, Status: "someday"}, wantField: "status"},
		{name: "goal default status", req: &GoalRequest{Title: "x", Category: GoalProject}},
		{name: "message required", req: &MessageRequest{}, wantField: "text"},
		{name: "classify empty ok", req: &ClassifyRequest{}},
		{name: "school name", req: &SchoolRequest{}, wantField: "name"},
		{name: "activity title", req: &ActivityRequest{IsLeadership: true}, wantField: "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var fieldErrs validator.ValidationErrors
			require.True(t, errors.As(err, &fieldErrs), "got %v", err)
			assert.Equal(t, tt.wantField, fieldErrs[0].Field())
		})
	}
}
