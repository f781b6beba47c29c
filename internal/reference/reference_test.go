package reference

import (
	"testing"

	"github.com/jonathan/admissions-advisor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Loads(t *testing.T) {
	tables := Default()
	require.NotNil(t, tables)

	assert.Equal(t, 15, tables.DefaultSelectivity)
	assert.Len(t, tables.SelectiveSchools(), 10)
	assert.GreaterOrEqual(t, len(tables.Schools), 25)
	assert.NotEmpty(t, tables.SchoolIntents)
	assert.Contains(t, tables.Activity.Leadership, "president")
	assert.Contains(t, tables.Activity.General, "club")
	assert.Contains(t, tables.Award.National, "usamo")
}

func TestDefault_GoalBucketOrder(t *testing.T) {
	goals := Default().Goals
	require.Len(t, goals, 4)
	assert.Equal(t, types.GoalResearch, goals[0].Category)
	assert.Equal(t, types.GoalCompetition, goals[1].Category)
	assert.Equal(t, types.GoalLeadership, goals[2].Category)
	assert.Equal(t, types.GoalProject, goals[3].Category)
}

func TestSelectivity(t *testing.T) {
	tables := Default()

	tests := []struct {
		name      string
		school    string
		wantBase  int
		wantKnown bool
	}{
		{"exact", "Stanford", 4, true},
		{"lowercase", "stanford", 4, true},
		{"mixed case with spaces", "  uc BERKELEY ", 11, true},
		{"alias is not a table key", "Stanford University", 15, false},
		{"named but unranked", "NYU", 15, false},
		{"unknown", "Springfield Community College", 15, false},
		{"empty", "", 15, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, known := tables.Selectivity(tt.school)
			assert.Equal(t, tt.wantBase, base)
			assert.Equal(t, tt.wantKnown, known)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"bad yaml", "schools: [", "failed to parse"},
		{"default out of range", "default_selectivity: 0", "default_selectivity"},
		{"missing name", "default_selectivity: 15\nschools:\n  - selectivity: 4", "name is required"},
		{"duplicate", "default_selectivity: 15\nschools:\n  - name: A\n  - name: a", "duplicate"},
		{"selectivity out of range", "default_selectivity: 15\nschools:\n  - name: A\n    selectivity: 99", "selectivity"},
		{"empty goal bucket", "default_selectivity: 15\ngoals:\n  - category: research", "goals[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse_Custom(t *testing.T) {
	doc := `
default_selectivity: 20
schools:
  - name: Example College
    selectivity: 30
    aliases: [example]
`
	tables, err := Parse([]byte(doc))
	require.NoError(t, err)

	base, known := tables.Selectivity("example college")
	assert.True(t, known)
	assert.Equal(t, 30, base)

	base, known = tables.Selectivity("Stanford")
	assert.False(t, known)
	assert.Equal(t, 20, base)
}
