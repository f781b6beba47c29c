package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/admissions-advisor/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintChances(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := types.ChancesResult{
		Chance: 24,
		Tier:   types.TierTarget,
		Breakdown: []types.FactorBreakdown{
			{Factor: "GPA", Status: types.StatusStrong, Impact: "+5%"},
			{Factor: "Awards", Status: types.StatusMissing, Impact: "?"},
		},
		Confidence: types.ConfidenceMedium,
	}

	p.PrintChances("Stanford", result, true)
	output := buf.String()

	assert.Contains(t, output, "ADMISSION CHANCES")
	assert.Contains(t, output, "Stanford")
	assert.NotContains(t, output, "default base")
	assert.Contains(t, output, "24%")
	assert.Contains(t, output, "target")
	assert.Contains(t, output, "+5%")
	assert.Contains(t, output, "missing")
}

func TestPrintChances_UnknownSchool(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintChances("Nowhere State", types.ChancesResult{Chance: 15, Tier: types.TierTarget}, false)

	assert.Contains(t, buf.String(), "default base")
}

func TestPrintParsed(t *testing.T) {
	tests := []struct {
		name   string
		parsed types.ParsedData
		want   []string
	}{
		{
			name:   "gpa",
			parsed: types.ParsedData{Type: types.ParsedGPA, Data: types.GPAData{Value: 4.3, IsWeighted: true}, Confidence: types.ConfidenceHigh, Original: "4.3 weighted GPA"},
			want:   []string{"gpa", "4.30 (weighted)", "high"},
		},
		{
			name:   "school",
			parsed: types.ParsedData{Type: types.ParsedSchool, Data: types.SchoolData{Name: "MIT"}, Confidence: types.ConfidenceHigh, Original: "MIT"},
			want:   []string{"school", "MIT"},
		},
		{
			name:   "unknown",
			parsed: types.ParsedData{Type: types.ParsedUnknown, Data: types.UnknownData{Text: "hmm"}, Confidence: types.ConfidenceLow, Original: "hmm"},
			want:   []string{"unknown", "low", `"hmm"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf).PrintParsed(tt.parsed)
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestPrintParsed_TruncatesLongText(t *testing.T) {
	var buf bytes.Buffer
	text := strings.Repeat("volunteer ", 20)
	NewPrinter(&buf).PrintParsed(types.ParsedData{Type: types.ParsedActivity, Data: types.ActivityData{Title: text}, Original: text})

	assert.Contains(t, buf.String(), "...")
	assert.NotContains(t, buf.String(), text)
}

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	profile := &types.StudentProfile{
		Name:      "Ada",
		Academics: &types.Academics{GPAUnweighted: types.Float64Ptr(3.9)},
		Testing:   &types.Testing{SATTotal: types.IntPtr(1540)},
	}
	for i := 0; i < 7; i++ {
		profile.Activities = append(profile.Activities, types.Activity{Title: "Club", IsLeadership: i == 0})
	}

	p.PrintProfile(profile)
	output := buf.String()

	assert.Contains(t, output, "STUDENT PROFILE")
	assert.Contains(t, output, "Ada")
	assert.Contains(t, output, "3.90 unweighted")
	assert.Contains(t, output, "1540")
	assert.Contains(t, output, "(leadership)")
	assert.Contains(t, output, "... and 2 more")
}

func TestPrintProfile_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfile(nil)
	assert.Empty(t, buf.String())

	p.PrintProfile(&types.StudentProfile{})
	assert.Contains(t, buf.String(), "(empty profile)")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 100))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 5)
	assert.Contains(t, lines[3], "...")
}
