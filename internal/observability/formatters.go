// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/admissions-advisor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

var statusMarks = map[types.FactorStatus]string{
	types.StatusStrong:  "▲",
	types.StatusOK:      "●",
	types.StatusWeak:    "▼",
	types.StatusMissing: "?",
}

// PrintChances outputs a chance estimate with its per-factor breakdown.
func (p *Printer) PrintChances(school string, result types.ChancesResult, knownSchool bool) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("School:      %s", school))
	if !knownSchool {
		sb.WriteString(" (not in table, default base)")
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Chance:      %d%%\n", result.Chance))
	sb.WriteString(fmt.Sprintf("Tier:        %s\n", result.Tier))
	sb.WriteString(fmt.Sprintf("Confidence:  %s\n", result.Confidence))

	if len(result.Breakdown) > 0 {
		sb.WriteString("\n")
		for _, b := range result.Breakdown {
			sb.WriteString(fmt.Sprintf("%s %-12s %-8s %s\n", statusMarks[b.Status], b.Factor, b.Status, b.Impact))
		}
	}

	p.printBox("ADMISSION CHANCES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintParsed outputs what a chat message was classified as.
func (p *Printer) PrintParsed(parsed types.ParsedData) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Type:        %s\n", parsed.Type))
	sb.WriteString(fmt.Sprintf("Confidence:  %s\n", parsed.Confidence))

	switch d := parsed.Data.(type) {
	case types.GPAData:
		kind := "unweighted"
		if d.IsWeighted {
			kind = "weighted"
		}
		sb.WriteString(fmt.Sprintf("Value:       %.2f (%s)\n", d.Value, kind))
	case types.ScoreData:
		sb.WriteString(fmt.Sprintf("Value:       %d\n", d.Value))
	case types.ActivityData:
		sb.WriteString(fmt.Sprintf("Leadership:  %t\n", d.IsLeadership))
	case types.AwardData:
		sb.WriteString(fmt.Sprintf("Level:       %s\n", d.Level))
	case types.GoalData:
		sb.WriteString(fmt.Sprintf("Category:    %s\n", d.Category))
	case types.SchoolData:
		sb.WriteString(fmt.Sprintf("School:      %s\n", d.Name))
	}

	text := parsed.Original
	if len(text) > 40 {
		text = text[:37] + "..."
	}
	sb.WriteString(fmt.Sprintf("Text:        %q", text))

	p.printBox("CLASSIFIED MESSAGE", sb.String())
}

// PrintProfile outputs a summary of a student profile.
func (p *Printer) PrintProfile(profile *types.StudentProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	if profile.Name != "" {
		sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.Name))
	}

	if a := profile.Academics; a != nil {
		if a.GPAUnweighted != nil {
			sb.WriteString(fmt.Sprintf("GPA:      %.2f unweighted\n", *a.GPAUnweighted))
		}
		if a.GPAWeighted != nil {
			sb.WriteString(fmt.Sprintf("GPA:      %.2f weighted\n", *a.GPAWeighted))
		}
	}
	if t := profile.Testing; t != nil {
		if t.SATTotal != nil {
			sb.WriteString(fmt.Sprintf("SAT:      %d\n", *t.SATTotal))
		}
		if t.ACTComposite != nil {
			sb.WriteString(fmt.Sprintf("ACT:      %d\n", *t.ACTComposite))
		}
	}

	if len(profile.Activities) > 0 {
		sb.WriteString("\nActivities:\n")
		count := min(len(profile.Activities), maxItemsToShow)
		for i := 0; i < count; i++ {
			a := profile.Activities[i]
			sb.WriteString(fmt.Sprintf("  • %s", a.Title))
			if a.IsLeadership {
				sb.WriteString(" (leadership)")
			}
			sb.WriteString("\n")
		}
		if len(profile.Activities) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Activities)-maxItemsToShow))
		}
	}

	if len(profile.Awards) > 0 {
		sb.WriteString("\nAwards:\n")
		count := min(len(profile.Awards), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s [%s]\n", profile.Awards[i].Title, profile.Awards[i].Level))
		}
		if len(profile.Awards) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Awards)-maxItemsToShow))
		}
	}

	content := strings.TrimSuffix(sb.String(), "\n")
	if content == "" {
		content = "(empty profile)"
	}
	p.printBox("STUDENT PROFILE", content)
}
