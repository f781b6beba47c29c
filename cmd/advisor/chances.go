package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/admissions-advisor/internal/chances"
	"github.com/jonathan/admissions-advisor/internal/observability"
	"github.com/jonathan/admissions-advisor/internal/schemas"
	"github.com/jonathan/admissions-advisor/internal/store"
	"github.com/jonathan/admissions-advisor/internal/types"
	"github.com/spf13/cobra"
)

var chancesCmd = &cobra.Command{
	Use:   "chances",
	Short: "Estimate admission chances for a profile",
	Long:  "Reads a StudentProfile JSON file (or the built-in sample profile) and estimates the admission chance at each requested school.",
	RunE:  runChances,
}

var (
	chancesProfile string
	chancesSample  bool
	chancesSchools []string
	chancesJSON    bool
)

// schoolChances is one line of JSON output.
type schoolChances struct {
	School string `json:"school"`
	types.ChancesResult
	KnownSchool bool `json:"knownSchool"`
}

func init() {
	chancesCmd.Flags().StringVarP(&chancesProfile, "profile", "p", "", "Path to a StudentProfile JSON file")
	chancesCmd.Flags().BoolVar(&chancesSample, "sample", false, "Use the built-in sample profile")
	chancesCmd.Flags().StringSliceVarP(&chancesSchools, "school", "s", nil, "School to estimate (repeatable, required)")
	chancesCmd.Flags().BoolVar(&chancesJSON, "json", false, "Write results as JSON instead of boxes")

	if err := chancesCmd.MarkFlagRequired("school"); err != nil {
		panic(fmt.Sprintf("failed to mark school flag as required: %v", err))
	}
	chancesCmd.MarkFlagsMutuallyExclusive("profile", "sample")
	chancesCmd.MarkFlagsOneRequired("profile", "sample")

	rootCmd.AddCommand(chancesCmd)
}

func runChances(cmd *cobra.Command, _ []string) error {
	profile, err := loadProfileInput()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if chancesJSON {
		results := make([]schoolChances, 0, len(chancesSchools))
		for _, school := range chancesSchools {
			results = append(results, schoolChances{
				School:        school,
				ChancesResult: chances.Estimate(profile, school),
				KnownSchool:   chances.KnownSchool(school),
			})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	printer := observability.NewPrinter(out)
	printer.PrintProfile(profile)
	for _, school := range chancesSchools {
		printer.PrintChances(school, chances.Estimate(profile, school), chances.KnownSchool(school))
	}
	return nil
}

func loadProfileInput() (*types.StudentProfile, error) {
	if chancesSample {
		return store.SampleProfile(time.Now().UTC()), nil
	}

	if err := schemas.ValidateFile(schemas.StudentProfile, chancesProfile); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return nil, fmt.Errorf("profile %s does not match the StudentProfile schema:\n%w", chancesProfile, err)
		}
		return nil, err
	}

	content, err := os.ReadFile(chancesProfile)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file %s: %w", chancesProfile, err)
	}
	var profile types.StudentProfile
	if err := json.Unmarshal(content, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile JSON: %w", err)
	}
	return &profile, nil
}
