package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/admissions-advisor/internal/server"
	"github.com/spf13/cobra"
)

var tokenProfileID string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for an existing profile",
	Long:  "Signs a bearer token scoped to one profile with the configured JWT secret. Useful for local testing and support access.",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenProfileID, "profile-id", "", "Profile ID the token grants access to (required)")
	if err := tokenCmd.MarkFlagRequired("profile-id"); err != nil {
		panic(fmt.Sprintf("failed to mark profile-id flag as required: %v", err))
	}
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	profileID, err := uuid.Parse(tokenProfileID)
	if err != nil {
		return fmt.Errorf("invalid profile ID %q: %w", tokenProfileID, err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	jwtCfg, err := cfg.JWT()
	if err != nil {
		return err
	}

	token, err := server.NewJWTService(jwtCfg).GenerateToken(profileID)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token) //nolint:errcheck // writing to stdout
	return nil
}
