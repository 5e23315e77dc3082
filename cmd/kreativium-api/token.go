package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/whoamaiii/kreativium/backend/internal/config"
	"github.com/whoamaiii/kreativium/backend/internal/middleware"
	"github.com/whoamaiii/kreativium/backend/internal/models"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for local development",
	RunE:  runToken,
}

var tokenFlags struct {
	userID string
	role   string
	ttl    time.Duration
}

func init() {
	f := tokenCmd.Flags()
	f.StringVar(&tokenFlags.userID, "user", "", "Subject of the token (required)")
	f.StringVar(&tokenFlags.role, "role", string(models.RoleChild), "child or teacher")
	f.DurationVar(&tokenFlags.ttl, "ttl", 24*time.Hour, "Token lifetime")
	_ = tokenCmd.MarkFlagRequired("user")
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("KREATIVIUM_AUTH_JWT_SECRET is required")
	}

	role := models.Role(tokenFlags.role)
	if !role.Valid() {
		return fmt.Errorf("unknown role %q", tokenFlags.role)
	}

	verifier := middleware.NewTokenVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	token, err := verifier.Sign(models.Actor{UserID: tokenFlags.userID, Role: role}, tokenFlags.ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
