package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/whoamaiii/kreativium/backend/internal/config"
	"github.com/whoamaiii/kreativium/backend/internal/logger"
	"github.com/whoamaiii/kreativium/backend/internal/models"
	"github.com/whoamaiii/kreativium/backend/internal/service"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Print a user's emotion frequency and time-of-day report",
	RunE:  runPatterns,
}

var patternsFlags struct {
	userID string
	from   string
	to     string
}

func init() {
	f := patternsCmd.Flags()
	f.StringVar(&patternsFlags.userID, "user", "", "User to report on (required)")
	f.StringVar(&patternsFlags.from, "from", "", "Earliest observation timestamp (RFC3339)")
	f.StringVar(&patternsFlags.to, "to", "", "Latest observation timestamp (RFC3339)")
	_ = patternsCmd.MarkFlagRequired("user")
}

func runPatterns(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log, err := setupLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync(log)

	dateRange, err := parseRange(patternsFlags.from, patternsFlags.to)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	store, err := openStore(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	ctx := logger.WithLogger(cmd.Context(), log)
	builder := service.NewCorrelationBuilder(store.Observations, store.Activities, store.Links)
	insights := service.NewInsightsService(builder, store.Observations, store.Recommendations, loc)

	// the operator reads any user's data
	operator := models.Actor{UserID: "cli", Role: models.RoleTeacher}
	patterns, err := insights.Patterns(ctx, operator, patternsFlags.userID, dateRange)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), patterns)
}
