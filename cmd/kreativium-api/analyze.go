package main

import (
	"context"
	"fmt"
	"io"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/whoamaiii/kreativium/backend/internal/config"
	"github.com/whoamaiii/kreativium/backend/internal/logger"
	"github.com/whoamaiii/kreativium/backend/internal/models"
	"github.com/whoamaiii/kreativium/backend/internal/service"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the correlation analysis against the configured store",
	Long: `Build correlations from the configured store, aggregate them and
generate recommendations for one user. The report is printed as JSON.`,
	RunE: runAnalyze,
}

var analyzeFlags struct {
	userID       string
	emotion      string
	activityType string
	contextType  string
	from         string
	to           string
	save         bool
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeFlags.userID, "user", "", "User to analyze (required)")
	f.StringVar(&analyzeFlags.emotion, "emotion", "", "Only correlations with this emotion")
	f.StringVar(&analyzeFlags.activityType, "activity-type", "", "Only this activity type")
	f.StringVar(&analyzeFlags.contextType, "context", "", "Only before or after links")
	f.StringVar(&analyzeFlags.from, "from", "", "Earliest activity timestamp (RFC3339)")
	f.StringVar(&analyzeFlags.to, "to", "", "Latest activity timestamp (RFC3339)")
	f.BoolVar(&analyzeFlags.save, "save", false, "Store the generated recommendations")
	_ = analyzeCmd.MarkFlagRequired("user")
}

// analysisReport is the analyze command's output
type analysisReport struct {
	UserID          string                   `json:"user_id"`
	Correlations    int                      `json:"correlations"`
	Analysis        models.AggregateAnalysis `json:"analysis"`
	Recommendations []models.Recommendation  `json:"recommendations"`
	GeneratedAt     time.Time                `json:"generated_at"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log, err := setupLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync(log)

	filters, err := cliFilters()
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

	report, err := buildReport(ctx, builder, filters, time.Now())
	if err != nil {
		return err
	}

	if analyzeFlags.save && len(report.Recommendations) > 0 {
		if err := store.Recommendations.BulkCreate(ctx, report.Recommendations); err != nil {
			return fmt.Errorf("failed to store recommendations: %w", err)
		}
	}

	return writeJSON(cmd.OutOrStdout(), report)
}

// buildReport runs build, aggregate and generate for filters.UserID
func buildReport(ctx context.Context, builder service.CorrelationBuilder, filters models.CorrelationFilters, now time.Time) (*analysisReport, error) {
	correlations, err := builder.Build(ctx, filters)
	if err != nil {
		return nil, err
	}
	analysis := service.Analyze(correlations)
	return &analysisReport{
		UserID:          filters.UserID,
		Correlations:    len(correlations),
		Analysis:        analysis,
		Recommendations: service.GenerateRecommendations(filters.UserID, analysis, now),
		GeneratedAt:     now.UTC(),
	}, nil
}

func cliFilters() (models.CorrelationFilters, error) {
	filters := models.CorrelationFilters{UserID: analyzeFlags.userID}

	if analyzeFlags.emotion != "" {
		e, err := models.ParseEmotion(analyzeFlags.emotion)
		if err != nil {
			return filters, err
		}
		filters.Emotion = &e
	}
	if analyzeFlags.activityType != "" {
		t, err := models.ParseActivityType(analyzeFlags.activityType)
		if err != nil {
			return filters, err
		}
		filters.ActivityType = &t
	}
	if analyzeFlags.contextType != "" {
		ct, err := models.ParseContextType(analyzeFlags.contextType)
		if err != nil {
			return filters, err
		}
		filters.ContextType = &ct
	}

	r, err := parseRange(analyzeFlags.from, analyzeFlags.to)
	if err != nil {
		return filters, err
	}
	filters.DateRange = r
	return filters, nil
}

// parseRange returns nil when both bounds are empty
func parseRange(from, to string) (*models.DateRange, error) {
	if from == "" && to == "" {
		return nil, nil
	}
	var r models.DateRange
	var err error
	if from != "" {
		if r.Start, err = time.Parse(time.RFC3339, from); err != nil {
			return nil, fmt.Errorf("invalid --from: %w", err)
		}
	}
	if to != "" {
		if r.End, err = time.Parse(time.RFC3339, to); err != nil {
			return nil, fmt.Errorf("invalid --to: %w", err)
		}
	}
	return &r, nil
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
