package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/whoamaiii/kreativium/backend/internal/models"
)

const (
	// MinOptimalStateRecommendationSamples gates optimal-state recommendations
	MinOptimalStateRecommendationSamples = 5
	// MinShiftRecommendationSamples gates shift recommendations
	MinShiftRecommendationSamples = 3
	// MaxShiftRecommendations is how many shifts can produce a recommendation
	MaxShiftRecommendations = 2

	optimalStateBaseConfidence = 0.7
	shiftBaseConfidence        = 0.6
	confidenceStep             = 0.1
)

// GenerateRecommendations turns an analysis into ranked, explained
// recommendations for userID.
//
// This is a scoring heuristic, not a statistical model. Confidence depends
// only on rank, and the only evidence requirement is a fixed sample size:
//
//   - optimal state at rank r (0-2) with count >= 5: 0.7 + 0.1*(2-r)
//   - shift with positive mean performance and count >= 3, top 2 by that
//     mean, at rank r: 0.6 + 0.1*(1-r), targeting the shift's from-emotion
func GenerateRecommendations(userID string, analysis models.AggregateAnalysis, now time.Time) []models.Recommendation {
	out := make([]models.Recommendation, 0)
	ts := now.UTC()

	for rank, state := range analysis.OptimalStates {
		if rank >= MaxOptimalStates {
			break
		}
		if state.Count < MinOptimalStateRecommendationSamples {
			continue
		}
		out = append(out, models.Recommendation{
			ID:                      NewID(),
			UserID:                  userID,
			TargetEmotion:           state.Emotion,
			RecommendedActivityType: bestActivityFor(analysis, state.Emotion),
			Reasoning: fmt.Sprintf(
				"Activities started while feeling %s averaged %.0f%% performance over %d sessions.",
				state.Emotion, state.Average, state.Count),
			Confidence: roundConfidence(optimalStateBaseConfidence + confidenceStep*float64(MaxOptimalStates-1-rank)),
			Source:     models.RecommendationSourceOptimalState,
			Timestamp:  ts,
		})
	}

	for rank, shift := range topShifts(analysis.EmotionalShifts) {
		activityType := shift.ActivityType
		if activityType == "" {
			activityType = bestActivityFor(analysis, shift.From)
		}
		out = append(out, models.Recommendation{
			ID:                      NewID(),
			UserID:                  userID,
			TargetEmotion:           shift.From,
			RecommendedActivityType: activityType,
			Reasoning: fmt.Sprintf(
				"Going from %s to %s around an activity came with %.0f%% average performance across %d activities.",
				shift.From, shift.To, shift.AveragePerformanceChange, shift.Count),
			Confidence: roundConfidence(shiftBaseConfidence + confidenceStep*float64(MaxShiftRecommendations-1-rank)),
			Source:     models.RecommendationSourceShift,
			Timestamp:  ts,
		})
	}

	return out
}

// topShifts filters shifts that qualify for a recommendation and returns
// the best ones by mean performance.
func topShifts(shifts []models.EmotionalShift) []models.EmotionalShift {
	eligible := make([]models.EmotionalShift, 0, len(shifts))
	for _, s := range shifts {
		if s.AveragePerformanceChange > 0 && s.Count >= MinShiftRecommendationSamples {
			eligible = append(eligible, s)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].AveragePerformanceChange > eligible[j].AveragePerformanceChange
	})
	if len(eligible) > MaxShiftRecommendations {
		eligible = eligible[:MaxShiftRecommendations]
	}
	return eligible
}

// bestActivityFor returns the activity type with the highest mean
// performance when started in emotion, or "other" without data.
func bestActivityFor(analysis models.AggregateAnalysis, emotion models.Emotion) models.ActivityType {
	best := models.ActivityTypeOther
	bestAvg := math.Inf(-1)
	for _, t := range models.AllActivityTypes {
		st, ok := analysis.PerformanceByActivity[emotion][t]
		if !ok || st.Count == 0 {
			continue
		}
		if st.Average > bestAvg {
			best, bestAvg = t, st.Average
		}
	}
	return best
}

// roundConfidence drops float noise such as 0.7+0.1*2 = 0.8999999999999999
func roundConfidence(c float64) float64 {
	return math.Round(c*100) / 100
}
