package service

import (
	"math"

	"github.com/whoamaiii/kreativium/backend/internal/models"
)

// EstimatedPerformance is the neutral score used when an activity result
// carries nothing measurable.
const EstimatedPerformance = 50.0

// PerformanceScore is a normalized 0-100 score. Estimated is set when Value
// is the neutral fallback rather than a measurement.
type PerformanceScore struct {
	Value     float64
	Estimated bool
}

// NormalizePerformance converts an activity result into a 0-100 score.
//
//   - quiz with questions: round(correct / total * 100)
//   - memory game with moves: round(clamp(pairs*2 / moves, 0, 1) * 100)
//   - otherwise a present score, clamped to 0-100
//   - otherwise EstimatedPerformance, flagged as estimated
//
// Malformed input never fails; it falls through to the next rule.
func NormalizePerformance(r models.ActivityResult) PerformanceScore {
	switch r.ActivityType {
	case models.ActivityTypeQuiz:
		if q := r.Quiz; q != nil && q.TotalQuestions > 0 {
			ratio := float64(q.CorrectAnswers) / float64(q.TotalQuestions)
			return PerformanceScore{Value: clamp(math.Round(ratio*100), 0, 100)}
		}
	case models.ActivityTypeMemoryGame:
		if m := r.MemoryGame; m != nil && m.Moves > 0 {
			perfect := float64(m.Pairs * 2)
			efficiency := clamp(perfect/float64(m.Moves), 0, 1)
			return PerformanceScore{Value: math.Round(efficiency * 100)}
		}
	}

	if r.Score != nil && !math.IsNaN(*r.Score) {
		return PerformanceScore{Value: clamp(*r.Score, 0, 100)}
	}
	return PerformanceScore{Value: EstimatedPerformance, Estimated: true}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
