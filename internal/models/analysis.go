package models

import "time"

// PerformanceBucketCount is the number of performance buckets in the
// correlation matrix: [0-19], [20-39], [40-59], [60-79], [80-100]
const PerformanceBucketCount = 5

// PerformanceBucketLabels names the correlation matrix columns
var PerformanceBucketLabels = [PerformanceBucketCount]string{"0-19", "20-39", "40-59", "60-79", "80-100"}

// EmotionStats is the mean performance and sample size for one group
type EmotionStats struct {
	Average float64 `json:"avg"`
	Count   int     `json:"count"`
}

// EmotionalShift counts one observed before->after transition. The
// AveragePerformanceChange is the mean post-activity performance of the
// activities that showed the transition, not a before/after delta: each
// activity carries a single performance measurement.
type EmotionalShift struct {
	From                     Emotion      `json:"from_emotion"`
	To                       Emotion      `json:"to_emotion"`
	Count                    int          `json:"count"`
	AveragePerformanceChange float64      `json:"average_performance_change"`
	ActivityType             ActivityType `json:"activity_type"`
}

// OptimalState is a pre-activity emotion ranked by mean performance
type OptimalState struct {
	Emotion Emotion `json:"emotion"`
	Average float64 `json:"avg"`
	Count   int     `json:"count"`
}

// MatrixRow is one emotion's row in the correlation matrix
type MatrixRow struct {
	Emotion Emotion                     `json:"emotion"`
	Buckets [PerformanceBucketCount]int `json:"buckets"`
}

// TimeSeriesPoint is one before-context correlation on the activity timeline
type TimeSeriesPoint struct {
	Timestamp   time.Time `json:"timestamp"`
	Emotion     Emotion   `json:"emotion"`
	Performance float64   `json:"performance"`
}

// AggregateAnalysis is the grouped statistics computed from a correlation set
type AggregateAnalysis struct {
	PerformanceByPreEmotion  map[Emotion]EmotionStats                  `json:"performance_by_pre_emotion"`
	PerformanceByPostEmotion map[Emotion]EmotionStats                  `json:"performance_by_post_emotion"`
	PerformanceByActivity    map[Emotion]map[ActivityType]EmotionStats `json:"performance_by_activity"`
	EmotionalShifts          []EmotionalShift                          `json:"emotional_shifts"`
	OptimalStates            []OptimalState                            `json:"optimal_states"`
	CorrelationMatrix        []MatrixRow                               `json:"correlation_matrix"`
	TimeSeries               []TimeSeriesPoint                         `json:"time_series"`
	TotalCorrelations        int                                       `json:"total_correlations"`
	EstimatedCount           int                                       `json:"estimated_count"`
}
