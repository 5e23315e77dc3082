package service

import (
	"math"
	"sort"

	"github.com/whoamaiii/kreativium/backend/internal/models"
)

const (
	// MinOptimalStateSamples is the smallest before-context sample an emotion
	// needs to be ranked as an optimal state.
	MinOptimalStateSamples = 3
	// MaxOptimalStates is how many optimal states are reported
	MaxOptimalStates = 3
	// PerformanceBucketWidth is the width of one correlation matrix bucket
	PerformanceBucketWidth = 20.0
)

type meanAccumulator struct {
	sum   float64
	count int
}

func (m *meanAccumulator) add(v float64) {
	m.sum += v
	m.count++
}

func (m meanAccumulator) stats() models.EmotionStats {
	if m.count == 0 {
		return models.EmotionStats{}
	}
	return models.EmotionStats{Average: m.sum / float64(m.count), Count: m.count}
}

// activityShift is what one activity contributes to shift detection. The
// first correlation seen for each context wins.
type activityShift struct {
	before       *models.Emotion
	after        *models.Emotion
	performance  float64
	activityType models.ActivityType
}

type shiftKey struct {
	from, to models.Emotion
}

type shiftAccumulator struct {
	meanAccumulator
	typeCounts [models.ActivityTypeCount]int
}

// Analyze computes grouped statistics over a correlation set. It is a pure
// function: no I/O, no state, and an empty input yields empty (never nil)
// collections plus an all-zero correlation matrix.
func Analyze(correlations []models.Correlation) models.AggregateAnalysis {
	pre := make(map[models.Emotion]*meanAccumulator)
	post := make(map[models.Emotion]*meanAccumulator)
	byActivity := make(map[models.Emotion]map[models.ActivityType]*meanAccumulator)

	shifts := make(map[string]*activityShift)
	var shiftOrder []string

	matrix := make([]models.MatrixRow, models.EmotionCount)
	for i, e := range models.AllEmotions {
		matrix[i].Emotion = e
	}

	series := make([]models.TimeSeriesPoint, 0)
	estimated := 0

	for _, c := range correlations {
		if c.IsEstimated {
			estimated++
		}

		switch c.ContextType {
		case models.ContextBefore:
			accumulate(pre, c.Emotion, c.PerformanceMetric)
			if byActivity[c.Emotion] == nil {
				byActivity[c.Emotion] = make(map[models.ActivityType]*meanAccumulator)
			}
			accumulate(byActivity[c.Emotion], c.ActivityType, c.PerformanceMetric)

			if idx := c.Emotion.Index(); idx >= 0 {
				matrix[idx].Buckets[performanceBucket(c.PerformanceMetric)]++
			}
			series = append(series, models.TimeSeriesPoint{
				Timestamp:   c.ActivityResult.Timestamp,
				Emotion:     c.Emotion,
				Performance: c.PerformanceMetric,
			})
		case models.ContextAfter:
			accumulate(post, c.Emotion, c.PerformanceMetric)
		default:
			continue
		}

		id := c.ActivityResult.ID
		s, ok := shifts[id]
		if !ok {
			s = &activityShift{activityType: c.ActivityType}
			shifts[id] = s
			shiftOrder = append(shiftOrder, id)
		}
		emotion := c.Emotion
		if c.ContextType == models.ContextBefore && s.before == nil {
			s.before = &emotion
		}
		if c.ContextType == models.ContextAfter && s.after == nil {
			s.after = &emotion
			s.performance = c.PerformanceMetric
		}
	}

	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Timestamp.Before(series[j].Timestamp)
	})

	preStats := finalize(pre)
	return models.AggregateAnalysis{
		PerformanceByPreEmotion:  preStats,
		PerformanceByPostEmotion: finalize(post),
		PerformanceByActivity:    finalizeByActivity(byActivity),
		EmotionalShifts:          detectShifts(shifts, shiftOrder),
		OptimalStates:            rankOptimalStates(preStats),
		CorrelationMatrix:        matrix,
		TimeSeries:               series,
		TotalCorrelations:        len(correlations),
		EstimatedCount:           estimated,
	}
}

func accumulate[K comparable](groups map[K]*meanAccumulator, key K, v float64) {
	acc, ok := groups[key]
	if !ok {
		acc = &meanAccumulator{}
		groups[key] = acc
	}
	acc.add(v)
}

func finalize(groups map[models.Emotion]*meanAccumulator) map[models.Emotion]models.EmotionStats {
	out := make(map[models.Emotion]models.EmotionStats, len(groups))
	for e, acc := range groups {
		out[e] = acc.stats()
	}
	return out
}

func finalizeByActivity(groups map[models.Emotion]map[models.ActivityType]*meanAccumulator) map[models.Emotion]map[models.ActivityType]models.EmotionStats {
	out := make(map[models.Emotion]map[models.ActivityType]models.EmotionStats, len(groups))
	for e, byType := range groups {
		inner := make(map[models.ActivityType]models.EmotionStats, len(byType))
		for t, acc := range byType {
			inner[t] = acc.stats()
		}
		out[e] = inner
	}
	return out
}

// performanceBucket maps a 0-100 score to its matrix column
func performanceBucket(performance float64) int {
	idx := int(math.Floor(performance / PerformanceBucketWidth))
	if idx < 0 {
		return 0
	}
	if idx >= models.PerformanceBucketCount {
		return models.PerformanceBucketCount - 1
	}
	return idx
}

// detectShifts counts before->after transitions for activities that have
// both. Each shift's AveragePerformanceChange is the mean of the after-context
// performance values, since an activity has only one measurement.
func detectShifts(shifts map[string]*activityShift, order []string) []models.EmotionalShift {
	counters := make(map[shiftKey]*shiftAccumulator)
	var keys []shiftKey

	for _, id := range order {
		s := shifts[id]
		if s.before == nil || s.after == nil {
			continue
		}
		k := shiftKey{from: *s.before, to: *s.after}
		acc, ok := counters[k]
		if !ok {
			acc = &shiftAccumulator{}
			counters[k] = acc
			keys = append(keys, k)
		}
		acc.add(s.performance)
		if idx := s.activityType.Index(); idx >= 0 {
			acc.typeCounts[idx]++
		}
	}

	out := make([]models.EmotionalShift, 0, len(keys))
	for _, k := range keys {
		acc := counters[k]
		stats := acc.stats()
		out = append(out, models.EmotionalShift{
			From:                     k.from,
			To:                       k.to,
			Count:                    stats.Count,
			AveragePerformanceChange: stats.Average,
			ActivityType:             mostFrequentType(acc.typeCounts),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.AveragePerformanceChange != b.AveragePerformanceChange {
			return a.AveragePerformanceChange > b.AveragePerformanceChange
		}
		if a.From != b.From {
			return a.From.Index() < b.From.Index()
		}
		return a.To.Index() < b.To.Index()
	})
	return out
}

func mostFrequentType(counts [models.ActivityTypeCount]int) models.ActivityType {
	best := models.ActivityTypeOther
	bestCount := 0
	for i, n := range counts {
		if n > bestCount {
			best, bestCount = models.AllActivityTypes[i], n
		}
	}
	return best
}

// rankOptimalStates keeps emotions with enough samples and returns the top
// ones by mean performance. Ties follow the fixed emotion order.
func rankOptimalStates(pre map[models.Emotion]models.EmotionStats) []models.OptimalState {
	out := make([]models.OptimalState, 0, MaxOptimalStates)
	for _, e := range models.AllEmotions {
		st, ok := pre[e]
		if !ok || st.Count < MinOptimalStateSamples {
			continue
		}
		out = append(out, models.OptimalState{Emotion: e, Average: st.Average, Count: st.Count})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Average > out[j].Average
	})
	if len(out) > MaxOptimalStates {
		out = out[:MaxOptimalStates]
	}
	return out
}
