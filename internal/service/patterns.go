package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/whoamaiii/kreativium/backend/internal/models"
)

// AnalyzePatterns computes emotion frequencies, per-hour counts with the
// dominant emotion, and a 24x8 hour/emotion heatmap. Hours are taken in loc;
// a nil loc means time.Local. Observations with an unknown emotion are ignored.
func AnalyzePatterns(observations []models.EmotionObservation, loc *time.Location) models.TemporalPatterns {
	if loc == nil {
		loc = time.Local
	}

	var result models.TemporalPatterns
	var totals [models.EmotionCount]int

	for _, obs := range observations {
		idx := obs.Emotion.Index()
		if idx < 0 {
			continue
		}
		hour := obs.Timestamp.In(loc).Hour()
		result.Heatmap[hour][idx]++
		totals[idx]++
		result.Total++
	}

	result.Frequency = make([]models.EmotionFrequency, 0, models.EmotionCount)
	for i, e := range models.AllEmotions {
		result.Frequency = append(result.Frequency, models.EmotionFrequency{Emotion: e, Count: totals[i]})
	}
	// stable sort keeps the fixed emotion order among equal counts
	sort.SliceStable(result.Frequency, func(i, j int) bool {
		return result.Frequency[i].Count > result.Frequency[j].Count
	})

	result.HourlyPatterns = make([]models.HourlyPattern, models.HoursPerDay)
	for hour := 0; hour < models.HoursPerDay; hour++ {
		p := models.HourlyPattern{
			Hour:   hour,
			Label:  fmt.Sprintf("%02d:00", hour),
			Counts: make(map[models.Emotion]int, models.EmotionCount),
		}
		bestCount := 0
		for i, e := range models.AllEmotions {
			n := result.Heatmap[hour][i]
			p.Counts[e] = n
			p.Total += n
			if n > bestCount {
				dominant := e
				p.DominantEmotion = &dominant
				bestCount = n
			}
		}
		result.HourlyPatterns[hour] = p
	}

	return result
}

// filterObservations keeps observations whose timestamp falls in r
func filterObservations(observations []models.EmotionObservation, r *models.DateRange) []models.EmotionObservation {
	if r == nil {
		return observations
	}
	out := make([]models.EmotionObservation, 0, len(observations))
	for _, o := range observations {
		if r.Contains(o.Timestamp) {
			out = append(out, o)
		}
	}
	return out
}
