package service

import (
	"testing"
	"time"

	"github.com/whoamaiii/kreativium/backend/internal/models"
)

func TestAnalyzePatterns_Empty(t *testing.T) {
	got := AnalyzePatterns(nil, time.UTC)

	if len(got.Frequency) != models.EmotionCount {
		t.Fatalf("frequency has %d entries, want %d", len(got.Frequency), models.EmotionCount)
	}
	for i, f := range got.Frequency {
		if f.Count != 0 || f.Emotion != models.AllEmotions[i] {
			t.Errorf("frequency[%d] = %+v, want %s with 0", i, f, models.AllEmotions[i])
		}
	}
	if len(got.HourlyPatterns) != models.HoursPerDay {
		t.Fatalf("got %d hourly patterns, want %d", len(got.HourlyPatterns), models.HoursPerDay)
	}
	for _, p := range got.HourlyPatterns {
		if p.DominantEmotion != nil || p.Total != 0 {
			t.Errorf("hour %d = %+v, want empty bucket", p.Hour, p)
		}
	}
	if got.Heatmap != [models.HoursPerDay][models.EmotionCount]int{} || got.Total != 0 {
		t.Error("heatmap should be all zeros")
	}
}

func TestAnalyzePatterns_Counts(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	obs := []models.EmotionObservation{
		observation("o1", "u1", models.EmotionHappy, day.Add(9*time.Hour)),
		observation("o2", "u1", models.EmotionTired, day.Add(9*time.Hour+30*time.Minute)),
		observation("o3", "u1", models.EmotionTired, day.Add(9*time.Hour+45*time.Minute)),
		observation("o4", "u1", models.EmotionCalm, day.Add(15*time.Hour)),
		observation("o5", "u1", models.EmotionHappy, day.Add(15*time.Hour)),
		observation("o6", "u1", models.EmotionHappy, day.Add(20*time.Hour)),
		observation("o7", "u1", models.Emotion("bored"), day.Add(20*time.Hour)),
	}

	got := AnalyzePatterns(obs, time.UTC)

	if got.Total != 6 {
		t.Errorf("Total = %d, want 6 (unknown emotions ignored)", got.Total)
	}
	if got.Frequency[0].Emotion != models.EmotionHappy || got.Frequency[0].Count != 3 {
		t.Errorf("top frequency = %+v, want happy x3", got.Frequency[0])
	}
	if got.Frequency[1].Emotion != models.EmotionTired || got.Frequency[1].Count != 2 {
		t.Errorf("second frequency = %+v, want tired x2", got.Frequency[1])
	}

	nine := got.HourlyPatterns[9]
	if nine.DominantEmotion == nil || *nine.DominantEmotion != models.EmotionTired {
		t.Errorf("09:00 dominant = %v, want tired", nine.DominantEmotion)
	}
	if nine.Total != 3 || nine.Counts[models.EmotionHappy] != 1 || nine.Label != "09:00" {
		t.Errorf("09:00 = %+v", nine)
	}

	// tie at 15:00 resolves by emotion order: happy before calm
	if d := got.HourlyPatterns[15].DominantEmotion; d == nil || *d != models.EmotionHappy {
		t.Errorf("15:00 dominant = %v, want happy", d)
	}
	if got.HourlyPatterns[3].DominantEmotion != nil {
		t.Error("empty hour should have no dominant emotion")
	}

	if got.Heatmap[9][models.EmotionTired.Index()] != 2 {
		t.Errorf("heatmap[9][tired] = %d, want 2", got.Heatmap[9][models.EmotionTired.Index()])
	}
}

func TestAnalyzePatterns_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	obs := []models.EmotionObservation{
		observation("o1", "u1", models.EmotionCalm, time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)),
	}

	got := AnalyzePatterns(obs, loc)
	if got.Heatmap[1][models.EmotionCalm.Index()] != 1 {
		t.Errorf("observation at 23:30 UTC should land in hour 1 of UTC+2, heatmap = %v", got.Heatmap)
	}
}
