package models

// HoursPerDay is the number of hourly buckets in a temporal analysis
const HoursPerDay = 24

// EmotionFrequency is the number of observations of one emotion
type EmotionFrequency struct {
	Emotion Emotion `json:"emotion"`
	Count   int     `json:"count"`
}

// HourlyPattern holds per-emotion counts for one local hour of the day.
// DominantEmotion is nil when the hour has no observations.
type HourlyPattern struct {
	Hour            int             `json:"hour"`
	Label           string          `json:"label"`
	Counts          map[Emotion]int `json:"counts"`
	Total           int             `json:"total"`
	DominantEmotion *Emotion        `json:"dominant_emotion,omitempty"`
}

// TemporalPatterns is the frequency/time-of-day analysis of raw observations.
// Heatmap rows are hours 0-23 and columns follow AllEmotions.
type TemporalPatterns struct {
	Frequency      []EmotionFrequency             `json:"frequency"`
	HourlyPatterns []HourlyPattern                `json:"hourly_patterns"`
	Heatmap        [HoursPerDay][EmotionCount]int `json:"heatmap"`
	Total          int                            `json:"total"`
}
