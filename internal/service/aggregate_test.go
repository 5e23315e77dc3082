package service

import (
	"testing"
	"time"

	"github.com/whoamaiii/kreativium/backend/internal/models"
)

func TestAnalyze_EmptyInput(t *testing.T) {
	got := Analyze(nil)

	if got.PerformanceByPreEmotion == nil || len(got.PerformanceByPreEmotion) != 0 {
		t.Errorf("PerformanceByPreEmotion = %v, want empty map", got.PerformanceByPreEmotion)
	}
	if got.PerformanceByPostEmotion == nil || len(got.PerformanceByPostEmotion) != 0 {
		t.Errorf("PerformanceByPostEmotion = %v, want empty map", got.PerformanceByPostEmotion)
	}
	if got.EmotionalShifts == nil || len(got.EmotionalShifts) != 0 {
		t.Errorf("EmotionalShifts = %v, want empty", got.EmotionalShifts)
	}
	if got.OptimalStates == nil || len(got.OptimalStates) != 0 {
		t.Errorf("OptimalStates = %v, want empty", got.OptimalStates)
	}
	if got.TimeSeries == nil || len(got.TimeSeries) != 0 {
		t.Errorf("TimeSeries = %v, want empty", got.TimeSeries)
	}
	if len(got.CorrelationMatrix) != models.EmotionCount {
		t.Fatalf("matrix has %d rows, want %d", len(got.CorrelationMatrix), models.EmotionCount)
	}
	for i, row := range got.CorrelationMatrix {
		if row.Emotion != models.AllEmotions[i] {
			t.Errorf("row %d emotion = %s, want %s", i, row.Emotion, models.AllEmotions[i])
		}
		if row.Buckets != [models.PerformanceBucketCount]int{} {
			t.Errorf("row %s buckets = %v, want zeros", row.Emotion, row.Buckets)
		}
	}
	if got.TotalCorrelations != 0 || got.EstimatedCount != 0 {
		t.Errorf("totals = %d/%d, want 0/0", got.TotalCorrelations, got.EstimatedCount)
	}
}

func TestAnalyze_EndToEndShift(t *testing.T) {
	a1 := quizResult("a1", "u1", 9, 10, baseTime)
	got := Analyze([]models.Correlation{
		correlation("l1", a1, models.EmotionHappy, models.ContextBefore),
		correlation("l2", a1, models.EmotionExcited, models.ContextAfter),
	})

	happy, ok := got.PerformanceByPreEmotion[models.EmotionHappy]
	if !ok || happy.Average != 90 || happy.Count != 1 {
		t.Errorf("pre happy = %+v (present %v), want {avg:90 count:1}", happy, ok)
	}
	excited := got.PerformanceByPostEmotion[models.EmotionExcited]
	if excited.Average != 90 || excited.Count != 1 {
		t.Errorf("post excited = %+v, want {avg:90 count:1}", excited)
	}

	if len(got.EmotionalShifts) != 1 {
		t.Fatalf("got %d shifts, want 1", len(got.EmotionalShifts))
	}
	shift := got.EmotionalShifts[0]
	if shift.From != models.EmotionHappy || shift.To != models.EmotionExcited {
		t.Errorf("shift = %s->%s, want happy->excited", shift.From, shift.To)
	}
	if shift.Count != 1 || shift.AveragePerformanceChange != 90 {
		t.Errorf("shift count=%d avg=%v, want 1 and 90", shift.Count, shift.AveragePerformanceChange)
	}
	if shift.ActivityType != models.ActivityTypeQuiz {
		t.Errorf("shift activity type = %s, want quiz", shift.ActivityType)
	}

	if got.PerformanceByActivity[models.EmotionHappy][models.ActivityTypeQuiz].Average != 90 {
		t.Errorf("by activity = %v, want happy/quiz avg 90", got.PerformanceByActivity)
	}
}

func TestAnalyze_GroupingCompleteness(t *testing.T) {
	var input []models.Correlation
	emotions := []models.Emotion{
		models.EmotionHappy, models.EmotionCalm, models.EmotionHappy,
		models.EmotionTired, models.EmotionHappy, models.EmotionCalm,
	}
	for i, e := range emotions {
		act := quizResult("a"+string(rune('0'+i)), "u1", i+3, 10, baseTime.Add(time.Duration(i)*time.Hour))
		input = append(input, correlation("b"+string(rune('0'+i)), act, e, models.ContextBefore))
		input = append(input, correlation("x"+string(rune('0'+i)), act, models.EmotionSad, models.ContextAfter))
	}

	got := Analyze(input)

	want := map[models.Emotion]int{}
	for _, c := range input {
		if c.ContextType == models.ContextBefore {
			want[c.Emotion]++
		}
	}
	if len(got.PerformanceByPreEmotion) != len(want) {
		t.Errorf("pre emotions = %d, want %d", len(got.PerformanceByPreEmotion), len(want))
	}
	for e, st := range got.PerformanceByPreEmotion {
		if st.Count != want[e] {
			t.Errorf("pre %s count = %d, want %d", e, st.Count, want[e])
		}
	}
	if _, ok := got.PerformanceByPreEmotion[models.EmotionAngry]; ok {
		t.Error("emotion without observations should be absent, not zero-filled")
	}
	if got.TotalCorrelations != len(input) {
		t.Errorf("TotalCorrelations = %d, want %d", got.TotalCorrelations, len(input))
	}
}

func TestAnalyze_FirstMatchWinsForDuplicateLinks(t *testing.T) {
	a1 := quizResult("a1", "u1", 8, 10, baseTime)
	got := Analyze([]models.Correlation{
		correlation("l1", a1, models.EmotionAnxious, models.ContextBefore),
		correlation("l2", a1, models.EmotionCalm, models.ContextBefore),
		correlation("l3", a1, models.EmotionHappy, models.ContextAfter),
		correlation("l4", a1, models.EmotionTired, models.ContextAfter),
	})

	if len(got.EmotionalShifts) != 1 {
		t.Fatalf("got %d shifts, want 1", len(got.EmotionalShifts))
	}
	if s := got.EmotionalShifts[0]; s.From != models.EmotionAnxious || s.To != models.EmotionHappy {
		t.Errorf("shift = %s->%s, want anxious->happy", s.From, s.To)
	}
	// grouping still counts every correlation
	if got.PerformanceByPreEmotion[models.EmotionCalm].Count != 1 {
		t.Error("duplicate before link missing from pre-emotion grouping")
	}
}

func TestAnalyze_ShiftsAveragedAndOrdered(t *testing.T) {
	var input []models.Correlation
	add := func(id string, act models.ActivityResult, from, to models.Emotion) {
		input = append(input,
			correlation(id+"b", act, from, models.ContextBefore),
			correlation(id+"a", act, to, models.ContextAfter),
		)
	}
	add("1", quizResult("a1", "u1", 6, 10, baseTime), models.EmotionSad, models.EmotionCalm)
	add("2", quizResult("a2", "u1", 8, 10, baseTime), models.EmotionSad, models.EmotionCalm)
	add("3", memoryResult("a3", "u1", 8, 16, baseTime), models.EmotionSad, models.EmotionCalm)
	add("4", quizResult("a4", "u1", 10, 10, baseTime), models.EmotionAngry, models.EmotionHappy)

	// only a before link: no shift
	input = append(input, correlation("5b", quizResult("a5", "u1", 1, 10, baseTime), models.EmotionTired, models.ContextBefore))

	got := Analyze(input)
	if len(got.EmotionalShifts) != 2 {
		t.Fatalf("got %d shifts, want 2", len(got.EmotionalShifts))
	}
	first := got.EmotionalShifts[0]
	if first.From != models.EmotionSad || first.Count != 3 {
		t.Errorf("first shift = %+v, want sad->calm x3", first)
	}
	if want := (60.0 + 80.0 + 100.0) / 3; first.AveragePerformanceChange != want {
		t.Errorf("sad->calm avg = %v, want %v", first.AveragePerformanceChange, want)
	}
	if first.ActivityType != models.ActivityTypeQuiz {
		t.Errorf("sad->calm activity type = %s, want quiz", first.ActivityType)
	}
}

func TestAnalyze_OptimalStates(t *testing.T) {
	var input []models.Correlation
	addN := func(e models.Emotion, n, correct int) {
		for i := 0; i < n; i++ {
			id := string(e) + string(rune('a'+i))
			input = append(input, correlation(id, quizResult(id, "u1", correct, 10, baseTime), e, models.ContextBefore))
		}
	}
	addN(models.EmotionCalm, 3, 9)
	addN(models.EmotionHappy, 4, 8)
	addN(models.EmotionExcited, 3, 8)
	addN(models.EmotionTired, 5, 4)
	addN(models.EmotionAngry, 2, 10) // below the sample threshold

	got := Analyze(input)

	want := []models.Emotion{models.EmotionCalm, models.EmotionHappy, models.EmotionExcited}
	if len(got.OptimalStates) != len(want) {
		t.Fatalf("got %d optimal states, want %d", len(got.OptimalStates), len(want))
	}
	for i, e := range want {
		if got.OptimalStates[i].Emotion != e {
			t.Errorf("optimal[%d] = %s, want %s", i, got.OptimalStates[i].Emotion, e)
		}
	}
}

func TestAnalyze_MatrixAndTimeSeries(t *testing.T) {
	late := quizResult("late", "u1", 10, 10, baseTime.Add(2*time.Hour))
	early := quizResult("early", "u1", 1, 10, baseTime)
	mid := quizResult("mid", "u1", 2, 10, baseTime.Add(time.Hour))

	got := Analyze([]models.Correlation{
		correlation("l1", late, models.EmotionHappy, models.ContextBefore),
		correlation("l2", early, models.EmotionHappy, models.ContextBefore),
		correlation("l3", mid, models.EmotionFrustrated, models.ContextBefore),
		correlation("l4", mid, models.EmotionCalm, models.ContextAfter),
	})

	happy := got.CorrelationMatrix[models.EmotionHappy.Index()]
	if happy.Buckets != [models.PerformanceBucketCount]int{1, 0, 0, 0, 1} {
		t.Errorf("happy buckets = %v, want [1 0 0 0 1]", happy.Buckets)
	}
	frustrated := got.CorrelationMatrix[models.EmotionFrustrated.Index()]
	if frustrated.Buckets != [models.PerformanceBucketCount]int{0, 1, 0, 0, 0} {
		t.Errorf("frustrated buckets = %v, want [0 1 0 0 0]", frustrated.Buckets)
	}
	if calm := got.CorrelationMatrix[models.EmotionCalm.Index()]; calm.Buckets != [models.PerformanceBucketCount]int{} {
		t.Errorf("after-context correlations must not reach the matrix, got %v", calm.Buckets)
	}

	if len(got.TimeSeries) != 3 {
		t.Fatalf("time series has %d points, want 3", len(got.TimeSeries))
	}
	for i := 1; i < len(got.TimeSeries); i++ {
		if got.TimeSeries[i].Timestamp.Before(got.TimeSeries[i-1].Timestamp) {
			t.Errorf("time series not ascending at %d", i)
		}
	}
	if got.TimeSeries[0].Performance != 10 {
		t.Errorf("first point performance = %v, want 10", got.TimeSeries[0].Performance)
	}
}

func TestPerformanceBucket(t *testing.T) {
	tests := map[float64]int{0: 0, 19: 0, 19.9: 0, 20: 1, 59: 2, 60: 3, 80: 4, 100: 4, -5: 0, 250: 4}
	for perf, want := range tests {
		if got := performanceBucket(perf); got != want {
			t.Errorf("performanceBucket(%v) = %d, want %d", perf, got, want)
		}
	}
}
