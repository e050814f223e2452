package services

import (
	"testing"

	"goodruns/models"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestHealthScoreEmptySnapshot(t *testing.T) {
	assert.Equal(t, 50, HealthScore(models.HealthMetrics{}))
}

func TestHealthScoreAllTopTier(t *testing.T) {
	m := models.HealthMetrics{
		HeartRate:  intPtr(55),
		Steps:      intPtr(10000),
		SleepHours: floatPtr(8),
		VO2Max:     floatPtr(50),
	}
	// 50 + 15 + 15 + 10 + 10, clamped at 100
	assert.Equal(t, 100, HealthScore(m))
}

func TestHealthScoreBreakpoints(t *testing.T) {
	tests := []struct {
		name string
		m    models.HealthMetrics
		want int
	}{
		{"resting heart rate", models.HealthMetrics{HeartRate: intPtr(59)}, 65},
		{"healthy heart rate", models.HealthMetrics{HeartRate: intPtr(74)}, 60},
		{"elevated heart rate", models.HealthMetrics{HeartRate: intPtr(99)}, 55},
		{"very high heart rate", models.HealthMetrics{HeartRate: intPtr(120)}, 50},
		{"mid steps", models.HealthMetrics{Steps: intPtr(7000)}, 60},
		{"low steps", models.HealthMetrics{Steps: intPtr(5000)}, 55},
		{"too few steps", models.HealthMetrics{Steps: intPtr(4999)}, 50},
		{"good sleep", models.HealthMetrics{SleepHours: floatPtr(7.5)}, 57},
		{"short sleep", models.HealthMetrics{SleepHours: floatPtr(6)}, 53},
		{"bad sleep", models.HealthMetrics{SleepHours: floatPtr(4)}, 50},
		{"decent vo2", models.HealthMetrics{VO2Max: floatPtr(40)}, 57},
		{"modest vo2", models.HealthMetrics{VO2Max: floatPtr(30)}, 53},
		{"calories alone do not score", models.HealthMetrics{ActiveCalories: intPtr(900)}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HealthScore(tt.m))
		})
	}
}

func TestHealthScoreDeterministic(t *testing.T) {
	m := models.HealthMetrics{HeartRate: intPtr(62), Steps: intPtr(8000), SleepHours: floatPtr(7)}
	first := HealthScore(m)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, HealthScore(m))
	}
}

func TestClassifyIntensity(t *testing.T) {
	tests := []struct {
		name string
		m    models.HealthMetrics
		want TrainingIntensity
	}{
		{"well recovered", models.HealthMetrics{SleepHours: floatPtr(8), HeartRate: intPtr(55)}, IntensityHigh},
		{"ok recovery", models.HealthMetrics{SleepHours: floatPtr(7.5), HeartRate: intPtr(70)}, IntensityModerate},
		{"poor recovery", models.HealthMetrics{SleepHours: floatPtr(6), HeartRate: intPtr(80)}, IntensityLow},
		{"good sleep high hr", models.HealthMetrics{SleepHours: floatPtr(8), HeartRate: intPtr(80)}, IntensityLow},
		{"low hr short sleep", models.HealthMetrics{SleepHours: floatPtr(5), HeartRate: intPtr(50)}, IntensityLow},
		{"defaults when absent", models.HealthMetrics{}, IntensityLow},
		{"default heart rate counts as moderate", models.HealthMetrics{SleepHours: floatPtr(7)}, IntensityModerate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIntensity(tt.m))
		})
	}
}

func TestSuggestedActivitiesPerIntensity(t *testing.T) {
	for _, intensity := range []TrainingIntensity{IntensityHigh, IntensityModerate, IntensityLow} {
		assert.Len(t, SuggestedActivities(intensity), 3)
	}
}

func TestBuildTrainingPlan(t *testing.T) {
	plan := BuildTrainingPlan(models.HealthMetrics{SleepHours: floatPtr(8), HeartRate: intPtr(55)})
	assert.Equal(t, IntensityHigh, plan.RecommendedIntensity)
	assert.NotEmpty(t, plan.Message)
	assert.Len(t, plan.SuggestedActivities, 3)
}

func TestHealthRecommendationsOnlyPresentMetrics(t *testing.T) {
	recs := HealthRecommendations(models.HealthMetrics{Steps: intPtr(10000)})
	assert.Len(t, recs, 1)
	assert.Contains(t, recs[0], "steps")

	recs = HealthRecommendations(models.HealthMetrics{})
	assert.Len(t, recs, 1) // fallback nudge
}
