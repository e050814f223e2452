// services/health.go - Deterministic wellness scoring over synced device metrics
package services

import (
	"fmt"

	"goodruns/models"
)

// TrainingIntensity is the three-valued training recommendation.
type TrainingIntensity string

const (
	IntensityHigh     TrainingIntensity = "High"
	IntensityModerate TrainingIntensity = "Moderate"
	IntensityLow      TrainingIntensity = "Low"
)

const baseHealthScore = 50

// HealthScore maps a metrics snapshot to a score in [0,100]. The same
// snapshot always yields the same score; absent metrics contribute nothing.
func HealthScore(m models.HealthMetrics) int {
	score := baseHealthScore

	if m.HeartRate != nil {
		switch hr := *m.HeartRate; {
		case hr < 60:
			score += 15
		case hr < 75:
			score += 10
		case hr < 100:
			score += 5
		}
	}

	if m.Steps != nil {
		switch steps := *m.Steps; {
		case steps >= 10000:
			score += 15
		case steps >= 7000:
			score += 10
		case steps >= 5000:
			score += 5
		}
	}

	if m.SleepHours != nil {
		switch sleep := *m.SleepHours; {
		case sleep >= 8:
			score += 10
		case sleep >= 7:
			score += 7
		case sleep >= 6:
			score += 3
		}
	}

	if m.VO2Max != nil {
		switch vo2 := *m.VO2Max; {
		case vo2 >= 50:
			score += 10
		case vo2 >= 40:
			score += 7
		case vo2 >= 30:
			score += 3
		}
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// ClassifyIntensity derives the recommended training intensity from the
// recovery metrics. Absent sleep defaults to 0 hours and absent heart rate
// to 70 bpm, so the function is total: every snapshot maps to exactly one
// class. Note the thresholds here are not the scoring breakpoints above.
func ClassifyIntensity(m models.HealthMetrics) TrainingIntensity {
	sleep := 0.0
	if m.SleepHours != nil {
		sleep = *m.SleepHours
	}
	heartRate := 70
	if m.HeartRate != nil {
		heartRate = *m.HeartRate
	}

	switch {
	case sleep >= 8 && heartRate < 60:
		return IntensityHigh
	case sleep >= 7 && heartRate < 75:
		return IntensityModerate
	default:
		return IntensityLow
	}
}

// SuggestedActivities returns activity ideas for an intensity level.
func SuggestedActivities(intensity TrainingIntensity) []string {
	switch intensity {
	case IntensityHigh:
		return []string{
			"🏀 Intense basketball scrimmage",
			"🏃 HIIT training session",
			"💪 Strength & power workout",
		}
	case IntensityModerate:
		return []string{
			"🏀 Moderate basketball practice",
			"🏃 Steady-state cardio",
			"🎯 Skill development drills",
		}
	default:
		return []string{
			"🏀 Light shooting practice",
			"🧘 Yoga & stretching",
			"🚶 Active recovery walk",
		}
	}
}

// TrainingPlan is the recommendation bundle returned on every metric sync.
type TrainingPlan struct {
	RecommendedIntensity TrainingIntensity `json:"recommended_intensity"`
	Message              string            `json:"message"`
	SuggestedActivities  []string          `json:"suggested_activities"`
	OptimalTrainingTime  string            `json:"optimal_training_time"`
	Duration             string            `json:"duration"`
}

// BuildTrainingPlan classifies the snapshot and wraps the result with the
// caller-facing messaging.
func BuildTrainingPlan(m models.HealthMetrics) TrainingPlan {
	intensity := ClassifyIntensity(m)

	var message string
	switch intensity {
	case IntensityHigh:
		message = "Your body is well-recovered. Great day for intense training!"
	case IntensityModerate:
		message = "Good recovery. Stick to your normal training intensity."
	default:
		message = "Consider active recovery today. Your body needs rest."
	}

	return TrainingPlan{
		RecommendedIntensity: intensity,
		Message:              message,
		SuggestedActivities:  SuggestedActivities(intensity),
		OptimalTrainingTime:  "4:00 PM - 7:00 PM",
		Duration:             "45-60 minutes",
	}
}

// HealthRecommendations produces per-metric coaching messages. Only present
// metrics generate a message.
func HealthRecommendations(m models.HealthMetrics) []string {
	recommendations := []string{}

	if m.HeartRate != nil {
		switch hr := *m.HeartRate; {
		case hr < 60:
			recommendations = append(recommendations, "💓 Your resting heart rate is excellent! You're in great cardiovascular shape.")
		case hr < 100:
			recommendations = append(recommendations, "💓 Your heart rate is in a healthy range. Keep up the good work!")
		default:
			recommendations = append(recommendations, "💓 Your heart rate is elevated. Consider some relaxation techniques.")
		}
	}

	if m.Steps != nil {
		switch steps := *m.Steps; {
		case steps >= 10000:
			recommendations = append(recommendations, fmt.Sprintf("🚶 Amazing! You've hit %d steps today. You're crushing your goals!", steps))
		case steps >= 7000:
			recommendations = append(recommendations, fmt.Sprintf("🚶 Great job! %d steps and counting. Almost at 10K!", steps))
		default:
			recommendations = append(recommendations, fmt.Sprintf("🚶 You're at %d steps. Try to hit 10,000 for optimal health!", steps))
		}
	}

	if m.SleepHours != nil {
		switch sleep := *m.SleepHours; {
		case sleep >= 8:
			recommendations = append(recommendations, fmt.Sprintf("😴 Excellent sleep! %.1f hours is perfect for recovery.", sleep))
		case sleep >= 7:
			recommendations = append(recommendations, fmt.Sprintf("😴 Good sleep at %.1f hours. Aim for 8+ for peak performance.", sleep))
		default:
			recommendations = append(recommendations, fmt.Sprintf("😴 Only %.1f hours of sleep. Try to get more rest tonight!", sleep))
		}
	}

	if m.VO2Max != nil {
		switch vo2 := *m.VO2Max; {
		case vo2 >= 50:
			recommendations = append(recommendations, fmt.Sprintf("💨 Outstanding VO2 Max of %.1f! You're in elite cardio shape.", vo2))
		case vo2 >= 40:
			recommendations = append(recommendations, fmt.Sprintf("💨 Good VO2 Max at %.1f. You're above average!", vo2))
		default:
			recommendations = append(recommendations, fmt.Sprintf("💨 VO2 Max is %.1f. Focus on cardio to improve.", vo2))
		}
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "🎯 Keep syncing your wearable to get personalized insights!")
	}

	return recommendations
}
