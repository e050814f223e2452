// handlers/health.go - Device metric sync and wellness recommendations
package handlers

import (
	"errors"
	"time"

	"goodruns/database"
	"goodruns/models"
	"goodruns/services"
	"goodruns/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthSyncRequest struct {
	DeviceType string `json:"device_type"`

	HeartRate      *int     `json:"heart_rate,omitempty"`
	Steps          *int     `json:"steps,omitempty"`
	ActiveCalories *int     `json:"active_calories,omitempty"`
	VO2Max         *float64 `json:"vo2_max,omitempty"`
	SleepHours     *float64 `json:"sleep_hours,omitempty"`
}

func (r HealthSyncRequest) metrics() models.HealthMetrics {
	return models.HealthMetrics{
		HeartRate:      r.HeartRate,
		Steps:          r.Steps,
		ActiveCalories: r.ActiveCalories,
		VO2Max:         r.VO2Max,
		SleepHours:     r.SleepHours,
	}
}

// SyncHealthData stores a metrics snapshot and returns the derived score,
// intensity and recommendations
// POST /api/healthkit/sync/{id}
func SyncHealthData(c *fiber.Ctx) error {
	userID, ok := utils.ParseUint(c.Params("id"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var req HealthSyncRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	sample := models.HealthSample{
		UserID:         userID,
		DeviceType:     req.DeviceType,
		HeartRate:      req.HeartRate,
		Steps:          req.Steps,
		ActiveCalories: req.ActiveCalories,
		VO2Max:         req.VO2Max,
		SleepHours:     req.SleepHours,
		RecordedAt:     time.Now(),
	}

	if err := db.Create(&sample).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to store health data"})
	}

	// Record the sync time on any connection for this device type.
	if req.DeviceType != "" {
		now := time.Now()
		db.Model(&models.WearableConnection{}).
			Where("user_id = ? AND device_type = ?", userID, req.DeviceType).
			Update("last_sync", now)
	}

	metrics := req.metrics()

	return c.JSON(fiber.Map{
		"success":         true,
		"health_score":    services.HealthScore(metrics),
		"training_plan":   services.BuildTrainingPlan(metrics),
		"recommendations": services.HealthRecommendations(metrics),
	})
}

// GetHealthRecommendations returns recommendations from the latest snapshot
// GET /api/healthkit/recommendations/{id}
func GetHealthRecommendations(c *fiber.Ctx) error {
	userID, ok := utils.ParseUint(c.Params("id"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	db := database.GetDB()
	sample, err := latestSample(db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{
				"success": true,
				"message": "No health data available yet. Sync your wearable first!",
				"recommendations": []string{
					"⌚ Connect your wearable to get started",
					"🏃 Go for a run to collect workout data",
					"😴 Wear your watch while sleeping for sleep insights",
				},
			})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch health data"})
	}

	metrics := sample.Metrics()

	return c.JSON(fiber.Map{
		"success":         true,
		"last_sync":       sample.RecordedAt,
		"health_score":    services.HealthScore(metrics),
		"training_plan":   services.BuildTrainingPlan(metrics),
		"recommendations": services.HealthRecommendations(metrics),
	})
}

// GetHealthStats returns the latest metrics with the derived score
// GET /api/healthkit/stats/{id}
func GetHealthStats(c *fiber.Ctx) error {
	userID, ok := utils.ParseUint(c.Params("id"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	db := database.GetDB()
	sample, err := latestSample(db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "No health data found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch health data"})
	}

	var sampleCount int64
	db.Model(&models.HealthSample{}).Where("user_id = ?", userID).Count(&sampleCount)

	metrics := sample.Metrics()

	return c.JSON(fiber.Map{
		"success":         true,
		"current_metrics": metrics,
		"health_score":    services.HealthScore(metrics),
		"intensity":       services.ClassifyIntensity(metrics),
		"samples_synced":  sampleCount,
		"recorded_at":     sample.RecordedAt,
	})
}

func latestSample(db *gorm.DB, userID uint) (models.HealthSample, error) {
	var sample models.HealthSample
	err := db.Where("user_id = ?", userID).
		Order("recorded_at DESC").
		First(&sample).Error
	return sample, err
}
