// handlers/bookings.go - Court booking endpoints (achievement fact source)
package handlers

import (
	"time"

	"goodruns/database"
	"goodruns/middleware"
	"goodruns/models"
	"goodruns/services"
	"goodruns/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	CourtID    uint      `json:"court_id"`
	TrainerID  *uint     `json:"trainer_id"`
	Date       time.Time `json:"date"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	TotalPrice float64   `json:"total_price"`
}

// CreateBooking records a booking and immediately re-evaluates the user's
// achievements, so a first booking surfaces its unlock in the same response.
func CreateBooking(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.CourtID == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "court_id is required"})
	}
	if req.EndTime.Before(req.StartTime) {
		return c.Status(400).JSON(fiber.Map{"error": "end_time must be after start_time"})
	}

	db := database.GetDB()

	var court models.Court
	if err := db.First(&court, req.CourtID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Court not found"})
	}
	if !court.Available {
		return c.Status(400).JSON(fiber.Map{"error": "Court is not available"})
	}

	booking := models.Booking{
		Reference:  uuid.New().String(),
		UserID:     userID,
		TrainerID:  req.TrainerID,
		CourtID:    req.CourtID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		TotalPrice: req.TotalPrice,
		Status:     "pending",
	}

	if err := db.Create(&booking).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create booking"})
	}

	newAchievements, err := services.CheckAchievements(db, userID)
	if err != nil {
		// Booking is already persisted; achievement evaluation is retried on
		// the next check call.
		newAchievements = nil
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"booking":          booking,
		"new_achievements": newAchievements,
	})
}

// GetBookings lists the authenticated user's bookings, newest first
func GetBookings(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	limit := utils.ClampInt(utils.ParseIntDefault(c.Query("limit"), 50), 1, 100)

	db := database.GetDB()
	var bookings []models.Booking
	if err := db.Preload("Court").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&bookings).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch bookings"})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"bookings": bookings,
		"count":    len(bookings),
	})
}
