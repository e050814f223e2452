// handlers/games.go - Game recording endpoints (achievement fact source)
package handlers

import (
	"goodruns/database"
	"goodruns/middleware"
	"goodruns/models"
	"goodruns/services"
	"goodruns/utils"

	"github.com/gofiber/fiber/v2"
)

type RecordGameRequest struct {
	CourtID         *uint  `json:"court_id"`
	Score           int    `json:"score"`
	DurationMinutes int    `json:"duration_minutes"`
	GameType        string `json:"game_type"`
}

// RecordGame persists a game result and re-evaluates achievements; a perfect
// score surfaces the perfect_game unlock in the same response.
func RecordGame(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req RecordGameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Score < 0 || req.Score > models.PerfectScore {
		return c.Status(400).JSON(fiber.Map{"error": "Score must be between 0 and 100"})
	}

	db := database.GetDB()

	game := models.Game{
		UserID:          userID,
		CourtID:         req.CourtID,
		Score:           req.Score,
		DurationMinutes: req.DurationMinutes,
		GameType:        req.GameType,
	}

	if err := db.Create(&game).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record game"})
	}

	newAchievements, err := services.CheckAchievements(db, userID)
	if err != nil {
		newAchievements = nil
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"game":             game,
		"is_perfect":       req.Score == models.PerfectScore,
		"new_achievements": newAchievements,
	})
}

// GetGameHistory lists the authenticated user's games, newest first
func GetGameHistory(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	limit := utils.ClampInt(utils.ParseIntDefault(c.Query("limit"), 50), 1, 100)

	db := database.GetDB()
	var games []models.Game
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&games).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch games"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"games":   games,
		"count":   len(games),
	})
}
