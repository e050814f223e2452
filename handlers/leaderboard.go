// handlers/leaderboard.go - Achievement points leaderboard
package handlers

import (
	"errors"

	"goodruns/database"
	"goodruns/services"
	"goodruns/utils"

	"github.com/gofiber/fiber/v2"
)

// GetLeaderboard returns the top users by total unlocked achievement points
// GET /api/achievements/leaderboard?limit=10
func GetLeaderboard(c *fiber.Ctx) error {
	limit := utils.ClampInt(utils.ParseIntDefault(c.Query("limit"), 10), 1, 100)

	db := database.GetDB()
	entries, err := services.TopUsers(db, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch leaderboard"})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"leaderboard": entries,
		"limit":       limit,
	})
}

// GetUserRank returns a single user's leaderboard position
// GET /api/leaderboard/user/{id}
func GetUserRank(c *fiber.Ctx) error {
	userID, ok := utils.ParseUint(c.Params("id"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	db := database.GetDB()
	entry, err := services.UserRank(db, userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compute rank"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"entry":   entry,
	})
}
