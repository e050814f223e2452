// handlers/achievements.go - Achievement unlock and viral sharing endpoints
package handlers

import (
	"errors"

	"goodruns/database"
	"goodruns/services"
	"goodruns/utils"

	"github.com/gofiber/fiber/v2"
)

type ShareRequest struct {
	Platform string `json:"platform"`
}

// GetUserAchievements returns a user's unlocked achievements enriched with
// catalog data, oldest unlock first
func GetUserAchievements(c *fiber.Ctx) error {
	userID, ok := utils.ParseUint(c.Params("id"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	db := database.GetDB()
	unlocks, err := services.ListUnlocks(db, userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	achievements := make([]fiber.Map, 0, len(unlocks))
	for _, unlock := range unlocks {
		def, ok := services.LookupAchievement(unlock.AchievementKey)
		if !ok {
			// Retired catalog entry; the ledger row stays but is not shown.
			continue
		}
		achievements = append(achievements, fiber.Map{
			"id":          unlock.ID,
			"key":         def.Key,
			"name":        def.Name,
			"description": def.Description,
			"points":      def.Points,
			"icon":        def.Icon,
			"unlocked_at": unlock.UnlockedAt,
			"shared":      unlock.Shared,
		})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": achievements,
		"count":        len(achievements),
	})
}

// CheckAchievements evaluates and unlocks new achievements for a user
func CheckAchievements(c *fiber.Ctx) error {
	userID, ok := utils.ParseUint(c.Params("id"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	db := database.GetDB()
	newAchievements, err := services.CheckAchievements(db, userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to check achievements"})
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"new_achievements": newAchievements,
		"count":            len(newAchievements),
	})
}

// ShareAchievement marks an unlocked achievement as shared on a platform and
// returns the viral share copy
func ShareAchievement(c *fiber.Ctx) error {
	userID, ok := utils.ParseUint(c.Params("id"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}
	key := c.Params("key")

	platform := c.Query("platform")
	if platform == "" {
		var req ShareRequest
		if err := c.BodyParser(&req); err == nil {
			platform = req.Platform
		}
	}
	if platform == "" {
		return c.Status(400).JSON(fiber.Map{"error": "platform is required"})
	}

	db := database.GetDB()
	result, err := services.ShareAchievement(db, userID, key, platform)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownAchievement):
			return c.Status(400).JSON(fiber.Map{"error": "Unknown achievement key"})
		case errors.Is(err, services.ErrUnlockNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "Achievement not found"})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to share achievement"})
		}
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"viral_text":     result.ViralText,
		"points_awarded": result.BonusPoints,
	})
}

// GetCatalog returns every achievement definition
func GetCatalog(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": services.AchievementCatalog(),
	})
}
