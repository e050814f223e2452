// handlers/users.go
package handlers

import (
	"goodruns/database"
	"goodruns/middleware"
	"goodruns/models"
	"goodruns/utils"

	"github.com/gofiber/fiber/v2"
)

// GetCurrentUser returns the authenticated user's account
func GetCurrentUser(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    userInfo(user),
	})
}

// GetUserProfile returns a public profile by ID
func GetUserProfile(c *fiber.Ctx) error {
	id, ok := utils.ParseUint(c.Params("id"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user": fiber.Map{
			"id":           user.ID,
			"username":     user.Username,
			"display_name": user.DisplayName,
			"avatar":       user.Avatar,
			"is_trainer":   user.IsTrainer,
			"created_at":   user.CreatedAt,
		},
	})
}
