// handlers/wearables.go - Wearable device connection management
package handlers

import (
	"time"

	"goodruns/database"
	"goodruns/models"
	"goodruns/utils"

	"github.com/gofiber/fiber/v2"
)

var supportedDevices = map[string]bool{
	"apple_watch": true,
	"whoop":       true,
	"fitbit":      true,
	"garmin":      true,
}

type ConnectWearableRequest struct {
	DeviceType string `json:"device_type"`
	AuthToken  string `json:"auth_token"`
}

// ConnectWearable registers a wearable device for a user. Talking to the
// vendor API is the transport layer's job; only the connection record lives
// here.
// POST /api/wearables/connect/{id}
func ConnectWearable(c *fiber.Ctx) error {
	userID, ok := utils.ParseUint(c.Params("id"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var req ConnectWearableRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if !supportedDevices[req.DeviceType] {
		return c.Status(400).JSON(fiber.Map{
			"error": "Unsupported device type. Supported: apple_watch, whoop, fitbit, garmin",
		})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	connection := models.WearableConnection{
		UserID:      userID,
		DeviceType:  req.DeviceType,
		AuthToken:   req.AuthToken,
		Status:      "connected",
		ConnectedAt: time.Now(),
	}

	if err := db.Create(&connection).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save connection"})
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"device_type":       connection.DeviceType,
		"connection_status": connection.Status,
		"connected_at":      connection.ConnectedAt,
	})
}

// GetWearables lists a user's device connections
// GET /api/wearables/{id}
func GetWearables(c *fiber.Ctx) error {
	userID, ok := utils.ParseUint(c.Params("id"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	db := database.GetDB()
	var connections []models.WearableConnection
	if err := db.Where("user_id = ?", userID).Find(&connections).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch connections"})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"connections": connections,
		"count":       len(connections),
	})
}

// DisconnectWearable marks a device connection as disconnected
// DELETE /api/wearables/{id}/{deviceType}
func DisconnectWearable(c *fiber.Ctx) error {
	userID, ok := utils.ParseUint(c.Params("id"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}
	deviceType := c.Params("deviceType")

	db := database.GetDB()
	result := db.Model(&models.WearableConnection{}).
		Where("user_id = ? AND device_type = ? AND status = ?", userID, deviceType, "connected").
		Update("status", "disconnected")

	if result.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to disconnect device"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "No connected device of this type"})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"device_type": deviceType,
		"status":      "disconnected",
	})
}
