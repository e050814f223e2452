package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"goodruns/database"
	"goodruns/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Court{},
		&models.Booking{},
		&models.Game{},
		&models.UserAchievement{},
		&models.HealthSample{},
		&models.WearableConnection{},
	))
	database.SetDB(db)

	app := fiber.New()
	api := app.Group("/api")
	api.Get("/achievements/user/:id", GetUserAchievements)
	api.Post("/achievements/check/:id", CheckAchievements)
	api.Post("/achievements/share/:id/:key", ShareAchievement)
	api.Get("/achievements/leaderboard", GetLeaderboard)
	api.Post("/healthkit/sync/:id", SyncHealthData)
	api.Get("/healthkit/stats/:id", GetHealthStats)
	return app, db
}

func decodeBody(t *testing.T, resp io.Reader) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp).Decode(&body))
	return body
}

func TestCheckAchievementsEndpoint(t *testing.T) {
	app, db := setupTestApp(t)

	user := models.User{Username: "hooper", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	court := models.Court{Name: "Venice Beach", Address: "Ocean Front Walk", PricePerHour: 15, Available: true}
	require.NoError(t, db.Create(&court).Error)
	booking := models.Booking{
		UserID: user.ID, CourtID: court.ID,
		Date: time.Now(), StartTime: time.Now(), EndTime: time.Now().Add(time.Hour),
		TotalPrice: 15, Status: "confirmed",
	}
	require.NoError(t, db.Create(&booking).Error)

	req := httptest.NewRequest("POST", fmt.Sprintf("/api/achievements/check/%d", user.ID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, float64(1), body["count"])
	unlocked := body["new_achievements"].([]any)
	first := unlocked[0].(map[string]any)
	assert.Equal(t, "first_booking", first["key"])
	assert.Equal(t, float64(50), first["points"])

	// Second check is a no-op.
	req = httptest.NewRequest("POST", fmt.Sprintf("/api/achievements/check/%d", user.ID), nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	body = decodeBody(t, resp.Body)
	assert.Equal(t, float64(0), body["count"])
}

func TestCheckAchievementsUnknownUser(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("POST", "/api/achievements/check/999", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestShareEndpoint(t *testing.T) {
	app, db := setupTestApp(t)

	user := models.User{Username: "sharer", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	record := models.UserAchievement{UserID: user.ID, AchievementKey: "perfect_game", UnlockedAt: time.Now()}
	require.NoError(t, db.Create(&record).Error)

	url := fmt.Sprintf("/api/achievements/share/%d/perfect_game?platform=instagram", user.ID)
	resp, err := app.Test(httptest.NewRequest("POST", url, nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, "Just had a perfect game! 🎯", body["viral_text"])
	assert.Equal(t, float64(5), body["points_awarded"])

	// Not unlocked yet -> 404.
	url = fmt.Sprintf("/api/achievements/share/%d/first_booking?platform=instagram", user.ID)
	resp, err = app.Test(httptest.NewRequest("POST", url, nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestShareRequiresPlatform(t *testing.T) {
	app, db := setupTestApp(t)

	user := models.User{Username: "quiet", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	url := fmt.Sprintf("/api/achievements/share/%d/perfect_game", user.ID)
	resp, err := app.Test(httptest.NewRequest("POST", url, nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestUserAchievementsEndpoint(t *testing.T) {
	app, db := setupTestApp(t)

	user := models.User{Username: "lister", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	record := models.UserAchievement{UserID: user.ID, AchievementKey: "seven_day_streak", UnlockedAt: time.Now()}
	require.NoError(t, db.Create(&record).Error)

	resp, err := app.Test(httptest.NewRequest("GET", fmt.Sprintf("/api/achievements/user/%d", user.ID), nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	achievements := body["achievements"].([]any)
	require.Len(t, achievements, 1)
	entry := achievements[0].(map[string]any)
	assert.Equal(t, "Consistency King", entry["name"])
	assert.Equal(t, false, entry["shared"])
}

func TestLeaderboardEndpoint(t *testing.T) {
	app, db := setupTestApp(t)

	alice := models.User{Username: "alice", Password: "x"}
	bob := models.User{Username: "bob", Password: "x"}
	require.NoError(t, db.Create(&alice).Error)
	require.NoError(t, db.Create(&bob).Error)
	for _, key := range []string{"perfect_game", "seven_day_streak"} {
		record := models.UserAchievement{UserID: alice.ID, AchievementKey: key, UnlockedAt: time.Now()}
		require.NoError(t, db.Create(&record).Error)
	}
	record := models.UserAchievement{UserID: bob.ID, AchievementKey: "first_booking", UnlockedAt: time.Now()}
	require.NoError(t, db.Create(&record).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/achievements/leaderboard?limit=2", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	leaderboard := body["leaderboard"].([]any)
	require.Len(t, leaderboard, 2)
	top := leaderboard[0].(map[string]any)
	assert.Equal(t, "alice", top["username"])
	assert.Equal(t, float64(250), top["total_points"])
}

func TestHealthSyncEndpoint(t *testing.T) {
	app, db := setupTestApp(t)

	user := models.User{Username: "runner", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	payload := `{"device_type":"apple_watch","heart_rate":55,"steps":10000,"sleep_hours":8,"vo2_max":50}`
	req := httptest.NewRequest("POST", fmt.Sprintf("/api/healthkit/sync/%d", user.ID), strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, float64(100), body["health_score"])
	plan := body["training_plan"].(map[string]any)
	assert.Equal(t, "High", plan["recommended_intensity"])

	var count int64
	db.Model(&models.HealthSample{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	// Stats endpoint reads the stored snapshot back.
	resp, err = app.Test(httptest.NewRequest("GET", fmt.Sprintf("/api/healthkit/stats/%d", user.ID), nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	body = decodeBody(t, resp.Body)
	assert.Equal(t, float64(100), body["health_score"])
	assert.Equal(t, "High", body["intensity"])
}
