// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"goodruns/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Court{},
		&models.Booking{},
		&models.Game{},
		&models.UserAchievement{},
		&models.HealthSample{},
		&models.WearableConnection{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("All migrations completed successfully")
}

// createIndexes creates indexes beyond what the model tags declare
func createIndexes() {
	db := GetDB()

	// User indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_guest ON users(is_guest)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_last_activity ON users(last_activity)")

	// Booking indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_bookings_user_created ON bookings(user_id, created_at DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status)")

	// Game indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_games_user_score ON games(user_id, score)")

	// Unlock ledger: the composite unique index is the concurrency guard for
	// the evaluator's check-then-insert sequence.
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_user_achievement_key ON user_achievements(user_id, achievement_key)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_achievements_shared ON user_achievements(user_id, shared)")

	// Health sample indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_health_samples_user_recorded ON health_samples(user_id, recorded_at DESC)")
}
