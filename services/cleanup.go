// services/cleanup.go - Background cleanup of stale guest accounts
package services

import (
	"log"
	"os"
	"strconv"
	"time"

	"goodruns/database"
	"goodruns/models"
)

// CleanupService handles background cleanup tasks
type CleanupService struct {
	interval time.Duration
	maxAge   time.Duration
	stop     chan struct{}
}

var cleanupService *CleanupService

// InitCleanupService initializes and starts the singleton cleanup service.
// Disabled when GUEST_CLEANUP_ENABLED=false.
func InitCleanupService() {
	if v := os.Getenv("GUEST_CLEANUP_ENABLED"); v == "false" || v == "0" {
		log.Println("Guest cleanup disabled")
		return
	}

	maxAgeDays := 30
	if v := os.Getenv("GUEST_CLEANUP_MAX_AGE_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxAgeDays = n
		}
	}

	cleanupService = &CleanupService{
		interval: 24 * time.Hour,
		maxAge:   time.Duration(maxAgeDays) * 24 * time.Hour,
		stop:     make(chan struct{}),
	}
	cleanupService.Start()
}

// GetCleanupService returns the initialized cleanup service, nil if disabled.
func GetCleanupService() *CleanupService {
	return cleanupService
}

// Start launches the cleanup worker.
func (s *CleanupService) Start() {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.CleanupStaleGuests(); err != nil {
					log.Printf("Guest cleanup failed: %v", err)
				}
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop stops the cleanup worker.
func (s *CleanupService) Stop() {
	close(s.stop)
}

// CleanupStaleGuests removes guest accounts with no activity inside the
// retention window, along with their bookings, games, unlocks and metrics.
func (s *CleanupService) CleanupStaleGuests() error {
	db := database.GetDB()
	cutoff := time.Now().Add(-s.maxAge)

	var stale []models.User
	if err := db.Where("is_guest = ? AND last_activity < ?", true, cutoff).
		Find(&stale).Error; err != nil {
		return err
	}

	if len(stale) == 0 {
		return nil
	}

	ids := make([]uint, len(stale))
	for i, user := range stale {
		ids[i] = user.ID
	}

	tx := db.Begin()
	for _, model := range []interface{}{
		&models.Booking{},
		&models.Game{},
		&models.UserAchievement{},
		&models.HealthSample{},
		&models.WearableConnection{},
	} {
		if err := tx.Where("user_id IN ?", ids).Delete(model).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Delete(&models.User{}, ids).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}

	log.Printf("Cleaned up %d stale guest accounts", len(stale))
	return nil
}
