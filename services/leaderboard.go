// services/leaderboard.go - Points leaderboard derived from the unlock ledger
package services

import (
	"errors"
	"sort"

	"goodruns/models"

	"gorm.io/gorm"
)

// LeaderboardEntry is one ranked row: a user's total catalog points across
// all unlocked achievements.
type LeaderboardEntry struct {
	Rank              int    `json:"rank"`
	UserID            uint   `json:"user_id"`
	Username          string `json:"username"`
	TotalPoints       int    `json:"total_points"`
	AchievementsCount int    `json:"achievements_count"`
}

// TopUsers ranks users by total unlocked points, descending. Points come from
// the in-process catalog, not the ledger rows, so retired keys simply stop
// counting. Ties order by ascending user ID for a stable, deterministic view.
func TopUsers(db *gorm.DB, limit int) ([]LeaderboardEntry, error) {
	entries, err := aggregateLedger(db)
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// UserRank returns the leaderboard entry for one user. A user with no unlocks
// ranks after every user that has any.
func UserRank(db *gorm.DB, userID uint) (LeaderboardEntry, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaderboardEntry{}, ErrUserNotFound
		}
		return LeaderboardEntry{}, err
	}

	entries, err := aggregateLedger(db)
	if err != nil {
		return LeaderboardEntry{}, err
	}

	for _, entry := range entries {
		if entry.UserID == userID {
			return entry, nil
		}
	}

	return LeaderboardEntry{
		Rank:     len(entries) + 1,
		UserID:   user.ID,
		Username: user.Username,
	}, nil
}

func aggregateLedger(db *gorm.DB) ([]LeaderboardEntry, error) {
	type ledgerRow struct {
		UserID         uint
		Username       string
		AchievementKey string
	}

	var rows []ledgerRow
	if err := db.Table("user_achievements").
		Select("user_achievements.user_id, users.username, user_achievements.achievement_key").
		Joins("JOIN users ON users.id = user_achievements.user_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make(map[uint]*LeaderboardEntry)
	for _, row := range rows {
		entry, ok := totals[row.UserID]
		if !ok {
			entry = &LeaderboardEntry{UserID: row.UserID, Username: row.Username}
			totals[row.UserID] = entry
		}
		entry.AchievementsCount++
		if def, ok := LookupAchievement(row.AchievementKey); ok {
			entry.TotalPoints += def.Points
		}
	}

	entries := make([]LeaderboardEntry, 0, len(totals))
	for _, entry := range totals {
		entries = append(entries, *entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].UserID < entries[j].UserID
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
