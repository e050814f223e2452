// models/achievement.go
package models

import "time"

// UserAchievement is one row in the unlock ledger: a user has satisfied the
// predicate of the achievement identified by AchievementKey. The composite
// unique index guarantees at most one unlock per (user, key) even under
// concurrent evaluation calls.
type UserAchievement struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	UserID         uint   `gorm:"not null;uniqueIndex:idx_user_achievement_key" json:"user_id"`
	AchievementKey string `gorm:"not null;size:50;uniqueIndex:idx_user_achievement_key" json:"achievement_key"`

	UnlockedAt     time.Time  `json:"unlocked_at"`
	Shared         bool       `gorm:"default:false" json:"shared"`
	SharedPlatform *string    `json:"shared_platform,omitempty"`
	SharedAt       *time.Time `json:"shared_at,omitempty"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
