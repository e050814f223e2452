// services/achievements.go - Achievement catalog, unlock evaluation and share tracking
package services

import (
	"errors"
	"time"

	"goodruns/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUnlockNotFound     = errors.New("achievement not unlocked")
	ErrUnknownAchievement = errors.New("unknown achievement")
)

// ShareBonusPoints is awarded the first time an unlock is shared.
const ShareBonusPoints = 5

// AchievementDefinition is one immutable catalog entry.
type AchievementDefinition struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	Icon        string `json:"icon"`
	ViralText   string `json:"viral_text"`
	Reward      string `json:"reward,omitempty"`
}

// ActivityFacts is the per-evaluation snapshot of a user's activity. It is
// computed from the booking/game collaborators and never persisted.
type ActivityFacts struct {
	TotalBookings   int64
	RecentBookings  int64 // bookings created within the last 7 days
	PerfectGames    int64
	SharedUnlocks   int64
	QuickCourtFinds int64 // reported by the court-search subsystem
}

// recentBookingWindow is the streak lookback used by seven_day_streak.
const recentBookingWindow = 7 * 24 * time.Hour

type catalogEntry struct {
	Definition AchievementDefinition
	Unlocks    func(ActivityFacts) bool
}

// catalog registers every achievement together with its unlock predicate so
// the definition and the evaluator cannot drift independently.
var catalog = []catalogEntry{
	{
		Definition: AchievementDefinition{
			Key:         "first_booking",
			Name:        "First Steps",
			Description: "Booked your first training session",
			Points:      50,
			Icon:        "🏆",
			ViralText:   "I just booked my first run via GIA! 🚀",
		},
		Unlocks: func(f ActivityFacts) bool { return f.TotalBookings >= 1 },
	},
	{
		Definition: AchievementDefinition{
			Key:         "seven_day_streak",
			Name:        "Consistency King",
			Description: "7-day training streak",
			Points:      100,
			Icon:        "🔥",
			ViralText:   "My 7-day streak unlocked a free session! 🔥",
			Reward:      "Free Training Session",
		},
		Unlocks: func(f ActivityFacts) bool { return f.RecentBookings >= 7 },
	},
	{
		Definition: AchievementDefinition{
			Key:         "quick_court_find",
			Name:        "Court Master",
			Description: "Found a court in under 30 seconds",
			Points:      75,
			Icon:        "⚡",
			ViralText:   "GIA found me a court in 30 seconds! ⚡",
		},
		Unlocks: func(f ActivityFacts) bool { return f.QuickCourtFinds >= 1 },
	},
	{
		Definition: AchievementDefinition{
			Key:         "perfect_game",
			Name:        "Perfect Performance",
			Description: "Achieved a perfect game score",
			Points:      150,
			Icon:        "🎯",
			ViralText:   "Just had a perfect game! 🎯",
		},
		Unlocks: func(f ActivityFacts) bool { return f.PerfectGames >= 1 },
	},
	{
		Definition: AchievementDefinition{
			Key:         "social_sharer",
			Name:        "Social Butterfly",
			Description: "Shared 5 achievements",
			Points:      25,
			Icon:        "📱",
			ViralText:   "Leveling up my game with GoodRuns! 📱",
		},
		Unlocks: func(f ActivityFacts) bool { return f.SharedUnlocks >= 5 },
	},
}

var catalogByKey = buildCatalogIndex()

func buildCatalogIndex() map[string]AchievementDefinition {
	m := make(map[string]AchievementDefinition, len(catalog))
	for _, entry := range catalog {
		m[entry.Definition.Key] = entry.Definition
	}
	return m
}

// LookupAchievement returns the catalog definition for a key.
func LookupAchievement(key string) (AchievementDefinition, bool) {
	def, ok := catalogByKey[key]
	return def, ok
}

// AchievementCatalog returns all definitions in registration order.
func AchievementCatalog() []AchievementDefinition {
	defs := make([]AchievementDefinition, 0, len(catalog))
	for _, entry := range catalog {
		defs = append(defs, entry.Definition)
	}
	return defs
}

// LoadActivityFacts computes the fact snapshot for one user from the booking
// and game collaborators plus the user's own share history.
func LoadActivityFacts(db *gorm.DB, userID uint) (ActivityFacts, error) {
	var facts ActivityFacts

	if err := db.Model(&models.Booking{}).
		Where("user_id = ?", userID).
		Count(&facts.TotalBookings).Error; err != nil {
		return facts, err
	}

	cutoff := time.Now().Add(-recentBookingWindow)
	if err := db.Model(&models.Booking{}).
		Where("user_id = ? AND created_at >= ?", userID, cutoff).
		Count(&facts.RecentBookings).Error; err != nil {
		return facts, err
	}

	if err := db.Model(&models.Game{}).
		Where("user_id = ? AND score = ?", userID, models.PerfectScore).
		Count(&facts.PerfectGames).Error; err != nil {
		return facts, err
	}

	if err := db.Model(&models.UserAchievement{}).
		Where("user_id = ? AND shared = ?", userID, true).
		Count(&facts.SharedUnlocks).Error; err != nil {
		return facts, err
	}

	// QuickCourtFinds is owned by the court-search subsystem and stays zero
	// until that subsystem reports it.
	return facts, nil
}

// EvaluateUnlocks runs every catalog predicate against the supplied facts and
// records the unlocks the user newly qualifies for. Repeated calls with the
// same qualifying facts are no-ops: existing ledger rows are skipped, and a
// duplicate-key error from a concurrent call is treated as already unlocked.
// Each row is inserted independently, so a partial failure never corrupts
// rows already written.
func EvaluateUnlocks(db *gorm.DB, userID uint, facts ActivityFacts) ([]AchievementDefinition, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var unlockedKeys []string
	if err := db.Model(&models.UserAchievement{}).
		Where("user_id = ?", userID).
		Pluck("achievement_key", &unlockedKeys).Error; err != nil {
		return nil, err
	}

	have := make(map[string]bool, len(unlockedKeys))
	for _, key := range unlockedKeys {
		have[key] = true
	}

	newlyUnlocked := []AchievementDefinition{}
	for _, entry := range catalog {
		key := entry.Definition.Key
		if have[key] || !entry.Unlocks(facts) {
			continue
		}

		record := models.UserAchievement{
			UserID:         userID,
			AchievementKey: key,
			UnlockedAt:     time.Now(),
		}
		if err := db.Create(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// A concurrent evaluation won the race; not an error.
				continue
			}
			return newlyUnlocked, err
		}
		newlyUnlocked = append(newlyUnlocked, entry.Definition)
	}

	return newlyUnlocked, nil
}

// CheckAchievements loads the user's facts and evaluates all unlocks in one
// call. This is the entry point the booking/game handlers use.
func CheckAchievements(db *gorm.DB, userID uint) ([]AchievementDefinition, error) {
	facts, err := LoadActivityFacts(db, userID)
	if err != nil {
		return nil, err
	}
	return EvaluateUnlocks(db, userID, facts)
}

// ListUnlocks returns a user's unlock ledger ordered by unlock time.
func ListUnlocks(db *gorm.DB, userID uint) ([]models.UserAchievement, error) {
	var unlocks []models.UserAchievement
	if err := db.Where("user_id = ?", userID).
		Order("unlocked_at ASC").
		Find(&unlocks).Error; err != nil {
		return nil, err
	}
	return unlocks, nil
}

// ShareResult is returned to the caller so it can immediately surface the
// share copy and apply bonus points.
type ShareResult struct {
	ViralText   string                 `json:"viral_text"`
	BonusPoints int                    `json:"bonus_points"`
	Record      models.UserAchievement `json:"record"`
}

// ShareAchievement marks an unlocked achievement as shared to a platform.
// Sharing is idempotent: a repeat call re-sets the same fields but the bonus
// is granted only on the first share.
func ShareAchievement(db *gorm.DB, userID uint, key, platform string) (*ShareResult, error) {
	def, ok := LookupAchievement(key)
	if !ok {
		return nil, ErrUnknownAchievement
	}

	var record models.UserAchievement
	if err := db.Where("user_id = ? AND achievement_key = ?", userID, key).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnlockNotFound
		}
		return nil, err
	}

	bonus := 0
	if !record.Shared {
		bonus = ShareBonusPoints
	}

	now := time.Now()
	record.Shared = true
	record.SharedPlatform = &platform
	record.SharedAt = &now

	if err := db.Save(&record).Error; err != nil {
		return nil, err
	}

	return &ShareResult{
		ViralText:   def.ViralText,
		BonusPoints: bonus,
		Record:      record,
	}, nil
}
