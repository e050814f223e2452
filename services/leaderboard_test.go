package services

import (
	"testing"
	"time"

	"goodruns/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func unlock(t *testing.T, db *gorm.DB, userID uint, keys ...string) {
	t.Helper()
	for _, key := range keys {
		record := models.UserAchievement{UserID: userID, AchievementKey: key, UnlockedAt: time.Now()}
		require.NoError(t, db.Create(&record).Error)
	}
}

func TestTopUsersRankedByPoints(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	// alice: 150 + 100 + 50 = 300, bob: 50 + 75 = 125
	unlock(t, db, alice.ID, "perfect_game", "seven_day_streak", "first_booking")
	unlock(t, db, bob.ID, "first_booking", "quick_court_find")

	entries, err := TopUsers(db, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, alice.ID, entries[0].UserID)
	assert.Equal(t, "alice", entries[0].Username)
	assert.Equal(t, 300, entries[0].TotalPoints)
	assert.Equal(t, 3, entries[0].AchievementsCount)

	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, bob.ID, entries[1].UserID)
	assert.Equal(t, 125, entries[1].TotalPoints)
}

func TestTopUsersLimit(t *testing.T) {
	db := setupTestDB(t)
	for _, name := range []string{"a", "b", "c"} {
		user := createTestUser(t, db, name)
		unlock(t, db, user.ID, "first_booking")
	}

	entries, err := TopUsers(db, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestTopUsersTieBreakAscendingID(t *testing.T) {
	db := setupTestDB(t)
	first := createTestUser(t, db, "earlier")
	second := createTestUser(t, db, "later")

	unlock(t, db, second.ID, "first_booking")
	unlock(t, db, first.ID, "first_booking")

	entries, err := TopUsers(db, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first.ID, entries[0].UserID)
	assert.Equal(t, second.ID, entries[1].UserID)
}

func TestTopUsersIgnoresRetiredKeys(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "veteran")
	unlock(t, db, user.ID, "first_booking")

	// A ledger row whose key is no longer in the catalog contributes no points
	// but still counts as an unlock.
	unlock(t, db, user.ID, "retired_key")

	entries, err := TopUsers(db, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 50, entries[0].TotalPoints)
	assert.Equal(t, 2, entries[0].AchievementsCount)
}

func TestUserRank(t *testing.T) {
	db := setupTestDB(t)
	leader := createTestUser(t, db, "leader")
	chaser := createTestUser(t, db, "chaser")
	unlock(t, db, leader.ID, "perfect_game")
	unlock(t, db, chaser.ID, "first_booking")

	entry, err := UserRank(db, chaser.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, entry.Rank)
	assert.Equal(t, 50, entry.TotalPoints)
}

func TestUserRankNoUnlocks(t *testing.T) {
	db := setupTestDB(t)
	leader := createTestUser(t, db, "leader")
	rookie := createTestUser(t, db, "rookie")
	unlock(t, db, leader.ID, "first_booking")

	entry, err := UserRank(db, rookie.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, entry.Rank)
	assert.Equal(t, 0, entry.TotalPoints)
	assert.Equal(t, "rookie", entry.Username)
}

func TestUserRankUserNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := UserRank(db, 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
