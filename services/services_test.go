package services

import (
	"fmt"
	"testing"

	"earnbot/database"
	"earnbot/models"
	"earnbot/settings"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB points the package globals at a fresh in-memory database
// seeded with default settings. The shared-cache DSN keeps the database
// alive across the connections gorm pools.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	database.DB = db
	require.NoError(t, settings.EnsureDefaults())
}

func updateSettings(t *testing.T, values map[string]any) {
	t.Helper()
	require.NoError(t, settings.Save(values))
}

// registerVerified creates a user and force-sets the verified flag plus a
// starting balance, bypassing the channel flow.
func registerVerified(t *testing.T, userID int64, balance float64) *models.User {
	t.Helper()

	user, err := CreateUser(userID, fmt.Sprintf("User %d", userID), "", "")
	require.NoError(t, err)

	err = database.DB.Model(&models.User{}).Where("user_id = ?", userID).
		Updates(map[string]any{"verified": true, "balance": balance}).Error
	require.NoError(t, err)

	user.Verified = true
	user.Balance = balance
	return user
}
