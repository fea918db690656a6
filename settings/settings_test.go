package settings

import (
	"fmt"
	"testing"

	"earnbot/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db
}

func TestLoadDefaultsFromEmptyTable(t *testing.T) {
	setupTestDB(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 50.0, cfg.MinWithdraw)
	assert.Equal(t, 10000.0, cfg.MaxWithdraw)
	assert.Equal(t, 10.0, cfg.ReferBonus)
	assert.Equal(t, 5.0, cfg.WelcomeBonus)
	assert.Equal(t, 5.0, cfg.WithdrawTax)
	assert.True(t, cfg.BotEnabled)
	assert.True(t, cfg.ChannelVerification)
	assert.False(t, cfg.AutoWithdraw)
	assert.Empty(t, cfg.AdminIDs)
}

func TestSaveRoundTrip(t *testing.T) {
	setupTestDB(t)

	err := Save(map[string]any{
		"minWithdraw": 100,
		"botName":     "Test Bot",
		"adminIds":    []int64{7, 8},
	})
	require.NoError(t, err)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 100.0, cfg.MinWithdraw)
	assert.Equal(t, "Test Bot", cfg.BotName)
	assert.Equal(t, []int64{7, 8}, cfg.AdminIDs)

	// untouched keys keep defaults
	assert.Equal(t, 10000.0, cfg.MaxWithdraw)

	// saving again overwrites, not duplicates
	require.NoError(t, Save(map[string]any{"minWithdraw": 25}))
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 25.0, cfg.MinWithdraw)
}

func TestEnsureDefaultsKeepsOverrides(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, Save(map[string]any{"referBonus": 42}))
	require.NoError(t, EnsureDefaults())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 42.0, cfg.ReferBonus)
	assert.Equal(t, 5.0, cfg.WelcomeBonus)
}

func TestIsAdmin(t *testing.T) {
	cfg := &Settings{AdminIDs: []int64{100, 200}}
	assert.True(t, cfg.IsAdmin(100))
	assert.False(t, cfg.IsAdmin(300))
	assert.False(t, (&Settings{}).IsAdmin(100))
}

func TestPublicHidesSensitiveKeys(t *testing.T) {
	cfg := &Settings{AdminIDs: []int64{1}, UpiID: "owner@upi", BotName: "Bot"}
	public := cfg.Public()
	assert.Equal(t, "Bot", public["botName"])
	assert.NotContains(t, public, "adminIds")
	assert.NotContains(t, public, "upiId")
}
