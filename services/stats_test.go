package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodayStats(t *testing.T) {
	setupTestDB(t)

	registerVerified(t, 1, 500)
	_, err := CreateUser(2, "Bob", "bob", "")
	require.NoError(t, err)

	createGift(t, "STATS1", 10, 10, 5, time.Now().Add(time.Hour))
	_, err = RedeemGift(2, "STATS1")
	require.NoError(t, err)

	w, _, err := RequestWithdrawal(1, 60, "alice@upi")
	require.NoError(t, err)
	_, _, err = AcceptWithdrawal(w.ID, 42)
	require.NoError(t, err)
	_, _, err = RequestWithdrawal(1, 70, "alice@upi")
	require.NoError(t, err)

	stats, err := TodayStats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.NewUsers)
	assert.Equal(t, int64(2), stats.Withdrawals)
	assert.Equal(t, 57.0, stats.TotalWithdrawn)
	assert.Equal(t, int64(1), stats.GiftClaims)
}

func TestTodayStatsEmpty(t *testing.T) {
	setupTestDB(t)

	stats, err := TodayStats()
	require.NoError(t, err)
	assert.Zero(t, stats.NewUsers)
	assert.Zero(t, stats.Withdrawals)
	assert.Zero(t, stats.TotalWithdrawn)
	assert.Zero(t, stats.GiftClaims)
}
