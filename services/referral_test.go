package services

import (
	"testing"
	"time"

	"earnbot/database"
	"earnbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteReferralAwardsOnce(t *testing.T) {
	setupTestDB(t)

	alice, err := CreateUser(1, "Alice", "alice", "")
	require.NoError(t, err)
	_, err = CreateUser(2, "Bob", "bob", alice.ReferCode)
	require.NoError(t, err)

	require.NoError(t, CompleteReferral(2))
	require.NoError(t, CompleteReferral(2))

	aliceNow, err := GetUser(1)
	require.NoError(t, err)
	assert.Equal(t, 15.0, aliceNow.Balance)

	referrals, err := UserReferrals(1)
	require.NoError(t, err)
	require.Len(t, referrals, 1)
	assert.True(t, referrals[0].Verified)
}

func TestCompleteReferralWithoutRow(t *testing.T) {
	setupTestDB(t)

	_, err := CreateUser(1, "Alice", "alice", "")
	require.NoError(t, err)

	require.NoError(t, CompleteReferral(1))

	user, err := GetUser(1)
	require.NoError(t, err)
	assert.Equal(t, 5.0, user.Balance)
}

func TestCompleteReferralToleratesMissingReferrer(t *testing.T) {
	setupTestDB(t)

	_, err := CreateUser(2, "Bob", "bob", "")
	require.NoError(t, err)

	err = database.DB.Create(&models.Referral{
		ReferrerID:   999,
		ReferredID:   2,
		ReferredName: "Bob",
		JoinedAt:     time.Now(),
	}).Error
	require.NoError(t, err)

	require.NoError(t, CompleteReferral(2))

	var referral models.Referral
	require.NoError(t, database.DB.Where("referred_id = ?", 2).First(&referral).Error)
	assert.True(t, referral.Verified)
}
