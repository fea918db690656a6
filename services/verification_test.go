package services

import (
	"testing"

	"earnbot/database"
	"earnbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createChannel(t *testing.T, channelID string, position int) {
	t.Helper()
	err := database.DB.Create(&models.Channel{
		ChannelID: channelID,
		Name:      channelID,
		Link:      "https://t.me/" + channelID,
		Position:  position,
		Enabled:   true,
	}).Error
	require.NoError(t, err)
}

func TestVerificationReleasesBonuses(t *testing.T) {
	setupTestDB(t)
	createChannel(t, "@one", 0)
	createChannel(t, "@two", 1)

	alice, err := CreateUser(1, "Alice", "alice", "")
	require.NoError(t, err)
	_, err = CreateUser(2, "Bob", "bob", alice.ReferCode)
	require.NoError(t, err)

	// nothing joined yet
	flipped, err := TryCompleteVerification(2)
	require.NoError(t, err)
	assert.False(t, flipped)

	require.NoError(t, RecordChannelJoin(2, "@one"))
	flipped, err = TryCompleteVerification(2)
	require.NoError(t, err)
	assert.False(t, flipped)

	require.NoError(t, RecordChannelJoin(2, "@two"))
	flipped, err = TryCompleteVerification(2)
	require.NoError(t, err)
	assert.True(t, flipped)

	bob, err := GetUser(2)
	require.NoError(t, err)
	assert.True(t, bob.Verified)
	// welcome bonus at registration plus the verification bonus
	assert.Equal(t, 10.0, bob.Balance)

	aliceNow, err := GetUser(1)
	require.NoError(t, err)
	// welcome bonus plus the released referral bonus
	assert.Equal(t, 15.0, aliceNow.Balance)

	referrals, err := UserReferrals(1)
	require.NoError(t, err)
	require.Len(t, referrals, 1)
	assert.True(t, referrals[0].Verified)
}

func TestVerificationFlipsAtMostOnce(t *testing.T) {
	setupTestDB(t)
	createChannel(t, "@one", 0)

	alice, err := CreateUser(1, "Alice", "alice", "")
	require.NoError(t, err)
	_, err = CreateUser(2, "Bob", "bob", alice.ReferCode)
	require.NoError(t, err)
	require.NoError(t, RecordChannelJoin(2, "@one"))

	flipped, err := TryCompleteVerification(2)
	require.NoError(t, err)
	assert.True(t, flipped)

	flipped, err = TryCompleteVerification(2)
	require.NoError(t, err)
	assert.False(t, flipped)

	bob, err := GetUser(2)
	require.NoError(t, err)
	assert.Equal(t, 10.0, bob.Balance)

	aliceNow, err := GetUser(1)
	require.NoError(t, err)
	assert.Equal(t, 15.0, aliceNow.Balance)
}

func TestVerificationVacuousWhenDisabled(t *testing.T) {
	setupTestDB(t)
	createChannel(t, "@one", 0)
	updateSettings(t, map[string]any{"channelVerification": false})

	_, err := CreateUser(1, "Alice", "alice", "")
	require.NoError(t, err)

	flipped, err := TryCompleteVerification(1)
	require.NoError(t, err)
	assert.True(t, flipped)
}

func TestVerificationWithNoChannels(t *testing.T) {
	setupTestDB(t)

	_, err := CreateUser(1, "Alice", "alice", "")
	require.NoError(t, err)

	flipped, err := TryCompleteVerification(1)
	require.NoError(t, err)
	assert.True(t, flipped)
}

func TestRecordChannelJoinIdempotent(t *testing.T) {
	setupTestDB(t)
	createChannel(t, "@one", 0)

	_, err := CreateUser(1, "Alice", "alice", "")
	require.NoError(t, err)

	require.NoError(t, RecordChannelJoin(1, "@one"))
	require.NoError(t, RecordChannelJoin(1, "@one"))

	user, err := GetUser(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"@one"}, user.JoinedChannelIDs())
}

func TestEnabledChannelsOrderedAndFiltered(t *testing.T) {
	setupTestDB(t)
	createChannel(t, "@second", 1)
	createChannel(t, "@first", 0)
	createChannel(t, "@off", 2)
	err := database.DB.Model(&models.Channel{}).Where("channel_id = ?", "@off").
		Update("enabled", false).Error
	require.NoError(t, err)

	channels, err := EnabledChannels()
	require.NoError(t, err)
	require.Len(t, channels, 2)
	assert.Equal(t, "@first", channels[0].ChannelID)
	assert.Equal(t, "@second", channels[1].ChannelID)
}
