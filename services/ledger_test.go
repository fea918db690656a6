package services

import (
	"testing"

	"earnbot/database"
	"earnbot/helpers"
	"earnbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserAssignsCodeAndWelcomeBonus(t *testing.T) {
	setupTestDB(t)

	user, err := CreateUser(1001, "Alice", "alice", "")
	require.NoError(t, err)
	assert.Len(t, user.ReferCode, helpers.ReferCodeLength)
	assert.Equal(t, 5.0, user.Balance)
	assert.False(t, user.Verified)
	assert.Nil(t, user.ReferredBy)

	txs, err := UserTransactions(1001, 10)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, models.TxCredit, txs[0].TrxType)
	assert.Equal(t, "Welcome bonus", txs[0].Description)
	assert.Equal(t, 0.0, txs[0].BalanceBefore)
	assert.Equal(t, 5.0, txs[0].BalanceAfter)
	assert.NotEmpty(t, txs[0].RefID)
}

func TestCreateUserDuplicateDevice(t *testing.T) {
	setupTestDB(t)

	orig := helpers.DeviceID
	helpers.DeviceID = func(int64) string { return "shared-device" }
	t.Cleanup(func() { helpers.DeviceID = orig })

	_, err := CreateUser(1, "Alice", "alice", "")
	require.NoError(t, err)

	_, err = CreateUser(2, "Bob", "bob", "")
	assert.ErrorIs(t, err, ErrDuplicateDevice)

	// re-running for the same identity is not a duplicate
	updateSettings(t, map[string]any{"deviceVerification": false})
	_, err = CreateUser(3, "Carol", "carol", "")
	assert.NoError(t, err)
}

func TestCreateUserWithReferrerCode(t *testing.T) {
	setupTestDB(t)

	referrer, err := CreateUser(1, "Alice", "alice", "")
	require.NoError(t, err)

	referred, err := CreateUser(2, "Bob", "bob", referrer.ReferCode)
	require.NoError(t, err)
	require.NotNil(t, referred.ReferredBy)
	assert.Equal(t, int64(1), *referred.ReferredBy)

	referrals, err := UserReferrals(1)
	require.NoError(t, err)
	require.Len(t, referrals, 1)
	assert.Equal(t, int64(2), referrals[0].ReferredID)
	assert.Equal(t, "Bob", referrals[0].ReferredName)
	assert.False(t, referrals[0].Verified)

	// no referral bonus before the referred user verifies
	fresh, err := GetUser(1)
	require.NoError(t, err)
	assert.Equal(t, 5.0, fresh.Balance)
}

func TestCreateUserUnknownReferrerCode(t *testing.T) {
	setupTestDB(t)

	user, err := CreateUser(1, "Alice", "alice", "NOSUCH")
	require.NoError(t, err)
	assert.Nil(t, user.ReferredBy)

	var count int64
	require.NoError(t, database.DB.Model(&models.Referral{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetUserNotFound(t *testing.T) {
	setupTestDB(t)

	_, err := GetUser(404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDebitInsufficientBalance(t *testing.T) {
	setupTestDB(t)

	_, err := CreateUser(1, "Alice", "alice", "")
	require.NoError(t, err)

	err = DebitUser(1, 100, "too much")
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	user, err := GetUser(1)
	require.NoError(t, err)
	assert.Equal(t, 5.0, user.Balance)

	txs, err := UserTransactions(1, 10)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestLedgerReconciles(t *testing.T) {
	setupTestDB(t)

	_, err := CreateUser(1, "Alice", "alice", "")
	require.NoError(t, err)

	require.NoError(t, CreditUser(1, 20, "promo"))
	require.NoError(t, DebitUser(1, 7.5, "fee"))

	user, err := GetUser(1)
	require.NoError(t, err)
	assert.Equal(t, 17.5, user.Balance)

	txs, err := UserTransactions(1, 10)
	require.NoError(t, err)
	require.Len(t, txs, 3)

	total := 0.0
	for _, trx := range txs {
		if trx.TrxType == models.TxCredit {
			total += trx.Amount
		} else {
			total -= trx.Amount
		}
		assert.NotEmpty(t, trx.RefID)
	}
	assert.InDelta(t, user.Balance, total, 1e-9)
}
