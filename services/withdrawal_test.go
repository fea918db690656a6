package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"earnbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithdrawalRequestAndReject(t *testing.T) {
	setupTestDB(t)
	registerVerified(t, 1, 100)

	w, autoPaid, err := RequestWithdrawal(1, 60, "alice@upi")
	require.NoError(t, err)
	assert.False(t, autoPaid)
	assert.Equal(t, 60.0, w.Amount)
	assert.Equal(t, 3.0, w.Tax)
	assert.Equal(t, 57.0, w.NetAmount)
	assert.Equal(t, models.WithdrawalPending, w.Status)

	user, err := GetUser(1)
	require.NoError(t, err)
	assert.Equal(t, 40.0, user.Balance)

	rejected, err := RejectWithdrawal(w.ID, 42)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalRejected, rejected.Status)
	require.NotNil(t, rejected.ProcessedBy)
	assert.Equal(t, int64(42), *rejected.ProcessedBy)

	user, err = GetUser(1)
	require.NoError(t, err)
	assert.Equal(t, 100.0, user.Balance)

	txs, err := UserTransactions(1, 10)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "Withdrawal refund (rejected)", txs[0].Description)
	assert.Equal(t, models.TxCredit, txs[0].TrxType)
}

func TestWithdrawalTerminalStateGuard(t *testing.T) {
	setupTestDB(t)
	registerVerified(t, 1, 100)

	w, _, err := RequestWithdrawal(1, 60, "alice@upi")
	require.NoError(t, err)

	_, err = RejectWithdrawal(w.ID, 42)
	require.NoError(t, err)

	_, err = RejectWithdrawal(w.ID, 42)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, _, err = AcceptWithdrawal(w.ID, 42)
	assert.ErrorIs(t, err, ErrInvalidState)

	// the second reject must not refund again
	user, err := GetUser(1)
	require.NoError(t, err)
	assert.Equal(t, 100.0, user.Balance)
}

func TestWithdrawalAcceptManual(t *testing.T) {
	setupTestDB(t)
	registerVerified(t, 1, 100)

	w, _, err := RequestWithdrawal(1, 60, "alice@upi")
	require.NoError(t, err)

	accepted, paid, err := AcceptWithdrawal(w.ID, 42)
	require.NoError(t, err)
	assert.False(t, paid)
	assert.Equal(t, models.WithdrawalCompleted, accepted.Status)
	assert.Equal(t, models.PaymentMethodManual, accepted.PaymentMethod)
	require.NotNil(t, accepted.ProcessedBy)
	assert.Equal(t, int64(42), *accepted.ProcessedBy)
	require.NotNil(t, accepted.ProcessedAt)

	// the debit from the request is not touched by accepting
	user, err := GetUser(1)
	require.NoError(t, err)
	assert.Equal(t, 40.0, user.Balance)
}

func TestWithdrawalAutoPayoutViaAPI(t *testing.T) {
	setupTestDB(t)
	registerVerified(t, 1, 100)
	updateSettings(t, map[string]any{"autoWithdraw": true})

	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "alice@upi", r.URL.Query().Get("upi"))
		assert.Equal(t, "57.00", r.URL.Query().Get("amount"))
		rw.Write([]byte(`{"status":"success"}`))
	}))
	defer server.Close()
	t.Setenv("PAYOUT_API_URL", server.URL+"/?upi={upi_id}&amount={amount}")

	// request-time auto payout
	w, autoPaid, err := RequestWithdrawal(1, 60, "alice@upi")
	require.NoError(t, err)
	assert.True(t, autoPaid)

	w, err = GetWithdrawal(w.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalCompleted, w.Status)
	assert.Equal(t, models.PaymentMethodAPI, w.PaymentMethod)
}

func TestWithdrawalAutoPayoutFailureLeavesPending(t *testing.T) {
	setupTestDB(t)
	registerVerified(t, 1, 100)
	updateSettings(t, map[string]any{"autoWithdraw": true})
	t.Setenv("PAYOUT_API_URL", "")

	w, autoPaid, err := RequestWithdrawal(1, 60, "alice@upi")
	require.NoError(t, err)
	assert.False(t, autoPaid)
	assert.Equal(t, models.WithdrawalPending, w.Status)

	// funds stay reserved for the pending request
	user, err := GetUser(1)
	require.NoError(t, err)
	assert.Equal(t, 40.0, user.Balance)
}

func TestWithdrawalValidation(t *testing.T) {
	setupTestDB(t)

	t.Run("disabled", func(t *testing.T) {
		updateSettings(t, map[string]any{"withdrawalsEnabled": false})
		registerVerified(t, 1, 100)

		_, _, err := RequestWithdrawal(1, 60, "alice@upi")
		assert.ErrorIs(t, err, ErrWithdrawalsDisabled)
		updateSettings(t, map[string]any{"withdrawalsEnabled": true})
	})

	t.Run("unverified", func(t *testing.T) {
		_, err := CreateUser(2, "Bob", "bob", "")
		require.NoError(t, err)

		_, _, err = RequestWithdrawal(2, 60, "bob@upi")
		assert.ErrorIs(t, err, ErrUserNotVerified)
	})

	t.Run("out_of_range", func(t *testing.T) {
		registerVerified(t, 3, 100)

		_, _, err := RequestWithdrawal(3, 10, "carol@upi")
		assert.ErrorIs(t, err, ErrAmountOutOfRange)

		_, _, err = RequestWithdrawal(3, 20000, "carol@upi")
		assert.ErrorIs(t, err, ErrAmountOutOfRange)
	})

	t.Run("insufficient_balance", func(t *testing.T) {
		registerVerified(t, 4, 55)

		_, _, err := RequestWithdrawal(4, 60, "dave@upi")
		assert.ErrorIs(t, err, ErrInsufficientBalance)

		// failed validation must not debit
		user, err := GetUser(4)
		require.NoError(t, err)
		assert.Equal(t, 55.0, user.Balance)
	})

	t.Run("unknown_user", func(t *testing.T) {
		_, _, err := RequestWithdrawal(404, 60, "ghost@upi")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListWithdrawalsByStatus(t *testing.T) {
	setupTestDB(t)
	registerVerified(t, 1, 500)

	w1, _, err := RequestWithdrawal(1, 60, "alice@upi")
	require.NoError(t, err)
	_, _, err = RequestWithdrawal(1, 70, "alice@upi")
	require.NoError(t, err)

	_, _, err = AcceptWithdrawal(w1.ID, 42)
	require.NoError(t, err)

	pending, err := ListWithdrawals(models.WithdrawalPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	all, err := ListWithdrawals("")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
