package services

import (
	"errors"
	"fmt"
	"time"

	"earnbot/database"
	"earnbot/helpers"
	"earnbot/logger"
	"earnbot/models"
	"earnbot/providers/payout"
	"earnbot/settings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RequestWithdrawal validates the request, reserves funds by debiting the
// gross amount, and creates the pending withdrawal. When auto-payout is
// on and the payout call succeeds the withdrawal completes immediately;
// a failed payout leaves it pending for manual review. Returns the
// withdrawal and whether it was auto-paid.
func RequestWithdrawal(userID int64, amount float64, upiID string) (*models.Withdrawal, bool, error) {
	cfg, err := settings.Load()
	if err != nil {
		return nil, false, err
	}
	if !cfg.WithdrawalsEnabled {
		return nil, false, ErrWithdrawalsDisabled
	}

	tax, net := helpers.TaxSplit(amount, cfg.WithdrawTax)
	withdrawal := &models.Withdrawal{
		UserID:    userID,
		Amount:    amount,
		Tax:       tax,
		NetAmount: net,
		UpiID:     upiID,
		Status:    models.WithdrawalPending,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}
		if !user.Verified {
			return ErrUserNotVerified
		}
		if amount < cfg.MinWithdraw || amount > cfg.MaxWithdraw {
			return ErrAmountOutOfRange
		}
		if amount > user.Balance {
			return ErrInsufficientBalance
		}

		description := fmt.Sprintf("Withdrawal request (tax: %.2f)", tax)
		if err := applyDebit(tx, user, amount, description); err != nil {
			return err
		}
		return tx.Create(withdrawal).Error
	})
	if err != nil {
		return nil, false, err
	}

	autoPaid := false
	if cfg.AutoWithdraw && cfg.UpiEnabled {
		if err := payout.Send(upiID, net); err != nil {
			logger.Warn("auto payout failed, withdrawal left pending",
				zap.Uint("withdrawal", withdrawal.ID), zap.Error(err))
		} else if err := completePending(withdrawal.ID, nil, models.PaymentMethodAPI); err == nil {
			autoPaid = true
			withdrawal.Status = models.WithdrawalCompleted
		}
	}
	return withdrawal, autoPaid, nil
}

// AcceptWithdrawal moves a pending withdrawal to completed. Accepting is
// an explicit admin claim that the money moves, so the transition happens
// before any payout attempt (a retried accept hits the terminal guard and
// cannot double-pay); the payout outcome only decides the recorded
// payment method. Returns whether the payout API paid it.
func AcceptWithdrawal(withdrawalID uint, actingAdminID int64) (*models.Withdrawal, bool, error) {
	cfg, err := settings.Load()
	if err != nil {
		return nil, false, err
	}

	withdrawal, err := GetWithdrawal(withdrawalID)
	if err != nil {
		return nil, false, err
	}

	if err := completePending(withdrawalID, &actingAdminID, models.PaymentMethodManual); err != nil {
		return nil, false, err
	}

	paid := false
	if cfg.AutoWithdraw && cfg.UpiEnabled {
		if err := payout.Send(withdrawal.UpiID, withdrawal.NetAmount); err != nil {
			logger.Warn("payout API failed, marked for manual payment",
				zap.Uint("withdrawal", withdrawalID), zap.Error(err))
		} else {
			paid = true
			database.DB.Model(&models.Withdrawal{}).Where("id = ?", withdrawalID).
				Update("payment_method", models.PaymentMethodAPI)
		}
	}

	withdrawal, err = GetWithdrawal(withdrawalID)
	return withdrawal, paid, err
}

// RejectWithdrawal moves a pending withdrawal to rejected and refunds the
// gross amount. Refund and status flip share one transaction, so a
// retried reject fails the terminal guard before any second credit.
func RejectWithdrawal(withdrawalID uint, actingAdminID int64) (*models.Withdrawal, error) {
	var withdrawal models.Withdrawal
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		err := forUpdate(tx).First(&withdrawal, withdrawalID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		now := time.Now()
		res := tx.Model(&models.Withdrawal{}).
			Where("id = ? AND status = ?", withdrawalID, models.WithdrawalPending).
			Updates(map[string]any{
				"status":       models.WithdrawalRejected,
				"processed_at": now,
				"processed_by": actingAdminID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidState
		}
		withdrawal.Status = models.WithdrawalRejected
		withdrawal.ProcessedAt = &now
		withdrawal.ProcessedBy = &actingAdminID

		user, err := lockUser(tx, withdrawal.UserID)
		if err != nil {
			return err
		}
		return applyCredit(tx, user, withdrawal.Amount, "Withdrawal refund (rejected)")
	})
	if err != nil {
		return nil, err
	}
	return &withdrawal, nil
}

func GetWithdrawal(withdrawalID uint) (*models.Withdrawal, error) {
	var withdrawal models.Withdrawal
	err := database.DB.First(&withdrawal, withdrawalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &withdrawal, nil
}

func ListWithdrawals(status string) ([]models.Withdrawal, error) {
	q := database.DB.Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var withdrawals []models.Withdrawal
	err := q.Find(&withdrawals).Error
	return withdrawals, err
}

// completePending is the guarded pending -> completed transition.
func completePending(withdrawalID uint, actingAdminID *int64, method string) error {
	updates := map[string]any{
		"status":         models.WithdrawalCompleted,
		"processed_at":   time.Now(),
		"payment_method": method,
	}
	if actingAdminID != nil {
		updates["processed_by"] = *actingAdminID
	}
	res := database.DB.Model(&models.Withdrawal{}).
		Where("id = ? AND status = ?", withdrawalID, models.WithdrawalPending).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidState
	}
	return nil
}
