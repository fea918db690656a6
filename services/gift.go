package services

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"earnbot/database"
	"earnbot/models"

	"gorm.io/gorm"
)

// RedeemGift validates the code, resolves a uniform random amount in
// [minAmount, maxAmount] and applies the claim atomically. The unique
// (user, code) index on gift claims is the race guard: a concurrent
// second claim fails the insert and rolls the credit back.
func RedeemGift(userID int64, code string) (float64, error) {
	user, err := GetUser(userID)
	if err != nil {
		return 0, err
	}

	var gift models.GiftCode
	err = database.DB.Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&gift).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrInvalidOrExpiredCode
	}
	if err != nil {
		return 0, err
	}

	now := time.Now()
	if gift.Expired(now) {
		return 0, ErrInvalidOrExpiredCode
	}
	if gift.Exhausted() {
		return 0, ErrCodeExhausted
	}

	var existing models.GiftClaim
	err = database.DB.Where("user_id = ? AND gift_code_id = ?", userID, gift.ID).
		First(&existing).Error
	if err == nil {
		return 0, ErrAlreadyClaimed
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	span := int(gift.MaxAmount-gift.MinAmount) + 1
	if span < 1 {
		span = 1
	}
	amount := float64(rand.Intn(span)) + gift.MinAmount

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		claim := models.GiftClaim{
			UserID:     userID,
			GiftCodeID: gift.ID,
			Code:       gift.Code,
			Amount:     amount,
			ClaimedAt:  now,
		}
		if err := tx.Create(&claim).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyClaimed
			}
			return err
		}

		res := tx.Model(&models.GiftCode{}).
			Where("id = ? AND used_count < total_users", gift.ID).
			UpdateColumn("used_count", gorm.Expr("used_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCodeExhausted
		}

		locked, err := lockUser(tx, user.UserID)
		if err != nil {
			return err
		}
		return applyCredit(tx, locked, amount, fmt.Sprintf("Gift code: %s", gift.Code))
	})
	if err != nil {
		return 0, err
	}
	return amount, nil
}

// ListGiftCodes returns all codes, newest first, for the admin panel.
func ListGiftCodes() ([]models.GiftCode, error) {
	var codes []models.GiftCode
	err := database.DB.Order("created_at DESC").Find(&codes).Error
	return codes, err
}

// PurgeExpiredGiftCodes deletes codes past their expiry and returns how
// many were removed.
func PurgeExpiredGiftCodes() (int64, error) {
	res := database.DB.Where("expires_at < ?", time.Now()).
		Delete(&models.GiftCode{})
	return res.RowsAffected, res.Error
}
