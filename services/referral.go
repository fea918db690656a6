package services

import (
	"errors"
	"fmt"

	"earnbot/database"
	"earnbot/models"
	"earnbot/settings"

	"gorm.io/gorm"
)

// CompleteReferral releases the referrer's bonus for a referred user who
// just verified. Idempotent: no referral row, or one already verified, is
// a no-op.
func CompleteReferral(referredUserID int64) error {
	cfg, err := settings.Load()
	if err != nil {
		return err
	}
	return database.DB.Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, referredUserID)
		if err != nil {
			return err
		}
		return completeReferral(tx, user, cfg)
	})
}

func completeReferral(tx *gorm.DB, referred *models.User, cfg *settings.Settings) error {
	var referral models.Referral
	err := forUpdate(tx).Where("referred_id = ?", referred.UserID).First(&referral).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if referral.Verified {
		return nil
	}

	err = tx.Model(&models.Referral{}).Where("id = ?", referral.ID).
		Update("verified", true).Error
	if err != nil {
		return err
	}

	if cfg.ReferBonus <= 0 {
		return nil
	}
	referrer, err := lockUser(tx, referral.ReferrerID)
	if err != nil {
		// The referrer row can be gone (e.g. wiped by support); the
		// referred user's verification must not fail over it.
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	description := fmt.Sprintf("Referral bonus for %s", referred.FullName)
	return applyCredit(tx, referrer, cfg.ReferBonus, description)
}
