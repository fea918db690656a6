package services

import (
	"errors"
	"strings"
	"time"

	"earnbot/database"
	"earnbot/helpers"
	"earnbot/models"
	"earnbot/settings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const referCodeAttempts = 5

func GetUser(userID int64) (*models.User, error) {
	var user models.User
	err := database.DB.Where("user_id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser registers a telegram identity: device duplicate check, refer
// code assignment, welcome bonus credit and, when referrerCode resolves,
// an unverified referral row. The referrer is not awarded here.
func CreateUser(userID int64, fullName, username, referrerCode string) (*models.User, error) {
	cfg, err := settings.Load()
	if err != nil {
		return nil, err
	}

	deviceID := helpers.DeviceID(userID)
	if cfg.DeviceVerification {
		var existing models.User
		err := database.DB.Where("device_id = ? AND user_id <> ?", deviceID, userID).First(&existing).Error
		if err == nil {
			return nil, ErrDuplicateDevice
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	user := &models.User{
		UserID:         userID,
		FullName:       fullName,
		Username:       username,
		Balance:        0,
		JoinedChannels: datatypes.JSON("[]"),
		DeviceID:       deviceID,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for attempt := 0; ; attempt++ {
			user.ReferCode = helpers.GenerateReferCode()
			err := tx.Create(user).Error
			if err == nil {
				break
			}
			if isUniqueViolation(err) && attempt < referCodeAttempts-1 {
				user.ID = 0
				continue
			}
			return err
		}

		if cfg.WelcomeBonus > 0 {
			if err := applyCredit(tx, user, cfg.WelcomeBonus, "Welcome bonus"); err != nil {
				return err
			}
		}

		code := strings.ToUpper(strings.TrimSpace(referrerCode))
		if code == "" || code == user.ReferCode {
			return nil
		}
		var referrer models.User
		if err := tx.Where("refer_code = ?", code).First(&referrer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if referrer.UserID == userID {
			return nil
		}

		referral := models.Referral{
			ReferrerID:   referrer.UserID,
			ReferredID:   userID,
			ReferredName: fullName,
			JoinedAt:     time.Now(),
			Verified:     false,
		}
		if err := tx.Create(&referral).Error; err != nil {
			return err
		}
		referredBy := referrer.UserID
		user.ReferredBy = &referredBy
		return tx.Model(&models.User{}).Where("user_id = ?", userID).
			Update("referred_by", referredBy).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreditUser adjusts the balance and appends the paired ledger entry in
// one transaction.
func CreditUser(userID int64, amount float64, description string) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}
		return applyCredit(tx, user, amount, description)
	})
}

// DebitUser fails with ErrInsufficientBalance rather than ever writing a
// negative balance.
func DebitUser(userID int64, amount float64, description string) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}
		return applyDebit(tx, user, amount, description)
	})
}

func lockUser(tx *gorm.DB, userID int64) (*models.User, error) {
	var user models.User
	err := forUpdate(tx).Where("user_id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func applyCredit(tx *gorm.DB, user *models.User, amount float64, description string) error {
	before := user.Balance
	user.Balance = helpers.FormatFloat(before+amount, 2)

	err := tx.Model(&models.User{}).Where("user_id = ?", user.UserID).
		Update("balance", user.Balance).Error
	if err != nil {
		return err
	}
	return tx.Create(&models.Transaction{
		UserID:        user.UserID,
		Amount:        amount,
		TrxType:       models.TxCredit,
		Description:   description,
		BalanceBefore: before,
		BalanceAfter:  user.Balance,
		RefID:         uuid.NewString(),
	}).Error
}

func applyDebit(tx *gorm.DB, user *models.User, amount float64, description string) error {
	before := user.Balance
	if amount > before {
		return ErrInsufficientBalance
	}
	user.Balance = helpers.FormatFloat(before-amount, 2)

	err := tx.Model(&models.User{}).Where("user_id = ?", user.UserID).
		Update("balance", user.Balance).Error
	if err != nil {
		return err
	}
	return tx.Create(&models.Transaction{
		UserID:        user.UserID,
		Amount:        amount,
		TrxType:       models.TxDebit,
		Description:   description,
		BalanceBefore: before,
		BalanceAfter:  user.Balance,
		RefID:         uuid.NewString(),
	}).Error
}

// UserTransactions returns the newest ledger entries first.
func UserTransactions(userID int64, limit int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&transactions).Error
	return transactions, err
}

func UserReferrals(userID int64) ([]models.Referral, error) {
	var referrals []models.Referral
	err := database.DB.Where("referrer_id = ?", userID).
		Order("joined_at DESC").
		Find(&referrals).Error
	return referrals, err
}
