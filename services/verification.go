package services

import (
	"earnbot/database"
	"earnbot/models"
	"earnbot/settings"

	"gorm.io/gorm"
)

// EnabledChannels returns the channels that count toward verification, in
// display order.
func EnabledChannels() ([]models.Channel, error) {
	var channels []models.Channel
	err := database.DB.Where("enabled = ?", true).
		Order("position ASC").
		Find(&channels).Error
	return channels, err
}

func GetChannel(channelID string) (*models.Channel, error) {
	var channel models.Channel
	err := database.DB.Where("channel_id = ?", channelID).First(&channel).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

// RecordChannelJoin adds channelID to the user's joined set. A repeat join
// is a no-op.
func RecordChannelJoin(userID int64, channelID string) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}
		if !user.AddJoinedChannel(channelID) {
			return nil
		}
		return tx.Model(&models.User{}).Where("user_id = ?", userID).
			Update("joined_channels", user.JoinedChannels).Error
	})
}

// AllChannelsJoined is vacuously true when channel verification is off or
// no channels are enabled.
func AllChannelsJoined(user *models.User, channels []models.Channel, cfg *settings.Settings) bool {
	if !cfg.ChannelVerification {
		return true
	}
	for _, channel := range channels {
		if !user.HasJoined(channel.ChannelID) {
			return false
		}
	}
	return true
}

// TryCompleteVerification flips the user to verified when every enabled
// channel has been joined, crediting the verification bonus and releasing
// the pending referral. The flip happens at most once per user; the
// check-then-act runs under the user row lock so concurrent attempts
// cannot double-award. Returns whether this call performed the flip.
func TryCompleteVerification(userID int64) (bool, error) {
	cfg, err := settings.Load()
	if err != nil {
		return false, err
	}

	verifiedNow := false
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}
		if user.Verified {
			return nil
		}

		var channels []models.Channel
		if err := tx.Where("enabled = ?", true).Find(&channels).Error; err != nil {
			return err
		}
		if !AllChannelsJoined(user, channels, cfg) {
			return nil
		}

		err = tx.Model(&models.User{}).Where("user_id = ?", userID).
			Update("verified", true).Error
		if err != nil {
			return err
		}
		user.Verified = true

		if cfg.WelcomeBonus > 0 {
			if err := applyCredit(tx, user, cfg.WelcomeBonus, "Channel verification bonus"); err != nil {
				return err
			}
		}

		if err := completeReferral(tx, user, cfg); err != nil {
			return err
		}
		verifiedNow = true
		return nil
	})
	return verifiedNow, err
}
