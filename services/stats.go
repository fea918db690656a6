package services

import (
	"time"

	"earnbot/database"
	"earnbot/models"
)

type DailyStats struct {
	NewUsers       int64   `json:"newUsers"`
	Withdrawals    int64   `json:"withdrawals"`
	TotalWithdrawn float64 `json:"totalWithdrawn"`
	GiftClaims     int64   `json:"giftClaims"`
}

// TodayStats aggregates activity since local midnight for the admin
// digest.
func TodayStats() (*DailyStats, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stats := &DailyStats{}
	err := database.DB.Model(&models.User{}).
		Where("created_at >= ?", midnight).
		Count(&stats.NewUsers).Error
	if err != nil {
		return nil, err
	}

	err = database.DB.Model(&models.Withdrawal{}).
		Where("created_at >= ?", midnight).
		Count(&stats.Withdrawals).Error
	if err != nil {
		return nil, err
	}

	var total *float64
	err = database.DB.Model(&models.Withdrawal{}).
		Where("created_at >= ? AND status = ?", midnight, models.WithdrawalCompleted).
		Select("SUM(net_amount)").
		Scan(&total).Error
	if err != nil {
		return nil, err
	}
	if total != nil {
		stats.TotalWithdrawn = *total
	}

	err = database.DB.Model(&models.GiftClaim{}).
		Where("claimed_at >= ?", midnight).
		Count(&stats.GiftClaims).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
