package models

import (
	"time"

	"gorm.io/gorm"
)

type GiftCode struct {
	gorm.Model

	Code       string    `gorm:"uniqueIndex;size:12" json:"code"`
	MinAmount  float64   `json:"minAmount"`
	MaxAmount  float64   `json:"maxAmount"`
	TotalUsers int       `json:"totalUsers"`
	UsedCount  int       `gorm:"default:0" json:"usedCount"`
	ExpiresAt  time.Time `gorm:"index" json:"expiresAt"`
}

func (g *GiftCode) Expired(now time.Time) bool {
	return now.After(g.ExpiresAt)
}

func (g *GiftCode) Exhausted() bool {
	return g.UsedCount >= g.TotalUsers
}

// GiftClaim records one redemption per (user, code). The composite unique
// index is the concurrency guard against double claims.
type GiftClaim struct {
	gorm.Model

	UserID     int64     `gorm:"index:idx_user_gift,unique" json:"userId"`
	GiftCodeID uint      `gorm:"index:idx_user_gift,unique" json:"giftCodeId"`
	Code       string    `gorm:"size:12" json:"code"`
	Amount     float64   `json:"amount"`
	ClaimedAt  time.Time `json:"claimedAt"`
}
