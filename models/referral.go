package models

import (
	"time"

	"gorm.io/gorm"
)

type Referral struct {
	gorm.Model

	ReferrerID   int64     `gorm:"index" json:"referrerId"`
	ReferredID   int64     `gorm:"uniqueIndex" json:"referredId"`
	ReferredName string    `gorm:"size:128" json:"referredName"`
	JoinedAt     time.Time `json:"joinedAt"`
	Verified     bool      `gorm:"default:false" json:"verified"`
}
