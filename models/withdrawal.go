package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	WithdrawalPending   = "pending"
	WithdrawalCompleted = "completed"
	WithdrawalRejected  = "rejected"
)

const (
	PaymentMethodAPI    = "api"
	PaymentMethodManual = "manual"
)

type Withdrawal struct {
	gorm.Model

	UserID        int64      `gorm:"index" json:"userId"`
	Amount        float64    `json:"amount"`
	Tax           float64    `json:"tax"`
	NetAmount     float64    `json:"netAmount"`
	UpiID         string     `gorm:"size:128" json:"upiId"`
	Status        string     `gorm:"size:16;index" json:"status"`
	PaymentMethod string     `gorm:"size:16" json:"paymentMethod"`
	ProcessedAt   *time.Time `json:"processedAt"`
	ProcessedBy   *int64     `json:"processedBy"`
}
