package models

import (
	"gorm.io/gorm"
)

const (
	TxCredit = "credit"
	TxDebit  = "debit"
)

type Transaction struct {
	gorm.Model

	UserID        int64   `gorm:"index" json:"userId"`
	Amount        float64 `json:"amount"`
	TrxType       string  `gorm:"size:8;index" json:"type"`
	Description   string  `gorm:"size:255" json:"description"`
	BalanceBefore float64 `json:"balanceBefore"`
	BalanceAfter  float64 `json:"balanceAfter"`
	RefID         string  `gorm:"size:64" json:"refId"`
}
