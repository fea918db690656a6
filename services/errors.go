package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrDuplicateDevice      = errors.New("device already registered")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrUserNotVerified      = errors.New("user not verified")
	ErrWithdrawalsDisabled  = errors.New("withdrawals disabled")
	ErrAmountOutOfRange     = errors.New("amount out of range")
	ErrInvalidState         = errors.New("invalid state")
	ErrInvalidOrExpiredCode = errors.New("invalid or expired gift code")
	ErrCodeExhausted        = errors.New("gift code usage cap reached")
	ErrAlreadyClaimed       = errors.New("gift code already claimed")
)

// isUniqueViolation reports whether err is a unique-constraint failure.
// Covers gorm's translated error plus the raw postgres and sqlite forms.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint")
}

// forUpdate applies a row lock on dialects that support it. sqlite (used
// in tests) has no FOR UPDATE; its writes are serialized by the engine.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
