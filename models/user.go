package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	UserID    string `gorm:"uniqueIndex;size:64" json:"id"`
	Name      string `gorm:"size:128" json:"name"`
	Email     string `gorm:"uniqueIndex;size:128" json:"email"`
	CoinCount int64  `json:"coinCount"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`
}

// UserTransaction is the audit row written alongside every balance
// mutation: payment credits, admin credits and boost spends.
type UserTransaction struct {
	gorm.Model

	UserID        string `gorm:"index;size:64" json:"user_id"`
	TrxType       string `gorm:"size:16" json:"trx_type"`
	Amount        int64  `json:"amount"`
	BalanceBefore int64  `json:"balance_before"`
	BalanceAfter  int64  `json:"balance_after"`
	Note          string `gorm:"size:255" json:"note"`
	RefID         string `gorm:"size:64;index" json:"ref_id"`
}

const (
	TrxTypePurchase = "purchase"
	TrxTypeCredit   = "credit"
	TrxTypeBoost    = "boost"
)
