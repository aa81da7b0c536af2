package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Transaction is one payment intent. TransactionID is generated locally
// at charge-creation time and round-tripped through the gateway's
// metadata; it is the idempotency key for webhook reconciliation.
type Transaction struct {
	gorm.Model

	TransactionID string `gorm:"uniqueIndex;size:64" json:"id"`
	ChargeID      string `gorm:"index;size:64" json:"chargeId"`
	UserID        string `gorm:"index;size:64" json:"userId"`
	CoinCount     int64  `json:"coinCount"`
	Status        string `gorm:"size:16;index;default:pending" json:"status"`

	// Gateway pricing/metadata snapshot captured when the charge was created.
	PricingSnapshot datatypes.JSON `json:"pricing,omitempty"`
}

const (
	TxStatusPending   = "pending"
	TxStatusConfirmed = "confirmed"
	TxStatusFailed    = "failed"
	TxStatusDelayed   = "delayed"
)
