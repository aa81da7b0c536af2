package models

import (
	"gorm.io/gorm"
)

type Coin struct {
	gorm.Model

	CoinID          string `gorm:"uniqueIndex;size:64" json:"id"`
	Name            string `gorm:"size:128" json:"name"`
	Symbol          string `gorm:"size:16" json:"symbol"`
	Description     string `gorm:"size:1024" json:"description"`
	Website         string `gorm:"size:255" json:"website"`
	Chain           string `gorm:"size:64" json:"chain"`
	ContractAddress string `gorm:"size:128" json:"contractAddress"`
	Logo            string `gorm:"size:255" json:"logo"`

	Status      string `gorm:"size:16;index;default:pending" json:"status"`
	Votes       int64  `json:"votes"`
	Boosts      int64  `json:"boosts"`
	DailyBoosts int64  `json:"dailyBoosts"`
}

const (
	CoinStatusPending  = "pending"
	CoinStatusApproved = "approved"
	CoinStatusPromoted = "promoted"
)
