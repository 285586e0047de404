package models

import "gorm.io/gorm"

// EducatorShare is the fraction of each sale credited to the course owner.
const EducatorShare = 0.70

type TransactionType string

const (
	TransactionEarning    TransactionType = "earning"
	TransactionWithdrawal TransactionType = "withdrawal"
)

const (
	TransactionPending   = "pending"
	TransactionProcessed = "processed"
	TransactionFailed    = "failed"
)

type Wallet struct {
	gorm.Model
	EducatorID   uint    `gorm:"uniqueIndex;not null"`
	Balance      float64 `gorm:"default:0"`
	Transactions []WalletTransaction
}

type WalletTransaction struct {
	gorm.Model
	WalletID  uint            `gorm:"index;not null"`
	Type      TransactionType `gorm:"not null"`
	Amount    float64         `gorm:"not null"`
	Status    string          `gorm:"default:processed"`
	Reference string
}
