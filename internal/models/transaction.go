package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the audit record of a balance change request. Top-up
// requests are created pending and become terminal once an admin
// processes them.
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Type        string          `gorm:"size:10;not null" json:"type"`                           // credit | debit
	Status      string          `gorm:"size:10;not null;default:'pending';index" json:"status"` // pending | approved | rejected
	Description string          `gorm:"size:255" json:"description"`
	Screenshot  string          `gorm:"size:512" json:"screenshot"`
	ProcessedBy *uint           `json:"processed_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
