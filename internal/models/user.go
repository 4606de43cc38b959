package models

import (
	"time"

	"ludoarena/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type User struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Username     string          `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email        string          `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string          `gorm:"size:255" json:"-"`
	Role         string          `gorm:"size:20;not null;default:'user';index" json:"role"` // user | admin
	Balance      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"balance"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (u *User) IsAdmin() bool { return u.Role == domain.RoleAdmin }
