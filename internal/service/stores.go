package service

import (
	"database/sql"

	"ludoarena/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Storage interfaces consumed by the services. The repository package
// provides the gorm-backed implementations; tests substitute in-memory
// fakes.

type RoomStore interface {
	GetByID(id uint) (*models.Room, error)
	GetForUpdate(tx *gorm.DB, id uint) (*models.Room, error)
	Create(tx *gorm.DB, room *models.Room) error
	Save(tx *gorm.DB, room *models.Room) error
	Delete(tx *gorm.DB, room *models.Room) error
	HasActiveRoom(tx *gorm.DB, userID uint) (bool, error)
}

type UserStore interface {
	GetByID(id uint) (*models.User, error)
	GetForUpdate(tx *gorm.DB, id uint) (*models.User, error)
	UpdateBalance(tx *gorm.DB, id uint, balance decimal.Decimal) error
}

type TransactionStore interface {
	Create(t *models.Transaction) error
	GetForUpdate(tx *gorm.DB, id uint) (*models.Transaction, error)
	Save(tx *gorm.DB, t *models.Transaction) error
	ListProcessedForUser(userID uint, limit int) ([]models.Transaction, error)
	ListPendingForUser(userID uint) ([]models.Transaction, error)
	ListPending() ([]models.Transaction, error)
}

// TxRunner runs a function inside a storage transaction. *gorm.DB
// satisfies it.
type TxRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}
