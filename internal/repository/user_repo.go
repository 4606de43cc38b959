package repository

import (
	"ludoarena/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetForUpdate reads a user row under FOR UPDATE inside tx. Balance
// mutations must go through this so concurrent escrows serialize.
func (r *UserRepository) GetForUpdate(tx *gorm.DB, id uint) (*models.User, error) {
	var u models.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) UpdateBalance(tx *gorm.DB, id uint, balance decimal.Decimal) error {
	return tx.Model(&models.User{}).Where("id = ?", id).Update("balance", balance).Error
}

func (r *UserRepository) List() ([]models.User, error) {
	var users []models.User
	err := r.db.Order("created_at DESC").Find(&users).Error
	return users, err
}

// TotalBalance sums every user's balance for the admin summary.
func (r *UserRepository) TotalBalance() (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Model(&models.User{}).
		Select("COALESCE(SUM(balance), 0)").
		Scan(&total).Error
	return total, err
}
