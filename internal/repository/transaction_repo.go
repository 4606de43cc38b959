package repository

import (
	"ludoarena/internal/domain"
	"ludoarena/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(t *models.Transaction) error {
	return r.db.Create(t).Error
}

// GetForUpdate reads a transaction row under FOR UPDATE inside tx so a
// pending request can only be processed once.
func (r *TransactionRepository) GetForUpdate(tx *gorm.DB, id uint) (*models.Transaction, error) {
	var t models.Transaction
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) Save(tx *gorm.DB, t *models.Transaction) error {
	return tx.Save(t).Error
}

// ListProcessedForUser returns the caller's non-pending history.
func (r *TransactionRepository) ListProcessedForUser(userID uint, limit int) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := r.db.Where("user_id = ? AND status <> ?", userID, domain.TransactionStatusPending).
		Order("created_at DESC").Limit(limit).Find(&txns).Error
	return txns, err
}

func (r *TransactionRepository) ListPendingForUser(userID uint) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := r.db.Where("user_id = ? AND status = ?", userID, domain.TransactionStatusPending).
		Order("created_at DESC").Find(&txns).Error
	return txns, err
}

// ListPending returns every pending request for the admin queue.
func (r *TransactionRepository) ListPending() ([]models.Transaction, error) {
	var txns []models.Transaction
	err := r.db.Preload("User").
		Where("status = ?", domain.TransactionStatusPending).
		Order("created_at DESC").Find(&txns).Error
	return txns, err
}
