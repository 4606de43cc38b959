package repository

import (
	"ludoarena/internal/domain"
	"ludoarena/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.Preload("Player1").Preload("Player2").First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetForUpdate reads a room row under FOR UPDATE inside tx. Every
// mutating lifecycle operation re-reads through this so participant
// checks and settlement serialize per room.
func (r *RoomRepository) GetForUpdate(tx *gorm.DB, id uint) (*models.Room, error) {
	var room models.Room
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *RoomRepository) Create(tx *gorm.DB, room *models.Room) error {
	return tx.Create(room).Error
}

func (r *RoomRepository) Save(tx *gorm.DB, room *models.Room) error {
	return tx.Save(room).Error
}

func (r *RoomRepository) Delete(tx *gorm.DB, room *models.Room) error {
	return tx.Delete(room).Error
}

// HasActiveRoom reports whether the user already holds an open or
// running room. A user may hold at most one unresolved room at a time.
// The read locks so it observes rooms committed after tx's snapshot;
// callers must hold the user row lock first so concurrent checks for
// the same user serialize.
func (r *RoomRepository) HasActiveRoom(tx *gorm.DB, userID uint) (bool, error) {
	var count int64
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Model(&models.Room{}).
		Where("(player1_id = ? OR player2_id = ?)", userID, userID).
		Where("status IN ?", []string{domain.RoomStatusOpen, domain.RoomStatusRunning}).
		Count(&count).Error
	return count > 0, err
}

func (r *RoomRepository) ListAll() ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.Preload("Player1").Preload("Player2").
		Order("created_at DESC").Find(&rooms).Error
	return rooms, err
}

// ListOpen returns rooms still waiting for a second participant.
func (r *RoomRepository) ListOpen() ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.Preload("Player1").
		Where("status = ? AND player2_id IS NULL", domain.RoomStatusOpen).
		Order("created_at DESC").Find(&rooms).Error
	return rooms, err
}

// ListRunningForUser returns the caller's running rooms.
func (r *RoomRepository) ListRunningForUser(userID uint) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.Preload("Player1").Preload("Player2").
		Where("(player1_id = ? OR player2_id = ?)", userID, userID).
		Where("status = ?", domain.RoomStatusRunning).
		Order("created_at DESC").Find(&rooms).Error
	return rooms, err
}

// HistoryForUser returns the caller's recent completed, disputed and
// running rooms, newest activity first.
func (r *RoomRepository) HistoryForUser(userID uint, limit int) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.Preload("Player1").Preload("Player2").
		Where("(player1_id = ? OR player2_id = ?)", userID, userID).
		Where("status IN ?", []string{domain.RoomStatusCompleted, domain.RoomStatusDisputed, domain.RoomStatusRunning}).
		Order("updated_at DESC").Limit(limit).Find(&rooms).Error
	return rooms, err
}

func (r *RoomRepository) ListByStatus(status string, limit int) ([]models.Room, error) {
	var rooms []models.Room
	q := r.db.Preload("Player1").Preload("Player2").
		Where("status = ?", status).Order("updated_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&rooms).Error
	return rooms, err
}

func (r *RoomRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Room{}).Count(&n).Error
	return n, err
}

func (r *RoomRepository) CountByStatus(status string) (int64, error) {
	var n int64
	err := r.db.Model(&models.Room{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

// SettlementTotals sums the payout/commission recorded on completed
// rooms at the time each one settled.
func (r *RoomRepository) SettlementTotals() (winnings, commission decimal.Decimal, err error) {
	var row struct {
		Winnings   decimal.Decimal
		Commission decimal.Decimal
	}
	err = r.db.Model(&models.Room{}).
		Select("COALESCE(SUM(payout), 0) AS winnings, COALESCE(SUM(commission), 0) AS commission").
		Where("status = ?", domain.RoomStatusCompleted).
		Scan(&row).Error
	return row.Winnings, row.Commission, err
}
