package service

import (
	"errors"
	"fmt"
	"log"

	"ludoarena/internal/domain"
	"ludoarena/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WalletService owns every balance mutation: entry-fee escrow, refunds,
// settlement payouts and manual top-ups. Escrow, Refund and Settle run
// on the caller's transaction so the balance change commits atomically
// with the room transition that required it.
type WalletService struct {
	db           TxRunner
	users        UserStore
	transactions TransactionStore
	feePercent   int64
}

func NewWalletService(db TxRunner, users UserStore, transactions TransactionStore, feePercent int64) *WalletService {
	return &WalletService{db: db, users: users, transactions: transactions, feePercent: feePercent}
}

// SettlementAmounts splits a room's pool into winner payout and platform
// fee. pool = entryFee * 2, fee = pool * feePercent / 100.
func SettlementAmounts(entryFee decimal.Decimal, feePercent int64) (payout, fee decimal.Decimal) {
	pool := entryFee.Mul(decimal.NewFromInt(2))
	fee = pool.Mul(decimal.NewFromInt(feePercent)).Div(decimal.NewFromInt(100))
	return pool.Sub(fee), fee
}

// Escrow debits amount from the user's balance. The row is locked for
// the duration of tx; the debit is rejected before any write when the
// balance is short.
func (s *WalletService) Escrow(tx *gorm.DB, userID uint, amount decimal.Decimal) error {
	u, err := s.users.GetForUpdate(tx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if u.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}
	return s.users.UpdateBalance(tx, userID, u.Balance.Sub(amount))
}

// Refund credits back exactly the amount previously escrowed.
func (s *WalletService) Refund(tx *gorm.DB, userID uint, amount decimal.Decimal) error {
	return s.credit(tx, userID, amount)
}

func (s *WalletService) credit(tx *gorm.DB, userID uint, amount decimal.Decimal) error {
	u, err := s.users.GetForUpdate(tx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.users.UpdateBalance(tx, userID, u.Balance.Add(amount))
}

// Settle credits the room's winner with the pool minus platform fee.
// The caller must hold the room lock and have set room.Result; the
// terminal-status gate upstream keeps this exactly-once. The split is
// recorded on the room so historical totals stay stable across fee
// changes.
func (s *WalletService) Settle(tx *gorm.DB, room *models.Room) (decimal.Decimal, error) {
	winnerID := room.WinnerID()
	if winnerID == 0 {
		return decimal.Zero, fmt.Errorf("settle: room %d has no winner", room.ID)
	}
	payout, fee := SettlementAmounts(room.EntryFee, s.feePercent)
	if err := s.credit(tx, winnerID, payout); err != nil {
		return decimal.Zero, err
	}
	room.Payout = payout
	room.Commission = fee
	log.Printf("[wallet] room %d settled, user %d credited %s", room.ID, winnerID, payout)
	return payout, nil
}

// Balance returns the user's current balance.
func (s *WalletService) Balance(userID uint) (decimal.Decimal, error) {
	u, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, ErrUserNotFound
		}
		return decimal.Zero, err
	}
	return u.Balance, nil
}

// RequestTopUp records a pending credit request carrying the payment
// screenshot. No balance effect until an admin processes it.
func (s *WalletService) RequestTopUp(userID uint, amount decimal.Decimal, screenshotURL string) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	t := &models.Transaction{
		UserID:      userID,
		Amount:      amount,
		Type:        domain.TransactionTypeCredit,
		Status:      domain.TransactionStatusPending,
		Description: "Add money request",
		Screenshot:  screenshotURL,
	}
	if err := s.transactions.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

// ProcessTopUp applies an admin's approve/reject decision to a pending
// request. Approval credits the user; either way the transaction
// becomes terminal and records who processed it.
func (s *WalletService) ProcessTopUp(adminID, transactionID uint, decision string) (*models.Transaction, error) {
	if decision != domain.TransactionStatusApproved && decision != domain.TransactionStatusRejected {
		return nil, ErrInvalidDecision
	}
	var t *models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		t, err = s.transactions.GetForUpdate(tx, transactionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return err
		}
		if t.Status != domain.TransactionStatusPending {
			return ErrAlreadyProcessed
		}
		t.Status = decision
		t.ProcessedBy = &adminID
		if decision == domain.TransactionStatusApproved && t.Type == domain.TransactionTypeCredit {
			if err := s.credit(tx, t.UserID, t.Amount); err != nil {
				return err
			}
		}
		return s.transactions.Save(tx, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *WalletService) History(userID uint) ([]models.Transaction, error) {
	return s.transactions.ListProcessedForUser(userID, 50)
}

func (s *WalletService) PendingForUser(userID uint) ([]models.Transaction, error) {
	return s.transactions.ListPendingForUser(userID)
}

func (s *WalletService) PendingAll() ([]models.Transaction, error) {
	return s.transactions.ListPending()
}
