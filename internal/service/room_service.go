package service

import (
	"errors"
	"log"
	"time"

	"ludoarena/internal/domain"
	"ludoarena/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RoomService owns the room lifecycle: creation, joining, result
// submission, dispute detection and settlement. Every mutating
// operation re-reads the room under a row lock inside a transaction, so
// a room reaches running with exactly two participants and settles
// exactly once even under concurrent requests.
type RoomService struct {
	db     TxRunner
	rooms  RoomStore
	users  UserStore
	wallet *WalletService
}

func NewRoomService(db TxRunner, rooms RoomStore, users UserStore, wallet *WalletService) *RoomService {
	return &RoomService{db: db, rooms: rooms, users: users, wallet: wallet}
}

// Create opens a room and escrows the creator's entry fee. The creator
// always occupies slot 0.
func (s *RoomService) Create(userID uint, entryFee decimal.Decimal) (*models.Room, error) {
	if !entryFee.IsPositive() {
		return nil, ErrInvalidAmount
	}
	var room *models.Room
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Lock the user row before the active-room check so two
		// simultaneous create/join attempts by the same user serialize
		// and the second one sees the first one's room.
		if err := s.lockUser(tx, userID); err != nil {
			return err
		}
		active, err := s.rooms.HasActiveRoom(tx, userID)
		if err != nil {
			return err
		}
		if active {
			return ErrAlreadyInRoom
		}
		if err := s.wallet.Escrow(tx, userID, entryFee); err != nil {
			return err
		}
		room = &models.Room{
			EntryFee:  entryFee,
			Player1ID: userID,
			Status:    domain.RoomStatusOpen,
		}
		return s.rooms.Create(tx, room)
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

// Join seats the caller in slot 1 and escrows the entry fee. The room
// moves to running the moment it holds two participants.
func (s *RoomService) Join(userID, roomID uint) (*models.Room, error) {
	var room *models.Room
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		room, err = s.lockRoom(tx, roomID)
		if err != nil {
			return err
		}
		if room.ParticipantCount() >= 2 {
			return ErrRoomFull
		}
		if room.IsCreator(userID) {
			return ErrOwnRoom
		}
		// Same lock-then-check ordering as Create.
		if err := s.lockUser(tx, userID); err != nil {
			return err
		}
		active, err := s.rooms.HasActiveRoom(tx, userID)
		if err != nil {
			return err
		}
		if active {
			return ErrAlreadyInRoom
		}
		if err := s.wallet.Escrow(tx, userID, room.EntryFee); err != nil {
			return err
		}
		room.Player2ID = &userID
		room.Status = domain.RoomStatusRunning
		return s.rooms.Save(tx, room)
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

// SubmitResult records the caller's self-reported outcome and resolves
// the room when both reports are in: matching win claims settle, a
// matching pair of cancels refunds both, and any conflict disputes.
func (s *RoomService) SubmitResult(userID, roomID uint, claim, screenshotURL string) (*models.Room, error) {
	if !domain.ValidClaim(claim) {
		return nil, ErrInvalidClaim
	}
	var room *models.Room
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		room, err = s.lockRoom(tx, roomID)
		if err != nil {
			return err
		}
		slot := room.SlotOf(userID)
		if slot < 0 {
			return ErrNotParticipant
		}
		if room.Terminal() {
			return ErrRoomResolved
		}
		applyClaim(room, slot, claim, screenshotURL)
		if err := s.resolve(tx, room); err != nil {
			return err
		}
		return s.rooms.Save(tx, room)
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

// Cancel records a cancellation claim for the caller's slot. Both sides
// cancelling refunds the entry fees; a cancel against an opposing win
// claim becomes a dispute for the admin to untangle.
func (s *RoomService) Cancel(userID, roomID uint) (*models.Room, error) {
	var room *models.Room
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		room, err = s.lockRoom(tx, roomID)
		if err != nil {
			return err
		}
		slot := room.SlotOf(userID)
		if slot < 0 {
			return ErrNotParticipant
		}
		if room.Terminal() {
			return ErrRoomResolved
		}
		if room.ParticipantCount() < 2 {
			// An unjoined room is abandoned via Delete, which refunds.
			return ErrRoomNotFull
		}
		applyClaim(room, slot, domain.ResultCancelled, "")
		if err := s.resolve(tx, room); err != nil {
			return err
		}
		return s.rooms.Save(tx, room)
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

// AdminDecide is the terminal resolution path for disputed rooms: the
// admin picks a winner, the winner is paid, and the ruling is recorded.
func (s *RoomService) AdminDecide(adminID, roomID uint, decision string) (*models.Room, decimal.Decimal, error) {
	if !domain.ValidDecision(decision) {
		return nil, decimal.Zero, ErrInvalidDecision
	}
	var (
		room   *models.Room
		payout decimal.Decimal
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		room, err = s.lockRoom(tx, roomID)
		if err != nil {
			return err
		}
		if !room.ResultDecisionPending {
			return ErrNoDecisionPending
		}
		if decision == domain.ResultPlayer2Win && room.Player2ID == nil {
			return ErrRoomNotFull
		}
		d := decision
		now := time.Now()
		room.Result = &d
		room.Status = domain.RoomStatusCompleted
		room.ResultDecisionPending = false
		room.AdminDecision = &d
		room.AdminDecidedBy = &adminID
		room.AdminDecidedAt = &now
		payout, err = s.wallet.Settle(tx, room)
		if err != nil {
			return err
		}
		return s.rooms.Save(tx, room)
	})
	if err != nil {
		return nil, decimal.Zero, err
	}
	return room, payout, nil
}

// Delete abandons an open room: creator only, refunds the escrowed
// entry fee and removes the room.
func (s *RoomService) Delete(userID, roomID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		room, err := s.lockRoom(tx, roomID)
		if err != nil {
			return err
		}
		if !room.IsCreator(userID) {
			return ErrNotCreator
		}
		if room.Status != domain.RoomStatusOpen {
			return ErrRoomNotOpen
		}
		if err := s.wallet.Refund(tx, room.Player1ID, room.EntryFee); err != nil {
			return err
		}
		return s.rooms.Delete(tx, room)
	})
}

// SetRoomCode stores the creator's out-of-band game code. No fund effect.
func (s *RoomService) SetRoomCode(userID, roomID uint, code string) (*models.Room, error) {
	var room *models.Room
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		room, err = s.lockRoom(tx, roomID)
		if err != nil {
			return err
		}
		if !room.IsCreator(userID) {
			return ErrNotCreator
		}
		room.RoomCode = code
		return s.rooms.Save(tx, room)
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

func (s *RoomService) Get(roomID uint) (*models.Room, error) {
	room, err := s.rooms.GetByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *RoomService) lockUser(tx *gorm.DB, userID uint) error {
	if _, err := s.users.GetForUpdate(tx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *RoomService) lockRoom(tx *gorm.DB, roomID uint) (*models.Room, error) {
	room, err := s.rooms.GetForUpdate(tx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

// resolve applies the fund side of whatever transition the self-reports
// produced. Terminal-status gating upstream makes settlement and
// refunds exactly-once.
func (s *RoomService) resolve(tx *gorm.DB, room *models.Room) error {
	switch resolveReports(room) {
	case outcomeSettled:
		_, err := s.wallet.Settle(tx, room)
		return err
	case outcomeRefund:
		if err := s.wallet.Refund(tx, room.Player1ID, room.EntryFee); err != nil {
			return err
		}
		if room.Player2ID != nil {
			if err := s.wallet.Refund(tx, *room.Player2ID, room.EntryFee); err != nil {
				return err
			}
		}
		log.Printf("[room] room %d cancelled by both players, entry fees refunded", room.ID)
	case outcomeDisputed:
		log.Printf("[room] room %d disputed, awaiting admin decision", room.ID)
	}
	return nil
}
