package models

import (
	"time"

	"ludoarena/internal/domain"

	"github.com/shopspring/decimal"
)

// Room is a two-player match contract. Slot 0 (player1) is always the
// creator; slot 2 fills on join. Slot order drives result mapping and is
// immutable once set.
type Room struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	RoomCode string          `gorm:"size:32" json:"room_code"`
	EntryFee decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"entry_fee"`

	Player1ID uint  `gorm:"not null;index" json:"player1_id"`
	Player2ID *uint `gorm:"index" json:"player2_id"`

	Status string `gorm:"size:20;not null;default:'open';index" json:"status"`

	// Independent self-reports, one per slot.
	Player1Result *string `gorm:"size:20" json:"player1_result"`
	Player2Result *string `gorm:"size:20" json:"player2_result"`

	// Final adjudicated outcome; nil until settlement.
	Result                *string `gorm:"size:20" json:"result"`
	ResultDecisionPending bool    `gorm:"not null;default:false" json:"result_decision_pending"`

	Player1Screenshot string `gorm:"size:512" json:"player1_screenshot"`
	Player2Screenshot string `gorm:"size:512" json:"player2_screenshot"`

	// Settlement split, written once when the room completes. Summing
	// these stays correct even if the platform fee changes later.
	Payout     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"payout"`
	Commission decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"commission"`

	AdminDecision  *string    `gorm:"size:20" json:"admin_decision"`
	AdminDecidedBy *uint      `json:"admin_decided_by"`
	AdminDecidedAt *time.Time `json:"admin_decided_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Player1 *User `gorm:"foreignKey:Player1ID" json:"player1,omitempty"`
	Player2 *User `gorm:"foreignKey:Player2ID" json:"player2,omitempty"`
}

func (r *Room) ParticipantCount() int {
	if r.Player2ID != nil {
		return 2
	}
	return 1
}

// SlotOf returns 0 for player1, 1 for player2, -1 for non-participants.
func (r *Room) SlotOf(userID uint) int {
	if r.Player1ID == userID {
		return 0
	}
	if r.Player2ID != nil && *r.Player2ID == userID {
		return 1
	}
	return -1
}

func (r *Room) IsParticipant(userID uint) bool { return r.SlotOf(userID) >= 0 }

func (r *Room) IsCreator(userID uint) bool { return r.Player1ID == userID }

func (r *Room) Terminal() bool {
	return r.Status == domain.RoomStatusCompleted || r.Status == domain.RoomStatusCancelled
}

// WinnerID maps the final result onto a participant. Returns 0 when the
// room has no result yet.
func (r *Room) WinnerID() uint {
	if r.Result == nil {
		return 0
	}
	switch *r.Result {
	case domain.ResultPlayer1Win:
		return r.Player1ID
	case domain.ResultPlayer2Win:
		if r.Player2ID != nil {
			return *r.Player2ID
		}
	}
	return 0
}
