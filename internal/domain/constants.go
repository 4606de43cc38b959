package domain

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Room lifecycle. completed and cancelled are terminal; disputed resolves
// back to completed through an admin decision.
const (
	RoomStatusOpen      = "open"
	RoomStatusRunning   = "running"
	RoomStatusCompleted = "completed"
	RoomStatusDisputed  = "disputed"
	RoomStatusCancelled = "cancelled"
)

// Per-player self-reported claims and the final adjudicated result.
const (
	ResultPlayer1Win = "player1win"
	ResultPlayer2Win = "player2win"
	ResultCancelled  = "cancelled"
)

const (
	TransactionTypeCredit = "credit"
	TransactionTypeDebit  = "debit"
)

const (
	TransactionStatusPending  = "pending"
	TransactionStatusApproved = "approved"
	TransactionStatusRejected = "rejected"
)

func ValidClaim(s string) bool {
	return s == ResultPlayer1Win || s == ResultPlayer2Win || s == ResultCancelled
}

func ValidDecision(s string) bool {
	return s == ResultPlayer1Win || s == ResultPlayer2Win
}
