package service

import "errors"

// Each sentinel names the violated invariant. Handlers map them onto
// HTTP statuses; none is ever swallowed.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrRoomNotFound        = errors.New("room not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	ErrInsufficientBalance = errors.New("insufficient balance")

	ErrAlreadyInRoom  = errors.New("you are already in an open or running room")
	ErrRoomFull       = errors.New("room already has two participants")
	ErrOwnRoom        = errors.New("you cannot join your own room")
	ErrNotParticipant = errors.New("you are not a participant in this room")
	ErrNotCreator     = errors.New("only the room creator may do this")

	ErrRoomNotOpen       = errors.New("room is no longer open")
	ErrRoomNotFull       = errors.New("room does not have a second participant yet")
	ErrRoomResolved      = errors.New("room is already resolved")
	ErrNoDecisionPending = errors.New("room does not require an admin decision")
	ErrAlreadyProcessed  = errors.New("transaction already processed")

	ErrInvalidClaim    = errors.New("invalid result claim")
	ErrInvalidDecision = errors.New("invalid decision")
	ErrInvalidAmount   = errors.New("amount must be positive")

	ErrUserExists         = errors.New("username or email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
