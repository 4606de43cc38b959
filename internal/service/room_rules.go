package service

import (
	"ludoarena/internal/domain"
	"ludoarena/internal/models"
)

// outcome of resolving the two self-report slots.
type outcome int

const (
	outcomeWaiting  outcome = iota // second report still missing
	outcomeSettled                 // matching win claims, room completed
	outcomeRefund                  // both cancelled, room cancelled
	outcomeDisputed                // conflicting reports, admin needed
)

// applyClaim writes the caller's claim into their slot. A screenshot is
// only ever written, never cleared by an empty value.
func applyClaim(room *models.Room, slot int, claim, screenshotURL string) {
	c := claim
	if slot == 0 {
		if screenshotURL != "" {
			room.Player1Screenshot = screenshotURL
		}
		room.Player1Result = &c
	} else {
		if screenshotURL != "" {
			room.Player2Screenshot = screenshotURL
		}
		room.Player2Result = &c
	}
}

// resolveReports inspects both slots and advances the room's status
// fields. It touches no balances; the caller pays out or refunds based
// on the returned outcome.
func resolveReports(room *models.Room) outcome {
	p1, p2 := room.Player1Result, room.Player2Result
	if p1 == nil || p2 == nil {
		room.ResultDecisionPending = true
		return outcomeWaiting
	}
	if *p1 != *p2 {
		room.Status = domain.RoomStatusDisputed
		room.ResultDecisionPending = true
		return outcomeDisputed
	}
	room.ResultDecisionPending = false
	if *p1 == domain.ResultCancelled {
		room.Status = domain.RoomStatusCancelled
		return outcomeRefund
	}
	result := *p1
	room.Result = &result
	room.Status = domain.RoomStatusCompleted
	return outcomeSettled
}
