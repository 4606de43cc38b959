package service

import (
	"testing"

	"ludoarena/internal/domain"

	"github.com/shopspring/decimal"
)

func TestCreateAndJoinEscrowEntryFees(t *testing.T) {
	f := newFixture()
	f.addUser(1, "100")
	f.addUser(2, "50")

	room, err := f.svc.Create(1, decimal.RequireFromString("40"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if room.Status != domain.RoomStatusOpen {
		t.Errorf("status after create = %s, want open", room.Status)
	}
	f.checkBalance(t, 1, "60")

	room, err = f.svc.Join(2, room.ID)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if room.Status != domain.RoomStatusRunning {
		t.Errorf("status after join = %s, want running", room.Status)
	}
	if room.Player2ID == nil || *room.Player2ID != 2 {
		t.Errorf("player2 = %v, want 2", room.Player2ID)
	}
	f.checkBalance(t, 2, "10")
}

func TestCreateLocksUserBeforeActiveRoomCheck(t *testing.T) {
	f := newFixture()
	f.addUser(1, "100")
	if _, err := f.svc.Create(1, decimal.RequireFromString("10")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	lock, check := f.log.indexOf("lock user"), f.log.indexOf("active room check")
	if lock == -1 || check == -1 || lock > check {
		t.Errorf("operation order %v: user lock must precede active-room check", f.log.ops)
	}
}

func TestJoinLocksUserBeforeActiveRoomCheck(t *testing.T) {
	f := newFixture()
	f.addUser(1, "100")
	f.addUser(2, "100")
	room, err := f.svc.Create(1, decimal.RequireFromString("10"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	f.log.ops = nil
	if _, err := f.svc.Join(2, room.ID); err != nil {
		t.Fatalf("Join: %v", err)
	}
	lock, check := f.log.indexOf("lock user"), f.log.indexOf("active room check")
	if lock == -1 || check == -1 || lock > check {
		t.Errorf("operation order %v: user lock must precede active-room check", f.log.ops)
	}
}

func TestSecondActiveRoomRejected(t *testing.T) {
	f := newFixture()
	room := f.runningRoom(t, "40")
	f.addUser(3, "100")
	if _, err := f.svc.Create(3, decimal.RequireFromString("20")); err != nil {
		t.Fatalf("Create for third user: %v", err)
	}

	if _, err := f.svc.Create(1, decimal.RequireFromString("20")); err != ErrAlreadyInRoom {
		t.Errorf("Create while running room %d open: err = %v, want ErrAlreadyInRoom", room.ID, err)
	}
	open := f.rooms.rooms[room.ID+1]
	if _, err := f.svc.Join(2, open.ID); err != ErrAlreadyInRoom {
		t.Errorf("Join while in running room: err = %v, want ErrAlreadyInRoom", err)
	}
	f.checkBalance(t, 1, "60")
	f.checkBalance(t, 2, "60")
}

func TestJoinFullRoomLeavesRoomUntouched(t *testing.T) {
	f := newFixture()
	room := f.runningRoom(t, "40")
	f.addUser(3, "500")
	saves := f.rooms.saves

	if _, err := f.svc.Join(3, room.ID); err != ErrRoomFull {
		t.Fatalf("Join on full room: err = %v, want ErrRoomFull", err)
	}
	if f.rooms.saves != saves {
		t.Errorf("room was saved %d times during rejected join", f.rooms.saves-saves)
	}
	if room.Player2ID == nil || *room.Player2ID != 2 {
		t.Errorf("player2 = %v, want 2", room.Player2ID)
	}
	f.checkBalance(t, 3, "500")
}

func TestMatchingReportsSettleWinner(t *testing.T) {
	f := newFixture()
	room := f.runningRoom(t, "40")

	first, err := f.svc.SubmitResult(1, room.ID, domain.ResultPlayer1Win, "")
	if err != nil {
		t.Fatalf("first SubmitResult: %v", err)
	}
	if first.Status != domain.RoomStatusRunning {
		t.Errorf("status after one report = %s, want running", first.Status)
	}

	done, err := f.svc.SubmitResult(2, room.ID, domain.ResultPlayer1Win, "")
	if err != nil {
		t.Fatalf("second SubmitResult: %v", err)
	}
	if done.Status != domain.RoomStatusCompleted {
		t.Errorf("status = %s, want completed", done.Status)
	}
	f.checkBalance(t, 1, "132")
	f.checkBalance(t, 2, "60")
	if !done.Payout.Equal(decimal.RequireFromString("72")) {
		t.Errorf("recorded payout = %s, want 72", done.Payout)
	}
	if !done.Commission.Equal(decimal.RequireFromString("8")) {
		t.Errorf("recorded commission = %s, want 8", done.Commission)
	}
}

func TestResubmissionAfterCompletionHasNoBalanceEffect(t *testing.T) {
	f := newFixture()
	room := f.runningRoom(t, "40")
	for _, userID := range []uint{1, 2} {
		if _, err := f.svc.SubmitResult(userID, room.ID, domain.ResultPlayer1Win, ""); err != nil {
			t.Fatalf("SubmitResult(user %d): %v", userID, err)
		}
	}
	f.checkBalance(t, 1, "132")
	saves := f.rooms.saves

	for _, userID := range []uint{1, 2} {
		if _, err := f.svc.SubmitResult(userID, room.ID, domain.ResultPlayer1Win, ""); err != ErrRoomResolved {
			t.Errorf("SubmitResult on completed room: err = %v, want ErrRoomResolved", err)
		}
	}
	f.checkBalance(t, 1, "132")
	f.checkBalance(t, 2, "60")
	if f.rooms.saves != saves {
		t.Errorf("completed room was saved again %d times", f.rooms.saves-saves)
	}
}

func TestAdminDecisionPaysOnceOnly(t *testing.T) {
	f := newFixture()
	room := f.runningRoom(t, "40")
	if _, err := f.svc.SubmitResult(1, room.ID, domain.ResultPlayer1Win, ""); err != nil {
		t.Fatalf("SubmitResult: %v", err)
	}
	disputed, err := f.svc.SubmitResult(2, room.ID, domain.ResultPlayer2Win, "")
	if err != nil {
		t.Fatalf("SubmitResult: %v", err)
	}
	if disputed.Status != domain.RoomStatusDisputed || !disputed.ResultDecisionPending {
		t.Fatalf("conflicting reports: status = %s, pending = %v, want disputed/true",
			disputed.Status, disputed.ResultDecisionPending)
	}

	decided, payout, err := f.svc.AdminDecide(9, room.ID, domain.ResultPlayer2Win)
	if err != nil {
		t.Fatalf("AdminDecide: %v", err)
	}
	if !payout.Equal(decimal.RequireFromString("72")) {
		t.Errorf("payout = %s, want 72", payout)
	}
	if decided.Status != domain.RoomStatusCompleted {
		t.Errorf("status = %s, want completed", decided.Status)
	}
	if decided.AdminDecidedBy == nil || *decided.AdminDecidedBy != 9 {
		t.Errorf("admin decided by = %v, want 9", decided.AdminDecidedBy)
	}
	f.checkBalance(t, 2, "132")

	if _, _, err := f.svc.AdminDecide(9, room.ID, domain.ResultPlayer2Win); err != ErrNoDecisionPending {
		t.Errorf("repeat AdminDecide: err = %v, want ErrNoDecisionPending", err)
	}
	f.checkBalance(t, 1, "60")
	f.checkBalance(t, 2, "132")
}

func TestBothCancelsRefundEntryFees(t *testing.T) {
	f := newFixture()
	room := f.runningRoom(t, "40")

	if _, err := f.svc.Cancel(1, room.ID); err != nil {
		t.Fatalf("first Cancel: %v", err)
	}
	cancelled, err := f.svc.Cancel(2, room.ID)
	if err != nil {
		t.Fatalf("second Cancel: %v", err)
	}
	if cancelled.Status != domain.RoomStatusCancelled {
		t.Errorf("status = %s, want cancelled", cancelled.Status)
	}
	f.checkBalance(t, 1, "100")
	f.checkBalance(t, 2, "100")
}

func TestDeleteOpenRoomRefundsCreator(t *testing.T) {
	f := newFixture()
	f.addUser(1, "100")
	room, err := f.svc.Create(1, decimal.RequireFromString("40"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := f.svc.Delete(1, room.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	f.checkBalance(t, 1, "100")
	if _, ok := f.rooms.rooms[room.ID]; ok {
		t.Errorf("room %d still present after delete", room.ID)
	}
}

func TestTopUpCreditsOnceOnly(t *testing.T) {
	f := newFixture()
	f.addUser(1, "5")

	txn, err := f.wallet.RequestTopUp(1, decimal.RequireFromString("25"), "https://cdn.example/proof.png")
	if err != nil {
		t.Fatalf("RequestTopUp: %v", err)
	}
	f.checkBalance(t, 1, "5")

	processed, err := f.wallet.ProcessTopUp(9, txn.ID, domain.TransactionStatusApproved)
	if err != nil {
		t.Fatalf("ProcessTopUp: %v", err)
	}
	if processed.Status != domain.TransactionStatusApproved {
		t.Errorf("status = %s, want approved", processed.Status)
	}
	if processed.ProcessedBy == nil || *processed.ProcessedBy != 9 {
		t.Errorf("processed by = %v, want 9", processed.ProcessedBy)
	}
	f.checkBalance(t, 1, "30")

	if _, err := f.wallet.ProcessTopUp(9, txn.ID, domain.TransactionStatusApproved); err != ErrAlreadyProcessed {
		t.Errorf("repeat ProcessTopUp: err = %v, want ErrAlreadyProcessed", err)
	}
	f.checkBalance(t, 1, "30")
}

func TestRejectedTopUpDoesNotCredit(t *testing.T) {
	f := newFixture()
	f.addUser(1, "5")
	txn, err := f.wallet.RequestTopUp(1, decimal.RequireFromString("25"), "")
	if err != nil {
		t.Fatalf("RequestTopUp: %v", err)
	}
	processed, err := f.wallet.ProcessTopUp(9, txn.ID, domain.TransactionStatusRejected)
	if err != nil {
		t.Fatalf("ProcessTopUp: %v", err)
	}
	if processed.Status != domain.TransactionStatusRejected {
		t.Errorf("status = %s, want rejected", processed.Status)
	}
	f.checkBalance(t, 1, "5")
}
