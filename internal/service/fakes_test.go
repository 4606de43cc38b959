package service

import (
	"database/sql"
	"testing"

	"ludoarena/internal/domain"
	"ludoarena/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory stand-ins for the repository layer. Transaction runs the
// callback directly; the stores log the operations they see so tests
// can assert lock ordering and write counts.

type fakeDB struct{}

func (fakeDB) Transaction(fc func(tx *gorm.DB) error, _ ...*sql.TxOptions) error {
	return fc(nil)
}

type opLog struct{ ops []string }

func (l *opLog) add(op string) { l.ops = append(l.ops, op) }

func (l *opLog) indexOf(op string) int {
	for i, o := range l.ops {
		if o == op {
			return i
		}
	}
	return -1
}

type fakeUsers struct {
	log   *opLog
	users map[uint]*models.User
}

func (f *fakeUsers) GetByID(id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetForUpdate(tx *gorm.DB, id uint) (*models.User, error) {
	f.log.add("lock user")
	return f.GetByID(id)
}

func (f *fakeUsers) UpdateBalance(tx *gorm.DB, id uint, balance decimal.Decimal) error {
	u, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Balance = balance
	return nil
}

type fakeRooms struct {
	log    *opLog
	rooms  map[uint]*models.Room
	nextID uint
	saves  int
}

func (f *fakeRooms) GetByID(id uint) (*models.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return room, nil
}

func (f *fakeRooms) GetForUpdate(tx *gorm.DB, id uint) (*models.Room, error) {
	f.log.add("lock room")
	return f.GetByID(id)
}

func (f *fakeRooms) Create(tx *gorm.DB, room *models.Room) error {
	f.nextID++
	room.ID = f.nextID
	f.rooms[room.ID] = room
	return nil
}

func (f *fakeRooms) Save(tx *gorm.DB, room *models.Room) error {
	f.saves++
	f.rooms[room.ID] = room
	return nil
}

func (f *fakeRooms) Delete(tx *gorm.DB, room *models.Room) error {
	delete(f.rooms, room.ID)
	return nil
}

func (f *fakeRooms) HasActiveRoom(tx *gorm.DB, userID uint) (bool, error) {
	f.log.add("active room check")
	for _, room := range f.rooms {
		if room.SlotOf(userID) < 0 {
			continue
		}
		if room.Status == domain.RoomStatusOpen || room.Status == domain.RoomStatusRunning {
			return true, nil
		}
	}
	return false, nil
}

type fakeTxns struct {
	txns   map[uint]*models.Transaction
	nextID uint
}

func (f *fakeTxns) Create(t *models.Transaction) error {
	f.nextID++
	t.ID = f.nextID
	f.txns[t.ID] = t
	return nil
}

func (f *fakeTxns) GetForUpdate(tx *gorm.DB, id uint) (*models.Transaction, error) {
	t, ok := f.txns[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (f *fakeTxns) Save(tx *gorm.DB, t *models.Transaction) error {
	f.txns[t.ID] = t
	return nil
}

func (f *fakeTxns) ListProcessedForUser(userID uint, limit int) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, t := range f.txns {
		if t.UserID == userID && t.Status != domain.TransactionStatusPending {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTxns) ListPendingForUser(userID uint) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, t := range f.txns {
		if t.UserID == userID && t.Status == domain.TransactionStatusPending {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTxns) ListPending() ([]models.Transaction, error) {
	var out []models.Transaction
	for _, t := range f.txns {
		if t.Status == domain.TransactionStatusPending {
			out = append(out, *t)
		}
	}
	return out, nil
}

// fixture wires RoomService and WalletService over the fakes with the
// standard 10% platform fee.
type fixture struct {
	log    *opLog
	users  *fakeUsers
	rooms  *fakeRooms
	txns   *fakeTxns
	wallet *WalletService
	svc    *RoomService
}

func newFixture() *fixture {
	log := &opLog{}
	users := &fakeUsers{log: log, users: map[uint]*models.User{}}
	rooms := &fakeRooms{log: log, rooms: map[uint]*models.Room{}}
	txns := &fakeTxns{txns: map[uint]*models.Transaction{}}
	wallet := NewWalletService(fakeDB{}, users, txns, 10)
	return &fixture{
		log:    log,
		users:  users,
		rooms:  rooms,
		txns:   txns,
		wallet: wallet,
		svc:    NewRoomService(fakeDB{}, rooms, users, wallet),
	}
}

func (f *fixture) addUser(id uint, balance string) {
	f.users.users[id] = &models.User{ID: id, Balance: decimal.RequireFromString(balance)}
}

func (f *fixture) checkBalance(t *testing.T, id uint, want string) {
	t.Helper()
	got := f.users.users[id].Balance
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("user %d balance = %s, want %s", id, got, want)
	}
}

// runningRoom seats users 1 and 2 (100 each) in a room and returns it
// once it is running.
func (f *fixture) runningRoom(t *testing.T, fee string) *models.Room {
	t.Helper()
	f.addUser(1, "100")
	f.addUser(2, "100")
	room, err := f.svc.Create(1, decimal.RequireFromString(fee))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.svc.Join(2, room.ID); err != nil {
		t.Fatalf("Join: %v", err)
	}
	return f.rooms.rooms[room.ID]
}
