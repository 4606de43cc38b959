package handler

import (
	"net/http"

	"ludoarena/internal/domain"
	"ludoarena/internal/repository"
	"ludoarena/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the arbitration dashboard: summary aggregates,
// game listings by status, the pending top-up queue and the user list.
// All routes sit behind AdminRequired.
type AdminHandler struct {
	rooms  *repository.RoomRepository
	users  *repository.UserRepository
	wallet *service.WalletService
}

func NewAdminHandler(rooms *repository.RoomRepository, users *repository.UserRepository, wallet *service.WalletService) *AdminHandler {
	return &AdminHandler{rooms: rooms, users: users, wallet: wallet}
}

// Summary aggregates game counts, totals paid to winners, commission
// retained and the combined balance held across all user wallets.
func (h *AdminHandler) Summary(c *gin.Context) {
	totalGames, err := h.rooms.Count()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	counts := map[string]int64{}
	for _, status := range []string{domain.RoomStatusCompleted, domain.RoomStatusRunning, domain.RoomStatusDisputed} {
		n, err := h.rooms.CountByStatus(status)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		counts[status] = n
	}

	totalWinnings, totalCommission, err := h.rooms.SettlementTotals()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	totalBalance, err := h.users.TotalBalance()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_games":          totalGames,
		"completed_games":      counts[domain.RoomStatusCompleted],
		"active_games":         counts[domain.RoomStatusRunning],
		"disputed_games":       counts[domain.RoomStatusDisputed],
		"total_winnings":       totalWinnings,
		"total_commission":     totalCommission,
		"total_wallet_balance": totalBalance,
	})
}

func (h *AdminHandler) ListRooms(c *gin.Context) {
	rooms, err := h.rooms.ListAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *AdminHandler) RunningGames(c *gin.Context) {
	rooms, err := h.rooms.ListByStatus(domain.RoomStatusRunning, 10)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *AdminHandler) DisputedGames(c *gin.Context) {
	rooms, err := h.rooms.ListByStatus(domain.RoomStatusDisputed, 0)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *AdminHandler) CompletedGames(c *gin.Context) {
	rooms, err := h.rooms.ListByStatus(domain.RoomStatusCompleted, 50)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// PendingTransactions returns the top-up queue awaiting arbitration.
func (h *AdminHandler) PendingTransactions(c *gin.Context) {
	txns, err := h.wallet.PendingAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, txns)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
