package handler

import (
	"net/http"
	"strconv"

	"ludoarena/internal/middleware"
	"ludoarena/internal/repository"
	"ludoarena/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type RoomHandler struct {
	svc   *service.RoomService
	rooms *repository.RoomRepository
}

func NewRoomHandler(svc *service.RoomService, rooms *repository.RoomRepository) *RoomHandler {
	return &RoomHandler{svc: svc, rooms: rooms}
}

func roomID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return 0, false
	}
	return uint(id), true
}

// Create opens a room wagering the given entry fee.
func (h *RoomHandler) Create(c *gin.Context) {
	var req struct {
		EntryFee decimal.Decimal `json:"entry_fee"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room, err := h.svc.Create(middleware.GetUserID(c), req.EntryFee)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) Join(c *gin.Context) {
	id, ok := roomID(c)
	if !ok {
		return
	}
	room, err := h.svc.Join(middleware.GetUserID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// SubmitResult records the caller's self-reported outcome, optionally
// with an evidence screenshot URL.
func (h *RoomHandler) SubmitResult(c *gin.Context) {
	id, ok := roomID(c)
	if !ok {
		return
	}
	var req struct {
		Result     string `json:"result" binding:"required"`
		Screenshot string `json:"screenshot"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room, err := h.svc.SubmitResult(middleware.GetUserID(c), id, req.Result, req.Screenshot)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) Cancel(c *gin.Context) {
	id, ok := roomID(c)
	if !ok {
		return
	}
	room, err := h.svc.Cancel(middleware.GetUserID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  room.Status,
		"message": "cancellation request recorded",
	})
}

// AdminDecide resolves a pending room in favour of one player.
func (h *RoomHandler) AdminDecide(c *gin.Context) {
	id, ok := roomID(c)
	if !ok {
		return
	}
	var req struct {
		Decision string `json:"decision" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room, payout, err := h.svc.AdminDecide(middleware.GetUserID(c), id, req.Decision)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"room":           room,
		"winning_amount": payout,
		"winner_id":      room.WinnerID(),
	})
}

// Delete abandons an open room and refunds the creator.
func (h *RoomHandler) Delete(c *gin.Context) {
	id, ok := roomID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(middleware.GetUserID(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "room deleted and entry fee refunded"})
}

func (h *RoomHandler) SetRoomCode(c *gin.Context) {
	id, ok := roomID(c)
	if !ok {
		return
	}
	var req struct {
		RoomCode string `json:"room_code" binding:"required,max=32"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room, err := h.svc.SetRoomCode(middleware.GetUserID(c), id, req.RoomCode)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) Get(c *gin.Context) {
	id, ok := roomID(c)
	if !ok {
		return
	}
	room, err := h.svc.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// ListOpen returns rooms still waiting for a second participant.
func (h *RoomHandler) ListOpen(c *gin.Context) {
	rooms, err := h.rooms.ListOpen()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// ListRunning returns the caller's running rooms. Clients poll this for
// freshness; there is no push channel.
func (h *RoomHandler) ListRunning(c *gin.Context) {
	rooms, err := h.rooms.ListRunningForUser(middleware.GetUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// History returns the caller's recent finished and active games.
func (h *RoomHandler) History(c *gin.Context) {
	rooms, err := h.rooms.HistoryForUser(middleware.GetUserID(c), 50)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}
