package handler

import (
	"net/http"
	"strconv"
	"strings"

	"ludoarena/internal/middleware"
	"ludoarena/internal/service"
	"ludoarena/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WalletHandler struct {
	wallet *service.WalletService
	cloud  cloudinary.Client
}

func NewWalletHandler(wallet *service.WalletService, cloud cloudinary.Client) *WalletHandler {
	return &WalletHandler{wallet: wallet, cloud: cloud}
}

// GetBalance returns the caller's current balance.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	balance, err := h.wallet.Balance(middleware.GetUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// History returns the caller's processed transactions.
func (h *WalletHandler) History(c *gin.Context) {
	txns, err := h.wallet.History(middleware.GetUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, txns)
}

// Pending returns the caller's unprocessed top-up requests.
func (h *WalletHandler) Pending(c *gin.Context) {
	txns, err := h.wallet.PendingForUser(middleware.GetUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, txns)
}

// RequestTopUp takes a multipart form with the amount and a payment
// screenshot, stores the screenshot, and records a pending credit
// request for an admin to process.
func (h *WalletHandler) RequestTopUp(c *gin.Context) {
	userID := middleware.GetUserID(c)
	amount, err := decimal.NewFromString(c.PostForm("amount"))
	if err != nil || !amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}

	screenshotURL := ""
	if file, err := c.FormFile("screenshot"); err == nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read screenshot"})
			return
		}
		defer f.Close()
		folder := "ludoarena/topups/" + strconv.FormatUint(uint64(userID), 10)
		publicID := "tx_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
		screenshotURL, err = h.cloud.UploadImage(c.Request.Context(), f, folder, publicID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "screenshot upload failed"})
			return
		}
	}

	txn, err := h.wallet.RequestTopUp(userID, amount, screenshotURL)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

// ProcessTopUp applies an admin's approve/reject decision.
func (h *WalletHandler) ProcessTopUp(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	txn, err := h.wallet.ProcessTopUp(middleware.GetUserID(c), uint(id), req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, txn)
}
