package handler

import (
	"errors"
	"log"
	"net/http"

	"ludoarena/internal/service"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service sentinels onto HTTP statuses. Storage
// failures stay opaque 500s so callers never mistake them for domain
// errors.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRoomNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTransactionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotParticipant),
		errors.Is(err, service.ErrNotCreator):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInsufficientBalance),
		errors.Is(err, service.ErrAlreadyInRoom),
		errors.Is(err, service.ErrRoomFull),
		errors.Is(err, service.ErrOwnRoom),
		errors.Is(err, service.ErrRoomNotOpen),
		errors.Is(err, service.ErrRoomNotFull),
		errors.Is(err, service.ErrRoomResolved),
		errors.Is(err, service.ErrNoDecisionPending),
		errors.Is(err, service.ErrAlreadyProcessed),
		errors.Is(err, service.ErrInvalidClaim),
		errors.Is(err, service.ErrInvalidDecision),
		errors.Is(err, service.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("[handler] %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}
