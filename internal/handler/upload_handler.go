package handler

import (
	"net/http"
	"strconv"
	"strings"

	"ludoarena/internal/middleware"
	"ludoarena/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UploadHandler struct {
	cloud cloudinary.Client
}

func NewUploadHandler(cloud cloudinary.Client) *UploadHandler {
	return &UploadHandler{cloud: cloud}
}

// UploadScreenshot stores a result screenshot and returns its URL. The
// client passes that URL verbatim when submitting a result.
func (h *UploadHandler) UploadScreenshot(c *gin.Context) {
	userID := middleware.GetUserID(c)
	file, err := c.FormFile("screenshot")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "screenshot file required"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer f.Close()

	folder := "ludoarena/results/" + strconv.FormatUint(uint64(userID), 10)
	publicID := "shot_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	url, err := h.cloud.UploadImage(c.Request.Context(), f, folder, publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
