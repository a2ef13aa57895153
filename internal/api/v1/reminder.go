package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subwatch/subwatch/internal/api/dto"
	"github.com/subwatch/subwatch/internal/logger"
	"github.com/subwatch/subwatch/internal/service"
	"github.com/subwatch/subwatch/internal/types"
)

// ReminderHandler exposes the bell feed and the read/dismiss lifecycle.
type ReminderHandler struct {
	service service.ReminderService
	logger  *logger.Logger
}

// NewReminderHandler creates a new reminder handler
func NewReminderHandler(svc service.ReminderService, log *logger.Logger) *ReminderHandler {
	return &ReminderHandler{service: svc, logger: log}
}

func (h *ReminderHandler) List(c *gin.Context) {
	userID := types.GetUserID(c.Request.Context())
	resp, err := h.service.ListReminders(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReminderHandler) UnreadCount(c *gin.Context) {
	userID := types.GetUserID(c.Request.Context())
	count, err := h.service.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.UnreadCountResponse{Count: count})
}

func (h *ReminderHandler) MarkRead(c *gin.Context) {
	userID := types.GetUserID(c.Request.Context())
	if err := h.service.MarkRead(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}

func (h *ReminderHandler) MarkAllRead(c *gin.Context) {
	userID := types.GetUserID(c.Request.Context())
	if err := h.service.MarkAllRead(c.Request.Context(), userID); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}

func (h *ReminderHandler) Dismiss(c *gin.Context) {
	userID := types.GetUserID(c.Request.Context())
	if err := h.service.Dismiss(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "dismissed"})
}
