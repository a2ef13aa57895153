package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subwatch/subwatch/internal/api/dto"
	"github.com/subwatch/subwatch/internal/domain/subscription"
	"github.com/subwatch/subwatch/internal/logger"
	"github.com/subwatch/subwatch/internal/service"
	"github.com/subwatch/subwatch/internal/types"
)

// SubscriptionHandler exposes subscription CRUD and the spend summary.
type SubscriptionHandler struct {
	service service.SubscriptionService
	logger  *logger.Logger
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(svc service.SubscriptionService, log *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{service: svc, logger: log}
}

func (h *SubscriptionHandler) Create(c *gin.Context) {
	var req dto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	userID := types.GetUserID(c.Request.Context())
	resp, err := h.service.CreateSubscription(c.Request.Context(), userID, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SubscriptionHandler) Get(c *gin.Context) {
	userID := types.GetUserID(c.Request.Context())
	resp, err := h.service.GetSubscription(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SubscriptionHandler) List(c *gin.Context) {
	userID := types.GetUserID(c.Request.Context())
	filter := &subscription.Filter{Category: c.Query("category")}

	resp, err := h.service.ListSubscriptions(c.Request.Context(), userID, filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SubscriptionHandler) Update(c *gin.Context) {
	var req dto.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	userID := types.GetUserID(c.Request.Context())
	resp, err := h.service.UpdateSubscription(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SubscriptionHandler) Delete(c *gin.Context) {
	userID := types.GetUserID(c.Request.Context())
	if err := h.service.DeleteSubscription(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *SubscriptionHandler) Summary(c *gin.Context) {
	userID := types.GetUserID(c.Request.Context())
	resp, err := h.service.GetSummary(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
