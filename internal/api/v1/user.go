package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subwatch/subwatch/internal/api/dto"
	"github.com/subwatch/subwatch/internal/logger"
	"github.com/subwatch/subwatch/internal/service"
	"github.com/subwatch/subwatch/internal/types"
)

// UserHandler exposes user registration and notification preferences.
type UserHandler struct {
	service service.UserService
	logger  *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(svc service.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{service: svc, logger: log}
}

func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *UserHandler) Me(c *gin.Context) {
	userID := types.GetUserID(c.Request.Context())
	resp, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	var req dto.UpdateUserPreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	userID := types.GetUserID(c.Request.Context())
	resp, err := h.service.UpdatePreferences(c.Request.Context(), userID, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
