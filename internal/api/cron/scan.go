package cron

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/subwatch/subwatch/internal/logger"
	"github.com/subwatch/subwatch/internal/service"
)

// ScanCronHandler handles reminder scan cron jobs
type ScanCronHandler struct {
	scanService service.ScanService
	logger      *logger.Logger
}

// NewScanCronHandler creates a new scan cron handler
func NewScanCronHandler(scanService service.ScanService, log *logger.Logger) *ScanCronHandler {
	return &ScanCronHandler{
		scanService: scanService,
		logger:      log,
	}
}

// ScanReminders runs the batch reminder scan over all users.
func (h *ScanCronHandler) ScanReminders(c *gin.Context) {
	h.logger.Infow("starting reminder scan cron job", "time", time.Now().UTC().Format(time.RFC3339))

	stats, err := h.scanService.ScanAll(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to run reminder scan", "error", err)
		c.Error(err)
		return
	}

	h.logger.Infow("completed reminder scan cron job")
	c.JSON(http.StatusOK, stats)
}
