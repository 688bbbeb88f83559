// Package handler provides the HTTP handler for the metrics summary.
package handler

import (
	"leadtracker_backend/internal/metrics/service"
	"leadtracker_backend/platform/httpkit"
	"leadtracker_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// Handler handles metrics HTTP requests.
type Handler struct {
	service *service.Service
	log     *logger.Logger
}

// New creates a new metrics handler.
func New(service *service.Service, log *logger.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// Summary handles GET /api/metrics/summary.
func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, h.log, err)
		return
	}
	httpkit.OK(c, summary)
}
