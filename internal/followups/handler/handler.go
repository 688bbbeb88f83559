// Package handler provides the HTTP handler for follow-up updates.
package handler

import (
	"net/http"

	"leadtracker_backend/internal/followups/service"
	"leadtracker_backend/internal/followups/transport"
	"leadtracker_backend/platform/httpkit"
	"leadtracker_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles follow-up HTTP requests.
type Handler struct {
	service *service.Service
	log     *logger.Logger
}

// New creates a new follow-ups handler.
func New(service *service.Service, log *logger.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// Update handles PATCH /api/followups/:followupId.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("followupId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input",
			map[string]string{"followupId": "must be a valid UUID"})
		return
	}

	var req transport.UpdateFollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BindingError(c)
		return
	}

	followUp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		httpkit.HandleError(c, h.log, err)
		return
	}
	httpkit.OK(c, followUp)
}
