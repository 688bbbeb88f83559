// Package handler provides HTTP handlers for lead management.
package handler

import (
	"net/http"

	"leadtracker_backend/internal/leads/service"
	"leadtracker_backend/internal/leads/transport"
	"leadtracker_backend/platform/httpkit"
	"leadtracker_backend/platform/logger"
	"leadtracker_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles lead HTTP requests.
type Handler struct {
	service  *service.Service
	validate *validator.Validator
	log      *logger.Logger
}

// New creates a new leads handler.
func New(service *service.Service, validate *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{service: service, validate: validate, log: log}
}

// List handles GET /api/leads.
func (h *Handler) List(c *gin.Context) {
	var req transport.ListLeadsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.ValidationError(c, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.ValidationError(c, err)
		return
	}

	result, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		httpkit.HandleError(c, h.log, err)
		return
	}
	httpkit.OK(c, result)
}

// Create handles POST /api/leads.
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BindingError(c)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.ValidationError(c, err)
		return
	}

	lead, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		httpkit.HandleError(c, h.log, err)
		return
	}
	httpkit.Created(c, lead)
}

// Get handles GET /api/leads/:id.
func (h *Handler) Get(c *gin.Context) {
	id, ok := leadID(c)
	if !ok {
		return
	}

	lead, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		httpkit.HandleError(c, h.log, err)
		return
	}
	httpkit.OK(c, lead)
}

// Update handles PATCH /api/leads/:id.
func (h *Handler) Update(c *gin.Context) {
	id, ok := leadID(c)
	if !ok {
		return
	}

	var req transport.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BindingError(c)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.ValidationError(c, err)
		return
	}

	lead, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		httpkit.HandleError(c, h.log, err)
		return
	}
	httpkit.OK(c, lead)
}

// Delete handles DELETE /api/leads/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := leadID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httpkit.HandleError(c, h.log, err)
		return
	}
	httpkit.NoContent(c)
}

// ListNotes handles GET /api/leads/:id/notes.
func (h *Handler) ListNotes(c *gin.Context) {
	id, ok := leadID(c)
	if !ok {
		return
	}

	notes, err := h.service.ListNotes(c.Request.Context(), id)
	if err != nil {
		httpkit.HandleError(c, h.log, err)
		return
	}
	httpkit.OK(c, notes)
}

// AddNote handles POST /api/leads/:id/notes.
func (h *Handler) AddNote(c *gin.Context) {
	id, ok := leadID(c)
	if !ok {
		return
	}

	var req transport.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BindingError(c)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.ValidationError(c, err)
		return
	}

	note, err := h.service.AddNote(c.Request.Context(), id, req)
	if err != nil {
		httpkit.HandleError(c, h.log, err)
		return
	}
	httpkit.Created(c, note)
}

// ListFollowUps handles GET /api/leads/:id/followups.
func (h *Handler) ListFollowUps(c *gin.Context) {
	id, ok := leadID(c)
	if !ok {
		return
	}

	followUps, err := h.service.ListFollowUps(c.Request.Context(), id)
	if err != nil {
		httpkit.HandleError(c, h.log, err)
		return
	}
	httpkit.OK(c, followUps)
}

// AddFollowUp handles POST /api/leads/:id/followups.
func (h *Handler) AddFollowUp(c *gin.Context) {
	id, ok := leadID(c)
	if !ok {
		return
	}

	var req transport.CreateFollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BindingError(c)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.ValidationError(c, err)
		return
	}

	followUp, err := h.service.AddFollowUp(c.Request.Context(), id, req)
	if err != nil {
		httpkit.HandleError(c, h.log, err)
		return
	}
	httpkit.Created(c, followUp)
}

// leadID parses the :id path parameter, writing a validation error response
// when it is not a UUID.
func leadID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input",
			map[string]string{"id": "must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}
