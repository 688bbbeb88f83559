// Package handler provides HTTP handlers for authentication.
package handler

import (
	"leadtracker_backend/internal/auth/service"
	"leadtracker_backend/internal/auth/transport"
	"leadtracker_backend/platform/apperr"
	"leadtracker_backend/platform/httpkit"
	"leadtracker_backend/platform/logger"
	"leadtracker_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles auth HTTP requests.
type Handler struct {
	service  *service.Service
	validate *validator.Validator
	log      *logger.Logger
}

// New creates a new auth handler.
func New(service *service.Service, validate *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{service: service, validate: validate, log: log}
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BindingError(c)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.ValidationError(c, err)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		httpkit.HandleError(c, h.log, err)
		return
	}
	httpkit.OK(c, result)
}

// Me handles GET /api/auth/me. The auth middleware has already stored the
// user ID on the context.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := c.MustGet(httpkit.ContextUserIDKey).(uuid.UUID)
	if !ok {
		httpkit.HandleError(c, h.log, apperr.Internal("user id missing from request context"))
		return
	}

	user, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		httpkit.HandleError(c, h.log, err)
		return
	}
	httpkit.OK(c, user)
}
