// Package httpkit provides HTTP response utilities.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"errors"
	"net/http"
	"strings"

	"leadtracker_backend/platform/apperr"
	"leadtracker_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// DataResponse is the standard success envelope: {"data": <payload>}.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// ErrorBody carries the machine-readable error payload.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse is the standard error envelope: {"error": {...}}.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// OK sends a 200 OK response with the payload wrapped in the data envelope.
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, DataResponse{Data: payload})
}

// Created sends a 201 Created response with the payload wrapped in the data envelope.
func Created(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, DataResponse{Data: payload})
}

// NoContent sends a 204 response with an empty body.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the given status, code and message.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	c.JSON(status, ErrorResponse{Error: ErrorBody{Code: code, Message: message, Details: details}})
}

// BindingError reports a request body that could not be decoded.
func BindingError(c *gin.Context) {
	Error(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
}

// ValidationError reports failed struct validation with field-level details.
func ValidationError(c *gin.Context, err error) {
	Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationDetails(err))
}

// HandleError maps domain errors to HTTP responses. Typed *apperr.Error
// values carry their own status and code; anything else is treated as an
// internal error, logged once here, and never leaks detail to the caller.
func HandleError(c *gin.Context, log *logger.Logger, err error) {
	var domainErr *apperr.Error
	if errors.As(err, &domainErr) && domainErr.Kind != apperr.KindInternal {
		Error(c, domainErr.HTTPStatus(), domainErr.Code(), domainErr.Message, domainErr.Details)
		return
	}

	if log != nil {
		log.Error("internal error", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err.Error())
	}
	Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", nil)
}

// validationDetails flattens go-playground validation errors into a
// field → message map for the error envelope.
func validationDetails(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if field != "" {
			field = strings.ToLower(field[:1]) + field[1:]
		}
		if fe.Param() != "" {
			details[field] = "failed on " + fe.Tag() + "=" + fe.Param()
		} else {
			details[field] = "failed on " + fe.Tag()
		}
	}
	return details
}
