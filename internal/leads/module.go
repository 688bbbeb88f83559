// Package leads wires the lead management bounded context: repository,
// service, and HTTP handlers.
package leads

import (
	internalhttp "leadtracker_backend/internal/http"
	"leadtracker_backend/platform/events"
	"leadtracker_backend/platform/logger"
	"leadtracker_backend/platform/validator"

	"leadtracker_backend/internal/leads/handler"
	"leadtracker_backend/internal/leads/repository"
	"leadtracker_backend/internal/leads/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context.
type Module struct {
	handler *handler.Handler
}

// NewModule constructs the leads module with all its dependencies.
func NewModule(pool *pgxpool.Pool, bus events.Bus, validate *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus)
	return &Module{
		handler: handler.New(svc, validate, log),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "leads" }

// RegisterRoutes mounts the lead routes on the authenticated group.
func (m *Module) RegisterRoutes(ctx *internalhttp.RouterContext) {
	leads := ctx.Protected.Group("/leads")
	{
		leads.GET("", m.handler.List)
		leads.POST("", m.handler.Create)
		leads.GET("/:id", m.handler.Get)
		leads.PATCH("/:id", m.handler.Update)
		leads.DELETE("/:id", m.handler.Delete)

		leads.GET("/:id/notes", m.handler.ListNotes)
		leads.POST("/:id/notes", m.handler.AddNote)

		leads.GET("/:id/followups", m.handler.ListFollowUps)
		leads.POST("/:id/followups", m.handler.AddFollowUp)
	}
}
