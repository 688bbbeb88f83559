// Package followups wires the follow-up bounded context. Follow-ups are
// created and listed through a lead; this module owns updates addressed by
// the follow-up's own ID.
package followups

import (
	internalhttp "leadtracker_backend/internal/http"
	"leadtracker_backend/platform/events"
	"leadtracker_backend/platform/logger"

	"leadtracker_backend/internal/followups/handler"
	"leadtracker_backend/internal/followups/repository"
	"leadtracker_backend/internal/followups/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the follow-ups bounded context.
type Module struct {
	handler *handler.Handler
}

// NewModule constructs the follow-ups module with all its dependencies.
func NewModule(pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus)
	return &Module{
		handler: handler.New(svc, log),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "followups" }

// RegisterRoutes mounts the follow-up routes on the authenticated group.
func (m *Module) RegisterRoutes(ctx *internalhttp.RouterContext) {
	ctx.Protected.PATCH("/followups/:followupId", m.handler.Update)
}
