// Package auth wires the authentication bounded context.
package auth

import (
	internalhttp "leadtracker_backend/internal/http"
	"leadtracker_backend/platform/config"
	"leadtracker_backend/platform/logger"
	"leadtracker_backend/platform/validator"

	"leadtracker_backend/internal/auth/handler"
	"leadtracker_backend/internal/auth/repository"
	"leadtracker_backend/internal/auth/service"
	"leadtracker_backend/internal/auth/token"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context.
type Module struct {
	handler *handler.Handler
}

// NewModule constructs the auth module with all its dependencies.
func NewModule(pool *pgxpool.Pool, cfg config.JWTConfig, validate *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, token.NewSigner(cfg), log)
	return &Module{
		handler: handler.New(svc, validate, log),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "auth" }

// RegisterRoutes mounts the auth routes. Login sits outside the protected
// group and carries the stricter per-IP rate limit.
func (m *Module) RegisterRoutes(ctx *internalhttp.RouterContext) {
	auth := ctx.API.Group("/auth")
	{
		auth.POST("/login", ctx.AuthRateLimiter.RateLimit(), m.handler.Login)
		auth.GET("/me", ctx.AuthMiddleware, m.handler.Me)
	}
}
