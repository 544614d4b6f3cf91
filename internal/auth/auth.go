// Package auth exposes user accounts, sessions and profiles.
package auth

import (
	"log/slog"
	"net/http"

	"travelpoints/internal/auth/handler"
	"travelpoints/internal/auth/service"
)

// Service handles registration, login, logout and profiles.
type Service = service.Service

// Handler wires HTTP endpoints to the auth service.
type Handler = handler.Handler

// NewService constructs the auth service from its collaborators.
func NewService(
	users service.UserStore,
	revoked service.RevocationList,
	tokens service.TokenIssuer,
	hasher service.PasswordHasher,
	countries service.CountryLookup,
	opts ...service.Option,
) *Service {
	return service.New(users, revoked, tokens, hasher, countries, opts...)
}

// NewHandler constructs the HTTP handler for the /api/auth and /api/users profile routes.
func NewHandler(s *Service, logger *slog.Logger, requireAuth func(http.Handler) http.Handler, opts ...handler.Option) *Handler {
	return handler.New(s, logger, requireAuth, opts...)
}
