// Package travellog records the countries and cities users have visited and
// scores them with the points engine.
package travellog

import (
	"log/slog"
	"net/http"

	"travelpoints/internal/travellog/handler"
	"travelpoints/internal/travellog/service"
)

// Service manages travel logs and scores.
type Service = service.Service

// Handler wires HTTP endpoints to the travel-log service.
type Handler = handler.Handler

// NewService constructs the travel-log service.
func NewService(store service.Store, catalogue service.Catalogue, users service.Users, opts ...service.Option) *Service {
	return service.New(store, catalogue, users, opts...)
}

// NewHandler constructs the HTTP handler for the /api/users/{id} travel-log routes.
func NewHandler(s *Service, logger *slog.Logger, requireAuth func(http.Handler) http.Handler) *Handler {
	return handler.New(s, logger, requireAuth)
}
