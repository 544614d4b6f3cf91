// Package catalogue exposes the country and city reference data.
package catalogue

import (
	"log/slog"
	"net/http"

	"travelpoints/internal/catalogue/handler"
	"travelpoints/internal/catalogue/service"
)

// Service serves reference data and engine snapshots.
type Service = service.Service

// Handler wires HTTP endpoints to the catalogue service.
type Handler = handler.Handler

// NewService constructs the catalogue service over a store.
func NewService(store service.Store, opts ...service.Option) *Service {
	return service.New(store, opts...)
}

// NewHandler constructs the HTTP handler for the /api/countries routes.
func NewHandler(s *Service, homes handler.HomeCountryLookup, logger *slog.Logger, requireAuth func(http.Handler) http.Handler) *Handler {
	return handler.New(s, homes, logger, requireAuth)
}
