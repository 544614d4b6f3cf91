package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"travelpoints/internal/platform/middleware"
	"travelpoints/internal/travellog/models"
	id "travelpoints/pkg/domain"
	dErrors "travelpoints/pkg/domain-errors"
	"travelpoints/pkg/platform/httputil"
)

// Service defines the travel-log operations served over HTTP.
type Service interface {
	AddCountry(ctx context.Context, actor, userID id.UserID, code string, visitedAt *models.Date) (*models.VisitedCountry, error)
	RemoveCountry(ctx context.Context, actor, userID id.UserID, code string) error
	AddCity(ctx context.Context, actor, userID id.UserID, cityID id.CityID, visitedAt *models.Date) (*models.VisitedCity, error)
	RemoveCity(ctx context.Context, actor, userID id.UserID, cityID id.CityID) error
	ListCountries(ctx context.Context, userID id.UserID) ([]models.CountryVisitView, error)
	Score(ctx context.Context, userID id.UserID) (*models.Score, error)
}

type messageResponse struct {
	Message string `json:"message"`
}

// Handler serves the visited countries, visited cities and score endpoints.
type Handler struct {
	service     Service
	logger      *slog.Logger
	requireAuth func(http.Handler) http.Handler
}

func New(service Service, logger *slog.Logger, requireAuth func(http.Handler) http.Handler) *Handler {
	return &Handler{
		service:     service,
		logger:      logger,
		requireAuth: requireAuth,
	}
}

// Register registers the travel-log routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Use(middleware.ContentTypeJSON)
		r.Get("/api/users/{id}/countries", h.handleListCountries)
		r.Post("/api/users/{id}/countries", h.handleAddCountry)
		r.Delete("/api/users/{id}/countries/{code}", h.handleRemoveCountry)
		r.Post("/api/users/{id}/cities", h.handleAddCity)
		r.Delete("/api/users/{id}/cities/{cityID}", h.handleRemoveCity)
		r.Get("/api/users/{id}/score", h.handleScore)
	})
}

func (h *Handler) handleAddCountry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.pathUserID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.AddCountryRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}

	visit, err := h.service.AddCountry(ctx, middleware.GetUserID(ctx), userID, req.CountryCode, req.VisitedAt)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to add country", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, visit)
}

func (h *Handler) handleRemoveCountry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.pathUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveCountry(ctx, middleware.GetUserID(ctx), userID, chi.URLParam(r, "code")); err != nil {
		h.writeServiceError(ctx, w, "failed to remove country", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, messageResponse{Message: "Country and associated city visits removed"})
}

func (h *Handler) handleAddCity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.pathUserID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.AddCityRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	cityID, err := id.ParseCityID(req.CityID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	visit, err := h.service.AddCity(ctx, middleware.GetUserID(ctx), userID, cityID, req.VisitedAt)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to add city", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, visit)
}

func (h *Handler) handleRemoveCity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.pathUserID(w, r)
	if !ok {
		return
	}
	cityID, err := id.ParseCityID(chi.URLParam(r, "cityID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.RemoveCity(ctx, middleware.GetUserID(ctx), userID, cityID); err != nil {
		h.writeServiceError(ctx, w, "failed to remove city", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, messageResponse{Message: "City visit removed"})
}

func (h *Handler) handleListCountries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.pathUserID(w, r)
	if !ok {
		return
	}

	views, err := h.service.ListCountries(ctx, userID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to list visited countries", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, views)
}

func (h *Handler) handleScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.pathUserID(w, r)
	if !ok {
		return
	}

	score, err := h.service.Score(ctx, userID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to compute score", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, score)
}

func (h *Handler) pathUserID(w http.ResponseWriter, r *http.Request) (id.UserID, bool) {
	userID, err := id.ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		h.logger.WarnContext(r.Context(), "invalid user id in path",
			"error", err,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		httputil.WriteError(w, err)
		return id.UserID{}, false
	}
	return userID, true
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg,
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
	} else {
		h.logger.WarnContext(ctx, msg,
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
	}
	httputil.WriteError(w, err)
}
