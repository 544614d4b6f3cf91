package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"travelpoints/internal/catalogue/models"
	"travelpoints/internal/platform/middleware"
	"travelpoints/internal/points"
	id "travelpoints/pkg/domain"
	dErrors "travelpoints/pkg/domain-errors"
	"travelpoints/pkg/platform/httputil"
)

// Service defines the catalogue reads served over HTTP.
type Service interface {
	ListCountries(ctx context.Context, home points.Region) ([]models.CountryView, error)
	GetCountry(ctx context.Context, code string, home points.Region) (*models.CountryDetail, error)
	ListCities(ctx context.Context, code string) ([]models.CityView, error)
	HomeRegion(ctx context.Context, homeCountry string) (points.Region, error)
}

// HomeCountryLookup resolves the caller's home country, "" when unset.
type HomeCountryLookup interface {
	HomeCountry(ctx context.Context, userID id.UserID) (string, error)
}

// Handler serves the country and city catalogue.
type Handler struct {
	service     Service
	homes       HomeCountryLookup
	logger      *slog.Logger
	requireAuth func(http.Handler) http.Handler
}

func New(service Service, homes HomeCountryLookup, logger *slog.Logger, requireAuth func(http.Handler) http.Handler) *Handler {
	return &Handler{
		service:     service,
		homes:       homes,
		logger:      logger,
		requireAuth: requireAuth,
	}
}

// Register registers the catalogue routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Get("/api/countries", h.handleListCountries)
		r.Get("/api/countries/{code}", h.handleGetCountry)
		r.Get("/api/countries/{code}/cities", h.handleListCities)
	})
}

func (h *Handler) handleListCountries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	home, ok := h.homeRegion(w, r)
	if !ok {
		return
	}

	countries, err := h.service.ListCountries(ctx, home)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to list countries", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, countries)
}

func (h *Handler) handleGetCountry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	home, ok := h.homeRegion(w, r)
	if !ok {
		return
	}

	detail, err := h.service.GetCountry(ctx, chi.URLParam(r, "code"), home)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to get country", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, detail)
}

func (h *Handler) handleListCities(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cities, err := h.service.ListCities(ctx, chi.URLParam(r, "code"))
	if err != nil {
		h.writeServiceError(ctx, w, "failed to list cities", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cities)
}

// homeRegion resolves the authenticated caller's region. On failure the
// error response is already written.
func (h *Handler) homeRegion(w http.ResponseWriter, r *http.Request) (points.Region, bool) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID.IsNil() {
		h.logger.ErrorContext(ctx, "userID missing from context despite auth middleware",
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return "", false
	}

	homeCountry, err := h.homes.HomeCountry(ctx, userID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to load home country", err)
		return "", false
	}
	region, err := h.service.HomeRegion(ctx, homeCountry)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to resolve home region", err)
		return "", false
	}
	return region, true
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
