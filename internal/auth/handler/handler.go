package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"travelpoints/internal/auth/models"
	"travelpoints/internal/platform/middleware"
	id "travelpoints/pkg/domain"
	dErrors "travelpoints/pkg/domain-errors"
	"travelpoints/pkg/platform/httputil"
	"travelpoints/pkg/requestcontext"
)

// Service defines the account operations served over HTTP.
type Service interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.Session, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.Session, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	GetProfile(ctx context.Context, actor, userID id.UserID) (*models.Profile, error)
	UpdateProfile(ctx context.Context, actor, userID id.UserID, patch models.ProfilePatch) (*models.Profile, error)
	ChangePassword(ctx context.Context, actor, userID id.UserID, req models.ChangePasswordRequest) error
}

type messageResponse struct {
	Message string `json:"message"`
}

// Handler serves registration, login, logout and profile endpoints.
type Handler struct {
	service     Service
	logger      *slog.Logger
	requireAuth func(http.Handler) http.Handler
	loginLimit  func(http.Handler) http.Handler
}

type Option func(*Handler)

// WithLoginLimit wraps the login route, typically with the rate limiter.
func WithLoginLimit(mw func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		if mw != nil {
			h.loginLimit = mw
		}
	}
}

func New(service Service, logger *slog.Logger, requireAuth func(http.Handler) http.Handler, opts ...Option) *Handler {
	h := &Handler{
		service:     service,
		logger:      logger,
		requireAuth: requireAuth,
		loginLimit:  func(next http.Handler) http.Handler { return next },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register registers the auth and profile routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		r.Post("/api/auth/register", h.handleRegister)
		r.With(h.loginLimit).Post("/api/auth/login", h.handleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Post("/api/auth/logout", h.handleLogout)
		r.Get("/api/users/{id}/profile", h.handleGetProfile)
		r.With(middleware.ContentTypeJSON).Put("/api/users/{id}/profile", h.handleUpdateProfile)
		r.With(middleware.ContentTypeJSON).Put("/api/users/{id}/password", h.handleChangePassword)
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	session, err := h.service.Register(ctx, *req)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to register user", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, session)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	session, err := h.service.Login(ctx, *req)
	if err != nil {
		h.writeServiceError(ctx, w, "login failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, session)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := h.service.Logout(ctx, requestcontext.TokenID(ctx), requestcontext.TokenExpiry(ctx))
	if err != nil {
		h.writeServiceError(ctx, w, "failed to logout", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.pathUserID(w, r)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(ctx, middleware.GetUserID(ctx), userID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to get profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	userID, ok := h.pathUserID(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.UpdateProfileRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	profile, err := h.service.UpdateProfile(ctx, middleware.GetUserID(ctx), userID, req.Patch())
	if err != nil {
		h.writeServiceError(ctx, w, "failed to update profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	userID, ok := h.pathUserID(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.ChangePasswordRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.ChangePassword(ctx, middleware.GetUserID(ctx), userID, *req); err != nil {
		h.writeServiceError(ctx, w, "failed to change password", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, messageResponse{Message: "Password updated successfully"})
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
