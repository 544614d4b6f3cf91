package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"travelpoints/internal/auth/metrics"
	"travelpoints/internal/auth/models"
	userstore "travelpoints/internal/auth/store/user"
	catalogue "travelpoints/internal/catalogue/models"
	jwttoken "travelpoints/internal/jwt_token"
	id "travelpoints/pkg/domain"
	dErrors "travelpoints/pkg/domain-errors"
	"travelpoints/pkg/platform/sentinel"
	"travelpoints/pkg/requestcontext"
)

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
}

type RevocationList interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
}

type TokenIssuer interface {
	GenerateAccessToken(userID id.UserID, username string) (jwttoken.IssuedToken, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// CountryLookup validates home country codes against the catalogue.
type CountryLookup interface {
	FindCountry(ctx context.Context, code string) (*catalogue.Country, error)
}

// Service handles registration, login, logout and profile management.
type Service struct {
	users     UserStore
	revoked   RevocationList
	tokens    TokenIssuer
	hasher    PasswordHasher
	countries CountryLookup
	logger    *slog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock overrides time.Now for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func New(users UserStore, revoked RevocationList, tokens TokenIssuer, hasher PasswordHasher, countries CountryLookup, opts ...Option) *Service {
	s := &Service{
		users:     users,
		revoked:   revoked,
		tokens:    tokens,
		hasher:    hasher,
		countries: countries,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a user and signs them in. The request is expected to have
// passed RegisterRequest.Validate.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.Session, error) {
	homeCountry, err := s.resolveHomeCountry(ctx, req.HomeCountry)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidInput) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	user := &models.User{
		ID:           id.NewUserID(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		HomeCountry:  homeCountry,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, translateWriteError(err, "failed to create user")
	}

	s.metrics.IncrementUsersCreated()
	s.logger.InfoContext(ctx, "user registered",
		"user_id", user.ID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return s.issueSession(user)
}

// Login checks credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	invalid := dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.IncrementLogin("unknown_user")
			return nil, invalid
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	if err := s.hasher.Verify(req.Password, user.PasswordHash); err != nil {
		if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
			s.metrics.IncrementLogin("bad_password")
			return nil, invalid
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify password")
	}

	s.metrics.IncrementLogin("success")
	return s.issueSession(user)
}

// Logout revokes the access token identified by jti until it expires.
func (s *Service) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return dErrors.New(dErrors.CodeUnauthorized, "token has no id")
	}
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.revoked.RevokeToken(ctx, jti, ttl); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke token")
	}
	s.metrics.IncrementLogout()
	s.logger.InfoContext(ctx, "token revoked",
		"jti", jti,
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}

func (s *Service) GetProfile(ctx context.Context, actor, userID id.UserID) (*models.Profile, error) {
	if err := authorize(actor, userID); err != nil {
		return nil, err
	}
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := user.Profile()
	return &profile, nil
}

// UpdateProfile applies patch. Empty strings clear avatar_url and
// home_country; username must stay unique.
func (s *Service) UpdateProfile(ctx context.Context, actor, userID id.UserID, patch models.ProfilePatch) (*models.Profile, error) {
	if err := authorize(actor, userID); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "no valid fields to update")
	}
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.AvatarURL != nil {
		user.AvatarURL = nonEmpty(*patch.AvatarURL)
	}
	if patch.HomeCountry != nil {
		home, err := s.resolveHomeCountry(ctx, *patch.HomeCountry)
		if err != nil {
			return nil, err
		}
		user.HomeCountry = home
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, translateWriteError(err, "failed to update profile")
	}
	profile := user.Profile()
	return &profile, nil
}

func (s *Service) ChangePassword(ctx context.Context, actor, userID id.UserID, req models.ChangePasswordRequest) error {
	if err := authorize(actor, userID); err != nil {
		return err
	}
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.hasher.Verify(req.CurrentPassword, user.PasswordHash); err != nil {
		if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
			return dErrors.New(dErrors.CodeUnauthorized, "current password is incorrect")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify password")
	}
	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidInput) {
			return err
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return translateWriteError(err, "failed to update password")
	}
	s.logger.InfoContext(ctx, "password changed",
		"user_id", user.ID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}

// HomeCountry returns the user's home country code, "" when unset.
func (s *Service) HomeCountry(ctx context.Context, userID id.UserID) (string, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.HomeCountryCode(), nil
}

// Exists reports whether userID is registered.
func (s *Service) Exists(ctx context.Context, userID id.UserID) error {
	_, err := s.findUser(ctx, userID)
	return err
}

func (s *Service) findUser(ctx context.Context, userID id.UserID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return user, nil
}

// resolveHomeCountry returns nil for "", the canonical code for a catalogue
// country, and bad_request otherwise.
func (s *Service) resolveHomeCountry(ctx context.Context, code string) (*string, error) {
	if code == "" {
		return nil, nil
	}
	country, err := s.countries.FindCountry(ctx, code)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			return nil, err
		}
		return nil, dErrors.New(dErrors.CodeBadRequest, "invalid home_country code")
	}
	return &country.Code, nil
}

func (s *Service) issueSession(user *models.User) (*models.Session, error) {
	token, err := s.tokens.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}
	return &models.Session{
		User:      user.Profile(),
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
	}, nil
}

func authorize(actor, userID id.UserID) error {
	if actor.IsNil() {
		return dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if actor != userID {
		return dErrors.New(dErrors.CodeForbidden, "forbidden")
	}
	return nil
}

func translateWriteError(err error, msg string) error {
	var dup *userstore.DuplicateError
	switch {
	case errors.As(err, &dup) && dup.Field == userstore.FieldEmail:
		return dErrors.New(dErrors.CodeConflict, "a user with that email already exists")
	case errors.As(err, &dup):
		return dErrors.New(dErrors.CodeConflict, "that username is already taken")
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "user not found")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
