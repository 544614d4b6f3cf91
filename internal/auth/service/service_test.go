package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"travelpoints/internal/auth/metrics"
	"travelpoints/internal/auth/models"
	"travelpoints/internal/auth/service/mocks"
	userstore "travelpoints/internal/auth/store/user"
	catalogue "travelpoints/internal/catalogue/models"
	jwttoken "travelpoints/internal/jwt_token"
	id "travelpoints/pkg/domain"
	dErrors "travelpoints/pkg/domain-errors"
	"travelpoints/pkg/platform/sentinel"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks UserStore,RevocationList,TokenIssuer,PasswordHasher,CountryLookup

type ServiceSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	users     *mocks.MockUserStore
	revoked   *mocks.MockRevocationList
	tokens    *mocks.MockTokenIssuer
	hasher    *mocks.MockPasswordHasher
	countries *mocks.MockCountryLookup
	metrics   *metrics.Metrics
	now       time.Time
	service   *Service
	ctx       context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.users = mocks.NewMockUserStore(s.ctrl)
	s.revoked = mocks.NewMockRevocationList(s.ctrl)
	s.tokens = mocks.NewMockTokenIssuer(s.ctrl)
	s.hasher = mocks.NewMockPasswordHasher(s.ctrl)
	s.countries = mocks.NewMockCountryLookup(s.ctrl)
	s.metrics = metrics.NewWith(prometheus.NewRegistry())
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.service = New(s.users, s.revoked, s.tokens, s.hasher, s.countries,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
		WithClock(func() time.Time { return s.now }),
	)
	s.ctx = context.Background()
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) issued() jwttoken.IssuedToken {
	return jwttoken.IssuedToken{Token: "signed", JTI: "jti-1", ExpiresAt: s.now.Add(time.Hour)}
}

func (s *ServiceSuite) TestRegister() {
	req := models.RegisterRequest{Username: "ana", Email: "ana@example.com", Password: "secret1", HomeCountry: "fr"}

	s.Run("creates the user with a canonical home country", func() {
		s.countries.EXPECT().FindCountry(gomock.Any(), "fr").Return(&catalogue.Country{Code: "FR"}, nil)
		s.hasher.EXPECT().Hash("secret1").Return("hashed", nil)
		s.users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *models.User) error {
			s.Equal("ana", u.Username)
			s.Equal("hashed", u.PasswordHash)
			s.Equal("FR", u.HomeCountryCode())
			s.Equal(s.now, u.CreatedAt)
			s.False(u.ID.IsNil())
			return nil
		})
		s.tokens.EXPECT().GenerateAccessToken(gomock.Any(), "ana").Return(s.issued(), nil)

		session, err := s.service.Register(s.ctx, req)
		s.Require().NoError(err)
		s.Equal("signed", session.Token)
		s.Equal("ana@example.com", session.User.Email)
		s.Equal(1.0, promtest.ToFloat64(s.metrics.UsersCreated))
	})

	s.Run("unknown home country is a bad request", func() {
		s.countries.EXPECT().FindCountry(gomock.Any(), "fr").Return(nil, dErrors.New(dErrors.CodeNotFound, "country not found"))

		_, err := s.service.Register(s.ctx, req)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
		s.Equal("invalid home_country code", dErrors.MessageOf(err))
	})

	s.Run("duplicate email names the field", func() {
		noHome := req
		noHome.HomeCountry = ""
		s.hasher.EXPECT().Hash("secret1").Return("hashed", nil)
		s.users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&userstore.DuplicateError{Field: userstore.FieldEmail})

		_, err := s.service.Register(s.ctx, noHome)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Equal("a user with that email already exists", dErrors.MessageOf(err))
	})

	s.Run("duplicate username names the field", func() {
		noHome := req
		noHome.HomeCountry = ""
		s.hasher.EXPECT().Hash("secret1").Return("hashed", nil)
		s.users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&userstore.DuplicateError{Field: userstore.FieldUsername})

		_, err := s.service.Register(s.ctx, noHome)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Equal("that username is already taken", dErrors.MessageOf(err))
	})

	s.Run("store failure is internal", func() {
		noHome := req
		noHome.HomeCountry = ""
		s.hasher.EXPECT().Hash("secret1").Return("hashed", nil)
		s.users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(assert.AnError)

		_, err := s.service.Register(s.ctx, noHome)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestLogin() {
	user := &models.User{ID: id.NewUserID(), Username: "ana", Email: "ana@example.com", PasswordHash: "hashed"}
	req := models.LoginRequest{Email: "ana@example.com", Password: "secret1"}

	s.Run("valid credentials", func() {
		s.users.EXPECT().FindByEmail(gomock.Any(), "ana@example.com").Return(user, nil)
		s.hasher.EXPECT().Verify("secret1", "hashed").Return(nil)
		s.tokens.EXPECT().GenerateAccessToken(user.ID, "ana").Return(s.issued(), nil)

		session, err := s.service.Login(s.ctx, req)
		s.Require().NoError(err)
		s.Equal(user.ID, session.User.ID)
	})

	s.Run("unknown email and wrong password look the same", func() {
		s.users.EXPECT().FindByEmail(gomock.Any(), "ana@example.com").Return(nil, sentinel.ErrNotFound)
		_, unknownErr := s.service.Login(s.ctx, req)

		s.users.EXPECT().FindByEmail(gomock.Any(), "ana@example.com").Return(user, nil)
		s.hasher.EXPECT().Verify("secret1", "hashed").Return(dErrors.New(dErrors.CodeUnauthorized, "password mismatch"))
		_, wrongErr := s.service.Login(s.ctx, req)

		s.True(dErrors.HasCode(unknownErr, dErrors.CodeUnauthorized))
		s.Equal(dErrors.MessageOf(unknownErr), dErrors.MessageOf(wrongErr))
		s.Equal("invalid email or password", dErrors.MessageOf(wrongErr))
	})
}

func (s *ServiceSuite) TestLogout() {
	s.Run("revokes for the remaining lifetime", func() {
		s.revoked.EXPECT().RevokeToken(gomock.Any(), "jti-1", 30*time.Minute).Return(nil)

		s.Require().NoError(s.service.Logout(s.ctx, "jti-1", s.now.Add(30*time.Minute)))
		s.Equal(1.0, promtest.ToFloat64(s.metrics.Logouts))
	})

	s.Run("already expired token needs no entry", func() {
		s.Require().NoError(s.service.Logout(s.ctx, "jti-1", s.now.Add(-time.Second)))
	})

	s.Run("missing jti", func() {
		err := s.service.Logout(s.ctx, "", s.now.Add(time.Hour))
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("revocation failure is internal", func() {
		s.revoked.EXPECT().RevokeToken(gomock.Any(), "jti-1", time.Hour).Return(assert.AnError)

		err := s.service.Logout(s.ctx, "jti-1", s.now.Add(time.Hour))
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestProfile() {
	avatar := "https://example.com/a.png"
	home := "FR"
	userID := id.NewUserID()
	stored := func() *models.User {
		return &models.User{ID: userID, Username: "ana", Email: "ana@example.com", PasswordHash: "hashed", AvatarURL: &avatar, HomeCountry: &home}
	}

	s.Run("another user's profile is forbidden", func() {
		_, err := s.service.GetProfile(s.ctx, id.NewUserID(), userID)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("missing user", func() {
		s.users.EXPECT().FindByID(gomock.Any(), userID).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.GetProfile(s.ctx, userID, userID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("empty patch", func() {
		_, err := s.service.UpdateProfile(s.ctx, userID, userID, models.ProfilePatch{})
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
		s.Equal("no valid fields to update", dErrors.MessageOf(err))
	})

	s.Run("empty strings clear avatar and home country", func() {
		empty := ""
		s.users.EXPECT().FindByID(gomock.Any(), userID).Return(stored(), nil)
		s.users.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *models.User) error {
			s.Nil(u.AvatarURL)
			s.Nil(u.HomeCountry)
			return nil
		})

		profile, err := s.service.UpdateProfile(s.ctx, userID, userID, models.ProfilePatch{AvatarURL: &empty, HomeCountry: &empty})
		s.Require().NoError(err)
		s.Nil(profile.AvatarURL)
		s.Nil(profile.HomeCountry)
	})

	s.Run("taken username", func() {
		name := "bob"
		s.users.EXPECT().FindByID(gomock.Any(), userID).Return(stored(), nil)
		s.users.EXPECT().Update(gomock.Any(), gomock.Any()).Return(&userstore.DuplicateError{Field: userstore.FieldUsername})

		_, err := s.service.UpdateProfile(s.ctx, userID, userID, models.ProfilePatch{Username: &name})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("home country is canonicalised", func() {
		jp := "jp"
		s.users.EXPECT().FindByID(gomock.Any(), userID).Return(stored(), nil)
		s.countries.EXPECT().FindCountry(gomock.Any(), "jp").Return(&catalogue.Country{Code: "JP"}, nil)
		s.users.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		profile, err := s.service.UpdateProfile(s.ctx, userID, userID, models.ProfilePatch{HomeCountry: &jp})
		s.Require().NoError(err)
		s.Equal("JP", *profile.HomeCountry)
	})
}

func (s *ServiceSuite) TestChangePassword() {
	userID := id.NewUserID()
	req := models.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "secret2"}

	s.Run("wrong current password", func() {
		s.users.EXPECT().FindByID(gomock.Any(), userID).Return(&models.User{ID: userID, PasswordHash: "hashed"}, nil)
		s.hasher.EXPECT().Verify("secret1", "hashed").Return(dErrors.New(dErrors.CodeUnauthorized, "password mismatch"))

		err := s.service.ChangePassword(s.ctx, userID, userID, req)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
		s.Equal("current password is incorrect", dErrors.MessageOf(err))
	})

	s.Run("stores the new hash", func() {
		s.users.EXPECT().FindByID(gomock.Any(), userID).Return(&models.User{ID: userID, PasswordHash: "hashed"}, nil)
		s.hasher.EXPECT().Verify("secret1", "hashed").Return(nil)
		s.hasher.EXPECT().Hash("secret2").Return("rehashed", nil)
		s.users.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *models.User) error {
			s.Equal("rehashed", u.PasswordHash)
			return nil
		})

		s.Require().NoError(s.service.ChangePassword(s.ctx, userID, userID, req))
	})

	s.Run("unauthenticated actor", func() {
		err := s.service.ChangePassword(s.ctx, id.UserID{}, userID, req)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func (s *ServiceSuite) TestHomeCountry() {
	userID := id.NewUserID()

	s.users.EXPECT().FindByID(gomock.Any(), userID).Return(&models.User{ID: userID}, nil)
	home, err := s.service.HomeCountry(s.ctx, userID)
	s.Require().NoError(err)
	s.Empty(home)

	s.users.EXPECT().FindByID(gomock.Any(), userID).Return(nil, assert.AnError)
	_, err = s.service.HomeCountry(s.ctx, userID)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}
