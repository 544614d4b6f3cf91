package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "travelpoints/pkg/domain-errors"
)

func TestRegisterRequestValidate(t *testing.T) {
	t.Run("normalises fields", func(t *testing.T) {
		req := RegisterRequest{Username: "  ana ", Email: " Ana@Example.COM ", Password: "secret1", HomeCountry: " fr "}
		require.NoError(t, req.Validate())
		assert.Equal(t, "ana", req.Username)
		assert.Equal(t, "ana@example.com", req.Email)
		assert.Equal(t, "fr", req.HomeCountry)
	})

	tests := []struct {
		name string
		req  RegisterRequest
		msg  string
	}{
		{name: "missing username", req: RegisterRequest{Email: "a@b.co", Password: "secret1"}, msg: "username is required"},
		{name: "short username", req: RegisterRequest{Username: "a", Email: "a@b.co", Password: "secret1"}, msg: "username must be at least 2 characters"},
		{name: "bad email", req: RegisterRequest{Username: "ana", Email: "nope", Password: "secret1"}, msg: "email must be a valid email address"},
		{name: "short password", req: RegisterRequest{Username: "ana", Email: "a@b.co", Password: "12345"}, msg: "password must be at least 6 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			assert.Equal(t, tt.msg, dErrors.MessageOf(err))
		})
	}
}

func TestUpdateProfileRequestValidate(t *testing.T) {
	t.Run("absent fields are allowed", func(t *testing.T) {
		req := UpdateProfileRequest{}
		require.NoError(t, req.Validate())
		assert.True(t, req.Patch().IsEmpty())
	})

	t.Run("username is trimmed before the length check", func(t *testing.T) {
		name := "  b  "
		req := UpdateProfileRequest{Username: &name}
		err := req.Validate()
		require.Error(t, err)
		assert.Equal(t, "username must be at least 2 characters", dErrors.MessageOf(err))
	})

	t.Run("empty avatar clears it", func(t *testing.T) {
		empty := ""
		req := UpdateProfileRequest{AvatarURL: &empty}
		require.NoError(t, req.Validate())
		assert.False(t, req.Patch().IsEmpty())
	})
}

func TestChangePasswordRequestValidate(t *testing.T) {
	req := ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "short"}
	err := req.Validate()
	require.Error(t, err)
	assert.Equal(t, "new_password must be at least 6 characters", dErrors.MessageOf(err))
}
