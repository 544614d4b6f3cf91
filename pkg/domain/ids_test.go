package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "travelpoints/pkg/domain-errors"
)

func TestParseUserID(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseUserID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseUserID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseUserID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseUserID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, UserID(validUUID), id)
		assert.False(t, id.IsNil())
	})
}

func TestParseID_HostileInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"SQL injection attempt", "'; DROP TABLE users;--", true},
		{"Path traversal", "../../../etc/passwd", true},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"Whitespace only", "   ", true},
		{"Uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},
		{"Valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errUser := ParseUserID(tt.input)
			_, errCity := ParseCityID(tt.input)
			if tt.wantErr {
				require.Error(t, errUser)
				require.Error(t, errCity)
				assert.True(t, dErrors.HasCode(errUser, dErrors.CodeInvalidInput))
			} else {
				require.NoError(t, errUser)
				require.NoError(t, errCity)
			}
		})
	}
}

func TestParseCountryCode(t *testing.T) {
	tests := []struct {
		input    string
		want     CountryCode
		wantCode dErrors.Code
	}{
		{input: "FR", want: "FR"},
		{input: " jp ", want: "JP"},
		{input: "", wantCode: dErrors.CodeBadRequest},
		{input: "   ", wantCode: dErrors.CodeBadRequest},
		{input: "FRA", wantCode: dErrors.CodeInvalidInput},
		{input: "F1", wantCode: dErrors.CodeInvalidInput},
		{input: "É", wantCode: dErrors.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCountryCode(tt.input)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, tt.wantCode))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIDsMarshalAsText(t *testing.T) {
	cityID := NewCityID()

	raw, err := json.Marshal(map[string]CityID{"id": cityID})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"`+cityID.String()+`"}`, string(raw))

	var decoded struct {
		ID CityID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, cityID, decoded.ID)

	var userID UserID
	err = json.Unmarshal([]byte(`"nope"`), &userID)
	require.Error(t, err)
}
