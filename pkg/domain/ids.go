// Package domain holds typed identifiers and small value types shared across
// modules. Parse functions are the trust boundary: a parsed value is valid.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "travelpoints/pkg/domain-errors"
)

type (
	UserID uuid.UUID
	CityID uuid.UUID
)

func (id UserID) String() string { return uuid.UUID(id).String() }
func (id UserID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id CityID) String() string { return uuid.UUID(id).String() }
func (id CityID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// MarshalText keeps JSON and log output in canonical UUID form.
func (id UserID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *UserID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid user id")
	}
	*id = UserID(u)
	return nil
}

func (id CityID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *CityID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid city id")
	}
	*id = CityID(u)
	return nil
}

func NewUserID() UserID { return UserID(uuid.New()) }
func NewCityID() CityID { return CityID(uuid.New()) }

func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user id")
	return UserID(u), err
}

func ParseCityID(s string) (CityID, error) {
	u, err := parseUUID(s, "city id")
	return CityID(u), err
}

func parseUUID(s, field string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+field)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+field)
	}
	return u, nil
}

// CountryCode is an upper-case ISO 3166-1 alpha-2 code.
type CountryCode string

func (c CountryCode) String() string { return string(c) }

// ParseCountryCode trims and upper-cases s and requires exactly two ASCII letters.
func ParseCountryCode(s string) (CountryCode, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "country_code is required")
	}
	if len(s) != 2 || !isUpperASCII(s[0]) || !isUpperASCII(s[1]) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "country_code must be a two-letter ISO code")
	}
	return CountryCode(s), nil
}

func isUpperASCII(b byte) bool {
	return b >= 'A' && b <= 'Z'
}
