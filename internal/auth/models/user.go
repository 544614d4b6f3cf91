package models

import (
	"time"

	id "travelpoints/pkg/domain"
)

// User is a registered traveller. PasswordHash never leaves the service.
type User struct {
	ID           id.UserID
	Username     string
	Email        string
	PasswordHash string
	AvatarURL    *string
	HomeCountry  *string
	CreatedAt    time.Time
}

// HomeCountryCode returns the home country or "" when unset.
func (u *User) HomeCountryCode() string {
	if u.HomeCountry == nil {
		return ""
	}
	return *u.HomeCountry
}

// Profile is the public view of a user.
type Profile struct {
	ID          id.UserID `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	AvatarURL   *string   `json:"avatar_url"`
	HomeCountry *string   `json:"home_country"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u *User) Profile() Profile {
	return Profile{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		AvatarURL:   u.AvatarURL,
		HomeCountry: u.HomeCountry,
		CreatedAt:   u.CreatedAt,
	}
}

// ProfilePatch carries the profile fields a user may change. A nil field is
// left untouched; a pointer to "" clears avatar_url or home_country.
type ProfilePatch struct {
	Username    *string
	AvatarURL   *string
	HomeCountry *string
}

func (p ProfilePatch) IsEmpty() bool {
	return p.Username == nil && p.AvatarURL == nil && p.HomeCountry == nil
}

// Session is what register and login hand back to the client.
type Session struct {
	User      Profile   `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
