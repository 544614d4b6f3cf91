package models

import (
	"strings"

	"travelpoints/pkg/platform/validation"
)

type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=2,max=30"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	HomeCountry string `json:"home_country"`
}

func (r *RegisterRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.HomeCountry = strings.TrimSpace(r.HomeCountry)
	return validation.Struct(r)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return validation.Struct(r)
}

// UpdateProfileRequest distinguishes absent fields (nil) from cleared ones.
type UpdateProfileRequest struct {
	Username    *string `json:"username" validate:"omitnil,min=2,max=30"`
	AvatarURL   *string `json:"avatar_url"`
	HomeCountry *string `json:"home_country"`
}

func (r *UpdateProfileRequest) Validate() error {
	if r.Username != nil {
		trimmed := strings.TrimSpace(*r.Username)
		r.Username = &trimmed
	}
	return validation.Struct(r)
}

func (r *UpdateProfileRequest) Patch() ProfilePatch {
	return ProfilePatch{
		Username:    r.Username,
		AvatarURL:   r.AvatarURL,
		HomeCountry: r.HomeCountry,
	}
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=72"`
}

func (r *ChangePasswordRequest) Validate() error {
	return validation.Struct(r)
}
