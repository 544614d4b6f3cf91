package models

import (
	"strings"

	dErrors "travelpoints/pkg/domain-errors"
	"travelpoints/pkg/platform/validation"
)

type AddCountryRequest struct {
	CountryCode string `json:"country_code" validate:"len=2,alpha"`
	VisitedAt   *Date  `json:"visited_at"`
}

func (r *AddCountryRequest) Validate() error {
	r.CountryCode = strings.ToUpper(strings.TrimSpace(r.CountryCode))
	if r.CountryCode == "" {
		return dErrors.New(dErrors.CodeBadRequest, "country_code is required")
	}
	return validation.Struct(r)
}

type AddCityRequest struct {
	CityID    string `json:"city_id" validate:"uuid"`
	VisitedAt *Date  `json:"visited_at"`
}

func (r *AddCityRequest) Validate() error {
	r.CityID = strings.TrimSpace(r.CityID)
	if r.CityID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "city_id is required")
	}
	return validation.Struct(r)
}
