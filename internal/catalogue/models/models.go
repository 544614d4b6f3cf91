package models

import (
	"travelpoints/internal/points"
	id "travelpoints/pkg/domain"
)

// Country is one entry of the reference catalogue.
type Country struct {
	Code           string        `json:"code"`
	Name           string        `json:"name"`
	Region         points.Region `json:"region"`
	Population     int64         `json:"population"`
	AnnualTourists int64         `json:"annual_tourists"`
	AreaKm2        float64       `json:"area_km2"`
}

// ToPoints converts the record into the engine's input shape.
func (c Country) ToPoints() points.Country {
	return points.Country{
		Code:           c.Code,
		Name:           c.Name,
		Region:         c.Region,
		Population:     c.Population,
		AnnualTourists: c.AnnualTourists,
		AreaKm2:        c.AreaKm2,
	}
}

// City belongs to exactly one country.
type City struct {
	ID          id.CityID `json:"id"`
	CountryCode string    `json:"country_code"`
	Name        string    `json:"name"`
	Population  int64     `json:"population"`
}

func (c City) ToPoints() points.City {
	return points.City{
		ID:          c.ID.String(),
		CountryCode: c.CountryCode,
		Name:        c.Name,
		Population:  c.Population,
	}
}

// CountryView is a country with its baseline as seen from one home region.
type CountryView struct {
	Country
	BaselinePoints float64 `json:"baseline_points"`
}

// CityView is a city with its share of the country's population, in percent
// rounded to two decimals.
type CityView struct {
	City
	Percentage float64 `json:"percentage"`
}

// CountryDetail is a country view with its cities, most populous first.
type CountryDetail struct {
	CountryView
	Cities []CityView `json:"cities"`
}

// NewCityView computes the city's share of countryPopulation.
func NewCityView(c City, countryPopulation int64) CityView {
	return CityView{
		City:       c,
		Percentage: points.Round2(points.CityPercentage(c.Population, countryPopulation) * 100),
	}
}
