// Package models holds the travel-log records and their API views.
package models

import (
	"strings"
	"time"

	"travelpoints/internal/points"
	id "travelpoints/pkg/domain"
)

const dateLayout = time.DateOnly

// Date is a calendar day, serialised as "2006-01-02". RFC 3339 timestamps are
// accepted on input and truncated to the day.
type Date struct {
	t time.Time
}

func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return NewDate(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, err
	}
	return NewDate(t), nil
}

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time { return d.t }

func (d Date) String() string { return d.t.Format(dateLayout) }

func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// VisitedCountry records that a user has been to a country.
type VisitedCountry struct {
	UserID      id.UserID `json:"user_id"`
	CountryCode string    `json:"country_code"`
	VisitedAt   *Date     `json:"visited_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// VisitedCity records a city visit. CountryCode is the city's country and
// drives the cascade when the country is removed.
type VisitedCity struct {
	UserID      id.UserID `json:"user_id"`
	CityID      id.CityID `json:"city_id"`
	CountryCode string    `json:"country_code"`
	VisitedAt   *Date     `json:"visited_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// CountryVisitView is one visited country with its points breakdown.
type CountryVisitView struct {
	CountryCode   string        `json:"country_code"`
	CountryName   string        `json:"country_name"`
	Region        points.Region `json:"region"`
	VisitedAt     *Date         `json:"visited_at"`
	CitiesVisited int           `json:"cities_visited"`
	points.CountryScore
}

// Score is a user's total travel points.
type Score struct {
	UserID id.UserID `json:"user_id"`
	points.TravelScore
}
