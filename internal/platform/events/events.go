// Package events publishes travel-log changes for downstream consumers.
// Publishing is best effort: callers log failures and carry on.
package events

import (
	"context"
	"encoding/json"
	"time"
)

type Type string

const (
	CountryAdded   Type = "country_added"
	CountryRemoved Type = "country_removed"
	CityAdded      Type = "city_added"
	CityRemoved    Type = "city_removed"
)

// Event is one change to a user's travel log.
type Event struct {
	Type        Type      `json:"type"`
	UserID      string    `json:"user_id"`
	CountryCode string    `json:"country_code,omitempty"`
	CityID      string    `json:"city_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
	RequestID   string    `json:"request_id,omitempty"`
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Encode returns the wire form of e: JSON value keyed by user id, so every
// event of one user lands on the same partition in order.
func Encode(e Event) (key, value []byte, err error) {
	value, err = json.Marshal(e)
	if err != nil {
		return nil, nil, err
	}
	return []byte(e.UserID), value, nil
}
