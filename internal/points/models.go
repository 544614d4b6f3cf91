package points

// Country is the reference data the engine needs for one destination.
// Callers own the catalogue; the engine only reads it.
type Country struct {
	Code           string
	Name           string
	Region         Region
	Population     int64
	AnnualTourists int64
	AreaKm2        float64
}

// City is a visited settlement inside a country. The engine does not check
// that it belongs to the country it is scored against.
type City struct {
	ID          string
	CountryCode string
	Name        string
	Population  int64
}

// VisitedCountry pairs a country with the cities logged for it.
type VisitedCountry struct {
	Country Country
	Cities  []City
}

// CountryScore is the per-country result. Every field is rounded at
// construction: Baseline, ExplorationPoints and Total to 2 decimals, Explored
// to 4.
type CountryScore struct {
	Baseline          float64 `json:"baseline"`
	ExplorationPoints float64 `json:"explorationPoints"`
	Explored          float64 `json:"explored"`
	Total             float64 `json:"total"`
}

// CountryBreakdown is one entry of a TravelScore.
type CountryBreakdown struct {
	CountryCode string `json:"countryCode"`
	CountryName string `json:"countryName"`
	CountryScore
}

// TravelScore is the total over a user's travel log.
type TravelScore struct {
	Countries   []CountryBreakdown `json:"countries"`
	TotalPoints float64            `json:"totalPoints"`
}
