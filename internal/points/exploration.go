package points

import "math"

// areaPerMultiplierUnit is the land area (km²) worth one unit of exploration
// ceiling; MinAreaMultiplier floors the ceiling at twice the baseline.
const (
	areaPerMultiplierUnit = 50000.0
	MinAreaMultiplier     = 2.0
)

// CityPercentage is the share of the country's population living in the city.
func CityPercentage(cityPopulation, countryPopulation int64) float64 {
	if countryPopulation == 0 {
		return 0
	}
	return float64(cityPopulation) / float64(countryPopulation)
}

// CountryExplored sums the city shares and caps the result at 1. Duplicate or
// inconsistent population data is tolerated rather than rejected.
func CountryExplored(visited []City, countryPopulation int64) float64 {
	var total float64
	for _, city := range visited {
		total += CityPercentage(city.Population, countryPopulation)
	}
	return math.Max(0, math.Min(total, 1))
}

// AreaMultiplier scales the exploration ceiling with land area.
func AreaMultiplier(areaKm2 float64) float64 {
	return math.Max(areaKm2/areaPerMultiplierUnit, MinAreaMultiplier)
}

// TotalCountryPoints is the bonus available for exploring the whole country.
func TotalCountryPoints(baseline, areaKm2 float64) float64 {
	return baseline * AreaMultiplier(areaKm2)
}
