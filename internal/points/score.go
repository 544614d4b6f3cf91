// Package points implements the Travel Points calculation engine.
//
// Everything here is pure domain logic: no I/O, no clocks, no shared mutable
// state. Callers pass immutable catalogue and travel-log snapshots and get
// new result values back, so any number of calls may run concurrently.
//
// The score of a country is its rarity baseline plus the share of its
// exploration ceiling the traveller has covered:
//
//	baseline    = outlier-corrected (population / tourists) * regional multiplier
//	ceiling     = baseline * max(area / 50000, 2)
//	explored    = min(sum(city population / country population), 1)
//	total       = baseline + ceiling * explored
package points

import "math"

// ScoreCountry computes the score of one visited country.
// Each field is rounded independently from unrounded intermediates.
func ScoreCountry(c Country, home Region, catalogue []Country, visited []City) CountryScore {
	baseline := Baseline(c, home, catalogue)
	ceiling := TotalCountryPoints(baseline, c.AreaKm2)
	explored := CountryExplored(visited, c.Population)
	exploration := ceiling * explored

	return CountryScore{
		Baseline:          round(baseline, 2),
		ExplorationPoints: round(exploration, 2),
		Explored:          round(explored, 4),
		Total:             round(baseline+exploration, 2),
	}
}

// ScoreTravelLog scores every visited country in order and sums the already
// rounded totals, so TotalPoints may drift from an exact sum by up to 0.01
// per country. An empty log scores zero with an empty breakdown.
func ScoreTravelLog(home Region, catalogue []Country, visited []VisitedCountry) TravelScore {
	breakdown := make([]CountryBreakdown, 0, len(visited))
	var sum float64
	for _, v := range visited {
		s := ScoreCountry(v.Country, home, catalogue, v.Cities)
		breakdown = append(breakdown, CountryBreakdown{
			CountryCode:  v.Country.Code,
			CountryName:  v.Country.Name,
			CountryScore: s,
		})
		sum += s.Total
	}
	return TravelScore{
		Countries:   breakdown,
		TotalPoints: round(sum, 2),
	}
}

// Round2 rounds to two decimals the same way scores are rounded. Exposed for
// views that display baseline or percentage values outside a full score.
func Round2(v float64) float64 {
	return round(v, 2)
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
