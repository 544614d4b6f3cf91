package points

import "math"

const (
	// MinBaseline and MaxBaseline bound every corrected baseline. Raw values
	// inside the range are trusted as-is.
	MinBaseline = 2.0
	MaxBaseline = 500.0

	// FallbackRegionalAverage is used when no country in the cohort has a raw
	// baseline inside [MinBaseline, MaxBaseline].
	FallbackRegionalAverage = 25.0
)

// RawBaseline computes (population / annual tourists) * multiplier.
// A country with no recorded tourists is worth the maximum outright.
func RawBaseline(c Country, multiplier float64) float64 {
	if c.AnnualTourists == 0 {
		return MaxBaseline
	}
	return float64(c.Population) / float64(c.AnnualTourists) * multiplier
}

func inBaselineRange(v float64) bool {
	return v >= MinBaseline && v <= MaxBaseline
}

// RegionalAverage is the mean raw baseline of the cohort, using the same
// multiplier for every member. Outliers are left out so they cannot skew the
// reference used to correct them.
func RegionalAverage(cohort []Country, multiplier float64) float64 {
	var sum float64
	var n int
	for _, c := range cohort {
		raw := RawBaseline(c, multiplier)
		if inBaselineRange(raw) {
			sum += raw
			n++
		}
	}
	if n == 0 {
		return FallbackRegionalAverage
	}
	return sum / float64(n)
}

// ApplyOutlierCorrection returns raw unchanged when it is inside the trusted
// range. Otherwise the baseline is rebuilt from the regional average and land
// area, regionalAvg * log10(area/1000 + 1), clamped to the range.
func ApplyOutlierCorrection(raw, regionalAvg, areaKm2 float64) float64 {
	if inBaselineRange(raw) {
		return raw
	}
	return clamp(regionalAvg*math.Log10(areaKm2/1000+1), MinBaseline, MaxBaseline)
}

// Baseline is the rarity value of country c for a traveller from home.
// catalogue may be the full country list or just c's region; only members
// sharing c's region form the averaging cohort.
func Baseline(c Country, home Region, catalogue []Country) float64 {
	multiplier := RegionalMultiplier(home, c.Region)
	raw := RawBaseline(c, multiplier)
	if inBaselineRange(raw) {
		return raw
	}

	cohort := make([]Country, 0, len(catalogue))
	for _, other := range catalogue {
		if other.Region == c.Region {
			cohort = append(cohort, other)
		}
	}
	return ApplyOutlierCorrection(raw, RegionalAverage(cohort, multiplier), c.AreaKm2)
}

// clamp bounds v to [lo, hi]. NaN falls to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
