package points

// Region is a macro-region used to look up travel distance between a user's
// home and a destination. Values outside the enumerated set are accepted and
// resolve to the default multiplier.
type Region string

const (
	RegionEurope       Region = "Europe"
	RegionAsia         Region = "Asia"
	RegionMiddleEast   Region = "Middle East"
	RegionAfrica       Region = "Africa"
	RegionNorthAmerica Region = "North America"
	RegionSouthAmerica Region = "South America"
	RegionOceania      Region = "Oceania"
)

// DefaultMultiplier applies to every pair missing from the matrix, including
// unrecognised region names.
const DefaultMultiplier = 2.5

// Regions returns the enumerated macro-regions in table order.
func Regions() []Region {
	return []Region{
		RegionEurope,
		RegionAsia,
		RegionMiddleEast,
		RegionAfrica,
		RegionNorthAmerica,
		RegionSouthAmerica,
		RegionOceania,
	}
}

// IsKnown reports whether r is one of the enumerated macro-regions.
func (r Region) IsKnown() bool {
	for _, known := range Regions() {
		if r == known {
			return true
		}
	}
	return false
}

func (r Region) String() string {
	return string(r)
}

// regionPair is an unordered key: newPair sorts its members so (A,B) and
// (B,A) address the same entry.
type regionPair struct {
	a, b Region
}

func newPair(x, y Region) regionPair {
	if y < x {
		x, y = y, x
	}
	return regionPair{a: x, b: y}
}

var distanceMatrix = buildMatrix(map[[2]Region]float64{
	{RegionEurope, RegionMiddleEast}:   1.5,
	{RegionEurope, RegionAfrica}:       2.5,
	{RegionEurope, RegionAsia}:         2.5,
	{RegionEurope, RegionNorthAmerica}: 3,
	{RegionEurope, RegionSouthAmerica}: 3,
	{RegionEurope, RegionOceania}:      4,

	{RegionAsia, RegionMiddleEast}:   1.5,
	{RegionAsia, RegionOceania}:      2.5,
	{RegionAsia, RegionAfrica}:       3,
	{RegionAsia, RegionNorthAmerica}: 3,
	{RegionAsia, RegionSouthAmerica}: 4,

	{RegionMiddleEast, RegionAfrica}:       1.5,
	{RegionMiddleEast, RegionNorthAmerica}: 3,
	{RegionMiddleEast, RegionSouthAmerica}: 3.5,
	{RegionMiddleEast, RegionOceania}:      4,

	{RegionAfrica, RegionSouthAmerica}: 3,
	{RegionAfrica, RegionNorthAmerica}: 3,
	{RegionAfrica, RegionOceania}:      4,

	{RegionNorthAmerica, RegionSouthAmerica}: 1.5,
	{RegionNorthAmerica, RegionOceania}:      4,

	{RegionSouthAmerica, RegionOceania}: 4,
})

func buildMatrix(pairs map[[2]Region]float64) map[regionPair]float64 {
	m := make(map[regionPair]float64, len(pairs)+len(Regions()))
	for _, r := range Regions() {
		m[newPair(r, r)] = 1
	}
	for k, v := range pairs {
		m[newPair(k[0], k[1])] = v
	}
	return m
}

// RegionalMultiplier returns the distance multiplier between a home region
// and a target region. Travel distance is directionless, so the argument order
// never changes the result.
func RegionalMultiplier(home, target Region) float64 {
	if v, ok := distanceMatrix[newPair(home, target)]; ok {
		return v
	}
	return DefaultMultiplier
}
