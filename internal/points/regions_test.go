package points

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegionalMultiplier(t *testing.T) {
	tests := []struct {
		name   string
		home   Region
		target Region
		want   float64
	}{
		{name: "same region", home: RegionEurope, target: RegionEurope, want: 1},
		{name: "europe to asia", home: RegionEurope, target: RegionAsia, want: 2.5},
		{name: "asia to europe", home: RegionAsia, target: RegionEurope, want: 2.5},
		{name: "europe to middle east", home: RegionEurope, target: RegionMiddleEast, want: 1.5},
		{name: "north america to oceania", home: RegionNorthAmerica, target: RegionOceania, want: 4},
		{name: "oceania to north america", home: RegionOceania, target: RegionNorthAmerica, want: 4},
		{name: "americas", home: RegionSouthAmerica, target: RegionNorthAmerica, want: 1.5},
		{name: "unknown home", home: "Antarctica", target: RegionEurope, want: DefaultMultiplier},
		{name: "unknown target", home: RegionAsia, target: "Atlantis", want: DefaultMultiplier},
		{name: "unknown pair equal", home: "Unknown", target: "Unknown", want: DefaultMultiplier},
		{name: "empty region", home: "", target: "", want: DefaultMultiplier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RegionalMultiplier(tt.home, tt.target))
		})
	}
}

func TestRegionalMultiplierSymmetric(t *testing.T) {
	regions := append(Regions(), "Unknown")
	for _, a := range regions {
		for _, b := range regions {
			assert.Equal(t, RegionalMultiplier(a, b), RegionalMultiplier(b, a), "%s <-> %s", a, b)
		}
	}
}

func TestRegionalMultiplierRange(t *testing.T) {
	for _, a := range Regions() {
		for _, b := range Regions() {
			m := RegionalMultiplier(a, b)
			if a == b {
				assert.Equal(t, 1.0, m)
				continue
			}
			assert.GreaterOrEqual(t, m, 1.5, "%s -> %s", a, b)
			assert.LessOrEqual(t, m, 4.0, "%s -> %s", a, b)
		}
	}
}

func TestRegionIsKnown(t *testing.T) {
	assert.True(t, RegionOceania.IsKnown())
	assert.False(t, Region("Oceanía").IsKnown())
	assert.Len(t, Regions(), 7)
}
