package points

var (
	france = Country{
		Code: "FR", Name: "France", Region: RegionEurope,
		Population: 67_390_000, AnnualTourists: 90_000_000, AreaKm2: 640_679,
	}
	germany = Country{
		Code: "DE", Name: "Germany", Region: RegionEurope,
		Population: 83_000_000, AnnualTourists: 39_000_000, AreaKm2: 357_022,
	}
	italy = Country{
		Code: "IT", Name: "Italy", Region: RegionEurope,
		Population: 60_000_000, AnnualTourists: 60_000_000, AreaKm2: 301_340,
	}
	japan = Country{
		Code: "JP", Name: "Japan", Region: RegionAsia,
		Population: 125_800_000, AnnualTourists: 31_880_000, AreaKm2: 377_975,
	}
	northKorea = Country{
		Code: "KP", Name: "North Korea", Region: RegionAsia,
		Population: 25_000_000, AnnualTourists: 5_000, AreaKm2: 120_540,
	}
	vatican = Country{
		Code: "VA", Name: "Vatican City", Region: RegionEurope,
		Population: 800, AnnualTourists: 0, AreaKm2: 0.44,
	}

	paris     = City{ID: "paris", CountryCode: "FR", Name: "Paris", Population: 2_161_000}
	marseille = City{ID: "marseille", CountryCode: "FR", Name: "Marseille", Population: 861_635}
	tokyo     = City{ID: "tokyo", CountryCode: "JP", Name: "Tokyo", Population: 13_960_000}
)

func testCatalogue() []Country {
	return []Country{france, germany, italy, japan, northKorea}
}
