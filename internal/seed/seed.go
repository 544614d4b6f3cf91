// Package seed loads the reference catalogue from YAML. The default catalogue
// is embedded in the binary.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"travelpoints/internal/catalogue/models"
	"travelpoints/internal/points"
	id "travelpoints/pkg/domain"
)

//go:embed catalogue.yaml
var embedded []byte

// cityNamespace derives stable city IDs so reseeding never changes them.
var cityNamespace = uuid.MustParse("6f1c2b7e-3d4a-5e8f-9a0b-1c2d3e4f5a6b")

// Catalogue is a parsed reference catalogue.
type Catalogue struct {
	Countries []models.Country
	Cities    []models.City
}

type document struct {
	Countries []countryEntry `yaml:"countries"`
}

type countryEntry struct {
	Code           string      `yaml:"code"`
	Name           string      `yaml:"name"`
	Region         string      `yaml:"region"`
	Population     int64       `yaml:"population"`
	AnnualTourists int64       `yaml:"annual_tourists"`
	AreaKm2        float64     `yaml:"area_km2"`
	Cities         []cityEntry `yaml:"cities"`
}

type cityEntry struct {
	Name       string `yaml:"name"`
	Population int64  `yaml:"population"`
}

// Default returns the embedded catalogue.
func Default() (*Catalogue, error) {
	return Parse(bytes.NewReader(embedded))
}

// Parse reads a catalogue document and validates every entry.
func Parse(r io.Reader) (*Catalogue, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalogue: %w", err)
	}

	out := &Catalogue{}
	seen := make(map[string]bool, len(doc.Countries))
	for _, entry := range doc.Countries {
		code, err := id.ParseCountryCode(entry.Code)
		if err != nil {
			return nil, fmt.Errorf("country %q: %w", entry.Name, err)
		}
		if seen[code.String()] {
			return nil, fmt.Errorf("country %s listed twice", code)
		}
		seen[code.String()] = true

		if entry.Name == "" {
			return nil, fmt.Errorf("country %s: name is required", code)
		}
		region := points.Region(entry.Region)
		if !region.IsKnown() {
			return nil, fmt.Errorf("country %s: unknown region %q", code, entry.Region)
		}
		if entry.Population <= 0 || entry.AnnualTourists < 0 || entry.AreaKm2 <= 0 {
			return nil, fmt.Errorf("country %s: population and area must be positive and tourists non-negative", code)
		}

		out.Countries = append(out.Countries, models.Country{
			Code:           code.String(),
			Name:           entry.Name,
			Region:         region,
			Population:     entry.Population,
			AnnualTourists: entry.AnnualTourists,
			AreaKm2:        entry.AreaKm2,
		})

		for _, c := range entry.Cities {
			if c.Name == "" || c.Population <= 0 {
				return nil, fmt.Errorf("country %s: city %q needs a name and a positive population", code, c.Name)
			}
			out.Cities = append(out.Cities, models.City{
				ID:          CityID(code.String(), c.Name),
				CountryCode: code.String(),
				Name:        c.Name,
				Population:  c.Population,
			})
		}
	}
	return out, nil
}

// CityID is the stable ID of a seeded city.
func CityID(countryCode, name string) id.CityID {
	return id.CityID(uuid.NewSHA1(cityNamespace, []byte(countryCode+"/"+name)))
}

// Writer receives catalogue upserts.
type Writer interface {
	UpsertCountry(ctx context.Context, c models.Country) error
	UpsertCity(ctx context.Context, c models.City) error
}

// Result counts what Apply wrote.
type Result struct {
	Countries int
	Cities    int
}

// Apply upserts every country, then every city.
func Apply(ctx context.Context, w Writer, cat *Catalogue) (Result, error) {
	var res Result
	for _, c := range cat.Countries {
		if err := w.UpsertCountry(ctx, c); err != nil {
			return res, fmt.Errorf("seed country %s: %w", c.Code, err)
		}
		res.Countries++
	}
	for _, c := range cat.Cities {
		if err := w.UpsertCity(ctx, c); err != nil {
			return res, fmt.Errorf("seed city %s/%s: %w", c.CountryCode, c.Name, err)
		}
		res.Cities++
	}
	return res, nil
}
