package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"travelpoints/internal/points"
	"travelpoints/internal/seed"
	pstrings "travelpoints/pkg/platform/strings"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// visit is one --visit flag: a country code and optional city names.
type visit struct {
	code   string
	cities []string
}

func newScoreCmd(a *app) *cobra.Command {
	var (
		visits []string
		file   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a travel log against the catalogue without a database",
		Example: `  travelctl score --home Europe --visit FR:Paris --visit JP:Tokyo,Kyoto
  travelctl score --visit IS --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			home := points.Region(a.config().DefaultHomeRegion)
			if !home.IsKnown() {
				return fmt.Errorf("unknown home region %q (known: %s)", home, joinRegions())
			}
			if output != outputTable && output != outputJSON {
				return fmt.Errorf("unknown output %q (table or json)", output)
			}

			cat, err := loadCatalogue(file)
			if err != nil {
				return err
			}
			parsed, err := parseVisits(visits)
			if err != nil {
				return err
			}
			log, err := buildTravelLog(cat, parsed)
			if err != nil {
				return err
			}

			catalogue := make([]points.Country, 0, len(cat.Countries))
			for _, c := range cat.Countries {
				catalogue = append(catalogue, c.ToPoints())
			}
			score := points.ScoreTravelLog(home, catalogue, log)

			if output == outputJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(score)
			}
			return writeScoreTable(cmd.OutOrStdout(), home, score)
		},
	}

	cmd.Flags().String("home", "Europe", "home region of the traveller")
	_ = a.v.BindPFlag("default_home_region", cmd.Flags().Lookup("home"))
	cmd.Flags().StringArrayVar(&visits, "visit", nil, "visited country, optionally with cities: FR or JP:Tokyo,Kyoto (repeatable)")
	cmd.Flags().StringVar(&file, "catalogue", "", "catalogue YAML file (defaults to the embedded catalogue)")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table or json")
	return cmd
}

// parseVisits merges repeated countries and keeps first-seen order.
func parseVisits(flags []string) ([]visit, error) {
	codes := make([]string, 0, len(flags))
	cities := make(map[string][]string, len(flags))
	for _, f := range flags {
		code, names, _ := strings.Cut(f, ":")
		code = strings.ToUpper(strings.TrimSpace(code))
		if len(code) != 2 {
			return nil, fmt.Errorf("invalid visit %q: want a two-letter country code", f)
		}
		codes = append(codes, code)
		if names != "" {
			cities[code] = append(cities[code], strings.Split(names, ",")...)
		}
	}

	codes = pstrings.DedupeAndTrimUpper(codes)
	out := make([]visit, 0, len(codes))
	for _, code := range codes {
		out = append(out, visit{code: code, cities: pstrings.DedupeFold(cities[code])})
	}
	return out, nil
}

// buildTravelLog resolves visits against cat. City names match case-insensitively.
func buildTravelLog(cat *seed.Catalogue, visits []visit) ([]points.VisitedCountry, error) {
	log := make([]points.VisitedCountry, 0, len(visits))
	for _, v := range visits {
		var found bool
		var entry points.VisitedCountry
		for _, c := range cat.Countries {
			if c.Code == v.code {
				entry.Country = c.ToPoints()
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("country %s is not in the catalogue", v.code)
		}

		seen := make(map[string]bool, len(v.cities))
		for _, name := range v.cities {
			city, ok := findCity(cat, v.code, name)
			if !ok {
				return nil, fmt.Errorf("city %q is not in the catalogue for %s", name, v.code)
			}
			if seen[city.ID] {
				continue
			}
			seen[city.ID] = true
			entry.Cities = append(entry.Cities, city)
		}
		log = append(log, entry)
	}
	return log, nil
}

func findCity(cat *seed.Catalogue, code, name string) (points.City, bool) {
	for _, c := range cat.Cities {
		if c.CountryCode == code && strings.EqualFold(c.Name, name) {
			return c.ToPoints(), true
		}
	}
	return points.City{}, false
}

func writeScoreTable(w io.Writer, home points.Region, score points.TravelScore) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Code", "Country", "Baseline", "Explored", "Exploration", "Total"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	green := color.New(color.FgGreen).SprintFunc()
	rows := make([][]string, 0, len(score.Countries))
	for _, c := range score.Countries {
		rows = append(rows, []string{
			c.CountryCode,
			c.CountryName,
			formatPoints(c.Baseline),
			strconv.FormatFloat(c.Explored*100, 'f', 2, 64) + "%",
			formatPoints(c.ExplorationPoints),
			green(formatPoints(c.Total)),
		})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "Home region %s, %d countries, total %s points\n",
		home, len(score.Countries), bold(formatPoints(score.TotalPoints)))
	return err
}

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func joinRegions() string {
	regions := points.Regions()
	names := make([]string, 0, len(regions))
	for _, r := range regions {
		names = append(names, string(r))
	}
	return strings.Join(names, ", ")
}
