package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelpoints/internal/points"
	"travelpoints/internal/seed"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	t.Setenv("TRAVELPOINTS_DEFAULT_HOME_REGION", "")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseVisits(t *testing.T) {
	t.Run("merges repeated countries in first-seen order", func(t *testing.T) {
		got, err := parseVisits([]string{"fr", "JP:Tokyo", "FR:Paris, Lyon", "jp:Kyoto,tokyo"})
		require.NoError(t, err)

		assert.Equal(t, []visit{
			{code: "FR", cities: []string{"Paris", "Lyon"}},
			{code: "JP", cities: []string{"Tokyo", "Kyoto"}},
		}, got)
	})

	t.Run("rejects malformed codes", func(t *testing.T) {
		_, err := parseVisits([]string{"FRA:Paris"})
		assert.ErrorContains(t, err, "two-letter country code")
	})
}

func TestBuildTravelLog(t *testing.T) {
	cat, err := seed.Default()
	require.NoError(t, err)

	t.Run("resolves cities case-insensitively once each", func(t *testing.T) {
		log, err := buildTravelLog(cat, []visit{{code: "FR", cities: []string{"paris", "PARIS", "Lyon"}}})
		require.NoError(t, err)

		require.Len(t, log, 1)
		assert.Equal(t, "France", log[0].Country.Name)
		require.Len(t, log[0].Cities, 2)
		assert.Equal(t, "Paris", log[0].Cities[0].Name)
	})

	t.Run("unknown country", func(t *testing.T) {
		_, err := buildTravelLog(cat, []visit{{code: "ZZ"}})
		assert.ErrorContains(t, err, "ZZ is not in the catalogue")
	})

	t.Run("unknown city", func(t *testing.T) {
		_, err := buildTravelLog(cat, []visit{{code: "FR", cities: []string{"Atlantis"}}})
		assert.ErrorContains(t, err, `"Atlantis"`)
	})
}

func TestScoreCommand(t *testing.T) {
	t.Run("json output matches the engine", func(t *testing.T) {
		out, err := runCLI(t, "score", "--home", "Europe", "--visit", "FR:Paris", "--visit", "JP", "-o", "json")
		require.NoError(t, err)

		var got points.TravelScore
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		require.Len(t, got.Countries, 2)
		assert.Equal(t, "FR", got.Countries[0].CountryCode)
		assert.Greater(t, got.Countries[0].Explored, 0.0)
		assert.Equal(t, 0.0, got.Countries[1].Explored)
		assert.Equal(t, points.Round2(got.Countries[0].Total+got.Countries[1].Total), got.TotalPoints)
	})

	t.Run("table output", func(t *testing.T) {
		out, err := runCLI(t, "score", "--home", "Asia", "--visit", "IS")
		require.NoError(t, err)

		assert.Contains(t, out, "Iceland")
		assert.Contains(t, out, "Home region Asia, 1 countries")
	})

	t.Run("empty log scores zero", func(t *testing.T) {
		out, err := runCLI(t, "score", "-o", "json")
		require.NoError(t, err)
		assert.JSONEq(t, `{"countries":[],"totalPoints":0}`, out)
	})

	t.Run("unknown home region", func(t *testing.T) {
		_, err := runCLI(t, "score", "--home", "Atlantis", "--visit", "FR")
		assert.ErrorContains(t, err, `unknown home region "Atlantis"`)
	})

	t.Run("unknown output", func(t *testing.T) {
		_, err := runCLI(t, "score", "--visit", "FR", "-o", "xml")
		assert.ErrorContains(t, err, "unknown output")
	})
}

func TestMigrationTarget(t *testing.T) {
	tests := []struct {
		action string
		rest   []string
		want   int
		err    string
	}{
		{action: "up", want: -1},
		{action: "down", want: 0},
		{action: "to", rest: []string{"2"}, want: 2},
		{action: "to", err: "needs a version"},
		{action: "to", rest: []string{"x"}, err: "invalid version"},
		{action: "sideways", err: "unknown migrate action"},
	}
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			got, err := migrationTarget(tt.action, tt.rest)
			if tt.err != "" {
				assert.ErrorContains(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDatabaseCommandsRequireURL(t *testing.T) {
	t.Setenv("TRAVELPOINTS_DATABASE_URL", "")
	_, err := runCLI(t, "migrate")
	assert.ErrorContains(t, err, "database URL is required")
}
