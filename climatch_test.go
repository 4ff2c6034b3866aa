package climatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andreiashu/climatch/internal/ingestion"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	records, err := ingestion.NewDemoLoader().Load(context.Background())
	require.NoError(t, err)

	cities := make([]City, len(records))
	for i, r := range records {
		cities[i] = City{
			ID:               r.ID,
			Names:            r.Names,
			Latitude:         r.Latitude,
			Longitude:        r.Longitude,
			AdminUnit:        r.AdminUnit,
			Country:          r.Country,
			Population:       r.Population,
			Elevation:        r.Elevation,
			Region:           r.Region,
			ModificationDate: r.ModificationDate,
			Climate: ClimateProfile{
				HumidityMonthly: r.HumidityMonthly,
				PPTMonthly:      r.PPTMonthly,
				SRadMonthly:     r.SRadMonthly,
				TMaxMonthly:     r.TMaxMonthly,
				TMinMonthly:     r.TMinMonthly,
				WSMonthly:       r.WSMonthly,
			},
		}
	}

	engine, err := New(context.Background(), cities)
	require.NoError(t, err)
	return engine
}

func TestSearchCitiesFindsTokyo(t *testing.T) {
	engine := testEngine(t)
	res, err := engine.SearchCities(context.Background(), "Tokyo", SearchDefaultStartIndex, SearchDefaultMaxItems)
	require.NoError(t, err)
	require.NotEmpty(t, res.Items)
	require.Equal(t, 0, res.Items[0].ID)
}

func TestSearchClimateFirstItemIsQueryItself(t *testing.T) {
	engine := testEngine(t)
	res := engine.SearchClimate(3, ClimateDefaultStartIndex, ClimateDefaultMaxItems)
	require.NotEmpty(t, res.Items)
	require.Equal(t, 3, res.Items[0].ID)
	require.Equal(t, 3, res.Items[0].City.ID)
	require.Equal(t, 0.0, res.Items[0].DistanceKM)
	require.Equal(t, float32(100), res.Items[0].SimilarityPercent)
}

func TestSearchClimateMunichMatchesParisClosely(t *testing.T) {
	engine := testEngine(t)
	res := engine.SearchClimate(3, ClimateDefaultStartIndex, ClimateDefaultMaxItems)
	require.Greater(t, len(res.Items), 1)
	require.Equal(t, 2, res.Items[1].City.ID)
}

func TestCityByID(t *testing.T) {
	engine := testEngine(t)
	city, ok := engine.CityByID(0)
	require.True(t, ok)
	require.Equal(t, "Tokyo", city.Names[0])

	_, ok = engine.CityByID(999)
	require.False(t, ok)
}
