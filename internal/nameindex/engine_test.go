package nameindex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func sampleCities() []CityInput {
	return []CityInput{
		{ID: 0, Names: []string{"Tokyo"}, AdminUnit: strp("Tokyo"), Country: "Japan", Population: 13960000},
		{ID: 1, Names: []string{"Toronto"}, AdminUnit: strp("Ontario"), Country: "Canada", Population: 2930000},
		{ID: 2, Names: []string{"Tokyo-cho"}, AdminUnit: strp("Fukuoka"), Country: "Japan", Population: 1200},
		{ID: 3, Names: []string{"Paris", "City of Light"}, AdminUnit: strp("Île-de-France"), Country: "France", Population: 2148000},
	}
}

func TestSearchExactNameScoresHighest(t *testing.T) {
	idx, err := BuildIndex(context.Background(), sampleCities())
	require.NoError(t, err)

	q := BuildQuery("tokyo")
	res, err := Search(context.Background(), idx, q, 0, 10)
	require.NoError(t, err)
	require.NotEmpty(t, res.Items)
	require.Equal(t, 0, res.Items[0].ID)
}

func TestSearchFiltersBelowThreshold(t *testing.T) {
	idx, err := BuildIndex(context.Background(), sampleCities())
	require.NoError(t, err)

	q := BuildQuery("zzzzzzzz")
	res, err := Search(context.Background(), idx, q, 0, 10)
	require.NoError(t, err)
	require.Empty(t, res.Items)
}

func TestSearchNameAndCountryRest(t *testing.T) {
	idx, err := BuildIndex(context.Background(), sampleCities())
	require.NoError(t, err)

	q := BuildQuery("tokyo japan")
	res, err := Search(context.Background(), idx, q, 0, 10)
	require.NoError(t, err)
	require.NotEmpty(t, res.Items)
	require.Equal(t, 0, res.Items[0].ID)
}

func TestSearchPaginationRespected(t *testing.T) {
	idx, err := BuildIndex(context.Background(), sampleCities())
	require.NoError(t, err)

	q := BuildQuery("tokyo")
	full, err := Search(context.Background(), idx, q, 0, 10)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(full.Items), 1)

	paged, err := Search(context.Background(), idx, q, 0, 1)
	require.NoError(t, err)
	require.Len(t, paged.Items, 1)
	require.Equal(t, full.Items[0].ID, paged.Items[0].ID)
}

func TestSearchResultsSortedDescendingByScore(t *testing.T) {
	idx, err := BuildIndex(context.Background(), sampleCities())
	require.NoError(t, err)

	q := BuildQuery("tokyo")
	res, err := Search(context.Background(), idx, q, 0, 10)
	require.NoError(t, err)
	for i := 1; i < len(res.Items); i++ {
		require.GreaterOrEqual(t, res.Items[i-1].Score, res.Items[i].Score)
	}
}

func TestSearchCacheHitRateIsPopulated(t *testing.T) {
	idx, err := BuildIndex(context.Background(), sampleCities())
	require.NoError(t, err)

	q := BuildQuery("tokyo")
	res, err := Search(context.Background(), idx, q, 0, 10)
	require.NoError(t, err)
	require.GreaterOrEqual(t, res.CacheHitRatePercent, float32(0))
	require.LessOrEqual(t, res.CacheHitRatePercent, float32(100))
}
