package climateindex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func f32p(v float32) *float32 { return &v }

func flat12(v float32) [12]float32 {
	var out [12]float32
	for i := range out {
		out[i] = v
	}
	return out
}

func humidity12(v float32) [12]*float32 {
	var out [12]*float32
	for i := range out {
		out[i] = f32p(v)
	}
	return out
}

func sampleClimateCities() []ClimateInput {
	return []ClimateInput{
		{ID: 0, Lat: 48.1374, Lon: 11.5755, Humidity: humidity12(70), PPT: flat12(60), SRad: flat12(150), TMax: flat12(15), TMin: flat12(5), WS: flat12(3)},
		{ID: 1, Lat: 48.8566, Lon: 2.3522, Humidity: humidity12(72), PPT: flat12(55), SRad: flat12(140), TMax: flat12(14), TMin: flat12(6), WS: flat12(3.2)},
		{ID: 2, Lat: 35.6762, Lon: 139.6503, Humidity: humidity12(62), PPT: flat12(140), SRad: flat12(180), TMax: flat12(20), TMin: flat12(10), WS: flat12(2.5)},
		{ID: 3, Lat: -33.8688, Lon: 151.2093, Humidity: [12]*float32{}, PPT: flat12(90), SRad: flat12(170), TMax: flat12(22), TMin: flat12(14), WS: flat12(4.0)},
	}
}

func TestBuildIndexRejectsInvalidCoordinate(t *testing.T) {
	cities := sampleClimateCities()
	cities[0].Lat = 200
	_, err := BuildIndex(context.Background(), cities)
	require.Error(t, err)
}

func TestBuildIndexHandlesMissingHumidity(t *testing.T) {
	idx, err := BuildIndex(context.Background(), sampleClimateCities())
	require.NoError(t, err)
	require.Len(t, idx.items, 4)

	var sydney item
	for _, it := range idx.items {
		if it.id == 3 {
			sydney = it
		}
	}
	require.False(t, sydney.relative.Humidity.Valid)
}

func TestSearchReturnsEmptyForUnknownID(t *testing.T) {
	idx, err := BuildIndex(context.Background(), sampleClimateCities())
	require.NoError(t, err)
	res := Search(idx, 999, 0, 10)
	require.Empty(t, res.Items)
}

func TestSearchFirstItemIsQueryCityItself(t *testing.T) {
	idx, err := BuildIndex(context.Background(), sampleClimateCities())
	require.NoError(t, err)
	res := Search(idx, 0, 0, 10)
	require.NotEmpty(t, res.Items)
	require.Equal(t, 0, res.Items[0].ID)
	require.Equal(t, 0.0, res.Items[0].DistanceKM)
	require.Equal(t, float32(100), res.Items[0].SimilarityPercent)
}

func TestSearchMunichClosestToParisClimatically(t *testing.T) {
	idx, err := BuildIndex(context.Background(), sampleClimateCities())
	require.NoError(t, err)
	res := Search(idx, 0, 0, 10)
	require.Greater(t, len(res.Items), 1)
	require.Equal(t, 1, res.Items[1].ID)
	require.Greater(t, res.Items[1].SimilarityPercent, float32(0))
}
