// Package ingestion defines the boundary between this service and the
// external pipelines that produce city and climate data (Geonames for
// names/population/admin hierarchy, TerraClimate for monthly climate
// normals). Building those pipelines is out of scope; this package
// only fixes the interface a loader must satisfy and ships a small
// embedded dataset so the binaries in cmd/ run end to end without one.
package ingestion

import (
	"context"
	"fmt"
	"time"
)

// Record is the raw shape a Loader produces for one city, ingestion
// ready but not yet wired to climatch.City's in-memory layout.
type Record struct {
	ID               int
	Names            []string
	Latitude         float64
	Longitude        float64
	AdminUnit        *string
	Country          string
	Population       uint64
	Elevation        *int
	Region           string
	ModificationDate time.Time
	HumidityMonthly  [12]*float32
	PPTMonthly       [12]float32
	SRadMonthly      [12]float32
	TMaxMonthly      [12]float32
	TMinMonthly      [12]float32
	WSMonthly        [12]float32
}

// Loader produces the full set of city records an Engine is built
// from. A real implementation reads Geonames and TerraClimate extracts
// and joins them by coordinate; see DESIGN.md for why that join isn't
// implemented here.
type Loader interface {
	Load(ctx context.Context) ([]Record, error)
}

// demoLoader serves a small, hand-picked set of real cities with
// plausible climate normals, large enough to exercise both the name
// and climate search paths without any external data dependency.
type demoLoader struct{}

// NewDemoLoader returns a Loader backed by an embedded handful of
// cities, for local development and the cmd/ binaries' default run
// mode.
func NewDemoLoader() Loader { return demoLoader{} }

func (demoLoader) Load(ctx context.Context) ([]Record, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("ingestion: %w", ctx.Err())
	default:
	}
	return demoRecords, nil
}

func strp(s string) *string { return &s }
func intp(v int) *int       { return &v }
func f32p(v float32) *float32 { return &v }

func monthly(values [12]float32) [12]float32 { return values }

func humidity(values [12]float32) [12]*float32 {
	var out [12]*float32
	for i, v := range values {
		v := v
		out[i] = &v
	}
	return out
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var demoRecords = []Record{
	{
		ID: 0, Names: []string{"Tokyo", "Edo"}, Latitude: 35.6895, Longitude: 139.6917,
		AdminUnit: strp("Tokyo"), Country: "Japan", Population: 13960000, Elevation: intp(40),
		Region: "Asia", ModificationDate: date(2024, time.January, 12),
		HumidityMonthly: humidity([12]float32{55, 57, 60, 64, 69, 75, 78, 76, 71, 65, 60, 56}),
		PPTMonthly:      monthly([12]float32{52, 56, 118, 125, 138, 168, 154, 168, 210, 198, 93, 51}),
		SRadMonthly:     monthly([12]float32{110, 130, 150, 170, 185, 160, 175, 190, 150, 130, 110, 100}),
		TMaxMonthly:     monthly([12]float32{9, 10, 13, 19, 23, 26, 30, 31, 27, 22, 17, 12}),
		TMinMonthly:     monthly([12]float32{1, 2, 5, 10, 15, 19, 23, 24, 21, 15, 9, 4}),
		WSMonthly:       monthly([12]float32{3.1, 3.2, 3.5, 3.4, 3.1, 2.9, 2.8, 2.7, 3.0, 3.0, 3.0, 3.0}),
	},
	{
		ID: 1, Names: []string{"Toronto"}, Latitude: 43.6532, Longitude: -79.3832,
		AdminUnit: strp("Ontario"), Country: "Canada", Population: 2930000, Elevation: intp(76),
		Region: "North America", ModificationDate: date(2024, time.March, 3),
		HumidityMonthly: humidity([12]float32{68, 66, 62, 58, 58, 61, 62, 64, 66, 68, 70, 70}),
		PPTMonthly:      monthly([12]float32{55, 52, 58, 70, 75, 70, 68, 78, 80, 65, 75, 70}),
		SRadMonthly:     monthly([12]float32{70, 90, 120, 150, 180, 195, 200, 180, 140, 100, 70, 60}),
		TMaxMonthly:     monthly([12]float32{-1, 0, 5, 12, 19, 24, 27, 26, 21, 14, 7, 1}),
		TMinMonthly:     monthly([12]float32{-8, -7, -3, 3, 9, 14, 17, 17, 13, 6, 1, -5}),
		WSMonthly:       monthly([12]float32{4.5, 4.4, 4.6, 4.5, 4.0, 3.7, 3.5, 3.4, 3.7, 4.1, 4.4, 4.5}),
	},
	{
		ID: 2, Names: []string{"Paris", "City of Light"}, Latitude: 48.8566, Longitude: 2.3522,
		AdminUnit: strp("Île-de-France"), Country: "France", Population: 2148000, Elevation: intp(35),
		Region: "Europe", ModificationDate: date(2023, time.November, 20),
		HumidityMonthly: humidity([12]float32{84, 80, 74, 69, 69, 67, 65, 67, 72, 80, 85, 86}),
		PPTMonthly:      monthly([12]float32{53, 43, 48, 53, 65, 54, 63, 43, 54, 60, 59, 59}),
		SRadMonthly:     monthly([12]float32{55, 80, 120, 160, 190, 200, 205, 190, 145, 95, 60, 45}),
		TMaxMonthly:     monthly([12]float32{7, 8, 12, 16, 19, 23, 25, 25, 21, 16, 10, 7}),
		TMinMonthly:     monthly([12]float32{3, 3, 5, 7, 11, 14, 16, 16, 13, 9, 5, 3}),
		WSMonthly:       monthly([12]float32{4.0, 4.0, 3.9, 3.6, 3.3, 3.1, 3.0, 2.9, 3.1, 3.4, 3.7, 3.9}),
	},
	{
		ID: 3, Names: []string{"Munich", "München"}, Latitude: 48.1374, Longitude: 11.5755,
		AdminUnit: strp("Bavaria"), Country: "Germany", Population: 1512000, Elevation: intp(520),
		Region: "Europe", ModificationDate: date(2023, time.November, 20),
		HumidityMonthly: humidity([12]float32{80, 76, 70, 65, 66, 68, 68, 70, 75, 80, 84, 83}),
		PPTMonthly:      monthly([12]float32{60, 50, 55, 65, 95, 115, 125, 110, 80, 60, 60, 65}),
		SRadMonthly:     monthly([12]float32{55, 85, 130, 165, 195, 205, 210, 190, 145, 95, 55, 45}),
		TMaxMonthly:     monthly([12]float32{3, 5, 10, 14, 19, 22, 24, 24, 19, 13, 7, 4}),
		TMinMonthly:     monthly([12]float32{-3, -2, 1, 4, 9, 12, 14, 14, 10, 5, 1, -2}),
		WSMonthly:       monthly([12]float32{2.8, 3.0, 3.1, 3.0, 2.8, 2.6, 2.4, 2.3, 2.4, 2.5, 2.7, 2.8}),
	},
	{
		ID: 4, Names: []string{"Sydney"}, Latitude: -33.8688, Longitude: 151.2093,
		AdminUnit: strp("New South Wales"), Country: "Australia", Population: 5312000, Elevation: intp(58),
		Region: "Oceania", ModificationDate: date(2024, time.February, 14),
		HumidityMonthly: [12]*float32{},
		PPTMonthly:      monthly([12]float32{103, 117, 129, 127, 123, 131, 97, 81, 69, 77, 83, 78}),
		SRadMonthly:     monthly([12]float32{230, 210, 180, 150, 115, 100, 110, 140, 170, 195, 215, 230}),
		TMaxMonthly:     monthly([12]float32{26, 26, 25, 22, 19, 17, 16, 18, 20, 22, 24, 25}),
		TMinMonthly:     monthly([12]float32{19, 19, 17, 14, 11, 9, 8, 9, 11, 13, 16, 18}),
		WSMonthly:       monthly([12]float32{3.5, 3.4, 3.2, 2.9, 2.7, 2.8, 2.9, 3.1, 3.4, 3.6, 3.7, 3.6}),
	},
	{
		ID: 5, Names: []string{"Toronto", "Tkaronto"}, Latitude: 43.7, Longitude: -79.4,
		AdminUnit: strp("Ontario"), Country: "Canada", Population: 1200, Elevation: intp(90),
		Region: "North America", ModificationDate: date(2022, time.June, 1),
		HumidityMonthly: humidity([12]float32{68, 66, 62, 58, 58, 61, 62, 64, 66, 68, 70, 70}),
		PPTMonthly:      monthly([12]float32{55, 52, 58, 70, 75, 70, 68, 78, 80, 65, 75, 70}),
		SRadMonthly:     monthly([12]float32{70, 90, 120, 150, 180, 195, 200, 180, 140, 100, 70, 60}),
		TMaxMonthly:     monthly([12]float32{-1, 0, 5, 12, 19, 24, 27, 26, 21, 14, 7, 1}),
		TMinMonthly:     monthly([12]float32{-8, -7, -3, 3, 9, 14, 17, 17, 13, 6, 1, -5}),
		WSMonthly:       monthly([12]float32{4.5, 4.4, 4.6, 4.5, 4.0, 3.7, 3.5, 3.4, 3.7, 4.1, 4.4, 4.5}),
	},
}
