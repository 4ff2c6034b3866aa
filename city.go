// Package climatch is an in-memory search service over the world's
// cities: fuzzy name lookup and climate-similarity search, built
// without any global mutable state — every search goes through an
// explicit Engine value.
package climatch

import "time"

// ClimateProfile holds twelve monthly readings for each climate
// variable a city is scored on. Humidity may be entirely unknown for
// a city (some stations don't report it); the other five variables
// are always fully populated by the ingestion layer.
type ClimateProfile struct {
	HumidityMonthly [12]*float32 `json:"humidityMonthly"`
	PPTMonthly      [12]float32  `json:"pptMonthly"`
	SRadMonthly     [12]float32  `json:"sradMonthly"`
	TMaxMonthly     [12]float32  `json:"tmaxMonthly"`
	TMinMonthly     [12]float32  `json:"tminMonthly"`
	WSMonthly       [12]float32  `json:"wsMonthly"`
}

// City is one row of the world-cities dataset. Names holds every
// known spelling/alias, with Names[0] treated as the canonical
// display name.
type City struct {
	ID               int            `json:"id"`
	Names            []string       `json:"names"`
	Latitude         float64        `json:"latitude"`
	Longitude        float64        `json:"longitude"`
	AdminUnit        *string        `json:"adminUnit,omitempty"`
	Country          string         `json:"country"`
	Population       uint64         `json:"population"`
	Elevation        *int           `json:"elevation,omitempty"`
	Region           string         `json:"region"`
	ModificationDate time.Time      `json:"modificationDate"`
	Climate          ClimateProfile `json:"climate"`
}
