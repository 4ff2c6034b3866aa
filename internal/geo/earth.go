// Package geo provides the geodesy and min/max reduction primitives
// the name- and climate-scoring engines are built on: pure functions,
// no shared state, safe to call from any goroutine.
package geo

import (
	"fmt"
	"math"

	"github.com/golang/geo/s2"
)

// EarthRadiusKM is the sphere radius used for every distance and
// Cartesian-coordinate computation in this package.
const EarthRadiusKM = 6371.0

// ArcLengthToChordLength converts a great-circle arc length in
// kilometers to the straight-line chord length through the sphere,
// per https://en.wikipedia.org/wiki/Chord_(geometry)#In_trigonometry.
func ArcLengthToChordLength(arcKM float64) float64 {
	theta := arcKM / EarthRadiusKM
	return EarthRadiusKM * 2.0 * math.Sin(theta/2.0)
}

// CartesianXYZ returns the Cartesian coordinates of a point at the
// given latitude/longitude (degrees) on a sphere of radius
// EarthRadiusKM.
func CartesianXYZ(latDeg, lonDeg float64) [3]float64 {
	lat := latDeg * math.Pi / 180
	lon := lonDeg * math.Pi / 180
	return [3]float64{
		EarthRadiusKM * math.Cos(lat) * math.Cos(lon),
		EarthRadiusKM * math.Cos(lat) * math.Sin(lon),
		EarthRadiusKM * math.Sin(lat),
	}
}

// CartesianDistanceSquared returns the squared Euclidean distance
// between two Cartesian points, avoiding a square root on the hot
// dispersion-filter path.
func CartesianDistanceSquared(a, b [3]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return dx*dx + dy*dy + dz*dz
}

// ArcDistanceKM returns the great-circle distance in kilometers
// between two lat/lon points in degrees, per
// https://en.wikipedia.org/wiki/Great-circle_distance#Formulae.
func ArcDistanceKM(aLat, aLon, bLat, bLon float64) float64 {
	phiA := aLat * math.Pi / 180
	phiB := bLat * math.Pi / 180
	lambdaA := aLon * math.Pi / 180
	lambdaB := bLon * math.Pi / 180
	cosAngle := math.Sin(phiA)*math.Sin(phiB) + math.Cos(phiA)*math.Cos(phiB)*math.Cos(lambdaA-lambdaB)
	// Rounding can push the cosine just past ±1 for (nearly) identical
	// or antipodal points, where Acos would return NaN.
	cosAngle = math.Max(-1, math.Min(1, cosAngle))
	return EarthRadiusKM * math.Acos(cosAngle)
}

// Round1AndAssertFinite rounds val to one decimal place and panics if
// the result is not finite. Most of the underlying data is
// int * 0.1, so this also removes floating-point rounding artifacts.
func Round1AndAssertFinite(val float64) float64 {
	rounded := math.Round(val*10) / 10
	if math.IsNaN(rounded) || math.IsInf(rounded, 0) {
		panic(fmt.Sprintf("geo: non-finite distance: %v", rounded))
	}
	return rounded
}

// ValidCoordinate reports whether lat/lon (degrees) form a valid
// point on the globe. Guards the climate index build against
// malformed ingestion data before it corrupts a global min/max
// reduction.
func ValidCoordinate(latDeg, lonDeg float64) bool {
	if math.IsNaN(latDeg) || math.IsNaN(lonDeg) || math.IsInf(latDeg, 0) || math.IsInf(lonDeg, 0) {
		return false
	}
	return s2.LatLngFromDegrees(latDeg, lonDeg).IsValid()
}
