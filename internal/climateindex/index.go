// Package climateindex builds and queries the climate-similarity
// search index: per-variable min/max normalization across the whole
// dataset, Cartesian projection for cheap distance checks, and a
// dispersion-filtered nearest-climate search.
package climateindex

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/TomiHiltunen/geohash-golang"

	"github.com/andreiashu/climatch/internal/geo"
)

// ClimateInput is the subset of a city record the climate index
// needs at build time: its coordinates and twelve monthly readings
// for each of the five required variables, plus an optional sixth
// variable (humidity) that may be entirely absent for a given city.
type ClimateInput struct {
	ID        int
	Lat, Lon  float64
	Humidity  [12]*float32 // nil entries allowed; may be all-nil
	PPT       [12]float32
	SRad      [12]float32
	TMax      [12]float32
	TMin      [12]float32
	WS        [12]float32
}

// minmaxSet bundles the six per-variable min/max pairs tracked for a
// single city (or, after reduction, for the whole dataset).
type minmaxSet struct {
	Humidity geo.OptionalMinMax
	PPT      geo.MinMax
	SRad     geo.MinMax
	TMax     geo.MinMax
	TMin     geo.MinMax
	WS       geo.MinMax
}

func climateMinMax(c ClimateInput) minmaxSet {
	return minmaxSet{
		Humidity: geo.ComputeOptional(c.Humidity[:]),
		PPT:      geo.Compute(c.PPT[:]),
		SRad:     geo.Compute(c.SRad[:]),
		TMax:     geo.Compute(c.TMax[:]),
		TMin:     geo.Compute(c.TMin[:]),
		WS:       geo.Compute(c.WS[:]),
	}
}

func reduceMinMaxSet(a, b minmaxSet) minmaxSet {
	return minmaxSet{
		Humidity: geo.ReduceOptional(a.Humidity, b.Humidity),
		PPT:      geo.Reduce(a.PPT, b.PPT),
		SRad:     geo.Reduce(a.SRad, b.SRad),
		TMax:     geo.Reduce(a.TMax, b.TMax),
		TMin:     geo.Reduce(a.TMin, b.TMin),
		WS:       geo.Reduce(a.WS, b.WS),
	}
}

func relativeMinMaxSet(arg, rng minmaxSet) minmaxSet {
	return minmaxSet{
		Humidity: geo.RelativeOptional(arg.Humidity, rng.Humidity),
		PPT:      geo.Relative(arg.PPT, rng.PPT),
		SRad:     geo.Relative(arg.SRad, rng.SRad),
		TMax:     geo.Relative(arg.TMax, rng.TMax),
		TMin:     geo.Relative(arg.TMin, rng.TMin),
		WS:       geo.Relative(arg.WS, rng.WS),
	}
}

// item is the build-time representation of one city's climate
// profile: its Cartesian position on a sphere of radius
// geo.EarthRadiusKM and its per-variable min/max remapped into the
// shared [0,1] dataset range.
type item struct {
	id       int
	lat, lon float64
	xyz      [3]float64
	relative minmaxSet
}

// Index is the built, query-ready climate search index for a fixed
// set of cities.
type Index struct {
	items   []item
	idToPos map[int]int
}

// BuildIndex validates coordinates, computes the dataset-wide min/max
// for every climate variable, and remaps each city's own min/max into
// that shared range. The two passes (per-city minmax, then reduce,
// then per-city relative remap + Cartesian projection) each fan out
// across a bounded worker pool; the reduction step between them is
// cheap enough to run sequentially.
func BuildIndex(ctx context.Context, cities []ClimateInput) (*Index, error) {
	started := time.Now()
	workers := runtime.GOMAXPROCS(0)
	if workers > len(cities) {
		workers = len(cities)
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (len(cities) + workers - 1) / workers
	if chunk < 1 {
		chunk = 1
	}

	perCity := make([]minmaxSet, len(cities))
	{
		g, gctx := errgroup.WithContext(ctx)
		for start := 0; start < len(cities); start += chunk {
			start, end := start, min(start+chunk, len(cities))
			g.Go(func() error {
				for i := start; i < end; i++ {
					select {
					case <-gctx.Done():
						return gctx.Err()
					default:
					}
					if !geo.ValidCoordinate(cities[i].Lat, cities[i].Lon) {
						return fmt.Errorf("climateindex: invalid coordinate for city id %d: (%v,%v)", cities[i].ID, cities[i].Lat, cities[i].Lon)
					}
					perCity[i] = climateMinMax(cities[i])
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	var total minmaxSet
	for i, mm := range perCity {
		if i == 0 {
			total = mm
			continue
		}
		total = reduceMinMaxSet(total, mm)
	}

	items := make([]item, len(cities))
	{
		g, gctx := errgroup.WithContext(ctx)
		for start := 0; start < len(cities); start += chunk {
			start, end := start, min(start+chunk, len(cities))
			g.Go(func() error {
				for i := start; i < end; i++ {
					select {
					case <-gctx.Done():
						return gctx.Err()
					default:
					}
					items[i] = item{
						id:       cities[i].ID,
						lat:      cities[i].Lat,
						lon:      cities[i].Lon,
						xyz:      geo.CartesianXYZ(cities[i].Lat, cities[i].Lon),
						relative: relativeMinMaxSet(perCity[i], total),
					}
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	idToPos := make(map[int]int, len(items))
	buckets := make(map[string]int)
	for pos, it := range items {
		idToPos[it.id] = pos
		buckets[geohash.Encode(it.lat, it.lon)]++
	}

	log.Printf("climateindex: built %d items across %d geohash buckets in %s", len(items), len(buckets), time.Since(started))

	return &Index{items: items, idToPos: idToPos}, nil
}
