// Package nameindex builds and queries the fuzzy-name search index:
// composite Jaro-Winkler name scoring blended with population and
// admin-unit/country agreement, as described for the city name search
// endpoint.
package nameindex

import (
	"context"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/andreiashu/climatch/internal/intern"
)

// CityInput is the subset of a city record the name index needs at
// build time. ID is the caller's stable identifier for the city
// (normally its position in the backing city list) and is echoed back
// in search results.
type CityInput struct {
	ID         int
	Names      []string // Names[0] is the canonical display name.
	AdminUnit  *string
	Country    string
	Population uint64
}

// item is the build-time representation of one city: its original
// fields plus lowercase-interned ids for every name variant.
type item struct {
	id           int
	names        []string
	namesLower   []uint32
	adminUnit    *string
	adminLower   *uint32
	country      string
	countryLower uint32
	population   uint64
}

// Index is the built, query-ready name search index for a fixed set
// of cities.
type Index struct {
	items    []item
	registry *intern.Registry
}

// BuildIndex interns every city name, admin unit and country
// (lowercased) and returns a query-ready Index. Building fans out
// across a bounded worker pool since interning dominates build time
// for large datasets and each city's lowercase conversion is
// independent of every other city's.
func BuildIndex(ctx context.Context, cities []CityInput) (*Index, error) {
	builder := intern.NewBuilder(len(cities) * 2)
	items := make([]item, len(cities))

	workers := runtime.GOMAXPROCS(0)
	if workers > len(cities) {
		workers = len(cities)
	}
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	chunk := (len(cities) + workers - 1) / workers
	if chunk < 1 {
		chunk = 1
	}
	for start := 0; start < len(cities); start += chunk {
		start := start
		end := start + chunk
		if end > len(cities) {
			end = len(cities)
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				c := cities[i]
				namesLower := make([]uint32, len(c.Names))
				for j, n := range c.Names {
					namesLower[j] = builder.Intern(lowercase(n))
				}
				var adminLower *uint32
				if c.AdminUnit != nil {
					id := builder.Intern(lowercase(*c.AdminUnit))
					adminLower = &id
				}
				items[i] = item{
					id:           c.ID,
					names:        c.Names,
					namesLower:   namesLower,
					adminUnit:    c.AdminUnit,
					adminLower:   adminLower,
					country:      c.Country,
					countryLower: builder.Intern(lowercase(c.Country)),
					population:   c.Population,
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Index{items: items, registry: builder.Freeze()}, nil
}

func lowercase(s string) string {
	return strings.ToLower(s)
}
