package nameindex

import (
	"context"
	"math"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/andreiashu/climatch/internal/intern"
	"github.com/andreiashu/climatch/internal/jaro"
)

// Scoring weights, applied in scoreCombination. Name position and population
// are continuous penalties/bonuses; admin unit and country agreement
// each contribute up to a quarter point when the query supplies a
// "rest" portion that matches them.
const (
	NamePositionWeight   = -0.001
	PopulationLogWeight  = 0.01
	AdminUnitWeight      = 0.25
	CountryWeight        = 0.25

	// ScoreThreshold is the minimum composite score for a city to be
	// included in search results.
	ScoreThreshold = 0.85
)

// Query is a built, query-ready representation of a search string:
// every way of splitting it into a name and an optional rest,
// interned against the query's own private registry.
type Query struct {
	variants []queryVariant
	registry *intern.Registry
}

type queryVariant struct {
	name uint32
	rest *uint32
}

// BuildQuery lowercases and trims raw, then interns every
// name/rest split of it.
func BuildQuery(raw string) *Query {
	lower := strings.ToLower(strings.TrimSpace(raw))
	builder := intern.NewBuilder(4)
	splits := SplitNameRest(lower)
	variants := make([]queryVariant, len(splits))
	for i, s := range splits {
		v := queryVariant{name: builder.Intern(s.Name)}
		if s.Rest != nil {
			id := builder.Intern(*s.Rest)
			v.rest = &id
		}
		variants[i] = v
	}
	return &Query{variants: variants, registry: builder.Freeze()}
}

// ScoredItem is one city's best-scoring match against a Query.
type ScoredItem struct {
	ID          int
	Score       float32
	MatchedName string
	Name        string
	Population  uint64
	AdminUnit   *string
	Country     string
}

// Result is the outcome of a name search: a page of scored items plus
// timing and cache diagnostics.
type Result struct {
	Items               []ScoredItem
	ElapsedMs           int64
	CacheHitRatePercent float32
}

// Search scores every city in idx against q, keeps those scoring
// above ScoreThreshold, sorts descending by score and returns the
// [startIndex, startIndex+maxItems) page.
//
// Scoring fans out across a bounded worker pool. Each worker owns a
// private Jaro-Winkler memo table sized len(cityRegistry) *
// len(queryRegistry) for the lifetime of the search, mirroring a
// per-thread cache without relying on goroutine-local storage (which
// Go doesn't have): a worker only ever touches its own table, so no
// synchronization is needed on the hot path, only on the shared
// hit/miss counters used for cache_hit_rate_percent.
func Search(ctx context.Context, idx *Index, q *Query, startIndex, maxItems int) (Result, error) {
	started := time.Now()

	workers := runtime.GOMAXPROCS(0)
	if workers > len(idx.items) {
		workers = len(idx.items)
	}
	if workers < 1 {
		workers = 1
	}

	var hits, misses atomic.Int64
	scored := make([]ScoredItem, len(idx.items))

	g, gctx := errgroup.WithContext(ctx)
	chunk := (len(idx.items) + workers - 1) / workers
	if chunk < 1 {
		chunk = 1
	}
	cacheSize := idx.registry.Len() * q.registry.Len()

	for start := 0; start < len(idx.items); start += chunk {
		start := start
		end := start + chunk
		if end > len(idx.items) {
			end = len(idx.items)
		}
		g.Go(func() error {
			cache := make([]float32, cacheSize)
			for i := range cache {
				cache[i] = -1
			}
			for i := start; i < end; i++ {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				scored[i] = scoreItem(&idx.items[i], idx.registry, q, cache, &hits, &misses)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	filtered := scored[:0]
	for _, s := range scored {
		if s.Score > ScoreThreshold {
			filtered = append(filtered, s)
		}
	}

	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].Score != filtered[j].Score {
			return filtered[i].Score > filtered[j].Score
		}
		return filtered[i].ID < filtered[j].ID
	})

	end := startIndex + maxItems
	if end > len(filtered) || end < startIndex {
		end = len(filtered)
	}
	begin := startIndex
	if begin > len(filtered) {
		begin = len(filtered)
	}

	hit, miss := hits.Load(), misses.Load()
	var rate float32
	if hit+miss > 0 {
		rate = 100.0 * float32(hit) / float32(hit+miss)
	}

	return Result{
		Items:               append([]ScoredItem(nil), filtered[begin:end]...),
		ElapsedMs:           time.Since(started).Milliseconds(),
		CacheHitRatePercent: rate,
	}, nil
}

// scoreItem returns the best-scoring (query variant, city name)
// combination for a single city.
func scoreItem(it *item, cityReg *intern.Registry, q *Query, cache []float32, hits, misses *atomic.Int64) ScoredItem {
	best := ScoredItem{
		ID:         it.id,
		Score:      float32(math.Inf(-1)),
		Name:       it.names[0],
		Population: it.population,
		AdminUnit:  it.adminUnit,
		Country:    it.country,
	}

	for _, v := range q.variants {
		for nameIdx, cityNameLower := range it.namesLower {
			score := scoreCombination(it, cityNameLower, nameIdx, v, cache, cityReg, q.registry, hits, misses)
			if score > best.Score {
				best.Score = score
				best.MatchedName = it.names[nameIdx]
			}
		}
	}
	return best
}

func scoreCombination(it *item, cityNameLower uint32, nameIdx int, v queryVariant, cache []float32, cityReg, queryReg *intern.Registry, hits, misses *atomic.Int64) float32 {
	nameSimilarity := jaroWinklerCached(cityNameLower, v.name, cache, cityReg, queryReg, hits, misses)

	var adminSimilarity, countrySimilarity float32
	if v.rest != nil {
		if it.adminLower != nil {
			adminSimilarity = jaroWinklerCached(*it.adminLower, *v.rest, cache, cityReg, queryReg, hits, misses)
		}
		countrySimilarity = jaroWinklerCached(it.countryLower, *v.rest, cache, cityReg, queryReg, hits, misses)
	}

	return nameSimilarity +
		NamePositionWeight*float32(nameIdx) +
		PopulationLogWeight*float32(math.Log10(float64(it.population))) +
		AdminUnitWeight*adminSimilarity +
		CountryWeight*countrySimilarity
}

// jaroWinklerCached resolves cityID/queryID against their respective
// registries and computes their Jaro-Winkler similarity, memoizing
// the result in cache (sized len(cityReg) x len(queryReg), flattened
// row-major by city id).
func jaroWinklerCached(cityID, queryID uint32, cache []float32, cityReg, queryReg *intern.Registry, hits, misses *atomic.Int64) float32 {
	index := int(cityID)*queryReg.Len() + int(queryID)
	if cached := cache[index]; cached >= 0 {
		hits.Add(1)
		return cached
	}
	misses.Add(1)

	score := jaro.Winkler([]rune(cityReg.Resolve(cityID)), []rune(queryReg.Resolve(queryID)))
	cache[index] = score
	return score
}
