package climatch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/andreiashu/climatch/internal/climateindex"
	"github.com/andreiashu/climatch/internal/nameindex"
)

// Default pagination values, applied when a request omits startIndex
// or maxItems.
const (
	SearchDefaultStartIndex  = 0
	SearchDefaultMaxItems    = 10
	ClimateDefaultStartIndex = 0
	ClimateDefaultMaxItems   = 100
)

// config collects Engine construction options.
type config struct {
	logger *zap.SugaredLogger
}

// Option configures an Engine at construction time.
type Option func(*config)

// WithLogger sets the structured logger used for request-level
// diagnostics (cache hit rates, timings). Defaults to a no-op logger,
// also when l is nil.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func defaultConfig() *config {
	return &config{logger: zap.NewNop().Sugar()}
}

// Engine is a built, query-ready search service over a fixed set of
// cities. There is no package-level mutable state: every search goes
// through a constructed Engine value, and nothing here is shared
// across Engine instances.
type Engine struct {
	cities     []City
	cityByID   map[int]*City
	nameIndex  *nameindex.Index
	climateIdx *climateindex.Index
	logger     *zap.SugaredLogger
	metrics    *Metrics
}

// New builds an Engine over cities. Building fans out across both the
// name index and the climate index; either failing (e.g. an invalid
// coordinate in the climate dataset) fails the whole build.
func New(ctx context.Context, cities []City, opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	started := time.Now()

	nameInputs := make([]nameindex.CityInput, len(cities))
	climateInputs := make([]climateindex.ClimateInput, len(cities))
	cityByID := make(map[int]*City, len(cities))
	for i, c := range cities {
		nameInputs[i] = nameindex.CityInput{
			ID:         c.ID,
			Names:      c.Names,
			AdminUnit:  c.AdminUnit,
			Country:    c.Country,
			Population: c.Population,
		}
		climateInputs[i] = climateindex.ClimateInput{
			ID:       c.ID,
			Lat:      c.Latitude,
			Lon:      c.Longitude,
			Humidity: c.Climate.HumidityMonthly,
			PPT:      c.Climate.PPTMonthly,
			SRad:     c.Climate.SRadMonthly,
			TMax:     c.Climate.TMaxMonthly,
			TMin:     c.Climate.TMinMonthly,
			WS:       c.Climate.WSMonthly,
		}
		cityByID[c.ID] = &cities[i]
	}

	nameIdx, err := nameindex.BuildIndex(ctx, nameInputs)
	if err != nil {
		return nil, fmt.Errorf("climatch: building name index: %w", err)
	}
	climateIdx, err := climateindex.BuildIndex(ctx, climateInputs)
	if err != nil {
		return nil, fmt.Errorf("climatch: building climate index: %w", err)
	}

	cfg.logger.Infow("engine built", "cities", len(cities), "elapsed", time.Since(started))

	return &Engine{
		cities:     cities,
		cityByID:   cityByID,
		nameIndex:  nameIdx,
		climateIdx: climateIdx,
		logger:     cfg.logger,
		metrics:    newMetrics(),
	}, nil
}

// CitySearchItem is one scored match from SearchCities.
type CitySearchItem struct {
	ID          int     `json:"id"`
	Score       float32 `json:"score"`
	MatchedName string  `json:"matchedName"`
	Name        string  `json:"name"`
	Population  uint64  `json:"population"`
	AdminUnit   *string `json:"adminUnit,omitempty"`
	Country     string  `json:"country"`
}

// CitySearchResult is the outcome of a name search.
type CitySearchResult struct {
	Items               []CitySearchItem `json:"items"`
	ElapsedMs           int64            `json:"elapsedMs"`
	CacheHitRatePercent float32          `json:"cacheHitRatePercent"`
}

// SearchCities ranks cities by fuzzy match against query, restricted
// to those scoring above nameindex.ScoreThreshold.
func (e *Engine) SearchCities(ctx context.Context, query string, startIndex, maxItems int) (CitySearchResult, error) {
	q := nameindex.BuildQuery(query)
	res, err := nameindex.Search(ctx, e.nameIndex, q, startIndex, maxItems)
	if err != nil {
		return CitySearchResult{}, fmt.Errorf("climatch: search cities: %w", err)
	}

	e.metrics.observeNameSearch(res.ElapsedMs, res.CacheHitRatePercent)
	e.logger.Debugw("search cities", "query", query, "results", len(res.Items), "cacheHitRatePercent", res.CacheHitRatePercent)

	items := make([]CitySearchItem, len(res.Items))
	for i, it := range res.Items {
		items[i] = CitySearchItem{
			ID:          it.ID,
			Score:       it.Score,
			MatchedName: it.MatchedName,
			Name:        it.Name,
			Population:  it.Population,
			AdminUnit:   it.AdminUnit,
			Country:     it.Country,
		}
	}
	return CitySearchResult{Items: items, ElapsedMs: res.ElapsedMs, CacheHitRatePercent: res.CacheHitRatePercent}, nil
}

// ClimateSearchItem is one match from SearchClimate: a full city
// record plus its distance and similarity relative to the query city.
type ClimateSearchItem struct {
	ID                int     `json:"id"`
	City              City    `json:"city"`
	DistanceKM        float64 `json:"distanceKm"`
	SimilarityPercent float32 `json:"similarityPercent"`
}

// ClimateSearchResult is the outcome of a climate search.
type ClimateSearchResult struct {
	Items     []ClimateSearchItem `json:"items"`
	ElapsedMs int64               `json:"elapsedMs"`
}

// SearchClimate finds cities with the most similar climate to the
// city identified by cityID, filtered so that no two results are
// within 200km of each other. Returns an empty result if cityID is
// unknown.
func (e *Engine) SearchClimate(cityID, startIndex, maxItems int) ClimateSearchResult {
	res := climateindex.Search(e.climateIdx, cityID, startIndex, maxItems)
	e.metrics.observeClimateSearch(res.ElapsedMs)
	e.logger.Debugw("search climate", "cityId", cityID, "results", len(res.Items))

	items := make([]ClimateSearchItem, len(res.Items))
	for i, it := range res.Items {
		city := City{}
		if c, ok := e.cityByID[it.ID]; ok {
			city = *c
		}
		items[i] = ClimateSearchItem{ID: it.ID, City: city, DistanceKM: it.DistanceKM, SimilarityPercent: it.SimilarityPercent}
	}
	return ClimateSearchResult{Items: items, ElapsedMs: res.ElapsedMs}
}

// Metrics returns the Engine's Prometheus collectors, for wiring a
// /metrics endpoint.
func (e *Engine) Metrics() *Metrics { return e.metrics }

// CityByID returns the city with the given id, if present.
func (e *Engine) CityByID(id int) (City, bool) {
	c, ok := e.cityByID[id]
	if !ok {
		return City{}, false
	}
	return *c, true
}
