package climatch

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus collectors an Engine reports through.
// Each Engine owns its own registry so that multiple Engines (e.g. in
// tests) never collide on collector registration.
type Metrics struct {
	Registry *prometheus.Registry

	nameSearches      prometheus.Counter
	climateSearches   prometheus.Counter
	nameSearchLatency prometheus.Histogram
	climateLatency    prometheus.Histogram
	cacheHitRate      prometheus.Gauge
}

func newMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		nameSearches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "climatch_name_searches_total",
			Help: "Total number of city name searches served.",
		}),
		climateSearches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "climatch_climate_searches_total",
			Help: "Total number of climate similarity searches served.",
		}),
		nameSearchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "climatch_name_search_duration_ms",
			Help:    "Name search latency in milliseconds.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		climateLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "climatch_climate_search_duration_ms",
			Help:    "Climate search latency in milliseconds.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		cacheHitRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "climatch_name_search_cache_hit_rate_percent",
			Help: "Jaro-Winkler memo cache hit rate of the most recent name search.",
		}),
	}
	reg.MustRegister(m.nameSearches, m.climateSearches, m.nameSearchLatency, m.climateLatency, m.cacheHitRate)
	return m
}

func (m *Metrics) observeNameSearch(elapsedMs int64, cacheHitRatePercent float32) {
	m.nameSearches.Inc()
	m.nameSearchLatency.Observe(float64(elapsedMs))
	m.cacheHitRate.Set(float64(cacheHitRatePercent))
}

func (m *Metrics) observeClimateSearch(elapsedMs int64) {
	m.climateSearches.Inc()
	m.climateLatency.Observe(float64(elapsedMs))
}
