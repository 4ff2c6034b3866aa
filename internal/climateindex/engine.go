package climateindex

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/andreiashu/climatch/internal/geo"
)

// minChordLengthSq is the squared chord distance corresponding to a
// 200km great-circle separation. Comparing squared chord lengths
// avoids a trigonometric call per candidate pair, which matters since
// the dispersion filter below is O(results^2) against the growing
// result set.
var minChordLengthSq = func() float64 {
	c := geo.ArcLengthToChordLength(200.0)
	return c * c
}()

// ScoredItem is one candidate in a climate search result: a city plus
// its distance from the query city and how climatically similar it
// is.
type ScoredItem struct {
	ID                int
	DistanceKM        float64
	SimilarityPercent float32
}

// Result is the outcome of a climate search.
type Result struct {
	Items     []ScoredItem
	ElapsedMs int64
}

// Search finds cities climatically similar to the city identified by
// queryID, filtered for geographic dispersion: no two results (query
// included) are within 200km of each other by chord distance. Returns
// an empty Result if queryID is not present in the index.
func Search(idx *Index, queryID int, startIndex, maxItems int) Result {
	started := time.Now()

	pos, ok := idx.idToPos[queryID]
	if !ok {
		return Result{ElapsedMs: time.Since(started).Milliseconds()}
	}
	query := idx.items[pos]

	diffs := make([]float32, len(idx.items))
	var maxDiff float32
	var mu sync.Mutex
	parallelFor(len(idx.items), func(i int) {
		d := climateDiff(idx.items[i].relative, query.relative)
		diffs[i] = d
		mu.Lock()
		if d > maxDiff {
			maxDiff = d
		}
		mu.Unlock()
	})

	type candidate struct {
		item item
		diff float32
	}
	candidates := make([]candidate, 0, len(idx.items))
	for i, it := range idx.items {
		if it.id == query.id {
			continue
		}
		if diffs[i] < maxDiff/2.0 {
			candidates = append(candidates, candidate{item: it, diff: diffs[i]})
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].diff < candidates[j].diff })

	type selected struct {
		item item
		diff float32
	}
	// results is seeded with the query city itself at diff=0, then
	// grown by greedy dispersion selection. Pagination (skip/take) below
	// runs over this same list, so the query is always item 0 unless
	// startIndex skips past it.
	results := []selected{{item: query, diff: 0}}
	for _, c := range candidates {
		disperse := true
		for _, r := range results {
			if geo.CartesianDistanceSquared(c.item.xyz, r.item.xyz) < minChordLengthSq {
				disperse = false
				break
			}
		}
		if disperse {
			results = append(results, selected{item: c.item, diff: c.diff})
			if len(results) >= startIndex+maxItems {
				break
			}
		}
	}

	begin := min(startIndex, len(results))
	end := min(startIndex+maxItems, len(results))

	out := make([]ScoredItem, 0, end-begin)
	for _, r := range results[begin:end] {
		var similarity float32 = 100.0
		if maxDiff > 0 {
			similarity = 100.0 * (1.0 - r.diff/maxDiff)
		}
		distance := geo.ArcDistanceKM(r.item.lat, r.item.lon, query.lat, query.lon)
		out = append(out, ScoredItem{
			ID:                r.item.id,
			DistanceKM:        geo.Round1AndAssertFinite(distance),
			SimilarityPercent: similarity,
		})
	}

	return Result{Items: out, ElapsedMs: time.Since(started).Milliseconds()}
}

// climateDiff is the L1 distance between two cities' relative
// min/max profiles, summed across all six variables. A missing
// humidity reading on either side contributes 0 rather than excluding
// the variable or the city.
func climateDiff(a, b minmaxSet) float32 {
	var humidity float32
	if a.Humidity.Valid && b.Humidity.Valid {
		humidity = diffMinMax(a.Humidity.Value, b.Humidity.Value)
	}
	return humidity +
		diffMinMax(a.PPT, b.PPT) +
		diffMinMax(a.SRad, b.SRad) +
		diffMinMax(a.TMax, b.TMax) +
		diffMinMax(a.TMin, b.TMin) +
		diffMinMax(a.WS, b.WS)
}

func diffMinMax(a, b geo.MinMax) float32 {
	return float32(math.Abs(float64(a.Min-b.Min))) + float32(math.Abs(float64(a.Max-b.Max)))
}

// parallelFor runs fn(i) for i in [0,n) across a bounded worker pool.
// Kept separate from errgroup-based build helpers since fn here never
// errors and the index has already validated its own construction.
func parallelFor(n int, fn func(i int)) {
	workers := min(n, 16)
	if workers < 1 {
		return
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		start, end := start, min(start+chunk, n)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}()
	}
	wg.Wait()
}
