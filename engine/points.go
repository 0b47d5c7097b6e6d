package engine

import (
	"math/rand"
	"sort"
	"strconv"
	"strings"
)

// ============================================================================
// POINT SAMPLING & FILTERING
// ============================================================================
// Point pipeline policy, in order:
//   1. Drop rows whose resolved lat or lon cell is null or unparsable —
//      partial records are silently excluded, never fatal.
//   2. If more rows remain than the cap, draw a uniform random sample of
//      exactly the cap, seeded deterministically so reruns are reproducible.
//   3. Center the map on the median coordinate of the retained set —
//      median, not mean, so outlying coordinates don't drag the view.
// Each step returns a derived view; the parent set is never mutated.
// ============================================================================

// FilterCoordinates returns the subset of rows with parseable values in
// both coordinate columns. A record with both fields present and non-null
// is never removed.
func FilterCoordinates(view RecordView, latCol, lonCol string) RecordView {
	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if _, ok := fieldFloat(view, i, latCol); !ok {
			continue
		}
		if _, ok := fieldFloat(view, i, lonCol); !ok {
			continue
		}
		indices = append(indices, i)
	}
	return newSubView(view, indices)
}

// SamplePoints returns a uniform random sample of exactly maxPoints rows
// when the view exceeds the cap, and the view itself otherwise. The same
// view, cap, and seed always yield the same subset. Sampled indices are
// kept in ascending row order.
func SamplePoints(view RecordView, maxPoints int, seed int64) RecordView {
	n := view.Len()
	if maxPoints <= 0 || n <= maxPoints {
		return view
	}

	rng := rand.New(rand.NewSource(seed))
	indices := rng.Perm(n)[:maxPoints]
	sort.Ints(indices)

	return newSubView(view, indices)
}

// CenterOf computes the median latitude and longitude over the view.
// The view must be non-empty and already coordinate-filtered.
func CenterOf(view RecordView, latCol, lonCol string) Coordinate {
	return Coordinate{
		Lat: medianField(view, latCol),
		Lon: medianField(view, lonCol),
	}
}

// CollectPoints materializes the view into plottable points. labelCol may
// be empty, in which case labels are omitted.
func CollectPoints(view RecordView, latCol, lonCol, labelCol string) []Point {
	points := make([]Point, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		lat, ok := fieldFloat(view, i, latCol)
		if !ok {
			continue
		}
		lon, ok := fieldFloat(view, i, lonCol)
		if !ok {
			continue
		}
		p := Point{Lat: lat, Lon: lon}
		if labelCol != "" {
			p.Label, _ = view.Field(i, labelCol)
		}
		points = append(points, p)
	}
	return points
}

// ============================================================================
// NUMERIC HELPERS
// ============================================================================

// fieldFloat reads a cell as a float64. Thousands separators are tolerated;
// anything else unparsable counts as null.
func fieldFloat(view RecordView, i int, column string) (float64, bool) {
	raw, ok := view.Field(i, column)
	if !ok {
		return 0, false
	}
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// medianField returns the median of a numeric column. Even-length sets
// average the two middle values.
func medianField(view RecordView, column string) float64 {
	values := make([]float64, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		if f, ok := fieldFloat(view, i, column); ok {
			values = append(values, f)
		}
	}
	if len(values) == 0 {
		return 0
	}

	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 0 {
		return (values[mid-1] + values[mid]) / 2
	}
	return values[mid]
}
