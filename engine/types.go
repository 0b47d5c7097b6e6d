package engine

import "github.com/cartograph-org/cartograph/geo"

// ============================================================================
// ENGINE TYPES — Render-ready map documents
// ============================================================================
// The engine does not render anything. It produces MapConfig documents that
// the rendering collaborator (tile/HTML engine, marker clusterer) consumes.
// Styling constants mirror the renderer's expectations; geometry payloads
// pass through untouched.
// ============================================================================

// Record is a single tabular row: column name → raw cell text.
// An absent or empty cell is a null.
type Record map[string]string

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Point is a plottable observation with an optional popup label.
type Point struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label,omitempty"`
}

// PointSet is the point pipeline's render-ready output: the retained
// points plus the coordinate the map view centers on.
type PointSet struct {
	Points []Point    `json:"points"`
	Center Coordinate `json:"center"`
}

// KeyValue is one row of the aggregate projection: a country key and the
// value to shade its geometry with. Duplicate keys pass through in row
// order; downstream semantics for duplicates are the caller's concern.
type KeyValue struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// ============================================================================
// MAP CONFIG — the contract with the rendering collaborator
// ============================================================================

// MapConfig describes one map document. Exactly one layer field is set.
type MapConfig struct {
	ID        string     `json:"id"`
	Tiles     string     `json:"tiles"`
	Center    Coordinate `json:"center"`
	ZoomStart int        `json:"zoomStart"`

	PointLayer      *PointLayer      `json:"pointLayer,omitempty"`
	ChoroplethLayer *ChoroplethLayer `json:"choroplethLayer,omitempty"`

	// LayerControl asks the renderer to add a layer toggle widget.
	LayerControl bool `json:"layerControl"`
}

// MarkerStyle is the circle-marker styling for point layers.
type MarkerStyle struct {
	Radius      int     `json:"radius"`
	Color       string  `json:"color"`
	Fill        bool    `json:"fill"`
	FillOpacity float64 `json:"fillOpacity"`
}

// PointLayer is a clustered point layer. The clustering collaborator groups
// the markers; the engine only says "group these points".
type PointLayer struct {
	ID                      string      `json:"id"`
	Name                    string      `json:"name"`
	Cluster                 bool        `json:"cluster"`
	DisableClusteringAtZoom int         `json:"disableClusteringAtZoom"`
	Style                   MarkerStyle `json:"style"`
	Points                  []Point     `json:"points"`
}

// ChoroplethLayer joins aggregate values onto geometry features. KeyOn is
// the per-feature locator the renderer uses verbatim; Mode tells callers
// whether the join used a stable identifier or degraded to display names.
type ChoroplethLayer struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	KeyOn       string                 `json:"keyOn"`
	Mode        JoinMode               `json:"mode"`
	FillColor   string                 `json:"fillColor"`
	FillOpacity float64                `json:"fillOpacity"`
	LineOpacity float64                `json:"lineOpacity"`
	LegendName  string                 `json:"legendName"`
	Data        []KeyValue             `json:"data"`
	Geometry    *geo.FeatureCollection `json:"geometry"`
}
