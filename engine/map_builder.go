package engine

import (
	"github.com/google/uuid"

	"github.com/cartograph-org/cartograph/geo"
)

// ============================================================================
// MAP BUILDER — Produces MapConfig documents for the renderer
// ============================================================================
// Styling mirrors the rendering collaborator's defaults: dark tiles and
// orange circle markers for dense point sets, light tiles and a
// yellow-to-red fill scale for choropleths. Every map and layer carries a
// generated ID so the renderer can address elements individually.
// ============================================================================

// Point map defaults.
const (
	pointTiles     = "CartoDB dark_matter"
	pointZoomStart = 12

	clusterBreakZoom  = 16 // stop clustering when zoomed past street level
	markerRadius      = 4
	markerColor       = "#ff7800"
	markerFillOpacity = 0.7
)

// Choropleth defaults. The world view centers slightly north of the
// equator so populated landmass fills the frame.
const (
	choroplethTiles     = "CartoDB positron"
	choroplethZoomStart = 2

	choroplethFillColor   = "YlOrRd"
	choroplethFillOpacity = 0.8
	choroplethLineOpacity = 0.2
)

var worldCenter = Coordinate{Lat: 20, Lon: 0}

// BuildPointMapConfig wraps a PointSet in a render-ready map document with
// one clustered marker layer.
func BuildPointMapConfig(set PointSet, layerName string) *MapConfig {
	return &MapConfig{
		ID:        uuid.NewString(),
		Tiles:     pointTiles,
		Center:    set.Center,
		ZoomStart: pointZoomStart,
		PointLayer: &PointLayer{
			ID:                      uuid.NewString(),
			Name:                    layerName,
			Cluster:                 true,
			DisableClusteringAtZoom: clusterBreakZoom,
			Style: MarkerStyle{
				Radius:      markerRadius,
				Color:       markerColor,
				Fill:        true,
				FillOpacity: markerFillOpacity,
			},
			Points: set.Points,
		},
	}
}

// BuildChoroplethMapConfig wraps a join binding, its projected data, and
// the geometry collection in a render-ready world map document.
func BuildChoroplethMapConfig(fc *geo.FeatureCollection, binding JoinKeyBinding, data []KeyValue, legendName string) *MapConfig {
	return &MapConfig{
		ID:        uuid.NewString(),
		Tiles:     choroplethTiles,
		Center:    worldCenter,
		ZoomStart: choroplethZoomStart,
		ChoroplethLayer: &ChoroplethLayer{
			ID:          uuid.NewString(),
			Name:        "choropleth",
			KeyOn:       binding.KeyOn,
			Mode:        binding.Mode,
			FillColor:   choroplethFillColor,
			FillOpacity: choroplethFillOpacity,
			LineOpacity: choroplethLineOpacity,
			LegendName:  legendName,
			Data:        data,
			Geometry:    fc,
		},
		LayerControl: true,
	}
}
