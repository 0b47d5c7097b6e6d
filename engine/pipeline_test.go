package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartograph-org/cartograph/geo"
	"github.com/cartograph-org/cartograph/schema"
)

// ============================================================================
// POINT PIPELINE
// ============================================================================

func pointView() RecordView {
	records := []Record{
		{"Latitude": "37.774", "Longitude": "-122.419", "offense": "VANDALISM"},
		{"Latitude": "37.780", "Longitude": "-122.410", "offense": "LARCENY"},
		{"Latitude": "", "Longitude": "-122.400", "offense": "ASSAULT"},
		{"Latitude": "37.790", "Longitude": "-122.430", "offense": "BURGLARY"},
	}
	return NewSliceView([]string{"Latitude", "Longitude", "offense"}, records)
}

func TestBuildPointMap(t *testing.T) {
	cfg, err := BuildPointMap(pointView(), WithLayerName("Crime Incidents"))
	require.NoError(t, err)

	require.NotNil(t, cfg.PointLayer)
	assert.Nil(t, cfg.ChoroplethLayer)
	assert.Equal(t, "CartoDB dark_matter", cfg.Tiles)
	assert.Equal(t, 12, cfg.ZoomStart)
	assert.NotEmpty(t, cfg.ID)

	layer := cfg.PointLayer
	assert.Equal(t, "Crime Incidents", layer.Name)
	assert.True(t, layer.Cluster)
	assert.Equal(t, 16, layer.DisableClusteringAtZoom)
	assert.Equal(t, "#ff7800", layer.Style.Color)

	// Null-latitude row is dropped; category resolves to "offense" labels.
	require.Len(t, layer.Points, 3)
	assert.Equal(t, "VANDALISM", layer.Points[0].Label)

	// Median of 37.774, 37.780, 37.790.
	assert.InDelta(t, 37.780, cfg.Center.Lat, 1e-9)
	assert.InDelta(t, -122.419, cfg.Center.Lon, 1e-9)
}

func TestBuildPointMapSchemaFailure(t *testing.T) {
	view := NewSliceView([]string{"a", "b"}, []Record{{"a": "1", "b": "2"}})

	_, err := BuildPointMap(view)
	require.Error(t, err)

	var resErr *schema.SchemaResolutionError
	assert.True(t, errors.As(err, &resErr))
}

func TestBuildPointMapEmptyAfterFilter(t *testing.T) {
	records := []Record{
		{"lat": "", "lon": "1"},
		{"lat": "2", "lon": ""},
	}
	view := NewSliceView([]string{"lat", "lon"}, records)

	_, err := BuildPointMap(view)
	require.Error(t, err)

	var empty *EmptyDatasetError
	assert.True(t, errors.As(err, &empty), "expected *EmptyDatasetError, got %T", err)
}

func TestBuildPointMapSamplingCap(t *testing.T) {
	records := make([]Record, 50)
	for i := range records {
		records[i] = Record{"lat": "1.0", "lon": "2.0"}
	}
	view := NewSliceView([]string{"lat", "lon"}, records)

	cfg, err := BuildPointMap(view, WithMaxPoints(10))
	require.NoError(t, err)
	assert.Len(t, cfg.PointLayer.Points, 10)
}

func TestBuildPointMapCandidateTableOverride(t *testing.T) {
	table := schema.Table{
		schema.RoleLatitude:  {Names: []string{"phi"}},
		schema.RoleLongitude: {Names: []string{"lambda"}},
	}
	view := NewSliceView([]string{"phi", "lambda"}, []Record{{"phi": "1", "lambda": "2"}})

	cfg, err := BuildPointMap(view, WithCandidateTable(table))
	require.NoError(t, err)
	assert.Len(t, cfg.PointLayer.Points, 1)
}

// ============================================================================
// AGGREGATE-JOIN PIPELINE
// ============================================================================

func worldCollection() *geo.FeatureCollection {
	return featureCollection(
		map[string]interface{}{"ADM0_A3": "DEU", "name": "Germany"},
		map[string]interface{}{"ADM0_A3": "FRA", "name": "France"},
	)
}

func aggregateView() RecordView {
	records := []Record{
		{"Country": "DEU", "Immigrants": "2500"},
		{"Country": "FRA", "Immigrants": "1800"},
	}
	return NewSliceView([]string{"Country", "Immigrants"}, records)
}

func TestBuildChoroplethMap(t *testing.T) {
	cfg, err := BuildChoroplethMap(aggregateView(), worldCollection(),
		WithLegend("Migration to Canada"))
	require.NoError(t, err)

	require.NotNil(t, cfg.ChoroplethLayer)
	assert.Nil(t, cfg.PointLayer)
	assert.Equal(t, "CartoDB positron", cfg.Tiles)
	assert.Equal(t, Coordinate{Lat: 20, Lon: 0}, cfg.Center)
	assert.Equal(t, 2, cfg.ZoomStart)
	assert.True(t, cfg.LayerControl)

	layer := cfg.ChoroplethLayer
	assert.Equal(t, JoinExactID, layer.Mode)
	assert.Equal(t, "feature.properties.ADM0_A3", layer.KeyOn)
	assert.Equal(t, "YlOrRd", layer.FillColor)
	assert.Equal(t, "Migration to Canada", layer.LegendName)
	require.Len(t, layer.Data, 2)
	assert.Equal(t, KeyValue{Key: "DEU", Value: 2500}, layer.Data[0])
	assert.NotNil(t, layer.Geometry)
}

func TestBuildChoroplethMapFieldOverrides(t *testing.T) {
	// Columns the resolver would never find; overrides bypass it.
	records := []Record{{"Herkunftsland": "DEU", "Anzahl": "7"}}
	view := NewSliceView([]string{"Herkunftsland", "Anzahl"}, records)

	cfg, err := BuildChoroplethMap(view, worldCollection(),
		WithCountryField("Herkunftsland"),
		WithValueField("Anzahl"))
	require.NoError(t, err)
	assert.Equal(t, KeyValue{Key: "DEU", Value: 7}, cfg.ChoroplethLayer.Data[0])
}

func TestBuildChoroplethMapIDFieldOverride(t *testing.T) {
	cfg, err := BuildChoroplethMap(aggregateView(), worldCollection(),
		WithGeoJSONIDField("name"))
	require.NoError(t, err)
	assert.Equal(t, "feature.properties.name", cfg.ChoroplethLayer.KeyOn)
}

func TestBuildChoroplethMapSchemaFailure(t *testing.T) {
	view := NewSliceView([]string{"x", "y"}, []Record{{"x": "1", "y": "2"}})

	_, err := BuildChoroplethMap(view, worldCollection())
	require.Error(t, err)

	var resErr *schema.SchemaResolutionError
	require.True(t, errors.As(err, &resErr))
	assert.Contains(t, err.Error(), "country_key")
	assert.Contains(t, err.Error(), "value")
}

func TestBuildChoroplethMapNameFallback(t *testing.T) {
	fc := featureCollection(
		map[string]interface{}{"pop": 123.0, "name": "Germany"},
	)
	records := []Record{
		{"country": "Germany", "count": "5"},
		{"country": "Nowhere", "count": "9"}, // silently unshaded downstream
	}
	view := NewSliceView([]string{"country", "count"}, records)

	cfg, err := BuildChoroplethMap(view, fc)
	require.NoError(t, err, "best-effort mode must not error on mismatches")
	assert.Equal(t, JoinNameFallback, cfg.ChoroplethLayer.Mode)
	assert.Equal(t, "feature.properties.name", cfg.ChoroplethLayer.KeyOn)
	assert.Len(t, cfg.ChoroplethLayer.Data, 2)
}

func TestBuildChoroplethMapStrictJoin(t *testing.T) {
	fc := featureCollection(
		map[string]interface{}{"pop": 123.0, "name": "Germany"},
	)
	records := []Record{
		{"country": "Germany", "count": "5"},
		{"country": "Nowhere", "count": "9"},
	}
	view := NewSliceView([]string{"country", "count"}, records)

	_, err := BuildChoroplethMap(view, fc, WithStrictJoin())
	require.Error(t, err)

	var unmatched *UnmatchedKeysError
	require.True(t, errors.As(err, &unmatched))
	assert.Equal(t, []string{"Nowhere"}, unmatched.Keys)
}

func TestBuildChoroplethMapEmptyProjection(t *testing.T) {
	records := []Record{{"country": "Germany", "count": "not-a-number"}}
	view := NewSliceView([]string{"country", "count"}, records)

	_, err := BuildChoroplethMap(view, worldCollection())
	require.Error(t, err)

	var empty *EmptyDatasetError
	assert.True(t, errors.As(err, &empty))
}

// ============================================================================
// PIPELINE INDEPENDENCE
// ============================================================================

func TestPipelinesShareOneView(t *testing.T) {
	// Both pipelines read the same immutable view; neither disturbs the other.
	records := []Record{
		{"lat": "1.0", "lon": "2.0", "country": "DEU", "value": "5"},
		{"lat": "3.0", "lon": "4.0", "country": "FRA", "value": "6"},
	}
	view := NewSliceView([]string{"lat", "lon", "country", "value"}, records)

	_, err := BuildPointMap(view)
	require.NoError(t, err)

	cfg, err := BuildChoroplethMap(view, worldCollection())
	require.NoError(t, err)
	assert.Len(t, cfg.ChoroplethLayer.Data, 2)

	// Source rows untouched.
	v, ok := view.Field(0, "lat")
	require.True(t, ok)
	assert.Equal(t, "1.0", v)
}
