package geo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var worldGeoJSON = []byte(`{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"properties": {"ADM0_A3": "USA", "name": "United States", "pop_est": 328239523},
			"geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]}
		},
		{
			"type": "Feature",
			"properties": {"ADM0_A3": "DEU", "name": "Germany", "pop_est": 83132799},
			"geometry": {"type": "Polygon", "coordinates": [[[2,2],[3,2],[3,3],[2,2]]]}
		}
	]
}`)

func TestDecode(t *testing.T) {
	fc, err := Decode(worldGeoJSON)
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)

	name, ok := fc.Features[1].Property("name")
	assert.True(t, ok)
	assert.Equal(t, "Germany", name)

	// Geometry stays opaque but must survive the round trip.
	assert.JSONEq(t,
		`{"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]}`,
		string(fc.Features[0].Geometry))
}

func TestDecodeOrderPreserved(t *testing.T) {
	fc, err := Decode(worldGeoJSON)
	require.NoError(t, err)

	first, _ := fc.Features[0].Property("ADM0_A3")
	second, _ := fc.Features[1].Property("ADM0_A3")
	assert.Equal(t, "USA", first)
	assert.Equal(t, "DEU", second)
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no features key", `{"type": "FeatureCollection"}`},
		{"features is an object", `{"features": {"a": 1}}`},
		{"features is null", `{"features": null}`},
		{"not an object", `[1, 2, 3]`},
		{"not json", `<gml></gml>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc))
			require.Error(t, err)

			var malformed *MalformedGeometryError
			assert.True(t, errors.As(err, &malformed), "expected *MalformedGeometryError, got %T", err)
		})
	}
}

func TestDecodeEmptyFeatureList(t *testing.T) {
	// An empty list is well-formed; the join will simply shade nothing.
	fc, err := Decode([]byte(`{"type": "FeatureCollection", "features": []}`))
	require.NoError(t, err)
	assert.Empty(t, fc.Features)
}

func TestPropertyStringification(t *testing.T) {
	f := Feature{Properties: map[string]interface{}{
		"code":  "USA",
		"id":    float64(840),
		"ratio": 0.25,
		"flag":  true,
		"empty": nil,
	}}

	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"code", "USA", true},
		{"id", "840", true},
		{"ratio", "0.25", true},
		{"flag", "true", true},
		{"empty", "", false},
		{"missing", "", false},
	}

	for _, tt := range tests {
		got, ok := f.Property(tt.key)
		assert.Equal(t, tt.ok, ok, "Property(%q) ok", tt.key)
		assert.Equal(t, tt.want, got, "Property(%q)", tt.key)
	}
}
