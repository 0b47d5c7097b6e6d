package geo

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ============================================================================
// GEOJSON — Feature collection loading
// ============================================================================
// The engine only needs feature properties for key reconciliation. Geometry
// payloads stay opaque (raw JSON) and are passed through verbatim to the
// rendering collaborator. A collection is immutable once decoded.
// ============================================================================

// FeatureCollection is an ordered set of features from a GeoJSON document.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature pairs a property map with an opaque geometry payload.
type Feature struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   json.RawMessage        `json:"geometry"`
}

// Property returns the named property rendered as a string, with ok=false
// when the property is absent or null. Numbers are formatted without
// trailing zeros so numeric IDs join cleanly against tabular keys.
func (f Feature) Property(name string) (string, bool) {
	v, ok := f.Properties[name]
	if !ok || v == nil {
		return "", false
	}
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return fmt.Sprintf("%v", val), true
	}
}

// HasProperty reports whether the named property exists and is non-null.
func (f Feature) HasProperty(name string) bool {
	_, ok := f.Property(name)
	return ok
}

// Decode parses a GeoJSON-shaped document into a FeatureCollection.
// A document missing the top-level feature list fails with
// *MalformedGeometryError — there is nothing downstream can join against.
func Decode(data []byte) (*FeatureCollection, error) {
	// Probe the top level first so a missing "features" key is reported as a
	// shape problem, not a generic unmarshal error.
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &MalformedGeometryError{Reason: fmt.Sprintf("not a JSON object: %v", err)}
	}
	if _, ok := probe["features"]; !ok {
		return nil, &MalformedGeometryError{Reason: `missing top-level "features" list`}
	}

	var fc FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, &MalformedGeometryError{Reason: fmt.Sprintf(`"features" is not a feature list: %v`, err)}
	}
	if fc.Features == nil {
		// "features": null decodes without error but is still not a list.
		return nil, &MalformedGeometryError{Reason: `"features" is not a feature list`}
	}

	return &fc, nil
}

// ============================================================================
// ERRORS
// ============================================================================

// MalformedGeometryError reports a geometry document whose top level does
// not carry the expected feature list.
type MalformedGeometryError struct {
	Reason string
}

func (e *MalformedGeometryError) Error() string {
	return fmt.Sprintf("malformed geometry document: %s", e.Reason)
}
