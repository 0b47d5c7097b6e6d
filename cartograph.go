// Package cartograph turns tabular records into render-ready map documents.
//
// Usage:
//
//	import "github.com/cartograph-org/cartograph/engine"
//
//	cfg, err := engine.BuildPointMap(view,
//	    engine.WithMaxPoints(200000),
//	    engine.WithLayerName("Crime Incidents"),
//	)
//
// The engine resolves column roles heuristically (schema package), joins
// per-country aggregates onto GeoJSON features (geo package), and emits
// MapConfig documents a rendering collaborator consumes. It never renders
// tiles or HTML itself — all computation is local and deterministic.
package cartograph
