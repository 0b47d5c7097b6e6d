package engine

import (
	"log"

	"github.com/cartograph-org/cartograph/geo"
	"github.com/cartograph-org/cartograph/schema"
)

// ============================================================================
// PIPELINES — Point and Aggregate-Join
// ============================================================================
// Two independent pipelines share the schema resolver; the join pipeline
// additionally runs the key reconciler. Each runs to completion or failure
// in one synchronous call over immutable inputs, so callers may run both
// in parallel. A failure in one pipeline never aborts the other — that
// isolation lives at the caller's boundary.
// ============================================================================

// BuildPointMap runs the point pipeline: resolve coordinate roles, filter
// partial rows, sample down to the cap, center on the median coordinate,
// and emit a clustered point map document.
//
// Fails with *schema.SchemaResolutionError when no latitude or longitude
// column can be found, and *EmptyDatasetError when filtering leaves
// nothing to plot.
func BuildPointMap(view RecordView, opts ...Option) (*MapConfig, error) {
	cfg := applyOptions(opts)
	columns := view.Columns()

	assignment := schema.Resolve(columns, cfg.Candidates,
		schema.RoleLatitude, schema.RoleLongitude, schema.RoleCategory)
	if err := assignment.Require(columns, schema.RoleLatitude, schema.RoleLongitude); err != nil {
		return nil, err
	}

	latCol := assignment.Column(schema.RoleLatitude)
	lonCol := assignment.Column(schema.RoleLongitude)
	labelCol := assignment.Column(schema.RoleCategory) // "" when unresolved

	filtered := FilterCoordinates(view, latCol, lonCol)
	if filtered.Len() == 0 {
		return nil, &EmptyDatasetError{Stage: "coordinate filter"}
	}

	sampled := SamplePoints(filtered, cfg.MaxPoints, cfg.SampleSeed)
	if sampled.Len() < filtered.Len() {
		log.Printf("🗺️ cartograph: sampled %d of %d points (cap %d, seed %d)",
			sampled.Len(), filtered.Len(), cfg.MaxPoints, cfg.SampleSeed)
	}

	set := PointSet{
		Points: CollectPoints(sampled, latCol, lonCol, labelCol),
		Center: CenterOf(sampled, latCol, lonCol),
	}

	log.Printf("🗺️ cartograph: point map ready — %d markers, centered (%.4f, %.4f)",
		len(set.Points), set.Center.Lat, set.Center.Lon)

	return BuildPointMapConfig(set, cfg.LayerName), nil
}

// BuildChoroplethMap runs the aggregate-join pipeline: resolve the country
// key and value roles (caller overrides win), reconcile the join key
// against the geometry collection, project the two-column data, and emit a
// choropleth map document.
//
// Fails with *schema.SchemaResolutionError, *EmptyDatasetError, or — in
// strict-join mode only — *UnmatchedKeysError. In the default best-effort
// mode, keys that match no feature are silently left unshaded.
func BuildChoroplethMap(view RecordView, fc *geo.FeatureCollection, opts ...Option) (*MapConfig, error) {
	cfg := applyOptions(opts)
	columns := view.Columns()

	assignment := schema.Resolve(columns, cfg.Candidates,
		schema.RoleCountryKey, schema.RoleValue)
	if cfg.CountryField != "" {
		assignment[schema.RoleCountryKey] = cfg.CountryField
	}
	if cfg.ValueField != "" {
		assignment[schema.RoleValue] = cfg.ValueField
	}
	if err := assignment.Require(columns, schema.RoleCountryKey, schema.RoleValue); err != nil {
		return nil, err
	}

	keyCol := assignment.Column(schema.RoleCountryKey)
	valueCol := assignment.Column(schema.RoleValue)

	binding := ReconcileJoinKey(fc, cfg.IDField)
	if binding.Mode == JoinNameFallback {
		log.Printf("🌍 cartograph: no identifier property found, matching on feature.properties.%s", NameProperty)
	}

	data := ProjectAggregates(view, keyCol, valueCol)
	if len(data) == 0 {
		return nil, &EmptyDatasetError{Stage: "aggregate projection"}
	}

	if cfg.StrictJoin {
		if err := VerifyJoinCoverage(binding, fc, data); err != nil {
			return nil, err
		}
	}

	log.Printf("🌍 cartograph: choropleth ready — %d rows keyed on %s (%s mode)",
		len(data), binding.KeyOn, binding.Mode)

	return BuildChoroplethMapConfig(fc, binding, data, cfg.LegendName), nil
}
