package engine

import (
	"github.com/cartograph-org/cartograph/geo"
)

// ============================================================================
// KEY RECONCILER — matching tabular keys to geometry features
// ============================================================================
// Tabular key columns and geometry identifier properties come from
// independent sources and rarely agree on naming. The reconciler decides
// which feature property is the stable join identifier:
//
//   1. A caller-supplied property name is used unchecked — trust the caller.
//   2. Otherwise scan the FIRST feature's properties against a fixed
//      priority list of identifier spellings (ISO-3 first, generic id
//      last). Feature schemas are assumed uniform across the collection.
//   3. No match → degrade to name matching: keys are compared against the
//      conventional "name" display property as opaque strings. No case
//      folding, no alias tables, no fuzzy matching. Rows whose key matches
//      no feature are silently left unshaded.
//
// The binding exposes which mode was chosen so callers can demand stricter
// matching (see VerifyJoinCoverage) instead of guessing.
// ============================================================================

// identifierCandidates is the priority-ordered list of property names
// commonly used as stable country identifiers in GeoJSON exports.
var identifierCandidates = []string{"iso_a3", "ISO_A3", "iso3", "id", "ADM0_A3", "ISO3"}

// NameProperty is the conventional display-name property used by the
// fallback join mode.
const NameProperty = "name"

// JoinMode says how tabular keys are matched to features.
type JoinMode string

const (
	// JoinExactID matches keys against a stable identifier property.
	JoinExactID JoinMode = "exact-id"
	// JoinNameFallback matches keys against display names, exact-string
	// only. Best effort: mismatches are not errors.
	JoinNameFallback JoinMode = "name-fallback"
)

// JoinKeyBinding is the reconciler's output: the chosen property and the
// locator the rendering collaborator uses verbatim to re-find it per
// feature. Immutable once computed.
type JoinKeyBinding struct {
	Mode     JoinMode `json:"mode"`
	Property string   `json:"property"`
	KeyOn    string   `json:"keyOn"` // "feature.properties.<property>"
}

// ReconcileJoinKey determines the join identifier property for a feature
// collection. override, when non-empty, is used unchecked.
func ReconcileJoinKey(fc *geo.FeatureCollection, override string) JoinKeyBinding {
	if override != "" {
		return bindExactID(override)
	}

	if len(fc.Features) > 0 {
		first := fc.Features[0]
		for _, cand := range identifierCandidates {
			if first.HasProperty(cand) {
				return bindExactID(cand)
			}
		}
	}

	return JoinKeyBinding{
		Mode:     JoinNameFallback,
		Property: NameProperty,
		KeyOn:    "feature.properties." + NameProperty,
	}
}

func bindExactID(property string) JoinKeyBinding {
	return JoinKeyBinding{
		Mode:     JoinExactID,
		Property: property,
		KeyOn:    "feature.properties." + property,
	}
}

// VerifyJoinCoverage checks that every projected key matches some feature
// under the binding, returning *UnmatchedKeysError otherwise. This is the
// opt-in strict mode; the engine never runs it on its own.
func VerifyJoinCoverage(binding JoinKeyBinding, fc *geo.FeatureCollection, data []KeyValue) error {
	known := make(map[string]bool, len(fc.Features))
	for _, f := range fc.Features {
		if v, ok := f.Property(binding.Property); ok {
			known[v] = true
		}
	}

	var unmatched []string
	seen := make(map[string]bool)
	for _, kv := range data {
		if known[kv.Key] || seen[kv.Key] {
			continue
		}
		seen[kv.Key] = true
		unmatched = append(unmatched, kv.Key)
	}

	if len(unmatched) > 0 {
		return &UnmatchedKeysError{Property: binding.Property, Keys: unmatched}
	}
	return nil
}
