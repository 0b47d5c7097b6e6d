package schema

// ============================================================================
// SCHEMA — Semantic column roles for tabular map inputs
// ============================================================================
// Datasets arrive with free-form column names. The resolver maps each
// semantic role (latitude, country key, ...) to a concrete column by
// scanning an ordered candidate table, most-likely-first.
// The engine uses the resulting Assignment to read records.
// ============================================================================

// Role is a semantic purpose a column serves.
type Role string

const (
	RoleLatitude   Role = "latitude"
	RoleLongitude  Role = "longitude"
	RoleCategory   Role = "category"
	RoleCountryKey Role = "country_key"
	RoleValue      Role = "value"
)

// Candidates is an ordered, most-likely-first list of column names for a
// role. With FoldCase set, candidates match schema columns case-insensitively.
type Candidates struct {
	Names    []string `json:"names" mapstructure:"names"`
	FoldCase bool     `json:"foldCase,omitempty" mapstructure:"foldCase"`
}

// Table maps each role to its candidate list. It is the only tunable
// configuration surface of the resolver and is passed in explicitly so tests
// and callers can supply alternate priority lists without shared state.
type Table map[Role]Candidates

// DefaultTable returns the built-in candidate table.
//
// Latitude/longitude/category candidates match exactly, with common case
// variants listed. Country-key and value candidates fold case, matching the
// looser conventions of aggregate exports.
func DefaultTable() Table {
	return Table{
		RoleLatitude: {
			Names: []string{"lat", "latitude", "y", "y_coord", "ycoord", "Latitude", "LAT"},
		},
		RoleLongitude: {
			Names: []string{"lon", "lng", "longitude", "x", "x_coord", "xcoord", "Longitude", "LON"},
		},
		RoleCategory: {
			Names: []string{"category", "Category", "crime_type", "offense"},
		},
		RoleCountryKey: {
			Names:    []string{"country", "country_name", "origin", "iso_a3", "iso3", "iso"},
			FoldCase: true,
		},
		RoleValue: {
			Names:    []string{"value", "count", "immigrants", "migration", "num"},
			FoldCase: true,
		},
	}
}

// Assignment maps resolved roles to concrete column names.
// A role absent from the map is unresolved.
type Assignment map[Role]string

// Column returns the column resolved for role, or "" if unresolved.
func (a Assignment) Column(role Role) string {
	return a[role]
}

// Resolved reports whether role was resolved.
func (a Assignment) Resolved(role Role) bool {
	_, ok := a[role]
	return ok
}

// Require verifies that every listed role was resolved. It returns a
// *SchemaResolutionError naming the missing roles and echoing the schema
// that was actually present, so failures are diagnosable from the message.
func (a Assignment) Require(schema []string, roles ...Role) error {
	var missing []Role
	for _, r := range roles {
		if !a.Resolved(r) {
			missing = append(missing, r)
		}
	}
	if len(missing) > 0 {
		return &SchemaResolutionError{Missing: missing, Schema: schema}
	}
	return nil
}
