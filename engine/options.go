package engine

import "github.com/cartograph-org/cartograph/schema"

// ============================================================================
// ENGINE OPTIONS — Functional options for the pipelines
// ============================================================================

// DefaultMaxPoints caps how many points a layer carries before sampling.
const DefaultMaxPoints = 200000

// DefaultSampleSeed makes sampling reproducible across runs.
const DefaultSampleSeed = 1

// Option configures pipeline behavior via functional options pattern.
type Option func(*config)

type config struct {
	MaxPoints    int
	SampleSeed   int64
	IDField      string // bypasses the key reconciler's own inference
	CountryField string // bypasses the schema resolver for country_key
	ValueField   string // bypasses the schema resolver for value
	StrictJoin   bool
	LayerName    string
	LegendName   string
	Candidates   schema.Table
}

// WithMaxPoints caps the point layer; above the cap a deterministic
// uniform sample of exactly max points is drawn.
func WithMaxPoints(max int) Option {
	return func(c *config) {
		c.MaxPoints = max
	}
}

// WithSampleSeed overrides the sampling seed. Same input, cap, and seed →
// same subset.
func WithSampleSeed(seed int64) Option {
	return func(c *config) {
		c.SampleSeed = seed
	}
}

// WithGeoJSONIDField forces the geometry identifier property, skipping
// first-feature inference. The value is trusted unchecked.
func WithGeoJSONIDField(field string) Option {
	return func(c *config) {
		c.IDField = field
	}
}

// WithCountryField forces the tabular country-key column, skipping the
// schema resolver for that role.
func WithCountryField(column string) Option {
	return func(c *config) {
		c.CountryField = column
	}
}

// WithValueField forces the tabular value column, skipping the schema
// resolver for that role.
func WithValueField(column string) Option {
	return func(c *config) {
		c.ValueField = column
	}
}

// WithStrictJoin makes the choropleth pipeline fail when any tabular key
// matches no feature, instead of the default silent best-effort join.
func WithStrictJoin() Option {
	return func(c *config) {
		c.StrictJoin = true
	}
}

// WithLayerName names the point cluster layer.
func WithLayerName(name string) Option {
	return func(c *config) {
		c.LayerName = name
	}
}

// WithLegend sets the choropleth legend caption.
func WithLegend(name string) Option {
	return func(c *config) {
		c.LegendName = name
	}
}

// WithCandidateTable swaps the role candidate table, e.g. for datasets in
// another naming convention. Tests use this to supply alternate priority
// lists without shared state.
func WithCandidateTable(table schema.Table) Option {
	return func(c *config) {
		c.Candidates = table
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		MaxPoints:  DefaultMaxPoints,
		SampleSeed: DefaultSampleSeed,
		LayerName:  "Incidents",
		LegendName: "Value by country",
		Candidates: schema.DefaultTable(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
