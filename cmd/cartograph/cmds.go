package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cartograph-org/cartograph/engine"
	"github.com/cartograph-org/cartograph/geo"
	"github.com/cartograph-org/cartograph/helpers"
)

func addCommands(root *cobra.Command) {
	// Points
	cmd := &cobra.Command{
		Use:   "points",
		Short: "Build a clustered point map from a coordinate CSV",
		RunE:  runPoints,
	}
	cmd.Flags().String("csv", "", "point dataset CSV (required)")
	cmd.Flags().String("out", "outputs/points_map.json", "output document path")
	cmd.Flags().String("layer", "Incidents", "point layer name")
	cmd.MarkFlagRequired("csv")
	root.AddCommand(cmd)

	// Choropleth
	cmd = &cobra.Command{
		Use:   "choropleth",
		Short: "Build a choropleth map by joining aggregates onto GeoJSON features",
		RunE:  runChoropleth,
	}
	cmd.Flags().String("csv", "", "aggregate dataset CSV with country key + value (required)")
	cmd.Flags().String("geojson", "", "polygon GeoJSON file (required)")
	cmd.Flags().String("out", "outputs/choropleth_map.json", "output document path")
	cmd.MarkFlagRequired("csv")
	cmd.MarkFlagRequired("geojson")
	root.AddCommand(cmd)

	// Compose — both pipelines, isolated failures
	cmd = &cobra.Command{
		Use:   "compose",
		Short: "Run both pipelines; one failing does not abort the other",
		RunE:  runCompose,
	}
	cmd.Flags().String("points-csv", "", "point dataset CSV (required)")
	cmd.Flags().String("aggregate-csv", "", "aggregate dataset CSV (required)")
	cmd.Flags().String("geojson", "", "polygon GeoJSON file (required)")
	cmd.Flags().String("out-dir", "outputs", "directory for generated documents")
	cmd.Flags().String("layer", "Incidents", "point layer name")
	cmd.MarkFlagRequired("points-csv")
	cmd.MarkFlagRequired("aggregate-csv")
	cmd.MarkFlagRequired("geojson")
	root.AddCommand(cmd)
}

// ============================================================================
// COMMAND RUNNERS
// ============================================================================

func runPoints(cmd *cobra.Command, args []string) error {
	layer, _ := cmd.Flags().GetString("layer")
	out, _ := cmd.Flags().GetString("out")
	csvPath, _ := cmd.Flags().GetString("csv")

	opts, err := engineOptions()
	if err != nil {
		return err
	}
	opts = append(opts, engine.WithLayerName(layer))

	cfg, err := buildPointDocument(csvPath, opts)
	if err != nil {
		return err
	}
	return writeDocument(cfg, out)
}

func runChoropleth(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")
	csvPath, _ := cmd.Flags().GetString("csv")
	geojsonPath, _ := cmd.Flags().GetString("geojson")

	opts, err := engineOptions()
	if err != nil {
		return err
	}

	cfg, err := buildChoroplethDocument(csvPath, geojsonPath, opts)
	if err != nil {
		return err
	}
	return writeDocument(cfg, out)
}

func runCompose(cmd *cobra.Command, args []string) error {
	pointsCSV, _ := cmd.Flags().GetString("points-csv")
	aggregateCSV, _ := cmd.Flags().GetString("aggregate-csv")
	geojsonPath, _ := cmd.Flags().GetString("geojson")
	outDir, _ := cmd.Flags().GetString("out-dir")
	layer, _ := cmd.Flags().GetString("layer")

	opts, err := engineOptions()
	if err != nil {
		return err
	}

	// Pipelines are isolated: a data-shape failure in one is logged with
	// its triggering condition and the other still runs.
	failures := 0

	pointCfg, err := buildPointDocument(pointsCSV, append(opts, engine.WithLayerName(layer)))
	if err != nil {
		log.Printf("⚠️ cartograph: point pipeline failed: %v", err)
		failures++
	} else if err := writeDocument(pointCfg, filepath.Join(outDir, "points_map.json")); err != nil {
		log.Printf("⚠️ cartograph: point pipeline failed: %v", err)
		failures++
	}

	choroCfg, err := buildChoroplethDocument(aggregateCSV, geojsonPath, opts)
	if err != nil {
		log.Printf("⚠️ cartograph: choropleth pipeline failed: %v", err)
		failures++
	} else if err := writeDocument(choroCfg, filepath.Join(outDir, "choropleth_map.json")); err != nil {
		log.Printf("⚠️ cartograph: choropleth pipeline failed: %v", err)
		failures++
	}

	if failures == 2 {
		return errors.New("both pipelines failed")
	}
	return nil
}

// ============================================================================
// PIPELINE WIRING
// ============================================================================

func buildPointDocument(csvPath string, opts []engine.Option) (*engine.MapConfig, error) {
	view, err := loadView(csvPath)
	if err != nil {
		return nil, err
	}
	return engine.BuildPointMap(view, opts...)
}

func buildChoroplethDocument(csvPath, geojsonPath string, opts []engine.Option) (*engine.MapConfig, error) {
	view, err := loadView(csvPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(geojsonPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", geojsonPath)
	}
	fc, err := geo.Decode(data)
	if err != nil {
		return nil, err
	}

	return engine.BuildChoroplethMap(view, fc, opts...)
}

func loadView(path string) (engine.RecordView, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	view, err := helpers.ParseCSVView(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	log.Printf("📊 cartograph: loaded %d records from %s", view.Len(), path)
	return view, nil
}

// engineOptions translates viper settings (flags, env, config file) into
// functional options for the pipelines.
func engineOptions() ([]engine.Option, error) {
	table, err := candidateTable()
	if err != nil {
		return nil, errors.Wrap(err, "invalid schema.candidates config")
	}

	opts := []engine.Option{engine.WithCandidateTable(table)}

	if v := viper.GetInt("max-points"); v > 0 {
		opts = append(opts, engine.WithMaxPoints(v))
	}
	if v := viper.GetInt64("seed"); v > 0 {
		opts = append(opts, engine.WithSampleSeed(v))
	}
	if v := viper.GetString("geojson-id-field"); v != "" {
		opts = append(opts, engine.WithGeoJSONIDField(v))
	}
	if v := viper.GetString("country-field"); v != "" {
		opts = append(opts, engine.WithCountryField(v))
	}
	if v := viper.GetString("value-field"); v != "" {
		opts = append(opts, engine.WithValueField(v))
	}
	if v := viper.GetString("legend"); v != "" {
		opts = append(opts, engine.WithLegend(v))
	}
	if viper.GetBool("strict-join") {
		opts = append(opts, engine.WithStrictJoin())
	}

	return opts, nil
}

func writeDocument(cfg *engine.MapConfig, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create %s", dir)
		}
	}

	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal map document")
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}

	log.Printf("📄 cartograph: wrote %s", path)
	return nil
}
