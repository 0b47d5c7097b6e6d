package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cartograph-org/cartograph/schema"
)

// ============================================================================
// CARTOGRAPH CLI — tabular records in, render-ready map documents out
// ============================================================================

const version = "0.1.0"

func main() {
	// .env is optional; real environment still wins.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:     "cartograph",
		Short:   "Generate render-ready map documents from tabular data",
		Version: version,
		Long: `Cartograph resolves column roles heuristically (latitude/longitude or
country-key/value), joins aggregates onto GeoJSON features, and writes
MapConfig JSON documents for a rendering engine to consume.

Configuration is read from flags, CARTOGRAPH_* environment variables, and
an optional cartograph.yaml (including alternate schema candidate tables
under "schema.candidates").`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default: ./cartograph.yaml)")
	pf.Int("max-points", 0, "cap on plotted points; above it a deterministic sample is drawn")
	pf.Int64("seed", 0, "sampling seed (same input, cap, and seed → same subset)")
	pf.String("geojson-id-field", "", "GeoJSON property to join on (skips inference)")
	pf.String("country-field", "", "tabular country/ISO column (skips role inference)")
	pf.String("value-field", "", "tabular numeric value column (skips role inference)")
	pf.String("legend", "", "choropleth legend caption")
	pf.Bool("strict-join", false, "fail when any tabular key matches no feature")

	cobra.OnInitialize(func() {
		initConfig(pf.Lookup("config").Value.String())
	})

	viper.SetEnvPrefix("CARTOGRAPH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
	if err := viper.BindPFlags(pf); err != nil {
		fatal("failed to bind flags: %v", err)
	}

	addCommands(root)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// initConfig loads the optional config file. An explicit --config that
// cannot be read is fatal; the default file is simply skipped when absent.
func initConfig(path string) {
	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			fatal("failed to read config %s: %v", path, err)
		}
		return
	}

	viper.SetConfigName("cartograph")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig()
}

// candidateTable builds the resolver's candidate table, starting from the
// defaults and overlaying any roles configured under schema.candidates.
func candidateTable() (schema.Table, error) {
	table := schema.DefaultTable()
	if !viper.IsSet("schema.candidates") {
		return table, nil
	}

	overrides := make(map[string]schema.Candidates)
	if err := viper.UnmarshalKey("schema.candidates", &overrides); err != nil {
		return nil, err
	}
	for role, cands := range overrides {
		table[schema.Role(role)] = cands
	}
	return table, nil
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
